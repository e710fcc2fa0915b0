// Package fiat implements "gram --fiat": exchange rates and crypto prices.
package fiat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/rates"
	"github.com/gramcli/gram/internal/tui"
)

// converterAmounts are the USD/EUR amounts shown in the converter panel.
var converterAmounts = []struct {
	amount float64
	code   string
}{
	{1, "USD"},
	{1, "EUR"},
	{100, "USD"},
	{1000, "USD"},
}

type jsonSnapshot struct {
	Fiat      *rates.FiatRates    `json:"fiat,omitempty"`
	FiatErr   string              `json:"fiat_error,omitempty"`
	Crypto    []rates.CryptoQuote `json:"crypto,omitempty"`
	CryptoErr string              `json:"crypto_error,omitempty"`
	Home      string              `json:"home"`
}

// Run fetches both sources and prints whatever is available.
func Run(ctx context.Context, d app.Deps, opts app.Options) error {
	client := rates.NewClient(d.HTTP, d.Config.Rates)
	home := strings.ToUpper(d.Config.Rates.Home)

	var snap *rates.Snapshot
	var fetchErr error
	if err := tui.Spin(ctx, "Fetching rates...", func(ctx context.Context) {
		snap, fetchErr = client.Fetch(ctx)
	}); err != nil {
		return err
	}

	if opts.JSON() {
		out := jsonSnapshot{Home: home}
		if snap != nil {
			out.Fiat, out.Crypto = snap.Fiat, snap.Crypto
			out.FiatErr, out.CryptoErr = errString(snap.FiatErr), errString(snap.CryptoErr)
		}
		return d.Console.JSON(out)
	}

	if errors.Is(fetchErr, rates.ErrUnavailable) || snap == nil {
		d.Console.Panel("Rates unavailable", "Could not reach any rate source. Check your connection and try again.", printer.ToneError)
		return nil
	}

	if snap.Fiat != nil {
		printFiat(d.Console, snap.Fiat, d.Config.Rates.Currencies, home)
	} else {
		d.Console.Panel("Fiat rates", printer.Warning("unavailable: "+snap.FiatErr.Error()), printer.ToneWarning)
	}

	if snap.Crypto != nil {
		printCrypto(d.Console, snap.Crypto)
	} else {
		d.Console.Panel("Crypto prices", printer.Warning("unavailable: "+snap.CryptoErr.Error()), printer.ToneWarning)
	}

	if snap.Fiat != nil {
		printConverter(d.Console, snap.Fiat, home)
	}
	d.Console.Println(printer.Faint("Updated " + snap.Taken.Format("2006-01-02 15:04:05")))
	return nil
}

func printFiat(c *printer.Console, f *rates.FiatRates, codes []string, home string) {
	_, haveHome := f.Rate(home)
	headers := []string{"Currency", "Per 1 " + f.Base}
	if haveHome && home != f.Base {
		headers = append(headers, "1 unit in "+home)
	}

	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(code)
		r, ok := f.Rate(code)
		if !ok {
			row := []string{code, printer.Faint("n/a")}
			if len(headers) == 3 {
				row = append(row, "")
			}
			rows = append(rows, row)
			continue
		}
		row := []string{code, formatAmount(r)}
		if len(headers) == 3 {
			v, _ := f.Convert(1, code, home)
			row = append(row, formatAmount(v))
		}
		rows = append(rows, row)
	}
	c.Table("Exchange rates", headers, rows)
}

func printCrypto(c *printer.Console, quotes []rates.CryptoQuote) {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{q.Name, "$" + formatAmount(q.USD), printer.Change(q.Change24h)})
	}
	c.Table("Crypto", []string{"Coin", "USD", "24h"}, rows)
}

func printConverter(c *printer.Console, f *rates.FiatRates, home string) {
	if _, ok := f.Rate(home); !ok {
		return
	}
	var lines []string
	for _, a := range converterAmounts {
		if a.code == home {
			continue
		}
		v, ok := f.Convert(a.amount, a.code, home)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s = %s %s", formatAmount(a.amount), a.code, formatAmount(v), home))
	}
	if len(lines) == 0 {
		return
	}
	c.Panel("Quick converter", strings.Join(lines, "\n"), printer.ToneAccent)
}

// formatAmount prints large values with thousands separators and small
// ones with enough precision to be useful.
func formatAmount(v float64) string {
	switch {
	case v >= 1000:
		return groupThousands(fmt.Sprintf("%.2f", v))
	case v >= 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

func groupThousands(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if frac != "" {
		sb.WriteString("." + frac)
	}
	return sb.String()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
