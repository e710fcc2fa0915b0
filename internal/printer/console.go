package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tone selects the border and title color of a panel.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneInfo
	ToneSuccess
	ToneWarning
	ToneError
	ToneAccent
)

func (t Tone) color() lipgloss.TerminalColor {
	switch t {
	case ToneInfo:
		return lipgloss.Color("6")
	case ToneSuccess:
		return lipgloss.Color("2")
	case ToneWarning:
		return lipgloss.Color("3")
	case ToneError:
		return lipgloss.Color("1")
	case ToneAccent:
		return lipgloss.Color("5")
	default:
		return lipgloss.Color("4")
	}
}

// Console is the output port every command writes to.
// It is constructed once and passed in rather than reached through globals.
type Console struct {
	out io.Writer
	err io.Writer
}

// NewConsole returns a Console writing to out, with diagnostics sent to errOut.
func NewConsole(out, errOut io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Console{out: out, err: errOut}
}

// Out returns the underlying stdout writer.
func (c *Console) Out() io.Writer {
	return c.out
}

// Err returns the underlying diagnostics writer.
func (c *Console) Err() io.Writer {
	return c.err
}

// Println writes a line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted text.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Blank writes an empty line.
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// Panel renders a rounded box with a bold title line above body.
func (c *Console) Panel(title, body string, tone Tone) {
	fmt.Fprintln(c.out, RenderPanel(title, body, tone))
}

// Table renders headers and rows as a rounded table with an optional title.
func (c *Console) Table(title string, headers []string, rows [][]string) {
	fmt.Fprintln(c.out, RenderTable(title, headers, rows))
}

// JSON writes v as indented JSON.
func (c *Console) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}

// RenderPanel returns the panel markup without printing it.
func RenderPanel(title, body string, tone Tone) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tone.color()).
		Padding(0, 1)

	var sb strings.Builder
	if title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tone.color()).Render(title))
		if body != "" {
			sb.WriteString("\n\n")
		}
	}
	sb.WriteString(strings.TrimRight(body, "\n"))
	return style.Render(sb.String())
}

// RenderTable returns the table markup without printing it.
func RenderTable(title string, headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(faintStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if title == "" {
		return t.String()
	}
	return Bold(title) + "\n" + t.String()
}
