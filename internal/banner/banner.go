// Package banner prints the greeting shown before every command.
package banner

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/sysinfo"
	logger "github.com/sirupsen/logrus"
)

// sampleWindow is how long CPU usage is measured for the session panel.
const sampleWindow = 300 * time.Millisecond

var quotes = []string{
	"Code is poetry written in the language of logic.",
	"The best way to predict the future is to build it.",
	"Every line of code brings you closer to perfection.",
	"Programming is the art of solving problems.",
	"The code you write today runs tomorrow.",
	"Complexity is the enemy of quality and clarity.",
	"The best code is code that works.",
	"Debugging is being the detective in a crime novel where you are also the murderer.",
	"Write comments for people, not for the compiler.",
	"Perfection is reached not when there is nothing left to add, but when there is nothing left to take away.",
}

var tips = []string{
	"Use gram --lint to check the quality of your code.",
	"Run gram --help-commands for the full reference.",
	"Use gram --update to upgrade to the latest version.",
	"Point gram --info at a directory to analyse a whole project.",
	"Add --format json to --info or --lint for machine-readable output.",
	"Add --strict to --lint to fail CI on findings.",
}

var letterColors = []string{"1", "208", "3", "2"}

// UsageFunc samples CPU and RAM utilisation in percent.
type UsageFunc func(ctx context.Context) (cpu, ram float64, err error)

// Banner renders the greeting.
type Banner struct {
	console *printer.Console
	now     func() time.Time
	usage   UsageFunc
	pick    func(n int) int
}

// New creates a Banner that samples the host through gopsutil.
func New(console *printer.Console) *Banner {
	return &Banner{
		console: console,
		now:     time.Now,
		usage: func(ctx context.Context) (float64, float64, error) {
			return sysinfo.Usage(ctx, sampleWindow)
		},
		pick: rand.IntN,
	}
}

// Print writes the logo, the session panel, a quote and a tip.
func (b *Banner) Print(ctx context.Context) {
	b.console.Blank()
	b.console.Println(Logo())
	b.console.Println(printer.Faint("  your personal assistant for Go projects"))
	b.console.Blank()

	b.console.Panel("Session", b.session(ctx), printer.ToneInfo)
	b.console.Panel("Quote of the day", printer.Info(`"`+quotes[b.pick(len(quotes))]+`"`), printer.ToneSuccess)
	b.console.Panel("Tip", tips[b.pick(len(tips))]+"\n\n"+printer.Faint("Full command list: gram --help-commands"), printer.ToneAccent)
	b.console.Blank()
}

func (b *Banner) session(ctx context.Context) string {
	now := b.now()
	lines := []string{
		field("Started", now.Format(time.TimeOnly)),
		field("Date", now.Format(time.DateOnly)),
		field("Platform", runtime.GOOS+"/"+runtime.GOARCH),
	}
	cpu, ram, err := b.usage(ctx)
	if err != nil {
		logger.WithError(err).Debug("usage sample failed")
	} else {
		lines = append(lines,
			field("CPU", fmt.Sprintf("%.1f%%", cpu)),
			field("RAM", fmt.Sprintf("%.1f%%", ram)),
		)
	}
	return strings.Join(lines, "\n")
}

func field(label, value string) string {
	return printer.Bold(fmt.Sprintf("%-9s", label+":")) + " " + value
}

// Logo returns the colored GRAM wordmark.
func Logo() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for i, r := range "GRAM" {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(letterColors[i]))
		sb.WriteString(style.Render(string(r)))
		sb.WriteString(" ")
	}
	return strings.TrimRight(sb.String(), " ")
}
