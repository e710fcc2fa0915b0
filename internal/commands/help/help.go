// Package help prints the quick and the detailed command reference.
package help

import (
	"fmt"
	"strings"

	"github.com/gramcli/gram/internal/printer"
)

type entry struct {
	flag    string
	summary string
	example string
}

type group struct {
	title   string
	tone    printer.Tone
	entries []entry
}

var groups = []group{
	{"Projects", printer.ToneSuccess, []entry{
		{"--start <template>", "Create a project from the cli, http or lib template", "gram --start cli --name todo"},
	}},
	{"Analysis", printer.ToneInfo, []entry{
		{"--info <path>", "Statistics and score for a Go file or directory", "gram --info ./internal"},
		{"--lint <path>", "Syntax check plus revive, staticcheck, gosec, go vet, gofmt and go test", "gram --lint . --strict"},
	}},
	{"Assistant", printer.ToneAccent, []entry{
		{"--gpt", "Interactive chat with a Gemini model", "gram --gpt"},
	}},
	{"System", printer.ToneNeutral, []entry{
		{"--pc", "Operating system, runtime, network, disk, memory and CPU", "gram --pc"},
		{"--fiat", "Exchange rates and crypto prices", "gram --fiat"},
	}},
	{"gram itself", printer.ToneWarning, []entry{
		{"--version", "Show the installed version", "gram --version"},
		{"--update", "Install the latest version", "gram --update --yes"},
		{"--help-commands", "Show this reference", "gram --help-commands"},
	}},
}

var modifiers = []entry{
	{"--config <file>", "Use this config file", ""},
	{"--format text|json", "Output format for --info, --lint, --pc, --fiat, --version, --update, --start", ""},
	{"--strict", "Exit 1 when --lint finds syntax errors or issues", ""},
	{"--yes", "Answer yes to the update prompt", ""},
	{"--name <dir>", "Project directory for --start", ""},
	{"--no-banner", "Do not print the banner", ""},
	{"--no-color", "Disable colored output", ""},
	{"--verbose", "Print debug logs to stderr", ""},
}

// Quick prints the short help shown when no command is given.
func Quick(c *printer.Console) {
	c.Panel("gram", "Your personal assistant for Go projects.\n"+printer.Faint("Analyse code, run quality tools, scaffold projects and more."), printer.ToneInfo)

	var rows [][]string
	for _, g := range groups {
		for _, e := range g.entries {
			rows = append(rows, []string{e.flag, e.summary, printer.Faint(e.example)})
		}
	}
	c.Table("Commands", []string{"Command", "Description", "Example"}, rows)

	c.Panel("Quick start", strings.Join([]string{
		"New project:    " + printer.Info("gram --start cli"),
		"Analyse code:   " + printer.Info("gram --info ."),
		"Quality check:  " + printer.Info("gram --lint ."),
		"",
		printer.Faint("gram --help-commands shows every option."),
	}, "\n"), printer.ToneSuccess)
}

// Detailed prints the grouped reference with modifiers and examples.
func Detailed(c *printer.Console) {
	c.Panel("gram reference", "Exactly one command runs per invocation. When several are given the first in this order wins:\n"+
		printer.Faint("--help-commands, --start, --info, --lint, --gpt, --pc, --fiat, --version, --update"), printer.ToneInfo)

	for _, g := range groups {
		lines := make([]string, 0, len(g.entries))
		for _, e := range g.entries {
			lines = append(lines, fmt.Sprintf("%s  %s", printer.Bold(fmt.Sprintf("%-20s", e.flag)), e.summary))
		}
		c.Panel(g.title, strings.Join(lines, "\n"), g.tone)
	}

	rows := make([][]string, 0, len(modifiers))
	for _, m := range modifiers {
		rows = append(rows, []string{m.flag, m.summary})
	}
	c.Table("Modifiers", []string{"Flag", "Effect"}, rows)

	var examples []string
	for i, e := range allEntries() {
		examples = append(examples, fmt.Sprintf("%d. %s\n   %s", i+1, e.summary, printer.Faint(e.example)))
	}
	c.Panel("Examples", strings.Join(examples, "\n"), printer.ToneWarning)

	c.Panel("Configuration", strings.Join([]string{
		"Looked up in order: --config, $GRAM_CONFIG, ./.gram.yaml, ~/.config/gram/config.yaml",
		"Sections: theme, banner, lint.tools, lint.test_pattern, rates, update, chat",
		"Chat key: $GEMINI_API_KEY, $GOOGLE_API_KEY or chat.api_key",
	}, "\n"), printer.ToneNeutral)
}

func allEntries() []entry {
	var out []entry
	for _, g := range groups {
		out = append(out, g.entries...)
	}
	return out
}
