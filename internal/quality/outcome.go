package quality

import (
	"strings"
	"time"
)

// MaxShownFindings is how many findings are printed per tool.
const MaxShownFindings = 5

// MaxShownFailures is how many failing tests are printed.
const MaxShownFailures = 3

// Status is the closed set of tool outcome variants.
type Status int

const (
	StatusPassed Status = iota
	StatusFoundIssues
	StatusNotInstalled
	StatusTimedOut
	StatusSkipped
	StatusFailed
)

var statusNames = map[Status]string{
	StatusPassed:       "passed",
	StatusFoundIssues:  "found_issues",
	StatusNotInstalled: "not_installed",
	StatusTimedOut:     "timed_out",
	StatusSkipped:      "skipped",
	StatusFailed:       "failed",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// MarshalText renders the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TestSummary summarises a failing test run.
type TestSummary struct {
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Failures []string `json:"failures,omitempty"`
}

// Outcome is the classified result of one tool invocation.
type Outcome struct {
	Tool     string        `json:"tool"`
	Kind     Kind          `json:"kind"`
	Status   Status        `json:"status"`
	Findings []string      `json:"findings,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Install  string        `json:"install,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Tests    *TestSummary  `json:"tests,omitempty"`
}

// ShownFindings returns the first MaxShownFindings findings and the number
// of findings left out.
func (o Outcome) ShownFindings() ([]string, int) {
	if len(o.Findings) <= MaxShownFindings {
		return o.Findings, 0
	}
	return o.Findings[:MaxShownFindings], len(o.Findings) - MaxShownFindings
}

// splitLines returns the non-blank lines of s with trailing space trimmed.
func splitLines(s string) []string {
	var out []string
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// summarizeTests counts "--- PASS" and "--- FAIL" lines of verbose go test
// output and keeps the first failures.
func summarizeTests(output string) *TestSummary {
	s := &TestSummary{}
	for _, line := range splitLines(output) {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "--- PASS"):
			s.Passed++
		case strings.HasPrefix(trimmed, "--- FAIL"):
			s.Failed++
			if len(s.Failures) < MaxShownFailures {
				s.Failures = append(s.Failures, trimmed)
			}
		}
	}
	return s
}
