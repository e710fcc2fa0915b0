package quality

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gramcli/gram/internal/core"
)

func TestClassify(t *testing.T) {
	exitSpec := ToolSpec{Name: "lint", Kind: KindLint, Findings: FindingsExit, Install: "go install lint"}
	outputSpec := ToolSpec{Name: "fmt", Kind: KindFormat, Findings: FindingsOutput}

	tests := []struct {
		name       string
		spec       ToolSpec
		res        *core.Result
		err        error
		wantStatus Status
	}{
		{"passed", exitSpec, &core.Result{}, nil, StatusPassed},
		{"exit findings", exitSpec, &core.Result{ExitCode: 1, Stdout: "a.go:1: bad"}, nil, StatusFoundIssues},
		{"output ignored in exit mode", exitSpec, &core.Result{Stdout: "info line"}, nil, StatusPassed},
		{"output findings", outputSpec, &core.Result{Stdout: "a.go\n"}, nil, StatusFoundIssues},
		{"output mode blank", outputSpec, &core.Result{Stdout: "\n  \n"}, nil, StatusPassed},
		{"not installed", exitSpec, nil, fmt.Errorf("%w: lint", core.ErrCommandNotFound), StatusNotInstalled},
		{"timeout", exitSpec, &core.Result{}, fmt.Errorf("%w: lint", core.ErrCommandTimeout), StatusTimedOut},
		{"context deadline", exitSpec, nil, context.DeadlineExceeded, StatusTimedOut},
		{"unexpected error", exitSpec, nil, errors.New("permission denied"), StatusFailed},
		{"nil result", exitSpec, nil, nil, StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := classify(tt.spec, tt.res, tt.err)
			if o.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", o.Status, tt.wantStatus)
			}
			if o.Status == StatusNotInstalled && o.Install != "go install lint" {
				t.Errorf("Install hint = %q", o.Install)
			}
		})
	}
}

func TestClassify_FindingsLimit(t *testing.T) {
	var lines []string
	for i := 1; i <= 8; i++ {
		lines = append(lines, fmt.Sprintf("f.go:%d: issue", i))
	}
	o := classify(ToolSpec{Findings: FindingsExit}, &core.Result{ExitCode: 1, Stdout: strings.Join(lines, "\n")}, nil)

	shown, more := o.ShownFindings()
	if len(shown) != MaxShownFindings || more != 3 {
		t.Errorf("ShownFindings() = %d shown, %d more; want 5, 3", len(shown), more)
	}
	if shown[0] != "f.go:1: issue" {
		t.Errorf("findings must be verbatim, got %q", shown[0])
	}
}

func TestClassify_ExitWithoutOutput(t *testing.T) {
	o := classify(ToolSpec{Findings: FindingsExit}, &core.Result{ExitCode: 3}, nil)
	if len(o.Findings) != 1 || o.Findings[0] != "exit status 3" {
		t.Errorf("Findings = %v", o.Findings)
	}
}

func TestClassify_Tests(t *testing.T) {
	out := `=== RUN   TestA
--- PASS: TestA (0.00s)
=== RUN   TestB
--- FAIL: TestB (0.00s)
=== RUN   TestC
--- FAIL: TestC (0.00s)
--- FAIL: TestD (0.00s)
--- FAIL: TestE (0.00s)
FAIL
`
	o := classify(ToolSpec{Kind: KindTests, Findings: FindingsExit}, &core.Result{ExitCode: 1, Stdout: out}, nil)
	if o.Status != StatusFoundIssues {
		t.Fatalf("status = %v", o.Status)
	}
	if o.Tests == nil || o.Tests.Passed != 1 || o.Tests.Failed != 4 {
		t.Fatalf("Tests = %+v, want 1 passed, 4 failed", o.Tests)
	}
	if len(o.Tests.Failures) != MaxShownFailures {
		t.Errorf("Failures = %v, want first %d", o.Tests.Failures, MaxShownFailures)
	}
}

func TestClassify_TestsBuildFailure(t *testing.T) {
	out := "# example.com/p\n./a.go:3:1: undefined: x\nFAIL\texample.com/p [build failed]\n"
	o := classify(ToolSpec{Kind: KindTests, Findings: FindingsExit}, &core.Result{ExitCode: 1, Stdout: out}, nil)
	if len(o.Findings) == 0 {
		t.Error("build failures should surface output lines")
	}
}

func TestCheckSyntax(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		readErr  error
		want     SyntaxStatus
		wantLine int
	}{
		{"clean", "package a\n", nil, SyntaxOK, 0},
		{"error", "package a\n\nvar = 1\n", nil, SyntaxError, 3},
		{"missing package", "func main() {}\n", nil, SyntaxError, 1},
		{"read error", "", errors.New("permission denied"), SyntaxUnreadable, 0},
		{"invalid utf8", "package a\n// \xff\n", nil, SyntaxUnreadable, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSyntax("a.go", []byte(tt.src), tt.readErr)
			if got.Status != tt.want {
				t.Fatalf("status = %v, want %v (%s)", got.Status, tt.want, got.Message)
			}
			if got.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", got.Line, tt.wantLine)
			}
			if tt.want != SyntaxOK && got.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestToolsFromConfig_Defaults(t *testing.T) {
	specs, err := ToolsFromConfig(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := []Kind{KindStyle, KindLint, KindSecurity, KindTypes, KindFormat, KindTests}
	if len(specs) != len(kinds) {
		t.Fatalf("got %d tools, want %d", len(specs), len(kinds))
	}
	for i, k := range kinds {
		if specs[i].Kind != k {
			t.Errorf("tool %d kind = %s, want %s", i, specs[i].Kind, k)
		}
	}
	if specs[1].Timeout != core.TimeoutToolLong || specs[5].Timeout != core.TimeoutToolLong {
		t.Error("deep linter and tests should use the long timeout")
	}
	if specs[4].Findings != FindingsOutput {
		t.Error("formatter should report findings by output")
	}
}
