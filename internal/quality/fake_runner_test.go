package quality

import (
	"context"
	"sync"

	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/discovery"
)

type fakeResponse struct {
	res *core.Result
	err error
}

// fakeRunner returns canned responses keyed by command name and records
// every invocation.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []core.Command
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]fakeResponse{}}
}

func (f *fakeRunner) on(name string, res *core.Result, err error) {
	f.responses[name] = fakeResponse{res: res, err: err}
}

func (f *fakeRunner) Run(_ context.Context, cmd core.Command) (*core.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
	key := cmd.Name
	if len(cmd.Args) > 0 && cmd.Name == "go" {
		key = "go " + cmd.Args[0]
	}
	if r, ok := f.responses[key]; ok {
		return r.res, r.err
	}
	return &core.Result{}, nil
}

func (f *fakeRunner) names() []string {
	var out []string
	for _, c := range f.calls {
		name := c.Name
		if c.Name == "go" {
			name = "go " + c.Args[0]
		}
		out = append(out, name)
	}
	return out
}

// recorder is a Reporter that keeps every event.
type recorder struct {
	files    []string
	checked  []SyntaxResult
	started  []string
	finished []Outcome
}

func (r *recorder) Files(_ *discovery.Target, files []string) { r.files = files }
func (r *recorder) FileChecked(res SyntaxResult)               { r.checked = append(r.checked, res) }
func (r *recorder) ToolStarted(spec ToolSpec)                  { r.started = append(r.started, spec.Name) }
func (r *recorder) ToolFinished(o Outcome)                     { r.finished = append(r.finished, o) }
