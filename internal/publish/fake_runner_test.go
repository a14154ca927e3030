package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// ─── Test Helpers ───

// fakeRunner records every command and answers from a script keyed by the
// command line.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	outputs map[string]string
	fails   map[string]error
	onRun   map[string]func()
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: map[string]string{},
		fails:   map[string]error{},
		onRun:   map[string]func(){},
	}
}

func (f *fakeRunner) record(name string, args []string) string {
	line := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	f.calls = append(f.calls, line)
	f.mu.Unlock()
	return line
}

func (f *fakeRunner) Output(_ context.Context, _ string, name string, args ...string) (string, error) {
	line := f.record(name, args)
	if err := f.fails[line]; err != nil {
		return "", err
	}
	return f.outputs[line], nil
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) error {
	line := f.record(name, args)
	if err := f.fails[line]; err != nil {
		return err
	}
	if hook := f.onRun[line]; hook != nil {
		hook()
	}
	return nil
}

func (f *fakeRunner) ran(line string) bool {
	for _, c := range f.calls {
		if c == line {
			return true
		}
	}
	return false
}

func (f *fakeRunner) ranPrefix(prefix string) bool {
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// readyRunner answers like a logged-in user on a clean main branch whose
// version is not yet published.
func readyRunner() *fakeRunner {
	f := newFakeRunner()
	f.outputs["npm whoami"] = "octo"
	f.outputs["git rev-parse --abbrev-ref HEAD"] = "main"
	f.outputs["git status --porcelain"] = ""
	return f
}

// scriptedPrompter returns queued answers and remembers the questions.
type scriptedPrompter struct {
	confirms  []bool
	selects   []int
	selectErr error
	asked     []string
}

func (p *scriptedPrompter) Confirm(question string, _ bool) (bool, error) {
	p.asked = append(p.asked, question)
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm %q", question)
	}
	a := p.confirms[0]
	p.confirms = p.confirms[1:]
	return a, nil
}

func (p *scriptedPrompter) Select(question string, _ []string) (int, error) {
	p.asked = append(p.asked, question)
	if p.selectErr != nil {
		return 0, p.selectErr
	}
	if len(p.selects) == 0 {
		return 0, fmt.Errorf("unexpected select %q", question)
	}
	a := p.selects[0]
	p.selects = p.selects[1:]
	return a, nil
}

func setupPackage(t *testing.T, name, version string) string {
	t.Helper()
	dir := t.TempDir()
	writePackageJSON(t, dir, name, version)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	return dir
}

func writePackageJSON(t *testing.T, dir, name, version string) {
	t.Helper()
	content := fmt.Sprintf(`{"name": %q, "version": %q}`, name, version)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644))
}

func defaultOptions(dir string) Options {
	return Options{
		Dir:           dir,
		MainBranch:    "main",
		TestScript:    "npm test",
		RequiredFiles: []string{"package.json", "README.md"},
		RequiredDirs:  []string{"templates"},
	}
}

func newTestWorkflow(opts Options, r Runner, p Prompter) (*Workflow, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWorkflow(opts, r, p, NewConsole(&buf)), &buf
}
