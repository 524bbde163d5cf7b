package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Options controls a single script execution. Env is the complete
// environment the script observes; the ambient process environment is
// never inherited, so script evaluation stays reproducible.
type Options struct {
	Dir    string
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes a bash-dialect script in a fresh interpreter. Each call
// builds its own interpreter, so no state leaks between executions.
func Run(ctx context.Context, script string, opts Options) error {
	prog, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(script), "script")
	if err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	runner, err := interp.New(
		interp.Dir(opts.Dir),
		interp.Env(expand.ListEnviron(envToSlice(opts.Env)...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	return runner.Run(ctx, prog)
}

// Capture executes a script and returns its standard output. Standard
// error is passed through to opts.Stderr if set, discarded otherwise.
func Capture(ctx context.Context, script string, opts Options) (string, error) {
	var buf bytes.Buffer
	opts.Stdout = &buf

	if err := Run(ctx, script, opts); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ExitStatus extracts the exit status from a script error. The second
// return is false when the error did not come from a script exiting
// non-zero (e.g. a syntax error or cancellation).
func ExitStatus(err error) (int, bool) {
	if status, ok := interp.IsExitStatus(err); ok {
		return int(status), true
	}
	return 0, false
}

// Quote escapes a string for safe embedding in a script
func Quote(s string) string {
	quoted, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		// Only possible for strings with control bytes that cannot be
		// represented; fall back to single quotes.
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return quoted
}

func envToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
