package textsearch

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Output captures a completed subprocess invocation. Stdout and stderr are
// buffered in full before parsing; tier output is line-oriented and bounded
// by the result limit, so no streaming is needed.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner abstracts subprocess execution so tiers can be tested without the
// underlying tools installed. A non-nil error means the process could not
// run at all (e.g. the binary is not installed); a non-zero exit code is
// reported through Output instead.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Output, error)
}

// execRunner runs commands via os/exec
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, err
	}
	return out, nil
}

// lookPath reports whether a binary is installed, indirected for tests
var lookPath = func(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
