// Package execx is a narrow capability for running external commands, so
// callers can be tested against a fake instead of real OS invocations.
package execx

import (
	"context"
	"os/exec"
)

// Commander abstracts external command execution. The context bounds the
// command's lifetime; on expiry the process is killed.
type Commander interface {
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// CombinedOutput runs the command and returns stdout and stderr interleaved.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommander runs commands via os/exec.
type ExecCommander struct{}

func New() *ExecCommander { return &ExecCommander{} }

func (ExecCommander) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (ExecCommander) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
