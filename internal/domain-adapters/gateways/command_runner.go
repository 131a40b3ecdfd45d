package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/rewintool/rewin/internal/domain/interfaces/gateways"
)

// ExecRunner implements CommandRunner using os/exec. It distinguishes a
// tool that is absent from one that ran and exited non-zero: only the
// former is an error, the latter is reported through ExitCode so callers
// can classify it themselves.
type ExecRunner struct {
	defaultTimeout time.Duration
}

// NewExecRunner creates a new command runner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		defaultTimeout: 30 * time.Second,
	}
}

// Available reports whether the tool exists on PATH
func (r *ExecRunner) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run invokes the tool and captures its output. The context bounds the
// invocation; if the caller's context has no deadline a default timeout
// applies so a hung tool can never stall the chain.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*gateways.CommandResult, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.defaultTimeout)
		defer cancel()
	}

	//nolint:gosec // G204: tool name and arguments come from the provider configuration
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &gateways.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s timed out: %w", name, ctx.Err())
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Tool ran but failed; let the caller decide what that means
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return result, nil
}
