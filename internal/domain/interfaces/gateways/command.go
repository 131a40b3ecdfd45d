package gateways

import "context"

// CommandResult captures one invocation of a package-manager CLI
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner executes a package-manager command-line tool. Run returns
// an error only when the tool is absent or could not be started; a tool
// that ran and exited non-zero is reported through ExitCode.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (*CommandResult, error)

	// Available reports whether the tool exists on PATH
	Available(name string) bool
}
