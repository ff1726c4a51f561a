package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnsupportedOS indicates there is no notification method for the operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Method is a single way of showing a notification.
type Method interface {
	// Name identifies the method in logs.
	Name() string
	// Try shows the notification and reports whether it succeeded.
	Try(ctx context.Context, title, message string) error
}

// Runner executes an external program and returns an error unless it exits with status zero.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the program through os/exec without a shell.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("find %s: %w", name, err)
	}

	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		if text := strings.TrimSpace(string(out)); text != "" {
			return fmt.Errorf("run %s: %w: %s", name, err, text)
		}

		return fmt.Errorf("run %s: %w", name, err)
	}

	return nil
}

// CommandMethod shows a notification by invoking an external program.
type CommandMethod struct {
	// name identifies the method in logs.
	name string
	// program is the executable to invoke.
	program string
	// args builds the program arguments from the title and message.
	args func(title, message string) []string
	// run executes the program.
	run Runner
}

// NewCommandMethod returns a method invoking program with the arguments built by args.
func NewCommandMethod(name, program string, args func(title, message string) []string, run Runner) *CommandMethod {
	if run == nil {
		run = ExecRunner
	}

	return &CommandMethod{
		name:    name,
		program: program,
		args:    args,
		run:     run,
	}
}

// Name returns the method name.
func (m *CommandMethod) Name() string {
	return m.name
}

// Try runs the program.
func (m *CommandMethod) Try(ctx context.Context, title, message string) error {
	return m.run(ctx, m.program, m.args(title, message)...)
}

// unsupportedMethod always fails; it keeps dispatch uniform on unknown platforms.
type unsupportedMethod struct {
	goos string
}

func (m unsupportedMethod) Name() string {
	return "unsupported"
}

func (m unsupportedMethod) Try(context.Context, string, string) error {
	return fmt.Errorf("%s: %w", m.goos, ErrUnsupportedOS)
}
