package terminal

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"wvdeploy/internal/logger"
)

type Command struct {
	Command string
	Args    []string
	Dir     string
}

// BuildResult is the outcome of a streamed child process.
type BuildResult struct {
	ExitCode int
}

func NewCommand(command string, args ...string) *Command {
	return &Command{
		Command: command,
		Args:    args,
	}
}

// NewBuildCommand returns the project build command, forwarding env as a trailing
// argument after "--" when set.
func NewBuildCommand(command string, baseArgs []string, env string) *Command {
	args := append([]string{}, baseArgs...)

	if env != "" {
		args = append(args, "--", env)
	}

	return NewCommand(command, args...)
}

func (c *Command) String() string {
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}

// Stream runs the command with its stdout and stderr attached directly to the given
// writers and blocks until it exits.
func (c *Command) Stream(stdOut io.Writer, errOut io.Writer) (*BuildResult, error) {
	cmd := exec.Command(c.Command, c.Args...)

	if c.Dir != "" {
		cmd.Dir = c.Dir
	}

	cmd.Stdout = stdOut
	cmd.Stderr = errOut

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrBuild, ErrBuildLaunch, err)
	}

	err := cmd.Wait()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Debug("%s exited with status %d", c, exitErr.ExitCode())
			return &BuildResult{ExitCode: exitErr.ExitCode()}, fmt.Errorf("%w: %w: exit status %d", ErrBuild, ErrBuildFailed, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("%w: %v", ErrBuild, err)
	}

	return &BuildResult{ExitCode: 0}, nil
}

// Builder runs the build command for a named build environment.
type Builder struct {
	Command  string
	BaseArgs []string
	Dir      string
	StdOut   io.Writer
	ErrOut   io.Writer
}

func (b *Builder) Build(env string) error {
	cmd := NewBuildCommand(b.Command, b.BaseArgs, env)
	cmd.Dir = b.Dir

	fmt.Fprintf(b.StdOut, "===> %s\n", cmd)

	_, err := cmd.Stream(b.StdOut, b.ErrOut)

	return err
}
