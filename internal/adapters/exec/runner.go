package exec

import (
	"bytes"
	"context"
	stderrs "errors"
	"fmt"
	"io"
	osexec "os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"

	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

const maxOutputInError = 2048

type Runner struct {
	logger ports.Logger
	tee    io.Writer
	env    []string
}

type Option func(*Runner)

// WithOutput copies command output to w as it is produced.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.tee = w }
}

// WithEnv appends KEY=VALUE entries to the inherited environment.
func WithEnv(env ...string) Option {
	return func(r *Runner) { r.env = append(r.env, env...) }
}

func NewRunner(logger ports.Logger, opts ...Option) *Runner {
	r := &Runner{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Run(ctx context.Context, cmd ports.Command) (ports.CommandResult, error) {
	line := CommandLine(cmd)
	r.logger.Debugf(ctx, "Running: %s", line)

	c := osexec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(r.env) > 0 {
		c.Env = append(c.Environ(), r.env...)
	}
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}

	var out bytes.Buffer
	var w io.Writer = &out
	if r.tee != nil {
		w = io.MultiWriter(&out, r.tee)
	}
	c.Stdout = w
	c.Stderr = w

	err := c.Run()
	result := ports.CommandResult{Output: out.String()}
	if err == nil {
		return result, nil
	}

	var exitErr *osexec.ExitError
	if stderrs.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		cause := fmt.Errorf("exit status %d: %s", result.ExitCode, tail(result.Output))
		return result, errors.Wrap(cause, errors.CodeExternalCommand, fmt.Sprintf("command failed: %s", line))
	}
	result.ExitCode = -1
	return result, errors.Wrap(err, errors.CodeExternalCommand, fmt.Sprintf("could not run: %s", line))
}

// CommandLine renders cmd as a copy-pasteable shell line. Stdin is never
// included.
func CommandLine(cmd ports.Command) string {
	return shellescape.QuoteCommand(append([]string{cmd.Name}, cmd.Args...))
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxOutputInError {
		return "..." + s[len(s)-maxOutputInError:]
	}
	return s
}
