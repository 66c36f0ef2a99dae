package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

// CommandRecorder is a ports.CommandRunner that records every command and
// succeeds unless a rule says otherwise.
type CommandRecorder struct {
	mu       sync.Mutex
	Commands []ports.Command
	rules    []failRule
	// NotReadyFor makes the first N readiness probes fail.
	NotReadyFor int
}

type failRule struct {
	prefix    string
	output    string
	remaining int
	forever   bool
}

// FailWhen makes commands whose rendered args start with prefix fail with
// output. times <= 0 fails forever.
func (r *CommandRecorder) FailWhen(prefix, output string, times int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, failRule{prefix: prefix, output: output, remaining: times, forever: times <= 0})
}

func (r *CommandRecorder) Run(_ context.Context, cmd ports.Command) (ports.CommandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = append(r.Commands, cmd)

	line := strings.Join(cmd.Args, " ")
	if line == "--ready" && r.NotReadyFor > 0 {
		r.NotReadyFor--
		return ports.CommandResult{ExitCode: 1}, errors.New(errors.CodeExternalCommand, "not ready")
	}
	for i := range r.rules {
		rule := &r.rules[i]
		if !strings.HasPrefix(line, rule.prefix) {
			continue
		}
		if !rule.forever {
			if rule.remaining == 0 {
				continue
			}
			rule.remaining--
		}
		return ports.CommandResult{ExitCode: 1, Output: rule.output},
			errors.New(errors.CodeExternalCommand, fmt.Sprintf("%s %s: exit status 1", cmd.Name, line))
	}
	return ports.CommandResult{}, nil
}

// Lines returns each recorded command as "name arg arg...".
func (r *CommandRecorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		out = append(out, strings.TrimSpace(c.Name+" "+strings.Join(c.Args, " ")))
	}
	return out
}
