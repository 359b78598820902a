// Package process runs external programs (image viewers, animation
// encoders) from an allow-list of registered commands.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"
)

// ErrNotRegistered is returned when a command name is missing from the registry.
var ErrNotRegistered = errors.New("process command not registered")

// Runner executes local processes.
// It follows a Strict Registry pattern: only registered commands run.
type Runner struct {
	registry map[string]ProcessConfig
	baseDir  string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from a loaded config.
func WithRegistry(cmds map[string]ProcessConfig) RunnerOption {
	return func(r *Runner) {
		for name, c := range cmds {
			c.Name = name
			r.registry[name] = c
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]ProcessConfig),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list, replacing any previous
// entry under the same name.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = ProcessConfig{
		Name:    name,
		Command: command,
		Args:    args,
	}
}

// Registered reports whether name is in the allow-list.
func (r *Runner) Registered(name string) bool {
	_, ok := r.registry[name]
	return ok
}

// Names returns the registered command names in lexical order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call is one invocation of a registered command.
type Call struct {
	Name string
	// Args are appended after the registered arguments.
	Args []string
	// Vars are exported as REEL_ARG_<KEY> environment variables.
	Vars  map[string]string
	Stdin io.Reader
}

// Execute runs a registered command and returns its trimmed stdout.
// A non-zero exit is reported as an error carrying stderr.
func (r *Runner) Execute(ctx context.Context, call Call) (string, error) {
	proc, ok := r.registry[call.Name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotRegistered, call.Name)
	}

	args := append(append([]string{}, proc.Args...), call.Args...)
	cmd := exec.CommandContext(ctx, proc.Command, args...)
	cmd.Dir = r.baseDir
	cmd.Stdin = call.Stdin

	env := cmd.Environ()
	for k, v := range proc.Environment {
		env = append(env, k+"="+v)
	}
	for k, v := range call.Vars {
		env = append(env, fmt.Sprintf("REEL_ARG_%s=%s", strings.ToUpper(k), v))
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: execution failed: %w. Stderr: %s",
			call.Name, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
