package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner runs external tools and captures their output
type CommandRunner struct {
	timeout time.Duration
}

// NewCommandRunner creates a runner. A zero timeout lets commands run until
// they exit or ctx is cancelled.
func NewCommandRunner(timeout time.Duration) *CommandRunner {
	return &CommandRunner{timeout: timeout}
}

// RunConfig describes one command invocation
type RunConfig struct {
	Name string
	Args []string
	Dir  string
}

// RunResult contains the result of a command invocation
type RunResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Run executes the command and waits for it to finish
func (r *CommandRunner) Run(ctx context.Context, config RunConfig) *RunResult {
	startTime := time.Now()
	result := &RunResult{}

	execCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	//nolint:gosec // G204: tool names come from the resolved toolchain
	cmd := exec.CommandContext(execCtx, config.Name, config.Args...)
	if config.Dir != "" {
		cmd.Dir = config.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		result.ExitCode = -1
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if execCtx.Err() == context.DeadlineExceeded {
			result.Error = fmt.Errorf("%s timed out after %v", config.Name, r.timeout)
		} else if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result
	}

	result.Success = true
	return result
}

// Err converts an unsuccessful result into an error carrying the tool's stderr
func (res *RunResult) Err(what string) error {
	if res.Success {
		return nil
	}
	stderr := strings.TrimSpace(res.Stderr)
	if stderr == "" {
		return fmt.Errorf("%s failed (exit %d): %w", what, res.ExitCode, res.Error)
	}
	return fmt.Errorf("%s failed (exit %d): %w\nStderr: %s", what, res.ExitCode, res.Error, stderr)
}
