package utils

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"

	"graphstack-keeper/internal/models"
)

// CommandRunner runs external administrative commands and returns captured,
// trimmed standard output. All container engine interaction goes through
// this interface so the brittle text contract stays mockable.
type CommandRunner interface {
	Run(ctx context.Context, command string) (string, error)
	RunDir(ctx context.Context, dir string, command string) (string, error)
}

// ShellRunner executes commands through the host's command interpreter.
type ShellRunner struct{}

func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

func (r *ShellRunner) Run(ctx context.Context, command string) (string, error) {
	return r.RunDir(ctx, "", command)
}

/**
 * Run one command line through the platform shell
 * @param {context.Context} ctx - Context for cancellation and timeout
 * @param {string} dir - Working directory, empty for inherited
 * @param {string} command - Full command line
 * @returns {string} Trimmed standard output on success
 * @returns {error} *models.CommandError carrying captured stderr on failure
 * @description
 * - Uses "sh -c" on POSIX platforms and "cmd /C" on Windows
 * - Captures stdout and stderr separately
 * - Non-zero exit and spawn failure both surface as CommandError
 */
func (r *ShellRunner) RunDir(ctx context.Context, dir string, command string) (string, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &models.CommandError{
			Command: command,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}
