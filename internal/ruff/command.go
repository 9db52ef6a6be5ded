package ruff

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fork-tongue/ruff-cgx/internal/log"
)

// EnvCommand is the environment variable selecting the ruff executable when
// no explicit override is configured.
const EnvCommand = "RUFF_COMMAND"

// DefaultCommand is the bare executable name resolved on the search path.
const DefaultCommand = "ruff"

const (
	checkTimeout = 30 * time.Second
	probeTimeout = 5 * time.Second
)

// ResolveCommand returns the ruff executable to invoke. Precedence:
// explicit override, then the RUFF_COMMAND environment variable, then the
// bare default on the search path.
func ResolveCommand(override string) string {
	if override != "" {
		return override
	}
	if env := os.Getenv(EnvCommand); env != "" {
		return env
	}
	return DefaultCommand
}

// CommandRunner invokes ruff as a blocking child process. The command is
// resolved once at construction; callers needing a different executable
// construct a new runner rather than mutating shared state.
type CommandRunner struct {
	command string
}

// NewCommandRunner creates a runner for the given executable override
// (empty means environment/default resolution).
func NewCommandRunner(override string) *CommandRunner {
	return &CommandRunner{command: ResolveCommand(override)}
}

// Command returns the resolved executable.
func (r *CommandRunner) Command() string {
	return r.command
}

// Format implements Runner. The source round-trips through a temporary
// workspace; quote style and line width travel in a generated ruff config.
func (r *CommandRunner) Format(ctx context.Context, source string, opts FormatOptions) (string, error) {
	dir, err := os.MkdirTemp("", "ruff-cgx-")
	if err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, "source.py")
	if err := os.WriteFile(target, []byte(source), 0o600); err != nil {
		return "", fmt.Errorf("write workspace: %w", err)
	}

	args := []string{"format"}
	if cfg := formatConfig(opts); cfg != "" {
		cfgPath := filepath.Join(dir, "ruff.toml")
		if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
			return "", fmt.Errorf("write workspace: %w", err)
		}
		args = append(args, "--config", cfgPath)
	}
	args = append(args, target)

	if _, _, err := r.run(ctx, checkTimeout, args...); err != nil {
		if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout) {
			return "", err
		}
		// ruff exits non-zero on unformattable source; the file on disk is
		// untouched, so the original text comes back unchanged
		log.Warn("ruff format failed: %v", err)
	}

	formatted, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("read workspace: %w", err)
	}
	return string(formatted), nil
}

// Check implements Runner. RUF100 (unused noqa) is always suppressed: the
// pipeline tags every synthesized line with noqa on purpose.
func (r *CommandRunner) Check(ctx context.Context, source string, opts CheckOptions) (CheckResult, error) {
	dir, err := os.MkdirTemp("", "ruff-cgx-")
	if err != nil {
		return CheckResult{}, fmt.Errorf("create workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, "source.py")
	if err := os.WriteFile(target, []byte(source), 0o600); err != nil {
		return CheckResult{}, fmt.Errorf("write workspace: %w", err)
	}

	args := []string{"check", "--output-format=json", "--no-cache", "--ignore=RUF100"}
	if opts.Fix {
		args = append(args, "--fix")
	}
	args = append(args, target)

	stdout, _, err := r.run(ctx, checkTimeout, args...)
	if err != nil {
		if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout) {
			return CheckResult{}, err
		}
		// exit code 1 just means diagnostics were found; the JSON on stdout
		// is still the authoritative result
	}

	var result CheckResult
	if len(bytes.TrimSpace(stdout)) > 0 {
		if err := json.Unmarshal(stdout, &result.Diagnostics); err != nil {
			return CheckResult{}, fmt.Errorf("parse ruff output: %w", err)
		}
	}

	if opts.Fix {
		fixed, err := os.ReadFile(target)
		if err != nil {
			return CheckResult{}, fmt.Errorf("read workspace: %w", err)
		}
		result.Fixed = string(fixed)
	}
	return result, nil
}

// Available implements Runner with a short version probe.
func (r *CommandRunner) Available(ctx context.Context) error {
	_, _, err := r.run(ctx, probeTimeout, "--version")
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// run executes ruff with the given arguments and bounded duration.
func (r *CommandRunner) run(ctx context.Context, timeout time.Duration, args ...string) (stdout, stderr []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command, args...)
	cmd.Env = append(os.Environ(), "CLICOLOR_FORCE=1")

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return outBuf.Bytes(), errBuf.Bytes(), ErrTimeout
	}
	if runErr != nil {
		// a bare name failing PATH lookup arrives as *exec.Error; an explicit
		// path to a missing or unexecutable binary arrives as a path error
		var execErr *exec.Error
		if errors.As(runErr, &execErr) {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, execErr)
		}
		if errors.Is(runErr, fs.ErrNotExist) || errors.Is(runErr, fs.ErrPermission) {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, runErr)
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return outBuf.Bytes(), errBuf.Bytes(), fmt.Errorf("%s exited %d: %s",
				r.command, exitErr.ExitCode(), strings.TrimSpace(errBuf.String()))
		}
		return outBuf.Bytes(), errBuf.Bytes(), runErr
	}
	return outBuf.Bytes(), errBuf.Bytes(), nil
}

func formatConfig(opts FormatOptions) string {
	var b strings.Builder
	if opts.LineLength > 0 {
		fmt.Fprintf(&b, "line-length = %d\n", opts.LineLength)
	}
	if opts.SingleQuotes {
		b.WriteString("[format]\nquote-style = \"single\"\n")
	}
	return b.String()
}
