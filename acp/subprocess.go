// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
)

// resolveExecutable validates path per the client-role executable
// resolution rules: if path is not absolute, it is searched for on the
// process's PATH; the resolved path must exist and have some execute bit
// set. The OS alone interprets shebangs, scripts, and symlinks — this
// function does not inspect file contents.
func resolveExecutable(path string) (string, error) {
	resolved := path
	if !filepath.IsAbs(path) {
		found, err := exec.LookPath(path)
		if err != nil {
			return "", fmt.Errorf("acp: resolving agent executable %q: not found on PATH: %w", path, err)
		}
		resolved = found
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("acp: resolving agent executable %q: %w", resolved, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("acp: resolving agent executable %q: is a directory", resolved)
	}
	if info.Mode()&0o111 == 0 {
		return "", fmt.Errorf("acp: resolving agent executable %q: not executable", resolved)
	}
	return resolved, nil
}

// subprocessTransport is the client-role Transport: it spawns the agent
// executable, inherits the parent environment, and frames ndjson over the
// child's stdin/stdout. Stderr is captured separately and exposed via
// Stderr for the host to drain (e.g. into its own log sink).
type subprocessTransport struct {
	*ioTransport
	cmd    *exec.Cmd
	Stderr io.Reader
}

// spawnSubprocess resolves path, starts it with args, and wires its stdio
// into an ndjson Transport. The returned transport's Close also kills the
// child if it is still alive (spec: "the child process is killed if the
// connection is torn down while still active").
func spawnSubprocess(ctx context.Context, path string, args []string, log zerolog.Logger) (*subprocessTransport, error) {
	resolved, err := resolveExecutable(path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, resolved, args...)
	cmd.Env = os.Environ()
	cmd.Cancel = func() error { return cmd.Process.Kill() }

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("acp: spawning %q: stdin pipe: %w", resolved, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("acp: spawning %q: stdout pipe: %w", resolved, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("acp: spawning %q: stderr pipe: %w", resolved, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("acp: spawning %q: %w", resolved, err)
	}
	log.Info().Str("path", resolved).Strs("args", args).Int("pid", cmd.Process.Pid).Msg("acp: spawned agent subprocess")

	closer := closerFunc(func() error {
		stdin.Close()
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		return cmd.Wait()
	})

	return &subprocessTransport{
		ioTransport: newIOTransport(stdout, stdin, closer, log),
		cmd:         cmd,
		Stderr:      stderr,
	}, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// NewSubprocessTransport spawns the agent executable at path with args and
// returns the client-role Transport wired to its stdio (spec §4.1's "open"
// operation for the client role). The returned stderr reader streams the
// child's stderr for the host to drain into its own log sink; the host is
// free to ignore it.
func NewSubprocessTransport(ctx context.Context, path string, args []string, log zerolog.Logger) (transport Transport, stderr io.Reader, err error) {
	t, err := spawnSubprocess(ctx, path, args, log)
	if err != nil {
		return nil, nil, err
	}
	return t, t.Stderr, nil
}
