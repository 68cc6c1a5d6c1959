// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveExecutableAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho hi\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	resolved, err := resolveExecutable(path)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != path {
		t.Errorf("resolveExecutable() = %q, want %q", resolved, path)
	}
}

func TestResolveExecutableRejectsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agent")
	if err := os.WriteFile(path, []byte("not a script"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveExecutable(path); err == nil {
		t.Error("resolveExecutable() should reject a file with no execute bit set")
	}
}

func TestResolveExecutableRejectsMissingFile(t *testing.T) {
	if _, err := resolveExecutable(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("resolveExecutable() should fail for a nonexistent absolute path")
	}
}

func TestResolveExecutableRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := resolveExecutable(dir); err == nil {
		t.Error("resolveExecutable() should reject a directory")
	}
}

func TestResolveExecutableSearchesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my-agent-tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	resolved, err := resolveExecutable("my-agent-tool")
	if err != nil {
		t.Fatal(err)
	}
	if resolved != path {
		t.Errorf("resolveExecutable() = %q, want %q", resolved, path)
	}
}
