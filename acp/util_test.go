// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import "testing"

func TestNewSessionIDShape(t *testing.T) {
	id := newSessionID()
	if len(id) != 32 {
		t.Errorf("len(newSessionID()) = %d, want 32", len(id))
	}
	if !hexSessionID.MatchString(id) {
		t.Errorf("newSessionID() = %q, want 32 lowercase hex chars", id)
	}
}

func TestNewSessionIDIsRandom(t *testing.T) {
	a, b := newSessionID(), newSessionID()
	if a == b {
		t.Errorf("two calls to newSessionID() produced the same id: %q", a)
	}
}
