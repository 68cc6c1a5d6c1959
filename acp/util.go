// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
)

func assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}

// newSessionID returns a fresh session identifier: 128 bits of
// crypto/rand entropy rendered as 32 lowercase hex characters, the
// entropy and spelling the protocol requires of the agent role's
// session/new handler.
func newSessionID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("acp: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf[:])
}

// remarshal marshals from to JSON, and then unmarshals into to, which must be
// a pointer type.
func remarshal(from, to any) error {
	data, err := json.Marshal(from)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, to); err != nil {
		return err
	}
	return nil
}
