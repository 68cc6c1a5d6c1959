// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package acp implements the core of the Agent Client Protocol: a
// bidirectional, stateful JSON-RPC 2.0 protocol spoken between a code
// editor (the client) and an AI coding agent that runs as a local
// subprocess (the agent), framed as newline-delimited JSON over the
// subprocess's standard input and output.
//
// A host implements either the Agent or the Client interface and drives a
// Connection constructed with NewAgentConnection or NewClientConnection.
// The Connection owns framing, request/response correlation, and session
// routing; the host only ever sees decoded params and returns typed
// results or *RPCError values.
package acp
