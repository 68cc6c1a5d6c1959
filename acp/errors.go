// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"github.com/lostbean/acp-go/internal/jsonrpc2"
)

// RPCError is a JSON-RPC 2.0 error, returned verbatim to the peer by the
// connection's dispatcher, or returned to the host-facing SendRequest
// caller when the peer's response carries an error.
type RPCError = jsonrpc2.Error

// The reserved JSON-RPC 2.0 error codes.
const (
	CodeParseError     = jsonrpc2.CodeParseError
	CodeInvalidRequest = jsonrpc2.CodeInvalidRequest
	CodeMethodNotFound = jsonrpc2.CodeMethodNotFound
	CodeInvalidParams  = jsonrpc2.CodeInvalidParams
	CodeInternalError  = jsonrpc2.CodeInternalError
)

// The ACP-specific error codes (spec §3, §6).
const (
	CodeResourceNotFound       = jsonrpc2.CodeResourceNotFound
	CodePermissionDenied       = jsonrpc2.CodePermissionDenied
	CodeInvalidState           = jsonrpc2.CodeInvalidState
	CodeCapabilityNotSupported = jsonrpc2.CodeCapabilityNotSupported
)

// NewError builds an *RPCError for returning a structured failure from a
// host callback.
func NewError(code int64, message string, data any) *RPCError {
	return jsonrpc2.NewError(code, message, data)
}

// ErrResourceNotFound builds the -32001 error used for an unknown sessionId
// on the agent role, and for fs/terminal resources the client can't find.
func ErrResourceNotFound(what string) *RPCError {
	return jsonrpc2.ResourceNotFound(what)
}

// ErrPermissionDenied builds the -32002 error.
func ErrPermissionDenied(reason string) *RPCError {
	return jsonrpc2.NewError(CodePermissionDenied, reason, nil)
}

// ErrInvalidState builds the -32003 error, used e.g. when session/new is
// called before a required authenticate exchange completes.
func ErrInvalidState(reason string) *RPCError {
	return jsonrpc2.NewError(CodeInvalidState, reason, nil)
}

// ErrCapabilityNotSupported builds the -32004 error.
func ErrCapabilityNotSupported(capability string) *RPCError {
	return jsonrpc2.NewError(CodeCapabilityNotSupported, "capability not supported: "+capability, nil)
}

// ErrTransportClosed is returned to a pending SendRequest caller when the
// connection drains before a response arrives.
var ErrTransportClosed = jsonrpc2.TransportClosed

// ErrTimeout is returned to a pending SendRequest caller whose deadline
// elapsed before a response arrived.
var ErrTimeout = jsonrpc2.Timeout
