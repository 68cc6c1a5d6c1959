// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package jsonrpc2 implements the wire-level JSON-RPC 2.0 envelope shared by
// both ends of an Agent Client Protocol connection: request/response/
// notification framing, the reserved and protocol-specific error codes, and
// strict decoding that rejects case-smuggled or unknown fields.
//
// It does not know anything about ACP method names or parameter shapes;
// those live in the acp package. This package only understands the
// envelope.
package jsonrpc2

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const version = "2.0"

// Message is a JSON-RPC 2.0 request, response, or notification.
//
// It is the one type exchanged between the framer and the connection's
// dispatcher: a single line of wire JSON decodes into exactly one Message,
// which the dispatcher then classifies by examining ID and Method.
type Message struct {
	// ID is the raw wire representation of the request/response id: either a
	// JSON number or a JSON string, preserved byte-for-byte so it can be
	// echoed back unchanged. Nil for notifications.
	ID json.RawMessage `json:"id,omitempty"`
	// Method is set on requests and notifications; empty on responses.
	Method string `json:"method,omitempty"`
	// Params holds the request or notification parameters, still encoded.
	Params json.RawMessage `json:"params,omitempty"`
	// Result holds a successful response's result, still encoded. Mutually
	// exclusive with Error.
	Result json.RawMessage `json:"result,omitempty"`
	// Error holds a failed response's error. Mutually exclusive with Result.
	Error *Error `json:"error,omitempty"`
}

// wireMessage is Message plus the mandatory "jsonrpc" tag, used only at the
// marshal/unmarshal boundary so callers never have to think about it.
type wireMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// IsRequest reports whether m is a request: it has both an id and a method.
func (m *Message) IsRequest() bool { return len(m.ID) > 0 && m.Method != "" }

// IsResponse reports whether m is a response: it has an id but no method.
func (m *Message) IsResponse() bool { return len(m.ID) > 0 && m.Method == "" }

// IsNotification reports whether m is a notification: it has a method but no id.
func (m *Message) IsNotification() bool { return len(m.ID) == 0 && m.Method != "" }

// NewRequest builds a request Message with the given integer id.
func NewRequest(id int64, method string, params json.RawMessage) *Message {
	return &Message{ID: encodeIntID(id), Method: method, Params: params}
}

// NewNotification builds a notification Message.
func NewNotification(method string, params json.RawMessage) *Message {
	return &Message{Method: method, Params: params}
}

// NewResultResponse builds a success response echoing id verbatim.
func NewResultResponse(id json.RawMessage, result json.RawMessage) *Message {
	return &Message{ID: id, Result: result}
}

// NewErrorResponse builds an error response echoing id verbatim.
func NewErrorResponse(id json.RawMessage, err *Error) *Message {
	return &Message{ID: id, Error: err}
}

func encodeIntID(id int64) json.RawMessage {
	return json.RawMessage(strconv.FormatInt(id, 10))
}

// IntID parses m.ID as an integer, as used for ids this side allocated
// itself (spec: outbound ids are always integers). ok is false if ID is
// absent or not a JSON number.
func (m *Message) IntID() (id int64, ok bool) {
	if len(m.ID) == 0 {
		return 0, false
	}
	if err := json.Unmarshal(m.ID, &id); err != nil {
		return 0, false
	}
	return id, true
}

// Marshal encodes m as a complete JSON-RPC 2.0 wire object, including the
// "jsonrpc" member.
func Marshal(m *Message) ([]byte, error) {
	w := wireMessage{
		JSONRPC: version,
		ID:      m.ID,
		Method:  m.Method,
		Params:  m.Params,
		Result:  m.Result,
		Error:   m.Error,
	}
	return json.Marshal(w)
}

// Unmarshal decodes a single JSON-RPC 2.0 wire object into a Message,
// running the envelope through StrictUnmarshal: case-variant duplicate keys
// and unrecognized top-level members are rejected, which protects the
// id/method fields driving dispatch (and, transitively, any "sessionId"
// nested inside params) from case-confusion smuggling. Params, Result, and
// Error stay opaque json.RawMessage/*Error here, so DisallowUnknownFields
// never sees inside a request's params — ACP method params are decoded
// separately with plain encoding/json, tolerating unknown fields per
// spec.md's forward-compatibility invariant.
func Unmarshal(data []byte) (*Message, error) {
	var w wireMessage
	if err := StrictUnmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("jsonrpc2: decoding envelope: %w", err)
	}
	if w.JSONRPC != "" && w.JSONRPC != version {
		return nil, fmt.Errorf("jsonrpc2: unsupported jsonrpc version %q", w.JSONRPC)
	}
	if w.Result != nil && w.Error != nil {
		return nil, fmt.Errorf("jsonrpc2: message has both result and error")
	}
	return &Message{
		ID:     w.ID,
		Method: w.Method,
		Params: w.Params,
		Result: w.Result,
		Error:  w.Error,
	}, nil
}
