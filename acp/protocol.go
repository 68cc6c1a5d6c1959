// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the integer protocol version this library implements
// and negotiates during initialize.
const ProtocolVersion = 1

// FSCapabilities declares which filesystem operations a client supports.
type FSCapabilities struct {
	ReadTextFile  bool `json:"readTextFile,omitempty"`
	WriteTextFile bool `json:"writeTextFile,omitempty"`
}

// ClientCapabilities is sent by the client in InitializeParams.
type ClientCapabilities struct {
	FS       FSCapabilities `json:"fs,omitempty"`
	Terminal bool           `json:"terminal,omitempty"`
}

// SessionCapabilities declares which session operations the agent
// supports.
type SessionCapabilities struct {
	New  bool `json:"new,omitempty"`
	Load bool `json:"load,omitempty"`
}

// McpCapabilities declares which MCP server transports the agent can
// connect to, beyond the baseline stdio transport.
type McpCapabilities struct {
	HTTP bool `json:"http,omitempty"`
	SSE  bool `json:"sse,omitempty"`
}

// PromptCapabilities declares which content block kinds the agent accepts
// in a session/prompt request, beyond plain text.
type PromptCapabilities struct {
	Image           bool `json:"image,omitempty"`
	Audio           bool `json:"audio,omitempty"`
	EmbeddedContext bool `json:"embeddedContext,omitempty"`
}

// AgentCapabilities is returned by the agent in InitializeResult.
type AgentCapabilities struct {
	Sessions           SessionCapabilities `json:"sessions,omitempty"`
	MCPCapabilities    McpCapabilities     `json:"mcpCapabilities,omitempty"`
	PromptCapabilities PromptCapabilities  `json:"promptCapabilities,omitempty"`
}

// AuthMethod is one way a client may authenticate with an agent before
// session/new, advertised in InitializeResult.AuthMethods.
type AuthMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// InitializeParams is the params of the initialize request (client → agent).
type InitializeParams struct {
	ProtocolVersion    int                `json:"protocolVersion"`
	ClientCapabilities ClientCapabilities `json:"clientCapabilities,omitempty"`
	Meta               Meta               `json:"_meta,omitempty"`
}

func (p *InitializeParams) validate() error {
	if p.ProtocolVersion <= 0 {
		return fmt.Errorf("acp: initialize: protocolVersion must be > 0")
	}
	return nil
}

// InitializeResult is the result of the initialize request (agent → client).
type InitializeResult struct {
	ProtocolVersion   int               `json:"protocolVersion"`
	AgentCapabilities AgentCapabilities `json:"agentCapabilities,omitempty"`
	AuthMethods       []AuthMethod      `json:"authMethods,omitempty"`
	Meta              Meta              `json:"_meta,omitempty"`
}

func (r *InitializeResult) validate() error {
	if r.ProtocolVersion <= 0 {
		return fmt.Errorf("acp: initialize result: protocolVersion must be > 0")
	}
	return nil
}

// AuthenticateParams is the params of the authenticate request.
type AuthenticateParams struct {
	MethodID string `json:"methodId"`
	Meta     Meta   `json:"_meta,omitempty"`
}

func (p *AuthenticateParams) validate() error {
	if p.MethodID == "" {
		return fmt.Errorf("acp: authenticate: methodId is required")
	}
	return nil
}

// AuthenticateResult is the (empty, reserved for extension) result of a
// successful authenticate request.
type AuthenticateResult struct {
	Meta Meta `json:"_meta,omitempty"`
}

// McpServers is the opaque passthrough list the client sends describing
// MCP servers the agent should connect to. The library never interprets
// its contents (spec: "integration with upstream tool-access protocols is
// out of scope"); it is forwarded to the host verbatim.
type McpServers = json.RawMessage

// NewSessionParams is the params of the session/new request.
type NewSessionParams struct {
	Cwd        string     `json:"cwd"`
	McpServers McpServers `json:"mcpServers,omitempty"`
	Meta       Meta       `json:"_meta,omitempty"`
}

func (p *NewSessionParams) validate() error {
	if p.Cwd == "" {
		return fmt.Errorf("acp: session/new: cwd is required")
	}
	return nil
}

// NewSessionResult is the result of the session/new request.
type NewSessionResult struct {
	SessionID string `json:"sessionId"`
	Meta      Meta   `json:"_meta,omitempty"`
}

func (r *NewSessionResult) validate() error {
	if r.SessionID == "" {
		return fmt.Errorf("acp: session/new result: sessionId is required")
	}
	return nil
}

// LoadSessionParams is the params of the session/load request, gated
// behind AgentCapabilities.Sessions.Load.
type LoadSessionParams struct {
	SessionID  string     `json:"sessionId"`
	Cwd        string     `json:"cwd"`
	McpServers McpServers `json:"mcpServers,omitempty"`
	Meta       Meta       `json:"_meta,omitempty"`
}

func (p *LoadSessionParams) validate() error {
	if p.SessionID == "" {
		return fmt.Errorf("acp: session/load: sessionId is required")
	}
	if p.Cwd == "" {
		return fmt.Errorf("acp: session/load: cwd is required")
	}
	return nil
}

// LoadSessionResult is the (empty, reserved for extension) result of a
// successful session/load request. The conversation history itself is
// replayed as a stream of session/update notifications sent before this
// result, not embedded in the result.
type LoadSessionResult struct {
	Meta Meta `json:"_meta,omitempty"`
}

// StopReason is why a session/prompt turn ended.
type StopReason string

const (
	StopDone      StopReason = "done"
	StopCancelled StopReason = "cancelled"
	StopLength    StopReason = "length"
	StopError     StopReason = "error"
)

// PromptParams is the params of the session/prompt request.
type PromptParams struct {
	SessionID string        `json:"sessionId"`
	Prompt    ContentBlocks `json:"prompt"`
	Meta      Meta          `json:"_meta,omitempty"`
}

func (p *PromptParams) validate() error {
	if p.SessionID == "" {
		return fmt.Errorf("acp: session/prompt: sessionId is required")
	}
	return nil
}

// PromptResult is the result of the session/prompt request.
type PromptResult struct {
	StopReason StopReason `json:"stopReason"`
	Meta       Meta       `json:"_meta,omitempty"`
}

func (r *PromptResult) validate() error {
	switch r.StopReason {
	case StopDone, StopCancelled, StopLength, StopError:
		return nil
	case "":
		return fmt.Errorf("acp: session/prompt result: stopReason is required")
	default:
		// Lenient decoders accept unknown stopReason values as an
		// extension point (spec §6); the connection runs this validator
		// on every result a host returns before sending it, so it rejects
		// the empty case above but lets forward-compatible extensions
		// through.
		return nil
	}
}

// CancelParams is the params of the session/cancel notification.
type CancelParams struct {
	SessionID string `json:"sessionId"`
	Meta      Meta   `json:"_meta,omitempty"`
}

func (p *CancelParams) validate() error {
	if p.SessionID == "" {
		return fmt.Errorf("acp: session/cancel: sessionId is required")
	}
	return nil
}

// ReadTextFileParams is the params of the fs/read_text_file request
// (agent → client).
type ReadTextFileParams struct {
	SessionID string `json:"sessionId"`
	Path      string `json:"path"`
	Line      *int64 `json:"line,omitempty"`
	Limit     *int64 `json:"limit,omitempty"`
	Meta      Meta   `json:"_meta,omitempty"`
}

func (p *ReadTextFileParams) validate() error {
	if p.Path == "" {
		return fmt.Errorf("acp: fs/read_text_file: path is required")
	}
	return nil
}

// ReadTextFileResult is the result of the fs/read_text_file request.
type ReadTextFileResult struct {
	Content string `json:"content"`
	Meta    Meta   `json:"_meta,omitempty"`
}

// WriteTextFileParams is the params of the fs/write_text_file request.
type WriteTextFileParams struct {
	SessionID string `json:"sessionId"`
	Path      string `json:"path"`
	Content   string `json:"content"`
	Meta      Meta   `json:"_meta,omitempty"`
}

func (p *WriteTextFileParams) validate() error {
	if p.Path == "" {
		return fmt.Errorf("acp: fs/write_text_file: path is required")
	}
	return nil
}

// WriteTextFileResult is the (empty, reserved for extension) result of a
// successful fs/write_text_file request.
type WriteTextFileResult struct {
	Meta Meta `json:"_meta,omitempty"`
}

// CreateTerminalParams is the params of the terminal/create request.
type CreateTerminalParams struct {
	SessionID       string   `json:"sessionId"`
	Command         string   `json:"command"`
	Args            []string `json:"args,omitempty"`
	Cwd             string   `json:"cwd,omitempty"`
	OutputByteLimit *int64   `json:"outputByteLimit,omitempty"`
	Meta            Meta     `json:"_meta,omitempty"`
}

func (p *CreateTerminalParams) validate() error {
	if p.Command == "" {
		return fmt.Errorf("acp: terminal/create: command is required")
	}
	return nil
}

// CreateTerminalResult is the result of the terminal/create request.
type CreateTerminalResult struct {
	TerminalID string `json:"terminalId"`
	Meta       Meta   `json:"_meta,omitempty"`
}

// TerminalIDParams is shared by the terminal/output, terminal/wait_for_exit,
// terminal/kill, and terminal/release requests, which all act on a
// previously created terminal and carry no other fields.
type TerminalIDParams struct {
	SessionID  string `json:"sessionId"`
	TerminalID string `json:"terminalId"`
	Meta       Meta   `json:"_meta,omitempty"`
}

func (p *TerminalIDParams) validate() error {
	if p.TerminalID == "" {
		return fmt.Errorf("acp: terminal: terminalId is required")
	}
	return nil
}

// TerminalOutputResult is the result of the terminal/output request.
type TerminalOutputResult struct {
	Output    string `json:"output"`
	Truncated bool   `json:"truncated,omitempty"`
	ExitCode  *int64 `json:"exitCode,omitempty"`
	Meta      Meta   `json:"_meta,omitempty"`
}

func (r *TerminalOutputResult) validate() error {
	if r.ExitCode != nil && *r.ExitCode < 0 {
		return fmt.Errorf("acp: terminal/output result: exitCode must be >= 0")
	}
	return nil
}

// WaitForExitResult is the result of the terminal/wait_for_exit request.
type WaitForExitResult struct {
	ExitCode *int64 `json:"exitCode,omitempty"`
	Signal   string `json:"signal,omitempty"`
	Meta     Meta   `json:"_meta,omitempty"`
}

func (r *WaitForExitResult) validate() error {
	if r.ExitCode != nil && *r.ExitCode < 0 {
		return fmt.Errorf("acp: terminal/wait_for_exit result: exitCode must be >= 0")
	}
	return nil
}

// emptyResult is the result shape for terminal/kill and terminal/release,
// which report success only.
type emptyResult struct {
	Meta Meta `json:"_meta,omitempty"`
}
