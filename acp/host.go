// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import "context"

// Agent is the behavioral contract a host implements to play the agent
// role: it answers messages sent by the peer client. The connection
// invokes these methods directly; Agent implementations never touch the
// transport.
//
// A method returning a non-nil *RPCError produces an error response on the
// wire; session/cancel has no reply and therefore no error return.
type Agent interface {
	// Initialize handles the connection-scoped initialize request. It is
	// the only mandatory agent-role callback.
	Initialize(ctx context.Context, params *InitializeParams) (*InitializeResult, *RPCError)

	// Authenticate handles the optional authenticate request, used when
	// InitializeResult.AuthMethods was non-empty.
	Authenticate(ctx context.Context, params *AuthenticateParams) (*AuthenticateResult, *RPCError)

	// NewSession handles session/new for a session the multiplexer has
	// already created and assigned a fresh sessionId to.
	NewSession(ctx context.Context, s *Session, params *NewSessionParams) (*NewSessionResult, *RPCError)

	// LoadSession handles the optional, capability-gated session/load
	// request. Implementations should replay prior session/update
	// notifications via s.Notify before returning.
	LoadSession(ctx context.Context, s *Session, params *LoadSessionParams) (*LoadSessionResult, *RPCError)

	// Prompt handles session/prompt: the agent's turn. Implementations
	// stream progress via s.Notify(SessionUpdate) and return once the
	// turn has a StopReason.
	Prompt(ctx context.Context, s *Session, params *PromptParams) (*PromptResult, *RPCError)

	// Cancel handles the session/cancel notification. It must not block;
	// a conformant implementation sets a flag the in-flight Prompt call
	// observes cooperatively.
	Cancel(ctx context.Context, s *Session, params *CancelParams)
}

// Client is the behavioral contract a host implements to play the client
// role: it answers messages sent by the peer agent.
type Client interface {
	// SessionUpdate handles the session/update notification, the agent's
	// streaming channel for this session's conversation.
	SessionUpdate(ctx context.Context, s *Session, n *SessionNotification)

	// ReadTextFile handles fs/read_text_file, gated on
	// ClientCapabilities.FS.ReadTextFile.
	ReadTextFile(ctx context.Context, s *Session, params *ReadTextFileParams) (*ReadTextFileResult, *RPCError)

	// WriteTextFile handles fs/write_text_file, gated on
	// ClientCapabilities.FS.WriteTextFile.
	WriteTextFile(ctx context.Context, s *Session, params *WriteTextFileParams) (*WriteTextFileResult, *RPCError)

	// CreateTerminal handles terminal/create, gated on
	// ClientCapabilities.Terminal.
	CreateTerminal(ctx context.Context, s *Session, params *CreateTerminalParams) (*CreateTerminalResult, *RPCError)

	// TerminalOutput handles terminal/output.
	TerminalOutput(ctx context.Context, s *Session, params *TerminalIDParams) (*TerminalOutputResult, *RPCError)

	// WaitForExit handles terminal/wait_for_exit.
	WaitForExit(ctx context.Context, s *Session, params *TerminalIDParams) (*WaitForExitResult, *RPCError)

	// KillTerminal handles terminal/kill.
	KillTerminal(ctx context.Context, s *Session, params *TerminalIDParams) *RPCError

	// ReleaseTerminal handles terminal/release.
	ReleaseTerminal(ctx context.Context, s *Session, params *TerminalIDParams) *RPCError
}
