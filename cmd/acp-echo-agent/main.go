// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command acp-echo-agent is a minimal ACP agent: it accepts any session and
// echoes the text of every prompt back as a single agent_message_chunk
// before reporting stopReason "done". It speaks ACP over its own stdin and
// stdout, so it is meant to be launched as a subprocess by an ACP client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lostbean/acp-go/acp"
)

type echoAgent struct{}

func (echoAgent) Initialize(ctx context.Context, params *acp.InitializeParams) (*acp.InitializeResult, *acp.RPCError) {
	return &acp.InitializeResult{
		ProtocolVersion: acp.ProtocolVersion,
		AgentCapabilities: acp.AgentCapabilities{
			Sessions: acp.SessionCapabilities{New: true},
			PromptCapabilities: acp.PromptCapabilities{
				Image: false,
				Audio: false,
			},
		},
	}, nil
}

func (echoAgent) Authenticate(ctx context.Context, params *acp.AuthenticateParams) (*acp.AuthenticateResult, *acp.RPCError) {
	return nil, acp.ErrCapabilityNotSupported("authenticate")
}

func (echoAgent) NewSession(ctx context.Context, s *acp.Session, params *acp.NewSessionParams) (*acp.NewSessionResult, *acp.RPCError) {
	return &acp.NewSessionResult{SessionID: s.ID()}, nil
}

func (echoAgent) LoadSession(ctx context.Context, s *acp.Session, params *acp.LoadSessionParams) (*acp.LoadSessionResult, *acp.RPCError) {
	return nil, acp.ErrCapabilityNotSupported("session/load")
}

func (echoAgent) Prompt(ctx context.Context, s *acp.Session, params *acp.PromptParams) (*acp.PromptResult, *acp.RPCError) {
	var text string
	for _, block := range params.Prompt {
		if t, ok := block.(*acp.TextContent); ok {
			text += t.Text
		}
	}
	err := s.Notify(ctx, &acp.AgentMessageChunk{Content: &acp.TextContent{Text: text}})
	if err != nil {
		return nil, acp.NewError(acp.CodeInternalError, err.Error(), nil)
	}
	return &acp.PromptResult{StopReason: acp.StopDone}, nil
}

func (echoAgent) Cancel(ctx context.Context, s *acp.Session, params *acp.CancelParams) {}

func main() {
	log := acp.NewLogger(os.Stderr, zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transport := acp.NewStdioTransport(log)
	conn := acp.NewAgentConnection(transport, echoAgent{}, acp.WithLogger(log))

	if err := conn.Run(ctx); err != nil {
		log.Error().Err(err).Msg("acp-echo-agent: connection ended with error")
		os.Exit(1)
	}
}
