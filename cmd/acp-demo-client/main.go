// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command acp-demo-client spawns an ACP agent as a subprocess and drives
// the initialize / session/new / session/prompt happy path from spec.md
// §8 scenario S1, printing every session/update notification it receives
// and answering fs/read_text_file itself. It is meant to be pointed at
// acp-echo-agent, but speaks plain ACP so any conformant agent works.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lostbean/acp-go/acp"
)

type loggingClient struct{}

func (loggingClient) SessionUpdate(ctx context.Context, s *acp.Session, n *acp.SessionNotification) {
	switch u := n.Update.(type) {
	case *acp.AgentMessageChunk:
		if t, ok := u.Content.(*acp.TextContent); ok {
			fmt.Print(t.Text)
		}
	case *acp.AgentThoughtChunk:
		if t, ok := u.Content.(*acp.TextContent); ok {
			fmt.Fprintf(os.Stderr, "[thought] %s\n", t.Text)
		}
	case *acp.Plan:
		fmt.Fprintf(os.Stderr, "[plan] %d step(s)\n", len(u.Entries))
	default:
		fmt.Fprintf(os.Stderr, "[update] %T\n", u)
	}
}

func (loggingClient) ReadTextFile(ctx context.Context, s *acp.Session, params *acp.ReadTextFileParams) (*acp.ReadTextFileResult, *acp.RPCError) {
	data, err := os.ReadFile(params.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, acp.ErrResourceNotFound(params.Path)
		}
		if errors.Is(err, os.ErrPermission) {
			return nil, acp.ErrPermissionDenied(err.Error())
		}
		return nil, acp.NewError(acp.CodeInternalError, err.Error(), nil)
	}
	return &acp.ReadTextFileResult{Content: string(data)}, nil
}

func (loggingClient) WriteTextFile(ctx context.Context, s *acp.Session, params *acp.WriteTextFileParams) (*acp.WriteTextFileResult, *acp.RPCError) {
	if err := os.WriteFile(params.Path, []byte(params.Content), 0o644); err != nil {
		return nil, acp.NewError(acp.CodeInternalError, err.Error(), nil)
	}
	return &acp.WriteTextFileResult{}, nil
}

func (loggingClient) CreateTerminal(ctx context.Context, s *acp.Session, params *acp.CreateTerminalParams) (*acp.CreateTerminalResult, *acp.RPCError) {
	return nil, acp.ErrCapabilityNotSupported("terminal/create")
}

func (loggingClient) TerminalOutput(ctx context.Context, s *acp.Session, params *acp.TerminalIDParams) (*acp.TerminalOutputResult, *acp.RPCError) {
	return nil, acp.ErrCapabilityNotSupported("terminal/output")
}

func (loggingClient) WaitForExit(ctx context.Context, s *acp.Session, params *acp.TerminalIDParams) (*acp.WaitForExitResult, *acp.RPCError) {
	return nil, acp.ErrCapabilityNotSupported("terminal/wait_for_exit")
}

func (loggingClient) KillTerminal(ctx context.Context, s *acp.Session, params *acp.TerminalIDParams) *acp.RPCError {
	return acp.ErrCapabilityNotSupported("terminal/kill")
}

func (loggingClient) ReleaseTerminal(ctx context.Context, s *acp.Session, params *acp.TerminalIDParams) *acp.RPCError {
	return acp.ErrCapabilityNotSupported("terminal/release")
}

func main() {
	var (
		prompt  = flag.String("prompt", "hello from acp-demo-client", "prompt text to send")
		cwd     = flag.String("cwd", ".", "working directory to advertise in session/new")
		timeout = flag.Duration("timeout", 30*time.Second, "overall deadline for the demo run")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <agent-path> [agent-args...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	agentPath, agentArgs := flag.Arg(0), flag.Args()[1:]

	log := acp.NewLogger(os.Stderr, zerolog.InfoLevel)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	transport, stderr, err := acp.NewSubprocessTransport(ctx, agentPath, agentArgs, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "acp-demo-client:", err)
		os.Exit(1)
	}
	go drainStderr(stderr)

	conn := acp.NewClientConnection(transport, loggingClient{}, acp.WithLogger(log))
	go conn.Run(ctx)
	defer conn.Close()

	initResult, rpcErr, err := sendJSON[acp.InitializeResult](ctx, conn, "initialize", &acp.InitializeParams{
		ProtocolVersion: acp.ProtocolVersion,
		ClientCapabilities: acp.ClientCapabilities{
			FS: acp.FSCapabilities{ReadTextFile: true, WriteTextFile: true},
		},
	})
	must(err, rpcErr, "initialize")
	fmt.Fprintf(os.Stderr, "[initialize] agentCapabilities=%+v\n", initResult.AgentCapabilities)

	newSession, rpcErr, err := sendJSON[acp.NewSessionResult](ctx, conn, "session/new", &acp.NewSessionParams{Cwd: *cwd})
	must(err, rpcErr, "session/new")
	fmt.Fprintf(os.Stderr, "[session/new] sessionId=%s\n", newSession.SessionID)

	result, rpcErr, err := sendJSON[acp.PromptResult](ctx, conn, "session/prompt", &acp.PromptParams{
		SessionID: newSession.SessionID,
		Prompt:    acp.ContentBlocks{&acp.TextContent{Text: *prompt}},
	})
	must(err, rpcErr, "session/prompt")
	fmt.Println()
	fmt.Fprintf(os.Stderr, "[session/prompt] stopReason=%s\n", result.StopReason)
}

func must(err error, rpcErr *acp.RPCError, step string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "acp-demo-client: %s: %v\n", step, err)
		os.Exit(1)
	}
	if rpcErr != nil {
		fmt.Fprintf(os.Stderr, "acp-demo-client: %s: %v\n", step, rpcErr)
		os.Exit(1)
	}
}

// sendJSON sends method/params and decodes the result into T, the thin
// generic wrapper every typed call below this point uses so the decode
// boilerplate isn't repeated per method.
func sendJSON[T any](ctx context.Context, conn *acp.Connection, method string, params any) (*T, *acp.RPCError, error) {
	raw, rpcErr, err := conn.SendRequest(ctx, method, params)
	if err != nil || rpcErr != nil {
		return nil, rpcErr, err
	}
	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, nil, fmt.Errorf("decoding %s result: %w", method, err)
	}
	return &result, nil, nil
}

// drainStderr copies the agent's stderr to our own, line by line, so the
// two processes' logs don't interleave mid-line.
func drainStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fmt.Fprintln(os.Stderr, "[agent]", scanner.Text())
	}
}
