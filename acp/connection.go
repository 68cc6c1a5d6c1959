// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lostbean/acp-go/internal/jsonrpc2"
)

// Role identifies which symmetric half of the protocol a Connection plays.
type Role int

const (
	// RoleAgent answers initialize/session/* requests from a peer client.
	RoleAgent Role = iota
	// RoleClient answers fs/* and terminal/* requests from a peer agent.
	RoleClient
)

// connState is the connection's lifecycle state (spec §4.3.1).
type connState int32

const (
	stateActive connState = iota
	stateDraining
	stateTerminated
)

type pendingRequest struct {
	replyCh chan pendingReply
}

type pendingReply struct {
	result json.RawMessage
	err    *jsonrpc2.Error
}

// Connection is the long-lived actor bound one-to-one to a transport. It
// owns the outbound id counter, the pending-requests table, and the
// session table, and is the only writer of the transport's outbound side.
type Connection struct {
	transport Transport
	role      Role
	agent     Agent
	client    Client
	store     SessionStore
	log       zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	nextID int64 // atomic

	mu       sync.Mutex
	pending  map[int64]*pendingRequest
	sessions *sessionTable
	state    connState

	// authAdvertised records whether InitializeResult.AuthMethods was
	// non-empty, used to enforce -32003 on session/new before a successful
	// authenticate (spec open question (c)).
	authAdvertised bool
	authenticated  bool
}

// Option configures a Connection at construction time.
type Option func(*Connection)

// WithLogger overrides the connection's zerolog.Logger, which otherwise
// defaults to zerolog.Nop() (silent): this library never writes to a host's
// stdout/stderr on its own, since for the agent role those streams carry
// the wire protocol itself.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Connection) { c.log = log }
}

// WithSessionStore overrides the SessionStore used to serve session/load.
// The default is an in-memory store scoped to the connection's lifetime.
func WithSessionStore(store SessionStore) Option {
	return func(c *Connection) { c.store = store }
}

// NewAgentConnection constructs a Connection playing the agent role over
// transport, dispatching connection- and session-scoped requests to agent.
func NewAgentConnection(transport Transport, agent Agent, opts ...Option) *Connection {
	c := newConnection(transport, RoleAgent, opts...)
	c.agent = agent
	return c
}

// NewClientConnection constructs a Connection playing the client role over
// transport, dispatching requests to client.
func NewClientConnection(transport Transport, client Client, opts ...Option) *Connection {
	c := newConnection(transport, RoleClient, opts...)
	c.client = client
	return c
}

func newConnection(transport Transport, role Role, opts ...Option) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		transport: transport,
		role:      role,
		store:     NewMemorySessionStore(),
		log:       zerolog.Nop(),
		ctx:       ctx,
		cancel:    cancel,
		pending:   make(map[int64]*pendingRequest),
		sessions:  newSessionTable(),
		state:     stateActive,
	}
	for _, opt := range opts {
		opt(c)
	}
	g, gctx := errgroup.WithContext(ctx)
	c.group = g
	c.ctx = gctx
	return c
}

// Run starts the read loop and blocks until the transport closes or ctx is
// canceled. It is the connection's single entry point into "active" state
// and returns once the connection has fully terminated.
func (c *Connection) Run(ctx context.Context) error {
	c.group.Go(func() error {
		select {
		case <-ctx.Done():
		case <-c.ctx.Done():
		}
		c.shutdown()
		return nil
	})
	c.group.Go(c.readLoop)
	err := c.group.Wait()
	c.shutdown()
	return err
}

func (c *Connection) readLoop() error {
	for {
		msg, err := c.transport.Read(c.ctx)
		if err != nil {
			c.log.Debug().Err(err).Msg("acp: transport closed")
			c.shutdown()
			return nil
		}
		c.handleMessage(msg)
	}
}

func (c *Connection) handleMessage(msg *jsonrpc2.Message) {
	c.log.Debug().Str("method", msg.Method).Str("selector", methodToSelector(msg.Method)).Msg("acp: dispatching")
	switch {
	case msg.IsResponse():
		c.handleResponse(msg)
	case msg.Method == "session/new" && msg.IsRequest():
		c.handleNewSession(msg)
	default:
		sessionID, hasSession := extractSessionID(msg.Params)
		if hasSession {
			c.routeToSession(sessionID, msg)
			return
		}
		c.dispatchHostLevel(msg)
	}
}

func (c *Connection) handleResponse(msg *jsonrpc2.Message) {
	id, ok := msg.IntID()
	if !ok {
		c.log.Warn().Msg("acp: dropping response with non-integer id")
		return
	}
	c.mu.Lock()
	p, found := c.pending[id]
	if found {
		delete(c.pending, id)
	}
	c.mu.Unlock()
	if !found {
		c.log.Warn().Int64("id", id).Msg("acp: dropping response with no pending request")
		return
	}
	p.replyCh <- pendingReply{result: msg.Result, err: msg.Error}
}

func (c *Connection) handleNewSession(msg *jsonrpc2.Message) {
	c.mu.Lock()
	id, err := c.sessions.newID()
	if err != nil {
		c.mu.Unlock()
		c.replyError(msg, jsonrpc2.InternalError(err))
		return
	}
	session := c.sessions.create(id, c)
	c.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error().Interface("panic", r).Msg("acp: session/new handler panicked")
				c.replyError(msg, jsonrpc2.InternalError(fmt.Errorf("%v", r)))
			}
		}()
		var params NewSessionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			c.replyError(msg, jsonrpc2.InvalidParams(err))
			return
		}
		if err := params.validate(); err != nil {
			c.replyError(msg, jsonrpc2.InvalidParams(err))
			return
		}
		if c.role != RoleAgent || c.agent == nil {
			c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
			return
		}
		c.mu.Lock()
		authRequired := c.authAdvertised && !c.authenticated
		c.mu.Unlock()
		if authRequired {
			c.replyError(msg, ErrInvalidState("authenticate is required before session/new"))
			return
		}
		result, rpcErr := c.agent.NewSession(c.ctx, session, &params)
		if rpcErr != nil {
			c.mu.Lock()
			c.sessions.delete(id)
			c.mu.Unlock()
			c.replyError(msg, rpcErr)
			return
		}
		if result.SessionID == "" {
			result.SessionID = id
		}
		if err := c.store.Store(c.ctx, id, &SessionState{Cwd: params.Cwd, McpServers: params.McpServers}); err != nil {
			c.log.Warn().Err(err).Str("sessionId", id).Msg("acp: failed to persist session state")
		}
		c.replyResult(msg, result)
	}()
}

func (c *Connection) routeToSession(sessionID string, msg *jsonrpc2.Message) {
	c.mu.Lock()
	session, ok := c.sessions.get(sessionID)
	if !ok {
		switch {
		case c.role == RoleClient:
			// The agent owns session creation; a client observing an
			// unknown id is reacting to the agent's own bookkeeping, so it
			// creates the session on demand rather than erroring.
			session = c.sessions.create(sessionID, c)
			ok = true
		case c.role == RoleAgent && msg.Method == "session/load":
			// This connection's in-memory table has never seen the id, but
			// the SessionStore might still know it: a long-running agent
			// process can hand the same store to a fresh Connection for a
			// reconnecting client, and session/load is exactly the request
			// meant to recover that state (spec §4.4).
			if _, err := c.store.Load(c.ctx, sessionID); err == nil {
				session = c.sessions.create(sessionID, c)
				ok = true
			}
		}
	}
	c.mu.Unlock()

	if !ok {
		if msg.IsRequest() {
			c.replyError(msg, jsonrpc2.ResourceNotFound("session "+sessionID))
		} else {
			c.log.Warn().Str("sessionId", sessionID).Str("method", msg.Method).Msg("acp: dropping notification for unknown session")
		}
		return
	}

	if msg.Method == "session/cancel" {
		// session/cancel must reach the host while an in-flight
		// session/prompt call is still occupying the session's mailbox
		// goroutine (spec §5 "cancellation is cooperative"): queuing it
		// behind Prompt on the same mailbox would make cancellation
		// impossible to observe until the turn already finished on its
		// own. It carries no session-ordered state of its own, so it is
		// dispatched straight to the host instead of through submit.
		go func() {
			defer func() {
				if r := recover(); r != nil {
					c.log.Error().Interface("panic", r).Msg("acp: session/cancel handler panicked")
				}
			}()
			c.dispatchSessionScoped(c.ctx, session, msg)
		}()
		return
	}

	session.submit(func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				if msg.IsRequest() {
					c.replyError(msg, jsonrpc2.InternalError(fmt.Errorf("%v", r)))
				}
				panic(r) // logged by the session's own recover
			}
		}()
		c.dispatchSessionScoped(ctx, session, msg)
	})
}

func (c *Connection) dispatchHostLevel(msg *jsonrpc2.Message) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error().Interface("panic", r).Msg("acp: connection-scope handler panicked")
				if msg.IsRequest() {
					c.replyError(msg, jsonrpc2.InternalError(fmt.Errorf("%v", r)))
				}
			}
		}()
		c.dispatchConnectionScoped(msg)
	}()
}

func (c *Connection) dispatchConnectionScoped(msg *jsonrpc2.Message) {
	switch msg.Method {
	case "initialize":
		c.handleInitialize(msg)
	case "authenticate":
		c.handleAuthenticate(msg)
	default:
		if msg.IsRequest() {
			c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		} else {
			c.log.Warn().Str("method", msg.Method).Msg("acp: dropping unrecognized notification")
		}
	}
}

func (c *Connection) handleInitialize(msg *jsonrpc2.Message) {
	if c.role != RoleAgent || c.agent == nil {
		c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		return
	}
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	if err := params.validate(); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	result, rpcErr := c.agent.Initialize(c.ctx, &params)
	if rpcErr != nil {
		c.replyError(msg, rpcErr)
		return
	}
	c.mu.Lock()
	c.authAdvertised = len(result.AuthMethods) > 0
	c.mu.Unlock()
	c.replyResult(msg, result)
}

func (c *Connection) handleAuthenticate(msg *jsonrpc2.Message) {
	if c.role != RoleAgent || c.agent == nil {
		c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		return
	}
	var params AuthenticateParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	if err := params.validate(); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	result, rpcErr := c.agent.Authenticate(c.ctx, &params)
	if rpcErr != nil {
		c.replyError(msg, rpcErr)
		return
	}
	c.mu.Lock()
	c.authenticated = true
	c.mu.Unlock()
	c.replyResult(msg, result)
}

func (c *Connection) dispatchSessionScoped(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	switch msg.Method {
	case "session/load":
		c.handleLoadSession(ctx, s, msg)
	case "session/prompt":
		c.handlePrompt(ctx, s, msg)
	case "session/cancel":
		c.handleCancel(ctx, s, msg)
	case "session/update":
		c.handleSessionUpdate(ctx, s, msg)
	case "fs/read_text_file":
		c.handleReadTextFile(ctx, s, msg)
	case "fs/write_text_file":
		c.handleWriteTextFile(ctx, s, msg)
	case "terminal/create":
		c.handleCreateTerminal(ctx, s, msg)
	case "terminal/output":
		c.handleTerminalOutput(ctx, s, msg)
	case "terminal/wait_for_exit":
		c.handleWaitForExit(ctx, s, msg)
	case "terminal/kill":
		c.handleKillTerminal(ctx, s, msg)
	case "terminal/release":
		c.handleReleaseTerminal(ctx, s, msg)
	default:
		if msg.IsRequest() {
			c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		} else {
			c.log.Warn().Str("method", msg.Method).Msg("acp: dropping unrecognized session notification")
		}
	}
}

func (c *Connection) handleLoadSession(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	if c.role != RoleAgent || c.agent == nil {
		c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		return
	}
	var params LoadSessionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	if err := params.validate(); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	result, rpcErr := c.agent.LoadSession(ctx, s, &params)
	if rpcErr != nil {
		c.replyError(msg, rpcErr)
		return
	}
	if err := c.store.Store(ctx, s.ID(), &SessionState{Cwd: params.Cwd, McpServers: params.McpServers}); err != nil {
		c.log.Warn().Err(err).Str("sessionId", s.ID()).Msg("acp: failed to persist session state")
	}
	c.replyResult(msg, result)
}

func (c *Connection) handlePrompt(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	if c.role != RoleAgent || c.agent == nil {
		c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		return
	}
	var params PromptParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	if err := params.validate(); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	result, rpcErr := c.agent.Prompt(ctx, s, &params)
	if rpcErr != nil {
		c.replyError(msg, rpcErr)
		return
	}
	c.replyResult(msg, result)
}

func (c *Connection) handleCancel(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	if c.role != RoleAgent || c.agent == nil {
		return
	}
	var params CancelParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.log.Warn().Err(err).Msg("acp: dropping malformed session/cancel")
		return
	}
	c.agent.Cancel(ctx, s, &params)
}

func (c *Connection) handleSessionUpdate(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	if c.role != RoleClient || c.client == nil {
		return
	}
	var n SessionNotification
	if err := json.Unmarshal(msg.Params, &n); err != nil {
		c.log.Warn().Err(err).Msg("acp: dropping malformed session/update")
		return
	}
	c.client.SessionUpdate(ctx, s, &n)
}

func (c *Connection) handleReadTextFile(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	if c.role != RoleClient || c.client == nil {
		c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		return
	}
	var params ReadTextFileParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	if err := params.validate(); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	result, rpcErr := c.client.ReadTextFile(ctx, s, &params)
	if rpcErr != nil {
		c.replyError(msg, rpcErr)
		return
	}
	c.replyResult(msg, result)
}

func (c *Connection) handleWriteTextFile(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	if c.role != RoleClient || c.client == nil {
		c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		return
	}
	var params WriteTextFileParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	if err := params.validate(); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	result, rpcErr := c.client.WriteTextFile(ctx, s, &params)
	if rpcErr != nil {
		c.replyError(msg, rpcErr)
		return
	}
	c.replyResult(msg, result)
}

func (c *Connection) handleCreateTerminal(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	if c.role != RoleClient || c.client == nil {
		c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		return
	}
	var params CreateTerminalParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	if err := params.validate(); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	result, rpcErr := c.client.CreateTerminal(ctx, s, &params)
	if rpcErr != nil {
		c.replyError(msg, rpcErr)
		return
	}
	c.replyResult(msg, result)
}

func (c *Connection) handleTerminalOutput(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	c.withTerminalParams(ctx, s, msg, func(ctx context.Context, s *Session, p *TerminalIDParams) (any, *jsonrpc2.Error) {
		return c.client.TerminalOutput(ctx, s, p)
	})
}

func (c *Connection) handleWaitForExit(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	c.withTerminalParams(ctx, s, msg, func(ctx context.Context, s *Session, p *TerminalIDParams) (any, *jsonrpc2.Error) {
		return c.client.WaitForExit(ctx, s, p)
	})
}

func (c *Connection) handleKillTerminal(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	c.withTerminalParams(ctx, s, msg, func(ctx context.Context, s *Session, p *TerminalIDParams) (any, *jsonrpc2.Error) {
		if rpcErr := c.client.KillTerminal(ctx, s, p); rpcErr != nil {
			return nil, rpcErr
		}
		return &emptyResult{}, nil
	})
}

func (c *Connection) handleReleaseTerminal(ctx context.Context, s *Session, msg *jsonrpc2.Message) {
	c.withTerminalParams(ctx, s, msg, func(ctx context.Context, s *Session, p *TerminalIDParams) (any, *jsonrpc2.Error) {
		if rpcErr := c.client.ReleaseTerminal(ctx, s, p); rpcErr != nil {
			return nil, rpcErr
		}
		return &emptyResult{}, nil
	})
}

func (c *Connection) withTerminalParams(ctx context.Context, s *Session, msg *jsonrpc2.Message, fn func(context.Context, *Session, *TerminalIDParams) (any, *jsonrpc2.Error)) {
	if c.role != RoleClient || c.client == nil {
		c.replyError(msg, jsonrpc2.MethodNotFound(msg.Method))
		return
	}
	var params TerminalIDParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	if err := params.validate(); err != nil {
		c.replyError(msg, jsonrpc2.InvalidParams(err))
		return
	}
	result, rpcErr := fn(ctx, s, &params)
	if rpcErr != nil {
		c.replyError(msg, rpcErr)
		return
	}
	c.replyResult(msg, result)
}

// extractSessionID pulls the "sessionId" field out of a raw params object
// without committing to any particular request/notification schema.
func extractSessionID(params json.RawMessage) (string, bool) {
	if len(params) == 0 {
		return "", false
	}
	var probe struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(params, &probe); err != nil || probe.SessionID == "" {
		return "", false
	}
	return probe.SessionID, true
}

// validatable is implemented by result types with value constraints beyond
// what Go's type system already enforces (spec.md §4.2 "Each schema type
// declares ... any value constraints, e.g. ... exitCode >= 0").
type validatable interface {
	validate() error
}

func (c *Connection) replyResult(msg *jsonrpc2.Message, result any) {
	if v, ok := result.(validatable); ok {
		if err := v.validate(); err != nil {
			c.replyError(msg, jsonrpc2.InternalError(fmt.Errorf("host returned an invalid result: %w", err)))
			return
		}
	}
	data, err := json.Marshal(result)
	if err != nil {
		c.replyError(msg, jsonrpc2.InternalError(err))
		return
	}
	c.writeAsync(jsonrpc2.NewResultResponse(msg.ID, data))
}

func (c *Connection) replyError(msg *jsonrpc2.Message, rpcErr *jsonrpc2.Error) {
	if !msg.IsRequest() {
		c.log.Error().Err(rpcErr).Str("method", msg.Method).Msg("acp: notification handler failed")
		return
	}
	c.writeAsync(jsonrpc2.NewErrorResponse(msg.ID, rpcErr))
}

func (c *Connection) writeAsync(msg *jsonrpc2.Message) {
	if err := c.transport.Write(c.ctx, msg); err != nil {
		c.log.Warn().Err(err).Msg("acp: failed to write response")
	}
}

// SendRequest sends method/params as a request and blocks until a matching
// response arrives, the connection drains, or ctx is done.
func (c *Connection) SendRequest(ctx context.Context, method string, params any) (json.RawMessage, *jsonrpc2.Error, error) {
	c.mu.Lock()
	if c.state != stateActive {
		c.mu.Unlock()
		return nil, nil, ErrTransportClosed
	}
	id := atomic.AddInt64(&c.nextID, 1)
	pr := &pendingRequest{replyCh: make(chan pendingReply, 1)}
	c.pending[id] = pr
	c.mu.Unlock()

	data, err := json.Marshal(params)
	if err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, nil, fmt.Errorf("acp: marshaling request params: %w", err)
	}

	if err := c.transport.Write(ctx, jsonrpc2.NewRequest(id, method, data)); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, nil, err
	}

	select {
	case reply := <-pr.replyCh:
		if reply.err == jsonrpc2.TransportClosed {
			return nil, nil, ErrTransportClosed
		}
		return reply.result, reply.err, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		if ctx.Err() == context.DeadlineExceeded {
			return nil, nil, ErrTimeout
		}
		return nil, nil, ctx.Err()
	case <-c.ctx.Done():
		return nil, nil, ErrTransportClosed
	}
}

// SendNotification sends method/params as a notification; it does not wait
// for any reply.
func (c *Connection) SendNotification(ctx context.Context, method string, params any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("acp: marshaling notification params: %w", err)
	}
	return c.transport.Write(ctx, jsonrpc2.NewNotification(method, data))
}

func (c *Connection) sendSessionUpdate(ctx context.Context, sessionID string, update SessionUpdate) error {
	n := &SessionNotification{SessionID: sessionID, Update: update}
	data, err := n.MarshalJSON()
	if err != nil {
		return err
	}
	return c.transport.Write(ctx, jsonrpc2.NewNotification("session/update", data))
}

// shutdown transitions the connection to draining then terminated, failing
// every pending outbound request with a transport-closed error and tearing
// down all sessions.
func (c *Connection) shutdown() {
	c.mu.Lock()
	if c.state == stateTerminated {
		c.mu.Unlock()
		return
	}
	c.state = stateDraining
	pending := c.pending
	c.pending = make(map[int64]*pendingRequest)
	c.sessions.closeAll()
	c.state = stateTerminated
	c.mu.Unlock()

	for _, p := range pending {
		p.replyCh <- pendingReply{err: jsonrpc2.TransportClosed}
	}
	c.cancel()
	_ = c.transport.Close()
}

// Close tears down the connection immediately.
func (c *Connection) Close() error {
	c.shutdown()
	return nil
}

// methodToSelector converts a wire method name ("session/prompt") into the
// internal callback selector spelling ("handle_session_prompt") used only
// for logging and diagnostics; dispatch itself is a static switch, not a
// reflective lookup, since the method set is small and fixed.
func methodToSelector(method string) string {
	return "handle_" + strings.ReplaceAll(method, "/", "_")
}
