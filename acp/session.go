// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Session is a unit of stateful conversation identified by an opaque
// sessionId. It runs its own single-threaded mailbox so that a slow or
// panicking handler for one session never blocks or corrupts another
// session, or the connection itself (spec invariant 5: "isolation").
type Session struct {
	id      string
	conn    *Connection
	mailbox chan func(context.Context)
	done    chan struct{}
	log     zerolog.Logger
}

// ID returns this session's sessionId.
func (s *Session) ID() string { return s.id }

// Notify sends a session/update notification carrying update, addressed to
// this session. It is the only way a host Agent implementation streams
// progress to the peer client during Prompt.
func (s *Session) Notify(ctx context.Context, update SessionUpdate) error {
	return s.conn.sendSessionUpdate(ctx, s.id, update)
}

func newSession(id string, conn *Connection) *Session {
	s := &Session{
		id:      id,
		conn:    conn,
		mailbox: make(chan func(context.Context), 16),
		done:    make(chan struct{}),
		log:     conn.log.With().Str("sessionId", id).Logger(),
	}
	go s.run()
	return s
}

// run is the session's mailbox loop: exactly one submitted function
// executes at a time, in submission order, for the session's entire
// lifetime.
func (s *Session) run() {
	defer close(s.done)
	for fn := range s.mailbox {
		s.dispatch(fn)
	}
}

// dispatch runs fn with panic isolation: a panicking handler is logged and
// the session keeps serving its mailbox, rather than taking down the
// connection or any other session.
func (s *Session) dispatch(fn func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("acp: session handler panicked, session continues")
		}
	}()
	fn(s.conn.ctx)
}

// submit enqueues fn to run on this session's mailbox. It blocks if the
// mailbox is full, which is the back-pressure mechanism that keeps
// per-session ordering intact.
func (s *Session) submit(fn func(context.Context)) {
	select {
	case s.mailbox <- fn:
	case <-s.conn.ctx.Done():
	}
}

// sessionTable owns the session map keyed by sessionId, the multiplexer's
// only piece of mutable state (spec §4.4). It has no internal locking of
// its own: every access goes through the owning Connection's mu.
type sessionTable struct {
	sessions map[string]*Session
}

func newSessionTable() *sessionTable {
	return &sessionTable{sessions: make(map[string]*Session)}
}

func (t *sessionTable) create(id string, conn *Connection) *Session {
	s := newSession(id, conn)
	t.sessions[id] = s
	return s
}

func (t *sessionTable) get(id string) (*Session, bool) {
	s, ok := t.sessions[id]
	return s, ok
}

func (t *sessionTable) getOrCreate(id string, conn *Connection) *Session {
	if s, ok := t.sessions[id]; ok {
		return s
	}
	return t.create(id, conn)
}

func (t *sessionTable) delete(id string) {
	if s, ok := t.sessions[id]; ok {
		close(s.mailbox)
		delete(t.sessions, id)
	}
}

func (t *sessionTable) closeAll() {
	for id := range t.sessions {
		t.delete(id)
	}
}

func (t *sessionTable) newID() (string, error) {
	for range 8 {
		id := newSessionID()
		if _, exists := t.sessions[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("acp: could not generate a unique sessionId")
}
