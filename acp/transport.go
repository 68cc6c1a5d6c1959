// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lostbean/acp-go/internal/jsonrpc2"
)

// Transport is the narrow abstraction a Connection speaks over: a source
// of inbound messages, a sink for outbound ones, and a close signal. It
// deliberately says nothing about subprocesses, websockets, or any other
// concrete framing so that alternative transports can be wired in without
// touching the dispatcher.
type Transport interface {
	// Read blocks until the next framed message is available, the
	// transport closes (io.EOF), or ctx is done.
	Read(ctx context.Context) (*jsonrpc2.Message, error)

	// Write serializes and sends msg. Writes from a single goroutine are
	// totally ordered; Write itself is safe to call concurrently, with
	// back-pressure applied by blocking rather than dropping.
	Write(ctx context.Context, msg *jsonrpc2.Message) error

	// Close flushes the outbound side, stops the reader, and releases any
	// owned process or connection.
	Close() error
}

// NewStdioTransport builds the agent-role Transport: it speaks ndjson over
// its own process's inherited stdin/stdout. Closing it closes stdin only;
// an agent process is expected to exit on its own once its client closes
// the pipe.
func NewStdioTransport(log zerolog.Logger) Transport {
	return newIOTransport(os.Stdin, os.Stdout, os.Stdin, log)
}

// ioTransport implements Transport over a plain io.Reader/io.WriteCloser
// pair framed as ndjson, the shape shared by both the subprocess transport
// (client role) and the inherited-stdio transport (agent role).
type ioTransport struct {
	framer *jsonrpc2.Framer
	w      io.Writer
	closer io.Closer

	writeMu sync.Mutex
	log     zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// newIOTransport wraps r/w as an ndjson Transport. closer, if non-nil, is
// invoked once by Close to release the underlying pipe or process.
func newIOTransport(r io.Reader, w io.Writer, closer io.Closer, log zerolog.Logger) *ioTransport {
	t := &ioTransport{w: w, closer: closer, log: log}
	t.framer = jsonrpc2.NewFramer(r, func(line []byte, err error) {
		t.log.Warn().Err(err).Bytes("line", line).Msg("acp: dropping malformed frame")
	})
	return t
}

func (t *ioTransport) Read(ctx context.Context) (*jsonrpc2.Message, error) {
	type result struct {
		msg *jsonrpc2.Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := t.framer.Next()
		done <- result{msg, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.msg, r.err
	}
}

func (t *ioTransport) Write(ctx context.Context, msg *jsonrpc2.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if err := jsonrpc2.WriteMessage(t.w, msg); err != nil {
		return fmt.Errorf("acp: writing message: %w", err)
	}
	return nil
}

func (t *ioTransport) Close() error {
	t.closeOnce.Do(func() {
		if t.closer != nil {
			t.closeErr = t.closer.Close()
		}
	})
	return t.closeErr
}
