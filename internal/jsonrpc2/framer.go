// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// maxTokenSize bounds a single ndjson line. The protocol places no upper
// bound on message size, but a bufio.Scanner with its default 64 KiB
// token limit stops with bufio.ErrTooLong on any longer line; 64 MiB
// comfortably covers embedded resource payloads while still failing long
// before exhausting memory on a hostile peer. A longer line ends the
// stream with a wrapped bufio.ErrTooLong from Next.
const maxTokenSize = 64 << 20

// Framer reads newline-delimited JSON values from a byte stream, one
// Message at a time. It tolerates a trailing "\r" before the "\n" and skips
// blank lines. A line that fails to decode as JSON is reported to onError
// and otherwise dropped; the framer keeps reading subsequent lines (spec:
// framing errors are non-fatal).
type Framer struct {
	scanner *bufio.Scanner
	onError func(line []byte, err error)
}

// NewFramer wraps r. onError, if non-nil, is invoked for every line that
// fails strict JSON-RPC decoding; the line (with any trailing \r stripped)
// is passed for diagnostics.
func NewFramer(r io.Reader, onError func(line []byte, err error)) *Framer {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	return &Framer{scanner: s, onError: onError}
}

// Next returns the next successfully decoded Message, skipping and
// reporting any malformed lines in between. It returns io.EOF once the
// underlying reader is exhausted, or a wrapped error if the scanner itself
// failed (e.g. a line exceeded maxTokenSize).
func (f *Framer) Next() (*Message, error) {
	for f.scanner.Scan() {
		line := bytes.TrimSuffix(f.scanner.Bytes(), []byte("\r"))
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		msg, err := Unmarshal(line)
		if err != nil {
			if f.onError != nil {
				f.onError(append([]byte(nil), line...), err)
			}
			continue
		}
		return msg, nil
	}
	if err := f.scanner.Err(); err != nil {
		return nil, fmt.Errorf("jsonrpc2: framing: %w", err)
	}
	return nil, io.EOF
}

// WriteMessage serializes msg and appends a single trailing newline.
func WriteMessage(w io.Writer, msg *Message) error {
	data, err := Marshal(msg)
	if err != nil {
		return fmt.Errorf("jsonrpc2: encoding message: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
