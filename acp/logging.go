// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog.Logger writing to w, suitable for passing to
// WithLogger. The agent role must never log to its own stdout (that stream
// carries the wire protocol); callers on that role should pass os.Stderr or
// a file.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
