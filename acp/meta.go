// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

// Meta carries protocol-reserved, implementation-defined metadata attached
// to almost every ACP message. It is wire-spelled "_meta" everywhere it
// appears — the one irregular field name in the schema, which is exactly
// why it is declared per-field in each struct's json tag rather than
// derived by a generic casing rule.
type Meta map[string]any
