// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"encoding/json"
	"fmt"
)

// ContentBlock is a [TextContent], [ImageContent], [AudioContent],
// [ResourceContent], or [ResourceLinkContent] — the tagged-union payload
// element that appears in prompts, tool call output, and agent message
// chunks (spec §3 "Content Block").
type ContentBlock interface {
	MarshalJSON() ([]byte, error)
	fromWire(*wireContentBlock)
}

// TextContent is a plain text content block.
type TextContent struct {
	Text        string       `json:"-"`
	Annotations *Annotations `json:"-"`
	Meta        Meta         `json:"-"`
}

func (c *TextContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string       `json:"type"`
		Text        string       `json:"text"`
		Annotations *Annotations `json:"annotations,omitempty"`
		Meta        Meta         `json:"_meta,omitempty"`
	}{"text", c.Text, c.Annotations, c.Meta})
}

func (c *TextContent) fromWire(w *wireContentBlock) {
	c.Text = w.Text
	c.Annotations = w.Annotations
	c.Meta = w.Meta
}

// ImageContent is base64-encoded image data.
type ImageContent struct {
	Data        string       `json:"-"` // base64
	MIMEType    string       `json:"-"`
	Annotations *Annotations `json:"-"`
	Meta        Meta         `json:"-"`
}

func (c *ImageContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string       `json:"type"`
		Data        string       `json:"data"`
		MIMEType    string       `json:"mimeType"`
		Annotations *Annotations `json:"annotations,omitempty"`
		Meta        Meta         `json:"_meta,omitempty"`
	}{"image", c.Data, c.MIMEType, c.Annotations, c.Meta})
}

func (c *ImageContent) fromWire(w *wireContentBlock) {
	c.Data = w.Data
	c.MIMEType = w.MIMEType
	c.Annotations = w.Annotations
	c.Meta = w.Meta
}

// AudioContent is base64-encoded audio data.
type AudioContent struct {
	Data        string       `json:"-"`
	MIMEType    string       `json:"-"`
	Annotations *Annotations `json:"-"`
	Meta        Meta         `json:"-"`
}

func (c *AudioContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string       `json:"type"`
		Data        string       `json:"data"`
		MIMEType    string       `json:"mimeType"`
		Annotations *Annotations `json:"annotations,omitempty"`
		Meta        Meta         `json:"_meta,omitempty"`
	}{"audio", c.Data, c.MIMEType, c.Annotations, c.Meta})
}

func (c *AudioContent) fromWire(w *wireContentBlock) {
	c.Data = w.Data
	c.MIMEType = w.MIMEType
	c.Annotations = w.Annotations
	c.Meta = w.Meta
}

// ResourceContent embeds the full contents of a resource directly in the
// content block (as opposed to [ResourceLinkContent], which only points at
// one).
type ResourceContent struct {
	Resource    EmbeddedResource `json:"-"`
	Annotations *Annotations     `json:"-"`
	Meta        Meta             `json:"-"`
}

// EmbeddedResource is either text or blob (base64) resource contents.
type EmbeddedResource struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"` // base64
}

func (c *ResourceContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string           `json:"type"`
		Resource    EmbeddedResource `json:"resource"`
		Annotations *Annotations     `json:"annotations,omitempty"`
		Meta        Meta             `json:"_meta,omitempty"`
	}{"resource", c.Resource, c.Annotations, c.Meta})
}

func (c *ResourceContent) fromWire(w *wireContentBlock) {
	if w.Resource != nil {
		c.Resource = *w.Resource
	}
	c.Annotations = w.Annotations
	c.Meta = w.Meta
}

// ResourceLinkContent points at a resource without embedding its contents.
type ResourceLinkContent struct {
	URI         string       `json:"-"`
	Name        string       `json:"-"`
	Title       string       `json:"-"`
	Description string       `json:"-"`
	MIMEType    string       `json:"-"`
	Size        *int64       `json:"-"`
	Annotations *Annotations `json:"-"`
	Meta        Meta         `json:"-"`
}

func (c *ResourceLinkContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(&wireContentBlock{
		Type:        "resource_link",
		URI:         c.URI,
		Name:        c.Name,
		Title:       c.Title,
		Description: c.Description,
		MIMEType:    c.MIMEType,
		Size:        c.Size,
		Annotations: c.Annotations,
		Meta:        c.Meta,
	})
}

func (c *ResourceLinkContent) fromWire(w *wireContentBlock) {
	c.URI = w.URI
	c.Name = w.Name
	c.Title = w.Title
	c.Description = w.Description
	c.MIMEType = w.MIMEType
	c.Size = w.Size
	c.Annotations = w.Annotations
	c.Meta = w.Meta
}

// Annotations are optional client hints about a content block's intended
// audience or freshness.
type Annotations struct {
	Audience     []MessageRole `json:"audience,omitempty"`
	LastModified string        `json:"lastModified,omitempty"`
	Priority     float64       `json:"priority,omitempty"`
}

// MessageRole is the sender or recipient of a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// wireContentBlock is the shadow struct used to decode any ContentBlock
// variant: the Type discriminator selects which fields are meaningful, the
// same shape as the teacher SDK's wireContent for MCP's Content union.
type wireContentBlock struct {
	Type        string            `json:"type"`
	Text        string            `json:"text,omitempty"`
	Data        string            `json:"data,omitempty"`
	MIMEType    string            `json:"mimeType,omitempty"`
	Resource    *EmbeddedResource `json:"resource,omitempty"`
	URI         string            `json:"uri,omitempty"`
	Name        string            `json:"name,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Size        *int64            `json:"size,omitempty"`
	Annotations *Annotations      `json:"annotations,omitempty"`
	Meta        Meta              `json:"_meta,omitempty"`
}

// unmarshalContentBlock decodes a single JSON content block object.
func unmarshalContentBlock(raw json.RawMessage) (ContentBlock, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("acp: nil content block")
	}
	var w wireContentBlock
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("acp: decoding content block: %w", err)
	}
	var block ContentBlock
	switch w.Type {
	case "text":
		block = new(TextContent)
	case "image":
		block = new(ImageContent)
	case "audio":
		block = new(AudioContent)
	case "resource":
		block = new(ResourceContent)
	case "resource_link":
		block = new(ResourceLinkContent)
	default:
		return nil, fmt.Errorf("acp: unrecognized content block type %q", w.Type)
	}
	block.fromWire(&w)
	return block, nil
}

// unmarshalContentBlocks decodes a JSON array of content blocks.
func unmarshalContentBlocks(raw json.RawMessage) ([]ContentBlock, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var rawBlocks []json.RawMessage
	if err := json.Unmarshal(raw, &rawBlocks); err != nil {
		return nil, fmt.Errorf("acp: decoding content blocks: %w", err)
	}
	blocks := make([]ContentBlock, 0, len(rawBlocks))
	for _, rb := range rawBlocks {
		b, err := unmarshalContentBlock(rb)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// ContentBlocks marshals a slice of ContentBlock, producing `[]` rather
// than `null` for an empty or nil slice (spec invariant 6 does not apply to
// required array fields, which must stay present-but-empty, not absent).
type ContentBlocks []ContentBlock

func (cs ContentBlocks) MarshalJSON() ([]byte, error) {
	if cs == nil {
		return []byte("[]"), nil
	}
	raws := make([]json.RawMessage, len(cs))
	for i, c := range cs {
		data, err := c.MarshalJSON()
		if err != nil {
			return nil, err
		}
		raws[i] = data
	}
	return json.Marshal(raws)
}

func (cs *ContentBlocks) UnmarshalJSON(data []byte) error {
	blocks, err := unmarshalContentBlocks(data)
	if err != nil {
		return err
	}
	*cs = blocks
	return nil
}
