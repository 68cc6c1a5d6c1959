// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContentBlockRoundTrip(t *testing.T) {
	size := int64(1024)
	tests := []struct {
		name  string
		block ContentBlock
	}{
		{"text", &TextContent{Text: "hi there"}},
		{"image", &ImageContent{Data: "YWJj", MIMEType: "image/png"}},
		{"audio", &AudioContent{Data: "ZGVm", MIMEType: "audio/wav"}},
		{"resource", &ResourceContent{Resource: EmbeddedResource{URI: "file:///a.txt", Text: "contents"}}},
		{"resource_link", &ResourceLinkContent{URI: "file:///b.txt", Name: "b.txt", Size: &size}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.block.MarshalJSON()
			if err != nil {
				t.Fatal(err)
			}
			got, err := unmarshalContentBlock(data)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.block, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContentBlockWireKeys(t *testing.T) {
	data, err := (&ImageContent{Data: "YWJj", MIMEType: "image/png"}).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"type", "data", "mimeType"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("wire object missing key %q: %v", key, wire)
		}
	}
	if _, ok := wire["mime_type"]; ok {
		t.Errorf("wire object must not carry the internal-style key mime_type: %v", wire)
	}
}

func TestContentBlockUnrecognizedTypeErrors(t *testing.T) {
	_, err := unmarshalContentBlock(json.RawMessage(`{"type":"video","data":"x"}`))
	if err == nil {
		t.Fatal("unmarshalContentBlock() should reject an unrecognized type")
	}
}

func TestContentBlocksMarshalsEmptyAsArray(t *testing.T) {
	var blocks ContentBlocks
	data, err := blocks.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("ContentBlocks(nil).MarshalJSON() = %s, want []", data)
	}
}

func TestContentBlocksRoundTrip(t *testing.T) {
	want := ContentBlocks{
		&TextContent{Text: "one"},
		&TextContent{Text: "two"},
	}
	data, err := want.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var got ContentBlocks
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
