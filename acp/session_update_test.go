// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSessionUpdateRoundTrip(t *testing.T) {
	title := "Edit config"
	status := ToolCallCompleted
	tests := []struct {
		name   string
		update SessionUpdate
	}{
		{"user_message_chunk", &UserMessageChunk{Content: &TextContent{Text: "hi"}}},
		{"agent_message_chunk", &AgentMessageChunk{Content: &TextContent{Text: "hello"}}},
		{"agent_thought_chunk", &AgentThoughtChunk{Content: &TextContent{Text: "thinking..."}}},
		{"tool_call", &ToolCall{
			ToolCallID: "tc-1",
			Title:      "Read file",
			Kind:       ToolKindRead,
			Status:     ToolCallPending,
			Locations:  []ToolCallLocation{{Path: "/tmp/a.txt"}},
		}},
		{"tool_call_update", &ToolCallUpdate{
			ToolCallID: "tc-1",
			Title:      &title,
			Status:     &status,
		}},
		{"plan", &Plan{Entries: []PlanEntry{{Content: "step 1", Priority: PlanPriorityHigh, Status: PlanEntryPending}}}},
		{"available_commands_update", &AvailableCommandsUpdate{Commands: []AvailableCommand{{Name: "/review"}}}},
		{"current_mode_update", &CurrentModeUpdate{CurrentModeID: "code"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &SessionNotification{SessionID: "abc123", Update: tt.update}
			data, err := n.MarshalJSON()
			if err != nil {
				t.Fatal(err)
			}

			var wire map[string]any
			if err := json.Unmarshal(data, &wire); err != nil {
				t.Fatal(err)
			}
			if wire["sessionId"] != "abc123" {
				t.Errorf("sessionId = %v, want abc123", wire["sessionId"])
			}

			var got SessionNotification
			if err := got.UnmarshalJSON(data); err != nil {
				t.Fatal(err)
			}
			if got.SessionID != "abc123" {
				t.Errorf("SessionID = %q, want abc123", got.SessionID)
			}
			if diff := cmp.Diff(tt.update, got.Update); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSessionUpdateAcceptsLegacyTypeDiscriminator(t *testing.T) {
	// Some early ACP sources spelled the discriminator "type" instead of
	// "sessionUpdate"; decode must tolerate both (spec §4.2).
	data := []byte(`{"sessionId":"s1","type":"current_mode_update","currentModeId":"ask"}`)
	var got SessionNotification
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	update, ok := got.Update.(*CurrentModeUpdate)
	if !ok {
		t.Fatalf("Update = %T, want *CurrentModeUpdate", got.Update)
	}
	if update.CurrentModeID != "ask" {
		t.Errorf("CurrentModeID = %q, want ask", update.CurrentModeID)
	}
}

func TestSessionUpdateEncodesCanonicalDiscriminator(t *testing.T) {
	n := &SessionNotification{SessionID: "s1", Update: &CurrentModeUpdate{CurrentModeID: "ask"}}
	data, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatal(err)
	}
	if wire["sessionUpdate"] != "current_mode_update" {
		t.Errorf("sessionUpdate = %v, want current_mode_update", wire["sessionUpdate"])
	}
	if _, ok := wire["type"]; ok {
		t.Errorf("encoder must not also emit the legacy type key: %v", wire)
	}
}

func TestSessionUpdateUnrecognizedKindErrors(t *testing.T) {
	data := []byte(`{"sessionId":"s1","sessionUpdate":"something_new"}`)
	var got SessionNotification
	if err := got.UnmarshalJSON(data); err == nil {
		t.Fatal("UnmarshalJSON() should reject an unrecognized sessionUpdate kind")
	}
}

func TestSessionUpdateMissingSessionIDErrors(t *testing.T) {
	data := []byte(`{"sessionUpdate":"current_mode_update","currentModeId":"ask"}`)
	var got SessionNotification
	if err := got.UnmarshalJSON(data); err == nil {
		t.Fatal("UnmarshalJSON() should reject a session/update payload missing sessionId")
	}
}
