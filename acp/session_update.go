// Copyright 2026 The acp-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package acp

import (
	"encoding/json"
	"fmt"
)

// SessionUpdate is the payload of a session/update notification: one of
// [UserMessageChunk], [AgentMessageChunk], [AgentThoughtChunk], [ToolCall],
// [ToolCallUpdate], [Plan], [AvailableCommandsUpdate], or [CurrentModeUpdate]
// (spec §4 "Session Update"). It is always sent inside a [SessionNotification]
// addressed by sessionId.
type SessionUpdate interface {
	MarshalJSON() ([]byte, error)
	fromWire(*wireSessionUpdate) error
}

// SessionNotification is the params object of a session/update notification:
// the sessionId envelope plus the polymorphic SessionUpdate payload.
type SessionNotification struct {
	SessionID string
	Update    SessionUpdate
	Meta      Meta
}

func (n *SessionNotification) MarshalJSON() ([]byte, error) {
	updateJSON, err := n.Update.MarshalJSON()
	if err != nil {
		return nil, err
	}
	// Splice sessionId and _meta alongside the update's own fields: the
	// wire shape is a flat object, not { sessionId, update: {...} }.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(updateJSON, &fields); err != nil {
		return nil, err
	}
	sid, err := json.Marshal(n.SessionID)
	if err != nil {
		return nil, err
	}
	fields["sessionId"] = sid
	if n.Meta != nil {
		meta, err := json.Marshal(n.Meta)
		if err != nil {
			return nil, err
		}
		fields["_meta"] = meta
	}
	return json.Marshal(fields)
}

func (n *SessionNotification) UnmarshalJSON(data []byte) error {
	var w wireSessionUpdate
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("acp: decoding session/update params: %w", err)
	}
	if w.SessionID == "" {
		return fmt.Errorf("acp: session/update params missing sessionId")
	}
	update, err := sessionUpdateFromWire(&w)
	if err != nil {
		return err
	}
	n.SessionID = w.SessionID
	n.Update = update
	n.Meta = w.Meta
	return nil
}

// UserMessageChunk streams a piece of the user's own turn back to the
// client, e.g. when an agent echoes multimodal input it resolved itself.
type UserMessageChunk struct {
	Content ContentBlock
}

func (u *UserMessageChunk) MarshalJSON() ([]byte, error) {
	return marshalChunk("user_message_chunk", u.Content)
}

func (u *UserMessageChunk) fromWire(w *wireSessionUpdate) error {
	c, err := unmarshalContentBlock(w.Content)
	if err != nil {
		return err
	}
	u.Content = c
	return nil
}

// AgentMessageChunk streams a piece of the agent's reply.
type AgentMessageChunk struct {
	Content ContentBlock
}

func (a *AgentMessageChunk) MarshalJSON() ([]byte, error) {
	return marshalChunk("agent_message_chunk", a.Content)
}

func (a *AgentMessageChunk) fromWire(w *wireSessionUpdate) error {
	c, err := unmarshalContentBlock(w.Content)
	if err != nil {
		return err
	}
	a.Content = c
	return nil
}

// AgentThoughtChunk streams a piece of the agent's reasoning, kept separate
// from its reply so clients can render it differently (e.g. collapsed).
type AgentThoughtChunk struct {
	Content ContentBlock
}

func (a *AgentThoughtChunk) MarshalJSON() ([]byte, error) {
	return marshalChunk("agent_thought_chunk", a.Content)
}

func (a *AgentThoughtChunk) fromWire(w *wireSessionUpdate) error {
	c, err := unmarshalContentBlock(w.Content)
	if err != nil {
		return err
	}
	a.Content = c
	return nil
}

func marshalChunk(kind string, content ContentBlock) ([]byte, error) {
	contentJSON, err := content.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		SessionUpdate string          `json:"sessionUpdate"`
		Content       json.RawMessage `json:"content"`
	}{kind, contentJSON})
}

// ToolCallStatus is the lifecycle state of a tool call.
type ToolCallStatus string

const (
	ToolCallPending    ToolCallStatus = "pending"
	ToolCallInProgress ToolCallStatus = "in_progress"
	ToolCallCompleted  ToolCallStatus = "completed"
	ToolCallFailed     ToolCallStatus = "failed"
)

// ToolCallKind loosely categorizes what a tool call does, used by clients
// purely for icon/affordance selection.
type ToolCallKind string

const (
	ToolKindRead    ToolCallKind = "read"
	ToolKindEdit    ToolCallKind = "edit"
	ToolKindDelete  ToolCallKind = "delete"
	ToolKindMove    ToolCallKind = "move"
	ToolKindSearch  ToolCallKind = "search"
	ToolKindExecute ToolCallKind = "execute"
	ToolKindThink   ToolCallKind = "think"
	ToolKindFetch   ToolCallKind = "fetch"
	ToolKindOther   ToolCallKind = "other"
)

// ToolCallLocation is a file the tool call touches, used by clients to
// offer a "follow along" view.
type ToolCallLocation struct {
	Path string `json:"path"`
	Line *int64 `json:"line,omitempty"`
}

// ToolCall reports that the agent has started a new tool invocation.
type ToolCall struct {
	ToolCallID string
	Title      string
	Kind       ToolCallKind
	Status     ToolCallStatus
	Content    []ContentBlock
	Locations  []ToolCallLocation
	RawInput   json.RawMessage
}

func (t *ToolCall) MarshalJSON() ([]byte, error) {
	var content json.RawMessage
	if t.Content != nil {
		c, err := ContentBlocks(t.Content).MarshalJSON()
		if err != nil {
			return nil, err
		}
		content = c
	}
	return json.Marshal(struct {
		SessionUpdate string             `json:"sessionUpdate"`
		ToolCallID    string             `json:"toolCallId"`
		Title         string             `json:"title"`
		Kind          ToolCallKind       `json:"kind,omitempty"`
		Status        ToolCallStatus     `json:"status,omitempty"`
		Content       json.RawMessage    `json:"content,omitempty"`
		Locations     []ToolCallLocation `json:"locations,omitempty"`
		RawInput      json.RawMessage    `json:"rawInput,omitempty"`
	}{"tool_call", t.ToolCallID, t.Title, t.Kind, t.Status, content, t.Locations, t.RawInput})
}

func (t *ToolCall) fromWire(w *wireSessionUpdate) error {
	blocks, err := unmarshalContentBlocks(w.Content)
	if err != nil {
		return err
	}
	t.ToolCallID = w.ToolCallID
	t.Title = w.Title
	t.Kind = w.Kind
	t.Status = w.Status
	t.Content = blocks
	t.Locations = w.Locations
	t.RawInput = w.RawInput
	return nil
}

// ToolCallUpdate reports a change in status, content, or locations of an
// already-announced tool call. All fields but ToolCallID are optional:
// a client applies an update by overwriting only the fields present on the
// wire, which is why unlike ToolCall this type tracks field presence
// explicitly via pointers.
type ToolCallUpdate struct {
	ToolCallID string
	Title      *string
	Kind       *ToolCallKind
	Status     *ToolCallStatus
	Content    []ContentBlock
	Locations  []ToolCallLocation
	RawInput   json.RawMessage
}

func (t *ToolCallUpdate) MarshalJSON() ([]byte, error) {
	var content json.RawMessage
	if t.Content != nil {
		c, err := ContentBlocks(t.Content).MarshalJSON()
		if err != nil {
			return nil, err
		}
		content = c
	}
	return json.Marshal(struct {
		SessionUpdate string             `json:"sessionUpdate"`
		ToolCallID    string             `json:"toolCallId"`
		Title         *string            `json:"title,omitempty"`
		Kind          *ToolCallKind      `json:"kind,omitempty"`
		Status        *ToolCallStatus    `json:"status,omitempty"`
		Content       json.RawMessage    `json:"content,omitempty"`
		Locations     []ToolCallLocation `json:"locations,omitempty"`
		RawInput      json.RawMessage    `json:"rawInput,omitempty"`
	}{"tool_call_update", t.ToolCallID, t.Title, t.Kind, t.Status, content, t.Locations, t.RawInput})
}

func (t *ToolCallUpdate) fromWire(w *wireSessionUpdate) error {
	blocks, err := unmarshalContentBlocks(w.Content)
	if err != nil {
		return err
	}
	t.ToolCallID = w.ToolCallID
	if w.Title != "" {
		title := w.Title
		t.Title = &title
	}
	if w.Kind != "" {
		kind := w.Kind
		t.Kind = &kind
	}
	if w.Status != "" {
		status := w.Status
		t.Status = &status
	}
	t.Content = blocks
	t.Locations = w.Locations
	t.RawInput = w.RawInput
	return nil
}

// PlanEntryStatus is the lifecycle state of one PlanEntry.
type PlanEntryStatus string

const (
	PlanEntryPending    PlanEntryStatus = "pending"
	PlanEntryInProgress PlanEntryStatus = "in_progress"
	PlanEntryCompleted  PlanEntryStatus = "completed"
)

// PlanEntryPriority hints at a plan entry's relative importance.
type PlanEntryPriority string

const (
	PlanPriorityHigh   PlanEntryPriority = "high"
	PlanPriorityMedium PlanEntryPriority = "medium"
	PlanPriorityLow    PlanEntryPriority = "low"
)

// PlanEntry is a single step of an agent's plan.
type PlanEntry struct {
	Content  string            `json:"content"`
	Priority PlanEntryPriority `json:"priority,omitempty"`
	Status   PlanEntryStatus   `json:"status,omitempty"`
}

// Plan replaces the agent's entire current plan. There is no incremental
// plan-update variant: the agent resends the full entry list every time.
type Plan struct {
	Entries []PlanEntry
}

func (p *Plan) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SessionUpdate string      `json:"sessionUpdate"`
		Entries       []PlanEntry `json:"entries"`
	}{"plan", p.Entries})
}

func (p *Plan) fromWire(w *wireSessionUpdate) error {
	p.Entries = w.Entries
	return nil
}

// AvailableCommand is a slash-style command the agent currently exposes.
type AvailableCommand struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// AvailableCommandsUpdate replaces the set of commands a client may offer
// the user (e.g. as autocomplete) for this session.
type AvailableCommandsUpdate struct {
	Commands []AvailableCommand
}

func (a *AvailableCommandsUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SessionUpdate     string             `json:"sessionUpdate"`
		AvailableCommands []AvailableCommand `json:"availableCommands"`
	}{"available_commands_update", a.Commands})
}

func (a *AvailableCommandsUpdate) fromWire(w *wireSessionUpdate) error {
	a.Commands = w.AvailableCommands
	return nil
}

// CurrentModeUpdate reports that the session's current mode changed, e.g.
// switching between "ask" and "code" style operation.
type CurrentModeUpdate struct {
	CurrentModeID string
}

func (c *CurrentModeUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SessionUpdate string `json:"sessionUpdate"`
		CurrentModeID string `json:"currentModeId"`
	}{"current_mode_update", c.CurrentModeID})
}

func (c *CurrentModeUpdate) fromWire(w *wireSessionUpdate) error {
	c.CurrentModeID = w.CurrentModeID
	return nil
}

// wireSessionUpdate is the shadow struct for decoding any SessionUpdate
// variant plus its enclosing SessionNotification envelope. The discriminator
// is read from "sessionUpdate" if present, falling back to "type" — some
// early ACP implementations in the wild shipped the latter — but this
// library always emits "sessionUpdate". "kind" is deliberately not accepted
// as a discriminator alias: ToolCall already uses that wire name for its own
// ToolCallKind field, and overloading it would make the two ambiguous.
type wireSessionUpdate struct {
	SessionID         string             `json:"sessionId"`
	SessionUpdate     string             `json:"sessionUpdate"`
	Type              string             `json:"type"`
	Content           json.RawMessage    `json:"content"`
	ToolCallID        string             `json:"toolCallId"`
	Title             string             `json:"title"`
	Kind              ToolCallKind       `json:"kind"`
	Status            ToolCallStatus     `json:"status"`
	Locations         []ToolCallLocation `json:"locations"`
	RawInput          json.RawMessage    `json:"rawInput"`
	Entries           []PlanEntry        `json:"entries"`
	AvailableCommands []AvailableCommand `json:"availableCommands"`
	CurrentModeID     string             `json:"currentModeId"`
	Meta              Meta               `json:"_meta"`
}

func (w *wireSessionUpdate) discriminator() string {
	if w.SessionUpdate != "" {
		return w.SessionUpdate
	}
	return w.Type
}

// sessionUpdateFromWire dispatches on the discriminator and delegates the
// rest of the decode to the variant's own fromWire.
func sessionUpdateFromWire(raw *wireSessionUpdate) (SessionUpdate, error) {
	var update SessionUpdate
	switch raw.discriminator() {
	case "user_message_chunk":
		update = new(UserMessageChunk)
	case "agent_message_chunk":
		update = new(AgentMessageChunk)
	case "agent_thought_chunk":
		update = new(AgentThoughtChunk)
	case "tool_call":
		update = new(ToolCall)
	case "tool_call_update":
		update = new(ToolCallUpdate)
	case "plan":
		update = new(Plan)
	case "available_commands_update":
		update = new(AvailableCommandsUpdate)
	case "current_mode_update":
		update = new(CurrentModeUpdate)
	default:
		return nil, fmt.Errorf("acp: unrecognized session update kind %q", raw.discriminator())
	}
	if err := update.fromWire(raw); err != nil {
		return nil, err
	}
	return update, nil
}
