package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Channel event types exchanged with the realtime API.
const (
	TypeSessionCreated         = "session.created"
	TypeSessionUpdate          = "session.update"
	TypeConversationItemCreate = "conversation.item.create"
	TypeResponseCreate         = "response.create"
	TypeResponseDone           = "response.done"
)

// Client is an outbound channel event. Exactly one of Session, Item or
// Response is set depending on Type.
type Client struct {
	Type     string    `json:"type"`
	EventID  string    `json:"event_id,omitempty"`
	Session  *Session  `json:"session,omitempty"`
	Item     *Item     `json:"item,omitempty"`
	Response *Response `json:"response,omitempty"`
}

// Session carries the session.update payload registering callable tools.
type Session struct {
	Tools      []Tool `json:"tools"`
	ToolChoice string `json:"tool_choice,omitempty"`
}

// Tool describes one function the agent may invoke.
type Tool struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Item is the conversation item of a conversation.item.create event.
type Item struct {
	Type    string        `json:"type"`
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart is one content block inside a conversation item.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response holds optional inline instructions for a response.create event.
type Response struct {
	Instructions string `json:"instructions,omitempty"`
}

// NewUserMessage builds a conversation.item.create for a user turn. Each
// text becomes its own input_text content part, in order.
func NewUserMessage(texts ...string) Client {
	parts := make([]ContentPart, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, ContentPart{Type: "input_text", Text: t})
	}
	return Client{
		Type: TypeConversationItemCreate,
		Item: &Item{Type: "message", Role: "user", Content: parts},
	}
}

// NewResponseCreate requests an agent turn, optionally with inline
// instructions.
func NewResponseCreate(instructions string) Client {
	ev := Client{Type: TypeResponseCreate}
	if instructions != "" {
		ev.Response = &Response{Instructions: instructions}
	}
	return ev
}

// NewSessionUpdate registers the given tools with automatic tool choice.
func NewSessionUpdate(tools ...Tool) Client {
	return Client{
		Type:    TypeSessionUpdate,
		Session: &Session{Tools: tools, ToolChoice: "auto"},
	}
}

// Envelope is one event as held by the session log: the type discriminator,
// the full wire payload and bookkeeping for display.
type Envelope struct {
	Type     string          `json:"type"`
	EventID  string          `json:"event_id,omitempty"`
	Raw      json.RawMessage `json:"raw"`
	Outbound bool            `json:"outbound"`
	At       time.Time       `json:"at"`
}

// Parse decodes an inbound transport message into an Envelope, keeping the
// complete payload in Raw.
func Parse(data []byte) (Envelope, error) {
	var probe struct {
		Type    string `json:"type"`
		EventID string `json:"event_id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Envelope{}, fmt.Errorf("decode channel event: %w", err)
	}
	if probe.Type == "" {
		return Envelope{}, fmt.Errorf("channel event missing type discriminator")
	}
	raw := make(json.RawMessage, len(data))
	copy(raw, data)
	return Envelope{Type: probe.Type, EventID: probe.EventID, Raw: raw, At: time.Now().UTC()}, nil
}

// OutputItem is one entry of a response.done output sequence. Arguments is
// the provider's JSON-encoded string, decoded by the consumer.
type OutputItem struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	CallID    string `json:"call_id,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// ResponseOutput extracts the output sequence of a response.done envelope.
func (e Envelope) ResponseOutput() ([]OutputItem, error) {
	if e.Type != TypeResponseDone {
		return nil, fmt.Errorf("event %s carries no response output", e.Type)
	}
	var payload struct {
		Response struct {
			Output []OutputItem `json:"output"`
		} `json:"response"`
	}
	if err := json.Unmarshal(e.Raw, &payload); err != nil {
		return nil, fmt.Errorf("decode response.done payload: %w", err)
	}
	return payload.Response.Output, nil
}
