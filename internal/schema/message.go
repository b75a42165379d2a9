// Package schema defines the shared data types exchanged between the
// context-management components: conversation messages on the input side and
// the accumulated context memory on the state side.
package schema

import "strings"

// Roles carried by conversation messages. The core only distinguishes user
// and assistant turns; anything else is treated as opaque.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ContentBlock is a single block in a message. Only text blocks are
// inspected by the scoring and extraction passes; every other kind (images,
// tool results, ...) is carried through untouched.
type ContentBlock struct {
	Type string         // "text" | anything else (opaque)
	Text string         // when Type == "text"
	Data map[string]any // opaque payload for non-text blocks
}

// TextBlock returns a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// Message is one entry in the conversation history. Messages are immutable
// inputs: the core selects or rejects a message as a whole and never
// modifies its content.
type Message struct {
	Role    string
	Content []ContentBlock
}

// NewUserMessage returns a user message with a single text block.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: []ContentBlock{TextBlock(text)}}
}

// NewAssistantMessage returns an assistant message with a single text block.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: []ContentBlock{TextBlock(text)}}
}

// Flatten joins the text of all textual blocks with newlines. Non-text
// blocks contribute nothing.
func (m Message) Flatten() string {
	var parts []string
	for _, b := range m.Content {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}
