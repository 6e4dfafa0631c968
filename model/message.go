package model

import "time"

// Message roles used across all providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PartType identifies the kind of content a message part carries.
type PartType string

const (
	PartText  PartType = "text"
	PartImage PartType = "image"
)

// Part is one element of a message's ordered content sequence: either plain
// text or an image reference encoded as a data URL.
type Part struct {
	Type PartType
	Text string
	// ImageURL holds a data:image/png;base64,... string for PartImage parts.
	ImageURL string
}

// Message represents a chat message in the conversation. A message is
// immutable once appended to the conversation history.
type Message struct {
	Role      string
	Parts     []Part
	Timestamp time.Time
}

// NewTextMessage creates a message with a single text part.
func NewTextMessage(role, text string) Message {
	return Message{
		Role:      role,
		Parts:     []Part{{Type: PartText, Text: text}},
		Timestamp: time.Now(),
	}
}

// NewUserImageMessage creates a user message carrying text plus an image
// data URL. Used for tool follow-ups that embed a screenshot.
func NewUserImageMessage(text, imageURL string) Message {
	return Message{
		Role: RoleUser,
		Parts: []Part{
			{Type: PartText, Text: text},
			{Type: PartImage, ImageURL: imageURL},
		},
		Timestamp: time.Now(),
	}
}

// IsTextOnly reports whether every part of the message is plain text.
// A text-only message is representable as a single string for providers
// without multi-part content support.
func (m Message) IsTextOnly() bool {
	for _, p := range m.Parts {
		if p.Type != PartText {
			return false
		}
	}
	return true
}

// PlainText returns the concatenation of the message's text parts, in order.
// Image parts are skipped.
func (m Message) PlainText() string {
	text := ""
	for _, p := range m.Parts {
		if p.Type == PartText {
			text += p.Text
		}
	}
	return text
}

// Images returns the data URLs of the message's image parts, in order.
func (m Message) Images() []string {
	var urls []string
	for _, p := range m.Parts {
		if p.Type == PartImage && p.ImageURL != "" {
			urls = append(urls, p.ImageURL)
		}
	}
	return urls
}
