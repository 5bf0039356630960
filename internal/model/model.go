package model

import (
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// DefaultChatTitle is the placeholder title every chat starts with. A chat
// still carrying it after its first exchange gets a title derived from the
// first user message.
const DefaultChatTitle = "New Chat"

// ChatSettings is the free-form settings object stored with a chat.
type ChatSettings map[string]any

// SystemPrompt returns the system prompt override, or "" when none is set.
func (s ChatSettings) SystemPrompt() string {
	v, _ := s["system_prompt"].(string)
	return strings.TrimSpace(v)
}

// Chat stores metadata about a conversation.
type Chat struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Title         string       `json:"title"`
	Model         string       `json:"model"`
	Settings      ChatSettings `json:"settings,omitempty"`
	LastMessageAt *time.Time   `json:"last_message_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// LatestMessage is only populated by chat listings.
	LatestMessage *Message `json:"latest_message,omitempty"`
}

// Message stores a single message in a chat.
type Message struct {
	ID          string         `json:"id"`
	ChatID      string         `json:"chat_id"`
	Seq         int64          `json:"seq"` // Monotonic per chat, assigned on insert.
	Role        string         `json:"role"`
	Content     string         `json:"content"`
	TokensUsed  *int           `json:"tokens_used"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	Attachments []Attachment   `json:"attachments"`
}

// ExtractionStatus records what the extractor made of an attachment.
type ExtractionStatus string

const (
	ExtractionExtracted   ExtractionStatus = "extracted"
	ExtractionUnsupported ExtractionStatus = "unsupported"
	ExtractionNone        ExtractionStatus = "none"
)

// Attachment is a file linked to a message. The storage key is internal;
// clients reach the bytes through the signed URL.
type Attachment struct {
	ID               string           `json:"id"`
	MessageID        string           `json:"message_id"`
	Filename         string           `json:"filename"`
	MimeType         string           `json:"mime_type"`
	Size             int64            `json:"size"`
	StorageKey       string           `json:"-"`
	ExtractedContent *string          `json:"extracted_content"`
	ExtractionStatus ExtractionStatus `json:"extraction_status"`
	CreatedAt        time.Time        `json:"created_at"`
	URL              string           `json:"url,omitempty"`
}

// FullChat includes the chat metadata and all its messages.
type FullChat struct {
	Chat
	Messages []Message `json:"messages"`
}

// ChatPage is one page of a user's chats.
type ChatPage struct {
	Data        []*Chat `json:"data"`
	CurrentPage int     `json:"current_page"`
	PerPage     int     `json:"per_page"`
	Total       int     `json:"total"`
}
