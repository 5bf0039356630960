package service

import "routerchat/backend/internal/model"

// CreateChatRequest is the body of POST /chats.
type CreateChatRequest struct {
	Title          string             `json:"title" validate:"max=255"`
	Model          string             `json:"model"`
	Settings       model.ChatSettings `json:"settings"`
	InitialMessage string             `json:"initial_message"`
}

// UpdateChatRequest is the body of PUT /chats/{chatID}. Model and Settings are
// left untouched when omitted.
type UpdateChatRequest struct {
	Title    string             `json:"title" validate:"required,max=255"`
	Model    string             `json:"model"`
	Settings model.ChatSettings `json:"settings"`
}

// FileUpload is an uploaded file held in memory.
type FileUpload struct {
	Filename  string
	MediaType string
	Data      []byte
}

// SendMessageRequest carries a new user message with its files.
type SendMessageRequest struct {
	Content     string       `json:"content" validate:"required"`
	Attachments []FileUpload `json:"-"`
	// IdempotencyKey makes a retried submission return the first outcome.
	IdempotencyKey string `json:"-"`
}

// SendMessageResult is the outcome of one exchange. On an upstream failure
// only UserMessage and Error are set.
type SendMessageResult struct {
	UserMessage      *model.Message `json:"user_message"`
	AssistantMessage *model.Message `json:"assistant_message,omitempty"`
	Chat             *model.Chat    `json:"chat,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// CreateChatResult is the new chat with its messages. Error is set when the
// initial exchange failed upstream.
type CreateChatResult struct {
	model.FullChat
	Error string `json:"error,omitempty"`
}

// AttachmentPreview describes an uploaded file that was extracted but not
// stored.
type AttachmentPreview struct {
	Filename         string                 `json:"filename"`
	MimeType         string                 `json:"mime_type"`
	Size             int64                  `json:"size"`
	ExtractedContent *string                `json:"extracted_content"`
	ExtractionStatus model.ExtractionStatus `json:"extraction_status"`
}

// UploadResult holds either a stored Attachment (upload into a message) or a
// Preview (no message given).
type UploadResult struct {
	Attachment *model.Attachment
	Preview    *AttachmentPreview
	Extracted  bool
}
