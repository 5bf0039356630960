package repository

import (
	"context"

	"routerchat/backend/internal/model"
)

// Repository defines the data storage operations used by the chat pipeline.
type Repository interface {
	CreateChat(ctx context.Context, chat *model.Chat) error
	GetChat(ctx context.Context, chatID string) (*model.Chat, error)
	// ListChats returns one page of a user's chats, most recent activity first,
	// each with its latest message, plus the total number of chats.
	ListChats(ctx context.Context, userID string, limit, offset int) ([]*model.Chat, int, error)
	// UpdateChat persists title, model, settings and last_message_at.
	UpdateChat(ctx context.Context, chat *model.Chat) error
	DeleteChat(ctx context.Context, chatID string) error

	// AddMessage inserts a message and sets message.Seq to the next value of
	// the chat's sequence. A duplicate id or seq yields ErrConflict.
	AddMessage(ctx context.Context, message *model.Message) error
	GetMessage(ctx context.Context, chatID, messageID string) (*model.Message, error)
	// GetMessages returns every message of a chat in sequence order, with attachments.
	GetMessages(ctx context.Context, chatID string) ([]model.Message, error)
	// GetRecentMessages returns at most limit messages with seq < beforeSeq
	// (no bound when beforeSeq <= 0), oldest first, with attachments.
	GetRecentMessages(ctx context.Context, chatID string, beforeSeq int64, limit int) ([]model.Message, error)
	// CountMessages counts a chat's messages with the given role, or all of
	// them when role is "".
	CountMessages(ctx context.Context, chatID, role string) (int, error)
	// FirstMessage returns the chat's lowest-seq message with the given role.
	FirstMessage(ctx context.Context, chatID, role string) (*model.Message, error)

	// AddAttachment yields ErrConflict on a duplicate id.
	AddAttachment(ctx context.Context, attachment *model.Attachment) error
	// GetAttachment finds an attachment belonging to a message of the given chat.
	GetAttachment(ctx context.Context, chatID, attachmentID string) (*model.Attachment, error)
	GetAttachmentsByChatID(ctx context.Context, chatID string) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error

	// WithTx runs fn against a repository bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
