package interfaces

import (
	"context"
	"io"

	"routerchat/backend/internal/config"
	"routerchat/backend/internal/model"
	"routerchat/backend/internal/service"
)

// This file defines the interfaces for our core services.
// The API layer depends on these instead of the concrete services, so handlers
// can be tested against mocks.

// ChatService defines the contract for the chat pipeline. Every call acts on
// behalf of userID and fails with errors.ErrPermission on chats it does not own.
type ChatService interface {
	ListChats(ctx context.Context, userID string, page int) (*model.ChatPage, error)
	CreateChat(ctx context.Context, userID string, req *service.CreateChatRequest) (*service.CreateChatResult, error)
	GetFullChat(ctx context.Context, userID, chatID string) (*model.FullChat, error)
	UpdateChat(ctx context.Context, userID, chatID string, req *service.UpdateChatRequest) (*model.Chat, error)
	DeleteChat(ctx context.Context, userID, chatID string) error
	SendMessage(ctx context.Context, userID, chatID string, req *service.SendMessageRequest) (*service.SendMessageResult, error)
	UploadDocument(ctx context.Context, userID, chatID, messageID string, file service.FileUpload) (*service.UploadResult, error)
	DeleteAttachment(ctx context.Context, userID, chatID, attachmentID string) error
	OpenAttachment(ctx context.Context, chatID, attachmentID string) (*model.Attachment, io.ReadCloser, error)
}

// ModelService defines the contract for the model catalog.
type ModelService interface {
	List(ctx context.Context) ([]config.ModelSpec, error)
}

var (
	_ ChatService  = (*service.ChatService)(nil)
	_ ModelService = (*service.ModelService)(nil)
)
