package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "routerchat/backend/internal/errors"
	"routerchat/backend/internal/extract"
	"routerchat/backend/internal/llm"
	"routerchat/backend/internal/lock"
	"routerchat/backend/internal/model"
	"routerchat/backend/internal/repository"
	"routerchat/backend/internal/storage"
)

const chatsPerPage = 20

// ChatServiceOptions holds the tunables of the chat pipeline.
type ChatServiceOptions struct {
	DefaultModel       string
	MaxAttachmentBytes int64
	IdempotencyTTL     time.Duration
}

type ChatService struct {
	repo      repository.Repository
	llm       llm.Provider
	blobs     storage.BlobStore
	locker    lock.Locker
	extractor *extract.Extractor
	history   *HistoryAssembler
	replay    *replayCache
	opts      ChatServiceOptions
}

func NewChatService(
	repo repository.Repository,
	provider llm.Provider,
	blobs storage.BlobStore,
	locker lock.Locker,
	opts ChatServiceOptions,
) *ChatService {
	if opts.MaxAttachmentBytes <= 0 {
		opts.MaxAttachmentBytes = 10 << 20
	}
	return &ChatService{
		repo:      repo,
		llm:       provider,
		blobs:     blobs,
		locker:    locker,
		extractor: extract.New(),
		history:   NewHistoryAssembler(repo),
		replay:    newReplayCache(opts.IdempotencyTTL),
		opts:      opts,
	}
}

// ListChats returns one page (1-based) of the user's chats.
func (s *ChatService) ListChats(ctx context.Context, userID string, page int) (*model.ChatPage, error) {
	if page < 1 {
		page = 1
	}
	chats, total, err := s.repo.ListChats(ctx, userID, chatsPerPage, (page-1)*chatsPerPage)
	if err != nil {
		return nil, fmt.Errorf("could not list chats: %w", err)
	}
	return &model.ChatPage{Data: chats, CurrentPage: page, PerPage: chatsPerPage, Total: total}, nil
}

// CreateChat creates a chat and, when an initial message is given, runs the
// first exchange. An upstream failure of that exchange is reported in the
// result rather than as an error, since the chat itself was created.
func (s *ChatService) CreateChat(ctx context.Context, userID string, req *CreateChatRequest) (*CreateChatResult, error) {
	now := time.Now().UTC()
	chat := &model.Chat{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         strings.TrimSpace(req.Title),
		Model:         strings.TrimSpace(req.Model),
		Settings:      req.Settings,
		LastMessageAt: &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if chat.Title == "" {
		chat.Title = model.DefaultChatTitle
	}
	if chat.Model == "" {
		chat.Model = s.opts.DefaultModel
	}
	if err := s.repo.CreateChat(ctx, chat); err != nil {
		return nil, fmt.Errorf("could not create chat: %w", conflictError(err))
	}
	slog.Info("Chat created", "chat_id", chat.ID, "user_id", userID, "model", chat.Model)

	result := &CreateChatResult{}
	if strings.TrimSpace(req.InitialMessage) != "" {
		_, err := s.SendMessage(ctx, userID, chat.ID, &SendMessageRequest{Content: req.InitialMessage})
		if err != nil {
			if !errors.Is(err, app_errors.ErrUpstream) {
				return nil, err
			}
			result.Error = err.Error()
		}
	}

	full, err := s.GetFullChat(ctx, userID, chat.ID)
	if err != nil {
		return nil, err
	}
	result.FullChat = *full
	return result, nil
}

// GetFullChat retrieves a chat's metadata and all its messages.
func (s *ChatService) GetFullChat(ctx context.Context, userID, chatID string) (*model.FullChat, error) {
	chat, err := s.authorizedChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	return &model.FullChat{Chat: *chat, Messages: messages}, nil
}

// UpdateChat changes title, and model and settings when given.
func (s *ChatService) UpdateChat(ctx context.Context, userID, chatID string, req *UpdateChatRequest) (*model.Chat, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}

	chat, err := s.authorizedChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	chat.Title = title
	if m := strings.TrimSpace(req.Model); m != "" {
		chat.Model = m
	}
	if req.Settings != nil {
		chat.Settings = req.Settings
	}
	if err := s.repo.UpdateChat(ctx, chat); err != nil {
		return nil, s.repoError(err, "chat", chatID)
	}
	return chat, nil
}

// DeleteChat removes every attachment blob, then the chat with its messages
// and attachment rows. A blob that cannot be removed aborts the deletion.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	unlock, err := s.locker.Lock(ctx, chatID)
	if err != nil {
		return fmt.Errorf("could not lock chat: %w", err)
	}
	defer unlock()

	if _, err := s.authorizedChat(ctx, userID, chatID); err != nil {
		return err
	}

	attachments, err := s.repo.GetAttachmentsByChatID(ctx, chatID)
	if err != nil {
		return fmt.Errorf("could not list attachments: %w", err)
	}
	for _, a := range attachments {
		if err := s.blobs.Delete(ctx, a.StorageKey); err != nil {
			return fmt.Errorf("could not delete attachment %s: %w", a.ID, err)
		}
	}

	if err := s.repo.DeleteChat(ctx, chatID); err != nil {
		return s.repoError(err, "chat", chatID)
	}
	slog.Info("Chat deleted", "chat_id", chatID, "attachments", len(attachments))
	return nil
}

// SendMessage runs one exchange: it stores the user message with its files,
// asks the model and stores the reply. When the model fails the user message
// stays stored, and the returned result (with UserMessage and Error set)
// accompanies an error matching errors.ErrUpstream.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID string, req *SendMessageRequest) (*SendMessageResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: Field 'content' failed on the 'required' tag", app_errors.ErrValidation)
	}
	for _, f := range req.Attachments {
		if err := s.checkSize(f); err != nil {
			return nil, err
		}
	}

	unlock, err := s.locker.Lock(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not lock chat: %w", err)
	}
	defer unlock()

	chat, err := s.authorizedChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if entry, ok := s.replay.get(userID, chatID, req.IdempotencyKey); ok {
		slog.Info("Replaying message outcome", "chat_id", chatID, "idempotency_key", req.IdempotencyKey)
		return entry.result, entry.err
	}

	userMsg, docs, err := s.persistUserMessage(ctx, chat, req)
	if err != nil {
		return nil, err
	}

	messages, err := s.history.Assemble(ctx, chat, userMsg.Seq, req.Content, docs)
	if err != nil {
		return nil, err
	}

	modelName := chat.Model
	if modelName == "" {
		modelName = s.opts.DefaultModel
	}
	completion, err := s.llm.Complete(ctx, &llm.CompletionRequest{Model: modelName, Messages: messages})
	if err != nil {
		if !errors.Is(err, app_errors.ErrUpstream) {
			return nil, fmt.Errorf("completion failed: %w", err)
		}
		slog.Warn("Model call failed, keeping user message", "chat_id", chatID, "message_id", userMsg.ID, "error", err)
		result := &SendMessageResult{UserMessage: userMsg, Error: err.Error()}
		s.replay.put(userID, chatID, req.IdempotencyKey, result, err)
		return result, err
	}

	assistantMsg, updated, err := s.persistAssistantMessage(ctx, chat.ID, completion)
	if err != nil {
		return nil, err
	}

	result := &SendMessageResult{UserMessage: userMsg, AssistantMessage: assistantMsg, Chat: updated}
	s.replay.put(userID, chatID, req.IdempotencyKey, result, nil)
	return result, nil
}

// persistUserMessage stores the user message and its attachments in one
// transaction. Blobs written before a rollback are removed again.
func (s *ChatService) persistUserMessage(ctx context.Context, chat *model.Chat, req *SendMessageRequest) (*model.Message, []Document, error) {
	var (
		msg     *model.Message
		docs    []Document
		written []string
	)
	err := s.repo.WithTx(ctx, func(tx repository.Repository) error {
		msg = &model.Message{
			ID:          uuid.NewString(),
			ChatID:      chat.ID,
			Role:        model.RoleUser,
			Content:     req.Content,
			CreatedAt:   time.Now().UTC(),
			Attachments: []model.Attachment{},
		}
		if err := tx.AddMessage(ctx, msg); err != nil {
			return err
		}

		for _, f := range req.Attachments {
			att, err := s.storeAttachment(ctx, tx, chat.ID, msg.ID, f, &written)
			if err != nil {
				return err
			}
			msg.Attachments = append(msg.Attachments, *att)
			if att.ExtractionStatus == model.ExtractionExtracted {
				docs = append(docs, Document{Filename: att.Filename, Text: *att.ExtractedContent})
			}
		}
		return nil
	})
	if err != nil {
		s.removeBlobs(written)
		return nil, nil, fmt.Errorf("could not save user message: %w", conflictError(err))
	}
	return msg, docs, nil
}

func (s *ChatService) persistAssistantMessage(ctx context.Context, chatID string, completion *llm.Completion) (*model.Message, *model.Chat, error) {
	var (
		msg  *model.Message
		chat *model.Chat
	)
	err := s.repo.WithTx(ctx, func(tx repository.Repository) error {
		now := time.Now().UTC()
		msg = &model.Message{
			ID:          uuid.NewString(),
			ChatID:      chatID,
			Role:        model.RoleAssistant,
			Content:     completion.Content,
			TokensUsed:  completion.TokensUsed,
			Metadata:    map[string]any{"model": completion.Model},
			CreatedAt:   now,
			Attachments: []model.Attachment{},
		}
		if err := tx.AddMessage(ctx, msg); err != nil {
			return err
		}

		var err error
		chat, err = tx.GetChat(ctx, chatID)
		if err != nil {
			return err
		}
		chat.LastMessageAt = &now

		if chat.Title == model.DefaultChatTitle {
			// Failed exchanges keep their user message; only replies count.
			replies, err := tx.CountMessages(ctx, chatID, model.RoleAssistant)
			if err != nil {
				return err
			}
			if replies == 1 {
				first, err := tx.FirstMessage(ctx, chatID, model.RoleUser)
				if err != nil {
					return err
				}
				chat.Title = deriveTitle(first.Content)
			}
		}
		return tx.UpdateChat(ctx, chat)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not save assistant message: %w", conflictError(err))
	}
	return msg, chat, nil
}

// UploadDocument stores a file into an existing message when messageID is
// set. Without a message the file is only extracted and described; nothing is
// stored.
func (s *ChatService) UploadDocument(ctx context.Context, userID, chatID, messageID string, f FileUpload) (*UploadResult, error) {
	if err := s.checkSize(f); err != nil {
		return nil, err
	}

	if messageID == "" {
		if _, err := s.authorizedChat(ctx, userID, chatID); err != nil {
			return nil, err
		}
		mediaType := extract.DetectMediaType(f.Data, f.MediaType)
		res, err := s.extractor.Extract(f.Data, mediaType)
		if err != nil {
			return nil, fmt.Errorf("could not extract %s: %w", f.Filename, err)
		}
		preview := &AttachmentPreview{
			Filename:         f.Filename,
			MimeType:         mediaType,
			Size:             int64(len(f.Data)),
			ExtractionStatus: res.Status,
		}
		if res.Status == extract.StatusExtracted {
			text := res.Text
			preview.ExtractedContent = &text
		}
		return &UploadResult{Preview: preview, Extracted: res.Status == extract.StatusExtracted && res.Text != ""}, nil
	}

	unlock, err := s.locker.Lock(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not lock chat: %w", err)
	}
	defer unlock()

	if _, err := s.authorizedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	var (
		att     *model.Attachment
		written []string
	)
	err = s.repo.WithTx(ctx, func(tx repository.Repository) error {
		if _, err := tx.GetMessage(ctx, chatID, messageID); err != nil {
			return s.repoError(err, "message", messageID)
		}
		var err error
		att, err = s.storeAttachment(ctx, tx, chatID, messageID, f, &written)
		return err
	})
	if err != nil {
		s.removeBlobs(written)
		if errors.Is(err, app_errors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("could not save attachment: %w", conflictError(err))
	}
	return &UploadResult{Attachment: att, Extracted: att.ExtractionStatus == model.ExtractionExtracted}, nil
}

// DeleteAttachment removes the attachment's bytes, then its row.
func (s *ChatService) DeleteAttachment(ctx context.Context, userID, chatID, attachmentID string) error {
	unlock, err := s.locker.Lock(ctx, chatID)
	if err != nil {
		return fmt.Errorf("could not lock chat: %w", err)
	}
	defer unlock()

	if _, err := s.authorizedChat(ctx, userID, chatID); err != nil {
		return err
	}
	att, err := s.repo.GetAttachment(ctx, chatID, attachmentID)
	if err != nil {
		return s.repoError(err, "attachment", attachmentID)
	}
	if err := s.blobs.Delete(ctx, att.StorageKey); err != nil {
		return fmt.Errorf("could not delete attachment bytes: %w", err)
	}
	if err := s.repo.DeleteAttachment(ctx, attachmentID); err != nil {
		return s.repoError(err, "attachment", attachmentID)
	}
	return nil
}

// OpenAttachment returns an attachment of chatID with a reader over its bytes.
// Access is granted by the caller (a signed URL), not by chat ownership.
func (s *ChatService) OpenAttachment(ctx context.Context, chatID, attachmentID string) (*model.Attachment, io.ReadCloser, error) {
	att, err := s.repo.GetAttachment(ctx, chatID, attachmentID)
	if err != nil {
		return nil, nil, s.repoError(err, "attachment", attachmentID)
	}
	rc, err := s.blobs.Open(ctx, att.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("attachment %s content: %w", attachmentID, app_errors.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("could not open attachment: %w", err)
	}
	return att, rc, nil
}

// storeAttachment writes the bytes, extracts text and inserts the row. Keys
// of written blobs are appended to written.
func (s *ChatService) storeAttachment(ctx context.Context, tx repository.Repository, chatID, messageID string, f FileUpload, written *[]string) (*model.Attachment, error) {
	mediaType := extract.DetectMediaType(f.Data, f.MediaType)
	key := storage.AttachmentKey(chatID, f.Filename)
	if err := s.blobs.Put(ctx, key, f.Data); err != nil {
		return nil, err
	}
	*written = append(*written, key)

	res, err := s.extractor.Extract(f.Data, mediaType)
	if err != nil {
		return nil, fmt.Errorf("could not extract %s: %w", f.Filename, err)
	}

	att := &model.Attachment{
		ID:               uuid.NewString(),
		MessageID:        messageID,
		Filename:         f.Filename,
		MimeType:         mediaType,
		Size:             int64(len(f.Data)),
		StorageKey:       key,
		ExtractionStatus: res.Status,
		CreatedAt:        time.Now().UTC(),
	}
	if res.Status == extract.StatusExtracted {
		text := res.Text
		att.ExtractedContent = &text
	}
	if err := tx.AddAttachment(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// removeBlobs is the compensating delete for a rolled back transaction.
func (s *ChatService) removeBlobs(keys []string) {
	for _, key := range keys {
		if err := s.blobs.Delete(context.Background(), key); err != nil {
			slog.Error("Failed to remove orphaned attachment blob", "key", key, "error", err)
		}
	}
}

func (s *ChatService) checkSize(f FileUpload) error {
	if int64(len(f.Data)) > s.opts.MaxAttachmentBytes {
		return fmt.Errorf("%w: file '%s' exceeds the %d byte limit", app_errors.ErrValidation, f.Filename, s.opts.MaxAttachmentBytes)
	}
	return nil
}

// authorizedChat loads the chat and checks that userID owns it.
func (s *ChatService) authorizedChat(ctx context.Context, userID, chatID string) (*model.Chat, error) {
	chat, err := s.repo.GetChat(ctx, chatID)
	if err != nil {
		return nil, s.repoError(err, "chat", chatID)
	}
	if chat.UserID != userID {
		return nil, fmt.Errorf("chat %s: %w", chatID, app_errors.ErrPermission)
	}
	return chat, nil
}

// repoError translates repository sentinels into the API ones.
func (s *ChatService) repoError(err error, kind, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, app_errors.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", kind, id, conflictError(err))
}

// conflictError marks a repository.ErrConflict with errors.ErrConflict,
// keeping the original cause in the chain.
func conflictError(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%w: %w", app_errors.ErrConflict, err)
	}
	return err
}
