package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"routerchat/backend/internal/database"
	app_errors "routerchat/backend/internal/errors"
	"routerchat/backend/internal/llm"
	mock_llm "routerchat/backend/internal/llm/mocks"
	"routerchat/backend/internal/lock"
	"routerchat/backend/internal/model"
	"routerchat/backend/internal/repository"
	mock_repo "routerchat/backend/internal/repository/mocks"
	"routerchat/backend/internal/service"
	"routerchat/backend/internal/storage"
)

const (
	testUser  = "user-1"
	testModel = "openai/gpt-3.5-turbo"
)

type pipeline struct {
	svc  *service.ChatService
	repo repository.Repository
	llm  *mock_llm.MockProvider
	fs   afero.Fs
}

// setupPipeline wires the service to a real SQLite database, an in-memory blob
// store and a mocked model gateway.
func setupPipeline(t *testing.T) pipeline {
	db, err := database.InitDB(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	p := pipeline{
		repo: repository.NewSQLiteRepository(db),
		llm:  mock_llm.NewMockProvider(t),
		fs:   afero.NewMemMapFs(),
	}
	p.svc = service.NewChatService(p.repo, p.llm, storage.NewFileStore(p.fs), lock.NewMemoryLocker(), service.ChatServiceOptions{
		DefaultModel:       testModel,
		MaxAttachmentBytes: 1024,
		IdempotencyTTL:     time.Minute,
	})
	return p
}

func (p pipeline) newChat(t *testing.T, settings model.ChatSettings) *model.Chat {
	res, err := p.svc.CreateChat(context.Background(), testUser, &service.CreateChatRequest{Settings: settings})
	require.NoError(t, err)
	return &res.Chat
}

func (p pipeline) blobCount(t *testing.T) int {
	n := 0
	err := afero.Walk(p.fs, "/", func(_ string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			n++
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		require.NoError(t, err)
	}
	return n
}

func reply(content string, tokens int) *llm.Completion {
	return &llm.Completion{Content: content, TokensUsed: &tokens, Model: testModel}
}

func TestChatService_CreateChat_Defaults(t *testing.T) {
	p := setupPipeline(t)

	res, err := p.svc.CreateChat(context.Background(), testUser, &service.CreateChatRequest{})

	require.NoError(t, err)
	assert.Equal(t, model.DefaultChatTitle, res.Title)
	assert.Equal(t, testModel, res.Model)
	assert.Equal(t, testUser, res.UserID)
	assert.NotNil(t, res.LastMessageAt)
	assert.Empty(t, res.Messages)
	assert.Empty(t, res.Error)
}

func TestChatService_CreateChat_WithInitialMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p := setupPipeline(t)
		p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("Hello!", 5), nil).Once()

		res, err := p.svc.CreateChat(ctx, testUser, &service.CreateChatRequest{Title: "Greetings", InitialMessage: "Hi"})

		require.NoError(t, err)
		require.Len(t, res.Messages, 2)
		assert.Equal(t, "Greetings", res.Title)
		assert.Empty(t, res.Error)
	})

	t.Run("Upstream failure is reported, chat is kept", func(t *testing.T) {
		p := setupPipeline(t)
		p.llm.On("Complete", mock.Anything, mock.Anything).
			Return(nil, &llm.UpstreamError{Kind: llm.KindClient, StatusCode: 401, Message: "No auth credentials found"}).Once()

		res, err := p.svc.CreateChat(ctx, testUser, &service.CreateChatRequest{InitialMessage: "Hi"})

		require.NoError(t, err)
		assert.Contains(t, res.Error, "No auth credentials found")
		require.Len(t, res.Messages, 1)
		assert.Equal(t, model.RoleUser, res.Messages[0].Role)
	})
}

func TestChatService_SendMessage_DerivesTitle(t *testing.T) {
	ctx := context.Background()
	content := "What does my auto policy cover for rental cars?"

	p := setupPipeline(t)
	chat := p.newChat(t, nil)
	p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("Rental cars are covered up to $30/day.", 42), nil)

	res, err := p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{Content: content})

	require.NoError(t, err)
	assert.Equal(t, content, res.Chat.Title)
	assert.Equal(t, int64(1), res.UserMessage.Seq)
	assert.Equal(t, int64(2), res.AssistantMessage.Seq)
	assert.Equal(t, "Rental cars are covered up to $30/day.", res.AssistantMessage.Content)
	require.NotNil(t, res.AssistantMessage.TokensUsed)
	assert.Equal(t, 42, *res.AssistantMessage.TokensUsed)
	assert.Equal(t, testModel, res.AssistantMessage.Metadata["model"])
	require.NotNil(t, res.Chat.LastMessageAt)

	// A second exchange leaves the derived title alone.
	res, err = p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{Content: "And abroad?"})
	require.NoError(t, err)
	assert.Equal(t, content, res.Chat.Title)
}

func TestChatService_SendMessage_LongTitleIsShortened(t *testing.T) {
	p := setupPipeline(t)
	chat := p.newChat(t, nil)
	p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("ok", 1), nil)

	content := strings.Repeat("a", 49) + " and then a lot more words after that"
	res, err := p.svc.SendMessage(context.Background(), testUser, chat.ID, &service.SendMessageRequest{Content: content})

	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 49)+"...", res.Chat.Title)
}

func TestChatService_SendMessage_UpstreamFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, nil)
	before, err := p.repo.GetChat(ctx, chat.ID)
	require.NoError(t, err)

	upstreamErr := &llm.UpstreamError{Kind: llm.KindTransient, StatusCode: 500, Message: "provider overloaded"}
	p.llm.On("Complete", mock.Anything, mock.Anything).Return(nil, upstreamErr).Once()

	res, err := p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{Content: "Are you there?"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, app_errors.ErrUpstream))
	require.NotNil(t, res)
	assert.Equal(t, "Are you there?", res.UserMessage.Content)
	assert.Contains(t, res.Error, "provider overloaded")
	assert.Nil(t, res.AssistantMessage)

	msgs, err := p.repo.GetMessages(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleUser, msgs[0].Role)

	after, err := p.repo.GetChat(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChatTitle, after.Title)
	require.NotNil(t, after.LastMessageAt)
	assert.True(t, before.LastMessageAt.Equal(*after.LastMessageAt))
}

func TestChatService_SendMessage_TitleAfterFailedFirstExchange(t *testing.T) {
	ctx := context.Background()
	content := "What does my auto policy cover for rental cars?"

	t.Run("Failed send, then a successful one", func(t *testing.T) {
		// ARRANGE: the first call fails upstream, the second succeeds.
		p := setupPipeline(t)
		chat := p.newChat(t, nil)
		p.llm.On("Complete", mock.Anything, mock.Anything).
			Return(nil, &llm.UpstreamError{Kind: llm.KindTransient, StatusCode: 503, Message: "overloaded"}).Once()
		p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("Up to $30/day.", 7), nil).Once()

		// ACT
		_, err := p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{Content: content})
		require.ErrorIs(t, err, app_errors.ErrUpstream)
		res, err := p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{Content: "Hello again?"})

		// ASSERT: the title comes from the chat's first user message.
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.AssistantMessage.Seq)
		assert.Equal(t, content, res.Chat.Title)

		stored, err := p.repo.GetChat(ctx, chat.ID)
		require.NoError(t, err)
		assert.Equal(t, content, stored.Title)
	})

	t.Run("Failed initial message, then a successful send", func(t *testing.T) {
		p := setupPipeline(t)
		p.llm.On("Complete", mock.Anything, mock.Anything).
			Return(nil, &llm.UpstreamError{Kind: llm.KindClient, StatusCode: 401, Message: "No auth credentials found"}).Once()
		p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("Sure.", 3), nil).Once()

		created, err := p.svc.CreateChat(ctx, testUser, &service.CreateChatRequest{InitialMessage: content})
		require.NoError(t, err)
		require.NotEmpty(t, created.Error)
		assert.Equal(t, model.DefaultChatTitle, created.Title)

		res, err := p.svc.SendMessage(ctx, testUser, created.ID, &service.SendMessageRequest{Content: "Retrying"})

		require.NoError(t, err)
		assert.Equal(t, content, res.Chat.Title)
	})
}

func TestChatService_SendMessage_AttachmentRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, model.ChatSettings{"system_prompt": "You are an insurance assistant."})

	var requests []*llm.CompletionRequest
	p.llm.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			requests = append(requests, args.Get(1).(*llm.CompletionRequest))
		}).
		Return(reply("Your deductible is $500.", 20), nil)

	res, err := p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{
		Content: "What is my deductible?",
		Attachments: []service.FileUpload{
			{Filename: "policy.txt", MediaType: "text/plain", Data: []byte("Deductible: $500")},
			{Filename: "scan.pdf", MediaType: "application/pdf", Data: []byte("%PDF-1.7")},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.UserMessage.Attachments, 2)
	assert.Equal(t, model.ExtractionExtracted, res.UserMessage.Attachments[0].ExtractionStatus)
	assert.Equal(t, model.ExtractionUnsupported, res.UserMessage.Attachments[1].ExtractionStatus)
	assert.Nil(t, res.UserMessage.Attachments[1].ExtractedContent)
	assert.Equal(t, 2, p.blobCount(t))

	require.Len(t, requests, 1)
	first := requests[0]
	assert.Equal(t, testModel, first.Model)
	require.Len(t, first.Messages, 2)
	assert.Equal(t, llm.Message{Role: "system", Content: "You are an insurance assistant."}, first.Messages[0])
	assert.Equal(t, "What is my deductible?\n\n[Attached Document: policy.txt]\nDeductible: $500", first.Messages[1].Content)

	// The stored document keeps flowing into later requests through history.
	_, err = p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{Content: "Thanks"})
	require.NoError(t, err)

	require.Len(t, requests, 2)
	second := requests[1]
	require.Len(t, second.Messages, 4)
	assert.Equal(t, "What is my deductible?\n\n[Attached Document: policy.txt]\nDeductible: $500", second.Messages[1].Content)
	assert.Equal(t, llm.Message{Role: "assistant", Content: "Your deductible is $500."}, second.Messages[2])
	assert.Equal(t, llm.Message{Role: "user", Content: "Thanks"}, second.Messages[3])

	// The stored bytes are readable back.
	att, rc, err := p.svc.OpenAttachment(ctx, chat.ID, res.UserMessage.Attachments[0].ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "Deductible: $500", string(data))
	assert.Equal(t, "policy.txt", att.Filename)
}

func TestChatService_SendMessage_Validation(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, nil)

	testCases := []struct {
		name string
		req  *service.SendMessageRequest
	}{
		{"Empty content", &service.SendMessageRequest{Content: "   "}},
		{"Oversized file", &service.SendMessageRequest{
			Content:     "see file",
			Attachments: []service.FileUpload{{Filename: "big.txt", MediaType: "text/plain", Data: make([]byte, 2048)}},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.svc.SendMessage(ctx, testUser, chat.ID, tc.req)
			assert.ErrorIs(t, err, app_errors.ErrValidation)

			n, err := p.repo.CountMessages(ctx, chat.ID, "")
			require.NoError(t, err)
			assert.Zero(t, n)
			assert.Zero(t, p.blobCount(t))
		})
	}
}

func TestChatService_SendMessage_IdempotentReplay(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, nil)
	p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("once", 1), nil).Once()

	req := &service.SendMessageRequest{Content: "Hello", IdempotencyKey: "retry-123"}
	first, err := p.svc.SendMessage(ctx, testUser, chat.ID, req)
	require.NoError(t, err)
	second, err := p.svc.SendMessage(ctx, testUser, chat.ID, req)
	require.NoError(t, err)

	assert.Equal(t, first.UserMessage.ID, second.UserMessage.ID)
	assert.Equal(t, first.AssistantMessage.ID, second.AssistantMessage.ID)

	n, err := p.repo.CountMessages(ctx, chat.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestChatService_SendMessage_ConcurrentSendsAreSerialized(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, nil)
	p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("ack", 1), nil)

	const senders = 5
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{Content: "ping"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	msgs, err := p.repo.GetMessages(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2*senders)
	for i, m := range msgs {
		assert.Equal(t, int64(i+1), m.Seq)
		if i%2 == 0 {
			assert.Equal(t, model.RoleUser, m.Role, "seq %d", m.Seq)
		} else {
			assert.Equal(t, model.RoleAssistant, m.Role, "seq %d", m.Seq)
		}
	}
}

func TestChatService_DeleteChat_RemovesEverything(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, nil)
	p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("noted", 1), nil)

	_, err := p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{
		Content:     "keep this",
		Attachments: []service.FileUpload{{Filename: "notes.md", MediaType: "text/markdown", Data: []byte("# notes")}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, p.blobCount(t))

	require.NoError(t, p.svc.DeleteChat(ctx, testUser, chat.ID))

	n, err := p.repo.CountMessages(ctx, chat.ID, "")
	require.NoError(t, err)
	assert.Zero(t, n)
	atts, err := p.repo.GetAttachmentsByChatID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Empty(t, atts)
	assert.Zero(t, p.blobCount(t))

	_, err = p.svc.GetFullChat(ctx, testUser, chat.ID)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestChatService_Ownership(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, nil)
	const intruder = "user-2"

	_, err := p.svc.GetFullChat(ctx, intruder, chat.ID)
	assert.ErrorIs(t, err, app_errors.ErrPermission)

	_, err = p.svc.SendMessage(ctx, intruder, chat.ID, &service.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, app_errors.ErrPermission)

	_, err = p.svc.UpdateChat(ctx, intruder, chat.ID, &service.UpdateChatRequest{Title: "mine"})
	assert.ErrorIs(t, err, app_errors.ErrPermission)

	assert.ErrorIs(t, p.svc.DeleteChat(ctx, intruder, chat.ID), app_errors.ErrPermission)

	page, err := p.svc.ListChats(ctx, intruder, 1)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestChatService_UpdateChat(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, model.ChatSettings{"system_prompt": "old"})

	t.Run("Success", func(t *testing.T) {
		updated, err := p.svc.UpdateChat(ctx, testUser, chat.ID, &service.UpdateChatRequest{
			Title:    "Car insurance",
			Model:    "anthropic/claude-3-haiku",
			Settings: model.ChatSettings{"system_prompt": "new"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Car insurance", updated.Title)

		stored, err := p.repo.GetChat(ctx, chat.ID)
		require.NoError(t, err)
		assert.Equal(t, "Car insurance", stored.Title)
		assert.Equal(t, "anthropic/claude-3-haiku", stored.Model)
		assert.Equal(t, "new", stored.Settings.SystemPrompt())
	})

	t.Run("Omitted fields are kept", func(t *testing.T) {
		_, err := p.svc.UpdateChat(ctx, testUser, chat.ID, &service.UpdateChatRequest{Title: "Renamed"})
		require.NoError(t, err)

		stored, err := p.repo.GetChat(ctx, chat.ID)
		require.NoError(t, err)
		assert.Equal(t, "anthropic/claude-3-haiku", stored.Model)
		assert.Equal(t, "new", stored.Settings.SystemPrompt())
	})

	t.Run("Failure - empty title", func(t *testing.T) {
		_, err := p.svc.UpdateChat(ctx, testUser, chat.ID, &service.UpdateChatRequest{Title: " "})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Failure - unknown chat", func(t *testing.T) {
		_, err := p.svc.UpdateChat(ctx, testUser, "missing", &service.UpdateChatRequest{Title: "x"})
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestChatService_ListChats_Pagination(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	for i := 0; i < 23; i++ {
		p.newChat(t, nil)
	}

	first, err := p.svc.ListChats(ctx, testUser, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.CurrentPage)
	assert.Equal(t, 20, first.PerPage)
	assert.Equal(t, 23, first.Total)
	assert.Len(t, first.Data, 20)

	second, err := p.svc.ListChats(ctx, testUser, 2)
	require.NoError(t, err)
	assert.Len(t, second.Data, 3)
}

func TestChatService_UploadDocument(t *testing.T) {
	ctx := context.Background()
	p := setupPipeline(t)
	chat := p.newChat(t, nil)
	p.llm.On("Complete", mock.Anything, mock.Anything).Return(reply("ok", 1), nil)
	sent, err := p.svc.SendMessage(ctx, testUser, chat.ID, &service.SendMessageRequest{Content: "here"})
	require.NoError(t, err)

	file := service.FileUpload{Filename: "claim.txt", MediaType: "", Data: []byte("Claim number 42")}

	t.Run("Preview without message stores nothing", func(t *testing.T) {
		res, err := p.svc.UploadDocument(ctx, testUser, chat.ID, "", file)
		require.NoError(t, err)
		require.NotNil(t, res.Preview)
		assert.Nil(t, res.Attachment)
		assert.True(t, res.Extracted)
		require.NotNil(t, res.Preview.ExtractedContent)
		assert.Equal(t, "Claim number 42", *res.Preview.ExtractedContent)
		assert.Contains(t, res.Preview.MimeType, "text/plain")
		assert.Zero(t, p.blobCount(t))
	})

	var attachmentID string
	t.Run("Attach to existing message", func(t *testing.T) {
		res, err := p.svc.UploadDocument(ctx, testUser, chat.ID, sent.UserMessage.ID, file)
		require.NoError(t, err)
		require.NotNil(t, res.Attachment)
		assert.Equal(t, sent.UserMessage.ID, res.Attachment.MessageID)
		assert.Equal(t, 1, p.blobCount(t))
		attachmentID = res.Attachment.ID

		msg, err := p.repo.GetMessage(ctx, chat.ID, sent.UserMessage.ID)
		require.NoError(t, err)
		assert.Len(t, msg.Attachments, 1)
	})

	t.Run("Unknown message", func(t *testing.T) {
		_, err := p.svc.UploadDocument(ctx, testUser, chat.ID, "missing", file)
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
		assert.Equal(t, 1, p.blobCount(t), "blob of the failed upload must be removed")
	})

	t.Run("Delete attachment", func(t *testing.T) {
		require.NoError(t, p.svc.DeleteAttachment(ctx, testUser, chat.ID, attachmentID))
		assert.Zero(t, p.blobCount(t))

		err := p.svc.DeleteAttachment(ctx, testUser, chat.ID, attachmentID)
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestChatService_SendMessage_RollbackRemovesBlobs(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	tx := mock_repo.NewMockRepository(t)
	provider := mock_llm.NewMockProvider(t)
	memFs := afero.NewMemMapFs()
	svc := service.NewChatService(repo, provider, storage.NewFileStore(memFs), lock.NewMemoryLocker(), service.ChatServiceOptions{DefaultModel: testModel})

	repo.On("GetChat", ctx, "chat-1").Return(&model.Chat{ID: "chat-1", UserID: testUser, Title: model.DefaultChatTitle}, nil).Once()
	repo.On("WithTx", ctx, mock.Anything).Return(func(ctx context.Context, fn func(repository.Repository) error) error {
		return fn(tx)
	}).Once()
	tx.On("AddMessage", ctx, mock.AnythingOfType("*model.Message")).Return(nil).Once()
	tx.On("AddAttachment", ctx, mock.AnythingOfType("*model.Attachment")).Return(errors.New("disk I/O error")).Once()

	_, err := svc.SendMessage(ctx, testUser, "chat-1", &service.SendMessageRequest{
		Content:     "file attached",
		Attachments: []service.FileUpload{{Filename: "a.txt", MediaType: "text/plain", Data: []byte("a")}},
	})

	require.Error(t, err)
	assert.ErrorContains(t, err, "disk I/O error")
	assert.False(t, errors.Is(err, app_errors.ErrUpstream))

	exists, err := afero.DirExists(memFs, "/chat-attachments/chat-1")
	require.NoError(t, err)
	if exists {
		entries, err := afero.ReadDir(memFs, "/chat-attachments/chat-1")
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}

func TestChatService_SendMessage_ConflictingInsert(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	tx := mock_repo.NewMockRepository(t)
	svc := service.NewChatService(repo, mock_llm.NewMockProvider(t), storage.NewFileStore(afero.NewMemMapFs()), lock.NewMemoryLocker(), service.ChatServiceOptions{DefaultModel: testModel})

	repo.On("GetChat", ctx, "chat-1").Return(&model.Chat{ID: "chat-1", UserID: testUser, Title: model.DefaultChatTitle}, nil).Once()
	repo.On("WithTx", ctx, mock.Anything).Return(func(ctx context.Context, fn func(repository.Repository) error) error {
		return fn(tx)
	}).Once()
	tx.On("AddMessage", ctx, mock.AnythingOfType("*model.Message")).
		Return(fmt.Errorf("could not insert message: %w", repository.ErrConflict)).Once()

	res, err := svc.SendMessage(ctx, testUser, "chat-1", &service.SendMessageRequest{Content: "hi"})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, app_errors.ErrConflict)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestChatService_GetFullChat_Errors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		setup     func(repo *mock_repo.MockRepository)
		expectErr error
	}{
		{
			name: "Chat not found",
			setup: func(repo *mock_repo.MockRepository) {
				repo.On("GetChat", ctx, "chat-1").Return(nil, repository.ErrNotFound).Once()
			},
			expectErr: app_errors.ErrNotFound,
		},
		{
			name: "Messages query fails",
			setup: func(repo *mock_repo.MockRepository) {
				repo.On("GetChat", ctx, "chat-1").Return(&model.Chat{ID: "chat-1", UserID: testUser}, nil).Once()
				repo.On("GetMessages", ctx, "chat-1").Return(nil, errors.New("db error")).Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := mock_repo.NewMockRepository(t)
			tc.setup(repo)
			svc := service.NewChatService(repo, mock_llm.NewMockProvider(t), storage.NewFileStore(afero.NewMemMapFs()), lock.NewMemoryLocker(), service.ChatServiceOptions{})

			_, err := svc.GetFullChat(ctx, testUser, "chat-1")

			require.Error(t, err)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
			}
		})
	}
}
