package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"routerchat/backend/internal/api"
	app_errors "routerchat/backend/internal/errors"
	"routerchat/backend/internal/interfaces/mocks"
	"routerchat/backend/internal/llm"
	"routerchat/backend/internal/model"
	"routerchat/backend/internal/service"
)

const testUser = "user-1"

func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockChatService, *api.AttachmentSigner) {
	mockChatSvc := mocks.NewMockChatService(t)
	signer, err := api.NewAttachmentSigner("test-secret", time.Minute)
	require.NoError(t, err)
	handler := api.NewChatHandler(mockChatSvc, signer, 1<<20)
	return handler, mockChatSvc, signer
}

// addChiURLParams simulates how the chi router injects URL parameters
// (e.g. `{chatID}`) into the request's context.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// serve runs h behind the user id middleware, as the router does.
func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set(api.UserIDHeader, testUser)
	rr := httptest.NewRecorder()
	api.WithUserID("default-user")(h).ServeHTTP(rr, req)
	return rr
}

type uploadPart struct {
	field, filename, contentType, body string
}

func multipartBody(t *testing.T, fields map[string]string, files ...uploadPart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestChatHandler_ListChats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockChatSvc, _ := setupChatHandler(t)
		page := &model.ChatPage{Data: []*model.Chat{{ID: "chat1", Title: "Test Chat"}}, CurrentPage: 2, PerPage: 20, Total: 21}
		mockChatSvc.On("ListChats", mock.Anything, testUser, 2).Return(page, nil).Once()

		// ACT
		rr := serve(handler.ListChats, httptest.NewRequest(http.MethodGet, "/v1/chats?page=2", nil))

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		var returned model.ChatPage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, 21, returned.Total)
		require.Len(t, returned.Data, 1)
		assert.Equal(t, "chat1", returned.Data[0].ID)
	})

	t.Run("Invalid page falls back to the first", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("ListChats", mock.Anything, testUser, 1).Return(&model.ChatPage{CurrentPage: 1}, nil).Once()

		rr := serve(handler.ListChats, httptest.NewRequest(http.MethodGet, "/v1/chats?page=abc", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Service returns error", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("ListChats", mock.Anything, testUser, 1).Return(nil, errors.New("disk on fire")).Once()

		rr := serve(handler.ListChats, httptest.NewRequest(http.MethodGet, "/v1/chats", nil))

		// ASSERT: internal details stay in the log.
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, decodeError(t, rr), "disk on fire")
	})
}

func TestChatHandler_CreateChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockChatSvc, _ := setupChatHandler(t)
		result := &service.CreateChatResult{FullChat: model.FullChat{
			Chat: model.Chat{ID: "chat-1", Title: "Hello"},
			Messages: []model.Message{{
				ID: "m1", ChatID: "chat-1", Role: model.RoleUser, Content: "Hello",
				Attachments: []model.Attachment{{ID: "att-1", Filename: "a.txt"}},
			}},
		}}
		mockChatSvc.On("CreateChat", mock.Anything, testUser, mock.MatchedBy(func(req *service.CreateChatRequest) bool {
			return req.Title == "Hello" && req.InitialMessage == "Hello"
		})).Return(result, nil).Once()

		// ACT
		body := `{"title":"Hello","initial_message":"Hello"}`
		rr := serve(handler.CreateChat, httptest.NewRequest(http.MethodPost, "/v1/chats", strings.NewReader(body)))

		// ASSERT
		assert.Equal(t, http.StatusCreated, rr.Code)
		var returned api.FullChatResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, "chat-1", returned.ID)
		require.Len(t, returned.Messages, 1)
		assert.True(t, strings.HasPrefix(returned.Messages[0].Attachments[0].URL, "/api/v1/attachments/att-1/content?token="))
		// The service result itself is not modified.
		assert.Empty(t, result.Messages[0].Attachments[0].URL)
	})

	t.Run("Initial exchange failed upstream", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		result := &service.CreateChatResult{
			FullChat: model.FullChat{Chat: model.Chat{ID: "chat-1"}, Messages: []model.Message{{ID: "m1", ChatID: "chat-1"}}},
			Error:    "upstream transient error (status 503): overloaded",
		}
		mockChatSvc.On("CreateChat", mock.Anything, testUser, mock.Anything).Return(result, nil).Once()

		rr := serve(handler.CreateChat, httptest.NewRequest(http.MethodPost, "/v1/chats", strings.NewReader(`{"initial_message":"hi"}`)))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "overloaded")
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		rr := serve(handler.CreateChat, httptest.NewRequest(http.MethodPost, "/v1/chats", strings.NewReader(`{invalid`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Title too long", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		body := fmt.Sprintf(`{"title":%q}`, strings.Repeat("x", 256))

		rr := serve(handler.CreateChat, httptest.NewRequest(http.MethodPost, "/v1/chats", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "Field 'title' failed on the 'max' tag")
	})
}

func TestChatHandler_GetChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		fullChat := &model.FullChat{Chat: model.Chat{ID: "chat-1", Title: "Test"}, Messages: []model.Message{}}
		mockChatSvc.On("GetFullChat", mock.Anything, testUser, "chat-1").Return(fullChat, nil).Once()

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/v1/chats/chat-1", nil), map[string]string{"chatID": "chat-1"})
		rr := serve(handler.GetChat, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"messages":[]`)
		assert.NotContains(t, rr.Body.String(), `"error"`)
	})

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Not found", app_errors.ErrNotFound, http.StatusNotFound},
		{"Someone else's chat", app_errors.ErrPermission, http.StatusForbidden},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, mockChatSvc, _ := setupChatHandler(t)
			mockChatSvc.On("GetFullChat", mock.Anything, testUser, "chat-1").Return(nil, tc.err).Once()

			req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/v1/chats/chat-1", nil), map[string]string{"chatID": "chat-1"})
			rr := serve(handler.GetChat, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestChatHandler_UpdateChat(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		updated := &model.Chat{ID: "chat-1", Title: "Renamed"}
		mockChatSvc.On("UpdateChat", mock.Anything, testUser, "chat-1", mock.MatchedBy(func(req *service.UpdateChatRequest) bool {
			return req.Title == "Renamed" && req.Model == "openai/gpt-4"
		})).Return(updated, nil).Once()

		body := `{"title":"Renamed","model":"openai/gpt-4"}`
		req := addChiURLParams(httptest.NewRequest(http.MethodPut, "/v1/chats/chat-1", strings.NewReader(body)), map[string]string{"chatID": "chat-1"})
		rr := serve(handler.UpdateChat, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Renamed")
	})

	t.Run("Failure - Missing title", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := addChiURLParams(httptest.NewRequest(http.MethodPut, "/v1/chats/chat-1", strings.NewReader(`{"model":"x"}`)), map[string]string{"chatID": "chat-1"})
		rr := serve(handler.UpdateChat, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "Field 'title' failed on the 'required' tag")
	})
}

func TestChatHandler_DeleteChat(t *testing.T) {
	handler, mockChatSvc, _ := setupChatHandler(t)
	mockChatSvc.On("DeleteChat", mock.Anything, testUser, "chat-1").Return(nil).Once()

	req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/v1/chats/chat-1", nil), map[string]string{"chatID": "chat-1"})
	rr := serve(handler.DeleteChat, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestChatHandler_SendMessage(t *testing.T) {
	chatParams := map[string]string{"chatID": "chat-1"}

	t.Run("Success - JSON body", func(t *testing.T) {
		// ARRANGE
		handler, mockChatSvc, _ := setupChatHandler(t)
		result := &service.SendMessageResult{
			UserMessage:      &model.Message{ID: "u1", ChatID: "chat-1", Role: model.RoleUser, Content: "Hello"},
			AssistantMessage: &model.Message{ID: "a1", ChatID: "chat-1", Role: model.RoleAssistant, Content: "Hi there"},
			Chat:             &model.Chat{ID: "chat-1", Title: "Hello"},
		}
		mockChatSvc.On("SendMessage", mock.Anything, testUser, "chat-1", mock.MatchedBy(func(req *service.SendMessageRequest) bool {
			return req.Content == "Hello" && req.IdempotencyKey == "key-1" && len(req.Attachments) == 0
		})).Return(result, nil).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/messages", strings.NewReader(`{"content":"Hello"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(api.IdempotencyKeyHeader, "key-1")
		rr := serve(handler.SendMessage, addChiURLParams(req, chatParams))

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		var returned service.SendMessageResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, "Hi there", returned.AssistantMessage.Content)
		assert.Empty(t, returned.Error)
	})

	t.Run("Success - Multipart with attachments", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		result := &service.SendMessageResult{
			UserMessage: &model.Message{
				ID: "u1", ChatID: "chat-1", Content: "Summarize",
				Attachments: []model.Attachment{{ID: "att-1", Filename: "notes.txt"}, {ID: "att-2", Filename: "b.md"}},
			},
			AssistantMessage: &model.Message{ID: "a1", ChatID: "chat-1"},
		}
		mockChatSvc.On("SendMessage", mock.Anything, testUser, "chat-1", mock.MatchedBy(func(req *service.SendMessageRequest) bool {
			return req.Content == "Summarize" &&
				len(req.Attachments) == 2 &&
				req.Attachments[0].Filename == "notes.txt" &&
				req.Attachments[0].MediaType == "text/plain" &&
				string(req.Attachments[0].Data) == "Deductible: $500" &&
				req.Attachments[1].Filename == "b.md"
		})).Return(result, nil).Once()

		body, contentType := multipartBody(t, map[string]string{"content": "Summarize"},
			uploadPart{"attachments[]", "notes.txt", "text/plain", "Deductible: $500"},
			uploadPart{"attachments[]", "b.md", "text/markdown", "# B"},
		)
		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/messages", body)
		req.Header.Set("Content-Type", contentType)
		rr := serve(handler.SendMessage, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned service.SendMessageResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		require.Len(t, returned.UserMessage.Attachments, 2)
		assert.NotEmpty(t, returned.UserMessage.Attachments[0].URL)
	})

	t.Run("Upstream failure keeps the user message", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		upstreamErr := &llm.UpstreamError{Kind: llm.KindTransient, StatusCode: 503, Message: "overloaded"}
		result := &service.SendMessageResult{
			UserMessage: &model.Message{ID: "u1", ChatID: "chat-1", Content: "Hello"},
			Error:       upstreamErr.Error(),
		}
		mockChatSvc.On("SendMessage", mock.Anything, testUser, "chat-1", mock.Anything).Return(result, fmt.Errorf("send message: %w", upstreamErr)).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/messages", strings.NewReader(`{"content":"Hello"}`))
		rr := serve(handler.SendMessage, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		var returned service.SendMessageResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, "Hello", returned.UserMessage.Content)
		assert.Nil(t, returned.AssistantMessage)
		assert.Contains(t, returned.Error, "overloaded")
	})

	t.Run("Failure - Empty content", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/messages", strings.NewReader(`{"content":""}`))
		rr := serve(handler.SendMessage, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr), "Field 'content' failed on the 'required' tag")
	})

	t.Run("Failure - Body too large", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		body := fmt.Sprintf(`{"content":%q}`, strings.Repeat("a", 2<<20))

		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/messages", strings.NewReader(body))
		rr := serve(handler.SendMessage, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("Failure - Conflicting write", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("SendMessage", mock.Anything, testUser, "chat-1", mock.Anything).
			Return(nil, fmt.Errorf("could not save user message: %w", app_errors.ErrConflict)).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/messages", strings.NewReader(`{"content":"Hello"}`))
		rr := serve(handler.SendMessage, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Chat not owned", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		mockChatSvc.On("SendMessage", mock.Anything, testUser, "chat-1", mock.Anything).Return(nil, app_errors.ErrPermission).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/messages", strings.NewReader(`{"content":"Hello"}`))
		rr := serve(handler.SendMessage, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestChatHandler_UploadDocument(t *testing.T) {
	chatParams := map[string]string{"chatID": "chat-1"}

	t.Run("Preview without message", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		text := "Deductible: $500"
		result := &service.UploadResult{
			Preview: &service.AttachmentPreview{
				Filename: "notes.txt", MimeType: "text/plain", Size: int64(len(text)),
				ExtractedContent: &text, ExtractionStatus: model.ExtractionExtracted,
			},
			Extracted: true,
		}
		mockChatSvc.On("UploadDocument", mock.Anything, testUser, "chat-1", "", mock.MatchedBy(func(f service.FileUpload) bool {
			return f.Filename == "notes.txt" && string(f.Data) == text
		})).Return(result, nil).Once()

		body, contentType := multipartBody(t, nil, uploadPart{"file", "notes.txt", "text/plain", text})
		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/upload", body)
		req.Header.Set("Content-Type", contentType)
		rr := serve(handler.UploadDocument, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned api.UploadPreviewResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.True(t, returned.Extracted)
		assert.Equal(t, text, *returned.Attachment.ExtractedContent)
	})

	t.Run("Attach to message", func(t *testing.T) {
		handler, mockChatSvc, _ := setupChatHandler(t)
		result := &service.UploadResult{Attachment: &model.Attachment{ID: "att-9", MessageID: "m1", Filename: "notes.txt"}, Extracted: true}
		mockChatSvc.On("UploadDocument", mock.Anything, testUser, "chat-1", "m1", mock.Anything).Return(result, nil).Once()

		body, contentType := multipartBody(t, map[string]string{"message_id": "m1"}, uploadPart{"file", "notes.txt", "text/plain", "x"})
		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/upload", body)
		req.Header.Set("Content-Type", contentType)
		rr := serve(handler.UploadDocument, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned model.Attachment
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, "att-9", returned.ID)
		assert.True(t, strings.HasPrefix(returned.URL, "/api/v1/attachments/att-9/content?token="))
	})

	t.Run("Failure - Missing file", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		body, contentType := multipartBody(t, map[string]string{"message_id": "m1"})
		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/upload", body)
		req.Header.Set("Content-Type", contentType)
		rr := serve(handler.UploadDocument, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Not multipart", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/chats/chat-1/upload", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := serve(handler.UploadDocument, addChiURLParams(req, chatParams))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestChatHandler_DeleteAttachment(t *testing.T) {
	handler, mockChatSvc, _ := setupChatHandler(t)
	mockChatSvc.On("DeleteAttachment", mock.Anything, testUser, "chat-1", "att-1").Return(nil).Once()

	req := addChiURLParams(httptest.NewRequest(http.MethodDelete, "/v1/chats/chat-1/attachments/att-1", nil),
		map[string]string{"chatID": "chat-1", "attachmentID": "att-1"})
	rr := serve(handler.DeleteAttachment, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestChatHandler_DownloadAttachment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, mockChatSvc, signer := setupChatHandler(t)
		att := &model.Attachment{ID: "att-1", Filename: "notes.txt", MimeType: "text/plain", Size: 5}
		mockChatSvc.On("OpenAttachment", mock.Anything, "chat-1", "att-1").
			Return(att, io.NopCloser(strings.NewReader("hello")), nil).Once()
		link, err := signer.URL("chat-1", "att-1")
		require.NoError(t, err)

		// ACT
		req := addChiURLParams(httptest.NewRequest(http.MethodGet, link, nil), map[string]string{"attachmentID": "att-1"})
		rr := httptest.NewRecorder()
		handler.DownloadAttachment(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "hello", rr.Body.String())
		assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename=notes.txt`, rr.Header().Get("Content-Disposition"))
	})

	t.Run("Failure - Token for another attachment", func(t *testing.T) {
		handler, _, signer := setupChatHandler(t)
		link, err := signer.URL("chat-1", "att-1")
		require.NoError(t, err)
		u, err := url.Parse(link)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/attachments/att-2/content?"+u.RawQuery, nil)
		req = addChiURLParams(req, map[string]string{"attachmentID": "att-2"})
		rr := httptest.NewRecorder()
		handler.DownloadAttachment(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Failure - Missing token", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)

		req := addChiURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/attachments/att-1/content", nil), map[string]string{"attachmentID": "att-1"})
		rr := httptest.NewRecorder()
		handler.DownloadAttachment(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
