package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	app_errors "routerchat/backend/internal/errors"
	"routerchat/backend/internal/interfaces"
	"routerchat/backend/internal/model"
	"routerchat/backend/internal/service"
)

// multipartMemory is the part of a multipart body kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// IdempotencyKeyHeader lets clients retry a message submission safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// ChatHandler handles HTTP requests for chats, messages and attachments.
type ChatHandler struct {
	service         interfaces.ChatService
	signer          *AttachmentSigner
	maxRequestBytes int64
}

func NewChatHandler(svc interfaces.ChatService, signer *AttachmentSigner, maxRequestBytes int64) *ChatHandler {
	if maxRequestBytes <= 0 {
		maxRequestBytes = 64 << 20
	}
	return &ChatHandler{service: svc, signer: signer, maxRequestBytes: maxRequestBytes}
}

// FullChatResponse is a chat with its messages, as returned by the API.
type FullChatResponse struct {
	model.FullChat
	Error string `json:"error,omitempty"`
}

// UploadPreviewResponse describes a file that was extracted without being
// attached to a message.
type UploadPreviewResponse struct {
	Attachment *service.AttachmentPreview `json:"attachment"`
	Extracted  bool                       `json:"extracted"`
}

// ListChats godoc
// @Summary      List chats
// @Description  Returns the caller's chats, 20 per page, most recent activity first, each with its latest message.
// @Tags         Chats
// @Produce      json
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  model.ChatPage
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/chats [get]
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	chats, err := h.service.ListChats(r.Context(), UserIDFromContext(r.Context()), page)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chats)
}

// CreateChat godoc
// @Summary      Create a chat
// @Description  Creates a chat. When initial_message is set the first exchange runs immediately; if the model fails the chat is still created and `error` is set.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        chat  body      service.CreateChatRequest  true  "New chat"
// @Success      201   {object}  FullChatResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/chats [post]
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req service.CreateChatRequest
	if err := decodeJSON(w, r, h.maxRequestBytes, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	res, err := h.service.CreateChat(ctx, UserIDFromContext(r.Context()), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	resp := FullChatResponse{FullChat: res.FullChat, Error: res.Error}
	resp.Messages = h.signer.signMessages(res.Messages)
	respondWithJSON(w, http.StatusCreated, resp)
}

// GetChat godoc
// @Summary      Get a chat
// @Description  Returns a chat with all its messages and their attachments.
// @Tags         Chats
// @Produce      json
// @Param        chatID  path      string  true  "Chat ID"
// @Success      200     {object}  FullChatResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/chats/{chatID} [get]
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	fullChat, err := h.service.GetFullChat(r.Context(), UserIDFromContext(r.Context()), chatID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	fullChat.Messages = h.signer.signMessages(fullChat.Messages)
	respondWithJSON(w, http.StatusOK, FullChatResponse{FullChat: *fullChat})
}

// UpdateChat godoc
// @Summary      Update a chat
// @Description  Changes the title and optionally the model and settings of a chat.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        chatID  path      string                     true  "Chat ID"
// @Param        chat    body      service.UpdateChatRequest  true  "Changes"
// @Success      200     {object}  model.Chat
// @Failure      400     {object}  ErrorResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /v1/chats/{chatID} [put]
func (h *ChatHandler) UpdateChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	var req service.UpdateChatRequest
	if err := decodeJSON(w, r, h.maxRequestBytes, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	chat, err := h.service.UpdateChat(r.Context(), UserIDFromContext(r.Context()), chatID, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chat)
}

// DeleteChat godoc
// @Summary      Delete a chat
// @Description  Deletes a chat with all messages and attachments, removing stored files first.
// @Tags         Chats
// @Param        chatID  path  string  true  "Chat ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID} [delete]
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	ctx := context.WithoutCancel(r.Context())
	if err := h.service.DeleteChat(ctx, UserIDFromContext(r.Context()), chatID); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Stores the user message with its attachments and returns the model's reply. Accepts JSON `{content}` or multipart `content` plus `attachments[]` files. When the model fails the user message is kept and 502 is returned with `user_message` and `error`.
// @Tags         Messages
// @Accept       json,mpfd
// @Produce      json
// @Param        chatID           path      string  true   "Chat ID"
// @Param        Idempotency-Key  header    string  false  "Replays the first outcome for a repeated key"
// @Param        content          formData  string  false  "Message text (multipart)"
// @Param        attachments[]    formData  file    false  "Files, 10 MB each"
// @Success      200  {object}  service.SendMessageResult
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      502  {object}  service.SendMessageResult
// @Router       /v1/chats/{chatID}/messages [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	req, err := h.parseSendMessage(w, r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}
	req.IdempotencyKey = strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))

	// The exchange runs to completion even if the client goes away.
	ctx := context.WithoutCancel(r.Context())
	res, err := h.service.SendMessage(ctx, UserIDFromContext(r.Context()), chatID, req)
	if err != nil {
		if res != nil && errors.Is(err, app_errors.ErrUpstream) {
			slog.Warn("Returning degraded message response", "chat_id", chatID, "error", err)
			respondWithJSON(w, http.StatusBadGateway, h.signResult(res))
			return
		}
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.signResult(res))
}

// UploadDocument godoc
// @Summary      Upload a document
// @Description  With message_id the file is stored as an attachment of that message. Without it the file is only extracted and described, nothing is stored.
// @Tags         Attachments
// @Accept       mpfd
// @Produce      json
// @Param        chatID      path      string  true   "Chat ID"
// @Param        file        formData  file    true   "File, 10 MB max"
// @Param        message_id  formData  string  false  "Message to attach the file to"
// @Success      200  {object}  model.Attachment  "Stored attachment, or UploadPreviewResponse without message_id"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/upload [post]
func (h *ChatHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		respondWithError(w, formError(err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		respondWithError(w, fmt.Errorf("%w: Field 'file' failed on the 'required' tag", app_errors.ErrValidation))
		return
	}
	file, err := readUpload(headers[0])
	if err != nil {
		respondWithError(w, err)
		return
	}
	messageID := strings.TrimSpace(r.FormValue("message_id"))

	ctx := context.WithoutCancel(r.Context())
	res, err := h.service.UploadDocument(ctx, UserIDFromContext(r.Context()), chatID, messageID, file)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if res.Attachment == nil {
		respondWithJSON(w, http.StatusOK, UploadPreviewResponse{Attachment: res.Preview, Extracted: res.Extracted})
		return
	}
	respondWithJSON(w, http.StatusOK, h.signer.signAttachment(chatID, res.Attachment))
}

// DeleteAttachment godoc
// @Summary      Delete an attachment
// @Description  Removes the stored file, then the attachment record.
// @Tags         Attachments
// @Param        chatID        path  string  true  "Chat ID"
// @Param        attachmentID  path  string  true  "Attachment ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/attachments/{attachmentID} [delete]
func (h *ChatHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	attachmentID := chi.URLParam(r, "attachmentID")
	ctx := context.WithoutCancel(r.Context())
	if err := h.service.DeleteAttachment(ctx, UserIDFromContext(r.Context()), chatID, attachmentID); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DownloadAttachment godoc
// @Summary      Download an attachment
// @Description  Streams the stored file. The token comes from the attachment's `url` and expires.
// @Tags         Attachments
// @Produce      octet-stream
// @Param        attachmentID  path   string  true  "Attachment ID"
// @Param        token         query  string  true  "Signed access token"
// @Success      200
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/attachments/{attachmentID}/content [get]
func (h *ChatHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	attachmentID := chi.URLParam(r, "attachmentID")
	chatID, err := h.signer.Verify(r.URL.Query().Get("token"), attachmentID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	att, rc, err := h.service.OpenAttachment(r.Context(), chatID, attachmentID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", att.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(att.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": att.Filename}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("Failed to stream attachment, client might have disconnected", "attachment_id", attachmentID, "error", err)
	}
}

func (h *ChatHandler) signResult(res *service.SendMessageResult) *service.SendMessageResult {
	out := *res
	out.UserMessage = h.signer.signMessage(res.UserMessage)
	out.AssistantMessage = h.signer.signMessage(res.AssistantMessage)
	return &out
}

// parseSendMessage reads a message from a JSON or multipart body.
func (h *ChatHandler) parseSendMessage(w http.ResponseWriter, r *http.Request) (*service.SendMessageRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req service.SendMessageRequest
		if err := decodeJSON(w, r, h.maxRequestBytes, &req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, formError(err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req := &service.SendMessageRequest{Content: r.FormValue("content")}
	headers := append(r.MultipartForm.File["attachments[]"], r.MultipartForm.File["attachments"]...)
	for _, fh := range headers {
		file, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		req.Attachments = append(req.Attachments, file)
	}
	return req, nil
}

func readUpload(fh *multipart.FileHeader) (service.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return service.FileUpload{}, fmt.Errorf("could not open uploaded file %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return service.FileUpload{}, fmt.Errorf("could not read uploaded file %s: %w", fh.Filename, err)
	}
	return service.FileUpload{
		Filename:  fh.Filename,
		MediaType: fh.Header.Get("Content-Type"),
		Data:      data,
	}, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation)
	}
	return nil
}

func formError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	return fmt.Errorf("%w: invalid multipart form: %v", app_errors.ErrValidation, err)
}
