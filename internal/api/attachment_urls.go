package api

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	app_errors "routerchat/backend/internal/errors"
	"routerchat/backend/internal/model"
)

// AttachmentSigner issues and checks the short-lived tokens embedded in
// attachment download URLs.
type AttachmentSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type attachmentClaims struct {
	ChatID string `json:"chat"`
	jwt.RegisteredClaims
}

// NewAttachmentSigner uses secret as the HMAC key. With an empty secret a
// random key is generated, so URLs do not survive a restart.
func NewAttachmentSigner(secret string, ttl time.Duration) (*AttachmentSigner, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("could not generate attachment URL key: %w", err)
		}
		slog.Warn("ATTACHMENT_URL_SECRET is not set, attachment URLs are valid until restart only")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &AttachmentSigner{secret: key, ttl: ttl, now: time.Now}, nil
}

// URL returns the signed download path of an attachment.
func (s *AttachmentSigner) URL(chatID, attachmentID string) (string, error) {
	now := s.now()
	claims := attachmentClaims{
		ChatID: chatID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   attachmentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign attachment URL: %w", err)
	}
	return "/api/v1/attachments/" + url.PathEscape(attachmentID) + "/content?token=" + url.QueryEscape(token), nil
}

// Verify checks that token grants access to attachmentID and returns the chat
// the attachment belongs to.
func (s *AttachmentSigner) Verify(token, attachmentID string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing attachment token", app_errors.ErrPermission)
	}
	var claims attachmentClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: attachment link expired", app_errors.ErrPermission)
		}
		return "", fmt.Errorf("%w: invalid attachment token: %v", app_errors.ErrPermission, err)
	}
	if claims.Subject != attachmentID || claims.ChatID == "" {
		return "", fmt.Errorf("%w: token does not match attachment", app_errors.ErrPermission)
	}
	return claims.ChatID, nil
}

// signMessage returns a copy of m whose attachments carry download URLs. The
// input is never modified; results may be shared through the replay cache.
func (s *AttachmentSigner) signMessage(m *model.Message) *model.Message {
	if m == nil {
		return nil
	}
	out := *m
	out.Attachments = s.signAttachments(m.ChatID, m.Attachments)
	return &out
}

func (s *AttachmentSigner) signMessages(msgs []model.Message) []model.Message {
	out := make([]model.Message, len(msgs))
	for i := range msgs {
		out[i] = *s.signMessage(&msgs[i])
	}
	return out
}

func (s *AttachmentSigner) signAttachments(chatID string, atts []model.Attachment) []model.Attachment {
	if atts == nil {
		return []model.Attachment{}
	}
	out := make([]model.Attachment, len(atts))
	for i, a := range atts {
		out[i] = *s.signAttachment(chatID, &a)
	}
	return out
}

func (s *AttachmentSigner) signAttachment(chatID string, a *model.Attachment) *model.Attachment {
	out := *a
	u, err := s.URL(chatID, a.ID)
	if err != nil {
		slog.Error("Failed to sign attachment URL", "attachment_id", a.ID, "error", err)
		return &out
	}
	out.URL = u
	return &out
}
