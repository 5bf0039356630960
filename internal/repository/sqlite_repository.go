package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"routerchat/backend/internal/model"
)

// dbtx is the query surface shared by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

type sqliteRepository struct {
	db *sql.DB // nil when the repository is bound to a transaction
	q  dbtx
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db, q: db}
}

const (
	chatColumns       = "id, user_id, title, model, settings, last_message_at, created_at, updated_at"
	messageColumns    = "id, chat_id, seq, role, content, tokens_used, metadata, created_at"
	attachmentColumns = "id, message_id, filename, mime_type, size_bytes, storage_key, extracted_content, extraction_status, created_at"
)

// --- Transactions ---

func (r *sqliteRepository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	return r.inTx(ctx, func(q dbtx) error {
		return fn(&sqliteRepository{q: q})
	})
}

// inTx runs fn inside a transaction, or directly when r is already bound to one.
func (r *sqliteRepository) inTx(ctx context.Context, fn func(q dbtx) error) error {
	if r.db == nil {
		return fn(r.q)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// --- Chats ---

func (r *sqliteRepository) CreateChat(ctx context.Context, chat *model.Chat) error {
	settings, err := encodeJSON(chat.Settings)
	if err != nil {
		return fmt.Errorf("could not encode chat settings: %w", err)
	}
	query := "INSERT INTO chats (" + chatColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	_, err = r.q.ExecContext(ctx, query,
		chat.ID, chat.UserID, chat.Title, chat.Model, settings,
		nullTime(chat.LastMessageAt), chat.CreatedAt, chat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert chat: %w", constraintError(err))
	}
	return nil
}

func (r *sqliteRepository) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	row := r.q.QueryRowContext(ctx, "SELECT "+chatColumns+" FROM chats WHERE id = ?", chatID)
	chat, err := scanChat(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return chat, nil
}

func (r *sqliteRepository) ListChats(ctx context.Context, userID string, limit, offset int) ([]*model.Chat, int, error) {
	var total int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM chats WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("could not count chats: %w", err)
	}

	query := `
		SELECT c.id, c.user_id, c.title, c.model, c.settings, c.last_message_at, c.created_at, c.updated_at,
		       m.id, m.seq, m.role, m.content, m.tokens_used, m.metadata, m.created_at
		FROM chats c
		LEFT JOIN messages m ON m.id = (
			SELECT id FROM messages WHERE chat_id = c.id ORDER BY seq DESC LIMIT 1
		)
		WHERE c.user_id = ?
		ORDER BY COALESCE(c.last_message_at, c.created_at) DESC, c.created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.q.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("could not list chats: %w", err)
	}
	defer rows.Close()

	chats := make([]*model.Chat, 0, limit)
	for rows.Next() {
		var (
			chat       model.Chat
			settings   sql.NullString
			lastAt     sql.NullTime
			msgID      sql.NullString
			msgSeq     sql.NullInt64
			msgRole    sql.NullString
			msgContent sql.NullString
			msgTokens  sql.NullInt64
			msgMeta    sql.NullString
			msgCreated sql.NullTime
		)
		if err := rows.Scan(
			&chat.ID, &chat.UserID, &chat.Title, &chat.Model, &settings, &lastAt, &chat.CreatedAt, &chat.UpdatedAt,
			&msgID, &msgSeq, &msgRole, &msgContent, &msgTokens, &msgMeta, &msgCreated,
		); err != nil {
			return nil, 0, err
		}
		if err := applyChatColumns(&chat, settings, lastAt); err != nil {
			return nil, 0, err
		}
		if msgID.Valid {
			latest := &model.Message{
				ID:         msgID.String,
				ChatID:     chat.ID,
				Seq:        msgSeq.Int64,
				Role:       msgRole.String,
				Content:    msgContent.String,
				TokensUsed: intPtr(msgTokens),
				CreatedAt:  msgCreated.Time,
			}
			if err := decodeJSON(msgMeta, &latest.Metadata); err != nil {
				return nil, 0, fmt.Errorf("could not decode message metadata: %w", err)
			}
			chat.LatestMessage = latest
		}
		chats = append(chats, &chat)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return chats, total, nil
}

func (r *sqliteRepository) UpdateChat(ctx context.Context, chat *model.Chat) error {
	settings, err := encodeJSON(chat.Settings)
	if err != nil {
		return fmt.Errorf("could not encode chat settings: %w", err)
	}
	now := time.Now().UTC()
	query := "UPDATE chats SET title = ?, model = ?, settings = ?, last_message_at = ?, updated_at = ? WHERE id = ?"
	res, err := r.q.ExecContext(ctx, query, chat.Title, chat.Model, settings, nullTime(chat.LastMessageAt), now, chat.ID)
	if err != nil {
		return fmt.Errorf("could not update chat: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return err
	}
	chat.UpdatedAt = now
	return nil
}

// DeleteChat removes the chat with its messages and attachments. The schema
// cascades too; the explicit deletes keep the result independent of the
// foreign_keys pragma.
func (r *sqliteRepository) DeleteChat(ctx context.Context, chatID string) error {
	return r.inTx(ctx, func(q dbtx) error {
		if _, err := q.ExecContext(ctx,
			"DELETE FROM attachments WHERE message_id IN (SELECT id FROM messages WHERE chat_id = ?)", chatID); err != nil {
			return fmt.Errorf("could not delete attachments: %w", err)
		}
		if _, err := q.ExecContext(ctx, "DELETE FROM messages WHERE chat_id = ?", chatID); err != nil {
			return fmt.Errorf("could not delete messages: %w", err)
		}
		res, err := q.ExecContext(ctx, "DELETE FROM chats WHERE id = ?", chatID)
		if err != nil {
			return fmt.Errorf("could not delete chat: %w", err)
		}
		return expectAffected(res)
	})
}

// --- Messages ---

// AddMessage assigns the next per-chat sequence number inside the INSERT, so
// concurrent writers can never share a seq (UNIQUE(chat_id, seq) backs this up).
func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message) error {
	metadata, err := encodeJSON(message.Metadata)
	if err != nil {
		return fmt.Errorf("could not encode message metadata: %w", err)
	}
	query := `
		INSERT INTO messages (id, chat_id, seq, role, content, tokens_used, metadata, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE chat_id = ?), ?, ?, ?, ?, ?)
		RETURNING seq
	`
	err = r.q.QueryRowContext(ctx, query,
		message.ID, message.ChatID, message.ChatID, message.Role, message.Content,
		nullInt(message.TokensUsed), metadata, message.CreatedAt,
	).Scan(&message.Seq)
	if err != nil {
		return fmt.Errorf("could not insert message: %w", constraintError(err))
	}
	return nil
}

func (r *sqliteRepository) GetMessage(ctx context.Context, chatID, messageID string) (*model.Message, error) {
	row := r.q.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE chat_id = ? AND id = ?", chatID, messageID)
	msg, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	msgs := []model.Message{*msg}
	if err := r.loadAttachments(ctx, msgs); err != nil {
		return nil, err
	}
	return &msgs[0], nil
}

func (r *sqliteRepository) GetMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	msgs, err := r.queryMessages(ctx, "SELECT "+messageColumns+" FROM messages WHERE chat_id = ? ORDER BY seq ASC", chatID)
	if err != nil {
		return nil, err
	}
	if err := r.loadAttachments(ctx, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *sqliteRepository) GetRecentMessages(ctx context.Context, chatID string, beforeSeq int64, limit int) ([]model.Message, error) {
	query := "SELECT " + messageColumns + " FROM messages WHERE chat_id = ?"
	args := []any{chatID}
	if beforeSeq > 0 {
		query += " AND seq < ?"
		args = append(args, beforeSeq)
	}
	query += " ORDER BY seq DESC LIMIT ?"
	args = append(args, limit)

	msgs, err := r.queryMessages(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	slices.Reverse(msgs)
	if err := r.loadAttachments(ctx, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *sqliteRepository) CountMessages(ctx context.Context, chatID, role string) (int, error) {
	query := "SELECT COUNT(*) FROM messages WHERE chat_id = ?"
	args := []any{chatID}
	if role != "" {
		query += " AND role = ?"
		args = append(args, role)
	}
	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("could not count messages: %w", err)
	}
	return n, nil
}

func (r *sqliteRepository) FirstMessage(ctx context.Context, chatID, role string) (*model.Message, error) {
	query := "SELECT " + messageColumns + " FROM messages WHERE chat_id = ? AND role = ? ORDER BY seq ASC LIMIT 1"
	msg, err := scanMessage(r.q.QueryRowContext(ctx, query, chatID, role))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	msgs := []model.Message{*msg}
	if err := r.loadAttachments(ctx, msgs); err != nil {
		return nil, err
	}
	return &msgs[0], nil
}

func (r *sqliteRepository) queryMessages(ctx context.Context, query string, args ...any) ([]model.Message, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query messages: %w", err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

// --- Attachments ---

func (r *sqliteRepository) AddAttachment(ctx context.Context, a *model.Attachment) error {
	query := "INSERT INTO attachments (" + attachmentColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.q.ExecContext(ctx, query,
		a.ID, a.MessageID, a.Filename, a.MimeType, a.Size, a.StorageKey,
		nullString(a.ExtractedContent), string(a.ExtractionStatus), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("could not insert attachment: %w", constraintError(err))
	}
	return nil
}

func (r *sqliteRepository) GetAttachment(ctx context.Context, chatID, attachmentID string) (*model.Attachment, error) {
	query := `
		SELECT a.id, a.message_id, a.filename, a.mime_type, a.size_bytes, a.storage_key,
		       a.extracted_content, a.extraction_status, a.created_at
		FROM attachments a
		JOIN messages m ON m.id = a.message_id
		WHERE m.chat_id = ? AND a.id = ?
	`
	a, err := scanAttachment(r.q.QueryRowContext(ctx, query, chatID, attachmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *sqliteRepository) GetAttachmentsByChatID(ctx context.Context, chatID string) ([]model.Attachment, error) {
	query := `
		SELECT a.id, a.message_id, a.filename, a.mime_type, a.size_bytes, a.storage_key,
		       a.extracted_content, a.extraction_status, a.created_at
		FROM attachments a
		JOIN messages m ON m.id = a.message_id
		WHERE m.chat_id = ?
		ORDER BY m.seq ASC, a.created_at ASC, a.rowid ASC
	`
	rows, err := r.q.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not query attachments: %w", err)
	}
	defer rows.Close()

	attachments := []model.Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *a)
	}
	return attachments, rows.Err()
}

func (r *sqliteRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM attachments WHERE id = ?", attachmentID)
	if err != nil {
		return fmt.Errorf("could not delete attachment: %w", err)
	}
	return expectAffected(res)
}

// loadAttachments fills msgs[i].Attachments in insertion order.
func (r *sqliteRepository) loadAttachments(ctx context.Context, msgs []model.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	args := make([]any, len(msgs))
	for i, m := range msgs {
		args[i] = m.ID
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(msgs)), ", ")
	query := "SELECT " + attachmentColumns + " FROM attachments WHERE message_id IN (" + placeholders + ") ORDER BY created_at ASC, rowid ASC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("could not query attachments: %w", err)
	}
	defer rows.Close()

	byMessage := make(map[string][]model.Attachment, len(msgs))
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return err
		}
		byMessage[a.MessageID] = append(byMessage[a.MessageID], *a)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range msgs {
		if atts, ok := byMessage[msgs[i].ID]; ok {
			msgs[i].Attachments = atts
		} else {
			msgs[i].Attachments = []model.Attachment{}
		}
	}
	return nil
}

// --- Scanning helpers ---

func scanChat(s scanner) (*model.Chat, error) {
	var chat model.Chat
	var settings sql.NullString
	var lastAt sql.NullTime
	if err := s.Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.Model, &settings, &lastAt, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
		return nil, err
	}
	if err := applyChatColumns(&chat, settings, lastAt); err != nil {
		return nil, err
	}
	return &chat, nil
}

func applyChatColumns(chat *model.Chat, settings sql.NullString, lastAt sql.NullTime) error {
	if err := decodeJSON(settings, &chat.Settings); err != nil {
		return fmt.Errorf("could not decode chat settings: %w", err)
	}
	if lastAt.Valid {
		t := lastAt.Time
		chat.LastMessageAt = &t
	}
	return nil
}

func scanMessage(s scanner) (*model.Message, error) {
	var msg model.Message
	var tokens sql.NullInt64
	var metadata sql.NullString
	if err := s.Scan(&msg.ID, &msg.ChatID, &msg.Seq, &msg.Role, &msg.Content, &tokens, &metadata, &msg.CreatedAt); err != nil {
		return nil, err
	}
	msg.TokensUsed = intPtr(tokens)
	if err := decodeJSON(metadata, &msg.Metadata); err != nil {
		return nil, fmt.Errorf("could not decode message metadata: %w", err)
	}
	return &msg, nil
}

func scanAttachment(s scanner) (*model.Attachment, error) {
	var a model.Attachment
	var extracted sql.NullString
	var status string
	if err := s.Scan(&a.ID, &a.MessageID, &a.Filename, &a.MimeType, &a.Size, &a.StorageKey, &extracted, &status, &a.CreatedAt); err != nil {
		return nil, err
	}
	if extracted.Valid {
		text := extracted.String
		a.ExtractedContent = &text
	}
	a.ExtractionStatus = model.ExtractionStatus(status)
	return &a, nil
}

// constraintError turns primary key and unique violations into ErrConflict.
func constraintError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeJSON[M ~map[string]any](m M) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeJSON[M ~map[string]any](s sql.NullString, dst *M) error {
	if !s.Valid || s.String == "" || s.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), dst)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
