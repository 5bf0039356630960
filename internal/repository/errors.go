package repository

import "errors"

// ErrNotFound is returned when a query for a single entity (a chat, a message,
// an attachment) finds no rows. The service layer translates it into
// app_errors.ErrNotFound so callers never see sql.ErrNoRows.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict is returned when an insert violates a primary key or unique
// constraint, such as a reused id or a (chat_id, seq) collision.
var ErrConflict = errors.New("repository: conflict")
