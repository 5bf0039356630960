package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ErrNotFound is returned when no blob exists under the requested key.
var ErrNotFound = errors.New("storage: blob not found")

// BlobStore holds attachment bytes addressed by an opaque key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// FileStore keeps blobs as files on an afero filesystem.
type FileStore struct {
	fs afero.Fs
}

func NewFileStore(fsys afero.Fs) *FileStore {
	return &FileStore{fs: fsys}
}

// NewLocalStore stores blobs on disk below root.
func NewLocalStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return NewFileStore(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// AttachmentKey builds a fresh storage key for a file uploaded to a chat. The
// original extension is kept so the blob stays recognizable on disk.
func AttachmentKey(chatID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("chat-attachments", chatID, uuid.NewString()+ext)
}

func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(name), 0750); err != nil {
		return fmt.Errorf("could not create blob directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, name, data, 0640); err != nil {
		return fmt.Errorf("could not write blob %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("could not open blob %s: %w", key, err)
	}
	return f, nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not delete blob %s: %w", key, err)
	}
	return nil
}

// cleanKey rejects keys that would escape the store root.
func cleanKey(key string) (string, error) {
	name := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	if name == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return name, nil
}
