package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	apperrors "docvault/internal/errors"
)

// MaxFileSize caps uploads at 10MB.
const MaxFileSize = 10 << 20

var allowedMimeTypes = map[string]bool{
	"text/plain":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// StoredFile describes a file persisted to the upload directory.
type StoredFile struct {
	Name string
	Path string
	Type string
	Size int64
}

// FileStore persists uploaded documents on the local filesystem.
type FileStore struct {
	dir string
}

// NewFileStore creates the upload directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save validates and writes a multipart upload to disk under a unique name.
// The returned StoredFile keeps the client's original name for display.
func (s *FileStore) Save(file *multipart.FileHeader) (*StoredFile, error) {
	if file.Size > MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFileType, contentType)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uniqueName(file.Filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	return &StoredFile{
		Name: file.Filename,
		Path: path,
		Type: contentType,
		Size: size,
	}, nil
}

// Remove deletes a stored file. Missing files are not an error; a
// concurrent update may already have removed them.
func (s *FileStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func uniqueName(original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("file-%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
}
