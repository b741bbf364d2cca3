package docstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage keeps each document in <dir>/<key>.json.
type FileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) (*FileStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStorage{basePath: basePath}, nil
}

func (s *FileStorage) Get(_ context.Context, key string) ([]byte, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// Put replaces the document atomically: readers see either the old or the new
// content, never a partial write.
func (s *FileStorage) Put(_ context.Context, key string, data []byte) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(s.basePath, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()
	cleanup := func() {
		if rerr := os.Remove(tmpPath); rerr != nil && !os.IsNotExist(rerr) {
			slog.Error("failed to remove temp file", "path", tmpPath, "error", rerr)
		}
	}

	if _, err := f.Write(data); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		cleanup()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close document: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

// safeJoin maps key to a file inside basePath and rejects directory traversal.
func (s *FileStorage) safeJoin(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key+".json"))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
