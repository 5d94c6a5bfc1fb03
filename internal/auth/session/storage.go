package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// CredentialStorage is the single persisted slot holding the raw credential
// under the key "token". An empty read means "no session".
type CredentialStorage interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, raw string) error
	// Clear removes the credential. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}

// MemoryStorage keeps the credential in process memory. Used by tests and by
// short-lived clients that do not need the session to outlive the process.
type MemoryStorage struct {
	raw string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Read(context.Context) (string, error) {
	return m.raw, nil
}

func (m *MemoryStorage) Write(_ context.Context, raw string) error {
	m.raw = raw
	return nil
}

func (m *MemoryStorage) Clear(context.Context) error {
	m.raw = ""
	return nil
}

// FileStorage persists the credential to a single file, the closest
// equivalent to browser local storage for a command-line client.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Read(context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStorage) Write(_ context.Context, raw string) error {
	if err := os.WriteFile(f.path, []byte(raw+"\n"), 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear(context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
