package telegram

import (
	"context"
	"os"

	"github.com/gotd/td/session"
)

// FileSessionStorage persists the MTProto session in a single file.
type FileSessionStorage struct {
	Path string
}

func (s *FileSessionStorage) LoadSession(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileSessionStorage) StoreSession(_ context.Context, data []byte) error {
	return os.WriteFile(s.Path, data, 0600)
}
