package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type localStore struct {
	root string
}

func newLocalStore(root string) (*localStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &localStore{root: root}, nil
}

func (l *localStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return "file://" + filepath.ToSlash(target), nil
}

func (l *localStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, ok := strings.CutPrefix(url, "file://")
	if !ok {
		return nil
	}
	path = filepath.FromSlash(path)
	rel, err := filepath.Rel(l.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func (l *localStore) Describe() string {
	return fmt.Sprintf("local directory %s", l.root)
}
