package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactStore abstracts where generated artifacts land. The generator only
// produces in-memory artifacts; stores own all filesystem concerns.
type ArtifactStore interface {
	EnsureDir(ctx context.Context, dir string) error
	WriteFile(ctx context.Context, path string, content []byte) error
}

// WriteResult writes every artifact of a run, plus its manifest when one is
// present, relative to the store root.
func WriteResult(ctx context.Context, store ArtifactStore, result *Result) error {
	if store == nil {
		return errors.New("generator: artifact store is required")
	}
	if result == nil {
		return errors.New("generator: result is required")
	}
	for _, artifact := range result.Artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if dir := filepath.Dir(artifact.Path); dir != "." {
			if err := store.EnsureDir(ctx, dir); err != nil {
				return err
			}
		}
		if err := store.WriteFile(ctx, artifact.Path, []byte(artifact.Content)); err != nil {
			return err
		}
	}
	if result.Manifest != nil {
		data, err := result.Manifest.Marshal()
		if err != nil {
			return err
		}
		if err := store.WriteFile(ctx, ManifestFileName, data); err != nil {
			return err
		}
	}
	return nil
}

// DirStore writes artifacts beneath a root directory on the local filesystem.
type DirStore struct {
	Root string
}

// NewDirStore constructs a DirStore rooted at dir.
func NewDirStore(dir string) (*DirStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("generator: store root is required")
	}
	return &DirStore{Root: dir}, nil
}

func (s *DirStore) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(filepath.Join(s.Root, dir), 0o755)
}

func (s *DirStore) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("generator: write requires path")
	}
	full := filepath.Join(s.Root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, content, 0o644)
}

// ReadExisting returns the current content of path under the store root, or
// nil when the file does not exist.
func (s *DirStore) ReadExisting(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Root, path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}
