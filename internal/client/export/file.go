package export

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/caresupport/internal/filex"
)

// FileSink writes reports below Dir.
type FileSink struct {
	Dir string
}

func (s FileSink) Put(_ context.Context, name string, body []byte) (string, error) {
	path := filepath.Join(s.Dir, filepath.FromSlash(name))
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(path, body, 0o600); err != nil {
		return "", err
	}
	return filepath.Abs(path)
}
