// Package text implements page-text providers: storage backends that return
// the raw text blob for a mushaf page number.
package text

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tanzil/mushaf/binding"
	"github.com/tanzil/mushaf/layout"
)

// ErrPageNotFound marks a page number with no stored text. Callers render an
// all-blank page for it rather than failing.
var ErrPageNotFound = errors.New("page text not found")

// DirProvider loads page text from one file per page under Root, located by
// expanding the ${page} placeholder in Pattern.
type DirProvider struct {
	Root    string
	Pattern string
	Log     *zap.Logger
}

var _ layout.TextProvider = (*DirProvider)(nil)

// NewDirProvider creates a provider rooted at dir. An empty pattern defaults
// to "${page}.txt". A nil logger is replaced with a nop logger.
func NewDirProvider(root, pattern string, log *zap.Logger) *DirProvider {
	if pattern == "" {
		pattern = "${page}.txt"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DirProvider{Root: root, Pattern: pattern, Log: log}
}

// PageText implements layout.TextProvider.
func (p *DirProvider) PageText(ctx context.Context, number int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if number < 1 || number > layout.PageCount {
		return "", fmt.Errorf("page %d out of range [1, %d]: %w", number, layout.PageCount, ErrPageNotFound)
	}
	path := filepath.Join(p.Root, binding.Expand(p.Pattern, binding.Page(number)))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			p.Log.Debug("page file missing", zap.Int("page", number), zap.String("path", path))
			return "", fmt.Errorf("page %d (%s): %w", number, path, ErrPageNotFound)
		}
		p.Log.Warn("page file unreadable", zap.Int("page", number), zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("read page %d: %w", number, err)
	}
	return string(data), nil
}
