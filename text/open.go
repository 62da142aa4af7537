package text

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tanzil/mushaf/layout"
)

// Open builds the provider named by a profile's source section. Relative
// paths are resolved against baseDir (normally the profile file's directory).
// The returned close func is a no-op for providers without resources.
func Open(spec layout.SourceSpec, baseDir string, log *zap.Logger) (layout.TextProvider, func() error, error) {
	path := spec.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	switch spec.Kind {
	case "dir", "":
		return NewDirProvider(path, spec.Pattern, log), func() error { return nil }, nil
	case "sqlite":
		p, err := OpenSQLite(path, log)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown page-text source kind %q", spec.Kind)
	}
}
