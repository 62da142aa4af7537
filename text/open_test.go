package text

import (
	"testing"

	"github.com/tanzil/mushaf/layout"
)

func TestOpenDirSource(t *testing.T) {
	spec := layout.SourceSpec{Kind: "dir", Path: "pages", Pattern: "${page}.txt"}
	p, closeFn, err := Open(spec, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open dir source: %v", err)
	}
	defer closeFn() //nolint:errcheck
	if _, ok := p.(*DirProvider); !ok {
		t.Fatalf("expected *DirProvider, got %T", p)
	}
}

func TestOpenDefaultsToDir(t *testing.T) {
	p, closeFn, err := Open(layout.SourceSpec{Path: "pages"}, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open default source: %v", err)
	}
	defer closeFn() //nolint:errcheck
	if _, ok := p.(*DirProvider); !ok {
		t.Fatalf("expected *DirProvider, got %T", p)
	}
}

func TestOpenUnknownKind(t *testing.T) {
	if _, _, err := Open(layout.SourceSpec{Kind: "redis"}, ".", nil); err == nil {
		t.Fatalf("expected error for unknown source kind")
	}
}
