package text

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDirProviderReadsPageFile(t *testing.T) {
	root := t.TempDir()
	body := "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ\nٱلْحَمْدُ لِلَّهِ"
	if err := os.WriteFile(filepath.Join(root, "001.txt"), []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := NewDirProvider(root, "${page%03d}.txt", nil)
	got, err := p.PageText(context.Background(), 1)
	if err != nil {
		t.Fatalf("PageText: %v", err)
	}
	if got != body {
		t.Fatalf("body mismatch: %q", got)
	}
}

func TestDirProviderMissingPage(t *testing.T) {
	p := NewDirProvider(t.TempDir(), "", nil)
	_, err := p.PageText(context.Background(), 5)
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestDirProviderRejectsOutOfRangePages(t *testing.T) {
	p := NewDirProvider(t.TempDir(), "", nil)
	for _, n := range []int{0, -1, 605} {
		if _, err := p.PageText(context.Background(), n); !errors.Is(err, ErrPageNotFound) {
			t.Fatalf("page %d: expected ErrPageNotFound, got %v", n, err)
		}
	}
}

func TestDirProviderDefaultPattern(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "3.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	p := NewDirProvider(root, "", nil)
	if got, err := p.PageText(context.Background(), 3); err != nil || got != "x" {
		t.Fatalf("default pattern: %q, %v", got, err)
	}
}

func TestDirProviderHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewDirProvider(t.TempDir(), "", nil)
	if _, err := p.PageText(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
