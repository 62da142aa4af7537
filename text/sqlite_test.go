package text

import (
	"context"
	"errors"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func newTestDB(t *testing.T) *sqlite.Conn {
	t.Helper()
	conn, err := sqlite.OpenConn(":memory:", sqlite.OpenReadWrite, sqlite.OpenMemory)
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	err = sqlitex.ExecuteScript(conn, `
CREATE TABLE pages (number INTEGER PRIMARY KEY, body TEXT NOT NULL);
INSERT INTO pages (number, body) VALUES (1, 'سُورَةُ ٱلْفَاتِحَةِ
بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ');
INSERT INTO pages (number, body) VALUES (2, 'ٱلٓمٓ
ذَٰلِكَ ٱلْكِتَٰبُ');
`, nil)
	if err != nil {
		conn.Close()
		t.Fatalf("seed db: %v", err)
	}
	return conn
}

func TestSQLiteProviderReadsPage(t *testing.T) {
	p := NewSQLiteProvider(newTestDB(t), nil)
	defer p.Close()

	body, err := p.PageText(context.Background(), 2)
	if err != nil {
		t.Fatalf("PageText: %v", err)
	}
	if body != "ٱلٓمٓ\nذَٰلِكَ ٱلْكِتَٰبُ" {
		t.Fatalf("body mismatch: %q", body)
	}
}

func TestSQLiteProviderMissingRow(t *testing.T) {
	p := NewSQLiteProvider(newTestDB(t), nil)
	defer p.Close()

	_, err := p.PageText(context.Background(), 300)
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestSQLiteProviderOutOfRange(t *testing.T) {
	p := NewSQLiteProvider(newTestDB(t), nil)
	defer p.Close()

	if _, err := p.PageText(context.Background(), 1000); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestSQLiteProviderCloseIdempotent(t *testing.T) {
	p := NewSQLiteProvider(newTestDB(t), nil)
	if err := p.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
