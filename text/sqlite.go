package text

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/tanzil/mushaf/layout"
)

// SQLiteProvider reads page text from a pages(number, body) table, the usual
// distribution format for mushaf page databases.
type SQLiteProvider struct {
	mu   sync.Mutex // sqlite.Conn is not safe for concurrent use
	conn *sqlite.Conn
	log  *zap.Logger
}

var _ layout.TextProvider = (*SQLiteProvider)(nil)

// NewSQLiteProvider wraps an open connection. The provider takes ownership:
// Close closes the connection.
func NewSQLiteProvider(conn *sqlite.Conn, log *zap.Logger) *SQLiteProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteProvider{conn: conn, log: log}
}

// OpenSQLite opens a page database read-only.
func OpenSQLite(path string, log *zap.Logger) (*SQLiteProvider, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open page database %s: %w", path, err)
	}
	return NewSQLiteProvider(conn, log), nil
}

// PageText implements layout.TextProvider.
func (p *SQLiteProvider) PageText(ctx context.Context, number int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if number < 1 || number > layout.PageCount {
		return "", fmt.Errorf("page %d out of range [1, %d]: %w", number, layout.PageCount, ErrPageNotFound)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var body string
	found := false
	err := sqlitex.Execute(p.conn, `SELECT body FROM pages WHERE number = ?`, &sqlitex.ExecOptions{
		Args: []any{number},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			body = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		p.log.Warn("page query failed", zap.Int("page", number), zap.Error(err))
		return "", fmt.Errorf("query page %d: %w", number, err)
	}
	if !found {
		p.log.Debug("page row missing", zap.Int("page", number))
		return "", fmt.Errorf("page %d: %w", number, ErrPageNotFound)
	}
	return body, nil
}

// Close releases the underlying connection.
func (p *SQLiteProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
