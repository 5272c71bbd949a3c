// Package journal keeps an append-only SQLite record of assembled products.
// It is an audit trail only; the engine never reads it back.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vsinha/assembler/pkg/infrastructure/events"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one journaled product
type Entry struct {
	Seq         int64
	ProductID   string
	Design      string
	Text        string
	Named       int64
	Filler      int64
	AssembledAt time.Time
}

// Journal writes product.assembled events to SQLite
type Journal struct {
	db   *sql.DB
	path string

	mu       sync.Mutex
	firstErr error
}

var _ events.EventHandler = (*Journal)(nil)

// Open creates or opens the journal database at path. ":memory:" is accepted.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	// single writer; also keeps one ":memory:" database alive across calls
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply journal schema: %w", err)
	}

	return &Journal{db: db, path: path}, nil
}

// Path returns the database location
func (j *Journal) Path() string {
	return j.path
}

// Record appends one product
func (j *Journal) Record(ctx context.Context, product events.ProductAssembled, at time.Time) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO products (product_id, design, text, named, filler, assembled_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		product.ProductID,
		product.Design,
		product.Text,
		int64(product.Named),
		int64(product.Filler),
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record product %s: %w", product.ProductID, err)
	}
	return nil
}

// Entries returns every journaled product in assembly order
func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, product_id, design, text, named, filler, assembled_at
		 FROM products ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.Seq, &e.ProductID, &e.Design, &e.Text, &e.Named, &e.Filler, &at); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		if e.AssembledAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("invalid timestamp in journal row %d: %w", e.Seq, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountByDesign returns how many products each design produced
func (j *Journal) CountByDesign(ctx context.Context) (map[string]int, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT design, COUNT(*) FROM products GROUP BY design`)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var design string
		var n int
		if err := rows.Scan(&design, &n); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		counts[design] = n
	}
	return counts, rows.Err()
}

// Handle implements events.EventHandler. The first write failure is kept and
// returned by Close.
func (j *Journal) Handle(event events.Event) error {
	product, ok := event.Data().(events.ProductAssembled)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Data(), event.Type())
	}

	err := j.Record(context.Background(), product, event.Timestamp())
	if err != nil {
		j.mu.Lock()
		if j.firstErr == nil {
			j.firstErr = err
		}
		j.mu.Unlock()
	}
	return err
}

// CanHandle implements events.EventHandler
func (j *Journal) CanHandle(eventType string) bool {
	return eventType == events.ProductAssembledEvent
}

// Close closes the database and reports the first failed write, if any
func (j *Journal) Close() error {
	closeErr := j.db.Close()

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.firstErr != nil {
		return j.firstErr
	}
	return closeErr
}
