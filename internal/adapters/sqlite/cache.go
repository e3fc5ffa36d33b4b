package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"todopanel/internal/domain"
	"todopanel/internal/ports"

	_ "modernc.org/sqlite"
)

// snapshotKey is the fixed key the todo snapshot is stored under.
const snapshotKey = "todo-items"

// Cache implements ports.ItemCache on a small SQLite key-value table.
// The whole manual-only snapshot is stored as one JSON payload; a
// malformed payload reads back as an empty list, never as an error.
type Cache struct {
	db *sql.DB
}

var _ ports.ItemCache = (*Cache)(nil)

// Open creates or opens the cache database at dbPath. A leading ~ is
// expanded against the user's home directory.
func Open(dbPath string) (*Cache, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup cache database: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Fetch returns the stored snapshot. A missing row or a payload that
// is not a JSON list yields an empty list.
func (c *Cache) Fetch(ctx context.Context) ([]domain.Item, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE key = ?`, snapshotKey,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var items []domain.Item
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		// Corrupt payload is treated as no data.
		return nil, nil
	}
	return items, nil
}

// Save replaces the stored snapshot with items.
func (c *Cache) Save(ctx context.Context, items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, snapshotKey, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
