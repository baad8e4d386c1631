// Package cache provides a durable key-value blob store backed by SQLite.
// The store controller uses it to keep a serialized snapshot of the task
// collection so the list survives restarts before the remote fetch lands.
package cache

import (
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SnapshotKey is the key under which the task collection snapshot is stored.
const SnapshotKey = "tasks"

// Cache is a SQLite-backed blob store.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at dbPath.
func Open(dbPath string) (*Cache, error) {
	if dbPath == "" {
		return nil, errors.New("cache path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	c := &Cache{db: db}
	if err := c.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS snapshots (
	key TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`
	_, err := c.db.Exec(ddl)
	return err
}

// Read returns the blob stored under key. The second return value is
// false when no blob is present.
func (c *Cache) Read(key string) ([]byte, bool, error) {
	var data []byte
	err := c.db.QueryRow(`SELECT data FROM snapshots WHERE key = ?;`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Write stores the blob under key, replacing any previous value.
func (c *Cache) Write(key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.Exec(`
INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at;`,
		key, data, now)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
