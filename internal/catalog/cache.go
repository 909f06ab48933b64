package catalog

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// PageCache stores raw search response bodies by request key.
type PageCache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
}

const pageTable = `
  CREATE TABLE IF NOT EXISTS pages (
      hash TEXT PRIMARY KEY,
      body BLOB NOT NULL,
      expiry INT NOT NULL
  )
`

// SQLiteCache is a PageCache backed by a sqlite file.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLiteCache opens (or creates) the cache at path and drops expired rows.
func OpenSQLiteCache(path string, ttl time.Duration) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open page cache: %w", err)
	}
	if _, err := db.Exec(pageTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create page table: %w", err)
	}
	c := &SQLiteCache{db: db, ttl: ttl, now: time.Now}
	if err := c.Purge(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Get returns the body for key if present and not expired.
func (c *SQLiteCache) Get(key string) ([]byte, bool, error) {
	row := c.db.QueryRow("SELECT body FROM pages WHERE hash = ? AND expiry >= ?", key, c.now().Unix())
	var body []byte
	err := row.Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read page cache: %w", err)
	}
	return body, true, nil
}

// Put stores body under key, replacing any previous entry.
func (c *SQLiteCache) Put(key string, body []byte) error {
	expiry := c.now().Add(c.ttl).Unix()
	if _, err := c.db.Exec("INSERT OR REPLACE INTO pages (hash, body, expiry) VALUES (?, ?, ?)", key, body, expiry); err != nil {
		return fmt.Errorf("write page cache: %w", err)
	}
	return nil
}

// Purge deletes expired rows.
func (c *SQLiteCache) Purge() error {
	if _, err := c.db.Exec("DELETE FROM pages WHERE expiry < ?", c.now().Unix()); err != nil {
		return fmt.Errorf("purge page cache: %w", err)
	}
	return nil
}

// Close closes the database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func cacheKey(query string, page, perPage int) string {
	sum := md5.Sum([]byte(query + "\x00" + strconv.Itoa(page) + "\x00" + strconv.Itoa(perPage)))
	return hex.EncodeToString(sum[:])
}
