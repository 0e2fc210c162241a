package score

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps scores in a single key/value table.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS scores (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scores table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: orDefault(logger).WithPrefix("score-sqlite").With("path", path),
	}, nil
}

func (s *SQLiteStore) Get(key string) (int, bool) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM scores WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false
	}
	if err != nil {
		s.logger.Warn("Failed to read score", "key", key, "error", err)
		return 0, false
	}
	v, ok := Parse(raw)
	if !ok {
		s.logger.Warn("Ignoring malformed score", "key", key, "value", raw)
	}
	return v, ok
}

func (s *SQLiteStore) Set(key string, value int) error {
	return s.setRaw(key, Format(value))
}

func (s *SQLiteStore) setRaw(key, raw string) error {
	_, err := s.db.Exec(
		`INSERT INTO scores (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, raw)
	if err != nil {
		return fmt.Errorf("write score %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM scores WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete score %s: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
