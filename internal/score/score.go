// Package score persists one integer score per game mode.
//
// Stores hold raw text under string keys, the way browser local storage does,
// and parse it back on read. Anything that cannot be parsed as an integer reads
// back as absent, which callers treat as a score of zero.
package score

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/rockpaperscissors/internal/catalog"
)

const keyPrefix = "__ROCK_PAPER_SCISSORS_SCORE__"

// LegacyKey is the unscoped key used before scores were kept per mode. It is
// never read by a session; it only exists so old values can be cleaned up.
const LegacyKey = keyPrefix

// Key returns the storage key for mode, e.g. "__ROCK_PAPER_SCISSORS_SCORE__BASIC__".
func Key(mode catalog.GameMode) string {
	return keyPrefix + strings.ToUpper(string(mode)) + "__"
}

// Store reads and writes a single integer under a string key.
type Store interface {
	// Get returns the stored value, or false if it was never written or
	// cannot be parsed.
	Get(key string) (int, bool)
	// Set stores value under key.
	Set(key string, value int) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Parse decodes stored text as an integer. Surrounding whitespace and a single
// layer of JSON string quoting are tolerated.
func Parse(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return 0, false
		}
		raw = strings.TrimSpace(unquoted)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Format encodes value the way it is written to every backend.
func Format(value int) string {
	return strconv.Itoa(value)
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.values[key]
	if !ok {
		return 0, false
	}
	return Parse(raw)
}

func (s *MemoryStore) Set(key string, value int) error {
	s.SetRaw(key, Format(value))
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// SetRaw stores arbitrary text under key, bypassing integer formatting.
func (s *MemoryStore) SetRaw(key, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
}

// Raw returns the stored text for key.
func (s *MemoryStore) Raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.values[key]
	return raw, ok
}

func orDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
