package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/rockpaperscissors/internal/fileutil"
)

// errCorrupt marks a score file that exists but is not a JSON object.
var errCorrupt = errors.New("corrupt score file")

// FileStore keeps all keys in a single JSON object on disk. Every write
// rewrites the file atomically.
type FileStore struct {
	path   string
	logger *log.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store backed by the JSON file at path. The file is
// created on first write.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: orDefault(logger).WithPrefix("score-file").With("path", path),
	}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// BackupPath is where a corrupt file is moved before the next write replaces it.
func (s *FileStore) BackupPath() string {
	return s.path + ".bad"
}

func (s *FileStore) Get(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		s.logger.Warn("Failed to read scores", "error", err)
		return 0, false
	}
	raw, ok := values[key]
	if !ok {
		return 0, false
	}
	v, ok := Parse(raw)
	if !ok {
		s.logger.Warn("Ignoring malformed score", "key", key, "value", raw)
	}
	return v, ok
}

func (s *FileStore) Set(key string, value int) error {
	return s.update(func(values map[string]string) {
		values[key] = Format(value)
	})
}

func (s *FileStore) Delete(key string) error {
	return s.update(func(values map[string]string) {
		delete(values, key)
	})
}

func (s *FileStore) update(fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	switch {
	case errors.Is(err, errCorrupt):
		// Keep the damaged file for hand repair before starting a new one.
		backup := s.BackupPath()
		if err := os.Rename(s.path, backup); err != nil {
			return fmt.Errorf("failed to move aside corrupt score file: %w", err)
		}
		s.logger.Warn("Moved corrupt score file aside", "backup", backup, "error", err)
		values = make(map[string]string)
	case err != nil:
		return fmt.Errorf("failed to read scores: %w", err)
	}
	fn(values)

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scores: %w", err)
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := fileutil.ReadFileIfExists(s.path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}

	// Values are usually strings, but tolerate hand-edited numbers too.
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w %s: %v", errCorrupt, s.path, err)
	}
	for k, v := range decoded {
		var str string
		if err := json.Unmarshal(v, &str); err == nil {
			values[k] = str
			continue
		}
		values[k] = string(v)
	}
	return values, nil
}
