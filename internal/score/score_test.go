package score

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rockpaperscissors/internal/catalog"
	"github.com/lox/rockpaperscissors/internal/config"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "__ROCK_PAPER_SCISSORS_SCORE__BASIC__", Key(catalog.Basic))
	assert.Equal(t, "__ROCK_PAPER_SCISSORS_SCORE__ADVANCE__", Key(catalog.Advance))
	assert.NotEqual(t, Key(catalog.Basic), LegacyKey)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"7", 7, true},
		{"-12", -12, true},
		{" 3\n", 3, true},
		{`"5"`, 5, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
		{"null", 0, false},
		{`"x"`, 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.raw)
		assert.Equal(t, tt.ok, ok, "Parse(%q)", tt.raw)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.raw)
	}
}

// storeContract exercises behaviour every backend must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()

	basic, advance := Key(catalog.Basic), Key(catalog.Advance)

	_, ok := s.Get(basic)
	assert.False(t, ok, "fresh store must be empty")

	require.NoError(t, s.Set(basic, 3))
	v, ok := s.Get(basic)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = s.Get(advance)
	assert.False(t, ok, "modes must not share a key")

	require.NoError(t, s.Set(basic, -4))
	v, _ = s.Get(basic)
	assert.Equal(t, -4, v)

	require.NoError(t, s.Delete(basic))
	_, ok = s.Get(basic)
	assert.False(t, ok)
	require.NoError(t, s.Delete(basic), "deleting an absent key is fine")
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	storeContract(t, s)

	s.SetRaw(Key(catalog.Basic), "7")
	v, ok := s.Get(Key(catalog.Basic))
	require.True(t, ok)
	assert.Equal(t, 7, v)

	s.SetRaw(Key(catalog.Basic), "abc")
	_, ok = s.Get(Key(catalog.Basic))
	assert.False(t, ok)

	require.NoError(t, s.Set(Key(catalog.Advance), 2))
	raw, ok := s.Raw(Key(catalog.Advance))
	require.True(t, ok)
	assert.Equal(t, "2", raw)
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scores.json")
	storeContract(t, NewFileStore(path, quietLogger()))
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "scores.json")
	first := NewFileStore(path, quietLogger())
	require.NoError(t, first.Set(Key(catalog.Basic), 3))
	require.NoError(t, first.Set(Key(catalog.Advance), -1))

	second := NewFileStore(path, quietLogger())
	v, ok := second.Get(Key(catalog.Basic))
	require.True(t, ok)
	assert.Equal(t, 3, v)
	v, ok = second.Get(Key(catalog.Advance))
	require.True(t, ok)
	assert.Equal(t, -1, v)
	assert.Equal(t, path, second.Path())
}

func TestFileStoreMalformedContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("malformed value", func(t *testing.T) {
		path := filepath.Join(dir, "values.json")
		body := `{"__ROCK_PAPER_SCISSORS_SCORE__BASIC__": "abc", "__ROCK_PAPER_SCISSORS_SCORE__ADVANCE__": 9}`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		s := NewFileStore(path, quietLogger())
		_, ok := s.Get(Key(catalog.Basic))
		assert.False(t, ok)

		v, ok := s.Get(Key(catalog.Advance))
		require.True(t, ok, "bare JSON numbers are accepted")
		assert.Equal(t, 9, v)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		s := NewFileStore(path, quietLogger())
		_, ok := s.Get(Key(catalog.Basic))
		assert.False(t, ok)

		require.NoError(t, s.Set(Key(catalog.Basic), 1), "corrupt files are replaced on write")
		v, ok := s.Get(Key(catalog.Basic))
		require.True(t, ok)
		assert.Equal(t, 1, v)

		backup, err := os.ReadFile(s.BackupPath())
		require.NoError(t, err, "the damaged file is kept")
		assert.Equal(t, "{not json", string(backup))
	})

	t.Run("typo preserves unreadable scores in backup", func(t *testing.T) {
		path := filepath.Join(dir, "typo.json")
		original := `{"__ROCK_PAPER_SCISSORS_SCORE__BASIC__": "12",}`
		require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

		s := NewFileStore(path, quietLogger())
		require.NoError(t, s.Set(Key(catalog.Advance), 3))

		backup, err := os.ReadFile(s.BackupPath())
		require.NoError(t, err)
		assert.Contains(t, string(backup), `"12"`, "the unreadable Basic score survives in the backup")

		v, ok := s.Get(Key(catalog.Advance))
		require.True(t, ok)
		assert.Equal(t, 3, v)
	})
}

func TestFileStoreWriteFailure(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := NewFileStore(filepath.Join(blocker, "scores.json"), quietLogger())
	assert.Error(t, s.Set(Key(catalog.Basic), 1))
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scores.db")
	s, err := OpenSQLite(path, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	storeContract(t, s)

	require.NoError(t, s.setRaw(Key(catalog.Basic), "abc"))
	_, ok := s.Get(Key(catalog.Basic))
	assert.False(t, ok)

	require.NoError(t, s.setRaw(Key(catalog.Basic), "7"))
	v, ok := s.Get(Key(catalog.Basic))
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	s, err := OpenRedis(context.Background(), RedisOptions{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Delete(Key(catalog.Basic)))
	require.NoError(t, s.Delete(Key(catalog.Advance)))
	storeContract(t, s)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	s, closer, err := Open(ctx, config.ScoreSettings{Backend: "memory"}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, closer.Close())

	s, closer, err = Open(ctx, config.ScoreSettings{Backend: "file", Path: filepath.Join(dir, "s.json")}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	assert.NoError(t, closer.Close())

	s, closer, err = Open(ctx, config.ScoreSettings{Backend: "sqlite", Path: filepath.Join(dir, "s.db")}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	assert.NoError(t, closer.Close())

	_, _, err = Open(ctx, config.ScoreSettings{Backend: "s3"}, quietLogger())
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	t.Parallel()

	p, err := resolvePath("/tmp/x.json", "scores.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.json", p)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	p, err = resolvePath("~/rps/x.json", "scores.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "rps", "x.json"), p)
}
