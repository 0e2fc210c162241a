package score

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lox/rockpaperscissors/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the store selected by settings. The returned closer must be
// closed when the store is no longer needed.
func Open(ctx context.Context, settings config.ScoreSettings, logger *log.Logger) (Store, io.Closer, error) {
	switch settings.Backend {
	case "memory":
		return NewMemoryStore(), nopCloser{}, nil

	case "", "file":
		path, err := resolvePath(settings.Path, "scores.json")
		if err != nil {
			return nil, nil, err
		}
		return NewFileStore(path, logger), nopCloser{}, nil

	case "sqlite":
		path, err := resolvePath(settings.Path, "scores.db")
		if err != nil {
			return nil, nil, err
		}
		s, err := OpenSQLite(path, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	case "redis":
		s, err := OpenRedis(ctx, RedisOptions{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil

	default:
		return nil, nil, fmt.Errorf("unknown score backend: %s", settings.Backend)
	}
}

// resolvePath expands a leading "~/" and falls back to the user config
// directory when path is empty.
func resolvePath(path, defaultName string) (string, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate config directory: %w", err)
		}
		return filepath.Join(dir, "rps", defaultName), nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
