// Package flatfile persists application data as JSON files in one directory.
// Each collection lives in its own file holding a username-keyed map, loaded
// and rewritten whole on every operation. A process-wide mutex serializes
// access; concurrent processes sharing a directory are not supported.
package flatfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type DB struct {
	dir string
	mu  sync.Mutex
}

func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return &DB{dir: dir}, nil
}

func loadFile[T any](db *DB, name string) (map[string]T, error) {
	data, err := os.ReadFile(filepath.Join(db.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]T{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	out := map[string]T{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	return out, nil
}

func saveFile[T any](db *DB, name string, data map[string]T) error {
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(db.dir, name), buf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

func getList[T any](db *DB, file, username string) ([]T, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	all, err := loadFile[[]T](db, file)
	if err != nil {
		return nil, err
	}

	return all[username], nil
}

func appendItem[T any](db *DB, file, username string, item T) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	all, err := loadFile[[]T](db, file)
	if err != nil {
		return err
	}

	all[username] = append(all[username], item)

	return saveFile(db, file, all)
}

func replaceList[T any](db *DB, file, username string, items []T) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	all, err := loadFile[[]T](db, file)
	if err != nil {
		return err
	}

	if items == nil {
		items = []T{}
	}

	all[username] = items

	return saveFile(db, file, all)
}
