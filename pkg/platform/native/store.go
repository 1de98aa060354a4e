package native

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/go-endbasic/endbasic/pkg/host"
)

const programExt = ".bas"
const cacheFileName = ".endbasic-cache.json"

// Store persists program text as ".bas" files under a directory, with a
// sidecar JSON cache (read/written with gjson/sjson rather than a
// marshalled struct, since it is a flat, incrementally-updated lookup
// table, not a fixed shape) recording each program's last known size and
// modification time alongside the files themselves.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating dir if it does not
// exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("program store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// normalizeName reduces a caller-supplied program name to the form
// used both for its on-disk filename and its cache key: its basename,
// rejecting any directory components so a name like "../../etc/passwd"
// cannot escape dir via filepath.Join, with a trailing ".bas"
// (case-insensitive) stripped so it can be re-appended exactly once
// regardless of whether the caller already included it, and lower-cased
// so names compare case-insensitively on any filesystem.
func normalizeName(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if ext := filepath.Ext(name); strings.EqualFold(ext, programExt) {
		name = name[:len(name)-len(ext)]
	}
	return strings.ToLower(name)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, normalizeName(name)+programExt)
}

func (s *Store) cachePath() string {
	return filepath.Join(s.dir, cacheFileName)
}

func (s *Store) loadCache() string {
	data, err := os.ReadFile(s.cachePath())
	if err != nil {
		return "{}"
	}
	return string(data)
}

func (s *Store) saveCache(cache string) error {
	return os.WriteFile(s.cachePath(), []byte(cache), 0o644)
}

// Enumerate lists every stored program, re-syncing the size/mtime cache
// against the filesystem's own stat data (which always wins over a
// stale cache entry).
func (s *Store) Enumerate() ([]host.FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("program store: %w", err)
	}

	cache := s.loadCache()
	var out []host.FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), programExt) {
			continue
		}
		name := e.Name()[:len(e.Name())-len(programExt)]
		info, err := e.Info()
		if err != nil {
			continue
		}
		cache, _ = sjson.Set(cache, name+".size", info.Size())
		cache, _ = sjson.Set(cache, name+".mtime", info.ModTime().Format(time.RFC3339))
		out = append(out, host.FileInfo{Name: name, Size: info.Size(), ModTime: info.ModTime()})
	}
	if err := s.saveCache(cache); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Get(name string) (string, error) {
	name = normalizeName(name)
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", fmt.Errorf("program store: no such program %s", name)
	}
	return string(data), nil
}

func (s *Store) Put(name, text string) error {
	name = normalizeName(name)
	if err := os.WriteFile(s.path(name), []byte(text), 0o644); err != nil {
		return fmt.Errorf("program store: %w", err)
	}

	cache := s.loadCache()
	cache, _ = sjson.Set(cache, name+".size", len(text))
	cache, _ = sjson.Set(cache, name+".mtime", time.Now().Format(time.RFC3339))
	return s.saveCache(cache)
}

func (s *Store) Delete(name string) error {
	name = normalizeName(name)
	if err := os.Remove(s.path(name)); err != nil {
		return fmt.Errorf("program store: %w", err)
	}

	cache := s.loadCache()
	if gjson.Get(cache, name).Exists() {
		cache, _ = sjson.Delete(cache, name)
		return s.saveCache(cache)
	}
	return nil
}
