package cache

import (
	"context"
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// entryExt marks files owned by FileCache; anything else in the directory is
// left alone by Prune and Stats.
const entryExt = ".asset"

// headerLen is the size of the expiry prefix (unix nanoseconds, 0 = never).
const headerLen = 8

// FileCache keeps each entry in its own file below dir, sharded by the first
// two hex characters of the key hash. A file holds an 8-byte expiry followed
// by the raw bytes, so cached SVG stays readable with a pager.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Get returns the entry for key. Expired or truncated entries are removed
// and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < headerLen || c.expired(raw) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return raw[headerLen:], true, nil
}

// Set writes the entry through a temp file and rename, so concurrent readers
// never observe a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = c.now().Add(ttl).UnixNano()
	}
	buf := make([]byte, headerLen, headerLen+len(data))
	binary.BigEndian.PutUint64(buf, uint64(expires))
	buf = append(buf, data...)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Stats summarizes the entries currently on disk.
type Stats struct {
	Entries int
	Bytes   int64
	Expired int
}

// Stats walks the cache directory. Expired entries are counted, not removed.
func (c *FileCache) Stats() (Stats, error) {
	var st Stats
	err := c.walk(func(path string, raw []byte) error {
		st.Entries++
		st.Bytes += int64(len(raw) - min(len(raw), headerLen))
		if len(raw) < headerLen || c.expired(raw) {
			st.Expired++
		}
		return nil
	})
	return st, err
}

// Prune removes expired and damaged entries and returns how many were removed.
func (c *FileCache) Prune() (int, error) {
	removed := 0
	err := c.walk(func(path string, raw []byte) error {
		if len(raw) >= headerLen && !c.expired(raw) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}

// Clear removes everything below the cache directory.
func (c *FileCache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Close() error { return nil }

func (c *FileCache) expired(raw []byte) bool {
	exp := int64(binary.BigEndian.Uint64(raw[:headerLen]))
	return exp != 0 && c.now().UnixNano() > exp
}

func (c *FileCache) walk(fn func(path string, raw []byte) error) error {
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != entryExt {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return fn(path, raw)
	})
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)
