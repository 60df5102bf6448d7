package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"depsort/internal/config"
)

// Current schema version - increment when Verdict format changes
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

// Cache хранит вердикты проверки (--check) по хэшу содержимого и настроек.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Verdict is what a check run needs to skip the transform.
type Verdict struct {
	Schema    uint16
	Sorted    bool
	Formatted bool
	Changed   bool
}

// OpenCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewCache(filepath.Join(base, app))
}

// NewCache opens a cache rooted at dir, creating it when missing.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key hashes manifest content together with everything that affects the
// verdict: the configuration and the tool version.
func Key(content []byte, cfg config.Config, version string) (Digest, error) {
	cfg.File = ""
	settings, err := msgpack.Marshal(&cfg)
	if err != nil {
		return Digest{}, fmt.Errorf("encode cache key: %w", err)
	}
	h := sha256.New()
	_, _ = h.Write(content)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(settings)
	_, _ = h.Write([]byte(version))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не держать всё в одной папке
	return filepath.Join(c.dir, "verdicts", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a verdict.
func (c *Cache) Put(key Digest, v *Verdict) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload := *v
	payload.Schema = cacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a verdict. A missing entry or one from another schema is a miss.
func (c *Cache) Get(key Digest) (Verdict, bool, error) {
	if c == nil {
		return Verdict{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Verdict{}, false, nil
		}
		return Verdict{}, false, err
	}
	defer f.Close()

	var v Verdict
	if err := msgpack.NewDecoder(f).Decode(&v); err != nil {
		return Verdict{}, false, err
	}
	if v.Schema != cacheSchemaVersion {
		return Verdict{}, false, nil
	}
	return v, true, nil
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
