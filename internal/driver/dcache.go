package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when CheckPayload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache remembers which files already checked clean, keyed by content
// hash, so unchanged files are skipped on the next directory run.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CheckPayload is the cached outcome of one file check.
type CheckPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash [32]byte
	OK          bool
	Diagnostics int
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location (XDG cache dir).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(filepath.Join(dir, "files"), 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Lookup hashes the file on disk and returns the cached payload when the
// hash still matches.
func (c *DiskCache) Lookup(path string) (*CheckPayload, bool) {
	if c == nil {
		return nil, false
	}
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the directory walk
	if err != nil {
		return nil, false
	}
	key := sha256.Sum256(content)

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key)) // #nosec G304 -- cache-internal path
	if err != nil {
		return nil, false
	}
	var payload CheckPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion || payload.ContentHash != key {
		return nil, false
	}
	return &payload, true
}

// Store serializes the outcome of a finished check.
func (c *DiskCache) Store(path string, result *CheckResult) error {
	if c == nil || result == nil || result.File == nil {
		return errors.New("nothing to cache")
	}
	payload := CheckPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		ContentHash: result.File.Hash,
		OK:          result.OK,
		Diagnostics: result.Bag.Len(),
	}
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return os.WriteFile(c.pathFor(payload.ContentHash), data, 0o644) // #nosec G306 -- cache data is not sensitive
}

// Clear removes every cached payload.
func (c *DiskCache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "files")); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(c.dir, "files"), 0o755)
}
