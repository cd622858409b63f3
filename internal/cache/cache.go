// Package cache stores batch evaluation results on disk, keyed by a digest
// of the source and the evaluation settings.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 1

// Digest identifies one cached evaluation.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Settings are the pipeline options that change a cached entry.
type Settings struct {
	Simplify  bool
	Approx    bool
	Precision uint
	Engine    string

	// MaxErrors and MaxTokens bound the diagnostics counted in an Entry.
	MaxErrors uint
	MaxTokens int
	// Registry fingerprints the builtin table the file was evaluated with.
	Registry string
}

// Key combines the content hash of a file with the settings it was
// evaluated under.
func Key(content [32]byte, s Settings) Digest {
	h := sha256.New()
	h.Write(content[:])
	var flags [2]byte
	if s.Simplify {
		flags[0] = 1
	}
	if s.Approx {
		flags[1] = 1
	}
	h.Write(flags[:])
	h.Write(binary.LittleEndian.AppendUint64(nil, uint64(s.Precision)))
	h.Write(binary.LittleEndian.AppendUint64(nil, uint64(s.MaxErrors)))
	h.Write(binary.LittleEndian.AppendUint64(nil, uint64(s.MaxTokens)))
	writeString(h, s.Engine)
	writeString(h, s.Registry)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// writeString length-prefixes v so adjacent strings cannot run together.
func writeString(h hash.Hash, v string) {
	h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(v))))
	h.Write([]byte(v))
}

// Entry is the cached outcome of evaluating one file.
type Entry struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path  string
	Value string

	// Diagnostics counts; files with errors are cached too
	LexErrors    int
	SyntaxErrors int
	Warnings     int

	Stored time.Time
}

// Disk хранит результаты вычислений по Digest на диске.
// Thread-safe for concurrent access.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a disk cache at the standard location for app.
func Open(app string) (*Disk, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir initializes a disk cache rooted at dir.
func OpenDir(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Disk) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Disk) pathFor(key Digest) string {
	// подкаталог "results" упрощает очистку
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put serializes and writes an entry.
func (c *Disk) Put(key Digest, entry *Entry) (err error) {
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

	stored := *entry
	stored.Schema = schemaVersion
	if err := msgpack.NewEncoder(f).Encode(&stored); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an entry. Entries of another schema version count as misses.
func (c *Disk) Get(key Digest) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var out Entry
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	if out.Schema != schemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every entry.
func (c *Disk) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, затем удалим
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
