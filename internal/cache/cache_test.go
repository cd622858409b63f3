package cache

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

func TestKeyDependsOnSettings(t *testing.T) {
	content := sha256.Sum256([]byte("x + 1"))
	base := Settings{Precision: 64, Engine: "algebra"}
	seen := map[Digest]string{Key(content, base): "base"}

	variants := map[string]Settings{
		"simplify":  {Simplify: true, Precision: 64, Engine: "algebra"},
		"approx":    {Approx: true, Precision: 64, Engine: "algebra"},
		"precision": {Precision: 128, Engine: "algebra"},
		"engine":    {Precision: 64, Engine: "other"},
		"maxErrors": {Precision: 64, Engine: "algebra", MaxErrors: 4},
		"maxTokens": {Precision: 64, Engine: "algebra", MaxTokens: 10},
		"registry":  {Precision: 64, Engine: "algebra", Registry: "cafe"},
		// строки с префиксом длины не склеиваются
		"shifted": {Precision: 64, Engine: "algebraca", Registry: "fe"},
	}
	for name, s := range variants {
		k := Key(content, s)
		if prev, dup := seen[k]; dup {
			t.Fatalf("%s collides with %s", name, prev)
		}
		seen[k] = name
	}
	if Key(content, base) != Key(content, base) {
		t.Fatalf("Key is not deterministic")
	}
	if Key(sha256.Sum256([]byte("x + 2")), base) == Key(content, base) {
		t.Fatalf("Key ignores content")
	}
}

func TestPutGet(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Key(sha256.Sum256([]byte("2 * x")), Settings{})

	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	want := Entry{Path: "a.ath", Value: "2 * x", Warnings: 1, Stored: time.Unix(1700000000, 0).UTC()}
	if err := c.Put(key, &want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Path != want.Path || got.Value != want.Value || got.Warnings != want.Warnings || !got.Stored.Equal(want.Stored) {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}
	if want.Schema != 0 {
		t.Fatalf("Put modified its argument")
	}

	tmp, _ := filepath.Glob(filepath.Join(c.Dir(), "results", "tmp-*"))
	if len(tmp) != 0 {
		t.Fatalf("temporary files left behind: %v", tmp)
	}
}

func TestStaleSchemaIsMiss(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Key(sha256.Sum256([]byte("y")), Settings{})
	data, err := msgpack.Marshal(&Entry{Schema: schemaVersion + 1, Value: "y"})
	if err != nil {
		t.Fatal(err)
	}
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("stale entry: ok=%v err=%v", ok, err)
	}
}

func TestDropAll(t *testing.T) {
	c, err := OpenDir(filepath.Join(t.TempDir(), "athena"))
	if err != nil {
		t.Fatal(err)
	}
	key := Key(sha256.Sum256([]byte("z")), Settings{})
	if err := c.Put(key, &Entry{Value: "z"}); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Fatalf("entry survived DropAll")
	}
	if err := c.Put(key, &Entry{Value: "z"}); err != nil {
		t.Fatalf("Put after DropAll: %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := Key(sha256.Sum256([]byte{byte(i)}), Settings{})
			if err := c.Put(key, &Entry{Value: "v"}); err != nil {
				t.Errorf("Put: %v", err)
				return
			}
			if _, ok, err := c.Get(key); err != nil || !ok {
				t.Errorf("Get: ok=%v err=%v", ok, err)
			}
		}()
	}
	wg.Wait()
}

func TestNilCache(t *testing.T) {
	var c *Disk
	if err := c.Put(Digest{}, &Entry{}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(Digest{}); ok || err != nil {
		t.Fatalf("nil Get: ok=%v err=%v", ok, err)
	}
}
