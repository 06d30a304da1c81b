package filekv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmugisha/amali/core"
	filekv "github.com/tmugisha/amali/storage/kvstore/file"
)

func TestSetGetRemove(t *testing.T) {
	store, err := filekv.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := store.Get("missing"); err != core.ErrKeyNotFound {
		t.Errorf("Get(missing) error = %v; want ErrKeyNotFound", err)
	}

	if err := store.Set("session_window::1::s42", `{"start":"a","end":"b"}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	val, err := store.Get("session_window::1::s42")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if val != `{"start":"a","end":"b"}` {
		t.Errorf("value = %q", val)
	}

	if err := store.Remove("session_window::1::s42"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, err := store.Get("session_window::1::s42"); err != core.ErrKeyNotFound {
		t.Errorf("Get() after Remove() error = %v; want ErrKeyNotFound", err)
	}
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := filekv.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("has_submitted::1::s42", "true"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	reopened, err := filekv.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	val, err := reopened.Get("has_submitted::1::s42")
	if err != nil {
		t.Fatalf("Get() after reopen failed: %v", err)
	}
	if val != "true" {
		t.Errorf("value = %q; want %q", val, "true")
	}
}

func TestCorruptTableStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{{{ not json"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	store, err := filekv.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.Get("anything"); err != core.ErrKeyNotFound {
		t.Errorf("Get() error = %v; want ErrKeyNotFound", err)
	}
}
