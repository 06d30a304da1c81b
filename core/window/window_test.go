package window

import (
	"testing"
	"time"

	"github.com/tmugisha/amali/core"
	inmemkv "github.com/tmugisha/amali/storage/kvstore/inmem"
)

func TestGetOrCreateAnchorsFirstAccess(t *testing.T) {
	kv := inmemkv.Open()
	store := NewStore(kv)
	t0 := time.Date(2021, 3, 15, 9, 0, 0, 0, time.UTC)

	win, err := store.GetOrCreate(1, "U1", t0)
	if err != nil {
		t.Fatalf("GetOrCreate() failed: %v", err)
	}
	if !win.Start.Equal(t0) {
		t.Errorf("Start = %v; want %v", win.Start, t0)
	}
	if want := t0.Add(4 * time.Hour); !win.End.Equal(want) {
		t.Errorf("End = %v; want %v", win.End, want)
	}
	if kv.Len() != 1 {
		t.Errorf("writes = %d; want exactly 1", kv.Len())
	}
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	kv := inmemkv.Open()
	store := NewStore(kv)
	t0 := time.Date(2021, 3, 15, 9, 0, 0, 0, time.UTC)

	first, err := store.GetOrCreate(1, "U1", t0)
	if err != nil {
		t.Fatalf("GetOrCreate() failed: %v", err)
	}

	// revisiting an hour later must not move the deadline
	later, err := store.GetOrCreate(1, "U1", t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetOrCreate() failed: %v", err)
	}
	if !later.End.Equal(first.End) {
		t.Errorf("End moved from %v to %v on revisit", first.End, later.End)
	}
	if !later.Start.Equal(first.Start) {
		t.Errorf("Start moved from %v to %v on revisit", first.Start, later.Start)
	}
}

func TestGetOrCreateKeysPerPair(t *testing.T) {
	kv := inmemkv.Open()
	store := NewStore(kv)
	t0 := time.Date(2021, 3, 15, 9, 0, 0, 0, time.UTC)

	a, _ := store.GetOrCreate(1, "U1", t0)
	b, _ := store.GetOrCreate(1, "U2", t0.Add(time.Minute))
	c, _ := store.GetOrCreate(2, "U1", t0.Add(2*time.Minute))

	if a.End.Equal(b.End) || a.End.Equal(c.End) {
		t.Error("windows for distinct (assessment, user) pairs share a deadline")
	}
	if kv.Len() != 3 {
		t.Errorf("stored records = %d; want 3", kv.Len())
	}
}

func TestGetOrCreateRepairsCorruptedRecord(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"garbage", "{not json"},
		{"missing end", `{"start":"2021-03-15T09:00:00Z"}`},
		{"empty object", `{}`},
	}
	t0 := time.Date(2021, 3, 15, 9, 0, 0, 0, time.UTC)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := inmemkv.Open()
			if err := kv.Set(Key(1, "U1"), tc.raw); err != nil {
				t.Fatal(err)
			}

			win, err := NewStore(kv).GetOrCreate(1, "U1", t0)
			if err != nil {
				t.Fatalf("corrupted record surfaced as error: %v", err)
			}
			if !win.Start.Equal(t0) || !win.End.Equal(t0.Add(Duration)) {
				t.Errorf("repaired window = %+v; want fresh window at %v", win, t0)
			}

			// the repaired record must now round-trip
			again, err := NewStore(kv).GetOrCreate(1, "U1", t0.Add(time.Hour))
			if err != nil {
				t.Fatal(err)
			}
			if !again.End.Equal(win.End) {
				t.Errorf("repaired record not stable: %v != %v", again.End, win.End)
			}
		})
	}
}

func TestGetOrCreatePersistedLayout(t *testing.T) {
	kv := inmemkv.Open()
	t0 := time.Date(2021, 3, 15, 9, 0, 0, 0, time.UTC)
	if _, err := NewStore(kv).GetOrCreate(7, "S42", t0); err != nil {
		t.Fatal(err)
	}

	raw, err := kv.Get("session_window::7::S42")
	if err != nil {
		t.Fatalf("expected record under session_window::7::S42: %v", err)
	}
	want := `{"start":"2021-03-15T09:00:00Z","end":"2021-03-15T13:00:00Z"}`
	if raw != want {
		t.Errorf("stored record = %s; want %s", raw, want)
	}
}

var _ core.KeyValueStore = (*inmemkv.Store)(nil)
