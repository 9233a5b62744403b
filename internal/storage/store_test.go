package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/zplane/internal/config"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Formula = "z^3 + c"
	cfg.CenterRe, cfg.CenterIm = -0.75, 0.1
	cfg.Mode = "julia"

	orbit := []complex128{0.25, complex(0.5, -1), complex(math.Inf(1), 0)}
	id, err := st.Save("seahorse valley!", cfg, complex(-0.75, 0.1), orbit)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	b, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if b.Name != "seahorse valley!" {
		t.Errorf("name = %q", b.Name)
	}
	if *b.Config != *cfg {
		t.Errorf("config = %+v, want %+v", b.Config, cfg)
	}
	if p, ok := b.Point(); !ok || p != complex(-0.75, 0.1) {
		t.Errorf("point = %v, %v", p, ok)
	}

	got, err := st.LoadOrbit(id)
	if err != nil {
		t.Fatalf("load orbit failed: %v", err)
	}
	if len(got) != len(orbit) {
		t.Fatalf("orbit has %d points, want %d", len(got), len(orbit))
	}
	for i := range orbit {
		if got[i] != orbit[i] {
			t.Errorf("orbit[%d] = %v, want %v", i, got[i], orbit[i])
		}
	}
}

func TestStoreWithoutOrbit(t *testing.T) {
	st := New(t.TempDir())
	id, err := st.Save("plain", config.DefaultConfig(), 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	b, err := st.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Point(); ok {
		t.Error("bookmark without an orbit has a point")
	}
	orbit, err := st.LoadOrbit(id)
	if err != nil || orbit != nil {
		t.Errorf("LoadOrbit = %v, %v", orbit, err)
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	marks, err := st.List()
	if err != nil || len(marks) != 0 {
		t.Fatalf("empty store: %v, %v", marks, err)
	}

	first, _ := st.Save("a", config.DefaultConfig(), 0, nil)
	time.Sleep(time.Millisecond)
	second, _ := st.Save("b", config.DefaultConfig(), 0, nil)

	// noise that List must skip
	os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644)
	os.MkdirAll(filepath.Join(dir, "broken"), 0755)
	os.WriteFile(filepath.Join(dir, "broken", "metadata.json"), []byte("{"), 0644)

	marks, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(marks) != 2 {
		t.Fatalf("got %d bookmarks, want 2", len(marks))
	}
	if marks[0].ID != second || marks[1].ID != first {
		t.Errorf("order = %s, %s", marks[0].ID, marks[1].ID)
	}

	if _, err := New(filepath.Join(dir, "missing")).List(); err != nil {
		t.Errorf("missing dir: %v", err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	_, err := New(t.TempDir()).Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
