// Package storage keeps bookmarked views on disk. Each bookmark is a
// directory holding metadata.json and, when an orbit was probed, orbit.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/zplane/internal/config"
)

var ErrNotFound = errors.New("storage: bookmark not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Bookmark is a saved view. Config reproduces it.
type Bookmark struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"timestamp"`
	Config    *config.Config `json:"config"`
	ProbeRe   *float64       `json:"probe_re,omitempty"`
	ProbeIm   *float64       `json:"probe_im,omitempty"`
	OrbitLen  int            `json:"orbit_len,omitempty"`
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func slug(name string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	if s == "" || s == "_" {
		return "view"
	}
	return s
}

// Save writes cfg under a new id derived from name and the current time.
// A non-nil orbit is written next to it, starting at point.
func (s *Store) Save(name string, cfg *config.Config, point complex128, orbit []complex128) (string, error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%d", slug(name), now.UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Bookmark{ID: id, Name: name, Timestamp: now, Config: cfg}
	if orbit != nil {
		re, im := real(point), imag(point)
		meta.ProbeRe, meta.ProbeIm = &re, &im
		meta.OrbitLen = len(orbit)
	}

	f, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if orbit != nil {
		if err := writeOrbit(filepath.Join(dir, "orbit.csv"), orbit); err != nil {
			return "", err
		}
	}
	return id, nil
}

func writeOrbit(path string, orbit []complex128) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"n", "re", "im"}); err != nil {
		return err
	}
	for n, z := range orbit {
		row := []string{
			strconv.Itoa(n),
			strconv.FormatFloat(real(z), 'g', -1, 64),
			strconv.FormatFloat(imag(z), 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable bookmark, newest first.
func (s *Store) List() ([]Bookmark, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Bookmark{}, nil
		}
		return nil, err
	}

	marks := make([]Bookmark, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		b, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		marks = append(marks, *b)
	}
	sort.Slice(marks, func(i, j int) bool {
		return marks[i].Timestamp.After(marks[j].Timestamp)
	})
	return marks, nil
}

// Load reads a bookmark. Fields missing from its config take defaults.
func (s *Store) Load(id string) (*Bookmark, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	b := Bookmark{Config: config.DefaultConfig()}
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return &b, nil
}

// Point returns the probed point, if the bookmark has one.
func (b *Bookmark) Point() (complex128, bool) {
	if b.ProbeRe == nil || b.ProbeIm == nil {
		return 0, false
	}
	return complex(*b.ProbeRe, *b.ProbeIm), true
}

// LoadOrbit reads the orbit saved with a bookmark, or nil if there is none.
func (s *Store) LoadOrbit(id string) ([]complex128, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "orbit.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []complex128{}, nil
	}

	orbit := make([]complex128, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		re, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s: %w", id, err)
		}
		im, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s: %w", id, err)
		}
		orbit = append(orbit, complex(re, im))
	}
	return orbit, nil
}
