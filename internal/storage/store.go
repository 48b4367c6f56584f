package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/newsflow/internal/config"
)

const (
	MetadataFile  = "metadata.json"
	AnimationFile = "animation.gif"
	FinalPNGFile  = "final.png"
	FinalSVGFile  = "final.svg"
)

var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Year      string             `json:"year"`
	Label     string             `json:"label,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Records   int                `json:"records"`
	Config    *config.Config     `json:"config,omitempty"`
	Stats     map[string]float64 `json:"stats"`
	Artifacts []string           `json:"artifacts"`
}

// Artifact writes one output file of a run.
type Artifact struct {
	Name  string
	Write func(w io.Writer) error
}

// Save creates a new run directory, writes each artifact and then the
// metadata. A failed artifact removes the partial run.
func (s *Store) Save(meta RunMetadata, artifacts ...Artifact) (string, error) {
	year := meta.Year
	if year == "" {
		year = "run"
	}
	meta.ID = fmt.Sprintf("%s_%s", year, uuid.New().String()[:8])
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.Artifacts = make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		if err := writeFile(filepath.Join(runDir, a.Name), a.Write); err != nil {
			os.RemoveAll(runDir)
			return "", fmt.Errorf("write %s: %w", a.Name, err)
		}
		meta.Artifacts = append(meta.Artifacts, a.Name)
	}

	err := writeFile(filepath.Join(runDir, MetadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, MetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Path returns the location of an artifact inside a run directory.
func (s *Store) Path(runID, name string) string {
	return filepath.Join(s.baseDir, runID, name)
}
