package recorder

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"alphaviz/internal/render"
)

// Store lays recordings out as one directory per session under a base
// directory.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID         string    `json:"id"`
	Source     string    `json:"source,omitempty"`
	Field      string    `json:"field"`
	Created    time.Time `json:"created"`
	Frames     int       `json:"frames"`
	FPS        int       `json:"fps"`
	Speed      float64   `json:"speed"`
	Duration   float64   `json:"duration_seconds"`
	FirstBlock float64   `json:"first_block"`
	LastBlock  float64   `json:"last_block"`
}

// Save writes a session directory named <name>_<unixtime> containing
// metadata.json and animation.gif, and returns the completed metadata.
func (s *Store) Save(name string, meta Metadata, frames []*image.Paletted, delayCS int) (*Metadata, error) {
	id := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	meta.ID = id
	meta.Created = time.Now()
	meta.Frames = len(frames)

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil, err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return nil, err
	}

	gifFile, err := os.Create(filepath.Join(dir, "animation.gif"))
	if err != nil {
		return nil, err
	}
	defer gifFile.Close()
	if err := render.EncodeGIF(gifFile, frames, delayCS); err != nil {
		return nil, err
	}

	return &meta, nil
}

// List returns the recorded sessions, newest first. Directories without a
// readable metadata document are skipped.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	sessions := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		sessions = append(sessions, meta)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Created.After(sessions[j].Created)
	})
	return sessions, nil
}
