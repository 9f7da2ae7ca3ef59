package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a scene document from a JSON file. Missing or zero playback
// fields are filled with the defaults from New so hand-written documents
// stay usable.
func Load(path string) (*Scene, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene document: %w", err)
	}
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse scene document: %w", err)
	}
	if s.FPS <= 0 {
		s.FPS = 24
	}
	if s.FrameStart == 0 {
		s.FrameStart = 1
	}
	if s.FrameEnd < s.FrameStart {
		s.FrameEnd = s.FrameStart
	}
	return s, nil
}

// Save writes the scene document as indented JSON.
func (s *Scene) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scene document: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0644); err != nil {
		return fmt.Errorf("failed to write scene document: %w", err)
	}
	return nil
}
