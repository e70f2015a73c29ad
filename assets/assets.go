// Package assets declares the sprite-sheet aliases the behaviors reference.
// The image files themselves live in the host's asset pipeline; this package
// only carries the alias-to-file manifest and registers it against whatever
// sprite registry the host provides.
package assets

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// Sprite aliases used by the behavior systems.
const (
	SpritePuddle = "puddle"
	SpriteSlip   = "slip"
)

// Sheet describes one sprite sheet in the manifest.
type Sheet struct {
	Alias       string `yaml:"alias"`
	File        string `yaml:"file"`
	Frames      int    `yaml:"frames"`
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
}

// Manifest is the embedded sprite manifest.
type Manifest struct {
	Sheets []Sheet `yaml:"sheets"`
}

// SpriteRegistry is the host's asset pipeline surface. External per the
// package contract; the host maps aliases to loaded sheets however it likes.
type SpriteRegistry interface {
	RegisterSheet(alias, file string, frames, frameWidth, frameHeight int) error
}

// Load parses and validates the embedded manifest.
func Load() (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		return nil, fmt.Errorf("assets: parse manifest: %w", err)
	}
	seen := make(map[string]bool, len(m.Sheets))
	for _, sh := range m.Sheets {
		if sh.Alias == "" || sh.File == "" {
			return nil, fmt.Errorf("assets: sheet %+v missing alias or file", sh)
		}
		if sh.Frames <= 0 || sh.FrameWidth <= 0 || sh.FrameHeight <= 0 {
			return nil, fmt.Errorf("assets: sheet %q has invalid geometry", sh.Alias)
		}
		if seen[sh.Alias] {
			return nil, fmt.Errorf("assets: duplicate sheet alias %q", sh.Alias)
		}
		seen[sh.Alias] = true
	}
	return &m, nil
}

// Register loads the manifest and registers every sheet with the host's
// sprite registry.
func Register(r SpriteRegistry) error {
	m, err := Load()
	if err != nil {
		return err
	}
	for _, sh := range m.Sheets {
		if err := r.RegisterSheet(sh.Alias, sh.File, sh.Frames, sh.FrameWidth, sh.FrameHeight); err != nil {
			return fmt.Errorf("assets: register %q: %w", sh.Alias, err)
		}
	}
	return nil
}
