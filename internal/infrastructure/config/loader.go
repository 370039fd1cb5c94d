package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"

	"github.com/younwookim/bountyhunter/internal/domain/entity"
)

// Loader loads game configuration using the fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadGame loads game.json
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.json: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.json: %w", err)
	}

	return &cfg, nil
}

// LoadDifficulty loads difficulty.yaml and validates every preset
func (l *Loader) LoadDifficulty() (map[entity.Difficulty]entity.DifficultyProfile, error) {
	data, err := fs.ReadFile(l.fsys, "difficulty.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read difficulty.yaml: %w", err)
	}

	var raw map[string]DifficultyConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty.yaml: %w", err)
	}

	profiles := make(map[entity.Difficulty]entity.DifficultyProfile, len(raw))
	for key, dc := range raw {
		name, err := entity.ParseDifficulty(key)
		if err != nil {
			return nil, fmt.Errorf("difficulty.yaml: %w", err)
		}
		p := dc.Profile(name)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("difficulty.yaml %s: %w", key, err)
		}
		profiles[name] = p
	}

	return profiles, nil
}

// LoadArena loads arenas/<name>.tmx.
// Rectangles in the "obstacles" object group become obstacles and objects
// in the "spawns" group become named spawn points.
func (l *Loader) LoadArena(name string) (*Arena, error) {
	tmxPath := path.Join("arenas", name+".tmx")
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load arena %s: %w", name, err)
	}

	arena := &Arena{
		Name:   name,
		Width:  float64(levelMap.Width * levelMap.TileWidth),
		Height: float64(levelMap.Height * levelMap.TileHeight),
		Spawns: make(map[string]entity.Point),
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "obstacles":
			for _, o := range og.Objects {
				arena.Obstacles = append(arena.Obstacles, entity.Rect{
					X: o.X,
					Y: o.Y,
					W: o.Width,
					H: o.Height,
				})
			}
		case "spawns":
			for _, o := range og.Objects {
				arena.Spawns[o.Name] = entity.Point{X: o.X, Y: o.Y}
			}
		}
	}

	if arena.Width <= 0 || arena.Height <= 0 {
		return nil, fmt.Errorf("arena %s: %w", name, entity.ErrEmptyBounds)
	}

	return arena, nil
}

// LoadAll loads game.json, difficulty.yaml and the duel arena
func (l *Loader) LoadAll() (*GameConfig, error) {
	cfg, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	profiles, err := l.LoadDifficulty()
	if err != nil {
		return nil, err
	}
	cfg.Difficulty = profiles

	if cfg.Duel.Arena != "" {
		arena, err := l.LoadArena(cfg.Duel.Arena)
		if err != nil {
			return nil, err
		}
		cfg.DuelArena = arena
	}

	return cfg, nil
}
