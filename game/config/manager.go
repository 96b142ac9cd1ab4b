package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidPreset  = errors.New("invalid preset")
)

// Preset is a named difficulty setting offered to clients when creating a
// game. Presets are advisory: CreateGame still takes the raw difficulty
// integer, the catalog just gives clients something to show.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Difficulty  int    `json:"difficulty"`
	Description string `json:"description"`
}

// Manager loads and caches difficulty presets
type Manager struct {
	presetDir string
	presets   map[string]*Preset
	mu        sync.RWMutex
}

// NewManager creates a preset manager backed by a directory of JSON files.
// A missing or empty directory is not an error; the built-in defaults apply.
func NewManager(presetDir string) (*Manager, error) {
	m := &Manager{
		presetDir: presetDir,
		presets:   make(map[string]*Preset),
	}

	if err := m.loadAll(); err != nil {
		return nil, err
	}
	if len(m.presets) == 0 {
		for _, p := range defaultPresets() {
			m.presets[p.ID] = p
		}
	}

	return m, nil
}

// Get returns a preset by ID.
func (m *Manager) Get(id string) (*Preset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if p, ok := m.presets[id]; ok {
		return p, nil
	}
	return nil, ErrPresetNotFound
}

// List returns all presets ordered by difficulty, then ID.
func (m *Manager) List() []*Preset {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Preset, 0, len(m.presets))
	for _, p := range m.presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Difficulty != result[j].Difficulty {
			return result[i].Difficulty < result[j].Difficulty
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Save writes a preset to disk and updates the cache.
func (m *Manager) Save(p *Preset) error {
	if err := validatePreset(p); err != nil {
		return err
	}

	if err := os.MkdirAll(m.presetDir, 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}

	path := filepath.Join(m.presetDir, p.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	m.mu.Lock()
	m.presets[p.ID] = p
	m.mu.Unlock()

	return nil
}

// loadAll reads every *.json file in the preset directory. Invalid files are
// skipped rather than failing startup.
func (m *Manager) loadAll() error {
	entries, err := os.ReadDir(m.presetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read preset directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(m.presetDir, entry.Name()))
		if err != nil {
			continue
		}

		var p Preset
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		if p.ID == "" {
			p.ID = strings.TrimSuffix(entry.Name(), ".json")
		}
		if validatePreset(&p) != nil {
			continue
		}

		m.presets[p.ID] = &p
	}

	return nil
}

func validatePreset(p *Preset) error {
	if p.ID == "" || p.Name == "" {
		return fmt.Errorf("%w: id and name are required", ErrInvalidPreset)
	}
	if p.Difficulty < 0 {
		return fmt.Errorf("%w: difficulty must not be negative", ErrInvalidPreset)
	}
	return nil
}

func defaultPresets() []*Preset {
	return []*Preset{
		{ID: "easy", Name: "Easy", Difficulty: 1, Description: "A relaxed game for new players"},
		{ID: "standard", Name: "Standard", Difficulty: 2, Description: "The default TaxE experience"},
		{ID: "veteran", Name: "Veteran", Difficulty: 3, Description: "For players who know the rails"},
	}
}
