package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kitchensim/server/internal/component"
)

// TableEntry places one table on the dining floor. Coordinates are meters
// from the kitchen pass.
type TableEntry struct {
	Name  string  `yaml:"name"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Count int     `yaml:"count"` // repeat along the row, 0 or 1 = single table
	Step  float64 `yaml:"step"`  // x offset between repeats
}

type floorFile struct {
	Tables []TableEntry `yaml:"tables"`
}

// FloorLayout is the dining-room layout loaded from YAML.
type FloorLayout struct {
	entries   []TableEntry
	positions []component.Position
}

// LoadFloorLayout loads a floor layout file such as data/yaml/floor.yaml.
func LoadFloorLayout(path string) (*FloorLayout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read floor layout: %w", err)
	}
	return ParseFloorLayout(raw)
}

// ParseFloorLayout decodes a layout document.
func ParseFloorLayout(raw []byte) (*FloorLayout, error) {
	var f floorFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse floor layout: %w", err)
	}
	if len(f.Tables) == 0 {
		return nil, fmt.Errorf("floor layout has no tables")
	}
	l := &FloorLayout{entries: f.Tables}
	for i, e := range f.Tables {
		if e.Count < 0 {
			return nil, fmt.Errorf("floor layout entry %d (%s): negative count", i, e.Name)
		}
		n := max(e.Count, 1)
		for k := 0; k < n; k++ {
			l.positions = append(l.positions, component.Position{
				X: e.X + float64(k)*e.Step,
				Y: e.Y,
			})
		}
	}
	return l, nil
}

// Positions returns one position per table, in file order.
func (l *FloorLayout) Positions() []component.Position {
	return l.positions
}

// Count returns the total number of tables.
func (l *FloorLayout) Count() int {
	return len(l.positions)
}
