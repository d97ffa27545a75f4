package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/hexnav/hexgrid"
)

var ErrBadScenario = errors.New("levels: invalid scenario")

// Scenario places agents on a map and optionally gives them routes.
type Scenario struct {
	Name   string      `yaml:"name"`
	Map    string      `yaml:"map"`
	Layout *LayoutSpec `yaml:"layout"`
	Agents []AgentSpec `yaml:"agents"`
}

type LayoutSpec struct {
	TileWidth float64 `yaml:"tile_width"`
	RowHeight float64 `yaml:"row_height"`
}

type AgentSpec struct {
	Name          string      `yaml:"name"`
	Start         CoordSpec   `yaml:"start"`
	Speed         float64     `yaml:"speed"`
	RotationSpeed float64     `yaml:"rotation_speed"`
	ShowPath      *bool       `yaml:"show_path"`
	Route         []CoordSpec `yaml:"route"`
	Loop          bool        `yaml:"loop"`
	// Script is a tengo route script, evaluated in place of Route.
	Script string `yaml:"script"`
}

// CoordSpec is an axial coordinate written as "x,y".
type CoordSpec hexgrid.Coord

func (c *CoordSpec) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: coordinate must be a string: %w", node.Line, err)
	}
	coord, err := hexgrid.ParseCoord(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = CoordSpec(coord)
	return nil
}

func (c CoordSpec) MarshalYAML() (any, error) {
	return fmt.Sprintf("%d,%d", c.X, c.Y), nil
}

func (c CoordSpec) Coord() hexgrid.Coord { return hexgrid.Coord(c) }

// Waypoints returns the route as coordinates.
func (a AgentSpec) Waypoints() []hexgrid.Coord {
	out := make([]hexgrid.Coord, len(a.Route))
	for i, c := range a.Route {
		out[i] = c.Coord()
	}
	return out
}

// HexLayout returns the scenario layout, or fallback when unset.
func (s *Scenario) HexLayout(fallback hexgrid.Layout) hexgrid.Layout {
	if s.Layout == nil {
		return fallback
	}
	return hexgrid.Layout{TileWidth: s.Layout.TileWidth, RowHeight: s.Layout.RowHeight}
}

// Validate checks the scenario against its map.
func (s *Scenario) Validate(g *hexgrid.Grid) error {
	if len(s.Agents) == 0 {
		return fmt.Errorf("%w: %s has no agents", ErrBadScenario, s.Name)
	}
	if s.Layout != nil {
		if err := s.HexLayout(hexgrid.Layout{}).Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrBadScenario, s.Name, err)
		}
	}
	seen := make(map[string]bool, len(s.Agents))
	for _, a := range s.Agents {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: %s: agent without a name", ErrBadScenario, s.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: %s: duplicate agent %q", ErrBadScenario, s.Name, a.Name)
		}
		seen[a.Name] = true
		if _, ok := g.Cell(a.Start.Coord()); !ok {
			return fmt.Errorf("%w: %s: agent %q starts on %s which is not water", ErrBadScenario, s.Name, a.Name, a.Start.Coord())
		}
		if a.Speed < 0 || a.RotationSpeed < 0 {
			return fmt.Errorf("%w: %s: agent %q has a negative speed", ErrBadScenario, s.Name, a.Name)
		}
	}
	return nil
}

// LoadSpec reads a YAML file by name, from DiskRoot first and then the
// embedded scenarios. Paths are read from disk directly.
func LoadSpec[T any](name string) (T, error) {
	var zero T
	data, err := readScenario(name)
	if err != nil {
		return zero, err
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

// LoadScenario loads a scenario by name or path.
func LoadScenario(name string) (*Scenario, error) {
	s, err := LoadSpec[Scenario](name)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(path.Base(name), ".yaml")
	}
	return &s, nil
}

func readScenario(name string) ([]byte, error) {
	if strings.ContainsAny(name, `/\`) {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: read scenario: %w", err)
		}
		return data, nil
	}
	clean := cleanName(name, ".yaml")
	if data, err := os.ReadFile(path.Join(DiskRoot, "scenarios", clean)); err == nil {
		return data, nil
	}
	data, err := fs.ReadFile(ScenariosFS, path.Join("scenarios", clean))
	if err != nil {
		return nil, fmt.Errorf("levels: read scenario %s: %w", name, err)
	}
	return data, nil
}
