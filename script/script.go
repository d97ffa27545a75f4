// Package script evaluates tengo route scripts. A script sees the map through
// a few builtins and assigns the destinations to visit to the global
// `waypoints`; setting `loop := true` repeats the route.
//
//	waypoints := []
//	for x := 0; x < width; x += 3 {
//		if is_water(x, 0) { waypoints = append(waypoints, [x, 0]) }
//	}
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/pathfind"
)

var (
	ErrNoWaypoints = errors.New("script: waypoints not defined")
	ErrBadWaypoint = errors.New("script: bad waypoint")
)

// MaxAllocs bounds the objects a script may allocate.
const MaxAllocs = 1 << 20

// Env is the map a script runs against.
type Env struct {
	Grid  *hexgrid.Grid
	Start hexgrid.Coord
}

// Route is the result of a script.
type Route struct {
	Waypoints []hexgrid.Coord
	Loop      bool
}

// RunFile reads and runs a script from disk.
func RunFile(ctx context.Context, path string, env Env) (Route, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Route{}, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Run(ctx, src, env)
}

// Run compiles and executes src. ctx bounds execution time.
func Run(ctx context.Context, src []byte, env Env) (Route, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	s.SetMaxAllocs(MaxAllocs)

	cols, rows := 0, 0
	if env.Grid != nil {
		cols, rows = env.Grid.Size()
	}
	vars := map[string]any{
		"start":  coordObject(env.Start),
		"width":  cols,
		"height": rows,
	}
	for name, value := range vars {
		if err := s.Add(name, value); err != nil {
			return Route{}, fmt.Errorf("script: add %s: %w", name, err)
		}
	}
	for name, fn := range builtins(env) {
		if err := s.Add(name, &tengo.UserFunction{Name: name, Value: fn}); err != nil {
			return Route{}, fmt.Errorf("script: add %s: %w", name, err)
		}
	}

	compiled, err := s.Compile()
	if err != nil {
		return Route{}, fmt.Errorf("script: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return Route{}, fmt.Errorf("script: run: %w", err)
	}

	if !compiled.IsDefined("waypoints") {
		return Route{}, ErrNoWaypoints
	}
	route := Route{}
	if compiled.IsDefined("loop") {
		route.Loop = compiled.Get("loop").Bool()
	}
	v := compiled.Get("waypoints")
	if v.ValueType() != "array" {
		return Route{}, fmt.Errorf("%w: waypoints is %s, want array", ErrBadWaypoint, v.ValueType())
	}
	for i, raw := range v.Array() {
		c, err := toCoord(raw)
		if err != nil {
			return Route{}, fmt.Errorf("%w: #%d: %v", ErrBadWaypoint, i, err)
		}
		route.Waypoints = append(route.Waypoints, c)
	}
	return route, nil
}

func builtins(env Env) map[string]tengo.CallableFunc {
	return map[string]tengo.CallableFunc{
		"is_water": func(args ...tengo.Object) (tengo.Object, error) {
			c, err := coordArgs("is_water", args)
			if err != nil {
				return nil, err
			}
			if _, ok := env.Grid.Cell(c); ok {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		},
		"neighbors": func(args ...tengo.Object) (tengo.Object, error) {
			c, err := coordArgs("neighbors", args)
			if err != nil {
				return nil, err
			}
			cell, ok := env.Grid.Cell(c)
			if !ok {
				return &tengo.Array{}, nil
			}
			out := &tengo.Array{}
			for _, n := range cell.Neighbors() {
				out.Value = append(out.Value, coordObject(n.Coord()))
			}
			return out, nil
		},
		"distance": func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 4 {
				return nil, tengo.ErrWrongNumArguments
			}
			a, err := coordArgs("distance", args[:2])
			if err != nil {
				return nil, err
			}
			b, err := coordArgs("distance", args[2:])
			if err != nil {
				return nil, err
			}
			return &tengo.Int{Value: int64(pathfind.Heuristic(a, b))}, nil
		},
		"offset_to_axial": func(args ...tengo.Object) (tengo.Object, error) {
			c, err := coordArgs("offset_to_axial", args)
			if err != nil {
				return nil, err
			}
			return coordObject(hexgrid.OffsetToAxial(c.X, c.Y)), nil
		},
	}
}

func coordArgs(name string, args []tengo.Object) (hexgrid.Coord, error) {
	if len(args) != 2 {
		return hexgrid.Coord{}, tengo.ErrWrongNumArguments
	}
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return hexgrid.Coord{}, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return hexgrid.Coord{}, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: args[1].TypeName()}
	}
	return hexgrid.Coord{X: x, Y: y}, nil
}

func coordObject(c hexgrid.Coord) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(c.X)}, &tengo.Int{Value: int64(c.Y)}}}
}

// toCoord accepts [x, y], {x: .., y: ..} or "x,y".
func toCoord(v any) (hexgrid.Coord, error) {
	switch t := v.(type) {
	case []any:
		if len(t) != 2 {
			return hexgrid.Coord{}, fmt.Errorf("want 2 elements, got %d", len(t))
		}
		x, okX := t[0].(int64)
		y, okY := t[1].(int64)
		if !okX || !okY {
			return hexgrid.Coord{}, fmt.Errorf("elements must be ints: %v", t)
		}
		return hexgrid.Coord{X: int(x), Y: int(y)}, nil
	case map[string]any:
		x, okX := t["x"].(int64)
		y, okY := t["y"].(int64)
		if !okX || !okY {
			return hexgrid.Coord{}, fmt.Errorf("map needs int x and y: %v", t)
		}
		return hexgrid.Coord{X: int(x), Y: int(y)}, nil
	case string:
		return hexgrid.ParseCoord(strings.TrimSpace(t))
	default:
		return hexgrid.Coord{}, fmt.Errorf("unsupported %T", v)
	}
}
