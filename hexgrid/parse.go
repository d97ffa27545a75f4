package hexgrid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// IsLand reports whether a map rune is a non-navigable tile.
func IsLand(r rune) bool {
	return r == '1' || r == '#'
}

func isVoid(r rune) bool {
	return r == ' ' || r == '\t'
}

// ParseMap reads a text map. Each line is a row; land runes become
// obstacles, blanks leave no tile and every other rune is a water cell.
func ParseMap(r io.Reader) (*Grid, error) {
	var (
		water []Coord
		land  []Coord
		row   int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		col := 0
		for _, ch := range line {
			c := OffsetToAxial(col, row)
			switch {
			case isVoid(ch):
			case IsLand(ch):
				land = append(land, c)
			default:
				water = append(water, c)
			}
			col++
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("hexgrid: read map: %w", err)
	}

	if len(water) == 0 {
		return nil, ErrEmptyMap
	}
	return build(water, land)
}

// ParseMapString is ParseMap over a string.
func ParseMapString(s string) (*Grid, error) {
	return ParseMap(strings.NewReader(s))
}

// Render draws the grid back as text, marking the given cells with mark.
// Odd rows are indented by one space so the hex offset stays visible.
func (g *Grid) Render(marked map[Coord]rune) string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	landSet := make(map[Coord]struct{}, len(g.land))
	for _, c := range g.land {
		landSet[c] = struct{}{}
	}
	for row := 0; row < g.rows; row++ {
		if row&1 == 1 {
			b.WriteByte(' ')
		}
		for col := 0; col < g.cols; col++ {
			c := OffsetToAxial(col, row)
			ch := ' '
			if m, ok := marked[c]; ok {
				ch = m
			} else if _, ok := g.cells[c]; ok {
				ch = '.'
			} else if _, ok := landSet[c]; ok {
				ch = '#'
			}
			b.WriteRune(ch)
			if col < g.cols-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
