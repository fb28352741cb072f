// Package level builds a playable scene subtree from an ASCII tile map: a floor, walls with
// one-sided collision faces, sliding doors, lifts and a player start.
package level

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Tile is one cell of a layout.
type Tile rune

const (
	TileEmpty  Tile = 'e'
	TileWall   Tile = 'w'
	TileDoor   Tile = 'd'
	TileLift   Tile = 'l'
	TilePlayer Tile = 'p'
)

// Layout is a parsed tile map. Row index maps to world Z, column index to world X.
type Layout struct {
	rows  [][]Tile
	start mgl32.Vec3
	found bool
}

// Parse reads one row per line. Blank lines are skipped and unknown runes become TileEmpty.
//
// Parameters:
//   - text: the map text
//
// Returns:
//   - Layout: the parsed layout
//   - error: if the map is empty or has more than one player start
func Parse(text string) (Layout, error) {
	var l Layout
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		z := len(l.rows)
		row := make([]Tile, 0, len(line))
		for x, r := range []rune(line) {
			t := Tile(r)
			switch t {
			case TileWall, TileDoor, TileLift, TileEmpty:
			case TilePlayer:
				if l.found {
					return Layout{}, errors.Errorf("level: second player start at (%d, %d)", x, z)
				}
				l.start = mgl32.Vec3{float32(x), 0, float32(z)}
				l.found = true
			default:
				t = TileEmpty
			}
			row = append(row, t)
		}
		l.rows = append(l.rows, row)
	}
	if len(l.rows) == 0 {
		return Layout{}, errors.New("level: empty map")
	}
	return l, nil
}

// Height is the number of rows.
func (l Layout) Height() int {
	return len(l.rows)
}

// Width is the length of row z.
func (l Layout) Width(z int) int {
	if z < 0 || z >= len(l.rows) {
		return 0
	}
	return len(l.rows[z])
}

// At returns the tile at column x, row z. Cells outside the map report false.
func (l Layout) At(x, z int) (Tile, bool) {
	if z < 0 || z >= len(l.rows) || x < 0 || x >= len(l.rows[z]) {
		return TileEmpty, false
	}
	return l.rows[z][x], true
}

// Start returns the player start in world space, if the map has one.
func (l Layout) Start() (mgl32.Vec3, bool) {
	return l.start, l.found
}

// Count returns how many cells hold t.
func (l Layout) Count(t Tile) int {
	n := 0
	for _, row := range l.rows {
		for _, c := range row {
			if c == t {
				n++
			}
		}
	}
	return n
}

func (l Layout) isWall(x, z int) bool {
	t, ok := l.At(x, z)
	return ok && t == TileWall
}
