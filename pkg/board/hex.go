// Package board provides the hexagonal board: axial coordinates, the
// geometric topology resolver that derives shared vertex/edge identities
// from pixel positions, and the random board generator.
package board

import (
	"fmt"
	"strconv"
	"strings"
)

// AxialCoord addresses a hexagon on the grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type AxialCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (c AxialCoord) S() int {
	return -c.Q - c.R
}

// Key returns the string identity of the coordinate, "q:r".
func (c AxialCoord) Key() string {
	return fmt.Sprintf("%d:%d", c.Q, c.R)
}

// ParseCoordKey parses a "q:r" key back into a coordinate.
func ParseCoordKey(key string) (AxialCoord, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 2 {
		return AxialCoord{}, fmt.Errorf("invalid hex key %q", key)
	}
	q, err := strconv.Atoi(parts[0])
	if err != nil {
		return AxialCoord{}, fmt.Errorf("invalid hex key %q", key)
	}
	r, err := strconv.Atoi(parts[1])
	if err != nil {
		return AxialCoord{}, fmt.Errorf("invalid hex key %q", key)
	}
	return AxialCoord{Q: q, R: r}, nil
}

// EdgeNeighborDirections lists the six neighbor offsets in axial
// coordinates, indexed so that direction i is the neighbor across edge i
// (the edge joining corners i and i+1 of a pointy-top hexagon).
var EdgeNeighborDirections = [6]AxialCoord{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
}

// Neighbors returns the six adjacent hex coordinates, in edge order.
func (c AxialCoord) Neighbors() [6]AxialCoord {
	var result [6]AxialCoord
	for i, dir := range EdgeNeighborDirections {
		result[i] = AxialCoord{Q: c.Q + dir.Q, R: c.R + dir.R}
	}
	return result
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b AxialCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	// Max of the three absolute differences in cube coordinates.
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// spiralDirections is the walk order used to trace a ring, starting from
// the ring's south-west coordinate.
var spiralDirections = [6]AxialCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// SpiralCoords returns the 19 coordinates of the standard board in a fixed
// spiral order: the center hex, then ring 1 (6 hexes), then ring 2 (12).
func SpiralCoords() []AxialCoord {
	coords := []AxialCoord{{Q: 0, R: 0}}
	for radius := 1; radius <= 2; radius++ {
		c := AxialCoord{Q: -radius, R: radius}
		for _, dir := range spiralDirections {
			for step := 0; step < radius; step++ {
				coords = append(coords, c)
				c = AxialCoord{Q: c.Q + dir.Q, R: c.R + dir.R}
			}
		}
	}
	return coords
}
