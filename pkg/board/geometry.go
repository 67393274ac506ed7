package board

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HexSize is the circumradius of a hexagon in board units. For a
// pointy-top hexagon the edge length equals the circumradius.
const HexSize = 10.0

// EdgeLength is the true distance between two adjacent vertices.
const EdgeLength = HexSize

// Epsilon is the tolerance used when comparing floating-point positions.
// It must stay below half the minimum true distance between distinct
// vertices (EdgeLength) or nearby vertices would merge into one key.
const Epsilon = 0.25

// Position is a 2-D pixel position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AxialToPixel converts an axial coordinate to the pixel position of the
// hex center, pointy-top orientation.
func AxialToPixel(c AxialCoord) Position {
	return Position{
		X: HexSize * math.Sqrt(3) * (float64(c.Q) + float64(c.R)/2),
		Y: HexSize * 1.5 * float64(c.R),
	}
}

// HexCornerPositions returns the six corner positions of a hex in order.
// Corner i sits at angle 60*i - 30 degrees from the center.
func HexCornerPositions(c AxialCoord) [6]Position {
	center := AxialToPixel(c)
	var corners [6]Position
	for i := 0; i < 6; i++ {
		angle := math.Pi / 180 * (60*float64(i) - 30)
		corners[i] = Position{
			X: center.X + HexSize*math.Cos(angle),
			Y: center.Y + HexSize*math.Sin(angle),
		}
	}
	return corners
}

// EdgeMidpoints returns the six edge midpoints of a hex. Edge i joins
// corners i and i+1 and faces the neighbor in EdgeNeighborDirections[i].
func EdgeMidpoints(c AxialCoord) [6]Position {
	corners := HexCornerPositions(c)
	var mids [6]Position
	for i := 0; i < 6; i++ {
		next := corners[(i+1)%6]
		mids[i] = Position{
			X: (corners[i].X + next.X) / 2,
			Y: (corners[i].Y + next.Y) / 2,
		}
	}
	return mids
}

// PositionDistance returns the euclidean distance between two positions.
func PositionDistance(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// SamePosition reports whether two positions are the same point up to
// floating-point drift.
func SamePosition(a, b Position) bool {
	return PositionDistance(a, b) < Epsilon
}

// PositionKey returns the canonical string key for a position. Corners
// shared by adjacent hexes are computed independently per hex from
// trigonometry; rounding to two decimals collapses the drift so both
// computations land on the same key.
func PositionKey(p Position) string {
	return fmt.Sprintf("%s,%s", roundCoord(p.X), roundCoord(p.Y))
}

func roundCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}

// parseLocalID splits a hex-relative identifier "q:r:i" with i in [0,6).
func parseLocalID(id string) (AxialCoord, int, error) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 {
		return AxialCoord{}, 0, fmt.Errorf("invalid identifier %q", id)
	}
	q, err := strconv.Atoi(parts[0])
	if err != nil {
		return AxialCoord{}, 0, fmt.Errorf("invalid identifier %q", id)
	}
	r, err := strconv.Atoi(parts[1])
	if err != nil {
		return AxialCoord{}, 0, fmt.Errorf("invalid identifier %q", id)
	}
	i, err := strconv.Atoi(parts[2])
	if err != nil || i < 0 || i > 5 {
		return AxialCoord{}, 0, fmt.Errorf("invalid identifier %q", id)
	}
	return AxialCoord{Q: q, R: r}, i, nil
}

// VertexID builds the hex-relative vertex identifier "q:r:corner".
func VertexID(c AxialCoord, corner int) string {
	return fmt.Sprintf("%d:%d:%d", c.Q, c.R, corner)
}

// EdgeID builds the hex-relative edge identifier "q:r:edge".
func EdgeID(c AxialCoord, edge int) string {
	return fmt.Sprintf("%d:%d:%d", c.Q, c.R, edge)
}

// VertexPosition resolves a vertex identifier "q:r:corner" to its pixel
// position.
func VertexPosition(vertexID string) (Position, error) {
	c, corner, err := parseLocalID(vertexID)
	if err != nil {
		return Position{}, err
	}
	return HexCornerPositions(c)[corner], nil
}

// VertexKey resolves a vertex identifier to its shared position key. Two
// hex-relative identifiers naming the same geometric corner resolve to
// the same key.
func VertexKey(vertexID string) (string, error) {
	pos, err := VertexPosition(vertexID)
	if err != nil {
		return "", err
	}
	return PositionKey(pos), nil
}

// EdgeEndpointKeys resolves an edge identifier to the position keys of
// its two endpoints. Both identifier forms are accepted: the
// hex-relative "q:r:edge" and the explicit "vertexKeyA|vertexKeyB".
func EdgeEndpointKeys(edgeID string) (string, string, error) {
	if strings.Contains(edgeID, "|") {
		parts := strings.SplitN(edgeID, "|", 2)
		if parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid edge identifier %q", edgeID)
		}
		return parts[0], parts[1], nil
	}
	c, edge, err := parseLocalID(edgeID)
	if err != nil {
		return "", "", err
	}
	corners := HexCornerPositions(c)
	return PositionKey(corners[edge]), PositionKey(corners[(edge+1)%6]), nil
}

// EdgeKeyFromVertexKeys builds the canonical edge key from two vertex
// keys, ordering them so both hexes sharing the edge produce the same
// key.
func EdgeKeyFromVertexKeys(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// EdgeKey resolves an edge identifier to its canonical shared key.
func EdgeKey(edgeID string) (string, error) {
	a, b, err := EdgeEndpointKeys(edgeID)
	if err != nil {
		return "", err
	}
	return EdgeKeyFromVertexKeys(a, b), nil
}

// EdgeMidpointPosition resolves a hex-relative edge identifier to the
// midpoint of the edge.
func EdgeMidpointPosition(edgeID string) (Position, error) {
	c, edge, err := parseLocalID(edgeID)
	if err != nil {
		return Position{}, err
	}
	return EdgeMidpoints(c)[edge], nil
}
