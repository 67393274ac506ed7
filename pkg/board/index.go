package board

// VertexIndex maps between hex-relative vertex identifiers and the
// shared position keys they resolve to. The adjacency graph is never
// stored; it is recomputed from geometry through this index.
type VertexIndex struct {
	// KeyByID maps each local identifier "q:r:corner" to its position key.
	KeyByID map[string]string
	// IDsByKey maps a position key to every local identifier that
	// resolves to it (up to three on the interior of the board).
	IDsByKey map[string][]string
	// CanonicalID maps a position key to the first local identifier seen
	// for it in spiral order.
	CanonicalID map[string]string
}

// BuildVertexIndex derives the bidirectional vertex maps for a set of
// hex coordinates.
func BuildVertexIndex(coords []AxialCoord) *VertexIndex {
	idx := &VertexIndex{
		KeyByID:     make(map[string]string),
		IDsByKey:    make(map[string][]string),
		CanonicalID: make(map[string]string),
	}
	for _, c := range coords {
		corners := HexCornerPositions(c)
		for i := 0; i < 6; i++ {
			id := VertexID(c, i)
			key := PositionKey(corners[i])
			idx.KeyByID[id] = key
			idx.IDsByKey[key] = append(idx.IDsByKey[key], id)
			if _, ok := idx.CanonicalID[key]; !ok {
				idx.CanonicalID[key] = id
			}
		}
	}
	return idx
}

// HexCornerKeys returns the six position keys of a hex's corners.
func HexCornerKeys(c AxialCoord) [6]string {
	corners := HexCornerPositions(c)
	var keys [6]string
	for i, p := range corners {
		keys[i] = PositionKey(p)
	}
	return keys
}

// SharedVertexKeysForEdge returns the position keys of the two vertices
// an edge connects. Adjacent hexes naming the same geometric edge get
// the same pair.
func SharedVertexKeysForEdge(edgeID string) (string, string, error) {
	return EdgeEndpointKeys(edgeID)
}

// CoastalEdges returns the hex-relative edge identifiers of every edge
// whose facing neighbor is off the board, in spiral-walk order. Each
// coastal edge belongs to exactly one on-board hex, so no deduplication
// is needed.
func CoastalEdges(coords []AxialCoord) []string {
	onBoard := make(map[AxialCoord]bool, len(coords))
	for _, c := range coords {
		onBoard[c] = true
	}
	edges := make([]string, 0)
	for _, c := range coords {
		for i, n := range c.Neighbors() {
			if !onBoard[n] {
				edges = append(edges, EdgeID(c, i))
			}
		}
	}
	return edges
}
