package game

import "hexfield/pkg/board"

// roadEdge is one road in a player's subgraph, keyed for edge-disjoint
// traversal.
type roadEdge struct {
	key  string
	a, b string // endpoint vertex keys
}

// CalculatePlayerLongestRoad computes the length of a player's longest
// continuous road: the longest simple trail in their road subgraph.
// Edges may be used once per path; vertices may be revisited, so loops
// score their full length. A vertex occupied by an opponent settlement
// or city can terminate a path but not be passed through; the player's
// own settlements never block.
func CalculatePlayerLongestRoad(roads map[string]string, settlements map[string]string, playerID string) int {
	edges := make([]roadEdge, 0)
	adjacency := make(map[string][]int)
	for edgeID, owner := range roads {
		if owner != playerID {
			continue
		}
		key, err := board.EdgeKey(edgeID)
		if err != nil {
			continue
		}
		a, b, err := board.EdgeEndpointKeys(edgeID)
		if err != nil {
			continue
		}
		idx := len(edges)
		edges = append(edges, roadEdge{key: key, a: a, b: b})
		adjacency[a] = append(adjacency[a], idx)
		adjacency[b] = append(adjacency[b], idx)
	}
	if len(edges) == 0 {
		return 0
	}

	blocked := make(map[string]bool)
	for vertexID, owner := range settlements {
		if owner == playerID {
			continue
		}
		if key, err := board.VertexKey(vertexID); err == nil {
			blocked[key] = true
		}
	}

	visited := make([]bool, len(edges))
	var walk func(vertex string) int
	walk = func(vertex string) int {
		best := 0
		for _, idx := range adjacency[vertex] {
			if visited[idx] {
				continue
			}
			visited[idx] = true
			length := 1
			other := edges[idx].a
			if other == vertex {
				other = edges[idx].b
			}
			// The edge into a blocked vertex counts, but the path may
			// not continue through it.
			if !blocked[other] {
				length += walk(other)
			}
			visited[idx] = false
			if length > best {
				best = length
			}
		}
		return best
	}

	best := 0
	for vertex := range adjacency {
		if blocked[vertex] {
			continue
		}
		if length := walk(vertex); length > best {
			best = length
		}
	}
	return best
}
