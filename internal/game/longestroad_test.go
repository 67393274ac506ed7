package game

import "testing"

func roadsFor(playerID string, edges ...string) map[string]string {
	roads := make(map[string]string, len(edges))
	for _, e := range edges {
		roads[e] = playerID
	}
	return roads
}

func TestCalculatePlayerLongestRoad_SimpleChain(t *testing.T) {
	// Five edges forming one path across two hexes.
	roads := roadsFor("p1", "0:0:0", "1:0:2", "1:0:1", "1:0:0", "1:0:5")
	if got := CalculatePlayerLongestRoad(roads, nil, "p1"); got != 5 {
		t.Errorf("chain of 5 scored %d", got)
	}
}

func TestCalculatePlayerLongestRoad_ForkTakesLongerBranch(t *testing.T) {
	// Three branches of length 1, 1 and 2 meet at one vertex; the best
	// trail joins the two longest.
	roads := roadsFor("p1", "0:0:0", "1:0:2", "1:0:1", "0:0:1")
	if got := CalculatePlayerLongestRoad(roads, nil, "p1"); got != 3 {
		t.Errorf("fork scored %d, want 3", got)
	}
}

func TestCalculatePlayerLongestRoad_LoopScoresFullLength(t *testing.T) {
	roads := roadsFor("p1", "0:0:0", "0:0:1", "0:0:2", "0:0:3", "0:0:4", "0:0:5")
	if got := CalculatePlayerLongestRoad(roads, nil, "p1"); got != 6 {
		t.Errorf("loop of 6 scored %d", got)
	}
}

func TestCalculatePlayerLongestRoad_LoopWithTail(t *testing.T) {
	roads := roadsFor("p1", "0:0:0", "0:0:1", "0:0:2", "0:0:3", "0:0:4", "0:0:5",
		"1:0:2")
	if got := CalculatePlayerLongestRoad(roads, nil, "p1"); got != 7 {
		t.Errorf("loop with one tail scored %d, want 7", got)
	}
}

func TestCalculatePlayerLongestRoad_LoopWithTwoTails(t *testing.T) {
	// Tails leave the loop at two different vertices, so only one tail
	// and at most the long way around can be combined.
	roads := roadsFor("p1", "0:0:0", "0:0:1", "0:0:2", "0:0:3", "0:0:4", "0:0:5",
		"1:0:2", "0:1:3")
	if got := CalculatePlayerLongestRoad(roads, nil, "p1"); got != 7 {
		t.Errorf("loop with two tails scored %d, want 7", got)
	}
}

func TestCalculatePlayerLongestRoad_OpponentSettlementSplits(t *testing.T) {
	roads := roadsFor("p1", "0:0:0", "1:0:2", "1:0:1", "1:0:0")

	// An opponent settlement in the middle of the chain: the edges into
	// it still count, but the path cannot pass through.
	settlements := map[string]string{"1:0:2": "p2"}
	if got := CalculatePlayerLongestRoad(roads, settlements, "p1"); got != 2 {
		t.Errorf("split chain scored %d, want 2", got)
	}
}

func TestCalculatePlayerLongestRoad_OwnSettlementHarmless(t *testing.T) {
	roads := roadsFor("p1", "0:0:0", "1:0:2", "1:0:1", "1:0:0")
	settlements := map[string]string{"1:0:2": "p1"}
	if got := CalculatePlayerLongestRoad(roads, settlements, "p1"); got != 4 {
		t.Errorf("chain through own settlement scored %d, want 4", got)
	}
}

func TestCalculatePlayerLongestRoad_IgnoresOtherPlayersRoads(t *testing.T) {
	roads := roadsFor("p1", "0:0:0", "1:0:2")
	roads["1:0:1"] = "p2"
	roads["1:0:0"] = "p2"
	if got := CalculatePlayerLongestRoad(roads, nil, "p1"); got != 2 {
		t.Errorf("expected only p1's edges to count, got %d", got)
	}
}

func TestCalculatePlayerLongestRoad_NoRoads(t *testing.T) {
	if got := CalculatePlayerLongestRoad(nil, nil, "p1"); got != 0 {
		t.Errorf("empty subgraph scored %d", got)
	}
}
