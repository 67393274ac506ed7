package game

import (
	"errors"
	"testing"
)

func TestMustDiscard_Threshold(t *testing.T) {
	p := NewPlayer("p1", "p1", ColorRed)
	give(p, ResourceWood, 7)
	if MustDiscard(p) {
		t.Error("expected 7 cards to be safe")
	}
	give(p, ResourceBrick, 1)
	if !MustDiscard(p) {
		t.Error("expected 8 cards to force a discard")
	}
	if DiscardTarget(p) != 4 {
		t.Errorf("expected a target of 4 for 8 cards, got %d", DiscardTarget(p))
	}
	give(p, ResourceOre, 1)
	if DiscardTarget(p) != 4 {
		t.Errorf("expected 9 cards to round down to 4, got %d", DiscardTarget(p))
	}
}

func TestValidateDiscard_ExactTarget(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	give(p1, ResourceWood, 5)
	give(p1, ResourceBrick, 3)
	g.PendingDiscards = map[string]int{"p1": 4}

	res, err := g.ValidateDiscard("p1", map[ResourceType]int{ResourceWood: 3})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected a short discard to be rejected")
	}

	res, err = g.ValidateDiscard("p1", map[ResourceType]int{ResourceBrick: 4})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected discarding more brick than held to be rejected")
	}

	if err := g.ExecuteDiscard("p1", map[ResourceType]int{ResourceWood: 2, ResourceBrick: 2}); err != nil {
		t.Fatalf("discard failed: %v", err)
	}
	if p1.Hand.Wood != 3 || p1.Hand.Brick != 1 {
		t.Errorf("hand after discard: %+v", p1.Hand)
	}
	if g.PendingDiscards != nil {
		t.Error("expected the discard queue to clear")
	}
}

func TestValidateDiscard_NotOwed(t *testing.T) {
	g := gameplayGame(2)
	res, err := g.ValidateDiscard("p1", map[ResourceType]int{})
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected a discard with nothing owed to be rejected")
	}
}

func TestMoveRobber(t *testing.T) {
	g := gameplayGame(2)

	if err := g.MoveRobber("p1", "1:0"); err != nil {
		t.Fatalf("robber move failed: %v", err)
	}
	if !g.Board.HexHasRobber("1:0") {
		t.Error("expected the robber on 1:0")
	}
	if g.Board.HexHasRobber("-1:0") {
		t.Error("expected the robber to leave the desert")
	}

	if err := g.MoveRobber("p1", "9:9"); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected a rule violation for an unknown hex, got %v", err)
	}
	if err := g.MoveRobber("p2", "0:0"); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestStealCandidates_AdjacentWithCards(t *testing.T) {
	g := gameplayGame(3)
	p2 := g.Players["p2"]
	p3 := g.Players["p3"]

	// p2 and p3 both border the forest, but p3 has no cards.
	p2.Settlements = append(p2.Settlements, "0:0:1")
	p3.Cities = append(p3.Cities, "0:0:4")
	give(p2, ResourceSheep, 1)

	candidates, err := g.StealCandidates("p1", "0:0")
	if err != nil {
		t.Fatalf("steal candidates failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0] != "p2" {
		t.Errorf("expected only p2 as a candidate, got %v", candidates)
	}
}

func TestExecuteSteal_MovesOneCard(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	p2 := g.Players["p2"]
	give(p2, ResourceBrick, 3)

	stolen, err := g.ExecuteSteal("p1", "p2")
	if err != nil {
		t.Fatalf("steal failed: %v", err)
	}
	if stolen != ResourceBrick {
		t.Errorf("expected brick from a brick-only hand, got %s", stolen)
	}
	if p1.Hand.Brick != 1 || p2.Hand.Brick != 2 {
		t.Errorf("expected one brick to move, hands: %+v / %+v", p1.Hand, p2.Hand)
	}

	p2.Hand = NewHand()
	if _, err := g.ExecuteSteal("p1", "p2"); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected a rule violation stealing from an empty hand, got %v", err)
	}
}

func TestExecuteSteal_OnlyCurrentPlayerInGameplay(t *testing.T) {
	g := gameplayGame(2)
	g.TurnPhase = TurnRoll
	give(g.Players["p1"], ResourceOre, 1)

	if _, err := g.ExecuteSteal("p2", "p1"); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("expected ErrNotYourTurn, got %v", err)
	}
	if g.Players["p1"].Hand.Ore != 1 || g.Players["p2"].Hand.Ore != 0 {
		t.Error("expected no card to move on a rejected steal")
	}

	draft := newTestGame(2)
	give(draft.Players["p2"], ResourceWood, 1)
	if _, err := draft.ExecuteSteal("p1", "p2"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction during the draft, got %v", err)
	}
}
