package game

import (
	"errors"
	"testing"

	"hexfield/pkg/board"
)

func TestProposeTrade_Validation(t *testing.T) {
	g := gameplayGame(3)
	give(g.Players["p1"], ResourceWood, 2)

	if _, err := g.ValidateProposeTrade("p2", wood(1), brick(1)); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("expected ErrNotYourTurn, got %v", err)
	}

	res, err := g.ValidateProposeTrade("p1", nil, brick(1))
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected an empty offer to be rejected")
	}

	res, err = g.ValidateProposeTrade("p1", wood(3), brick(1))
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected offering more wood than held to be rejected")
	}

	res, err = g.ValidateProposeTrade("p1", wood(2), brick(1))
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected a covered offer to be legal, got %q", res.Error)
	}
}

func TestTrade_FullFlow(t *testing.T) {
	g := gameplayGame(3)
	p1 := g.Players["p1"]
	p2 := g.Players["p2"]
	give(p1, ResourceWood, 2)
	give(p2, ResourceBrick, 1)

	if err := g.ProposeTrade("p1", wood(2), brick(1)); err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if g.ActiveTrade == nil || g.ActiveTrade.Responses["p2"] != TradePending {
		t.Fatal("expected p2 to be awaiting a response")
	}

	if err := g.RespondToTrade("p2", true); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := g.RespondToTrade("p3", false); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if err := g.RespondToTrade("p3", true); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected a second response to be rejected, got %v", err)
	}

	// p3 declined and cannot be chosen.
	if err := g.ExecuteTrade("p1", "p3"); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected choosing a decliner to fail, got %v", err)
	}

	if err := g.ExecuteTrade("p1", "p2"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if p1.Hand.Wood != 0 || p1.Hand.Brick != 1 {
		t.Errorf("proposer hand after trade: %+v", p1.Hand)
	}
	if p2.Hand.Wood != 2 || p2.Hand.Brick != 0 {
		t.Errorf("partner hand after trade: %+v", p2.Hand)
	}
	if g.ActiveTrade != nil {
		t.Error("expected the offer to close after execution")
	}
}

func TestExecuteTrade_PartnerSpentTheCards(t *testing.T) {
	g := gameplayGame(2)
	p2 := g.Players["p2"]
	give(g.Players["p1"], ResourceWood, 1)
	give(p2, ResourceBrick, 1)

	if err := g.ProposeTrade("p1", wood(1), brick(1)); err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if err := g.RespondToTrade("p2", true); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	// The brick leaves p2's hand between acceptance and execution.
	p2.Hand.Remove(ResourceBrick, 1)
	if err := g.ExecuteTrade("p1", "p2"); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected execution to fail once the partner cannot pay, got %v", err)
	}
}

func TestCancelTrade(t *testing.T) {
	g := gameplayGame(2)
	give(g.Players["p1"], ResourceWood, 1)

	if err := g.ProposeTrade("p1", wood(1), brick(1)); err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if err := g.CancelTrade("p2"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected only the proposer to cancel, got %v", err)
	}
	if err := g.CancelTrade("p1"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if g.ActiveTrade != nil {
		t.Error("expected the offer to be withdrawn")
	}
}

func TestBankTradeRate_Ports(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]

	if rate := g.BankTradeRate("p1", ResourceWood); rate != 4 {
		t.Errorf("expected the default 4:1 rate, got %d", rate)
	}

	// A settlement on one endpoint of the port edge grants the rate.
	g.Board.Ports = []board.Port{{Position: "0:0:1", Type: board.PortGeneric}}
	p1.Settlements = append(p1.Settlements, "0:0:2")
	if rate := g.BankTradeRate("p1", ResourceWood); rate != 3 {
		t.Errorf("expected 3:1 via the generic port, got %d", rate)
	}

	g.Board.Ports = append(g.Board.Ports, board.Port{Position: "0:0:2", Type: board.PortWood})
	if rate := g.BankTradeRate("p1", ResourceWood); rate != 2 {
		t.Errorf("expected 2:1 via the wood port, got %d", rate)
	}
	if rate := g.BankTradeRate("p1", ResourceBrick); rate != 3 {
		t.Errorf("expected the wood port not to help brick, got %d", rate)
	}
}

func TestBankTrade_ExactRatio(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	give(p1, ResourceWood, 4)

	res, err := g.ValidateBankTrade("p1", ResourceWood, 3, ResourceBrick, 1)
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected 3:1 without a port to be rejected")
	}

	res, err = g.ValidateBankTrade("p1", ResourceWood, 4, ResourceWood, 1)
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected trading wood for wood to be rejected")
	}

	if err := g.ExecuteBankTrade("p1", ResourceWood, 4, ResourceBrick, 1); err != nil {
		t.Fatalf("bank trade failed: %v", err)
	}
	if p1.Hand.Wood != 0 || p1.Hand.Brick != 1 {
		t.Errorf("hand after bank trade: %+v", p1.Hand)
	}
}

func wood(n int) map[ResourceType]int  { return map[ResourceType]int{ResourceWood: n} }
func brick(n int) map[ResourceType]int { return map[ResourceType]int{ResourceBrick: n} }
