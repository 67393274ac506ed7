package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewDevDeck_Composition(t *testing.T) {
	deck := NewDevDeck(rand.New(rand.NewSource(1)))
	if len(deck) != 25 {
		t.Fatalf("deck has %d cards, want 25", len(deck))
	}
	counts := make(map[DevCardType]int)
	for _, c := range deck {
		counts[c]++
	}
	want := map[DevCardType]int{
		DevKnight:       14,
		DevVictoryPoint: 5,
		DevRoadBuilding: 2,
		DevYearOfPlenty: 2,
		DevMonopoly:     2,
	}
	for card, n := range want {
		if counts[card] != n {
			t.Errorf("deck holds %d %s, want %d", counts[card], card, n)
		}
	}
}

func TestBuyDevCard(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	g.DevDeck = []DevCardType{DevKnight, DevVictoryPoint}
	g.DevDeckIndex = 0

	if _, err := g.BuyDevCard("p1"); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected buying without resources to fail, got %v", err)
	}

	give(p1, ResourceOre, 1)
	give(p1, ResourceSheep, 1)
	give(p1, ResourceWheat, 1)
	card, err := g.BuyDevCard("p1")
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if card != DevKnight {
		t.Errorf("expected the top card (knight), got %s", card)
	}
	if p1.Hand.Total() != 0 {
		t.Errorf("expected the card cost to be spent, hand: %+v", p1.Hand)
	}
	if len(p1.DevCards) != 1 || p1.DevCards[0].PurchasedOnTurn != g.TurnNumber {
		t.Errorf("expected the purchase turn to be recorded, got %+v", p1.DevCards)
	}

	// A victory point card scores immediately from the hand.
	give(p1, ResourceOre, 1)
	give(p1, ResourceSheep, 1)
	give(p1, ResourceWheat, 1)
	if _, err := g.BuyDevCard("p1"); err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if p1.VictoryPoints != 1 {
		t.Errorf("expected 1 point from the victory card, got %d", p1.VictoryPoints)
	}

	// Deck exhausted.
	give(p1, ResourceOre, 1)
	give(p1, ResourceSheep, 1)
	give(p1, ResourceWheat, 1)
	if _, err := g.BuyDevCard("p1"); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected an empty deck to fail, got %v", err)
	}
}

func TestCanPlayDevCard_Restrictions(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	p1.DevCards = []OwnedDevCard{{Type: DevKnight, PurchasedOnTurn: g.TurnNumber}}

	res, err := g.CanPlayDevCard("p1", DevKnight)
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected a card bought this turn to be unplayable")
	}

	g.TurnNumber++
	res, err = g.CanPlayDevCard("p1", DevKnight)
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected the card to be playable next turn, got %q", res.Error)
	}

	p1.PlayedDevCardThisTurn = true
	res, err = g.CanPlayDevCard("p1", DevKnight)
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected only one development card per turn")
	}

	p1.PlayedDevCardThisTurn = false
	p1.DevCards = append(p1.DevCards, OwnedDevCard{Type: DevVictoryPoint, PurchasedOnTurn: 0})
	res, err = g.CanPlayDevCard("p1", DevVictoryPoint)
	if err != nil {
		t.Fatalf("unexpected protocol error: %v", err)
	}
	if res.Valid {
		t.Error("expected victory point cards to be unplayable")
	}
}

func TestPlayKnight_MovesRobber(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	p1.DevCards = []OwnedDevCard{{Type: DevKnight, PurchasedOnTurn: 0}}

	if err := g.PlayKnight("p1", "1:0"); err != nil {
		t.Fatalf("knight failed: %v", err)
	}
	if !g.Board.HexHasRobber("1:0") {
		t.Error("expected the robber on 1:0")
	}
	if len(p1.DevCards) != 0 || !p1.PlayedDevCardThisTurn {
		t.Error("expected the knight to be consumed")
	}
}

func TestPlayRoadBuilding_GrantsTwoFreeRoads(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	p1.Settlements = append(p1.Settlements, "0:0:2")
	p1.DevCards = []OwnedDevCard{{Type: DevRoadBuilding, PurchasedOnTurn: 0}}

	if err := g.PlayRoadBuilding("p1"); err != nil {
		t.Fatalf("road building failed: %v", err)
	}
	if g.FreeRoads != 2 {
		t.Fatalf("expected 2 free roads, got %d", g.FreeRoads)
	}

	if err := g.PlaceRoad("p1", "0:0:1"); err != nil {
		t.Fatalf("first free road failed: %v", err)
	}
	if err := g.PlaceRoad("p1", "0:0:2"); err != nil {
		t.Fatalf("second free road failed: %v", err)
	}
	if g.FreeRoads != 0 {
		t.Errorf("expected the free roads to be used up, got %d", g.FreeRoads)
	}
	if err := g.PlaceRoad("p1", "0:0:3"); !errors.Is(err, ErrRuleViolation) {
		t.Errorf("expected a third road to need resources, got %v", err)
	}
}

func TestPlayYearOfPlenty(t *testing.T) {
	g := gameplayGame(2)
	p1 := g.Players["p1"]
	p1.DevCards = []OwnedDevCard{{Type: DevYearOfPlenty, PurchasedOnTurn: 0}}

	if err := g.PlayYearOfPlenty("p1", ResourceOre, ResourceOre); err != nil {
		t.Fatalf("year of plenty failed: %v", err)
	}
	if p1.Hand.Ore != 2 {
		t.Errorf("expected 2 ore, got %d", p1.Hand.Ore)
	}
}

func TestPlayMonopoly_TakesFromEveryone(t *testing.T) {
	g := gameplayGame(3)
	p1 := g.Players["p1"]
	p1.DevCards = []OwnedDevCard{{Type: DevMonopoly, PurchasedOnTurn: 0}}
	give(g.Players["p2"], ResourceWheat, 3)
	give(g.Players["p3"], ResourceWheat, 1)
	give(g.Players["p3"], ResourceOre, 2)

	taken, err := g.PlayMonopoly("p1", ResourceWheat)
	if err != nil {
		t.Fatalf("monopoly failed: %v", err)
	}
	if taken != 4 {
		t.Errorf("expected to take 4 wheat, got %d", taken)
	}
	if p1.Hand.Wheat != 4 {
		t.Errorf("expected 4 wheat in hand, got %d", p1.Hand.Wheat)
	}
	if g.Players["p2"].Hand.Wheat != 0 || g.Players["p3"].Hand.Wheat != 0 {
		t.Error("expected all wheat to be surrendered")
	}
	if g.Players["p3"].Hand.Ore != 2 {
		t.Error("expected other resources to be untouched")
	}
}
