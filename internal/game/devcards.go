package game

import (
	"fmt"
	"math/rand"
)

// DevCardType identifies a development card.
type DevCardType string

const (
	DevKnight       DevCardType = "knight"
	DevVictoryPoint DevCardType = "victory_point"
	DevRoadBuilding DevCardType = "road_building"
	DevYearOfPlenty DevCardType = "year_of_plenty"
	DevMonopoly     DevCardType = "monopoly"
)

// OwnedDevCard is a development card in a player's hand. The purchase
// turn gates when it becomes playable.
type OwnedDevCard struct {
	Type            DevCardType `json:"type"`
	PurchasedOnTurn int         `json:"purchasedOnTurn"`
}

// NewDevDeck builds and shuffles the 25-card development deck: 14
// knights, 5 victory points, 2 each of road building, year of plenty
// and monopoly.
func NewDevDeck(rng *rand.Rand) []DevCardType {
	deck := make([]DevCardType, 0, 25)
	add := func(t DevCardType, n int) {
		for i := 0; i < n; i++ {
			deck = append(deck, t)
		}
	}
	add(DevKnight, 14)
	add(DevVictoryPoint, 5)
	add(DevRoadBuilding, 2)
	add(DevYearOfPlenty, 2)
	add(DevMonopoly, 2)

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// CanBuyDevCard checks that the current player may buy a development
// card: main sub-phase, cards left in the deck, and the cost covered.
func (g *GameState) CanBuyDevCard(playerID string) (Result, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return Result{}, err
	}
	if g.Phase == PhaseGameOver {
		return Result{}, ErrGameOver
	}
	if g.Phase != PhaseGameplay || g.TurnPhase != TurnMain {
		return Result{}, ErrInvalidAction
	}
	if g.CurrentPlayerID != playerID {
		return Result{}, ErrNotYourTurn
	}

	if g.DevDeckIndex >= len(g.DevDeck) {
		return ruleError("the development deck is empty"), nil
	}
	if !p.Hand.CanAfford(CostDevCard) {
		return ruleError("insufficient resources for a development card"), nil
	}
	return okResult(), nil
}

// BuyDevCard sells the current player the next card off the shuffled
// deck and records the purchase turn.
func (g *GameState) BuyDevCard(playerID string) (DevCardType, error) {
	res, err := g.CanBuyDevCard(playerID)
	if err != nil {
		return "", err
	}
	if !res.Valid {
		return "", fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	p := g.Players[playerID]
	p.Hand.Spend(CostDevCard)

	card := g.DevDeck[g.DevDeckIndex]
	g.DevDeckIndex++
	p.DevCards = append(p.DevCards, OwnedDevCard{Type: card, PurchasedOnTurn: g.TurnNumber})

	if card == DevVictoryPoint {
		g.RecalculateVictoryPoints()
		g.checkVictory()
	}
	return card, nil
}

// devCardIndex finds the first playable copy of a card type in a
// player's hand, honoring the purchase-turn restriction.
func (g *GameState) devCardIndex(p *Player, cardType DevCardType) int {
	for i, c := range p.DevCards {
		if c.Type == cardType && c.PurchasedOnTurn < g.TurnNumber {
			return i
		}
	}
	return -1
}

// CanPlayDevCard checks whether the current player may play a card of
// the given type now. Victory point cards are never played; they score
// from the hand. Cards bought this turn must wait, and only one
// development card may be played per turn.
func (g *GameState) CanPlayDevCard(playerID string, cardType DevCardType) (Result, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return Result{}, err
	}
	if g.Phase == PhaseGameOver {
		return Result{}, ErrGameOver
	}
	if g.Phase != PhaseGameplay {
		return Result{}, ErrInvalidAction
	}
	if g.CurrentPlayerID != playerID {
		return Result{}, ErrNotYourTurn
	}

	if cardType == DevVictoryPoint {
		return ruleError("victory point cards are not played"), nil
	}
	if p.PlayedDevCardThisTurn {
		return ruleError("already played a development card this turn"), nil
	}
	if g.devCardIndex(p, cardType) < 0 {
		return ruleError(fmt.Sprintf("no playable %s card", cardType)), nil
	}
	return okResult(), nil
}

// removeDevCard consumes one playable copy of a card type and marks the
// player's per-turn play.
func (g *GameState) removeDevCard(p *Player, cardType DevCardType) {
	idx := g.devCardIndex(p, cardType)
	p.DevCards = append(p.DevCards[:idx], p.DevCards[idx+1:]...)
	p.PlayedDevCardThisTurn = true
}

// PlayKnight plays a knight: the robber moves to the chosen hex. Any
// steal from a player adjacent to that hex follows separately.
func (g *GameState) PlayKnight(playerID, hexID string) error {
	res, err := g.CanPlayDevCard(playerID, DevKnight)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}
	if robberRes := g.ValidateRobberPlacement(hexID); !robberRes.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, robberRes.Error)
	}

	g.removeDevCard(g.Players[playerID], DevKnight)
	g.Board.RobberHex = hexID
	return nil
}

// PlayRoadBuilding plays road building: the player's next two road
// placements cost nothing.
func (g *GameState) PlayRoadBuilding(playerID string) error {
	res, err := g.CanPlayDevCard(playerID, DevRoadBuilding)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	g.removeDevCard(g.Players[playerID], DevRoadBuilding)
	g.FreeRoads = 2
	return nil
}

// PlayYearOfPlenty plays year of plenty: the player takes any two
// resource cards from the bank.
func (g *GameState) PlayYearOfPlenty(playerID string, first, second ResourceType) error {
	res, err := g.CanPlayDevCard(playerID, DevYearOfPlenty)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	p := g.Players[playerID]
	g.removeDevCard(p, DevYearOfPlenty)
	p.Hand.Add(first, 1)
	p.Hand.Add(second, 1)
	return nil
}

// PlayMonopoly plays monopoly: every other player surrenders all their
// cards of the named resource to the current player. Returns the total
// taken.
func (g *GameState) PlayMonopoly(playerID string, resource ResourceType) (int, error) {
	res, err := g.CanPlayDevCard(playerID, DevMonopoly)
	if err != nil {
		return 0, err
	}
	if !res.Valid {
		return 0, fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	p := g.Players[playerID]
	g.removeDevCard(p, DevMonopoly)

	taken := 0
	for _, id := range g.PlayerOrder {
		if id == playerID {
			continue
		}
		other := g.Players[id]
		count := other.Hand.Get(resource)
		if count == 0 {
			continue
		}
		other.Hand.Remove(resource, count)
		taken += count
	}
	p.Hand.Add(resource, taken)
	return taken, nil
}
