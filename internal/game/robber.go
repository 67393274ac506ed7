package game

import (
	"fmt"

	"hexfield/pkg/board"
)

// DiscardThreshold is the hand size at which a seven forces a discard.
const DiscardThreshold = 8

// MustDiscard reports whether a player discards on a seven.
func MustDiscard(p *Player) bool {
	return p.Hand.Total() >= DiscardThreshold
}

// DiscardTarget returns how many cards a player must discard: half the
// hand, rounded down.
func DiscardTarget(p *Player) int {
	return p.Hand.Total() / 2
}

// ValidateDiscard checks a proposed discard: the player must owe a
// discard, the amounts must sum exactly to the target, and no amount
// may exceed the held count.
func (g *GameState) ValidateDiscard(playerID string, cards map[ResourceType]int) (Result, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return Result{}, err
	}

	target, owes := g.PendingDiscards[playerID]
	if !owes {
		return ruleError("no discard required"), nil
	}

	total := 0
	for res, amount := range cards {
		if amount < 0 {
			return ruleError("negative discard amount"), nil
		}
		if amount > p.Hand.Get(res) {
			return ruleError(fmt.Sprintf("cannot discard %d %s, only %d held", amount, res, p.Hand.Get(res))), nil
		}
		total += amount
	}
	if total != target {
		return ruleError(fmt.Sprintf("must discard exactly %d cards", target)), nil
	}
	return okResult(), nil
}

// ExecuteDiscard applies a validated discard and clears the obligation.
func (g *GameState) ExecuteDiscard(playerID string, cards map[ResourceType]int) error {
	res, err := g.ValidateDiscard(playerID, cards)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	p := g.Players[playerID]
	for resType, amount := range cards {
		p.Hand.Remove(resType, amount)
	}
	delete(g.PendingDiscards, playerID)
	if len(g.PendingDiscards) == 0 {
		g.PendingDiscards = nil
	}
	return nil
}

// ValidateRobberPlacement checks a robber destination. Any land hex is
// legal, including the hex it currently occupies and the desert.
func (g *GameState) ValidateRobberPlacement(hexID string) Result {
	if g.Board.TileAt(hexID) == nil {
		return ruleError("no such hex")
	}
	return okResult()
}

// MoveRobber moves the robber for the current player.
func (g *GameState) MoveRobber(playerID, hexID string) error {
	if _, err := g.Player(playerID); err != nil {
		return err
	}
	if g.Phase == PhaseGameOver {
		return ErrGameOver
	}
	if g.Phase != PhaseGameplay {
		return ErrInvalidAction
	}
	if g.CurrentPlayerID != playerID {
		return ErrNotYourTurn
	}
	if res := g.ValidateRobberPlacement(hexID); !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}
	g.Board.RobberHex = hexID
	return nil
}

// StealCandidates returns the distinct players other than the thief who
// hold a settlement or city adjacent to the given hex and at least one
// resource card.
func (g *GameState) StealCandidates(thiefID, hexID string) ([]string, error) {
	if _, err := g.Player(thiefID); err != nil {
		return nil, err
	}
	tile := g.Board.TileAt(hexID)
	if tile == nil {
		return nil, fmt.Errorf("%w: no such hex", ErrRuleViolation)
	}

	corners := make(map[string]bool, 6)
	for _, key := range board.HexCornerKeys(tile.Coord) {
		corners[key] = true
	}

	candidates := make([]string, 0)
	for _, id := range g.PlayerOrder {
		if id == thiefID {
			continue
		}
		p := g.Players[id]
		if p.Hand.Total() == 0 {
			continue
		}
		for key := range p.playerVertexKeys() {
			if corners[key] {
				candidates = append(candidates, id)
				break
			}
		}
	}
	return candidates, nil
}

// ExecuteSteal moves one random card from the victim to the thief. The
// card is drawn uniformly from the victim's cards, so the chance of
// each resource type is proportional to how many of it they hold. Only
// the current player may steal.
func (g *GameState) ExecuteSteal(thiefID, victimID string) (ResourceType, error) {
	thief, err := g.Player(thiefID)
	if err != nil {
		return "", err
	}
	victim, err := g.Player(victimID)
	if err != nil {
		return "", err
	}
	if g.Phase == PhaseGameOver {
		return "", ErrGameOver
	}
	if g.Phase != PhaseGameplay {
		return "", ErrInvalidAction
	}
	if g.CurrentPlayerID != thiefID {
		return "", ErrNotYourTurn
	}
	if victim.Hand.Total() == 0 {
		return "", fmt.Errorf("%w: victim has no cards", ErrRuleViolation)
	}

	pool := make([]ResourceType, 0, victim.Hand.Total())
	for _, res := range AllResources() {
		for i := 0; i < victim.Hand.Get(res); i++ {
			pool = append(pool, res)
		}
	}

	stolen := pool[g.rand().Intn(len(pool))]
	victim.Hand.Remove(stolen, 1)
	thief.Hand.Add(stolen, 1)
	return stolen, nil
}
