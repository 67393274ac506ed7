package game

import (
	"fmt"

	"hexfield/pkg/board"
)

// Result reports the outcome of a rule-legality check. Invalid results
// carry a human-readable reason that is relayed to the client unchanged.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func okResult() Result {
	return Result{Valid: true}
}

func ruleError(reason string) Result {
	return Result{Valid: false, Error: reason}
}

// DraftStep is what the initial placement draft expects next.
type DraftStep string

const (
	StepSettlement DraftStep = "settlement"
	StepRoad       DraftStep = "road"
)

// DraftPosition resolves a zero-based placement counter to the player
// index and step of the snake draft: each visit is one settlement then
// one road, round one goes forward through the players, round two in
// reverse.
func DraftPosition(t, n int) (int, DraftStep) {
	step := StepSettlement
	if t%2 == 1 {
		step = StepRoad
	}
	visit := t / 2
	if visit < n {
		return visit, step
	}
	return n - 1 - (visit - n), step
}

// ValidateSettlementPlacement checks settlement legality: the vertex
// must be unoccupied and farther than one edge length from every
// occupied vertex; outside the draft it must also connect to one of the
// player's roads and be affordable.
func (g *GameState) ValidateSettlementPlacement(playerID, vertexID string) (Result, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return Result{}, err
	}
	if g.Phase == PhaseGameOver {
		return Result{}, ErrGameOver
	}
	if g.CurrentPlayerID != playerID {
		return Result{}, ErrNotYourTurn
	}
	if g.Phase == PhaseInitialPlacement {
		if _, step := DraftPosition(g.PlacementTurn, len(g.PlayerOrder)); step != StepSettlement {
			return Result{}, ErrInvalidAction
		}
	} else if g.TurnPhase != TurnMain {
		return Result{}, ErrInvalidAction
	}

	pos, err := board.VertexPosition(vertexID)
	if err != nil {
		return ruleError("invalid vertex identifier"), nil
	}
	key := board.PositionKey(pos)

	if _, taken := g.occupiedVertexKeys()[key]; taken {
		return ruleError("vertex is already occupied"), nil
	}

	for _, other := range g.occupiedVertexIDs() {
		otherPos, err := board.VertexPosition(other)
		if err != nil {
			continue
		}
		if board.PositionDistance(pos, otherPos) < board.EdgeLength+board.Epsilon {
			return ruleError("too close to another settlement"), nil
		}
	}

	if g.Phase == PhaseGameplay {
		connected := false
		for _, e := range p.Roads {
			a, b, err := board.EdgeEndpointKeys(e)
			if err != nil {
				continue
			}
			if a == key || b == key {
				connected = true
				break
			}
		}
		if !connected {
			return ruleError("settlement must connect to one of your roads"), nil
		}
		if !p.Hand.CanAfford(CostSettlement) {
			return ruleError("insufficient resources"), nil
		}
	}

	return okResult(), nil
}

// ValidateRoadPlacement checks road legality: the edge must be free;
// during the draft the road must touch the settlement just placed,
// otherwise it must touch one of the player's settlements, cities, or
// existing roads, and be affordable.
func (g *GameState) ValidateRoadPlacement(playerID, edgeID string) (Result, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return Result{}, err
	}
	if g.Phase == PhaseGameOver {
		return Result{}, ErrGameOver
	}
	if g.CurrentPlayerID != playerID {
		return Result{}, ErrNotYourTurn
	}
	if g.Phase == PhaseInitialPlacement {
		if _, step := DraftPosition(g.PlacementTurn, len(g.PlayerOrder)); step != StepRoad {
			return Result{}, ErrInvalidAction
		}
	} else if g.TurnPhase != TurnMain {
		return Result{}, ErrInvalidAction
	}

	key, err := board.EdgeKey(edgeID)
	if err != nil {
		return ruleError("invalid edge identifier"), nil
	}
	if _, taken := g.roadEdgeKeys()[key]; taken {
		return ruleError("edge already holds a road"), nil
	}

	a, b, err := board.EdgeEndpointKeys(edgeID)
	if err != nil {
		return ruleError("invalid edge identifier"), nil
	}

	if g.Phase == PhaseInitialPlacement {
		anchor, err := board.VertexKey(g.PendingSettlement)
		if err != nil {
			return ruleError("place a settlement first"), nil
		}
		if a != anchor && b != anchor {
			return ruleError("road must connect to your new settlement"), nil
		}
		return okResult(), nil
	}

	connected := false
	own := p.playerVertexKeys()
	if own[a] || own[b] {
		connected = true
	}
	if !connected {
		for _, e := range p.Roads {
			ra, rb, err := board.EdgeEndpointKeys(e)
			if err != nil {
				continue
			}
			if ra == a || ra == b || rb == a || rb == b {
				connected = true
				break
			}
		}
	}
	if !connected {
		return ruleError("road must connect to your network"), nil
	}

	if g.FreeRoads == 0 && !p.Hand.CanAfford(CostRoad) {
		return ruleError("insufficient resources"), nil
	}

	return okResult(), nil
}

// ValidateCityUpgrade checks that the vertex holds the player's own
// settlement and that the upgrade is affordable.
func (g *GameState) ValidateCityUpgrade(playerID, vertexID string) (Result, error) {
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
	if g.TurnPhase != TurnMain {
		return Result{}, ErrInvalidAction
	}

	key, err := board.VertexKey(vertexID)
	if err != nil {
		return ruleError("invalid vertex identifier"), nil
	}
	if g.settlementIndex(p, key) < 0 {
		return ruleError("no settlement of yours on this vertex"), nil
	}
	if !p.Hand.CanAfford(CostCity) {
		return ruleError("insufficient resources"), nil
	}
	return okResult(), nil
}

// settlementIndex finds the player's settlement occupying the given
// vertex key, or -1.
func (g *GameState) settlementIndex(p *Player, key string) int {
	for i, v := range p.Settlements {
		if k, err := board.VertexKey(v); err == nil && k == key {
			return i
		}
	}
	return -1
}

// PlaceSettlement validates and applies a settlement placement.
func (g *GameState) PlaceSettlement(playerID, vertexID string) error {
	res, err := g.ValidateSettlementPlacement(playerID, vertexID)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	p := g.Players[playerID]
	if g.Phase == PhaseGameplay {
		p.Hand.Spend(CostSettlement)
	}
	p.Settlements = append(p.Settlements, vertexID)

	if g.Phase == PhaseInitialPlacement {
		g.PendingSettlement = vertexID
		if g.PlacementTurn/2 >= len(g.PlayerOrder) {
			g.grantStartingResources(p, vertexID)
		}
		g.advanceDraft()
	}

	g.updateLongestRoad() // a new settlement can split an opponent's road
	g.RecalculateVictoryPoints()
	g.checkVictory()
	return nil
}

// grantStartingResources gives one card per adjacent producing hex for
// the second-round draft settlement.
func (g *GameState) grantStartingResources(p *Player, vertexID string) {
	key, err := board.VertexKey(vertexID)
	if err != nil {
		return
	}
	for _, tile := range g.Board.Tiles {
		res, ok := ResourceForTerrain(tile.Terrain)
		if !ok {
			continue
		}
		for _, corner := range board.HexCornerKeys(tile.Coord) {
			if corner == key {
				p.Hand.Add(res, 1)
				break
			}
		}
	}
}

// PlaceRoad validates and applies a road placement.
func (g *GameState) PlaceRoad(playerID, edgeID string) error {
	res, err := g.ValidateRoadPlacement(playerID, edgeID)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	p := g.Players[playerID]
	if g.Phase == PhaseGameplay {
		if g.FreeRoads > 0 {
			g.FreeRoads--
		} else {
			p.Hand.Spend(CostRoad)
		}
	}
	p.Roads = append(p.Roads, edgeID)

	if g.Phase == PhaseInitialPlacement {
		g.advanceDraft()
	}

	g.updateLongestRoad()
	g.RecalculateVictoryPoints()
	g.checkVictory()
	return nil
}

// PlaceCity validates and applies a settlement-to-city upgrade.
func (g *GameState) PlaceCity(playerID, vertexID string) error {
	res, err := g.ValidateCityUpgrade(playerID, vertexID)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	p := g.Players[playerID]
	key, _ := board.VertexKey(vertexID)
	i := g.settlementIndex(p, key)
	p.Settlements = append(p.Settlements[:i], p.Settlements[i+1:]...)
	p.Cities = append(p.Cities, vertexID)
	p.Hand.Spend(CostCity)

	g.RecalculateVictoryPoints()
	g.checkVictory()
	return nil
}

// advanceDraft moves the snake draft forward one placement. After 4n
// individual placements the game enters the gameplay phase with the
// first player in table order.
func (g *GameState) advanceDraft() {
	n := len(g.PlayerOrder)
	g.PlacementTurn++

	if _, step := DraftPosition(g.PlacementTurn, n); step == StepSettlement {
		g.PendingSettlement = ""
	}

	if g.PlacementTurn >= 4*n {
		g.Phase = PhaseGameplay
		g.TurnPhase = TurnRoll
		g.TurnNumber = 1
		g.CurrentPlayerID = g.PlayerOrder[0]
		g.PendingSettlement = ""
		for _, p := range g.Players {
			p.ResetTurn()
		}
		return
	}

	idx, _ := DraftPosition(g.PlacementTurn, n)
	g.CurrentPlayerID = g.PlayerOrder[idx]
}
