// Package game contains the core rules engine: placement legality, the
// turn/phase state machine, resource production, the robber subsystem,
// trading, development cards, and longest-road scoring. One GameState
// exists per room and is mutated in place; callers must serialize access
// per room.
package game

import (
	"math/rand"
	"time"

	"hexfield/pkg/board"
)

// Phase represents the top-level phase of a game.
type Phase string

const (
	PhaseInitialPlacement Phase = "initial_placement"
	PhaseGameplay         Phase = "gameplay"
	PhaseGameOver         Phase = "game_over"
)

// TurnPhase represents the sub-phase within a gameplay turn.
type TurnPhase string

const (
	TurnRoll TurnPhase = "roll"
	TurnMain TurnPhase = "main"
	TurnEnd  TurnPhase = "end"
)

// VictoryPointTarget ends the game when a player reaches it on their
// own turn.
const VictoryPointTarget = 10

// LongestRoadMinimum is the road count needed to hold the bonus.
const LongestRoadMinimum = 5

// DiceRoll records the two dice of the last roll.
type DiceRoll struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

// Total returns the rolled total.
func (d DiceRoll) Total() int {
	return d.Die1 + d.Die2
}

// GameState represents the complete state of a game room.
type GameState struct {
	RoomID            string             `json:"roomId"`
	Phase             Phase              `json:"phase"`
	TurnPhase         TurnPhase          `json:"turnPhase"`
	CurrentPlayerID   string             `json:"currentPlayer"`
	PlayerOrder       []string           `json:"playerOrder"`
	Players           map[string]*Player `json:"players"`
	Board             *board.Board       `json:"board"`
	PlacementTurn     int                `json:"placementTurn"`
	TurnNumber        int                `json:"turnNumber"`
	LastDiceRoll      *DiceRoll          `json:"lastDiceRoll,omitempty"`
	PendingSettlement string             `json:"pendingSettlement,omitempty"`
	PendingDiscards   map[string]int     `json:"pendingDiscards,omitempty"`
	ActiveTrade       *TradeOffer        `json:"activeTrade,omitempty"`
	DevDeck           []DevCardType      `json:"-"`
	DevDeckIndex      int                `json:"devDeckIndex"`
	FreeRoads         int                `json:"freeRoads,omitempty"`
	LongestRoadHolder string             `json:"longestRoadHolder,omitempty"`
	LongestRoadLength int                `json:"longestRoadLength"`

	rng *rand.Rand
}

// NewGame creates a game in the initial placement phase. The player
// order given is the fixed table order for the whole game. The rng
// shuffles the development deck and drives dice and steals; nil falls
// back to a clock-seeded source.
func NewGame(roomID string, b *board.Board, players []*Player, rng *rand.Rand) *GameState {
	g := &GameState{
		RoomID:      roomID,
		Phase:       PhaseInitialPlacement,
		TurnPhase:   TurnRoll,
		Players:     make(map[string]*Player),
		PlayerOrder: make([]string, len(players)),
		Board:       b,
		rng:         rng,
	}
	for i, p := range players {
		g.Players[p.ID] = p
		g.PlayerOrder[i] = p.ID
	}
	if len(players) > 0 {
		g.CurrentPlayerID = g.PlayerOrder[0]
	}
	g.DevDeck = NewDevDeck(g.rand())
	return g
}

// SetRand injects the random source used for dice, deck order, and
// steal selection. Tests use a seeded source for determinism.
func (g *GameState) SetRand(rng *rand.Rand) {
	g.rng = rng
}

func (g *GameState) rand() *rand.Rand {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g.rng
}

// Player returns the player with the given ID.
func (g *GameState) Player(id string) (*Player, error) {
	p, ok := g.Players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// CurrentPlayer returns the player whose turn it is.
func (g *GameState) CurrentPlayer() *Player {
	return g.Players[g.CurrentPlayerID]
}

// occupiedVertexKeys maps every occupied vertex position key to the
// occupying player's ID, across settlements and cities of all players.
func (g *GameState) occupiedVertexKeys() map[string]string {
	occupied := make(map[string]string)
	for _, p := range g.Players {
		for _, v := range p.Settlements {
			if key, err := board.VertexKey(v); err == nil {
				occupied[key] = p.ID
			}
		}
		for _, v := range p.Cities {
			if key, err := board.VertexKey(v); err == nil {
				occupied[key] = p.ID
			}
		}
	}
	return occupied
}

// occupiedVertexIDs returns every occupied vertex identifier.
func (g *GameState) occupiedVertexIDs() []string {
	ids := make([]string, 0)
	for _, p := range g.Players {
		ids = append(ids, p.Settlements...)
		ids = append(ids, p.Cities...)
	}
	return ids
}

// roadEdgeKeys maps every occupied edge key to the owning player's ID.
func (g *GameState) roadEdgeKeys() map[string]string {
	occupied := make(map[string]string)
	for _, p := range g.Players {
		for _, e := range p.Roads {
			if key, err := board.EdgeKey(e); err == nil {
				occupied[key] = p.ID
			}
		}
	}
	return occupied
}

// playerVertexKeys returns the vertex position keys of one player's
// settlements and cities.
func (p *Player) playerVertexKeys() map[string]bool {
	keys := make(map[string]bool)
	for _, v := range p.Settlements {
		if key, err := board.VertexKey(v); err == nil {
			keys[key] = true
		}
	}
	for _, v := range p.Cities {
		if key, err := board.VertexKey(v); err == nil {
			keys[key] = true
		}
	}
	return keys
}

// RecalculateVictoryPoints recomputes every player's score: one point
// per settlement, two per city, one per victory-point card, plus the
// longest-road bonus.
func (g *GameState) RecalculateVictoryPoints() {
	for _, p := range g.Players {
		points := len(p.Settlements) + 2*len(p.Cities)
		for _, c := range p.DevCards {
			if c.Type == DevVictoryPoint {
				points++
			}
		}
		if g.LongestRoadHolder == p.ID {
			points += 2
		}
		p.VictoryPoints = points
	}
}

// updateLongestRoad recomputes road lengths and reassigns the bonus.
// The incumbent keeps it until someone strictly exceeds their length;
// a holder dropping below the minimum forfeits it, and a tie among
// challengers leaves the bonus unassigned.
func (g *GameState) updateLongestRoad() {
	roads := make(map[string]string)
	settlements := make(map[string]string)
	for _, p := range g.Players {
		for _, e := range p.Roads {
			roads[e] = p.ID
		}
		for _, v := range p.Settlements {
			settlements[v] = p.ID
		}
		for _, v := range p.Cities {
			settlements[v] = p.ID
		}
	}

	lengths := make(map[string]int)
	for id := range g.Players {
		lengths[id] = CalculatePlayerLongestRoad(roads, settlements, id)
	}

	if g.LongestRoadHolder != "" && lengths[g.LongestRoadHolder] < LongestRoadMinimum {
		g.LongestRoadHolder = ""
	}

	incumbent := 0
	if g.LongestRoadHolder != "" {
		incumbent = lengths[g.LongestRoadHolder]
	}

	best, bestLen, tied := "", incumbent, false
	for _, id := range g.PlayerOrder {
		if id == g.LongestRoadHolder {
			continue
		}
		l := lengths[id]
		if l < LongestRoadMinimum || l <= incumbent {
			continue
		}
		if l > bestLen {
			best, bestLen, tied = id, l, false
		} else if l == bestLen {
			tied = true
		}
	}
	if best != "" && !tied {
		g.LongestRoadHolder = best
	} else if best != "" && tied && g.LongestRoadHolder == "" {
		// Tied challengers with no incumbent: nobody takes the bonus.
		g.LongestRoadHolder = ""
	}

	if g.LongestRoadHolder != "" {
		g.LongestRoadLength = lengths[g.LongestRoadHolder]
	} else {
		g.LongestRoadLength = 0
	}
}

// checkVictory moves the game to game_over when the current player has
// reached the victory point target.
func (g *GameState) checkVictory() {
	if p := g.CurrentPlayer(); p != nil && p.VictoryPoints >= VictoryPointTarget {
		g.Phase = PhaseGameOver
	}
}

// IsGameOver reports whether the game has ended.
func (g *GameState) IsGameOver() bool {
	return g.Phase == PhaseGameOver
}

// Winner returns the winning player, or nil if the game is not over.
func (g *GameState) Winner() *Player {
	if !g.IsGameOver() {
		return nil
	}
	for _, p := range g.Players {
		if p.VictoryPoints >= VictoryPointTarget {
			return p
		}
	}
	return nil
}
