package game

import (
	"fmt"
	"math/rand"

	"hexfield/pkg/board"
)

// testBoard builds a small fixed board: forest and fields both produce
// on 5, hills on 8, and the desert starts with the robber.
func testBoard() *board.Board {
	tiles := []*board.HexTile{
		{Coord: board.AxialCoord{Q: 0, R: 0}, Terrain: board.TerrainForest, Number: 5},
		{Coord: board.AxialCoord{Q: 1, R: 0}, Terrain: board.TerrainHills, Number: 8},
		{Coord: board.AxialCoord{Q: 0, R: 1}, Terrain: board.TerrainFields, Number: 5},
		{Coord: board.AxialCoord{Q: -1, R: 0}, Terrain: board.TerrainDesert},
	}
	return &board.Board{Tiles: tiles, RobberHex: "-1:0"}
}

// newTestGame creates a game with n players (p1..pn) in the initial
// placement phase, with a seeded random source.
func newTestGame(n int) *GameState {
	players := make([]*Player, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("p%d", i+1)
		players[i] = NewPlayer(id, id, AllColors()[i])
	}
	return NewGame("room1", testBoard(), players, rand.New(rand.NewSource(42)))
}

// gameplayGame creates a game already in the main sub-phase of the
// first player's first gameplay turn, skipping the draft.
func gameplayGame(n int) *GameState {
	g := newTestGame(n)
	g.Phase = PhaseGameplay
	g.TurnPhase = TurnMain
	g.TurnNumber = 1
	return g
}

// give adds resources to a player's hand.
func give(p *Player, res ResourceType, n int) {
	p.Hand.Add(res, n)
}
