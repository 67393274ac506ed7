package game

import "hexfield/pkg/board"

// Grant reports resources produced for one player by one dice roll,
// aggregated across all qualifying hexes.
type Grant struct {
	PlayerID string       `json:"playerId"`
	Resource ResourceType `json:"resource"`
	Amount   int          `json:"amount"`
}

// DistributeResources grants production for a dice roll: every
// non-desert hex with a matching number token and no robber produces
// one card per adjacent settlement and two per adjacent city. Player
// ledgers are mutated incrementally; the returned grants aggregate
// multiple hexes into one entry per player and resource.
func (g *GameState) DistributeResources(roll int) []Grant {
	totals := make(map[string]map[ResourceType]int)

	for _, tile := range g.Board.Tiles {
		if tile.Number != roll {
			continue
		}
		res, ok := ResourceForTerrain(tile.Terrain)
		if !ok {
			continue
		}
		if g.Board.HexHasRobber(tile.Coord.Key()) {
			continue
		}

		corners := make(map[string]bool, 6)
		for _, key := range board.HexCornerKeys(tile.Coord) {
			corners[key] = true
		}

		for _, id := range g.PlayerOrder {
			p := g.Players[id]
			amount := 0
			for _, v := range p.Settlements {
				if key, err := board.VertexKey(v); err == nil && corners[key] {
					amount++
				}
			}
			for _, v := range p.Cities {
				if key, err := board.VertexKey(v); err == nil && corners[key] {
					amount += 2
				}
			}
			if amount == 0 {
				continue
			}

			p.Hand.Add(res, amount)
			if totals[id] == nil {
				totals[id] = make(map[ResourceType]int)
			}
			totals[id][res] += amount
		}
	}

	grants := make([]Grant, 0)
	for _, id := range g.PlayerOrder {
		for _, res := range AllResources() {
			if amount := totals[id][res]; amount > 0 {
				grants = append(grants, Grant{PlayerID: id, Resource: res, Amount: amount})
			}
		}
	}
	return grants
}
