package game

import "hexfield/pkg/board"

// ResourceType represents a type of resource card.
type ResourceType string

const (
	ResourceWood  ResourceType = "wood"
	ResourceBrick ResourceType = "brick"
	ResourceSheep ResourceType = "sheep"
	ResourceWheat ResourceType = "wheat"
	ResourceOre   ResourceType = "ore"
)

// AllResources returns every resource type in a stable order.
func AllResources() []ResourceType {
	return []ResourceType{ResourceWood, ResourceBrick, ResourceSheep, ResourceWheat, ResourceOre}
}

// ResourceForTerrain returns the resource a terrain produces. The desert
// produces nothing.
func ResourceForTerrain(t board.Terrain) (ResourceType, bool) {
	switch t {
	case board.TerrainForest:
		return ResourceWood, true
	case board.TerrainHills:
		return ResourceBrick, true
	case board.TerrainPasture:
		return ResourceSheep, true
	case board.TerrainFields:
		return ResourceWheat, true
	case board.TerrainMountains:
		return ResourceOre, true
	default:
		return "", false
	}
}

// Hand represents a player's resource cards. Counts never go negative.
type Hand struct {
	Wood  int `json:"wood"`
	Brick int `json:"brick"`
	Sheep int `json:"sheep"`
	Wheat int `json:"wheat"`
	Ore   int `json:"ore"`
}

// NewHand creates an empty hand.
func NewHand() *Hand {
	return &Hand{}
}

// Add adds resources to the hand.
func (h *Hand) Add(resource ResourceType, amount int) {
	switch resource {
	case ResourceWood:
		h.Wood += amount
	case ResourceBrick:
		h.Brick += amount
	case ResourceSheep:
		h.Sheep += amount
	case ResourceWheat:
		h.Wheat += amount
	case ResourceOre:
		h.Ore += amount
	}
}

// Remove removes resources from the hand. Returns false if insufficient.
func (h *Hand) Remove(resource ResourceType, amount int) bool {
	if h.Get(resource) < amount {
		return false
	}
	h.Add(resource, -amount)
	return true
}

// Get returns the amount of a resource.
func (h *Hand) Get(resource ResourceType) int {
	switch resource {
	case ResourceWood:
		return h.Wood
	case ResourceBrick:
		return h.Brick
	case ResourceSheep:
		return h.Sheep
	case ResourceWheat:
		return h.Wheat
	case ResourceOre:
		return h.Ore
	default:
		return 0
	}
}

// Total returns the total number of resource cards held.
func (h *Hand) Total() int {
	return h.Wood + h.Brick + h.Sheep + h.Wheat + h.Ore
}

// Clone creates a copy of the hand.
func (h *Hand) Clone() *Hand {
	c := *h
	return &c
}

// Cost represents the resources needed to build something.
type Cost struct {
	Wood  int
	Brick int
	Sheep int
	Wheat int
	Ore   int
}

// CostRoad is the cost to build a road.
var CostRoad = Cost{Wood: 1, Brick: 1}

// CostSettlement is the cost to build a settlement.
var CostSettlement = Cost{Wood: 1, Brick: 1, Sheep: 1, Wheat: 1}

// CostCity is the cost to upgrade a settlement to a city.
var CostCity = Cost{Ore: 3, Wheat: 2}

// CostDevCard is the cost to buy a development card.
var CostDevCard = Cost{Ore: 1, Sheep: 1, Wheat: 1}

// CanAfford checks if the hand covers a cost.
func (h *Hand) CanAfford(cost Cost) bool {
	return h.Wood >= cost.Wood &&
		h.Brick >= cost.Brick &&
		h.Sheep >= cost.Sheep &&
		h.Wheat >= cost.Wheat &&
		h.Ore >= cost.Ore
}

// Spend removes resources for a cost. Returns false if insufficient.
func (h *Hand) Spend(cost Cost) bool {
	if !h.CanAfford(cost) {
		return false
	}
	h.Wood -= cost.Wood
	h.Brick -= cost.Brick
	h.Sheep -= cost.Sheep
	h.Wheat -= cost.Wheat
	h.Ore -= cost.Ore
	return true
}
