package board

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerationMode selects how strictly number tokens are balanced.
type GenerationMode string

const (
	// ModeBalanced rejects layouts where two 6/8 tokens sit on adjacent
	// hexes and retries.
	ModeBalanced GenerationMode = "balanced"
	// ModeNatural accepts the first layout drawn.
	ModeNatural GenerationMode = "natural"
)

// GeneratorOptions contains settings for board generation.
type GeneratorOptions struct {
	Mode GenerationMode
	Seed int64 // 0 seeds from the clock
}

// maxBalanceAttempts bounds the balanced-mode retry loop.
const maxBalanceAttempts = 250

// portCount is the fixed number of ports on the standard board.
const portCount = 9

// terrainSet is the fixed 19-tile terrain multiset.
var terrainSet = []Terrain{
	TerrainForest, TerrainForest, TerrainForest, TerrainForest,
	TerrainPasture, TerrainPasture, TerrainPasture, TerrainPasture,
	TerrainFields, TerrainFields, TerrainFields, TerrainFields,
	TerrainHills, TerrainHills, TerrainHills,
	TerrainMountains, TerrainMountains, TerrainMountains,
	TerrainDesert,
}

// numberSet is the fixed 18-token number multiset (no 7).
var numberSet = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// portSet is the fixed 9-port multiset: four generic 3:1 ports and one
// 2:1 port per resource.
var portSet = []PortType{
	PortGeneric, PortGeneric, PortGeneric, PortGeneric,
	PortWood, PortBrick, PortSheep, PortWheat, PortOre,
}

// Generator produces random boards.
type Generator struct {
	options GeneratorOptions
	rng     *rand.Rand
}

// NewGenerator creates a board generator.
func NewGenerator(opts GeneratorOptions) *Generator {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		options: opts,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Generate assigns terrains, number tokens, and ports to the fixed
// 19-hex layout. In balanced mode the whole assignment is redrawn until
// no two 6/8 tokens are adjacent, up to maxBalanceAttempts.
func (g *Generator) Generate() (*Board, error) {
	coords := SpiralCoords()

	var tiles []*HexTile
	for attempt := 0; ; attempt++ {
		tiles = g.assignTiles(coords)
		if g.options.Mode != ModeBalanced || g.isBalanced(tiles) {
			break
		}
		if attempt+1 >= maxBalanceAttempts {
			return nil, fmt.Errorf("no balanced layout found in %d attempts", maxBalanceAttempts)
		}
	}

	ports, err := g.assignPorts(coords)
	if err != nil {
		return nil, err
	}

	b := &Board{Tiles: tiles, Ports: ports}
	for _, t := range tiles {
		if t.Terrain == TerrainDesert {
			b.RobberHex = t.Coord.Key()
			break
		}
	}
	return b, nil
}

// assignTiles shuffles the terrain and number multisets and walks the
// spiral order, skipping the desert for number assignment.
func (g *Generator) assignTiles(coords []AxialCoord) []*HexTile {
	terrains := make([]Terrain, len(terrainSet))
	copy(terrains, terrainSet)
	g.rng.Shuffle(len(terrains), func(i, j int) {
		terrains[i], terrains[j] = terrains[j], terrains[i]
	})

	numbers := make([]int, len(numberSet))
	copy(numbers, numberSet)
	g.rng.Shuffle(len(numbers), func(i, j int) {
		numbers[i], numbers[j] = numbers[j], numbers[i]
	})

	tiles := make([]*HexTile, len(coords))
	next := 0
	for i, c := range coords {
		tile := &HexTile{Coord: c, Terrain: terrains[i]}
		if tile.Terrain != TerrainDesert {
			tile.Number = numbers[next]
			next++
		}
		tiles[i] = tile
	}
	return tiles
}

// isBalanced reports whether no two 6/8 tiles are at hex distance 1.
func (g *Generator) isBalanced(tiles []*HexTile) bool {
	hot := make([]AxialCoord, 0, 4)
	for _, t := range tiles {
		if t.Number == 6 || t.Number == 8 {
			hot = append(hot, t.Coord)
		}
	}
	for i := 0; i < len(hot); i++ {
		for j := i + 1; j < len(hot); j++ {
			if Distance(hot[i], hot[j]) == 1 {
				return false
			}
		}
	}
	return true
}

// assignPorts places the port multiset on a shuffled selection of
// coastal edges.
func (g *Generator) assignPorts(coords []AxialCoord) ([]Port, error) {
	coastal := CoastalEdges(coords)
	if len(coastal) < portCount {
		return nil, fmt.Errorf("only %d coastal edges for %d ports", len(coastal), portCount)
	}
	g.rng.Shuffle(len(coastal), func(i, j int) {
		coastal[i], coastal[j] = coastal[j], coastal[i]
	})

	types := make([]PortType, len(portSet))
	copy(types, portSet)
	g.rng.Shuffle(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})

	ports := make([]Port, portCount)
	for i := 0; i < portCount; i++ {
		ports[i] = Port{Position: coastal[i], Type: types[i]}
	}
	return ports, nil
}
