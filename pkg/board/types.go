package board

// Terrain is the terrain type of a hex tile.
type Terrain string

const (
	TerrainForest    Terrain = "forest"    // produces wood
	TerrainHills     Terrain = "hills"     // produces brick
	TerrainPasture   Terrain = "pasture"   // produces sheep
	TerrainFields    Terrain = "fields"    // produces wheat
	TerrainMountains Terrain = "mountains" // produces ore
	TerrainDesert    Terrain = "desert"    // produces nothing, starts with the robber
)

// HexTile is a single tile on the board. Number is the production token
// (2-12), zero for the desert.
type HexTile struct {
	Coord   AxialCoord `json:"coord"`
	Terrain Terrain    `json:"terrain"`
	Number  int        `json:"number,omitempty"`
}

// PortType identifies what a port trades. The generic port trades any
// resource at 3:1; the others trade their named resource at 2:1.
type PortType string

const (
	PortGeneric PortType = "generic"
	PortWood    PortType = "wood"
	PortBrick   PortType = "brick"
	PortSheep   PortType = "sheep"
	PortWheat   PortType = "wheat"
	PortOre     PortType = "ore"
)

// Port sits on a coastal edge and grants a trade ratio to players with a
// settlement or city on either end of the edge.
type Port struct {
	Position string   `json:"position"` // edge identifier "q:r:edge"
	Type     PortType `json:"type"`
}

// Board holds the generated map. RobberHex is the coordinate key of the
// hex the robber currently occupies; it is the single authoritative
// robber location.
type Board struct {
	Tiles     []*HexTile `json:"tiles"`
	Ports     []Port     `json:"ports"`
	RobberHex string     `json:"robberHex"`
}

// TileAt returns the tile at a coordinate key, or nil.
func (b *Board) TileAt(key string) *HexTile {
	for _, t := range b.Tiles {
		if t.Coord.Key() == key {
			return t
		}
	}
	return nil
}

// HexHasRobber reports whether the robber sits on the given hex.
func (b *Board) HexHasRobber(key string) bool {
	return b.RobberHex == key
}

// Coords returns the coordinates of every tile in board order.
func (b *Board) Coords() []AxialCoord {
	coords := make([]AxialCoord, len(b.Tiles))
	for i, t := range b.Tiles {
		coords[i] = t.Coord
	}
	return coords
}
