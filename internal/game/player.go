package game

// PlayerColor represents a player's color.
type PlayerColor string

const (
	ColorRed    PlayerColor = "red"
	ColorBlue   PlayerColor = "blue"
	ColorOrange PlayerColor = "orange"
	ColorWhite  PlayerColor = "white"
)

// AllColors returns all available player colors in seating order.
func AllColors() []PlayerColor {
	return []PlayerColor{ColorRed, ColorBlue, ColorOrange, ColorWhite}
}

// Player represents a player in the game. Settlements and cities hold
// vertex identifiers, roads hold edge identifiers; all occupancy checks
// resolve them to shared geometric keys.
type Player struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	Color                 PlayerColor    `json:"color"`
	Hand                  *Hand          `json:"resources"`
	Settlements           []string       `json:"settlements"`
	Cities                []string       `json:"cities"`
	Roads                 []string       `json:"roads"`
	DevCards              []OwnedDevCard `json:"devCards"`
	VictoryPoints         int            `json:"victoryPoints"`
	PlayedDevCardThisTurn bool           `json:"playedDevCardThisTurn"`
}

// NewPlayer creates a new player.
func NewPlayer(id, name string, color PlayerColor) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		Color:       color,
		Hand:        NewHand(),
		Settlements: make([]string, 0),
		Cities:      make([]string, 0),
		Roads:       make([]string, 0),
		DevCards:    make([]OwnedDevCard, 0),
	}
}

// ResetTurn resets per-turn state when the player's turn begins.
func (p *Player) ResetTurn() {
	p.PlayedDevCardThisTurn = false
}
