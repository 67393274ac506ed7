package protocol

import "encoding/json"

// ==================== Lobby Payloads ====================

// CreateRoomPayload is sent to create a new room.
type CreateRoomPayload struct {
	Name          string `json:"name"`
	PlayerName    string `json:"player_name"`
	BoardMode     string `json:"board_mode,omitempty"` // balanced (default) or natural
	Seed          int64  `json:"seed,omitempty"`
	TargetPlayers int    `json:"target_players"`
}

// RoomCreatedPayload is the response when a room is created.
type RoomCreatedPayload struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

// JoinRoomPayload is sent to join an open room.
type JoinRoomPayload struct {
	RoomID     string `json:"room_id"`
	PlayerName string `json:"player_name"`
}

// JoinedRoomPayload is the response when successfully joining a room.
type JoinedRoomPayload struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

// PlayerJoinedPayload notifies a room that a player arrived.
type PlayerJoinedPayload struct {
	RoomID     string `json:"room_id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerLeftPayload notifies a room that a player left.
type PlayerLeftPayload struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

// RoomSummary describes one room in a listing.
type RoomSummary struct {
	RoomID        string `json:"room_id"`
	Name          string `json:"name"`
	PlayerCount   int    `json:"player_count"`
	TargetPlayers int    `json:"target_players"`
	Started       bool   `json:"started"`
}

// RoomListPayload carries the open room listing.
type RoomListPayload struct {
	Rooms []RoomSummary `json:"rooms"`
}

// ==================== Game Flow Payloads ====================

// GameStartedPayload announces that the draft has begun.
type GameStartedPayload struct {
	RoomID      string   `json:"room_id"`
	PlayerOrder []string `json:"player_order"`
}

// GameStatePayload carries a full state snapshot. State is the
// serialized game state; every mutation broadcasts a fresh snapshot.
type GameStatePayload struct {
	RoomID string          `json:"room_id"`
	State  json.RawMessage `json:"state"`
}

// ResourceGrant is one player's production from a dice roll.
type ResourceGrant struct {
	PlayerID string `json:"player_id"`
	Resource string `json:"resource"`
	Amount   int    `json:"amount"`
}

// DiceRolledPayload announces a dice roll and its production.
type DiceRolledPayload struct {
	PlayerID string          `json:"player_id"`
	Die1     int             `json:"die1"`
	Die2     int             `json:"die2"`
	Total    int             `json:"total"`
	Grants   []ResourceGrant `json:"grants,omitempty"`
	Discards map[string]int  `json:"discards,omitempty"` // owed card counts on a seven
}

// TurnChangedPayload announces the next player on the clock.
type TurnChangedPayload struct {
	PlayerID   string `json:"player_id"`
	TurnNumber int    `json:"turn_number"`
}

// GameEndedPayload announces the winner.
type GameEndedPayload struct {
	WinnerID      string `json:"winner_id"`
	VictoryPoints int    `json:"victory_points"`
}

// ==================== Action Payloads ====================

// PlaceSettlementPayload asks to place a settlement on a vertex.
type PlaceSettlementPayload struct {
	VertexID string `json:"vertex_id"`
}

// PlaceRoadPayload asks to place a road on an edge.
type PlaceRoadPayload struct {
	EdgeID string `json:"edge_id"`
}

// UpgradeCityPayload asks to upgrade a settlement to a city.
type UpgradeCityPayload struct {
	VertexID string `json:"vertex_id"`
}

// MoveRobberPayload asks to move the robber to a hex, optionally
// stealing from an adjacent player.
type MoveRobberPayload struct {
	HexID    string `json:"hex_id"`
	VictimID string `json:"victim_id,omitempty"`
}

// DiscardPayload surrenders cards after a seven.
type DiscardPayload struct {
	Cards map[string]int `json:"cards"`
}

// StealPayload asks to steal a random card from a victim.
type StealPayload struct {
	VictimID string `json:"victim_id"`
}

// ProposeTradePayload opens a domestic trade offer.
type ProposeTradePayload struct {
	Offering   map[string]int `json:"offering"`
	Requesting map[string]int `json:"requesting"`
}

// RespondTradePayload answers the open trade offer.
type RespondTradePayload struct {
	Accept bool `json:"accept"`
}

// ExecuteTradePayload closes the open offer with a chosen partner.
type ExecuteTradePayload struct {
	PartnerID string `json:"partner_id"`
}

// BankTradePayload trades with the bank at the player's port rate.
type BankTradePayload struct {
	Give          string `json:"give"`
	GiveAmount    int    `json:"give_amount"`
	Receive       string `json:"receive"`
	ReceiveAmount int    `json:"receive_amount"`
}

// PlayDevCardPayload plays a development card. The extra fields apply
// per card type: HexID for the knight, Resources for year of plenty
// (two entries) and monopoly (one entry).
type PlayDevCardPayload struct {
	CardType  string   `json:"card_type"`
	HexID     string   `json:"hex_id,omitempty"`
	VictimID  string   `json:"victim_id,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

// ActionResultPayload reports the outcome of a rule-checked action.
// Invalid results are rule rejections addressed to the actor; they are
// not protocol errors.
type ActionResultPayload struct {
	Action  MessageType `json:"action"`
	Valid   bool        `json:"valid"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ==================== System Payloads ====================

// WelcomePayload greets a new connection.
type WelcomePayload struct {
	ServerVersion string `json:"server_version"`
}

// DisconnectPayload notifies a room that a player dropped.
type DisconnectPayload struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason,omitempty"`
}
