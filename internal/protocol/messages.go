// Package protocol defines the network message types for client-server
// communication.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the type of message.
type MessageType string

// Lobby message types
const (
	TypeJoinRoom     MessageType = "join_room"
	TypeCreateRoom   MessageType = "create_room"
	TypeRoomCreated  MessageType = "room_created"
	TypeJoinedRoom   MessageType = "joined_room"
	TypeLeaveRoom    MessageType = "leave_room"
	TypeListRooms    MessageType = "list_rooms"
	TypeRoomList     MessageType = "room_list"
	TypePlayerJoined MessageType = "player_joined"
	TypePlayerLeft   MessageType = "player_left"
	TypeStartGame    MessageType = "start_game"
)

// Game flow message types
const (
	TypeGameStarted MessageType = "game_started"
	TypeGameState   MessageType = "game_state"
	TypeDiceRolled  MessageType = "dice_rolled"
	TypeTurnChanged MessageType = "turn_changed"
	TypeGameEnded   MessageType = "game_ended"
)

// Action message types
const (
	TypePlaceSettlement MessageType = "place_settlement"
	TypePlaceRoad       MessageType = "place_road"
	TypeUpgradeCity     MessageType = "upgrade_city"
	TypeRollDice        MessageType = "roll_dice"
	TypeEndTurn         MessageType = "end_turn"
	TypeMoveRobber      MessageType = "move_robber"
	TypeDiscard         MessageType = "discard"
	TypeSteal           MessageType = "steal"
	TypeProposeTrade    MessageType = "propose_trade"
	TypeRespondTrade    MessageType = "respond_trade"
	TypeExecuteTrade    MessageType = "execute_trade"
	TypeCancelTrade     MessageType = "cancel_trade"
	TypeBankTrade       MessageType = "bank_trade"
	TypeBuyDevCard      MessageType = "buy_dev_card"
	TypePlayDevCard     MessageType = "play_dev_card"
	TypeActionResult    MessageType = "action_result"
)

// System message types
const (
	TypeWelcome    MessageType = "welcome"
	TypeError      MessageType = "error"
	TypeDisconnect MessageType = "disconnect"
	TypePing       MessageType = "ping"
	TypePong       MessageType = "pong"
)

// Message is the envelope for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewMessage creates a new message with the given type and payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
		Payload:   data,
	}, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// ErrorCode represents an error type. Rule rejections travel as invalid
// action results, not errors; error messages cover protocol faults.
type ErrorCode string

const (
	ErrCodeInvalidAction   ErrorCode = "invalid_action"
	ErrCodeNotYourTurn     ErrorCode = "not_your_turn"
	ErrCodeRoomNotFound    ErrorCode = "room_not_found"
	ErrCodeRoomExists      ErrorCode = "room_exists"
	ErrCodeRoomFull        ErrorCode = "room_full"
	ErrCodePlayerNotFound  ErrorCode = "player_not_found"
	ErrCodeGameOver        ErrorCode = "game_over"
	ErrCodePendingDiscards ErrorCode = "pending_discards"
	ErrCodeBadPayload      ErrorCode = "bad_payload"
	ErrCodeInternalError   ErrorCode = "internal_error"
)

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
