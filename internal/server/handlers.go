package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"hexfield/internal/database"
	"hexfield/internal/game"
	"hexfield/internal/protocol"
	"hexfield/pkg/board"

	"github.com/google/uuid"
)

// ErrRoomFull rejects joining a room with no free seats.
var ErrRoomFull = errors.New("room is full")

// Handlers processes incoming messages.
type Handlers struct {
	hub *Hub
}

// NewHandlers creates a new handler set.
func NewHandlers(hub *Hub) *Handlers {
	return &Handlers{hub: hub}
}

// Handle routes a message to the appropriate handler. Rule rejections
// are delivered as action results inside the handlers; errors escaping
// here are protocol faults.
func (h *Handlers) Handle(client *Client, msg *protocol.Message) {
	var err error

	switch msg.Type {
	case protocol.TypeCreateRoom:
		err = h.handleCreateRoom(client, msg)
	case protocol.TypeJoinRoom:
		err = h.handleJoinRoom(client, msg)
	case protocol.TypeLeaveRoom:
		err = h.handleLeaveRoom(client, msg)
	case protocol.TypeListRooms:
		err = h.handleListRooms(client, msg)
	case protocol.TypeStartGame:
		err = h.handleStartGame(client, msg)
	case protocol.TypePlaceSettlement:
		err = h.handlePlaceSettlement(client, msg)
	case protocol.TypePlaceRoad:
		err = h.handlePlaceRoad(client, msg)
	case protocol.TypeUpgradeCity:
		err = h.handleUpgradeCity(client, msg)
	case protocol.TypeRollDice:
		err = h.handleRollDice(client, msg)
	case protocol.TypeEndTurn:
		err = h.handleEndTurn(client, msg)
	case protocol.TypeMoveRobber:
		err = h.handleMoveRobber(client, msg)
	case protocol.TypeDiscard:
		err = h.handleDiscard(client, msg)
	case protocol.TypeSteal:
		err = h.handleSteal(client, msg)
	case protocol.TypeProposeTrade:
		err = h.handleProposeTrade(client, msg)
	case protocol.TypeRespondTrade:
		err = h.handleRespondTrade(client, msg)
	case protocol.TypeExecuteTrade:
		err = h.handleExecuteTrade(client, msg)
	case protocol.TypeCancelTrade:
		err = h.handleCancelTrade(client, msg)
	case protocol.TypeBankTrade:
		err = h.handleBankTrade(client, msg)
	case protocol.TypeBuyDevCard:
		err = h.handleBuyDevCard(client, msg)
	case protocol.TypePlayDevCard:
		err = h.handlePlayDevCard(client, msg)
	case protocol.TypePing:
		pong, _ := protocol.NewMessage(protocol.TypePong, nil)
		client.Send(pong)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	if err != nil {
		h.sendError(client, err)
	}
}

// sendError reports a protocol fault to the client.
func (h *Handlers) sendError(client *Client, err error) {
	msg, _ := protocol.NewMessage(protocol.TypeError, protocol.ErrorPayload{
		Code:    errorCode(err),
		Message: err.Error(),
	})
	client.Send(msg)
}

func errorCode(err error) protocol.ErrorCode {
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		return protocol.ErrCodeRoomNotFound
	case errors.Is(err, game.ErrRoomExists):
		return protocol.ErrCodeRoomExists
	case errors.Is(err, ErrRoomFull):
		return protocol.ErrCodeRoomFull
	case errors.Is(err, game.ErrPlayerNotFound):
		return protocol.ErrCodePlayerNotFound
	case errors.Is(err, game.ErrNotYourTurn):
		return protocol.ErrCodeNotYourTurn
	case errors.Is(err, game.ErrGameOver):
		return protocol.ErrCodeGameOver
	case errors.Is(err, game.ErrPendingDiscards):
		return protocol.ErrCodePendingDiscards
	case errors.Is(err, game.ErrInvalidAction):
		return protocol.ErrCodeInvalidAction
	default:
		return protocol.ErrCodeInternalError
	}
}

// sendResult reports a rule-check outcome to the acting client only.
func (h *Handlers) sendResult(client *Client, action protocol.MessageType, valid bool, reason string) {
	msg, _ := protocol.NewMessage(protocol.TypeActionResult, protocol.ActionResultPayload{
		Action: action,
		Valid:  valid,
		Error:  reason,
	})
	client.Send(msg)
}

// ruleReason strips the rule-violation sentinel prefix off an engine
// error, leaving the human-readable rejection.
func ruleReason(err error) string {
	return strings.TrimPrefix(err.Error(), game.ErrRuleViolation.Error()+": ")
}

// ==================== Lobby ====================

func (h *Handlers) handleCreateRoom(client *Client, msg *protocol.Message) error {
	var payload protocol.CreateRoomPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	if payload.PlayerName == "" {
		payload.PlayerName = "Player"
	}
	if payload.TargetPlayers < game.MinPlayers || payload.TargetPlayers > game.MaxPlayers {
		payload.TargetPlayers = game.MaxPlayers
	}
	mode := boardModeFromString(payload.BoardMode)

	roomID := uuid.New().String()
	playerID := uuid.New().String()

	room := &LobbyRoom{
		ID:            roomID,
		Name:          payload.Name,
		TargetPlayers: payload.TargetPlayers,
		Mode:          mode,
		Seed:          payload.Seed,
		Players:       []LobbySeat{{PlayerID: playerID, Name: payload.PlayerName}},
	}
	if !h.hub.server.lobby.Create(room) {
		return game.ErrRoomExists
	}

	db := h.hub.server.db
	if err := db.CreateRoom(roomID, payload.Name, payload.TargetPlayers); err != nil {
		return err
	}
	if err := db.AddRoomPlayer(database.RoomPlayer{
		RoomID:      roomID,
		PlayerID:    playerID,
		Name:        payload.PlayerName,
		Seat:        0,
		Color:       string(game.AllColors()[0]),
		IsConnected: true,
	}); err != nil {
		return err
	}

	h.hub.SetClientPlayer(client, playerID)
	client.Name = payload.PlayerName
	h.hub.AddClientToRoom(client, roomID)

	log.Printf("room %s created by %s", roomID, payload.PlayerName)

	resp, _ := protocol.NewMessage(protocol.TypeRoomCreated, protocol.RoomCreatedPayload{
		RoomID:   roomID,
		PlayerID: playerID,
	})
	client.Send(resp)
	return nil
}

func (h *Handlers) handleJoinRoom(client *Client, msg *protocol.Message) error {
	var payload protocol.JoinRoomPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	if payload.PlayerName == "" {
		payload.PlayerName = "Player"
	}

	playerID := uuid.New().String()
	room, err := h.hub.server.lobby.Join(payload.RoomID, LobbySeat{
		PlayerID: playerID,
		Name:     payload.PlayerName,
	})
	if err != nil {
		return err
	}

	seat := len(room.Players) - 1
	if err := h.hub.server.db.AddRoomPlayer(database.RoomPlayer{
		RoomID:      room.ID,
		PlayerID:    playerID,
		Name:        payload.PlayerName,
		Seat:        seat,
		Color:       string(game.AllColors()[seat]),
		IsConnected: true,
	}); err != nil {
		return err
	}

	h.hub.SetClientPlayer(client, playerID)
	client.Name = payload.PlayerName
	h.hub.AddClientToRoom(client, room.ID)

	resp, _ := protocol.NewMessage(protocol.TypeJoinedRoom, protocol.JoinedRoomPayload{
		RoomID:   room.ID,
		PlayerID: playerID,
	})
	client.Send(resp)

	h.hub.NotifyRoom(room.ID, protocol.TypePlayerJoined, protocol.PlayerJoinedPayload{
		RoomID:     room.ID,
		PlayerID:   playerID,
		PlayerName: payload.PlayerName,
	})
	return nil
}

func (h *Handlers) handleLeaveRoom(client *Client, _ *protocol.Message) error {
	if client.RoomID == "" || client.PlayerID == "" {
		return game.ErrRoomNotFound
	}
	roomID := client.RoomID

	h.hub.server.lobby.Leave(roomID, client.PlayerID)
	h.hub.server.db.RemoveRoomPlayer(roomID, client.PlayerID)
	h.hub.RemoveClientFromRoom(client, roomID)

	h.hub.NotifyRoom(roomID, protocol.TypePlayerLeft, protocol.PlayerLeftPayload{
		RoomID:   roomID,
		PlayerID: client.PlayerID,
	})
	return nil
}

func (h *Handlers) handleListRooms(client *Client, _ *protocol.Message) error {
	rooms, err := h.hub.server.db.ListOpenRooms()
	if err != nil {
		return err
	}

	summaries := make([]protocol.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, protocol.RoomSummary{
			RoomID:        r.ID,
			Name:          r.Name,
			PlayerCount:   r.PlayerCount,
			TargetPlayers: r.TargetPlayers,
			Started:       r.Status != database.StatusWaiting,
		})
	}

	resp, _ := protocol.NewMessage(protocol.TypeRoomList, protocol.RoomListPayload{Rooms: summaries})
	client.Send(resp)
	return nil
}

func (h *Handlers) handleStartGame(client *Client, _ *protocol.Message) error {
	if client.RoomID == "" || client.PlayerID == "" {
		return game.ErrRoomNotFound
	}

	room, err := h.hub.server.lobby.Start(client.RoomID, client.PlayerID)
	if err != nil {
		return err
	}

	players := make([]*game.Player, len(room.Players))
	order := make([]string, len(room.Players))
	for i, seat := range room.Players {
		players[i] = game.NewPlayer(seat.PlayerID, seat.Name, game.AllColors()[i])
		order[i] = seat.PlayerID
	}

	if _, err := h.hub.server.manager.CreateGame(room.ID, players, boardOptions(room)); err != nil {
		return err
	}
	if err := h.hub.server.db.SetRoomStarted(room.ID); err != nil {
		log.Printf("failed to mark room %s started: %v", room.ID, err)
	}

	log.Printf("room %s started with %d players", room.ID, len(players))

	h.hub.NotifyRoom(room.ID, protocol.TypeGameStarted, protocol.GameStartedPayload{
		RoomID:      room.ID,
		PlayerOrder: order,
	})
	h.broadcastState(room.ID)
	return nil
}

// ==================== Actions ====================

// runAction executes a rule-checked engine call for the client's room.
// Rule rejections become invalid action results; nil means the action
// was applied and the new state broadcast.
func (h *Handlers) runAction(client *Client, msg *protocol.Message, fn func(g *game.GameState) error) error {
	if client.RoomID == "" || client.PlayerID == "" {
		return game.ErrRoomNotFound
	}

	err := h.hub.server.manager.Do(client.RoomID, fn)
	if err != nil {
		if errors.Is(err, game.ErrRuleViolation) {
			h.sendResult(client, msg.Type, false, ruleReason(err))
			return nil
		}
		return err
	}

	h.sendResult(client, msg.Type, true, "")
	h.logAction(client, msg)
	h.broadcastState(client.RoomID)
	return nil
}

func (h *Handlers) handlePlaceSettlement(client *Client, msg *protocol.Message) error {
	var payload protocol.PlaceSettlementPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.PlaceSettlement(client.PlayerID, payload.VertexID)
	})
}

func (h *Handlers) handlePlaceRoad(client *Client, msg *protocol.Message) error {
	var payload protocol.PlaceRoadPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.PlaceRoad(client.PlayerID, payload.EdgeID)
	})
}

func (h *Handlers) handleUpgradeCity(client *Client, msg *protocol.Message) error {
	var payload protocol.UpgradeCityPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.PlaceCity(client.PlayerID, payload.VertexID)
	})
}

func (h *Handlers) handleRollDice(client *Client, msg *protocol.Message) error {
	if client.RoomID == "" || client.PlayerID == "" {
		return game.ErrRoomNotFound
	}

	var rolled protocol.DiceRolledPayload
	err := h.hub.server.manager.Do(client.RoomID, func(g *game.GameState) error {
		roll, grants, err := g.RollDice(client.PlayerID)
		if err != nil {
			return err
		}
		rolled = protocol.DiceRolledPayload{
			PlayerID: client.PlayerID,
			Die1:     roll.Die1,
			Die2:     roll.Die2,
			Total:    roll.Total(),
		}
		for _, gr := range grants {
			rolled.Grants = append(rolled.Grants, protocol.ResourceGrant{
				PlayerID: gr.PlayerID,
				Resource: string(gr.Resource),
				Amount:   gr.Amount,
			})
		}
		if roll.Total() == 7 {
			rolled.Discards = g.PendingDiscards
		}
		return nil
	})
	if err != nil {
		return err
	}

	h.logAction(client, msg)
	h.hub.NotifyRoom(client.RoomID, protocol.TypeDiceRolled, rolled)
	h.broadcastState(client.RoomID)
	return nil
}

func (h *Handlers) handleEndTurn(client *Client, msg *protocol.Message) error {
	if client.RoomID == "" || client.PlayerID == "" {
		return game.ErrRoomNotFound
	}

	var turn protocol.TurnChangedPayload
	err := h.hub.server.manager.Do(client.RoomID, func(g *game.GameState) error {
		if err := g.AdvanceTurn(client.PlayerID); err != nil {
			return err
		}
		turn = protocol.TurnChangedPayload{
			PlayerID:   g.CurrentPlayerID,
			TurnNumber: g.TurnNumber,
		}
		return nil
	})
	if err != nil {
		return err
	}

	h.logAction(client, msg)
	h.hub.NotifyRoom(client.RoomID, protocol.TypeTurnChanged, turn)
	h.broadcastState(client.RoomID)
	return nil
}

func (h *Handlers) handleMoveRobber(client *Client, msg *protocol.Message) error {
	var payload protocol.MoveRobberPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		if err := g.MoveRobber(client.PlayerID, payload.HexID); err != nil {
			return err
		}
		if payload.VictimID == "" {
			return nil
		}
		candidates, err := g.StealCandidates(client.PlayerID, payload.HexID)
		if err != nil {
			return err
		}
		for _, id := range candidates {
			if id == payload.VictimID {
				_, err := g.ExecuteSteal(client.PlayerID, payload.VictimID)
				return err
			}
		}
		return fmt.Errorf("%w: %s is not adjacent to the robber with cards", game.ErrRuleViolation, payload.VictimID)
	})
}

func (h *Handlers) handleDiscard(client *Client, msg *protocol.Message) error {
	var payload protocol.DiscardPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	cards := make(map[game.ResourceType]int, len(payload.Cards))
	for res, n := range payload.Cards {
		cards[game.ResourceType(res)] = n
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.ExecuteDiscard(client.PlayerID, cards)
	})
}

func (h *Handlers) handleSteal(client *Client, msg *protocol.Message) error {
	var payload protocol.StealPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		candidates, err := g.StealCandidates(client.PlayerID, g.Board.RobberHex)
		if err != nil {
			return err
		}
		for _, id := range candidates {
			if id == payload.VictimID {
				_, err := g.ExecuteSteal(client.PlayerID, payload.VictimID)
				return err
			}
		}
		return fmt.Errorf("%w: %s is not adjacent to the robber with cards", game.ErrRuleViolation, payload.VictimID)
	})
}

func (h *Handlers) handleProposeTrade(client *Client, msg *protocol.Message) error {
	var payload protocol.ProposeTradePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.ProposeTrade(client.PlayerID, toResourceMap(payload.Offering), toResourceMap(payload.Requesting))
	})
}

func (h *Handlers) handleRespondTrade(client *Client, msg *protocol.Message) error {
	var payload protocol.RespondTradePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.RespondToTrade(client.PlayerID, payload.Accept)
	})
}

func (h *Handlers) handleExecuteTrade(client *Client, msg *protocol.Message) error {
	var payload protocol.ExecuteTradePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.ExecuteTrade(client.PlayerID, payload.PartnerID)
	})
}

func (h *Handlers) handleCancelTrade(client *Client, msg *protocol.Message) error {
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.CancelTrade(client.PlayerID)
	})
}

func (h *Handlers) handleBankTrade(client *Client, msg *protocol.Message) error {
	var payload protocol.BankTradePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		return g.ExecuteBankTrade(client.PlayerID,
			game.ResourceType(payload.Give), payload.GiveAmount,
			game.ResourceType(payload.Receive), payload.ReceiveAmount)
	})
}

func (h *Handlers) handleBuyDevCard(client *Client, msg *protocol.Message) error {
	return h.runAction(client, msg, func(g *game.GameState) error {
		_, err := g.BuyDevCard(client.PlayerID)
		return err
	})
}

func (h *Handlers) handlePlayDevCard(client *Client, msg *protocol.Message) error {
	var payload protocol.PlayDevCardPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.runAction(client, msg, func(g *game.GameState) error {
		switch game.DevCardType(payload.CardType) {
		case game.DevKnight:
			if err := g.PlayKnight(client.PlayerID, payload.HexID); err != nil {
				return err
			}
			if payload.VictimID == "" {
				return nil
			}
			_, err := g.ExecuteSteal(client.PlayerID, payload.VictimID)
			return err
		case game.DevRoadBuilding:
			return g.PlayRoadBuilding(client.PlayerID)
		case game.DevYearOfPlenty:
			if len(payload.Resources) != 2 {
				return fmt.Errorf("%w: year of plenty names two resources", game.ErrRuleViolation)
			}
			return g.PlayYearOfPlenty(client.PlayerID,
				game.ResourceType(payload.Resources[0]),
				game.ResourceType(payload.Resources[1]))
		case game.DevMonopoly:
			if len(payload.Resources) != 1 {
				return fmt.Errorf("%w: monopoly names one resource", game.ErrRuleViolation)
			}
			_, err := g.PlayMonopoly(client.PlayerID, game.ResourceType(payload.Resources[0]))
			return err
		default:
			return fmt.Errorf("%w: unknown card type %q", game.ErrRuleViolation, payload.CardType)
		}
	})
}

// ==================== Shared plumbing ====================

// broadcastState snapshots the room's state, persists it, and sends it
// to every client in the room. A finished game also closes the room.
func (h *Handlers) broadcastState(roomID string) {
	var stateJSON []byte
	var ended *protocol.GameEndedPayload
	var currentPlayer, phase string
	var turnNumber int

	err := h.hub.server.manager.Do(roomID, func(g *game.GameState) error {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		stateJSON = data
		currentPlayer = g.CurrentPlayerID
		phase = string(g.Phase)
		turnNumber = g.TurnNumber
		if w := g.Winner(); w != nil {
			ended = &protocol.GameEndedPayload{
				WinnerID:      w.ID,
				VictoryPoints: w.VictoryPoints,
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("failed to snapshot room %s: %v", roomID, err)
		return
	}

	db := h.hub.server.db
	if err := db.SaveState(roomID, string(stateJSON), currentPlayer, phase, turnNumber); err != nil {
		log.Printf("failed to persist room %s: %v", roomID, err)
	}

	h.hub.NotifyRoom(roomID, protocol.TypeGameState, protocol.GameStatePayload{
		RoomID: roomID,
		State:  stateJSON,
	})

	if ended != nil {
		if err := db.SetRoomFinished(roomID, ended.WinnerID); err != nil {
			log.Printf("failed to close room %s: %v", roomID, err)
		}
		h.hub.NotifyRoom(roomID, protocol.TypeGameEnded, *ended)
	}
}

// logAction appends an accepted action to the room's replay log.
func (h *Handlers) logAction(client *Client, msg *protocol.Message) {
	actionJSON := "{}"
	if len(msg.Payload) > 0 {
		actionJSON = string(msg.Payload)
	}
	err := h.hub.server.db.AppendAction(client.RoomID, client.PlayerID, string(msg.Type), actionJSON)
	if err != nil {
		log.Printf("failed to log action %s in room %s: %v", msg.Type, client.RoomID, err)
	}
}

func toResourceMap(in map[string]int) map[game.ResourceType]int {
	out := make(map[game.ResourceType]int, len(in))
	for res, n := range in {
		out[game.ResourceType(res)] = n
	}
	return out
}

func boardModeFromString(mode string) board.GenerationMode {
	if mode == string(board.ModeNatural) {
		return board.ModeNatural
	}
	return board.ModeBalanced
}

func boardOptions(room *LobbyRoom) board.GeneratorOptions {
	return board.GeneratorOptions{Mode: room.Mode, Seed: room.Seed}
}
