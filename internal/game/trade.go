package game

import (
	"fmt"

	"hexfield/pkg/board"
)

// TradeResponse is a responder's answer to a domestic trade offer.
type TradeResponse string

const (
	TradePending  TradeResponse = "pending"
	TradeAccepted TradeResponse = "accepted"
	TradeDeclined TradeResponse = "declined"
)

// TradeOffer represents the current player's open domestic trade
// proposal. At most one offer is open per room.
type TradeOffer struct {
	ProposerID string                   `json:"proposerId"`
	Offering   map[ResourceType]int     `json:"offering"`
	Requesting map[ResourceType]int     `json:"requesting"`
	Responses  map[string]TradeResponse `json:"responses"`
}

// sideTotal sums a trade side, rejecting non-positive amounts.
func sideTotal(side map[ResourceType]int) (int, bool) {
	total := 0
	for _, amount := range side {
		if amount <= 0 {
			return 0, false
		}
		total += amount
	}
	return total, true
}

// covers reports whether a hand holds everything on a trade side.
func covers(h *Hand, side map[ResourceType]int) bool {
	for res, amount := range side {
		if h.Get(res) < amount {
			return false
		}
	}
	return true
}

// ValidateProposeTrade checks a domestic trade proposal: only the
// current player may propose, both sides must name at least one
// resource with a positive amount, and the proposer must hold the
// offered resources.
func (g *GameState) ValidateProposeTrade(playerID string, offering, requesting map[ResourceType]int) (Result, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return Result{}, err
	}
	if g.Phase == PhaseGameOver {
		return Result{}, ErrGameOver
	}
	if g.Phase != PhaseGameplay || g.TurnPhase != TurnMain {
		return Result{}, ErrInvalidAction
	}
	if g.CurrentPlayerID != playerID {
		return Result{}, ErrNotYourTurn
	}

	offerTotal, ok := sideTotal(offering)
	if !ok || offerTotal == 0 {
		return ruleError("offer must name at least one resource"), nil
	}
	requestTotal, ok := sideTotal(requesting)
	if !ok || requestTotal == 0 {
		return ruleError("request must name at least one resource"), nil
	}
	if !covers(p.Hand, offering) {
		return ruleError("insufficient resources for this offer"), nil
	}
	return okResult(), nil
}

// ProposeTrade opens a domestic trade offer, replacing any previous one.
func (g *GameState) ProposeTrade(playerID string, offering, requesting map[ResourceType]int) error {
	res, err := g.ValidateProposeTrade(playerID, offering, requesting)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	offer := &TradeOffer{
		ProposerID: playerID,
		Offering:   offering,
		Requesting: requesting,
		Responses:  make(map[string]TradeResponse),
	}
	for _, id := range g.PlayerOrder {
		if id != playerID {
			offer.Responses[id] = TradePending
		}
	}
	g.ActiveTrade = offer
	return nil
}

// ValidateTradeResponse checks that a player may answer the open offer:
// there must be one, the responder may not be the proposer, and each
// player answers at most once.
func (g *GameState) ValidateTradeResponse(playerID string) (Result, error) {
	if _, err := g.Player(playerID); err != nil {
		return Result{}, err
	}
	if g.ActiveTrade == nil {
		return ruleError("no active trade offer"), nil
	}
	if g.ActiveTrade.ProposerID == playerID {
		return ruleError("cannot respond to your own offer"), nil
	}
	if g.ActiveTrade.Responses[playerID] != TradePending {
		return ruleError("already responded to this offer"), nil
	}
	return okResult(), nil
}

// RespondToTrade records a responder's accept or decline.
func (g *GameState) RespondToTrade(playerID string, accept bool) error {
	res, err := g.ValidateTradeResponse(playerID)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	if accept {
		g.ActiveTrade.Responses[playerID] = TradeAccepted
	} else {
		g.ActiveTrade.Responses[playerID] = TradeDeclined
	}
	return nil
}

// ValidatePartnerSelection checks that the chosen partner accepted the
// open offer and still holds the requested resources.
func (g *GameState) ValidatePartnerSelection(partnerID string) (Result, error) {
	partner, err := g.Player(partnerID)
	if err != nil {
		return Result{}, err
	}
	if g.ActiveTrade == nil {
		return ruleError("no active trade offer"), nil
	}
	if g.ActiveTrade.Responses[partnerID] != TradeAccepted {
		return ruleError("partner has not accepted the offer"), nil
	}
	if !covers(partner.Hand, g.ActiveTrade.Requesting) {
		return ruleError("partner no longer holds the requested resources"), nil
	}
	return okResult(), nil
}

// ExecuteTrade performs the open trade with the chosen partner. Both
// ledgers move together or not at all; the offer is then closed.
func (g *GameState) ExecuteTrade(playerID, partnerID string) error {
	proposer, err := g.Player(playerID)
	if err != nil {
		return err
	}
	if g.ActiveTrade == nil || g.ActiveTrade.ProposerID != playerID {
		return ErrInvalidAction
	}
	res, err := g.ValidatePartnerSelection(partnerID)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}
	if !covers(proposer.Hand, g.ActiveTrade.Offering) {
		return fmt.Errorf("%w: insufficient resources for this offer", ErrRuleViolation)
	}

	partner := g.Players[partnerID]
	for resType, amount := range g.ActiveTrade.Offering {
		proposer.Hand.Remove(resType, amount)
		partner.Hand.Add(resType, amount)
	}
	for resType, amount := range g.ActiveTrade.Requesting {
		partner.Hand.Remove(resType, amount)
		proposer.Hand.Add(resType, amount)
	}
	g.ActiveTrade = nil
	return nil
}

// CancelTrade withdraws the proposer's open offer.
func (g *GameState) CancelTrade(playerID string) error {
	if _, err := g.Player(playerID); err != nil {
		return err
	}
	if g.ActiveTrade == nil || g.ActiveTrade.ProposerID != playerID {
		return ErrInvalidAction
	}
	g.ActiveTrade = nil
	return nil
}

// BankTradeRate returns the player's best trade rate for giving a
// resource: 2:1 with the matching port, 3:1 with any generic port,
// otherwise 4:1.
func (g *GameState) BankTradeRate(playerID string, give ResourceType) int {
	p, ok := g.Players[playerID]
	if !ok {
		return 4
	}

	own := p.playerVertexKeys()
	rate := 4
	for _, port := range g.Board.Ports {
		a, b, err := board.EdgeEndpointKeys(port.Position)
		if err != nil {
			continue
		}
		if !own[a] && !own[b] {
			continue
		}
		if string(port.Type) == string(give) && rate > 2 {
			rate = 2
		}
		if port.Type == board.PortGeneric && rate > 3 {
			rate = 3
		}
	}
	return rate
}

// ValidateBankTrade checks a trade with the bank: one resource type per
// side, different types, and the giving amount must equal the player's
// rate times the receiving amount exactly.
func (g *GameState) ValidateBankTrade(playerID string, give ResourceType, giveAmount int, receive ResourceType, receiveAmount int) (Result, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return Result{}, err
	}
	if g.Phase == PhaseGameOver {
		return Result{}, ErrGameOver
	}
	if g.Phase != PhaseGameplay || g.TurnPhase != TurnMain {
		return Result{}, ErrInvalidAction
	}
	if g.CurrentPlayerID != playerID {
		return Result{}, ErrNotYourTurn
	}

	if give == receive {
		return ruleError("cannot trade a resource for itself"), nil
	}
	if giveAmount <= 0 || receiveAmount <= 0 {
		return ruleError("trade amounts must be positive"), nil
	}

	rate := g.BankTradeRate(playerID, give)
	if giveAmount != rate*receiveAmount {
		return ruleError(fmt.Sprintf("your rate for %s is %d:1, so receiving %d requires giving %d", give, rate, receiveAmount, rate*receiveAmount)), nil
	}
	if p.Hand.Get(give) < giveAmount {
		return ruleError("insufficient resources"), nil
	}
	return okResult(), nil
}

// ExecuteBankTrade performs a validated bank or port trade.
func (g *GameState) ExecuteBankTrade(playerID string, give ResourceType, giveAmount int, receive ResourceType, receiveAmount int) error {
	res, err := g.ValidateBankTrade(playerID, give, giveAmount, receive, receiveAmount)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s", ErrRuleViolation, res.Error)
	}

	p := g.Players[playerID]
	p.Hand.Remove(give, giveAmount)
	p.Hand.Add(receive, receiveAmount)
	return nil
}
