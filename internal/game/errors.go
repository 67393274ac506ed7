package game

import "errors"

// Protocol-level errors. These indicate the caller failed to enforce
// basic session invariants and are returned as errors; rule-legality
// failures are reported as Result values instead and never as errors.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomExists      = errors.New("room already exists")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrInvalidAction   = errors.New("invalid action for current phase")
	ErrGameOver        = errors.New("game is over")
	ErrPendingDiscards = errors.New("waiting for players to discard")
	ErrRuleViolation   = errors.New("rule violation")
)
