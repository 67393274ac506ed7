package game

// RollDice rolls two dice for the current player, advances the turn
// sub-phase to main, and either triggers resource distribution or, on a
// seven, records the discard obligations.
func (g *GameState) RollDice(playerID string) (DiceRoll, []Grant, error) {
	if _, err := g.Player(playerID); err != nil {
		return DiceRoll{}, nil, err
	}
	if g.Phase == PhaseGameOver {
		return DiceRoll{}, nil, ErrGameOver
	}
	if g.Phase != PhaseGameplay {
		return DiceRoll{}, nil, ErrInvalidAction
	}
	if g.CurrentPlayerID != playerID {
		return DiceRoll{}, nil, ErrNotYourTurn
	}
	if g.TurnPhase != TurnRoll {
		return DiceRoll{}, nil, ErrInvalidAction
	}

	roll := DiceRoll{
		Die1: g.rand().Intn(6) + 1,
		Die2: g.rand().Intn(6) + 1,
	}
	g.LastDiceRoll = &roll
	g.TurnPhase = TurnMain

	if roll.Total() == 7 {
		g.PendingDiscards = make(map[string]int)
		for _, id := range g.PlayerOrder {
			p := g.Players[id]
			if MustDiscard(p) {
				g.PendingDiscards[id] = DiscardTarget(p)
			}
		}
		return roll, nil, nil
	}

	grants := g.DistributeResources(roll.Total())
	return roll, grants, nil
}

// AdvanceTurn ends the current player's turn: the next player in fixed
// table order becomes current, the sub-phase resets to roll, and the
// last dice roll is cleared. Any open trade offer lapses.
func (g *GameState) AdvanceTurn(playerID string) error {
	if _, err := g.Player(playerID); err != nil {
		return err
	}
	if g.Phase == PhaseGameOver {
		return ErrGameOver
	}
	if g.Phase != PhaseGameplay {
		return ErrInvalidAction
	}
	if g.CurrentPlayerID != playerID {
		return ErrNotYourTurn
	}
	if g.TurnPhase != TurnMain {
		return ErrInvalidAction
	}
	if len(g.PendingDiscards) > 0 {
		return ErrPendingDiscards
	}

	g.ActiveTrade = nil
	g.FreeRoads = 0
	g.LastDiceRoll = nil
	g.TurnPhase = TurnRoll
	g.TurnNumber++

	for i, id := range g.PlayerOrder {
		if id == g.CurrentPlayerID {
			next := g.PlayerOrder[(i+1)%len(g.PlayerOrder)]
			g.CurrentPlayerID = next
			g.Players[next].ResetTurn()
			break
		}
	}
	return nil
}
