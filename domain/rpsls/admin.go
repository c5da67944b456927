package rpsls

import "fmt"

func (g *Game) checkOwner(caller PlayerID) error {
	if caller != g.owner {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	return nil
}

func (g *Game) validateSetBetSize(a Action) error {
	if err := g.checkOwner(a.Player); err != nil {
		return err
	}
	return g.stake.checkChange(g.phase)
}

// setBetSize replaces the bet size. Reconfiguring a finished game is also
// the signal to restart it with the same roster.
func (g *Game) setBetSize(a Action) []Event {
	g.stake.betSize = a.BetSize
	events := []Event{g.event(EventBetSizeChanged)}
	if g.phase == Finished {
		events = append(events, g.reset()...)
	}
	return events
}

func (g *Game) validateStop(a Action) error {
	if err := g.checkOwner(a.Player); err != nil {
		return err
	}
	if g.phase == Finished {
		return ErrGameFinished
	}
	return nil
}

// stop ends the game refunding every player still Active its own stake.
func (g *Game) stop() []Event {
	refunds := g.roster.refundActive()
	g.roster.clearMoves()
	g.phase = Finished
	ev := g.event(EventGameStopped)
	ev.Refunds = refunds
	return []Event{ev}
}

func (g *Game) validateReset(a Action) error {
	if err := g.checkOwner(a.Player); err != nil {
		return err
	}
	return g.stake.checkChange(g.phase)
}

// reset reopens the table. A pot left over by a stop holds the stakes of
// eliminated players: it is reported as retained instead of vanishing.
func (g *Game) reset() []Event {
	var retained uint64
	if g.winner == "" {
		retained = g.roster.retain()
	}
	g.roster.reactivate()
	g.id = ""
	g.round = 0
	g.winner = ""
	g.phase = Idle
	ev := g.event(EventGameReset)
	ev.Retained = retained
	return []Event{ev}
}

func (g *Game) validateRemovePlayer(a Action) error {
	if err := g.checkOwner(a.Player); err != nil {
		return err
	}
	switch {
	case g.phase == Finished:
		return ErrGameFinished
	case g.phase.InProgress():
		return fmt.Errorf("%w: cannot remove players mid-game", ErrGameInProgress)
	}
	if _, ok := g.roster.get(a.Target); !ok {
		return fmt.Errorf("%w: %s", ErrNotJoined, a.Target)
	}
	return nil
}

func (g *Game) removePlayer(a Action) []Event {
	g.roster.remove(a.Target)
	ev := g.event(EventPlayerRemoved)
	ev.Player = a.Target
	return []Event{ev}
}
