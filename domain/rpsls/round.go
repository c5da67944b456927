package rpsls

import "fmt"

func (g *Game) validateMove(a Action) error {
	if g.phase == Finished {
		return ErrGameFinished
	}
	p, ok := g.roster.get(a.Player)
	if !ok || p.Status != Active {
		return fmt.Errorf("%w: %s", ErrNotActive, a.Player)
	}
	if p.Moved {
		return fmt.Errorf("%w: %s in round %d", ErrAlreadyMoved, a.Player, g.round)
	}
	if g.phase == Idle && g.roster.ActiveCount() < 2 {
		return ErrNotEnoughPlayers
	}
	if !a.Move.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMove, a.Move)
	}
	return g.stake.checkStake(p, a.Stake)
}

func (g *Game) submitMove(a Action) []Event {
	if g.phase == Idle {
		g.start()
	}
	p, _ := g.roster.get(a.Player)
	p.Move = a.Move
	p.Moved = true
	g.roster.addStake(p, a.Stake)

	ev := g.event(EventMoveAccepted)
	ev.Player = p.ID
	ev.Move = p.Move
	events := []Event{ev}

	if g.roster.allMoved() {
		g.phase = Resolving
		events = append(events, g.resolve()...)
	}
	return events
}

// start opens the first round of a new game.
func (g *Game) start() {
	g.id = g.newID()
	g.round = 1
	g.winner = ""
	g.phase = Collecting
}

// resolve applies the verdict of a complete round and either opens the next
// collection or finishes the game.
func (g *Game) resolve() []Event {
	moves := g.roster.roundMoves()
	out := Resolve(moves)
	g.roster.clearMoves()

	ev := g.event(EventRoundResolved)
	ev.Moves = moves
	if out.Draw {
		ev.Draw = true
		g.phase = Collecting
		return []Event{ev}
	}

	for _, id := range out.Eliminated {
		p, _ := g.roster.get(id)
		p.Status = Eliminated
	}
	ev.Eliminated = out.Eliminated
	events := []Event{ev}

	if active := g.roster.active(); len(active) == 1 {
		g.finish(active[0].ID)
		over := g.event(EventGameOver)
		over.Winner = g.winner
		over.Pot = g.roster.pot
		return append(events, over)
	}
	g.round++
	g.phase = Collecting
	return events
}

func (g *Game) finish(winner PlayerID) {
	g.winner = winner
	g.roster.credit(winner, g.roster.pot)
	g.phase = Finished
}
