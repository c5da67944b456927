package rpsls

import "fmt"

// PlayerLedger tracks the roster in join order, the pot and the amounts
// credited to each player by game-overs and stops.
type PlayerLedger struct {
	players    []*Player
	index      map[PlayerID]*Player
	pot        uint64
	balances   map[PlayerID]uint64
	retained   uint64
	maxPlayers int // 0 means unlimited
}

func newPlayerLedger(maxPlayers int) PlayerLedger {
	return PlayerLedger{
		index:      map[PlayerID]*Player{},
		balances:   map[PlayerID]uint64{},
		maxPlayers: maxPlayers,
	}
}

func (l *PlayerLedger) checkJoin(id PlayerID) error {
	if id == "" {
		return ErrInvalidPlayer
	}
	if _, ok := l.index[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyJoined, id)
	}
	if l.maxPlayers > 0 && len(l.players) >= l.maxPlayers {
		return fmt.Errorf("%w: limit is %d", ErrLobbyFull, l.maxPlayers)
	}
	return nil
}

func (l *PlayerLedger) join(id PlayerID) {
	p := &Player{ID: id, Status: Active}
	l.players = append(l.players, p)
	l.index[id] = p
}

func (l *PlayerLedger) remove(id PlayerID) {
	delete(l.index, id)
	for i, p := range l.players {
		if p.ID == id {
			l.players = append(l.players[:i], l.players[i+1:]...)
			return
		}
	}
}

func (l *PlayerLedger) get(id PlayerID) (*Player, bool) {
	p, ok := l.index[id]
	return p, ok
}

// IsActive reports whether id is on the roster and not eliminated.
func (l *PlayerLedger) IsActive(id PlayerID) bool {
	p, ok := l.index[id]
	return ok && p.Status == Active
}

func (l *PlayerLedger) ActiveCount() int {
	n := 0
	for _, p := range l.players {
		if p.Status == Active {
			n++
		}
	}
	return n
}

func (l *PlayerLedger) PotBalance() uint64 {
	return l.pot
}

// Balance returns the total credited to id over the process lifetime.
func (l *PlayerLedger) Balance(id PlayerID) uint64 {
	return l.balances[id]
}

// Retained is the total of the stakes forfeited by eliminated players of
// stopped games.
func (l *PlayerLedger) Retained() uint64 {
	return l.retained
}

// Players returns a copy of the roster in join order.
func (l *PlayerLedger) Players() []Player {
	out := make([]Player, len(l.players))
	for i, p := range l.players {
		out[i] = *p
	}
	return out
}

func (l *PlayerLedger) active() []*Player {
	var out []*Player
	for _, p := range l.players {
		if p.Status == Active {
			out = append(out, p)
		}
	}
	return out
}

func (l *PlayerLedger) allMoved() bool {
	for _, p := range l.active() {
		if !p.Moved {
			return false
		}
	}
	return true
}

func (l *PlayerLedger) roundMoves() map[PlayerID]Move {
	moves := map[PlayerID]Move{}
	for _, p := range l.active() {
		moves[p.ID] = p.Move
	}
	return moves
}

func (l *PlayerLedger) clearMoves() {
	for _, p := range l.players {
		p.clearMove()
	}
}

func (l *PlayerLedger) addStake(p *Player, amount uint64) {
	p.Stake += amount
	l.pot += amount
}

func (l *PlayerLedger) credit(id PlayerID, amount uint64) {
	l.balances[id] += amount
}

// refundActive gives every Active player back its own stake and removes the
// refunded amount from the pot. Stakes of eliminated players stay in the pot.
func (l *PlayerLedger) refundActive() map[PlayerID]uint64 {
	refunds := map[PlayerID]uint64{}
	for _, p := range l.active() {
		refunds[p.ID] = p.Stake
		l.pot -= p.Stake
		l.credit(p.ID, p.Stake)
		p.Stake = 0
	}
	return refunds
}

// retain moves whatever is left in the pot to the retained total.
func (l *PlayerLedger) retain() uint64 {
	amount := l.pot
	l.retained += amount
	l.pot = 0
	return amount
}

// reactivate prepares the same roster for a new game.
func (l *PlayerLedger) reactivate() {
	for _, p := range l.players {
		p.Status = Active
		p.Stake = 0
		p.clearMove()
	}
	l.pot = 0
}
