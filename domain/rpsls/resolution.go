package rpsls

import "slices"

// Outcome is the verdict of a round. When Draw is set Eliminated is empty.
type Outcome struct {
	Draw       bool
	Eliminated []PlayerID
	// Winning is the only move left undefeated, empty on a draw.
	Winning Move
}

// Resolve computes the eliminations of a round from the moves of every Active
// player. A player is eliminated when another move present this round beats
// its own. Only the set of distinct moves matters, not how many players chose
// each one.
//
// The round is a draw when a single move is present, or when the present moves
// form a cycle in which every move is beaten by some other one: eliminating
// everybody is never allowed.
func Resolve(moves map[PlayerID]Move) Outcome {
	present := make(map[Move]struct{}, len(beats))
	for _, m := range moves {
		present[m] = struct{}{}
	}
	if len(present) <= 1 {
		return Outcome{Draw: true}
	}

	var undefeated Move
	for m := range present {
		if !beatenBy(m, present) {
			undefeated = m
			break
		}
	}
	if undefeated == "" {
		return Outcome{Draw: true}
	}

	out := Outcome{Winning: undefeated}
	for id, m := range moves {
		if beatenBy(m, present) {
			out.Eliminated = append(out.Eliminated, id)
		}
	}
	slices.Sort(out.Eliminated)
	return out
}

func beatenBy(m Move, present map[Move]struct{}) bool {
	for other := range present {
		if other.Beats(m) {
			return true
		}
	}
	return false
}
