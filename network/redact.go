package network

import (
	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
	"github.com/luca-patrignani/mental-rpsls/ledger"
)

// hideMoves returns events as viewer may see them: a move is shown only to
// the player who made it. The RoundResolved event reveals them all.
func hideMoves(events []rpsls.Event, viewer rpsls.PlayerID) []rpsls.Event {
	out := make([]rpsls.Event, len(events))
	copy(out, events)
	for i := range out {
		if out[i].Type == rpsls.EventMoveAccepted && out[i].Player != viewer {
			out[i].Move = ""
		}
	}
	return out
}

// hideOpenRound clears the moves recorded after the last block that settled a
// round. The blocks must be copies: their events are replaced, not modified.
func hideOpenRound(blocks []ledger.Block) []ledger.Block {
	open := 0
	for i, b := range blocks {
		if settles(b.Events) {
			open = i + 1
		}
	}
	for i := open; i < len(blocks); i++ {
		if blocks[i].Action.Type == rpsls.ActionMove {
			blocks[i].Action.Move = ""
			blocks[i].Events = hideMoves(blocks[i].Events, "")
		}
	}
	return blocks
}

func settles(events []rpsls.Event) bool {
	for _, ev := range events {
		switch ev.Type {
		case rpsls.EventRoundResolved, rpsls.EventGameStopped, rpsls.EventGameReset:
			return true
		}
	}
	return false
}
