package rpsls

import (
	"errors"
	"testing"
)

func TestChangeBetSizeWhileIdle(t *testing.T) {
	g := newTestGame(t, 10, users[:3])
	events := mustApply(t, g, SetBetSize(owner, 1_000))
	if len(events) != 1 || events[0].Type != EventBetSizeChanged || events[0].BetSize != 1_000 {
		t.Fatalf("unexpected events %+v", events)
	}

	mustReject(t, g, SubmitMove("bob", Rock, 999), ErrWrongStake)
	if g.Roster().PotBalance() != 0 {
		t.Fatalf("pot changed on a wrong stake")
	}
	mustApply(t, g, SubmitMove("bob", Rock, 1_000))
	mustApply(t, g, SubmitMove("carol", Rock, 1_000))
	mustApply(t, g, SubmitMove("alice", Rock, 1_000))
}

func TestChangeBetSizeTwice(t *testing.T) {
	g := newTestGame(t, 10, users[:3])
	mustApply(t, g, SetBetSize(owner, 10_000))
	mustApply(t, g, SetBetSize(owner, 9_000))

	mustReject(t, g, SubmitMove("carol", Rock, 8_999), ErrWrongStake)
	mustApply(t, g, SubmitMove("carol", Rock, 9_000))
	mustReject(t, g, SubmitMove("bob", Rock, 10_000), ErrWrongStake)
}

func TestChangeBetSizeNotOwner(t *testing.T) {
	g := newTestGame(t, 10, users[:3])
	mustReject(t, g, SetBetSize("carol", 10_000), ErrNotOwner)
	if g.Stake().BetSize() != 10 {
		t.Fatalf("bet size changed to %d", g.Stake().BetSize())
	}
}

func TestChangeBetSizeDuringFirstRound(t *testing.T) {
	g := newTestGame(t, 10, users)
	mustApply(t, g, SubmitMove("alice", Lizard, 10))
	mustApply(t, g, SubmitMove("carol", Scissors, 10))
	mustReject(t, g, SetBetSize(owner, 10_000), ErrGameInProgress)
}

func TestChangeBetSizeAtStartOfLaterRound(t *testing.T) {
	g := newTestGame(t, 10, users[:3])
	playRound(t, g, users[:3], []Move{Paper, Paper, Rock}, 10)
	if g.Round() != 2 {
		t.Fatalf("expected round 2, got %d", g.Round())
	}
	// no move has been made in round 2 yet
	mustReject(t, g, SetBetSize(owner, 10_000), ErrGameInProgress)

	mustApply(t, g, SubmitMove("alice", Paper, 10))
	mustReject(t, g, SetBetSize(owner, 10_000), ErrGameInProgress)
}

func TestChangeBetSizeAfterDrawReplay(t *testing.T) {
	g := newTestGame(t, 10, users)
	playRound(t, g, users, []Move{Lizard, Paper, Scissors, Rock}, 10)
	mustReject(t, g, SetBetSize(owner, 10_000), ErrGameInProgress)
}

// The owner reconfiguring a finished game restarts it with the same roster,
// including the players eliminated in the previous game.
func TestChangeBetSizeAfterGameOver(t *testing.T) {
	g := newTestGame(t, 10, users)
	playRound(t, g, users, []Move{Lizard, Rock, Lizard, Lizard}, 10)
	if g.Phase() != Finished || g.Winner() != "bob" {
		t.Fatalf("expected bob to win, got %s %s", g.Phase(), g.Winner())
	}

	events := mustApply(t, g, SetBetSize(owner, 10_000))
	if _, ok := findEvent(events, EventGameReset); !ok {
		t.Fatalf("expected a reset, got %+v", events)
	}
	mustReject(t, g, SubmitMove("dave", Rock, 9_000), ErrWrongStake)
	mustApply(t, g, SubmitMove("carol", Rock, 10_000))
}

func TestChangeBetSizeAfterStop(t *testing.T) {
	g := newTestGame(t, 10, users)
	playRound(t, g, users, []Move{Lizard, Rock, Spock, Lizard}, 10)
	events := mustApply(t, g, StopGame(owner))
	stopped := events[0]
	if len(stopped.Refunds) != 4 {
		t.Fatalf("expected refunds for all players, got %v", stopped.Refunds)
	}
	mustApply(t, g, SetBetSize(owner, 10_000))
	if g.Phase() != Idle {
		t.Fatalf("expected idle, got %s", g.Phase())
	}
}

func TestEntryOnlyPolicy(t *testing.T) {
	g := newTestGame(t, 100, users[:3], WithStakePolicy(EntryOnly))
	playRound(t, g, users[:3], []Move{Rock, Rock, Scissors}, 100)

	mustReject(t, g, SubmitMove("alice", Rock, 100), ErrWrongStake)
	mustApply(t, g, SubmitMove("alice", Rock, 0))
	mustApply(t, g, SubmitMove("bob", Paper, 0))
	if g.Winner() != "bob" || g.Roster().PotBalance() != 300 {
		t.Fatalf("unexpected winner %s pot %d", g.Winner(), g.Roster().PotBalance())
	}
}

func TestParseStakePolicy(t *testing.T) {
	for in, want := range map[string]StakePolicy{"": PerMove, "per-move": PerMove, "entry": EntryOnly} {
		got, err := ParseStakePolicy(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s %v", in, want, got, err)
		}
	}
	if _, err := ParseStakePolicy("sometimes"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCheckChangeByPhase(t *testing.T) {
	var s StakeConfig
	for _, p := range []Phase{Idle, Finished} {
		if err := s.checkChange(p); err != nil {
			t.Fatalf("%s: %v", p, err)
		}
	}
	for _, p := range []Phase{Collecting, Resolving} {
		if err := s.checkChange(p); !errors.Is(err, ErrGameInProgress) {
			t.Fatalf("%s: expected ErrGameInProgress, got %v", p, err)
		}
	}
}
