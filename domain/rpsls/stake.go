package rpsls

import "fmt"

// StakePolicy decides which moves must carry the bet.
type StakePolicy string

const (
	// PerMove requires every move to carry exactly the bet size.
	PerMove StakePolicy = "per-move"
	// EntryOnly requires the bet on a player's first move of a game and a
	// zero stake on every later move.
	EntryOnly StakePolicy = "entry"
)

func ParseStakePolicy(s string) (StakePolicy, error) {
	switch p := StakePolicy(s); p {
	case PerMove, EntryOnly:
		return p, nil
	case "":
		return PerMove, nil
	}
	return "", fmt.Errorf("unknown stake policy %q", s)
}

// StakeConfig holds the bet size in force.
type StakeConfig struct {
	betSize uint64
	policy  StakePolicy
}

func (s *StakeConfig) BetSize() uint64 {
	return s.betSize
}

func (s *StakeConfig) Policy() StakePolicy {
	return s.policy
}

// RequiredStake is the exact amount p must attach to its next move.
func (s *StakeConfig) RequiredStake(p *Player) uint64 {
	if s.policy == EntryOnly && p.Stake > 0 {
		return 0
	}
	return s.betSize
}

// checkChange gates bet size changes on the phase alone: once a round has
// begun, even one with no moves yet, the bet is locked until the game ends.
func (s *StakeConfig) checkChange(phase Phase) error {
	if phase.InProgress() {
		return fmt.Errorf("%w: bet size is locked while phase is %s", ErrGameInProgress, phase)
	}
	return nil
}

func (s *StakeConfig) checkStake(p *Player, stake uint64) error {
	if want := s.RequiredStake(p); stake != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrWrongStake, want, stake)
	}
	return nil
}
