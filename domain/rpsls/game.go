package rpsls

import (
	"fmt"

	"github.com/google/uuid"
)

// Game is the aggregate every action is applied to. It is not safe for
// concurrent use: callers serialize access, see package engine.
type Game struct {
	owner  PlayerID
	id     string
	phase  Phase
	round  uint
	winner PlayerID
	stake  StakeConfig
	roster PlayerLedger
	newID  func() string
}

type option func(Game) Game

func NewGame(owner PlayerID, opts ...option) *Game {
	g := Game{
		owner:  owner,
		phase:  Idle,
		stake:  StakeConfig{policy: PerMove},
		roster: newPlayerLedger(0),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		g = opt(g)
	}
	return &g
}

func WithBetSize(size uint64) option {
	return func(g Game) Game {
		g.stake.betSize = size
		return g
	}
}

func WithStakePolicy(policy StakePolicy) option {
	return func(g Game) Game {
		g.stake.policy = policy
		return g
	}
}

func WithMaxPlayers(n int) option {
	return func(g Game) Game {
		g.roster.maxPlayers = n
		return g
	}
}

// WithIDGenerator replaces the generator of game identifiers.
func WithIDGenerator(f func() string) option {
	return func(g Game) Game {
		g.newID = f
		return g
	}
}

func (g *Game) Owner() PlayerID       { return g.owner }
func (g *Game) ID() string            { return g.id }
func (g *Game) Phase() Phase          { return g.phase }
func (g *Game) Round() uint           { return g.round }
func (g *Game) Winner() PlayerID      { return g.winner }
func (g *Game) Stake() *StakeConfig   { return &g.stake }
func (g *Game) Roster() *PlayerLedger { return &g.roster }

// Validate checks whether a can be applied in the current state without
// modifying it.
func (g *Game) Validate(a Action) error {
	switch a.Type {
	case ActionJoin:
		return g.validateJoin(a)
	case ActionMove:
		return g.validateMove(a)
	case ActionSetBetSize:
		return g.validateSetBetSize(a)
	case ActionStop:
		return g.validateStop(a)
	case ActionReset:
		return g.validateReset(a)
	case ActionRemovePlayer:
		return g.validateRemovePlayer(a)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
}

// Apply validates a and, if it is accepted, applies it and returns the events
// it produced. A rejected action leaves the game untouched.
func (g *Game) Apply(a Action) ([]Event, error) {
	if err := g.Validate(a); err != nil {
		return nil, err
	}
	switch a.Type {
	case ActionJoin:
		return g.join(a), nil
	case ActionMove:
		return g.submitMove(a), nil
	case ActionSetBetSize:
		return g.setBetSize(a), nil
	case ActionStop:
		return g.stop(), nil
	case ActionReset:
		return g.reset(), nil
	case ActionRemovePlayer:
		return g.removePlayer(a), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
}

func (g *Game) validateJoin(a Action) error {
	switch {
	case g.phase == Finished:
		return ErrGameFinished
	case g.phase != Idle:
		return fmt.Errorf("%w: joins are closed in round %d", ErrGameAlreadyStarted, g.round)
	}
	return g.roster.checkJoin(a.Player)
}

func (g *Game) join(a Action) []Event {
	g.roster.join(a.Player)
	ev := g.event(EventPlayerJoined)
	ev.Player = a.Player
	return []Event{ev}
}

// State is a serializable view of the game. Submitted moves are not part of it.
type State struct {
	GameID      string              `json:"game_id"`
	Owner       PlayerID            `json:"owner"`
	Phase       Phase               `json:"phase"`
	Round       uint                `json:"round"`
	BetSize     uint64              `json:"bet_size"`
	StakePolicy StakePolicy         `json:"stake_policy"`
	Pot         uint64              `json:"pot"`
	Winner      PlayerID            `json:"winner,omitempty"`
	Players     []Player            `json:"players"`
	Balances    map[PlayerID]uint64 `json:"balances"`
	Retained    uint64              `json:"retained"`
}

func (g *Game) Snapshot() State {
	balances := make(map[PlayerID]uint64, len(g.roster.balances))
	for id, b := range g.roster.balances {
		balances[id] = b
	}
	return State{
		GameID:      g.id,
		Owner:       g.owner,
		Phase:       g.phase,
		Round:       g.round,
		BetSize:     g.stake.betSize,
		StakePolicy: g.stake.policy,
		Pot:         g.roster.pot,
		Winner:      g.winner,
		Players:     g.roster.Players(),
		Balances:    balances,
		Retained:    g.roster.retained,
	}
}
