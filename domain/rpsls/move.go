package rpsls

import (
	"fmt"
	"strings"
)

type Move string

const (
	Rock     Move = "rock"
	Paper    Move = "paper"
	Scissors Move = "scissors"
	Lizard   Move = "lizard"
	Spock    Move = "spock"
)

// beats[m] lists the two moves that m defeats.
var beats = map[Move][2]Move{
	Rock:     {Scissors, Lizard},
	Paper:    {Rock, Spock},
	Scissors: {Paper, Lizard},
	Lizard:   {Spock, Paper},
	Spock:    {Rock, Scissors},
}

// Moves returns the five moves in canonical order.
func Moves() []Move {
	return []Move{Rock, Paper, Scissors, Lizard, Spock}
}

// Valid reports whether m is one of the five moves.
func (m Move) Valid() bool {
	_, ok := beats[m]
	return ok
}

// Beats reports whether m defeats other. A move never beats itself.
func (m Move) Beats(other Move) bool {
	for _, b := range beats[m] {
		if b == other {
			return true
		}
	}
	return false
}

func (m Move) String() string {
	if !m.Valid() {
		return "none"
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// ParseMove converts a case-insensitive move name into a Move.
func ParseMove(s string) (Move, error) {
	m := Move(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	return m, nil
}
