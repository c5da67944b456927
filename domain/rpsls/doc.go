// Package rpsls implements the domain logic of an elimination tournament of
// Rock-Paper-Scissors-Lizard-Spock played for a shared pot.
//
// # Core Types
//
// Game: the single aggregate holding the roster, the bet size, the current
// phase and the pot. Every caller action is validated and then applied to it,
// producing a batch of events.
//
// Player: a roster entry with its Active/Eliminated status, the move submitted
// in the current round and the stake contributed in the current game.
//
// Action: a caller request (join, move, set bet size, stop, reset, remove).
//
// Event: an observable outcome of an accepted action.
//
// # Game Flow
//
// A game is Idle until the first move is accepted. The round then collects one
// move from every Active player; the last move resolves the round on the spot.
// Players whose move is beaten by another move present are eliminated. When
// no move is left undefeated, or everybody played the same move, the round is
// a draw and is replayed. The last Active player takes the pot.
//
// # Administration
//
// The owner may change the bet size while no game is in progress, stop a game
// refunding the stakes of the players still in, reset a finished game so the
// same roster can play again, and remove players from the lobby.
package rpsls
