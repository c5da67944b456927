package rpsls

import "errors"

var (
	ErrNotOwner           = errors.New("caller is not the game owner")
	ErrGameInProgress     = errors.New("a game is in progress")
	ErrNotActive          = errors.New("caller is not an active player")
	ErrAlreadyMoved       = errors.New("caller already moved this round")
	ErrWrongStake         = errors.New("stake does not match the bet size")
	ErrGameFinished       = errors.New("the game is finished")
	ErrAlreadyJoined      = errors.New("caller already joined")
	ErrGameAlreadyStarted = errors.New("the game already started")

	ErrNotEnoughPlayers = errors.New("at least two players must join before the first move")
	ErrInvalidMove      = errors.New("invalid move")
	ErrInvalidPlayer    = errors.New("invalid player identity")
	ErrLobbyFull        = errors.New("the lobby is full")
	ErrNotJoined        = errors.New("player is not in the lobby")
	ErrUnknownAction    = errors.New("unknown action")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrNotOwner, "NotOwner"},
	{ErrGameInProgress, "GameInProgress"},
	{ErrNotActive, "NotActive"},
	{ErrAlreadyMoved, "AlreadyMoved"},
	{ErrWrongStake, "WrongStake"},
	{ErrGameFinished, "GameFinished"},
	{ErrAlreadyJoined, "AlreadyJoined"},
	{ErrGameAlreadyStarted, "GameAlreadyStarted"},
	{ErrNotEnoughPlayers, "NotEnoughPlayers"},
	{ErrInvalidMove, "InvalidMove"},
	{ErrInvalidPlayer, "InvalidPlayer"},
	{ErrLobbyFull, "LobbyFull"},
	{ErrNotJoined, "NotJoined"},
	{ErrUnknownAction, "UnknownAction"},
}

// ErrorKind returns the stable name of the rejection carried by err, or
// "Internal" when err does not wrap one of the package errors.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Internal"
}

// ErrorFromKind is the inverse of ErrorKind. It returns nil for unknown kinds.
func ErrorFromKind(kind string) error {
	for _, k := range errorKinds {
		if k.kind == kind {
			return k.err
		}
	}
	return nil
}
