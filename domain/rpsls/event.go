package rpsls

type EventType string

const (
	EventPlayerJoined   EventType = "player_joined"
	EventPlayerRemoved  EventType = "player_removed"
	EventMoveAccepted   EventType = "move_accepted"
	EventRoundResolved  EventType = "round_resolved"
	EventGameOver       EventType = "game_over"
	EventBetSizeChanged EventType = "bet_size_changed"
	EventGameStopped    EventType = "game_stopped"
	EventGameReset      EventType = "game_reset"
)

// Event is an observable outcome of an accepted action. Only the fields
// relevant to Type are set. A RoundResolved event reveals every move of the
// round.
type Event struct {
	Type       EventType           `json:"type"`
	GameID     string              `json:"game_id,omitempty"`
	Round      uint                `json:"round,omitempty"`
	Player     PlayerID            `json:"player,omitempty"`
	Move       Move                `json:"move,omitempty"`
	Moves      map[PlayerID]Move   `json:"moves,omitempty"`
	Draw       bool                `json:"draw,omitempty"`
	Eliminated []PlayerID          `json:"eliminated,omitempty"`
	Winner     PlayerID            `json:"winner,omitempty"`
	Pot        uint64              `json:"pot,omitempty"`
	BetSize    uint64              `json:"bet_size"`
	Refunds    map[PlayerID]uint64 `json:"refunds,omitempty"`
	Retained   uint64              `json:"retained,omitempty"`
}

func (g *Game) event(t EventType) Event {
	return Event{Type: t, GameID: g.id, Round: g.round, BetSize: g.stake.betSize}
}
