package rpsls

type PlayerID string

type Status string

const (
	Active     Status = "active"
	Eliminated Status = "eliminated"
)

// Phase is the lifecycle stage of the game.
type Phase string

const (
	Idle       Phase = "idle"
	Collecting Phase = "collecting"
	Resolving  Phase = "resolving"
	Finished   Phase = "finished"
)

// InProgress reports whether a round is running, i.e. the bet size is locked.
func (p Phase) InProgress() bool {
	return p == Collecting || p == Resolving
}

type Player struct {
	ID     PlayerID `json:"id"`
	Status Status   `json:"status"`
	Moved  bool     `json:"moved"`
	Move   Move     `json:"-"`     // hidden until the round resolves
	Stake  uint64   `json:"stake"` // contributed in the current game
}

func (p *Player) clearMove() {
	p.Moved = false
	p.Move = ""
}
