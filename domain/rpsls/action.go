package rpsls

import "encoding/json"

type ActionType string

const (
	ActionJoin         ActionType = "join"
	ActionMove         ActionType = "move"
	ActionSetBetSize   ActionType = "set_bet_size"
	ActionStop         ActionType = "stop"
	ActionReset        ActionType = "reset"
	ActionRemovePlayer ActionType = "remove_player"
)

// Action is a request issued by Player. Only the fields relevant to Type are
// read.
type Action struct {
	Type    ActionType `json:"type"`
	Player  PlayerID   `json:"player"`
	Move    Move       `json:"move,omitempty"`
	Stake   uint64     `json:"stake,omitempty"`
	BetSize uint64     `json:"bet_size,omitempty"`
	Target  PlayerID   `json:"target,omitempty"`
}

func Join(player PlayerID) Action {
	return Action{Type: ActionJoin, Player: player}
}

func SubmitMove(player PlayerID, m Move, stake uint64) Action {
	return Action{Type: ActionMove, Player: player, Move: m, Stake: stake}
}

func SetBetSize(owner PlayerID, size uint64) Action {
	return Action{Type: ActionSetBetSize, Player: owner, BetSize: size}
}

func StopGame(owner PlayerID) Action {
	return Action{Type: ActionStop, Player: owner}
}

func ResetGame(owner PlayerID) Action {
	return Action{Type: ActionReset, Player: owner}
}

func RemovePlayer(owner, target PlayerID) Action {
	return Action{Type: ActionRemovePlayer, Player: owner, Target: target}
}

// ToPayload serializes the action for the transport and the ledger.
func (a Action) ToPayload() ([]byte, error) {
	return json.Marshal(a)
}

func ActionFromPayload(data []byte) (Action, error) {
	var a Action
	err := json.Unmarshal(data, &a)
	return a, err
}
