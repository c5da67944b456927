package ledger

import "github.com/luca-patrignani/mental-rpsls/domain/rpsls"

// Block records one accepted action.
type Block struct {
	Index     int           `json:"index"`
	Timestamp int64         `json:"timestamp"`
	PrevHash  string        `json:"prev_hash"`
	Hash      string        `json:"hash"`
	ActionID  string        `json:"action_id"`
	Action    rpsls.Action  `json:"action"`
	Events    []rpsls.Event `json:"events"`
	Metadata  Metadata      `json:"metadata"`
}

// Metadata describes the game right after the action was applied.
type Metadata struct {
	GameID string      `json:"game_id,omitempty"`
	Phase  rpsls.Phase `json:"phase"`
	Round  uint        `json:"round"`
	Pot    uint64      `json:"pot"`
}
