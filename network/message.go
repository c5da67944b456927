package network

import (
	"encoding/json"
	"fmt"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
)

const (
	MsgHello   = "hello"
	MsgWelcome = "welcome"
	MsgAction  = "action"
	MsgAck     = "ack"
	MsgError   = "error"
	MsgEvent   = "event"
)

// Msg is the envelope of every websocket frame. ID ties an ack or an error
// to the action it answers.
type Msg struct {
	T  string          `json:"t"`
	ID string          `json:"id,omitempty"`
	M  json.RawMessage `json:"m,omitempty"`
}

func newMsg(t string, payload any) (Msg, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Msg{}, err
	}
	return Msg{T: t, M: b}, nil
}

type Hello struct {
	Player rpsls.PlayerID `json:"player"`
}

type Ack struct {
	Events []rpsls.Event `json:"events"`
}

// RemoteError is a rejection reported by the server. It unwraps to the
// matching rpsls error so errors.Is works on both sides of the wire.
type RemoteError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return rpsls.ErrorFromKind(e.Kind)
}
