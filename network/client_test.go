package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
)

// newSlowServer answers every action with an ack naming it, holding the
// answer to stop actions back for delay.
func newSlowServer(t *testing.T, delay time.Duration) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		ctx := r.Context()

		var hello Msg
		if err := wsjson.Read(ctx, conn, &hello); err != nil {
			return
		}
		welcome, _ := newMsg(MsgWelcome, rpsls.State{})
		if err := wsjson.Write(ctx, conn, welcome); err != nil {
			return
		}
		for {
			var m Msg
			if err := wsjson.Read(ctx, conn, &m); err != nil {
				return
			}
			a, err := rpsls.ActionFromPayload(m.M)
			if err != nil {
				return
			}
			if a.Type == rpsls.ActionStop {
				time.Sleep(delay)
			}
			reply, _ := newMsg(MsgAck, Ack{Events: []rpsls.Event{{Type: rpsls.EventType("reply_to_" + string(a.Type))}}})
			reply.ID = m.ID
			if err := wsjson.Write(ctx, conn, reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestLateReplyIsNotTakenForTheNextAction(t *testing.T) {
	url := newSlowServer(t, 200*time.Millisecond)
	c := dial(t, url, "alice")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Do(ctx, rpsls.StopGame(""))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	events, err := do(t, c, rpsls.Join(""))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, rpsls.EventType("reply_to_join"), events[0].Type)

	events, err = do(t, c, rpsls.StopGame(""))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, rpsls.EventType("reply_to_stop"), events[0].Type)
}
