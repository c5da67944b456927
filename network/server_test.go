package network

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
	"github.com/luca-patrignani/mental-rpsls/engine"
	"github.com/luca-patrignani/mental-rpsls/ledger"
)

func newTestServer(t *testing.T, bet uint64) (*httptest.Server, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := engine.New(rpsls.NewGame("alice", rpsls.WithBetSize(bet)), engine.WithLogger(logger))
	srv := NewServer(e, WithServerLogger(logger), WithHelloTimeout(time.Second))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string, player rpsls.PlayerID) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := Dial(ctx, url, player)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func do(t *testing.T, c *Client, a rpsls.Action) ([]rpsls.Event, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.Do(ctx, a)
}

// waitFor drains notifications until one carries an event of type typ.
func waitFor(t *testing.T, c *Client, typ rpsls.EventType) rpsls.Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case n, ok := <-c.Notifications():
			require.True(t, ok, "session closed")
			for _, ev := range n.Events {
				if ev.Type == typ {
					return ev
				}
			}
		case <-timeout:
			t.Fatalf("no %s notification", typ)
		}
	}
}

func TestSessionPlaysAGame(t *testing.T) {
	_, url := newTestServer(t, 100)
	alice := dial(t, url, "alice")
	bob := dial(t, url, "bob")

	_, err := do(t, alice, rpsls.Join(""))
	require.NoError(t, err)
	_, err = do(t, bob, rpsls.Join(""))
	require.NoError(t, err)

	_, err = do(t, bob, rpsls.SubmitMove("", rpsls.Rock, 99))
	require.ErrorIs(t, err, rpsls.ErrWrongStake)
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "WrongStake", rerr.Kind)

	_, err = do(t, bob, rpsls.SubmitMove("", rpsls.Rock, 100))
	require.NoError(t, err)
	events, err := do(t, alice, rpsls.SubmitMove("", rpsls.Paper, 100))
	require.NoError(t, err)
	require.Len(t, events, 3)

	over := waitFor(t, bob, rpsls.EventGameOver)
	assert.Equal(t, rpsls.PlayerID("alice"), over.Winner)
	assert.Equal(t, uint64(200), over.Pot)
}

func TestSessionIdentityIsStamped(t *testing.T) {
	_, url := newTestServer(t, 0)
	bob := dial(t, url, "bob")

	// claiming to be the owner in the payload does not help
	_, err := do(t, bob, rpsls.SetBetSize("alice", 5))
	assert.ErrorIs(t, err, rpsls.ErrNotOwner)

	alice := dial(t, url, "alice")
	_, err = do(t, alice, rpsls.SetBetSize("", 5))
	require.NoError(t, err)
	ev := waitFor(t, bob, rpsls.EventBetSizeChanged)
	assert.Equal(t, uint64(5), ev.BetSize)
}

func TestSessionWithoutHelloIsClosed(t *testing.T) {
	_, url := newTestServer(t, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	msg, err := newMsg(MsgAction, rpsls.Join("mallory"))
	require.NoError(t, err)
	require.NoError(t, wsjson.Write(ctx, conn, msg))

	var m Msg
	err = wsjson.Read(ctx, conn, &m)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
}

func TestStateAndLedgerEndpoints(t *testing.T) {
	ts, url := newTestServer(t, 0)
	alice := dial(t, url, "alice")
	_, err := do(t, alice, rpsls.Join(""))
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	var state rpsls.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, rpsls.Idle, state.Phase)
	require.Len(t, state.Players, 1)
	assert.Equal(t, rpsls.PlayerID("alice"), state.Players[0].ID)

	resp2, err := http.Get(ts.URL + "/ledger?from=1")
	require.NoError(t, err)
	defer resp2.Body.Close()
	var blocks []ledger.Block
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&blocks))
	require.Len(t, blocks, 1)
	assert.Equal(t, rpsls.ActionJoin, blocks[0].Action.Type)

	resp3, err := http.Get(ts.URL + "/ledger?from=x")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestMovesStayHiddenUntilTheRoundResolves(t *testing.T) {
	ts, url := newTestServer(t, 0)
	alice := dial(t, url, "alice")
	bob := dial(t, url, "bob")
	_, err := do(t, alice, rpsls.Join(""))
	require.NoError(t, err)
	_, err = do(t, bob, rpsls.Join(""))
	require.NoError(t, err)

	events, err := do(t, alice, rpsls.SubmitMove("", rpsls.Rock, 0))
	require.NoError(t, err)
	assert.Equal(t, rpsls.Rock, events[0].Move, "the mover sees its own move")

	seen := waitFor(t, bob, rpsls.EventMoveAccepted)
	assert.Equal(t, rpsls.PlayerID("alice"), seen.Player)
	assert.Empty(t, seen.Move)
	own := waitFor(t, alice, rpsls.EventMoveAccepted)
	assert.Equal(t, rpsls.Rock, own.Move)

	blocks := getLedger(t, ts.URL, 3)
	require.Len(t, blocks, 1)
	assert.Equal(t, rpsls.ActionMove, blocks[0].Action.Type)
	assert.Empty(t, blocks[0].Action.Move)
	assert.Empty(t, blocks[0].Events[0].Move)

	_, err = do(t, bob, rpsls.SubmitMove("", rpsls.Scissors, 0))
	require.NoError(t, err)
	resolved := waitFor(t, bob, rpsls.EventRoundResolved)
	assert.Equal(t, rpsls.Rock, resolved.Moves["alice"])
	assert.Equal(t, rpsls.Scissors, resolved.Moves["bob"])

	blocks = getLedger(t, ts.URL, 3)
	require.Len(t, blocks, 2)
	assert.Equal(t, rpsls.Rock, blocks[0].Action.Move)
	assert.Equal(t, rpsls.Scissors, blocks[1].Action.Move)
}

func getLedger(t *testing.T, base string, from int) []ledger.Block {
	t.Helper()
	resp, err := http.Get(base + "/ledger?from=" + strconv.Itoa(from))
	require.NoError(t, err)
	defer resp.Body.Close()
	var blocks []ledger.Block
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&blocks))
	return blocks
}
