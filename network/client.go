package network

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
	"github.com/luca-patrignani/mental-rpsls/engine"
)

// Client is a player session. Actions are sent one at a time; notifications
// arrive on Notifications until the session ends.
type Client struct {
	Player rpsls.PlayerID

	conn          *websocket.Conn
	mu            sync.Mutex
	pendingMu     sync.Mutex
	pending       string
	replies       chan Msg
	notifications chan engine.Notification
	done          chan struct{}
	err           error
}

// Dial opens a session on the websocket url as player and returns the game
// state the server greeted it with.
func Dial(ctx context.Context, url string, player rpsls.PlayerID) (*Client, rpsls.State, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, rpsls.State{}, fmt.Errorf("dial %s: %w", url, err)
	}
	hello, err := newMsg(MsgHello, Hello{Player: player})
	if err != nil {
		conn.Close(websocket.StatusInternalError, "")
		return nil, rpsls.State{}, err
	}
	if err := wsjson.Write(ctx, conn, hello); err != nil {
		conn.Close(websocket.StatusInternalError, "")
		return nil, rpsls.State{}, fmt.Errorf("send hello: %w", err)
	}

	var welcome Msg
	if err := wsjson.Read(ctx, conn, &welcome); err != nil {
		conn.Close(websocket.StatusInternalError, "")
		return nil, rpsls.State{}, fmt.Errorf("read welcome: %w", err)
	}
	var state rpsls.State
	if welcome.T != MsgWelcome {
		conn.Close(websocket.StatusProtocolError, "welcome expected")
		return nil, rpsls.State{}, fmt.Errorf("expected welcome, got %q", welcome.T)
	}
	if err := json.Unmarshal(welcome.M, &state); err != nil {
		conn.Close(websocket.StatusProtocolError, "bad welcome")
		return nil, rpsls.State{}, err
	}

	c := &Client{
		Player:        player,
		conn:          conn,
		replies:       make(chan Msg, 1),
		notifications: make(chan engine.Notification, 64),
		done:          make(chan struct{}),
	}
	go c.readLoop()
	return c, state, nil
}

func (c *Client) readLoop() {
	defer close(c.done)
	defer close(c.notifications)
	for {
		var m Msg
		if err := wsjson.Read(context.Background(), c.conn, &m); err != nil {
			c.err = err
			return
		}
		switch m.T {
		case MsgEvent:
			var n engine.Notification
			if err := json.Unmarshal(m.M, &n); err != nil {
				c.err = err
				return
			}
			c.notifications <- n
		case MsgAck, MsgError:
			if c.awaits(m.ID) {
				c.replies <- m
			}
		}
	}
}

func (c *Client) await(id string) {
	c.pendingMu.Lock()
	c.pending = id
	c.pendingMu.Unlock()
}

// awaits reports whether a Do is still waiting for the reply id. Replies to
// actions whose Do already gave up are dropped here.
func (c *Client) awaits(id string) bool {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return id != "" && id == c.pending
}

// Notifications delivers the events of every action accepted by the server.
// The channel is closed when the session ends. It must be drained: a full
// channel stalls the replies to Do as well.
func (c *Client) Notifications() <-chan engine.Notification {
	return c.notifications
}

// Do sends a on behalf of the session player and waits for its outcome. A
// rejection is returned as a *RemoteError.
func (c *Client) Do(ctx context.Context, a rpsls.Action) ([]rpsls.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a.Player = c.Player
	msg, err := newMsg(MsgAction, a)
	if err != nil {
		return nil, err
	}
	msg.ID = uuid.NewString()
	c.await(msg.ID)
	defer c.await("")
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		return nil, fmt.Errorf("send %s: %w", a.Type, err)
	}

	var reply Msg
	for reply.ID != msg.ID {
		select {
		case reply = <-c.replies:
		case <-c.done:
			return nil, fmt.Errorf("session closed: %w", c.err)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if reply.T == MsgError {
		var rerr RemoteError
		if err := json.Unmarshal(reply.M, &rerr); err != nil {
			return nil, err
		}
		return nil, &rerr
	}
	var ack Ack
	if err := json.Unmarshal(reply.M, &ack); err != nil {
		return nil, err
	}
	return ack.Events, nil
}

func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "bye")
}
