// Package engine serializes caller actions on a single game. It is the only
// arbiter of the order in which actions are accepted: each action is applied,
// recorded in the ledger and published to subscribers before the next one is
// looked at.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
	"github.com/luca-patrignani/mental-rpsls/ledger"
)

// Notification is the batch of events produced by one accepted action.
type Notification struct {
	Index    int           `json:"index"`
	ActionID string        `json:"action_id"`
	Events   []rpsls.Event `json:"events"`
}

type Engine struct {
	mu     sync.Mutex
	game   *rpsls.Game
	ledger *ledger.Blockchain
	logger *slog.Logger

	subsMu      sync.RWMutex
	subs        map[chan Notification]struct{}
	sendTimeout time.Duration
}

type Option func(*Engine)

func New(game *rpsls.Game, opts ...Option) *Engine {
	e := &Engine{
		game:        game,
		ledger:      ledger.NewBlockchain(),
		logger:      slog.Default(),
		subs:        map[chan Notification]struct{}{},
		sendTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

func WithLedger(bc *ledger.Blockchain) Option {
	return func(e *Engine) {
		e.ledger = bc
	}
}

// WithSendTimeout bounds how long a slow subscriber may hold up the engine.
func WithSendTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.sendTimeout = d
	}
}

// Handle applies a as one atomic step. A rejected action returns the domain
// error and leaves the game untouched.
func (e *Engine) Handle(ctx context.Context, a rpsls.Action) ([]rpsls.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	events, err := e.game.Apply(a)
	if err != nil {
		e.logger.Warn("action rejected",
			"type", a.Type, "player", a.Player, "kind", rpsls.ErrorKind(err), "error", err)
		return nil, err
	}

	block, err := e.ledger.Append(a, events, ledger.Metadata{
		GameID: e.game.ID(),
		Phase:  e.game.Phase(),
		Round:  e.game.Round(),
		Pot:    e.game.Roster().PotBalance(),
	})
	if err != nil {
		// the game already moved on, the audit trail is what is lost
		e.logger.Error("could not record action", "type", a.Type, "error", err)
	}
	e.logger.Info("action accepted",
		"type", a.Type, "player", a.Player, "phase", e.game.Phase(), "round", e.game.Round(), "events", len(events))
	for _, ev := range events {
		e.logEvent(ev)
	}

	e.publish(Notification{Index: block.Index, ActionID: block.ActionID, Events: events})
	return events, nil
}

func (e *Engine) logEvent(ev rpsls.Event) {
	switch ev.Type {
	case rpsls.EventRoundResolved:
		e.logger.Info("round resolved", "game", ev.GameID, "round", ev.Round, "draw", ev.Draw, "eliminated", ev.Eliminated)
	case rpsls.EventGameOver:
		e.logger.Info("game over", "game", ev.GameID, "winner", ev.Winner, "pot", ev.Pot)
	case rpsls.EventGameStopped:
		e.logger.Info("game stopped", "game", ev.GameID, "refunds", ev.Refunds)
	}
}

// State returns a snapshot of the game.
func (e *Engine) State() rpsls.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.Snapshot()
}

func (e *Engine) Ledger() *ledger.Blockchain {
	return e.ledger
}

// Subscribe returns a channel receiving every notification published after the
// call. The channel is closed once ctx is done.
func (e *Engine) Subscribe(ctx context.Context, buffer int) <-chan Notification {
	ch := make(chan Notification, buffer)
	e.subsMu.Lock()
	e.subs[ch] = struct{}{}
	e.subsMu.Unlock()

	go func() {
		<-ctx.Done()
		e.subsMu.Lock()
		delete(e.subs, ch)
		close(ch)
		e.subsMu.Unlock()
	}()
	return ch
}

func (e *Engine) publish(n Notification) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()

	for ch := range e.subs {
		select {
		case ch <- n:
		default:
			select {
			case ch <- n:
			case <-time.After(e.sendTimeout):
				e.logger.Warn("subscriber too slow, notification dropped", "index", n.Index)
			}
		}
	}
}
