package network

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
	"github.com/luca-patrignani/mental-rpsls/engine"
)

type Server struct {
	engine         *engine.Engine
	logger         *slog.Logger
	originPatterns []string
	helloTimeout   time.Duration
	pingInterval   time.Duration
	mux            *http.ServeMux
}

type serverOption func(Server) Server

func NewServer(e *engine.Engine, opts ...serverOption) *Server {
	s := Server{
		engine:       e,
		logger:       slog.Default(),
		helloTimeout: 10 * time.Second,
		pingInterval: 15 * time.Second,
	}
	for _, opt := range opts {
		s = opt(s)
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/ws", s.ServeWS)
	s.mux.HandleFunc("/state", s.serveState)
	s.mux.HandleFunc("/ledger", s.serveLedger)
	s.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &s
}

func WithServerLogger(l *slog.Logger) serverOption {
	return func(s Server) Server {
		s.logger = l
		return s
	}
}

// WithOriginPatterns lists the browser origins allowed to open a session.
// Clients that send no Origin header are always accepted.
func WithOriginPatterns(patterns ...string) serverOption {
	return func(s Server) Server {
		s.originPatterns = append(s.originPatterns, patterns...)
		return s
	}
}

func WithHelloTimeout(d time.Duration) serverOption {
	return func(s Server) Server {
		s.helloTimeout = d
		return s
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ServeWS runs one player session.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.originPatterns})
	if err != nil {
		s.logger.Warn("websocket handshake failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected close")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	player, err := s.readHello(ctx, conn)
	if err != nil {
		s.logger.Warn("session without hello", "remote", r.RemoteAddr, "error", err)
		conn.Close(websocket.StatusPolicyViolation, "hello expected")
		return
	}
	logger := s.logger.With("player", player)
	logger.Info("player connected", "remote", r.RemoteAddr)

	replies := make(chan Msg, 8)
	// subscribe before the welcome so no event after the snapshot is missed
	notifications := s.engine.Subscribe(ctx, 32)
	welcome, err := newMsg(MsgWelcome, s.engine.State())
	if err != nil {
		return
	}
	replies <- welcome

	go s.writeLoop(ctx, cancel, conn, player, replies, notifications, logger)

	for {
		var m Msg
		if err := wsjson.Read(ctx, conn, &m); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				logger.Warn("session read failed", "error", err)
			}
			break
		}
		reply, err := s.handle(ctx, player, m)
		if err != nil {
			logger.Error("could not build reply", "error", err)
			break
		}
		select {
		case replies <- reply:
		case <-ctx.Done():
		}
	}
	logger.Info("player disconnected")
	conn.Close(websocket.StatusNormalClosure, "bye")
}

func (s *Server) readHello(ctx context.Context, conn *websocket.Conn) (rpsls.PlayerID, error) {
	ctx, cancel := context.WithTimeout(ctx, s.helloTimeout)
	defer cancel()

	var m Msg
	if err := wsjson.Read(ctx, conn, &m); err != nil {
		return "", err
	}
	if m.T != MsgHello {
		return "", errors.New("first message is " + strconv.Quote(m.T))
	}
	var h Hello
	if err := json.Unmarshal(m.M, &h); err != nil {
		return "", err
	}
	if h.Player == "" {
		return "", rpsls.ErrInvalidPlayer
	}
	return h.Player, nil
}

// handle turns one inbound frame into the reply for its sender.
func (s *Server) handle(ctx context.Context, player rpsls.PlayerID, m Msg) (Msg, error) {
	reply, err := s.reply(ctx, player, m)
	reply.ID = m.ID
	return reply, err
}

func (s *Server) reply(ctx context.Context, player rpsls.PlayerID, m Msg) (Msg, error) {
	if m.T != MsgAction {
		return newMsg(MsgError, RemoteError{Kind: "BadRequest", Message: "unexpected message " + strconv.Quote(m.T)})
	}
	a, err := rpsls.ActionFromPayload(m.M)
	if err != nil {
		return newMsg(MsgError, RemoteError{Kind: "BadRequest", Message: err.Error()})
	}
	// the session identity is the caller, whatever the payload claims
	a.Player = player

	events, err := s.engine.Handle(ctx, a)
	if err != nil {
		return newMsg(MsgError, RemoteError{Kind: rpsls.ErrorKind(err), Message: err.Error()})
	}
	return newMsg(MsgAck, Ack{Events: events})
}

func (s *Server) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, player rpsls.PlayerID,
	replies <-chan Msg, notifications <-chan engine.Notification, logger *slog.Logger) {
	defer cancel()
	ping := time.NewTicker(s.pingInterval)
	defer ping.Stop()

	for {
		var m Msg
		select {
		case <-ctx.Done():
			return
		case m = <-replies:
		case n, ok := <-notifications:
			if !ok {
				return
			}
			n.Events = hideMoves(n.Events, player)
			var err error
			if m, err = newMsg(MsgEvent, n); err != nil {
				logger.Error("could not encode notification", "error", err)
				continue
			}
		case <-ping.C:
			if err := conn.Ping(ctx); err != nil {
				logger.Warn("ping failed", "error", err)
				return
			}
			continue
		}
		if err := wsjson.Write(ctx, conn, m); err != nil {
			logger.Warn("session write failed", "error", err)
			return
		}
	}
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.State())
}

// serveLedger returns the ledger blocks from the index given by ?from=. Moves
// of the round still being played are left out.
func (s *Server) serveLedger(w http.ResponseWriter, r *http.Request) {
	from := 0
	if v := r.URL.Query().Get("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "from must be an integer", http.StatusBadRequest)
			return
		}
		from = n
	}
	writeJSON(w, hideOpenRound(s.engine.Ledger().Since(from)))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
