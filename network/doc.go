// Package network carries player actions to the engine and engine
// notifications back to the players over websockets.
//
// # Core Components
//
// Server: HTTP handler exposing the websocket endpoint together with
// read-only JSON views of the game state and the action ledger.
//
// Client: the player side of a websocket session.
//
// # Protocol
//
// Every frame is a JSON envelope {"t": type, "id": request, "m": payload}. A
// session opens with a hello naming the player; from then on the server stamps
// that identity on every action of the session. Each action is answered with
// either an ack carrying the resulting events or an error carrying a stable
// kind, both echoing the id of the action. Events of every accepted action,
// whoever sent it, are pushed to every session.
//
// A move is visible only to its player until the round resolves: other
// sessions receive MoveAccepted without the move, and /ledger leaves the moves
// of the open round out. The RoundResolved event carries all of them.
//
// # Identity
//
// The hello is taken at its word. Whoever claims the owner's name gets the
// owner's actions, so a deployment must authenticate players in front of the
// /ws endpoint (a reverse proxy or a wrapping http.Handler) and only let a
// hello through for the identity it verified.
package network
