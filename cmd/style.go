package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
)

// fetchState reads the table from the /state endpoint next to the websocket.
func fetchState(ctx context.Context, wsURL string) (rpsls.State, error) {
	url := strings.Replace(strings.TrimSuffix(wsURL, "/ws"), "ws", "http", 1) + "/state"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return rpsls.State{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return rpsls.State{}, err
	}
	defer resp.Body.Close()
	var s rpsls.State
	err = json.NewDecoder(resp.Body).Decode(&s)
	return s, err
}

func describeEvent(ev rpsls.Event) string {
	switch ev.Type {
	case rpsls.EventPlayerJoined:
		return fmt.Sprintf("%s joined the table", ev.Player)
	case rpsls.EventPlayerRemoved:
		return fmt.Sprintf("%s was removed from the table", ev.Player)
	case rpsls.EventMoveAccepted:
		return fmt.Sprintf("%s played in round %d", ev.Player, ev.Round)
	case rpsls.EventRoundResolved:
		if ev.Draw {
			return fmt.Sprintf("Round %d is a draw, play again", ev.Round)
		}
		names := make([]string, len(ev.Eliminated))
		for i, p := range ev.Eliminated {
			names[i] = string(p)
		}
		return fmt.Sprintf("Round %d eliminated %s", ev.Round, strings.Join(names, ", "))
	case rpsls.EventGameOver:
		return fmt.Sprintf("%s won %d taking down the pot", ev.Winner, ev.Pot)
	case rpsls.EventBetSizeChanged:
		return fmt.Sprintf("The bet size is now %d", ev.BetSize)
	case rpsls.EventGameStopped:
		ids := make([]string, 0, len(ev.Refunds))
		for id := range ev.Refunds {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = fmt.Sprintf("%s %d", id, ev.Refunds[rpsls.PlayerID(id)])
		}
		return "The game was stopped, refunds: " + strings.Join(parts, ", ")
	case rpsls.EventGameReset:
		if ev.Retained > 0 {
			return fmt.Sprintf("The table is open for a new game, %d retained from the stopped one", ev.Retained)
		}
		return "The table is open for a new game"
	}
	return string(ev.Type)
}

func printState(s rpsls.State, me rpsls.PlayerID) {
	var panels []pterm.Panel
	for _, p := range s.Players {
		panels = append(panels, pterm.Panel{Data: printPlayerInfo(p, p.ID == me, s.Balances[p.ID])})
	}
	board := pterm.Panel{Data: printBoardInfo(s)}
	rows := [][]pterm.Panel{{board}}
	if len(panels) > 0 {
		rows = append(rows, panels)
	}
	_ = pterm.DefaultPanel.WithPanels(rows).Render()
}

func printPlayerInfo(p rpsls.Player, main bool, balance uint64) string {
	hpadding := 4
	if main {
		hpadding = 10
	}
	pbox := pterm.DefaultBox.WithLeftPadding(hpadding).WithRightPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)
	var status string
	if p.Status == rpsls.Eliminated {
		status = pterm.LightRed("Eliminated")
	} else {
		status = pterm.LightGreen("Active")
	}
	moved := "waiting"
	if p.Moved {
		moved = "moved"
	}
	return pbox.WithTitle(string(p.ID)).WithTitleTopLeft().Sprintf("%s (%s)\nStake: %d\nBalance: %d\n", status, moved, p.Stake, balance)
}

func printBoardInfo(s rpsls.State) string {
	info := fmt.Sprintf("Phase: %s | Round: %d | Bet: %d (%s) | Pot: %d | Owner: %s", s.Phase, s.Round, s.BetSize, s.StakePolicy, s.Pot, s.Owner)
	if s.Winner != "" {
		info += " | Winner: " + string(s.Winner)
	}
	return pterm.BgGreen.Sprint("\n" + info + "\n")
}
