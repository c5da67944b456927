package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/spf13/cobra"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
	"github.com/luca-patrignani/mental-rpsls/network"
)

const (
	choiceJoin   = "Join the game"
	choiceMove   = "Play a move"
	choiceBet    = "Change the bet size"
	choiceStop   = "Stop the game"
	choiceReset  = "Reset the game"
	choiceRemove = "Remove a player"
	choiceState  = "Show the table"
	choiceQuit   = "Quit"
)

func playCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Join a game as a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, _ := cmd.Flags().GetString("url")
			player, _ := cmd.Flags().GetString("player")
			return play(cmd.Context(), url, rpsls.PlayerID(player), logger)
		},
	}
	cmd.Flags().StringP("url", "u", "ws://localhost:8080/ws", "websocket address of the game")
	cmd.Flags().StringP("player", "p", "", "your player identity")
	return cmd
}

func play(ctx context.Context, url string, player rpsls.PlayerID, logger *slog.Logger) error {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("R", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("PSLS", pterm.FgDarkGray.ToStyle()),
	).Render()

	if player == "" {
		name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your username").Show()
		player = rpsls.PlayerID(strings.TrimSpace(name))
		pterm.Println()
	}

	spinner, _ := pterm.DefaultSpinner.Start("Connecting to " + url + " ...")
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, state, err := network.Dial(dialCtx, url, player)
	cancel()
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success("Connected as " + string(player))
	defer client.Close()

	printState(state, player)
	go func() {
		for n := range client.Notifications() {
			for _, ev := range n.Events {
				pterm.Info.Println(describeEvent(ev))
			}
		}
		logger.Warn("session closed")
	}()

	for {
		options := []string{choiceJoin, choiceMove, choiceState, choiceQuit}
		if player == state.Owner {
			options = []string{choiceJoin, choiceMove, choiceBet, choiceStop, choiceReset, choiceRemove, choiceState, choiceQuit}
		}
		choice, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show()
		if err != nil {
			return err
		}
		if choice == choiceQuit {
			return nil
		}
		if choice == choiceState {
			fresh, err := fetchState(ctx, url)
			if err != nil {
				logger.Error("could not fetch the table", "error", err)
				continue
			}
			state = fresh
			printState(state, player)
			continue
		}

		action, err := inputAction(choice, state)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		_, err = client.Do(reqCtx, action)
		cancel()
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Success.Println("Accepted")
		if fresh, err := fetchState(ctx, url); err == nil {
			state = fresh
		}
	}
}

// inputAction asks the details of the chosen action.
func inputAction(choice string, state rpsls.State) (rpsls.Action, error) {
	switch choice {
	case choiceJoin:
		return rpsls.Join(""), nil
	case choiceMove:
		names := make([]string, 0, 5)
		for _, m := range rpsls.Moves() {
			names = append(names, m.String())
		}
		picked, err := pterm.DefaultInteractiveSelect.WithOptions(names).Show()
		if err != nil {
			return rpsls.Action{}, err
		}
		m, err := rpsls.ParseMove(picked)
		if err != nil {
			return rpsls.Action{}, err
		}
		stake, err := inputAmount("Stake", state.BetSize)
		if err != nil {
			return rpsls.Action{}, err
		}
		return rpsls.SubmitMove("", m, stake), nil
	case choiceBet:
		size, err := inputAmount("New bet size", state.BetSize)
		if err != nil {
			return rpsls.Action{}, err
		}
		return rpsls.SetBetSize("", size), nil
	case choiceStop:
		return rpsls.StopGame(""), nil
	case choiceReset:
		return rpsls.ResetGame(""), nil
	case choiceRemove:
		target, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Player to remove").Show()
		return rpsls.RemovePlayer("", rpsls.PlayerID(strings.TrimSpace(target))), nil
	}
	return rpsls.Action{}, fmt.Errorf("unknown choice %q", choice)
}

func inputAmount(prompt string, def uint64) (uint64, error) {
	s, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText(prompt).
		WithDefaultValue(strconv.FormatUint(def, 10)).
		Show()
	return parseAmount(s)
}

func parseAmount(s string) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an amount", s)
	}
	return v, nil
}
