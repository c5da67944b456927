package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/luca-patrignani/mental-rpsls/discovery"
)

func findCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List the games announced on this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			host, _ := cmd.Flags().GetString("host")
			start, _ := cmd.Flags().GetUint16("start-port")
			end, _ := cmd.Flags().GetUint16("end-port")

			spinner, _ := pterm.DefaultSpinner.Start("Looking for games ...")
			entries := discovery.Search(cmd.Context(), host, start, end)
			if len(entries) == 0 {
				spinner.Warning("No game found")
				return nil
			}
			spinner.Success()
			return pterm.DefaultTable.WithHasHeader().WithData(entriesTable(entries)).Render()
		},
	}
	cmd.Flags().String("host", "localhost", "host to probe")
	cmd.Flags().Uint16("start-port", 9000, "first discovery port")
	cmd.Flags().Uint16("end-port", 9010, "last discovery port")
	return cmd
}

func entriesTable(entries []discovery.Entry) pterm.TableData {
	data := pterm.TableData{{"Name", "URL"}}
	for _, e := range entries {
		data = append(data, []string{e.Name, e.URL})
	}
	return data
}
