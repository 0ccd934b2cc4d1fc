package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"feedtochat/internal/history"
)

// newHistoryCommand builds the "history" subcommand listing recent
// dispatches.
func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently dispatched URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.History || cfg.HistoryPath == "" {
				fmt.Println("History is disabled (history = false in the config).")
				return nil
			}

			store, err := history.Open(cfg.HistoryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No dispatches recorded yet.")
				return nil
			}

			fmt.Println(renderHistoryTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show")
	return cmd
}

func renderHistoryTable(entries []history.Entry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"When", "Kind", "Provider", "Clip", "URL"})

	for _, e := range entries {
		clip := ""
		if e.Clipboard {
			clip = "yes"
		}
		tw.AppendRow(table.Row{
			e.CreatedAt.Local().Format(time.DateTime),
			e.Kind,
			e.Provider,
			clip,
			e.URL,
		})
	}

	return tw.Render()
}
