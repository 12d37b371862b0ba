package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"embedkit/internal/config"
	"embedkit/internal/history"
	"embedkit/internal/ui"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently rendered embeds",
	RunE:  historyRun,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all render history",
	RunE:  historyClearRun,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of entries to show")
	historyCmd.AddCommand(historyClearCmd)
}

func openHistory() (*history.Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

func historyRun(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s %s\n",
			ui.Field(e.Service, fmt.Sprintf("%s (%dx%d)", e.MediaID, e.Width, e.Height)),
			ui.Faint.Render(e.CreatedAt.Local().Format(time.DateTime)))
	}
	return nil
}

func historyClearRun(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("History cleared.")
	return nil
}
