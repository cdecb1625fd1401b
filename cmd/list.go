package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HughBone/minecraft-stat-saver/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored report runs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs stored yet. Run 'mcstats report' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-20s  %7s  %10s\n",
		"ID", "CREATED", "STATS DIR", "PLAYERS", "CATEGORIES")
	fmt.Fprintf(os.Stdout, "%-5s  %-20s  %-20s  %7s  %10s\n",
		"─────", "────────────────────", "────────────────────", "───────", "──────────")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-5d  %-20s  %-20s  %7d  %10d\n",
			r.ID, r.CreatedAt, r.StatsDir, r.PlayerCount, r.CategoryCount)
	}
	return nil
}
