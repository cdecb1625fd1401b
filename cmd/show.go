package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/HughBone/minecraft-stat-saver/internal/aggregator"
	"github.com/HughBone/minecraft-stat-saver/internal/report"
	"github.com/HughBone/minecraft-stat-saver/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Re-render the aggregate tables of a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	run, err := db.GetRun(id)
	if err != nil {
		return fmt.Errorf("load run %d: %w", id, err)
	}
	if run == nil {
		return fmt.Errorf("run %d not found", id)
	}

	records, reg, err := db.LoadRecords(id)
	if err != nil {
		return fmt.Errorf("load records for run %d: %w", id, err)
	}

	tables, err := aggregator.Aggregate(reg, records)
	if err != nil {
		return fmt.Errorf("aggregate run %d: %w", id, err)
	}

	fmt.Fprintf(os.Stdout, "Run %d  |  %s  |  %d player(s), %d categorie(s)\n",
		run.ID, run.CreatedAt, run.PlayerCount, run.CategoryCount)
	for _, table := range tables {
		report.PrintCategoryTable(os.Stdout, table)
	}
	return nil
}
