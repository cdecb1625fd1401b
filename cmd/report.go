package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HughBone/minecraft-stat-saver/internal/aggregator"
	"github.com/HughBone/minecraft-stat-saver/internal/extractor"
	"github.com/HughBone/minecraft-stat-saver/internal/model"
	"github.com/HughBone/minecraft-stat-saver/internal/mojang"
	"github.com/HughBone/minecraft-stat-saver/internal/report"
	"github.com/HughBone/minecraft-stat-saver/internal/storage"
)

var (
	reportStatsDir string
	reportOutDir   string
	reportIgnore   []string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Resolve, extract and aggregate a directory of stats files",
	Long: `Reads every <uuid>.json stats file in the stats directory, resolves each
UUID to a display name via the Mojang session server (one lookup at a time,
throttled), writes per-player per-category CSV reports, then one cross-player
aggregate CSV per category under <out>/totals. The run is snapshotted to the
run-history database for 'list' and 'show'.

The first failed name resolution aborts the whole run; per-player reports
written before the failure are left on disk.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStatsDir, "stats-dir", "stats", "directory of <uuid>.json stats files")
	reportCmd.Flags().StringVar(&reportOutDir, "out-dir", "output", "directory for generated reports")
	reportCmd.Flags().StringSliceVar(&reportIgnore, "ignore", nil, "display names to exclude from all processing")
}

func runReport(cmd *cobra.Command, args []string) error {
	files, err := filepath.Glob(filepath.Join(reportStatsDir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", reportStatsDir, err)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stdout, "No stats files found in %s.\n", reportStatsDir)
		return nil
	}
	sort.Strings(files)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	resolver := mojang.NewClient()
	ext := extractor.New(reportIgnore)
	reg := model.NewRegistry()
	var records []*model.PlayerRecord

	for i, path := range files {
		uuid := strings.TrimSuffix(filepath.Base(path), ".json")

		name, err := resolver.Resolve(uuid)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", uuid, err)
		}
		fmt.Fprintf(os.Stdout, "[%d/%d] %s  %s\n", i+1, len(files), uuid, name)

		if ext.Skip(name) {
			fmt.Fprintf(os.Stdout, "  [skip] %s is on the ignore list\n", name)
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rec, err := ext.Extract(uuid, name, data, reg)
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}

		paths, err := report.WritePlayerReports(reportOutDir, rec)
		if err != nil {
			return fmt.Errorf("write reports for %s: %w", name, err)
		}
		fmt.Fprintf(os.Stdout, "  wrote %d category report(s)\n", len(paths))

		records = append(records, rec)
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No player records after filtering; skipping totals.")
		return nil
	}

	tables, err := aggregator.Aggregate(reg, records)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	totalsDir := filepath.Join(reportOutDir, report.TotalsDirName)
	for _, table := range tables {
		if _, err := report.WriteAggregate(totalsDir, table); err != nil {
			return fmt.Errorf("write totals for %s: %w", table.Category, err)
		}
		report.PrintCategoryTable(os.Stdout, table)
	}

	runID, err := db.InsertRun(reportStatsDir, records, reg)
	if err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\nStored run %d: %d player(s), %d categorie(s). Totals in %s.\n",
		runID, len(records), len(tables), totalsDir)
	return nil
}
