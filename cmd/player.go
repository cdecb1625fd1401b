package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HughBone/minecraft-stat-saver/internal/extractor"
	"github.com/HughBone/minecraft-stat-saver/internal/model"
	"github.com/HughBone/minecraft-stat-saver/internal/report"
)

var playerName string

var playerCmd = &cobra.Command{
	Use:   "player <stats.json>",
	Short: "Inspect a single stats file offline",
	Long: `Parses one stats file and prints its per-category tables without any
network lookup or database write. Useful for checking a file before a full
report run.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerName, "name", "", "display name to use (default: file basename)")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	path := args[0]
	uuid := strings.TrimSuffix(filepath.Base(path), ".json")
	name := playerName
	if name == "" {
		name = uuid
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	reg := model.NewRegistry()
	rec, err := extractor.New(nil).Extract(uuid, name, data, reg)
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}

	for _, category := range rec.CategoryNames() {
		report.PrintPlayerCategory(os.Stdout, rec.Name, category, rec.Categories[category].RowsByValueDesc())
	}
	return nil
}
