// Package report renders category tables as CSV files and terminal tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/HughBone/minecraft-stat-saver/internal/aggregator"
	"github.com/HughBone/minecraft-stat-saver/internal/model"
)

// NotApplicable fills all four summary cells of a player who has no entry for
// the category, instead of a misleading numeric default.
const NotApplicable = "n/a"

// TotalsDirName is the subdirectory for cross-player aggregate reports.
const TotalsDirName = "totals"

// WritePlayerReports writes one two-column CSV per category for the player
// under outDir/<name>/, rows sorted by value descending (source-file order on
// ties). Returns the written file paths.
func WritePlayerReports(outDir string, rec *model.PlayerRecord) ([]string, error) {
	playerDir := filepath.Join(outDir, rec.Name)
	if err := os.MkdirAll(playerDir, 0755); err != nil {
		return nil, fmt.Errorf("create player dir: %w", err)
	}

	var paths []string
	for _, category := range rec.CategoryNames() {
		path := filepath.Join(playerDir, category+".csv")
		records := [][]string{{"statistic", "value"}}
		for _, row := range rec.Categories[category].RowsByValueDesc() {
			records = append(records, []string{row.Stat, strconv.FormatInt(row.Value, 10)})
		}
		if err := writeCSV(path, records); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteAggregate writes one category's cross-player report to
// totalsDir/<category>.csv: header, one row per statistic, a blank separator,
// then the four per-player summary rows.
func WriteAggregate(totalsDir string, table aggregator.CategoryTable) (string, error) {
	if err := os.MkdirAll(totalsDir, 0755); err != nil {
		return "", fmt.Errorf("create totals dir: %w", err)
	}

	header := append([]string{table.Category}, table.Players...)
	header = append(header, "Total", "Avg", "Min", "Max")
	records := [][]string{header}

	for _, line := range table.Lines {
		row := []string{line.Stat}
		for _, v := range line.Values {
			row = append(row, strconv.FormatInt(v, 10))
		}
		row = append(row,
			strconv.FormatInt(line.Total, 10),
			fmt.Sprintf("%.2f", line.Average),
			formatExtremum(line.Min),
			formatExtremum(line.Max),
		)
		records = append(records, row)
	}

	records = append(records, nil) // blank separator row
	records = append(records, summaryRows(table)...)

	path := filepath.Join(totalsDir, table.Category+".csv")
	if err := writeCSV(path, records); err != nil {
		return "", err
	}
	return path, nil
}

// summaryRows builds the four per-player summary rows (Total, Avg, Min, Max),
// one cell per player in table order.
func summaryRows(table aggregator.CategoryTable) [][]string {
	total := []string{"Total"}
	avg := []string{"Avg"}
	min := []string{"Min"}
	max := []string{"Max"}
	for _, s := range table.Summaries {
		if !s.Present {
			total = append(total, NotApplicable)
			avg = append(avg, NotApplicable)
			min = append(min, NotApplicable)
			max = append(max, NotApplicable)
			continue
		}
		total = append(total, strconv.FormatInt(s.Total, 10))
		avg = append(avg, fmt.Sprintf("%.2f", s.Average))
		min = append(min, formatExtremum(s.Min))
		max = append(max, formatExtremum(s.Max))
	}
	return [][]string{total, avg, min, max}
}

// formatExtremum renders "value (owner)", with the tie marker as owner when
// more than one holder shares the value.
func formatExtremum(e aggregator.Extremum) string {
	owner := e.Owner
	if e.Tied {
		owner = aggregator.TieMarker
	}
	return fmt.Sprintf("%d (%s)", e.Value, owner)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	for _, record := range records {
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// PrintCategoryTable renders one category's aggregate to the terminal.
func PrintCategoryTable(w io.Writer, table aggregator.CategoryTable) {
	fmt.Fprintf(w, "\nCategory: %s\n", table.Category)

	t := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	header := append([]string{"STATISTIC"}, table.Players...)
	header = append(header, "TOTAL", "AVG", "MIN", "MAX")
	t.Header(toAny(header)...)

	for _, line := range table.Lines {
		row := []string{line.Stat}
		for _, v := range line.Values {
			row = append(row, strconv.FormatInt(v, 10))
		}
		row = append(row,
			strconv.FormatInt(line.Total, 10),
			fmt.Sprintf("%.2f", line.Average),
			formatExtremum(line.Min),
			formatExtremum(line.Max),
		)
		t.Append(toAny(row)...)
	}
	t.Render()

	fmt.Fprintln(w, "Per-player summary:")
	s := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	s.Header(toAny(append([]string{""}, table.Players...))...)
	for _, row := range summaryRows(table) {
		s.Append(toAny(row)...)
	}
	s.Render()
}

// PrintPlayerCategory renders one player's single-category stats.
func PrintPlayerCategory(w io.Writer, name, category string, rows []model.StatRow) {
	fmt.Fprintf(w, "\n%s — %s\n", name, category)

	t := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	t.Header("STATISTIC", "VALUE")
	for _, row := range rows {
		t.Append(row.Stat, strconv.FormatInt(row.Value, 10))
	}
	t.Render()
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
