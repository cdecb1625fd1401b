// Package aggregator combines per-player records into per-category tables.
package aggregator

import (
	"fmt"
	"sort"

	"github.com/HughBone/minecraft-stat-saver/internal/model"
)

// TieMarker replaces the owner name when two or more holders share an
// extremal value.
const TieMarker = "tie"

// Extremum is an extremal value plus its holder: a player name on stat lines,
// a stat name on player summaries. Tied is set when more than one holder
// shares the value, in which case Owner is empty.
type Extremum struct {
	Value int64
	Owner string
	Tied  bool
}

// StatLine is one statistic's cross-player view within a category. Values is
// aligned with CategoryTable.Players.
type StatLine struct {
	Stat    string
	Values  []int64
	Total   int64
	Average float64
	Min     Extremum
	Max     Extremum
}

// PlayerSummary rolls up one player's own recorded stats within a category.
// Present is false when the player has no entry for the category at all; the
// numeric fields are meaningless then and render as "n/a".
type PlayerSummary struct {
	Player  string
	Present bool
	Total   int64
	Average float64
	Min     Extremum
	Max     Extremum
}

// CategoryTable is the aggregate report for one category. Players, Lines and
// Summaries are all lexicographically ordered, so identical input produces
// identical output across runs.
type CategoryTable struct {
	Category  string
	Players   []string
	Lines     []StatLine
	Summaries []PlayerSummary
}

// Aggregate builds one CategoryTable per category in the registry, combining
// every record. A stat absent from a player's record contributes 0; the
// per-stat average always divides by the full player count.
func Aggregate(reg model.Registry, records []*model.PlayerRecord) ([]CategoryTable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no player records to aggregate")
	}

	byName := make([]*model.PlayerRecord, len(records))
	copy(byName, records)
	sort.Slice(byName, func(i, j int) bool {
		return byName[i].Name < byName[j].Name
	})
	players := make([]string, len(byName))
	for i, rec := range byName {
		players[i] = rec.Name
	}

	var tables []CategoryTable
	for _, category := range reg.Categories() {
		table := CategoryTable{Category: category, Players: players}

		for _, stat := range reg.Stats(category) {
			values := make([]int64, len(byName))
			var total int64
			for i, rec := range byName {
				values[i] = rec.Value(category, stat)
				total += values[i]
			}
			table.Lines = append(table.Lines, StatLine{
				Stat:    stat,
				Values:  values,
				Total:   total,
				Average: float64(total) / float64(len(byName)),
				Min:     extremum(values, players, lessInt64),
				Max:     extremum(values, players, moreInt64),
			})
		}

		for _, rec := range byName {
			table.Summaries = append(table.Summaries, summarize(rec, category))
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// summarize computes one player's four summary cells for a category over the
// stats the player actually recorded. The divisor here is the player's own
// stat count, unlike the per-stat average which divides by all players.
func summarize(rec *model.PlayerRecord, category string) PlayerSummary {
	cs, ok := rec.Categories[category]
	if !ok || len(cs.Order) == 0 {
		// No recorded values means no extrema and a zero divisor; treat an
		// empty CategoryStats the same as a missing category.
		return PlayerSummary{Player: rec.Name}
	}

	stats := make([]string, len(cs.Order))
	copy(stats, cs.Order)
	sort.Strings(stats)

	values := make([]int64, len(stats))
	var total int64
	for i, stat := range stats {
		values[i] = cs.Values[stat]
		total += values[i]
	}
	return PlayerSummary{
		Player:  rec.Name,
		Present: true,
		Total:   total,
		Average: float64(total) / float64(len(stats)),
		Min:     extremum(values, stats, lessInt64),
		Max:     extremum(values, stats, moreInt64),
	}
}

func lessInt64(a, b int64) bool { return a < b }
func moreInt64(a, b int64) bool { return a > b }

// extremum finds the extremal value under better, then counts its holders.
// Scanning for the true extremum first means a run of equal leading values
// later beaten outright is never mis-marked as a tie.
func extremum(values []int64, owners []string, better func(a, b int64) bool) Extremum {
	best := values[0]
	bestIdx := 0
	for i, v := range values[1:] {
		if better(v, best) {
			best = v
			bestIdx = i + 1
		}
	}
	holders := 0
	for _, v := range values {
		if v == best {
			holders++
		}
	}
	if holders > 1 {
		return Extremum{Value: best, Tied: true}
	}
	return Extremum{Value: best, Owner: owners[bestIdx]}
}
