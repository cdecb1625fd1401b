package aggregator

import (
	"testing"

	"github.com/HughBone/minecraft-stat-saver/internal/model"
)

// makeRecord builds a PlayerRecord from nested literals, preserving the order
// stats are listed in each category.
func makeRecord(name string, cats map[string][]model.StatRow) *model.PlayerRecord {
	rec := &model.PlayerRecord{
		UUID:       "uuid-" + name,
		Name:       name,
		Categories: make(map[string]*model.CategoryStats),
	}
	for cat, rows := range cats {
		cs := model.NewCategoryStats()
		for _, r := range rows {
			cs.Add(r.Stat, r.Value)
		}
		rec.Categories[cat] = cs
	}
	return rec
}

// registerAll registers every (category, stat) pair of the records.
func registerAll(records ...*model.PlayerRecord) model.Registry {
	reg := model.NewRegistry()
	for _, rec := range records {
		for cat, cs := range rec.Categories {
			for _, stat := range cs.Order {
				reg.Add(cat, stat)
			}
		}
	}
	return reg
}

func findLine(t *testing.T, table CategoryTable, stat string) StatLine {
	t.Helper()
	for _, l := range table.Lines {
		if l.Stat == stat {
			return l
		}
	}
	t.Fatalf("stat %q not found in category %q", stat, table.Category)
	return StatLine{}
}

func findSummary(t *testing.T, table CategoryTable, player string) PlayerSummary {
	t.Helper()
	for _, s := range table.Summaries {
		if s.Player == player {
			return s
		}
	}
	t.Fatalf("summary for %q not found in category %q", player, table.Category)
	return PlayerSummary{}
}

// TestAggregate_TwoPlayers walks the canonical two-player scenario:
// P1 broke 10 stone; P2 broke 10 stone and 5 dirt.
func TestAggregate_TwoPlayers(t *testing.T) {
	p1 := makeRecord("P1", map[string][]model.StatRow{
		"break": {{Stat: "stone", Value: 10}},
	})
	p2 := makeRecord("P2", map[string][]model.StatRow{
		"break": {{Stat: "stone", Value: 10}, {Stat: "dirt", Value: 5}},
	})
	reg := registerAll(p1, p2)

	tables, err := Aggregate(reg, []*model.PlayerRecord{p1, p2})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(tables) != 1 || tables[0].Category != "break" {
		t.Fatalf("expected one 'break' table, got %+v", tables)
	}
	table := tables[0]

	stone := findLine(t, table, "stone")
	if stone.Total != 20 {
		t.Errorf("stone total: want 20, got %d", stone.Total)
	}
	if stone.Average != 10.0 {
		t.Errorf("stone average: want 10.0, got %f", stone.Average)
	}
	if !stone.Min.Tied || !stone.Max.Tied {
		t.Errorf("stone min/max should both be ties: min=%+v max=%+v", stone.Min, stone.Max)
	}
	if stone.Min.Value != 10 || stone.Max.Value != 10 {
		t.Errorf("stone extrema values: want 10/10, got %d/%d", stone.Min.Value, stone.Max.Value)
	}

	dirt := findLine(t, table, "dirt")
	if dirt.Total != 5 {
		t.Errorf("dirt total: want 5, got %d", dirt.Total)
	}
	if dirt.Average != 2.5 {
		t.Errorf("dirt average: want 2.5, got %f", dirt.Average)
	}
	if dirt.Min.Tied || dirt.Min.Owner != "P1" || dirt.Min.Value != 0 {
		t.Errorf("dirt min: want 0 (P1), got %+v", dirt.Min)
	}
	if dirt.Max.Tied || dirt.Max.Owner != "P2" || dirt.Max.Value != 5 {
		t.Errorf("dirt max: want 5 (P2), got %+v", dirt.Max)
	}

	// Per-player summaries over each player's own stats.
	s1 := findSummary(t, table, "P1")
	if !s1.Present || s1.Total != 10 || s1.Average != 10.0 {
		t.Errorf("P1 summary: want total=10 avg=10.0, got %+v", s1)
	}
	if s1.Min.Owner != "stone" || s1.Max.Owner != "stone" {
		t.Errorf("P1 summary extrema: want stone/stone, got %+v/%+v", s1.Min, s1.Max)
	}
	s2 := findSummary(t, table, "P2")
	if !s2.Present || s2.Total != 15 || s2.Average != 7.5 {
		t.Errorf("P2 summary: want total=15 avg=7.5, got %+v", s2)
	}
	if s2.Min.Value != 5 || s2.Min.Owner != "dirt" {
		t.Errorf("P2 summary min: want 5 (dirt), got %+v", s2.Min)
	}
	if s2.Max.Value != 10 || s2.Max.Owner != "stone" {
		t.Errorf("P2 summary max: want 10 (stone), got %+v", s2.Max)
	}
}

// TestAggregate_LeadingEqualValuesNotATie: two equal leading values beaten by
// a later true maximum must not mark the maximum as tied.
func TestAggregate_LeadingEqualValuesNotATie(t *testing.T) {
	a := makeRecord("A", map[string][]model.StatRow{"break": {{Stat: "stone", Value: 5}}})
	b := makeRecord("B", map[string][]model.StatRow{"break": {{Stat: "stone", Value: 5}}})
	c := makeRecord("C", map[string][]model.StatRow{"break": {{Stat: "stone", Value: 9}}})
	reg := registerAll(a, b, c)

	tables, err := Aggregate(reg, []*model.PlayerRecord{a, b, c})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	stone := findLine(t, tables[0], "stone")
	if stone.Max.Tied || stone.Max.Owner != "C" || stone.Max.Value != 9 {
		t.Errorf("max: want 9 (C), got %+v", stone.Max)
	}
	if !stone.Min.Tied || stone.Min.Value != 5 {
		t.Errorf("min: want 5 (tie), got %+v", stone.Min)
	}
}

// TestAggregate_MissingCategorySummary: a player with no entry for a category
// gets Present=false, while per-stat averages still divide by all players.
func TestAggregate_MissingCategorySummary(t *testing.T) {
	miner := makeRecord("Miner", map[string][]model.StatRow{
		"mined": {{Stat: "stone", Value: 30}},
	})
	fisher := makeRecord("Fisher", map[string][]model.StatRow{
		"custom": {{Stat: "fish_caught", Value: 7}},
	})
	reg := registerAll(miner, fisher)

	tables, err := Aggregate(reg, []*model.PlayerRecord{miner, fisher})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("want 2 category tables, got %d", len(tables))
	}

	var mined CategoryTable
	for _, tbl := range tables {
		if tbl.Category == "mined" {
			mined = tbl
		}
	}
	stone := findLine(t, mined, "stone")
	if stone.Average != 15.0 {
		t.Errorf("stone average divides by all players: want 15.0, got %f", stone.Average)
	}
	if s := findSummary(t, mined, "Fisher"); s.Present {
		t.Errorf("Fisher lacks 'mined' entirely: want Present=false, got %+v", s)
	}
	if s := findSummary(t, mined, "Miner"); !s.Present || s.Total != 30 {
		t.Errorf("Miner summary: want present with total=30, got %+v", s)
	}
}

// TestAggregate_PlayerSummaryTie: a player whose own stats tie at an extremum
// gets the tie marker in their summary cell.
func TestAggregate_PlayerSummaryTie(t *testing.T) {
	p := makeRecord("Solo", map[string][]model.StatRow{
		"mined": {{Stat: "stone", Value: 4}, {Stat: "dirt", Value: 4}},
	})
	reg := registerAll(p)

	tables, err := Aggregate(reg, []*model.PlayerRecord{p})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	s := findSummary(t, tables[0], "Solo")
	if !s.Min.Tied || !s.Max.Tied {
		t.Errorf("expected tied summary extrema, got min=%+v max=%+v", s.Min, s.Max)
	}
}

// TestAggregate_Ordering: players, categories and stats all come out sorted.
func TestAggregate_Ordering(t *testing.T) {
	zed := makeRecord("zed", map[string][]model.StatRow{
		"used": {{Stat: "torch", Value: 1}},
		"mined": {{Stat: "stone", Value: 2}, {Stat: "andesite", Value: 1}},
	})
	amy := makeRecord("amy", map[string][]model.StatRow{
		"mined": {{Stat: "diorite", Value: 3}},
	})
	reg := registerAll(zed, amy)

	tables, err := Aggregate(reg, []*model.PlayerRecord{zed, amy})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if tables[0].Category != "mined" || tables[1].Category != "used" {
		t.Errorf("categories not sorted: %s, %s", tables[0].Category, tables[1].Category)
	}
	if tables[0].Players[0] != "amy" || tables[0].Players[1] != "zed" {
		t.Errorf("players not sorted: %v", tables[0].Players)
	}
	wantStats := []string{"andesite", "diorite", "stone"}
	for i, l := range tables[0].Lines {
		if l.Stat != wantStats[i] {
			t.Errorf("stat order[%d]: want %s, got %s", i, wantStats[i], l.Stat)
		}
	}
}

// TestAggregate_EmptyCategoryStats: a record carrying a category with zero
// recorded stats must summarize as n/a, not index into an empty value slice.
func TestAggregate_EmptyCategoryStats(t *testing.T) {
	hollow := &model.PlayerRecord{
		UUID: "uuid-A", Name: "A",
		Categories: map[string]*model.CategoryStats{
			"mined": model.NewCategoryStats(),
		},
	}
	miner := makeRecord("B", map[string][]model.StatRow{
		"mined": {{Stat: "stone", Value: 3}},
	})
	reg := registerAll(hollow, miner)

	tables, err := Aggregate(reg, []*model.PlayerRecord{hollow, miner})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if s := findSummary(t, tables[0], "A"); s.Present {
		t.Errorf("summary over zero recorded stats: want Present=false, got %+v", s)
	}
	stone := findLine(t, tables[0], "stone")
	if stone.Total != 3 || stone.Max.Owner != "B" {
		t.Errorf("stone line: want total=3 max owner B, got %+v", stone)
	}
}

func TestAggregate_NoRecords(t *testing.T) {
	if _, err := Aggregate(model.NewRegistry(), nil); err == nil {
		t.Error("expected error for empty record set")
	}
}
