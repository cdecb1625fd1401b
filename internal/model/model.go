package model

import "sort"

// PlayerRecord is one player's flattened statistics, keyed by normalized
// category and stat names (namespace prefix stripped). Records are built once
// by the extractor and treated as immutable afterwards.
type PlayerRecord struct {
	UUID       string
	Name       string
	Categories map[string]*CategoryStats
}

// CategoryStats holds one category's stat values plus the order in which the
// stats were first seen in the source file. Descending-value sorts break ties
// on that encounter order.
type CategoryStats struct {
	Order  []string
	Values map[string]int64
}

// NewCategoryStats returns an empty CategoryStats.
func NewCategoryStats() *CategoryStats {
	return &CategoryStats{Values: make(map[string]int64)}
}

// Add records a stat value, remembering encounter order on first sight.
func (c *CategoryStats) Add(stat string, value int64) {
	if _, seen := c.Values[stat]; !seen {
		c.Order = append(c.Order, stat)
	}
	c.Values[stat] = value
}

// StatRow is one (statistic, value) line in a per-player category report.
type StatRow struct {
	Stat  string
	Value int64
}

// RowsByValueDesc returns the category's rows sorted by value descending.
// Equal values keep their source-file encounter order.
func (c *CategoryStats) RowsByValueDesc() []StatRow {
	rows := make([]StatRow, 0, len(c.Order))
	for _, stat := range c.Order {
		rows = append(rows, StatRow{Stat: stat, Value: c.Values[stat]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})
	return rows
}

// Value returns the effective value for (category, stat): the recorded value,
// or 0 when the player has no entry for it.
func (p *PlayerRecord) Value(category, stat string) int64 {
	cs, ok := p.Categories[category]
	if !ok {
		return 0
	}
	return cs.Values[stat]
}

// HasCategory reports whether the player recorded any stat in the category.
func (p *PlayerRecord) HasCategory(category string) bool {
	_, ok := p.Categories[category]
	return ok
}

// CategoryNames returns the player's category names sorted lexicographically.
func (p *PlayerRecord) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for name := range p.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry is the union of every (category, stat) pair seen across all
// players in a run. It only ever grows; it decides which rows appear in the
// aggregate report (a stat absent for a player aggregates as 0, not omitted).
type Registry map[string]map[string]struct{}

// NewRegistry returns an empty registry.
func NewRegistry() Registry {
	return make(Registry)
}

// Add registers a (category, stat) pair.
func (r Registry) Add(category, stat string) {
	set, ok := r[category]
	if !ok {
		set = make(map[string]struct{})
		r[category] = set
	}
	set[stat] = struct{}{}
}

// Categories returns all category names sorted lexicographically.
func (r Registry) Categories() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats returns the category's stat names sorted lexicographically.
func (r Registry) Stats(category string) []string {
	set := r[category]
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunSummary describes one stored pipeline run.
type RunSummary struct {
	ID            int64
	CreatedAt     string
	StatsDir      string
	PlayerCount   int
	CategoryCount int
}
