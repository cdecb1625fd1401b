// Package extractor turns raw Minecraft stats JSON into player records.
package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/HughBone/minecraft-stat-saver/internal/model"
)

// NamespacePrefix is stripped from category and stat keys
// ("minecraft:mined" → "mined").
const NamespacePrefix = "minecraft:"

// Extractor parses stats files for players that are not on the ignore list.
type Extractor struct {
	prefix  string
	ignored map[string]struct{}
}

// New returns an Extractor that skips the given display names.
func New(ignored []string) *Extractor {
	set := make(map[string]struct{}, len(ignored))
	for _, name := range ignored {
		set[name] = struct{}{}
	}
	return &Extractor{prefix: NamespacePrefix, ignored: set}
}

// Skip reports whether the display name is on the ignore list. Skipped
// players contribute nothing: no report files, no registry entries, no
// aggregate rows.
func (e *Extractor) Skip(name string) bool {
	_, ok := e.ignored[name]
	return ok
}

// Extract parses one stats file into a PlayerRecord and registers every
// (category, stat) pair in reg. Values must be base-10 integers (JSON numbers
// or numeric strings); anything else is an error naming the offending stat.
func (e *Extractor) Extract(uuid, name string, data []byte, reg model.Registry) (*model.PlayerRecord, error) {
	cats, err := parseStats(data)
	if err != nil {
		return nil, fmt.Errorf("stats for %s: %w", name, err)
	}

	rec := &model.PlayerRecord{
		UUID:       uuid,
		Name:       name,
		Categories: make(map[string]*model.CategoryStats, len(cats)),
	}
	for _, cat := range cats {
		// Mojang writes empty category objects after some world upgrades.
		// They carry no stats, so attaching them would only make summaries
		// claim a category the player has no values in.
		if len(cat.stats) == 0 {
			continue
		}
		category := strings.TrimPrefix(cat.name, e.prefix)
		cs := rec.Categories[category]
		if cs == nil {
			cs = model.NewCategoryStats()
			rec.Categories[category] = cs
		}
		for _, st := range cat.stats {
			stat := strings.TrimPrefix(st.name, e.prefix)
			cs.Add(stat, st.value)
			reg.Add(category, stat)
		}
	}
	return rec, nil
}

type rawStat struct {
	name  string
	value int64
}

type rawCategory struct {
	name  string
	stats []rawStat
}

// parseStats walks the "stats" object token by token. A plain map decode
// would lose the order stats appear in the file, and that order breaks ties
// in the descending-value per-player reports.
func parseStats(data []byte) ([]rawCategory, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var cats []rawCategory
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		if key != "stats" {
			// DataVersion and anything else Mojang adds later.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			catName, err := stringToken(dec)
			if err != nil {
				return nil, err
			}
			cat := rawCategory{name: catName}

			if err := expectDelim(dec, '{'); err != nil {
				return nil, err
			}
			for dec.More() {
				statName, err := stringToken(dec)
				if err != nil {
					return nil, err
				}
				tok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				value, err := intValue(tok)
				if err != nil {
					return nil, fmt.Errorf("stat %s.%s: %w", catName, statName, err)
				}
				cat.stats = append(cat.stats, rawStat{name: statName, value: value})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, err
			}
			cats = append(cats, cat)
		}
		if _, err := dec.Token(); err != nil { // closing }
			return nil, err
		}
	}
	if cats == nil {
		return nil, fmt.Errorf("no %q object in record", "stats")
	}
	return cats, nil
}

// intValue parses a stat value as a base-10 integer. Mojang writes plain
// numbers; some exporters quote them. Everything else fails loudly rather
// than silently coercing.
func intValue(tok json.Token) (int64, error) {
	switch v := tok.(type) {
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("non-integer value %q", v.String())
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("non-integer value %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected value %v", tok)
	}
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}
