package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/HughBone/minecraft-stat-saver/internal/model"
)

// InsertRun stores a run snapshot: the summary row, the resolved players, and
// every stat with its source-file order. Returns the new run id.
func (st *Store) InsertRun(statsDir string, records []*model.PlayerRecord, reg model.Registry) (int64, error) {
	tx, err := st.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs(created_at, stats_dir, player_count, category_count)
		VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), statsDir, len(records), len(reg),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	playerStmt, err := tx.Prepare(`INSERT INTO run_players(run_id, uuid, name) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer playerStmt.Close()

	statStmt, err := tx.Prepare(`
		INSERT INTO run_stats(run_id, uuid, category, stat, value, ord)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer statStmt.Close()

	for _, rec := range records {
		if _, err := playerStmt.Exec(runID, rec.UUID, rec.Name); err != nil {
			return 0, fmt.Errorf("insert player %s: %w", rec.Name, err)
		}
		for _, category := range rec.CategoryNames() {
			cs := rec.Categories[category]
			for ord, stat := range cs.Order {
				if _, err := statStmt.Exec(runID, rec.UUID, category, stat, cs.Values[stat], ord); err != nil {
					return 0, fmt.Errorf("insert stat %s.%s for %s: %w", category, stat, rec.Name, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns all stored runs, newest first.
func (st *Store) ListRuns() ([]model.RunSummary, error) {
	rows, err := st.conn.Query(`
		SELECT id, created_at, stats_dir, player_count, category_count
		FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RunSummary
	for rows.Next() {
		var s model.RunSummary
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.StatsDir, &s.PlayerCount, &s.CategoryCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetRun returns one run's summary, or nil when the id is unknown.
func (st *Store) GetRun(id int64) (*model.RunSummary, error) {
	var s model.RunSummary
	err := st.conn.QueryRow(`
		SELECT id, created_at, stats_dir, player_count, category_count
		FROM runs WHERE id = ?`, id).
		Scan(&s.ID, &s.CreatedAt, &s.StatsDir, &s.PlayerCount, &s.CategoryCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadRecords rebuilds a stored run's player records and registry. Stats come
// back in their original source-file order, so aggregation of a stored run
// matches the live run byte for byte.
func (st *Store) LoadRecords(runID int64) ([]*model.PlayerRecord, model.Registry, error) {
	playerRows, err := st.conn.Query(`
		SELECT uuid, name FROM run_players WHERE run_id = ? ORDER BY name`, runID)
	if err != nil {
		return nil, nil, err
	}
	defer playerRows.Close()

	byUUID := make(map[string]*model.PlayerRecord)
	var records []*model.PlayerRecord
	for playerRows.Next() {
		rec := &model.PlayerRecord{Categories: make(map[string]*model.CategoryStats)}
		if err := playerRows.Scan(&rec.UUID, &rec.Name); err != nil {
			return nil, nil, err
		}
		byUUID[rec.UUID] = rec
		records = append(records, rec)
	}
	if err := playerRows.Err(); err != nil {
		return nil, nil, err
	}

	statRows, err := st.conn.Query(`
		SELECT uuid, category, stat, value
		FROM run_stats WHERE run_id = ? ORDER BY uuid, category, ord`, runID)
	if err != nil {
		return nil, nil, err
	}
	defer statRows.Close()

	reg := model.NewRegistry()
	for statRows.Next() {
		var uuid, category, stat string
		var value int64
		if err := statRows.Scan(&uuid, &category, &stat, &value); err != nil {
			return nil, nil, err
		}
		rec, ok := byUUID[uuid]
		if !ok {
			return nil, nil, fmt.Errorf("run %d: stat row for unknown player %s", runID, uuid)
		}
		cs := rec.Categories[category]
		if cs == nil {
			cs = model.NewCategoryStats()
			rec.Categories[category] = cs
		}
		cs.Add(stat, value)
		reg.Add(category, stat)
	}
	return records, reg, statRows.Err()
}
