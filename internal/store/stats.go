package store

import (
	"context"
	"fmt"
	"os"
)

// Stats holds ledger totals.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	TotalRuns   int         `json:"total_runs"`
	Appended    int         `json:"appended"`
	Areas       []AreaStats `json:"areas"`
}

// AreaStats holds per-area appended counts across all runs.
type AreaStats struct {
	Area     string `json:"area"`
	Appended int    `json:"appended"`
	Runs     int    `json:"runs"`
}

// Stats returns ledger totals.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(appended), 0) FROM runs`).
		Scan(&st.TotalRuns, &st.Appended); err != nil {
		return st, fmt.Errorf("count runs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT area, SUM(count) AS appended, COUNT(DISTINCT run_id) AS runs
		FROM run_areas
		GROUP BY area ORDER BY area`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var a AreaStats
		if err := rows.Scan(&a.Area, &a.Appended, &a.Runs); err != nil {
			return st, fmt.Errorf("scan area stats: %w", err)
		}
		st.Areas = append(st.Areas, a)
	}

	return st, rows.Err()
}
