package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/survey-seed/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// newID returns a ULID; ids sort in creation order within one process.
func (s *SQLiteStore) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id               TEXT PRIMARY KEY,
		created_at       TEXT NOT NULL,
		seed             INTEGER NOT NULL,
		add_per_area     INTEGER NOT NULL,
		expired_ratio    REAL NOT NULL,
		reference_source TEXT NOT NULL,
		name_source      TEXT NOT NULL,
		output_path      TEXT NOT NULL,
		first_id         INTEGER,
		last_id          INTEGER,
		appended         INTEGER NOT NULL DEFAULT 0,
		total            INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_runs_output ON runs(output_path);

	CREATE TABLE IF NOT EXISTS run_areas (
		run_id TEXT NOT NULL REFERENCES runs(id),
		area   TEXT NOT NULL,
		count  INTEGER NOT NULL,
		PRIMARY KEY (run_id, area)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Record(ctx context.Context, p RecordParams) (*model.Run, error) {
	now := time.Now().UTC()
	id := s.newID(now)

	appended := 0
	for _, a := range p.Areas {
		appended += a.Count
	}

	var firstID, lastID *int
	if appended > 0 {
		firstID, lastID = &p.FirstID, &p.LastID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, seed, add_per_area, expired_ratio, reference_source,
		                   name_source, output_path, first_id, last_id, appended, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, now.Format(time.RFC3339Nano), p.Seed, p.AddPerArea, p.ExpiredRatio, p.ReferenceSource,
		p.NameSource, p.OutputPath, firstID, lastID, appended, p.Total)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for _, a := range p.Areas {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_areas (run_id, area, count) VALUES (?, ?, ?)`,
			id, a.Area, a.Count)
		if err != nil {
			return nil, fmt.Errorf("insert run area: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	run := &model.Run{
		ID:              id,
		CreatedAt:       now,
		Seed:            p.Seed,
		AddPerArea:      p.AddPerArea,
		ExpiredRatio:    p.ExpiredRatio,
		ReferenceSource: p.ReferenceSource,
		NameSource:      p.NameSource,
		OutputPath:      p.OutputPath,
		Appended:        appended,
		Total:           p.Total,
		Areas:           p.Areas,
	}
	if appended > 0 {
		run.FirstID, run.LastID = p.FirstID, p.LastID
	}
	return run, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Run, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	var where []string
	var args []interface{}
	if p.Output != "" {
		where = append(where, "output_path = ?")
		args = append(args, p.Output)
	}

	query := `SELECT id, created_at, seed, add_per_area, expired_ratio, reference_source,
	                 name_source, output_path, first_id, last_id, appended, total
	          FROM runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		areas, err := s.runAreas(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Areas = areas
	}
	return runs, nil
}

func (s *SQLiteStore) runAreas(ctx context.Context, runID string) ([]model.AreaCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT area, count FROM run_areas WHERE run_id = ? ORDER BY area`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []model.AreaCount
	for rows.Next() {
		var a model.AreaCount
		if err := rows.Scan(&a.Area, &a.Count); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (model.Run, error) {
	var r model.Run
	var createdAt string
	var firstID, lastID sql.NullInt64

	err := row.Scan(
		&r.ID, &createdAt, &r.Seed, &r.AddPerArea, &r.ExpiredRatio, &r.ReferenceSource,
		&r.NameSource, &r.OutputPath, &firstID, &lastID, &r.Appended, &r.Total,
	)
	if err != nil {
		return r, err
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if firstID.Valid {
		r.FirstID = int(firstID.Int64)
	}
	if lastID.Valid {
		r.LastID = int(lastID.Int64)
	}
	return r, nil
}
