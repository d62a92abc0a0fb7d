// Package store provides the run ledger interface and SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/survey-seed/internal/model"
)

// RecordParams holds the outcome of a generate run.
type RecordParams struct {
	Seed            int64
	AddPerArea      int
	ExpiredRatio    float64
	ReferenceSource string
	NameSource      string
	OutputPath      string
	FirstID         int
	LastID          int
	Total           int
	Areas           []model.AreaCount
}

// ListParams holds parameters for listing runs.
type ListParams struct {
	Limit  int
	Output string // filter by output path; empty means all
}

// Store defines the run ledger interface.
type Store interface {
	// Record stores a run and its per-area counts. Returns the created run.
	Record(ctx context.Context, p RecordParams) (*model.Run, error)

	// List returns runs newest first.
	List(ctx context.Context, p ListParams) ([]model.Run, error)

	// Close closes the store.
	Close() error
}
