package model

import "time"

// Run is one generate invocation recorded in the run ledger.
type Run struct {
	ID              string      `json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	Seed            int64       `json:"seed"`
	AddPerArea      int         `json:"add_per_area"`
	ExpiredRatio    float64     `json:"expired_ratio"`
	ReferenceSource string      `json:"reference_source"`
	NameSource      string      `json:"name_source"`
	OutputPath      string      `json:"output_path"`
	FirstID         int         `json:"first_id,omitempty"`
	LastID          int         `json:"last_id,omitempty"`
	Appended        int         `json:"appended"`
	Total           int         `json:"total"`
	Areas           []AreaCount `json:"areas,omitempty"`
}

// AreaCount is the number of records a run appended to one area.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}
