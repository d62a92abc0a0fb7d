// Package pipeline runs one generate pass: load the reference matrix and the
// previous output, synthesize new responses, merge, summarize and save.
package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/survey-seed/internal/config"
	"github.com/rcliao/survey-seed/internal/dataset"
	"github.com/rcliao/survey-seed/internal/model"
	"github.com/rcliao/survey-seed/internal/names"
	"github.com/rcliao/survey-seed/internal/reference"
	"github.com/rcliao/survey-seed/internal/store"
	"github.com/rcliao/survey-seed/internal/synth"
)

// Options carries the run's collaborators.
type Options struct {
	Logger *zap.Logger

	// Ledger records the run when non-nil. Ledger errors are logged only.
	Ledger store.Store

	// Today anchors generated dates; zero means the current day.
	Today time.Time
}

// Result summarizes a finished run.
type Result struct {
	OutputPath      string               `json:"output_path"`
	Appended        int                  `json:"appended"`
	Total           int                  `json:"total"`
	FirstID         int                  `json:"first_id,omitempty"`
	LastID          int                  `json:"last_id,omitempty"`
	ReferenceSource string               `json:"reference_source"`
	NameSource      string               `json:"name_source"`
	Areas           []model.AreaCount    `json:"areas,omitempty"`
	Parameters      []model.ParameterRow `json:"parameters"`
	RunID           string               `json:"run_id,omitempty"`
}

// Run executes the pipeline once. Missing or unreadable inputs degrade to
// fallback data; only invalid settings and write failures return an error.
func Run(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}

	if err := os.MkdirAll(cfg.SourceDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create source dir: %w", err)
	}

	seed := uint64(cfg.Seed)
	rng := rand.New(rand.NewPCG(seed, seed))

	namer, nameSource, locale := names.New(cfg.NameLocales, rng)
	if nameSource == names.SourceBuiltin {
		logger.Info("No name corpus for preferred locales, using built-in name lists",
			zap.Strings("locales", cfg.NameLocales))
	} else {
		logger.Debug("Name corpus selected", zap.String("source", string(nameSource)), zap.String("locale", locale))
	}

	outPath := cfg.OutputPath()
	existing := dataset.Load(outPath, logger)
	lastID := existing.MaxID()

	ref, refSource := reference.Resolve(ctx, reference.FileSource{Path: cfg.MatrixPath()}, logger)

	gen := synth.New(rng, namer, synth.Options{
		PerArea:      cfg.AddPerArea,
		ExpiredRatio: cfg.ExpiredRatio,
		Today:        today,
	})
	fresh := gen.Generate(ref, lastID)

	merged := existing.Append(fresh)
	params := merged.Summarize()
	if err := dataset.Save(outPath, merged, params); err != nil {
		return nil, fmt.Errorf("save output: %w", err)
	}

	res := &Result{
		OutputPath:      outPath,
		Appended:        len(fresh),
		Total:           merged.Len(),
		ReferenceSource: refSource,
		NameSource:      string(nameSource),
		Areas:           countAreas(fresh),
		Parameters:      params,
	}
	if len(fresh) > 0 {
		res.FirstID = fresh[0].ID
		res.LastID = fresh[len(fresh)-1].ID
	}
	logger.Info("Responses appended",
		zap.String("output", outPath),
		zap.Int("appended", res.Appended),
		zap.Int("total", res.Total),
		zap.String("reference", refSource))

	if opts.Ledger != nil {
		run, err := opts.Ledger.Record(ctx, store.RecordParams{
			Seed:            cfg.Seed,
			AddPerArea:      cfg.AddPerArea,
			ExpiredRatio:    cfg.ExpiredRatio,
			ReferenceSource: refSource,
			NameSource:      res.NameSource,
			OutputPath:      outPath,
			FirstID:         res.FirstID,
			LastID:          res.LastID,
			Total:           res.Total,
			Areas:           res.Areas,
		})
		if err != nil {
			logger.Warn("Failed to record run in ledger", zap.Error(err))
		} else {
			res.RunID = run.ID
		}
	}

	return res, nil
}

// countAreas tallies responses per area in generation order.
func countAreas(responses []model.Response) []model.AreaCount {
	var out []model.AreaCount
	for _, r := range responses {
		if n := len(out); n > 0 && out[n-1].Area == r.Area {
			out[n-1].Count++
			continue
		}
		out = append(out, model.AreaCount{Area: r.Area, Count: 1})
	}
	return out
}
