// Package reference loads (area, role) pairs and per-area headcounts from
// the staffing matrix workbook.
package reference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rcliao/survey-seed/internal/model"
)

// Matrix layout: data starts at the third row; columns B, C, H, I.
const (
	firstDataRow = 2
	colArea      = 1
	colRole      = 2
	colMale      = 7
	colFemale    = 8
)

// sheetMarkers identify the sheet to read, matched case-insensitively.
var sheetMarkers = []string{"inicial", "inicio"}

// Reference is the loaded staffing data.
type Reference struct {
	Pairs      []model.Pair
	Headcounts map[string]model.Headcount
}

// Empty reports whether no pairs were found.
func (r Reference) Empty() bool {
	return len(r.Pairs) == 0
}

// Areas returns every non-blank area of the pairs or headcount map, sorted.
func (r Reference) Areas() []string {
	seen := make(map[string]bool)
	var areas []string
	add := func(a string) {
		if a != "" && !seen[a] {
			seen[a] = true
			areas = append(areas, a)
		}
	}
	for _, p := range r.Pairs {
		add(p.Area)
	}
	for a := range r.Headcounts {
		add(a)
	}
	sort.Strings(areas)
	return areas
}

// Roles returns the non-blank roles paired with area, in load order.
func (r Reference) Roles(area string) []string {
	var roles []string
	for _, p := range r.Pairs {
		if p.Area == area && p.Role != "" {
			roles = append(roles, p.Role)
		}
	}
	return roles
}

// Source supplies reference data for a run.
type Source interface {
	Load(ctx context.Context) (Reference, error)
	Name() string
}

// FileSource reads a matrix workbook from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file" }

// Load reads the workbook. A missing file yields an empty Reference and a
// nil error.
func (s FileSource) Load(ctx context.Context) (Reference, error) {
	ref := Reference{Headcounts: map[string]model.Headcount{}}
	if _, err := os.Stat(s.Path); errors.Is(err, os.ErrNotExist) {
		return ref, nil
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return ref, fmt.Errorf("open matrix: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return ref, fmt.Errorf("matrix has no sheets")
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return ref, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return Parse(rows), nil
}

func pickSheet(sheets []string) string {
	for _, name := range sheets {
		lower := strings.ToLower(name)
		for _, m := range sheetMarkers {
			if strings.Contains(lower, m) {
				return name
			}
		}
	}
	if len(sheets) == 0 {
		return ""
	}
	return sheets[0]
}

// Parse extracts pairs and headcounts from raw sheet rows.
func Parse(rows [][]string) Reference {
	ref := Reference{Headcounts: map[string]model.Headcount{}}
	seen := make(map[model.Pair]bool)

	for r := firstDataRow; r < len(rows); r++ {
		row := rows[r]
		area := cell(row, colArea)
		role := cell(row, colRole)
		if area == "" && role == "" {
			continue
		}

		p := model.Pair{Area: area, Role: role}
		if !seen[p] {
			seen[p] = true
			ref.Pairs = append(ref.Pairs, p)
		}

		if area != "" {
			hc := ref.Headcounts[area]
			hc.Male += count(cell(row, colMale))
			hc.Female += count(cell(row, colFemale))
			ref.Headcounts[area] = hc
		}
	}
	return ref
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// count coerces a headcount cell to an integer. Anything unparseable or
// outside the int32 range is 0.
func count(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// FallbackSource serves a fixed six-area reference set.
type FallbackSource struct{}

func (FallbackSource) Name() string { return "fallback" }

func (FallbackSource) Load(ctx context.Context) (Reference, error) {
	ref := Reference{Headcounts: make(map[string]model.Headcount, len(fallback))}
	for _, row := range fallback {
		ref.Pairs = append(ref.Pairs, model.Pair{Area: row.area, Role: row.role})
		ref.Headcounts[row.area] = model.Headcount{Male: row.male, Female: row.female}
	}
	return ref, nil
}

var fallback = []struct {
	area, role   string
	male, female int
}{
	{"Congelados", "Operario de congelados", 11, 5},
	{"Producción", "Operario de línea", 25, 18},
	{"Mantención", "Técnico mantenimiento", 12, 1},
	{"Embalaje", "Operario embalaje", 10, 20},
	{"Aseo industrial", "Auxiliar de aseo", 8, 7},
	{"Calidad", "Inspector de calidad", 6, 9},
}

// Resolve loads from primary and falls back when it fails or is empty. It
// never returns an error; the name of the source that served is returned.
func Resolve(ctx context.Context, primary Source, logger *zap.Logger) (Reference, string) {
	ref, err := primary.Load(ctx)
	switch {
	case err != nil:
		logger.Warn("Reference source failed, using fallback data",
			zap.String("source", primary.Name()), zap.Error(err))
	case ref.Empty():
		logger.Warn("Reference source is empty, using fallback data",
			zap.String("source", primary.Name()))
	default:
		logger.Debug("Reference loaded",
			zap.String("source", primary.Name()),
			zap.Int("pairs", len(ref.Pairs)),
			zap.Int("areas", len(ref.Headcounts)))
		return ref, primary.Name()
	}

	var fb FallbackSource
	ref, _ = fb.Load(ctx)
	return ref, fb.Name()
}
