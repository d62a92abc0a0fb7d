package synth

import (
	"context"
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/survey-seed/internal/model"
	"github.com/rcliao/survey-seed/internal/names"
	"github.com/rcliao/survey-seed/internal/reference"
)

var today = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

func fallbackRef(t *testing.T) reference.Reference {
	t.Helper()
	ref, err := reference.FallbackSource{}.Load(context.Background())
	require.NoError(t, err)
	return ref
}

func newGenerator(seed uint64, opts Options) *Generator {
	rng := rand.New(rand.NewPCG(seed, seed))
	return New(rng, names.NewBuiltin(rng), opts)
}

func TestGenerate_FallbackAreasIDs(t *testing.T) {
	g := newGenerator(321, Options{PerArea: 5, ExpiredRatio: 0.4, Today: today})
	got := g.Generate(fallbackRef(t), 0)

	require.Len(t, got, 30)
	for i, r := range got {
		assert.Equal(t, i+1, r.ID)
	}

	// Areas come out sorted, five each.
	var areas []string
	for i := 0; i < len(got); i += 5 {
		areas = append(areas, got[i].Area)
		for _, r := range got[i : i+5] {
			assert.Equal(t, got[i].Area, r.Area)
		}
	}
	assert.True(t, slices.IsSorted(areas), "areas not sorted: %v", areas)
}

func TestGenerate_ContinuesFromLastID(t *testing.T) {
	g := newGenerator(321, Options{PerArea: 12, ExpiredRatio: 0.4, Today: today})
	got := g.Generate(fallbackRef(t), 41)

	require.Len(t, got, 72)
	assert.Equal(t, 42, got[0].ID)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].ID+1, got[i].ID)
	}

	var produccion []model.Response
	for _, r := range got {
		if r.Area == "Producción" {
			produccion = append(produccion, r)
		}
	}
	require.Len(t, produccion, 12)
	for i := 1; i < len(produccion); i++ {
		assert.Equal(t, produccion[i-1].ID+1, produccion[i].ID)
	}
	for _, r := range produccion {
		assert.Equal(t, "Operario de línea", r.Role)
	}
}

func TestGenerate_ZeroPerArea(t *testing.T) {
	g := newGenerator(1, Options{PerArea: 0, Today: today})
	assert.Empty(t, g.Generate(fallbackRef(t), 10))
}

func TestGenerate_Invariants(t *testing.T) {
	g := newGenerator(99, Options{PerArea: 300, ExpiredRatio: 0.4, Today: today})
	cols := model.Columns()
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}

	for _, r := range g.Generate(fallbackRef(t), 0) {
		row := r.Row()
		require.Len(t, row, len(cols))

		assert.Contains(t, []string{model.SexMale, model.SexFemale}, r.Sex)
		assert.GreaterOrEqual(t, r.Age, 20)
		assert.LessOrEqual(t, r.Age, 60)
		assert.NotEmpty(t, r.Name)

		if row[index[model.ColPriorSeasons]] == model.No {
			assert.Equal(t, "0", row[index[model.ColPriorSeasonCount]])
		} else {
			n, err := strconv.Atoi(row[index[model.ColPriorSeasonCount]])
			require.NoError(t, err)
			assert.True(t, n >= 1 && n <= 6, "season count %d", n)
		}

		other := row[index[model.ColOtherActivity]]
		detail := row[index[model.ColOtherActivityDetail]]
		assert.Equal(t, other == model.No, detail == "", "other=%q detail=%q", other, detail)

		for _, z := range model.Zones {
			pain := row[index[z+model.SuffixPain12m]]
			dependents := []string{
				row[index[z+model.SuffixDisabled]],
				row[index[z+model.SuffixIntensity12m]],
				row[index[z+model.SuffixPain7d]],
				row[index[z+model.SuffixIntensity7d]],
			}
			if pain == model.No {
				assert.Equal(t, []string{"", "", "", ""}, dependents, "zone %s", z)
				continue
			}
			require.Equal(t, model.Yes, pain)
			n, err := strconv.Atoi(dependents[1])
			require.NoError(t, err)
			assert.True(t, n >= 1 && n <= 10)
			assert.Equal(t, dependents[2] == model.No, dependents[3] == "", "zone %s", z)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	opts := Options{PerArea: 12, ExpiredRatio: 0.4, Today: today}
	a := newGenerator(321, opts).Generate(fallbackRef(t), 0)
	b := newGenerator(321, opts).Generate(fallbackRef(t), 0)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different records (-a +b):\n%s", diff)
	}

	c := newGenerator(322, opts).Generate(fallbackRef(t), 0)
	assert.NotEqual(t, a, c)
}

func TestGenerate_ExpiredRatio(t *testing.T) {
	for _, ratio := range []float64{0, 0.25, 0.4, 1} {
		g := newGenerator(321, Options{PerArea: 2000, ExpiredRatio: ratio, Today: today})
		got := g.Generate(fallbackRef(t), 0)
		require.GreaterOrEqual(t, len(got), 10000)

		expired := 0
		for _, r := range got {
			d, err := time.Parse(model.DateLayout, r.Date)
			require.NoError(t, err)
			days := int(today.Sub(d).Hours() / 24)
			switch {
			case days >= 400 && days <= 900:
				expired++
			case days >= 0 && days <= 300:
			default:
				t.Fatalf("date %s is %d days old, outside both windows", r.Date, days)
			}
		}
		frac := float64(expired) / float64(len(got))
		assert.InDelta(t, ratio, frac, 0.03, "ratio %v", ratio)
	}
}

func TestGenerate_SexFollowsHeadcount(t *testing.T) {
	ref := reference.Reference{
		Pairs: []model.Pair{{Area: "Mantención", Role: "Técnico"}, {Area: "Solo", Role: "Operario"}},
		Headcounts: map[string]model.Headcount{
			"Mantención": {Male: 9, Female: 1},
			"Solo":       {Male: 0, Female: 0},
		},
	}
	g := newGenerator(5, Options{PerArea: 2000, Today: today})
	males := map[string]int{}
	for _, r := range g.Generate(ref, 0) {
		if r.Sex == model.SexMale {
			males[r.Area]++
		}
	}
	assert.InDelta(t, 0.9, float64(males["Mantención"])/2000, 0.03)
	assert.Zero(t, males["Solo"])
}

func TestGenerate_GenericRoles(t *testing.T) {
	ref := reference.Reference{
		Pairs:      []model.Pair{{Area: "Bodega", Role: ""}},
		Headcounts: map[string]model.Headcount{"Extra": {Male: 1, Female: 1}},
	}
	g := newGenerator(3, Options{PerArea: 50, Today: today})
	got := g.Generate(ref, 0)
	require.Len(t, got, 100)
	for _, r := range got {
		assert.Contains(t, genericRoles, r.Role)
	}
	assert.Equal(t, "Bodega", got[0].Area)
	assert.Equal(t, "Extra", got[50].Area)
}

func TestMaleProbability(t *testing.T) {
	counts := map[string]model.Headcount{
		"Producción": {Male: 25, Female: 18},
		"Vacía":      {},
	}
	assert.InDelta(t, 25.0/43.0, maleProbability(counts, "Producción"), 1e-9)
	assert.Equal(t, 0.5, maleProbability(counts, "Desconocida"))
	assert.Equal(t, 0.0, maleProbability(counts, "Vacía"))
}
