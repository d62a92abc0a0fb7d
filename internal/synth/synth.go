// Package synth generates synthetic questionnaire responses per area.
//
// Every draw reads from the one *rand.Rand handed to New, in a fixed order:
// areas sorted, records in sequence, fields in column order, zones in list
// order. A seed and reference input therefore fix the output.
package synth

import (
	"math/rand/v2"
	"time"

	"github.com/rcliao/survey-seed/internal/model"
	"github.com/rcliao/survey-seed/internal/names"
	"github.com/rcliao/survey-seed/internal/reference"
)

// Field probabilities.
const (
	pPriorSeasons = 0.35
	pPain12m      = 0.35
	pPain7d       = 0.25

	minAge          = 20
	maxAge          = 60
	maxPriorSeasons = 6
	maxTenureMonths = 144
	maxIntensity    = 10
	maxCurrentDays  = 300
	minExpiredDays  = 400
	maxExpiredDays  = 900
)

// Choice lists; repeated entries weight the draw.
var (
	genericRoles    = []string{"Operario", "Supervisor", "Técnico", "Ayudante"}
	handedness      = []string{model.RightHanded, model.LeftHanded}
	priorActivities = []string{"Agricultura", "Construcción", "Comercio", "Transporte", "Servicios", "Alimentos", "Metalurgia", "Pesca", ""}
	otherActivity   = []string{model.No, model.Yes, model.No, model.No}
	otherDetails    = []string{"Estudios", "Emprendimiento", "Hogar", "Deportes"}
	disabledAnswers = []string{"", model.No, model.Yes, model.No, model.No}
)

// Options tune a generation pass.
type Options struct {
	PerArea      int
	ExpiredRatio float64

	// Today anchors the generated dates.
	Today time.Time
}

// Generator builds responses from a shared random source.
type Generator struct {
	rng   *rand.Rand
	names names.Generator
	opts  Options
}

// New returns a Generator. rng must be the same source names draws from
// for the run to be reproducible.
func New(rng *rand.Rand, namer names.Generator, opts Options) *Generator {
	return &Generator{rng: rng, names: namer, opts: opts}
}

// Generate creates opts.PerArea responses for every area of ref. Ids start
// at lastID+1 and increase by one per record.
func (g *Generator) Generate(ref reference.Reference, lastID int) []model.Response {
	areas := ref.Areas()
	out := make([]model.Response, 0, len(areas)*max(g.opts.PerArea, 0))
	id := lastID
	for _, area := range areas {
		roles := ref.Roles(area)
		if len(roles) == 0 {
			roles = genericRoles
		}
		pMale := maleProbability(ref.Headcounts, area)
		for i := 0; i < g.opts.PerArea; i++ {
			id++
			out = append(out, g.response(id, area, roles, pMale))
		}
	}
	return out
}

// maleProbability is male/(male+female); unknown areas count 1 and 1.
func maleProbability(counts map[string]model.Headcount, area string) float64 {
	hc, ok := counts[area]
	if !ok {
		hc = model.Headcount{Male: 1, Female: 1}
	}
	total := hc.Total()
	if total <= 0 {
		total = 1
	}
	return float64(hc.Male) / float64(total)
}

func (g *Generator) response(id int, area string, roles []string, pMale float64) model.Response {
	r := model.Response{ID: id, Area: area}

	r.Sex = model.SexFemale
	if g.rng.Float64() < pMale {
		r.Sex = model.SexMale
	}
	r.Name = g.names.Name(r.Sex)
	r.Role = g.pick(roles)
	r.Date = g.date()
	r.Age = g.between(minAge, maxAge)
	r.Handedness = g.pick(handedness)

	r.PriorSeasons = g.rng.Float64() < pPriorSeasons
	if r.PriorSeasons {
		r.PriorSeasonCount = g.between(1, maxPriorSeasons)
	}
	r.TenureMonths = g.between(1, maxTenureMonths)
	r.PriorActivity = g.pick(priorActivities)

	r.OtherActivity = g.pick(otherActivity) == model.Yes
	if r.OtherActivity {
		r.OtherActivityDetail = g.pick(otherDetails)
	}

	r.Zones = make([]model.ZoneAnswer, len(model.Zones))
	for i := range r.Zones {
		r.Zones[i] = g.zone()
	}
	return r
}

func (g *Generator) zone() model.ZoneAnswer {
	var z model.ZoneAnswer
	if g.rng.Float64() >= pPain12m {
		return z
	}
	z.Pain12m = true
	z.Disabled = g.pick(disabledAnswers)
	z.Intensity12m = g.between(1, maxIntensity)
	z.Pain7d = g.rng.Float64() < pPain7d
	if z.Pain7d {
		z.Intensity7d = g.between(1, maxIntensity)
	}
	return z
}

// date is either current (0..300 days ago) or expired (400..900 days ago).
func (g *Generator) date() string {
	var days int
	if g.rng.Float64() < g.opts.ExpiredRatio {
		days = g.between(minExpiredDays, maxExpiredDays)
	} else {
		days = g.between(0, maxCurrentDays)
	}
	return g.opts.Today.AddDate(0, 0, -days).Format(model.DateLayout)
}

// between draws uniformly from [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) pick(choices []string) string {
	return choices[g.rng.IntN(len(choices))]
}
