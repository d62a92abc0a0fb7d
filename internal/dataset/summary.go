package dataset

import (
	"sort"
	"strings"

	"github.com/rcliao/survey-seed/internal/model"
)

// Summarize counts rows per area and sex. Rows with a blank area or sex are
// ignored. Sexes other than Hombre/Mujer still list their area but add to no
// column. The result is sorted by area.
func (t *Table) Summarize() []model.ParameterRow {
	areas := t.Column(model.ColArea)
	sexes := t.Column(model.ColSex)

	byArea := make(map[string]*model.ParameterRow)
	for i := range areas {
		area := strings.TrimSpace(areas[i])
		sex := strings.TrimSpace(sexes[i])
		if area == "" || sex == "" {
			continue
		}
		p, ok := byArea[area]
		if !ok {
			p = &model.ParameterRow{Area: area}
			byArea[area] = p
		}
		switch sex {
		case model.SexMale:
			p.Male++
		case model.SexFemale:
			p.Female++
		}
	}

	out := make([]model.ParameterRow, 0, len(byArea))
	for _, p := range byArea {
		p.Total = p.Male + p.Female
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Area < out[j].Area })
	return out
}
