package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/rcliao/survey-seed/internal/model"
)

// ValidDays is how many days a response stays current.
const ValidDays = 365

// dateLayouts are the Fecha formats accepted when reading a workbook back.
var dateLayouts = []string{model.DateLayout, "2006-01-02", "02-01-2006"}

// ParseDate reads a Fecha cell. It reports false for blank or unparseable
// values.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Status groups rows by area and classifies each dated row as current (at
// most ValidDays before today) or expired. Sex is matched on its first letter,
// h or m, in any case. Rows with a blank area are skipped. The result is
// sorted by area.
func (t *Table) Status(today time.Time) []model.AreaStatus {
	areas := t.Column(model.ColArea)
	sexes := t.Column(model.ColSex)
	dates := t.Column(model.ColDate)
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	byArea := make(map[string]*model.AreaStatus)
	latest := make(map[string]time.Time)
	for i := range areas {
		area := strings.TrimSpace(areas[i])
		if area == "" {
			continue
		}
		st, ok := byArea[area]
		if !ok {
			st = &model.AreaStatus{Area: area}
			byArea[area] = st
		}
		st.Total++

		switch sex := strings.ToLower(strings.TrimSpace(sexes[i])); {
		case strings.HasPrefix(sex, "h"):
			st.Male++
		case strings.HasPrefix(sex, "m"):
			st.Female++
		}

		d, ok := ParseDate(dates[i])
		switch {
		case !ok:
			st.Undated++
			continue
		case int(day.Sub(d).Hours()/24) <= ValidDays:
			st.Current++
		default:
			st.Expired++
		}
		if d.After(latest[area]) {
			latest[area] = d
		}
	}

	out := make([]model.AreaStatus, 0, len(byArea))
	for area, st := range byArea {
		if d, ok := latest[area]; ok {
			st.Latest = d.Format(model.DateLayout)
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Area < out[j].Area })
	return out
}

// Filter returns the rows whose area equals area and whose name contains name,
// ignoring case. Empty arguments match everything. The receiver is not
// modified.
func (t *Table) Filter(area, name string) *Table {
	areas := t.Column(model.ColArea)
	names := t.Column(model.ColName)
	area = strings.TrimSpace(area)
	name = strings.ToLower(strings.TrimSpace(name))

	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for i, row := range t.Rows {
		if area != "" && strings.TrimSpace(areas[i]) != area {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(names[i]), name) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
