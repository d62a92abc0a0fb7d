package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rcliao/survey-seed/internal/model"
)

var (
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numericStyle = cellStyle.Align(lipgloss.Right)
	headerStyle  = cellStyle.Bold(true)
)

// newTable returns a bordered table whose columns from firstNumeric on are
// right-aligned.
func newTable(firstNumeric int, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= firstNumeric:
				return numericStyle
			default:
				return cellStyle
			}
		})
}

func renderParameters(params []model.ParameterRow) string {
	t := newTable(1, model.ParameterColumns...)
	for _, p := range params {
		t.Row(p.Area, strconv.Itoa(p.Male), strconv.Itoa(p.Female), strconv.Itoa(p.Total))
	}
	return t.Render()
}

func renderRuns(runs []model.Run) string {
	t := newTable(3, "Run", "Fecha", "Referencia", "Semilla", "Agregados", "Total")
	for _, r := range runs {
		t.Row(
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.ReferenceSource,
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Appended),
			strconv.Itoa(r.Total),
		)
	}
	return t.Render()
}

func renderStatus(status []model.AreaStatus) string {
	t := newTable(1, "Área", "Hombres", "Mujeres", "Total", "Vigentes", "Vencidos", "Sin fecha", "Última")
	for _, st := range status {
		t.Row(
			st.Area,
			strconv.Itoa(st.Male),
			strconv.Itoa(st.Female),
			strconv.Itoa(st.Total),
			strconv.Itoa(st.Current),
			strconv.Itoa(st.Expired),
			strconv.Itoa(st.Undated),
			st.Latest,
		)
	}
	return t.Render()
}

func renderResponses(rows []map[string]string) string {
	t := newTable(len(listColumns), listColumns...)
	for _, r := range rows {
		cells := make([]string, len(listColumns))
		for i, c := range listColumns {
			cells[i] = r[c]
		}
		t.Row(cells...)
	}
	return t.Render()
}
