package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rcliao/survey-seed/internal/model"
)

// writeWorkbook saves one sheet holding header and rows as text cells.
func writeWorkbook(t *testing.T, path, sheet string, header []string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	all := append([][]string{header}, rows...)
	for i, r := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]any, len(r))
		for j, v := range r {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}
	require.NoError(t, f.SaveAs(path))
}

func response(id int, area, sex string) model.Response {
	return model.Response{ID: id, Date: "01/01/2026", Area: area, Sex: sex, Age: 30, Name: "X Y"}
}

func TestLoad_MissingFile(t *testing.T) {
	tbl := Load(filepath.Join(t.TempDir(), "none.xlsx"), zap.NewNop())
	assert.Equal(t, model.Columns(), tbl.Columns)
	assert.Zero(t, tbl.Len())
	assert.Zero(t, tbl.MaxID())
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	tbl := Load(path, zap.NewNop())
	assert.Zero(t, tbl.Len())
	assert.Equal(t, model.Columns(), tbl.Columns)
}

func TestLoad_MissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.xlsx")
	writeWorkbook(t, path, "Otra", []string{"ID"}, [][]string{{"5"}})
	tbl := Load(path, zap.NewNop())
	assert.Zero(t, tbl.Len())
}

func TestLoad_ProjectsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prev.xlsx")
	writeWorkbook(t, path, model.ResponsesSheet,
		[]string{"Sexo", "Legacy", "ID", "Area"},
		[][]string{
			{"Hombre", "keep?", "3", "Calidad"},
			{"", "", "", ""},
			{"Mujer", "x", "10.0"},
		})

	tbl := Load(path, zap.NewNop())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, model.Columns(), tbl.Columns)
	assert.Equal(t, []string{"3", "10.0"}, tbl.Column(model.ColID))
	assert.Equal(t, []string{"Calidad", ""}, tbl.Column(model.ColArea))
	assert.Equal(t, []string{"Hombre", "Mujer"}, tbl.Column(model.ColSex))
	assert.Equal(t, []string{"", ""}, tbl.Column(model.ColDate))
	assert.Nil(t, tbl.Column("Legacy"))
	assert.Equal(t, 10, tbl.MaxID())
}

func TestProject_ReportsDropped(t *testing.T) {
	tbl, dropped := Project([]string{"ID", "Extra", "", "Otra"}, [][]string{{"1", "a", "b", "c"}})
	assert.Equal(t, []string{"Extra", "Otra"}, dropped)
	require.Equal(t, 1, tbl.Len())
	assert.Len(t, tbl.Rows[0], len(model.Columns()))
}

func TestParseID(t *testing.T) {
	cases := map[string]int{
		"12":   12,
		"12.0": 12,
		" 7 ":  7,
		"abc":  0,
		"":     0,
		"-3":   -3,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseID(in), "input %q", in)
	}
}

func TestAppend_KeepsPriorRows(t *testing.T) {
	prior, _ := Project(model.Columns(), [][]string{
		response(1, "Calidad", model.SexMale).Row(),
		response(2, "Embalaje", model.SexFemale).Row(),
	})
	snapshot := cloneRows(prior.Rows)

	merged := prior.Append([]model.Response{response(3, "Calidad", model.SexFemale)})

	assert.Equal(t, prior.Len()+1, merged.Len())
	if diff := cmp.Diff(snapshot, merged.Rows[:2]); diff != "" {
		t.Errorf("prior rows changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(snapshot, prior.Rows); diff != "" {
		t.Errorf("receiver modified (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, merged.MaxID())
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func TestSummarize(t *testing.T) {
	tbl := NewTable().Append([]model.Response{
		response(1, "Producción", model.SexMale),
		response(2, "Producción", model.SexFemale),
		response(3, "Producción", model.SexMale),
		response(4, "Calidad", model.SexFemale),
		response(5, "", model.SexFemale),
		response(6, "Aseo", ""),
		response(7, "Bodega", "Otro"),
	})

	got := tbl.Summarize()
	want := []model.ParameterRow{
		{Area: "Bodega", Male: 0, Female: 0, Total: 0},
		{Area: "Calidad", Male: 0, Female: 1, Total: 1},
		{Area: "Producción", Male: 2, Female: 1, Total: 3},
	}
	assert.Equal(t, want, got)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, NewTable().Summarize())
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "src", "source")
	path := filepath.Join(dir, "out.xlsx")

	r := response(1, "Calidad", model.SexFemale)
	r.Zones = []model.ZoneAnswer{{Pain12m: true, Disabled: model.No, Intensity12m: 3}}
	tbl := NewTable().Append([]model.Response{r, response(2, "Calidad", model.SexMale)})
	params := tbl.Summarize()

	require.NoError(t, Save(path, tbl, params))

	loaded := Load(path, zap.NewNop())
	if diff := cmp.Diff(tbl.Rows, loaded.Rows); diff != "" {
		t.Errorf("round trip changed rows (-want +got):\n%s", diff)
	}

	stored, err := ReadParameters(path)
	require.NoError(t, err)
	assert.Equal(t, params, stored)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files left behind")
	assert.Equal(t, "out.xlsx", entries[0].Name())
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	first := NewTable().Append([]model.Response{response(1, "A", model.SexMale)})
	require.NoError(t, Save(path, first, first.Summarize()))

	second := Load(path, zap.NewNop()).Append([]model.Response{response(2, "B", model.SexFemale)})
	require.NoError(t, Save(path, second, second.Summarize()))

	loaded := Load(path, zap.NewNop())
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, []string{"1", "2"}, loaded.Column(model.ColID))
}
