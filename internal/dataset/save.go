package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/rcliao/survey-seed/internal/model"
)

// Save writes the responses and parameters sheets to path. The workbook is
// written to a temporary file in the same directory and renamed over path.
func Save(path string, t *Table, params []model.ParameterRow) (err error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", model.ResponsesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(model.ParametersSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := writeResponses(f, t, headerStyle); err != nil {
		return err
	}
	if err := writeParameters(f, params, headerStyle); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write workbook: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}

func writeResponses(f *excelize.File, t *Table, headerStyle int) error {
	sw, err := f.NewStreamWriter(model.ResponsesSheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush responses: %w", err)
	}
	return nil
}

func writeParameters(f *excelize.File, params []model.ParameterRow, headerStyle int) error {
	sheet := model.ParametersSheet
	header := make([]any, len(model.ParameterColumns))
	for i, c := range model.ParameterColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write parameters header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, p := range params {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		row := []any{p.Area, p.Male, p.Female, p.Total}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write parameters row %d: %w", i+2, err)
		}
	}
	return nil
}

// ReadParameters reads the parameters sheet of a saved workbook.
func ReadParameters(path string) ([]model.ParameterRow, error) {
	_, rows, err := readSheet(path, model.ParametersSheet)
	if err != nil {
		return nil, err
	}
	var out []model.ParameterRow
	for i, row := range rows {
		if blank(row) {
			continue
		}
		p := model.ParameterRow{Area: cellAt(row, 0)}
		for j, dst := range []*int{&p.Male, &p.Female, &p.Total} {
			v := cellAt(row, j+1)
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("parameters row %d: %w", i+2, err)
			}
			*dst = n
		}
		out = append(out, p)
	}
	return out, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
