package decode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

var errNoSheets = errors.New("workbook has no sheets")

// compound file header of BIFF (.xls) workbooks
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// readExcel reads the first sheet of a workbook with raw cell values.
// Legacy .xls content goes to the BIFF reader once excelize rejects it.
func readExcel(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		if bytes.HasPrefix(content, oleSignature) {
			return readLegacyExcel(content)
		}
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

// EncodeXLSX writes the table to the first sheet of a new workbook, header in row 1.
func EncodeXLSX(table *entity.ParsedTable) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)

	header := make([]any, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		values := make([]any, len(table.Columns))
		for j, col := range table.Columns {
			values[j] = row[col]
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
