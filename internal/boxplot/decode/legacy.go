package decode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
)

var errNoWorkbookStream = errors.New("compound file has no workbook stream")

// readLegacyExcel reads the first sheet of a BIFF workbook. The reader panics on
// some malformed input, so a panic is reported as a decode failure.
func readLegacyExcel(content []byte) (records [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("read legacy workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open legacy workbook: %w", err)
	}
	if wb == nil {
		return nil, errNoWorkbookStream
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errNoSheets
	}

	records = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := legacyRow(sheet, i)
		if row == nil {
			records = append(records, nil)
			continue
		}

		record := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			record[c] = row.Col(c)
		}
		records = append(records, trimTrailing(record))
	}

	return records, nil
}

// legacyRow returns nil for a row the sheet never defined.
func legacyRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func trimTrailing(record []string) []string {
	n := len(record)
	for n > 0 && record[n-1] == "" {
		n--
	}
	return record[:n]
}
