package decode

import (
	"bytes"
	"encoding/csv"
	"errors"
	"unicode/utf8"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

var errNotUTF8 = errors.New("file is not valid utf-8 text")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(content []byte) ([][]string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return nil, errNotUTF8
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// EncodeCSV writes the table as comma separated UTF-8 with a header row.
func EncodeCSV(table *entity.ParsedTable) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns); err != nil {
		return nil, err
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
