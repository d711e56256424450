package decode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, expected a csv or xls file")
	ErrEmptyFilename     = errors.New("filename is required")
	ErrNoColumns         = errors.New("no columns to parse from file")
	ErrInvalidDataURL    = errors.New("invalid data url")
)

// Error is a failure to decode one file of a batch.
type Error struct {
	Filename string
	Format   entity.FileFormat
	Err      error
}

func (e *Error) Error() string {
	if e.Format == entity.FormatUnknown {
		return fmt.Sprintf("decode %q: %v", e.Filename, e.Err)
	}
	return fmt.Sprintf("decode %q as %s: %v", e.Filename, e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detect picks the decoder for filename. CSV is checked first.
func Detect(filename string) entity.FileFormat {
	switch {
	case strings.Contains(filename, "csv"):
		return entity.FormatCSV
	case strings.Contains(filename, "xls"):
		return entity.FormatExcel
	default:
		return entity.FormatUnknown
	}
}

// Decode parses one uploaded file. Every failure is returned as *Error.
func Decode(file entity.UploadedFile) (*entity.ParsedTable, error) {
	if file.Filename == "" {
		return nil, &Error{Err: ErrEmptyFilename}
	}

	format := Detect(file.Filename)
	if file.Err != nil {
		return nil, &Error{Filename: file.Filename, Format: format, Err: file.Err}
	}

	var (
		records [][]string
		err     error
	)
	switch format {
	case entity.FormatCSV:
		records, err = readCSV(file.Content)
	case entity.FormatExcel:
		records, err = readExcel(file.Content)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, &Error{Filename: file.Filename, Format: format, Err: err}
	}

	table, err := buildTable(records)
	if err != nil {
		return nil, &Error{Filename: file.Filename, Format: format, Err: err}
	}
	table.Filename = file.Filename

	return table, nil
}

// DataURL returns the payload of a base64 data URL ("data:<type>;base64,<data>").
func DataURL(contents string) ([]byte, error) {
	header, data, found := strings.Cut(contents, ",")
	if !found || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrInvalidDataURL
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.Join(ErrInvalidDataURL, err)
	}

	return decoded, nil
}

func buildTable(records [][]string) (*entity.ParsedTable, error) {
	records = dropBlank(records)
	if len(records) == 0 {
		return nil, ErrNoColumns
	}

	columns := normalizeHeader(records[0])
	rows := make([]entity.Row, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) > len(columns) {
			for _, extra := range record[len(columns):] {
				if strings.TrimSpace(extra) != "" {
					return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(columns), i+2, len(record))
				}
			}
		}

		row := make(entity.Row, len(columns))
		for j, col := range columns {
			if j < len(record) {
				row[col] = record[j]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &entity.ParsedTable{Columns: columns, Rows: rows}, nil
}

// dropBlank skips empty lines only. A row of separators is kept as a row of empty cells.
func dropBlank(records [][]string) [][]string {
	kept := records[:0:0]
	for _, record := range records {
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}

// normalizeHeader keeps names verbatim. An empty header becomes "Unnamed: i" and a repeat gets a ".1", ".2" suffix.
func normalizeHeader(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))

	for i, h := range raw {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}

		if _, dup := seen[h]; !dup {
			seen[h] = 0
			out[i] = h
			continue
		}

		n := seen[h]
		for {
			n++
			name := fmt.Sprintf("%s.%d", h, n)
			if _, taken := seen[name]; !taken {
				seen[h] = n
				seen[name] = 0
				out[i] = name
				break
			}
		}
	}

	return out
}
