package decode

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		filename string
		want     entity.FileFormat
	}{
		{"data.csv", entity.FormatCSV},
		{"report.xlsx", entity.FormatExcel},
		{"legacy.xls", entity.FormatExcel},
		{"macro.xlsm", entity.FormatExcel},
		// substring match anywhere in the name, kept on purpose
		{"csvexport.txt", entity.FormatCSV},
		{"xls_notes.pdf", entity.FormatExcel},
		{"csv-from.xlsx", entity.FormatCSV},
		// case-sensitive
		{"DATA.CSV", entity.FormatUnknown},
		{"notes.txt", entity.FormatUnknown},
		{"", entity.FormatUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.filename))
		})
	}
}

func TestDecodeCSV(t *testing.T) {
	table, err := Decode(entity.UploadedFile{
		Filename: "scores.csv",
		Content:  []byte("cat,val\nA,1\nA,3\nB,2\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, "scores.csv", table.Filename)
	assert.Equal(t, []string{"cat", "val"}, table.Columns)
	assert.Equal(t, []entity.Row{
		{"cat": "A", "val": "1"},
		{"cat": "A", "val": "3"},
		{"cat": "B", "val": "2"},
	}, table.Rows)
}

func TestDecodeCSVShapes(t *testing.T) {
	t.Run("bom and quoted fields", func(t *testing.T) {
		content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,note\n\"Doe, J\",\"said \"\"hi\"\"\"\n")...)
		table, err := Decode(entity.UploadedFile{Filename: "a.csv", Content: content})
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "note"}, table.Columns)
		assert.Equal(t, "Doe, J", table.Rows[0]["name"])
		assert.Equal(t, `said "hi"`, table.Rows[0]["note"])
	})

	t.Run("short rows padded and empty lines skipped", func(t *testing.T) {
		table, err := Decode(entity.UploadedFile{Filename: "a.csv", Content: []byte("a,b,c\n1\n\n,,\n4,5,6\n")})
		require.NoError(t, err)
		require.Len(t, table.Rows, 3)
		assert.Equal(t, entity.Row{"a": "1", "b": "", "c": ""}, table.Rows[0])
		assert.Equal(t, entity.Row{"a": "", "b": "", "c": ""}, table.Rows[1])
		assert.Equal(t, entity.Row{"a": "4", "b": "5", "c": "6"}, table.Rows[2])
	})

	t.Run("trailing empty cells tolerated", func(t *testing.T) {
		table, err := Decode(entity.UploadedFile{Filename: "a.csv", Content: []byte("a,b\n1,2,\n")})
		require.NoError(t, err)
		assert.Equal(t, entity.Row{"a": "1", "b": "2"}, table.Rows[0])
	})

	t.Run("long rows rejected", func(t *testing.T) {
		_, err := Decode(entity.UploadedFile{Filename: "a.csv", Content: []byte("a,b\n1,2,3\n")})
		var derr *Error
		require.ErrorAs(t, err, &derr)
		assert.Contains(t, derr.Error(), "expected 2 fields in line 2, saw 3")
	})

	t.Run("duplicate and empty headers", func(t *testing.T) {
		table, err := Decode(entity.UploadedFile{Filename: "a.csv", Content: []byte("x,x,,x, \n1,2,3,4,5\n")})
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "x.1", "Unnamed: 2", "x.2", " "}, table.Columns)
		assert.Equal(t, "4", table.Rows[0]["x.2"])
		assert.Equal(t, "5", table.Rows[0][" "])
	})

	t.Run("header text kept verbatim", func(t *testing.T) {
		table, err := Decode(entity.UploadedFile{Filename: "a.csv", Content: []byte("cat, val \nA,1\n")})
		require.NoError(t, err)
		assert.Equal(t, []string{"cat", " val "}, table.Columns)
		assert.Equal(t, "1", table.Rows[0][" val "])
	})

	t.Run("header only", func(t *testing.T) {
		table, err := Decode(entity.UploadedFile{Filename: "a.csv", Content: []byte("a,b\n")})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, table.Columns)
		assert.Empty(t, table.Rows)
	})
}

func TestDecodeErrors(t *testing.T) {
	transport := errors.New("file exceeds upload limit")

	cases := []struct {
		name string
		file entity.UploadedFile
		want error
	}{
		{"empty filename", entity.UploadedFile{Content: []byte("a\n1\n")}, ErrEmptyFilename},
		{"unknown extension", entity.UploadedFile{Filename: "notes.txt", Content: []byte("a\n1\n")}, ErrUnsupportedFormat},
		{"empty csv", entity.UploadedFile{Filename: "a.csv"}, ErrNoColumns},
		{"invalid utf8", entity.UploadedFile{Filename: "a.csv", Content: []byte{0xff, 0xfe, 'a'}}, errNotUTF8},
		{"transport failure", entity.UploadedFile{Filename: "a.csv", Err: transport}, transport},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := Decode(tc.file)
			assert.Nil(t, table)

			var derr *Error
			require.ErrorAs(t, err, &derr)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.file.Filename, derr.Filename)
		})
	}
}

func TestDecodeMalformedWorkbook(t *testing.T) {
	for name, content := range map[string][]byte{
		"not a zip":           []byte("not a zip archive"),
		"truncated xls":       append(append([]byte{}, oleSignature...), 0x00, 0x01),
		"xls without streams": append(append([]byte{}, oleSignature...), make([]byte, 504)...),
	} {
		t.Run(name, func(t *testing.T) {
			table, err := Decode(entity.UploadedFile{Filename: "broken.xls", Content: content})
			assert.Nil(t, table)

			var derr *Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, entity.FormatExcel, derr.Format)
		})
	}
}

func TestDecodeLegacyWorkbook(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "table.xls"))
	require.NoError(t, err)

	table, err := Decode(entity.UploadedFile{Filename: "table.xls", Content: content})
	require.NoError(t, err)

	assert.Equal(t, "table.xls", table.Filename)
	assert.Equal(t, []string{"Code", "Name", "Description"}, table.Columns)
	require.Len(t, table.Rows, 11)
	assert.Equal(t, entity.Row{"Code": "code1", "Name": "name1", "Description": "description1"}, table.Rows[0])
	assert.Equal(t, entity.Row{"Code": "code11", "Name": "name11", "Description": "description11"}, table.Rows[10])
}

func TestCSVRoundTrip(t *testing.T) {
	t.Run("byte exact", func(t *testing.T) {
		inputs := []string{
			"cat,val\nA,1\nA,3\nB,2\n",
			"name,amount,note\n\"Doe, J\",1.50,\"line\nbreak\"\nRoe,-2e3,\n",
			"only\nx\ny\n",
			"a,b\n1,2\n,\n3,4\n",
			"a,,b\n1,2,3\n",
		}

		for _, input := range inputs {
			table, err := Decode(entity.UploadedFile{Filename: "in.csv", Content: []byte(input)})
			require.NoError(t, err)

			encoded, err := EncodeCSV(table)
			require.NoError(t, err)

			if strings.Contains(input, ",,") {
				// the empty header comes back named
				assert.Equal(t, "a,Unnamed: 1,b\n1,2,3\n", string(encoded))
				continue
			}
			assert.Equal(t, input, string(encoded))
		}
	})

	t.Run("padded header names survive", func(t *testing.T) {
		table, err := Decode(entity.UploadedFile{Filename: "in.csv", Content: []byte("cat, val\nA,1\n")})
		require.NoError(t, err)

		encoded, err := EncodeCSV(table)
		require.NoError(t, err)

		again, err := Decode(entity.UploadedFile{Filename: "out.csv", Content: encoded})
		require.NoError(t, err)

		assert.Equal(t, []string{"cat", " val"}, again.Columns)
		assert.Equal(t, table.Rows, again.Rows)
	})
}

func TestExcelRoundTrip(t *testing.T) {
	table := &entity.ParsedTable{
		Columns: []string{"cat", "val", "note"},
		Rows: []entity.Row{
			{"cat": "A", "val": "1", "note": "first"},
			{"cat": "B", "val": "2.5", "note": ""},
			{"cat": "C", "val": "", "note": "no value"},
		},
	}

	content, err := EncodeXLSX(table)
	require.NoError(t, err)

	decoded, err := Decode(entity.UploadedFile{Filename: "book.xlsx", Content: content})
	require.NoError(t, err)

	assert.Equal(t, "book.xlsx", decoded.Filename)
	assert.Equal(t, table.Columns, decoded.Columns)
	assert.Equal(t, table.Rows, decoded.Rows)
}

func TestDataURL(t *testing.T) {
	payload := []byte("a,b\n1,2\n")
	encoded := "data:text/csv;base64," + base64.StdEncoding.EncodeToString(payload)

	got, err := DataURL(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	for _, bad := range []string{
		"",
		"text/csv;base64,YQ==",
		"data:text/csv,a,b",
		"data:text/csv;base64,***",
		strings.Repeat("x", 10),
	} {
		_, err := DataURL(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURL, "input %q", bad)
	}
}
