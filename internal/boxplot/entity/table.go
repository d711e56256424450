package entity

// Row maps a column name to its cell text.
type Row map[string]string

// ParsedTable is a decoded upload. Every row carries exactly the keys in Columns.
type ParsedTable struct {
	ID       int64
	Filename string
	Columns  []string
	Rows     []Row
}

// HasColumn reports whether name is one of the table's columns.
func (t *ParsedTable) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Page returns rows [(page-1)*size, page*size) clamped to the table bounds.
func (t *ParsedTable) Page(page, size int) []Row {
	if t == nil || page < 1 || size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(t.Rows) {
		return []Row{}
	}
	end := min(start+size, len(t.Rows))
	return t.Rows[start:end]
}
