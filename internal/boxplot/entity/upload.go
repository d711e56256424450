package entity

// UploadedFile is one file of an upload batch. It is consumed by decoding and not retained.
type UploadedFile struct {
	Content      []byte
	Filename     string
	LastModified int64
	// Err is set when the transport already failed for this file (bad data URL, size limit).
	Err error
}

// FileFormat is the decoder chosen for a filename.
type FileFormat string

const (
	FormatUnknown FileFormat = ""
	FormatCSV     FileFormat = "CSV"
	FormatExcel   FileFormat = "EXCEL"
)

// FileStatus tells whether a file of the batch decoded.
type FileStatus string

const (
	FileStatusOK    FileStatus = "OK"
	FileStatusError FileStatus = "ERROR"
)

// FileResult is the per-file outcome of an upload, in batch order.
type FileResult struct {
	Filename     string
	LastModified int64
	Status       FileStatus
	Err          string
	Table        *ParsedTable
}
