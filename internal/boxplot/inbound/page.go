package inbound

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed web/index.html
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

type indexData struct {
	PageSize       int
	MaxUploadBytes int64
}

func renderIndex(data indexData) ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
