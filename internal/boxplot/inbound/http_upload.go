package inbound

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/decode"
	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgerror"
)

// DefaultMaxUploadBytes limits one uploaded file.
const DefaultMaxUploadBytes int64 = 32 << 20

// maxFiles limits the number of files in one upload.
const maxFiles = 32

var (
	errFileTooLarge = errors.New("file exceeds upload limit")
	errNoFilePart   = errors.New("file part is required")
	errTooManyFiles = fmt.Errorf("at most %d files per upload", maxFiles)
)

// uploadRequest is the JSON form of an upload: base64 data URLs with parallel metadata.
type uploadRequest struct {
	Contents     []string `json:"contents"`
	Filename     []string `json:"filename"`
	LastModified []int64  `json:"last_modified"`
}

func extractFiles(r *http.Request, maxBytes int64) ([]entity.UploadedFile, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return extractMultipartFiles(r, maxBytes)
		}
	}

	if r.Body == nil {
		return nil, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	return extractDataURLFiles(r.Body, maxBytes)
}

// extractMultipartFiles reads every "file" part in order. The n-th "last_modified"
// field belongs to the n-th file.
func extractMultipartFiles(r *http.Request, maxBytes int64) ([]entity.UploadedFile, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	var (
		files    []entity.UploadedFile
		modified []int64
	)
	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, pkgerror.NewInvalidFormat()
		}

		switch part.FormName() {
		case "file":
			if len(files) == maxFiles {
				_ = part.Close()
				return nil, pkgerror.NewInvalidInputMsg(errTooManyFiles, errTooManyFiles.Error())
			}
			files = append(files, readPart(part.FileName(), part, maxBytes))
		case "last_modified":
			raw, _ := io.ReadAll(io.LimitReader(part, 32))
			ts, _ := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
			modified = append(modified, ts)
		}
		_ = part.Close()
	}

	if len(files) == 0 {
		return nil, pkgerror.NewInvalidInputMsg(errNoFilePart, errNoFilePart.Error())
	}

	for i := range files {
		if i < len(modified) {
			files[i].LastModified = modified[i]
		}
	}

	return files, nil
}

func readPart(filename string, part io.Reader, maxBytes int64) entity.UploadedFile {
	file := entity.UploadedFile{Filename: filename}

	content, err := io.ReadAll(io.LimitReader(part, maxBytes+1))
	switch {
	case err != nil:
		file.Err = err
	case int64(len(content)) > maxBytes:
		file.Err = errFileTooLarge
	default:
		file.Content = content
	}

	return file
}

func extractDataURLFiles(body io.Reader, maxBytes int64) ([]entity.UploadedFile, error) {
	// base64 grows content by 4/3; leave room for the metadata too.
	limit := maxFiles*(maxBytes/3*4+4) + 64<<10

	var req uploadRequest
	if err := json.NewDecoder(io.LimitReader(body, limit)).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}

	if len(req.Contents) == 0 {
		return nil, pkgerror.NewInvalidInputMsg(errNoFilePart, errNoFilePart.Error())
	}
	if len(req.Contents) > maxFiles {
		return nil, pkgerror.NewInvalidInputMsg(errTooManyFiles, errTooManyFiles.Error())
	}
	if len(req.Filename) != len(req.Contents) {
		err := errors.New("filename must have one entry per contents entry")
		return nil, pkgerror.NewInvalidInputMsg(err, err.Error())
	}

	files := make([]entity.UploadedFile, 0, len(req.Contents))
	for i, contents := range req.Contents {
		file := entity.UploadedFile{Filename: req.Filename[i]}
		if i < len(req.LastModified) {
			file.LastModified = req.LastModified[i]
		}

		content, err := decode.DataURL(contents)
		switch {
		case err != nil:
			file.Err = err
		case int64(len(content)) > maxBytes:
			file.Err = errFileTooLarge
		default:
			file.Content = content
		}

		files = append(files, file)
	}

	return files, nil
}
