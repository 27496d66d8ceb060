package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/yuanzicheng/dev-tools/pkg/codec"
)

// Request errors
var (
	ErrSingleFile   = errors.New("exactly one file expected in form field \"file\"")
	ErrInvalidBody  = errors.New("invalid request body")
	ErrFileTooLarge = errors.New("file too large")
)

// formFile is the multipart field carrying file input.
const formFile = "file"

type textRequest struct {
	Text string `json:"text"`
}

type kindRequest struct {
	Kind string `json:"kind"`
}

// uploadFile adapts a multipart upload to codec.File.
type uploadFile struct {
	fh *multipart.FileHeader
}

func (f uploadFile) Name() string {
	return f.fh.Filename
}

func (f uploadFile) Open() (io.ReadCloser, error) {
	return f.fh.Open()
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// readFile extracts the single uploaded file of a multipart request.
func readFile(w http.ResponseWriter, r *http.Request, maxBytes int64) (codec.File, int, error) {
	// Leave room for the multipart framing around the file.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	files := r.MultipartForm.File[formFile]
	if len(files) != 1 {
		return nil, http.StatusBadRequest, ErrSingleFile
	}
	if files[0].Size > maxBytes {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, maxBytes)
	}
	return uploadFile{files[0]}, http.StatusOK, nil
}

// readText decodes a JSON {"text": "..."} body.
func readText(w http.ResponseWriter, r *http.Request, maxBytes int64) (string, error) {
	var req textRequest
	if err := decodeJSON(w, r, maxBytes, &req); err != nil {
		return "", err
	}
	return req.Text, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}
