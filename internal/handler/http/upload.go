package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
)

// readFormFile reads an optional multipart file field. A missing field returns an empty name.
func readFormFile(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, storage.MaxUploadSize+1))
	if err != nil {
		return "", nil, err
	}
	if len(content) > storage.MaxUploadSize {
		return "", nil, errFileTooLarge
	}
	return header.Filename, content, nil
}

var errFileTooLarge = errors.New("file exceeds the upload size limit")
