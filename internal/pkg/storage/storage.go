package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Save stores content under dir and returns its public URL.
	Save(ctx context.Context, dir, filename string, content io.Reader) (string, error)

	// Delete removes a file previously returned by Save.
	Delete(ctx context.Context, url string) error
}

// Allowed upload extensions per category.
var (
	DocumentExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}
	PhotoExts    = []string{".jpg", ".jpeg", ".png", ".webp"}
)

const (
	LeaveDocumentsDir = "leave-documents"
	PhotosDir         = "photos"
	MaxUploadSize     = 5 << 20
)
