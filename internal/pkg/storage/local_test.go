package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), LeaveDocumentsDir, "Medical Note.PDF", strings.NewReader("doc"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/leave-documents/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "doc", string(data))

	require.NoError(t, s.Delete(context.Background(), url))
	require.NoError(t, s.Delete(context.Background(), url))
}

func TestLocalStorage_SaveCannotEscapeBase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "../../etc", "x.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/etc/"))
}

func TestHasAllowedExt(t *testing.T) {
	assert.True(t, HasAllowedExt("a.JPG", PhotoExts))
	assert.False(t, HasAllowedExt("a.exe", DocumentExts))
	assert.False(t, HasAllowedExt("noext", PhotoExts))
}
