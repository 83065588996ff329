package utils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lms/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFileHeader(t *testing.T, filename, contents string) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("photo.png", "jpg", "jpeg", "png"))
	assert.True(t, IsImageFile("PHOTO.JPG", "jpg", "jpeg", "png"))
	assert.False(t, IsImageFile("document.pdf", "jpg", "jpeg", "png"))
	assert.False(t, IsImageFile("no-extension", "jpg", "jpeg", "png"))
}

func TestSaveUploadedFile(t *testing.T) {
	config.AppConfig = &config.Config{UploadDir: t.TempDir()}

	header := uploadedFileHeader(t, "cover.png", "fake-png-bytes")

	storedPath, err := SaveUploadedFile(header, ThumbnailDir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(storedPath, ThumbnailDir+"/"))
	assert.Equal(t, ".png", filepath.Ext(storedPath))
	// Random name, not the client's
	assert.NotContains(t, storedPath, "cover")

	saved, err := os.ReadFile(filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(storedPath)))
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(saved))

	// Two uploads of the same file never collide
	other, err := SaveUploadedFile(header, ThumbnailDir)
	require.NoError(t, err)
	assert.NotEqual(t, storedPath, other)
}

func TestRemoveUploadedFile(t *testing.T) {
	config.AppConfig = &config.Config{UploadDir: t.TempDir()}

	header := uploadedFileHeader(t, "cover.png", "fake-png-bytes")
	storedPath, err := SaveUploadedFile(header, ThumbnailDir)
	require.NoError(t, err)

	require.NoError(t, RemoveUploadedFile(storedPath))
	_, err = os.Stat(filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(storedPath)))
	assert.True(t, os.IsNotExist(err))

	// Empty path is a no-op
	assert.NoError(t, RemoveUploadedFile(""))
}

func TestGetFileURL(t *testing.T) {
	assert.Equal(t, "/uploads/course-thumbnails/a.png", GetFileURL("course-thumbnails/a.png"))
	assert.Equal(t, "", GetFileURL(""))
}
