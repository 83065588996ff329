package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lms/config"

	"github.com/google/uuid"
)

// Upload subdirectories
const (
	ThumbnailDir      = "course-thumbnails"
	CourseContentDir  = "course-content"
	ProfilePictureDir = "profile-pictures"
)

// MaxThumbnailSize is the upload limit for course thumbnails (5MB)
const MaxThumbnailSize = 5 * 1024 * 1024

// IsImageFile reports whether the filename carries an allowed image extension
func IsImageFile(filename string, allowedExts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExts {
		if ext == "."+allowed {
			return true
		}
	}
	return false
}

// SaveUploadedFile buffers an uploaded file into a subdirectory of the upload
// root under a unique name and returns the stored path relative to the root.
func SaveUploadedFile(file *multipart.FileHeader, subDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Unique filename; keep the original extension
	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(subDir, newFilename)), nil
}

// RemoveUploadedFile deletes a stored file, best effort. Callers ignore the error.
func RemoveUploadedFile(storedPath string) error {
	if storedPath == "" {
		return nil
	}
	return os.Remove(filepath.Join(config.AppConfig.UploadDir, filepath.FromSlash(storedPath)))
}

// GetFileURL rewrites a stored path into the URL it is served from
func GetFileURL(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	return "/uploads/" + storedPath
}
