package utils

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
)

// logCleanup logs cleanup events with timestamp
func logCleanup(message string) {
	log.Printf("[UPLOAD-CLEANUP %s] %s", time.Now().Format(time.RFC3339), message)
}

// referencedUploads collects every stored file path still referenced by a live row
func referencedUploads() (map[string]bool, error) {
	db := database.Database.Db
	referenced := make(map[string]bool)

	var thumbnails []string
	if err := db.Model(&models.Course{}).Where("is_deleted = ? AND thumbnail <> ''", false).
		Pluck("thumbnail", &thumbnails).Error; err != nil {
		return nil, err
	}
	for _, p := range thumbnails {
		referenced[p] = true
	}

	var contentPaths []string
	if err := db.Model(&models.CourseContent{}).
		Joins("JOIN courses ON courses.id = course_contents.course_id AND courses.is_deleted = ?", false).
		Pluck("course_contents.file_path", &contentPaths).Error; err != nil {
		return nil, err
	}
	for _, p := range contentPaths {
		referenced[p] = true
	}

	var pictures []string
	if err := db.Model(&models.User{}).Where("is_deleted = ? AND profile_picture <> ''", false).
		Pluck("profile_picture", &pictures).Error; err != nil {
		return nil, err
	}
	for _, p := range pictures {
		referenced[p] = true
	}

	return referenced, nil
}

// cleanOrphanedUploads removes upload files no live row points at. Files
// younger than a day are kept so an in-flight upload is never deleted between
// the file write and the row insert.
func cleanOrphanedUploads() {
	referenced, err := referencedUploads()
	if err != nil {
		logCleanup("Error collecting referenced uploads: " + err.Error())
		return
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	removed := 0

	for _, subDir := range []string{ThumbnailDir, CourseContentDir, ProfilePictureDir} {
		dir := filepath.Join(config.AppConfig.UploadDir, subDir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // directory may not exist yet
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			stored := filepath.ToSlash(filepath.Join(subDir, entry.Name()))
			if referenced[stored] {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				logCleanup("Error removing " + stored + ": " + err.Error())
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		logCleanup("Removed " + strconv.Itoa(removed) + " orphaned upload files")
	}
}

// StartCleanupScheduler runs the orphaned-upload sweep daily at 03:00
func StartCleanupScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", cleanOrphanedUploads); err != nil {
		log.Fatalf("Failed to schedule upload cleanup: %v", err)
	}
	c.Start()
	logCleanup("Upload cleanup scheduler started")
	return c
}
