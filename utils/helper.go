package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// StringToObjectID converts string to MongoDB ObjectID
func StringToObjectID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}

// IsValidObjectID checks if string is valid MongoDB ObjectID
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// SanitizeFilename strips path separators and control characters so an
// uploaded name cannot escape its storage prefix.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer("\\", "_", "/", "_", "..", "_")
	name = replacer.Replace(name)
	return strings.TrimSpace(name)
}

// FileExtension returns the lower-cased extension of a filename, dot included.
func FileExtension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsImageMimeType reports whether a content type is an accepted image type.
func IsImageMimeType(mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/svg+xml":
		return true
	}
	return false
}
