package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalClient implements Provider on the local filesystem. It exists for
// development and tests; uploads are served from the /uploads static route.
type LocalClient struct {
	basePath string
	baseURL  string
}

// NewLocalClient creates a new local storage client
func NewLocalClient(basePath, baseURL string) (*LocalClient, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %v", err)
	}

	return &LocalClient{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

func (l *LocalClient) fullPath(key string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(key))
}

// Upload writes data to the local filesystem and returns the retrieval URL
func (l *LocalClient) Upload(key string, data []byte, contentType string) (string, error) {
	path := l.fullPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", NewStorageError("local", "MKDIR_FAILED", err.Error(), key)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", NewStorageError("local", "WRITE_FAILED", err.Error(), key)
	}

	return l.GetURL(key)
}

// UploadStream writes a stream to the local filesystem and returns the retrieval URL
func (l *LocalClient) UploadStream(key string, reader io.Reader, size int64, contentType string) (string, error) {
	path := l.fullPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", NewStorageError("local", "MKDIR_FAILED", err.Error(), key)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", NewStorageError("local", "CREATE_FAILED", err.Error(), key)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", NewStorageError("local", "WRITE_FAILED", err.Error(), key)
	}

	return l.GetURL(key)
}

// Delete removes a file from the local filesystem
func (l *LocalClient) Delete(key string) error {
	if err := os.Remove(l.fullPath(key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return NewStorageError("local", "DELETE_FAILED", err.Error(), key)
	}
	return nil
}

// Exists checks whether a file exists
func (l *LocalClient) Exists(key string) (bool, error) {
	_, err := os.Stat(l.fullPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, NewStorageError("local", "STAT_FAILED", err.Error(), key)
	}
	return true, nil
}

// GetURL returns the serving URL for a key
func (l *LocalClient) GetURL(key string) (string, error) {
	return l.baseURL + "/uploads/" + key, nil
}

// Name returns the provider name
func (l *LocalClient) Name() string {
	return "local"
}

// HealthCheck verifies the storage directory is writable
func (l *LocalClient) HealthCheck() error {
	probe := filepath.Join(l.basePath, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return NewStorageError("local", "HEALTH_CHECK_FAILED", err.Error(), "")
	}
	os.Remove(probe)
	return nil
}
