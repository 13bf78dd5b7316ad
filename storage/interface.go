package storage

import "io"

// Provider is the object-storage capability consumed by the image service.
// Upload returns a retrieval URL for the stored key; Delete is best-effort
// from the caller's point of view (record deletion proceeds regardless).
type Provider interface {
	Upload(key string, data []byte, contentType string) (string, error)
	UploadStream(key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	GetURL(key string) (string, error)

	Name() string
	HealthCheck() error
}

// StorageError represents storage-specific errors
type StorageError struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Key      string `json:"key,omitempty"`
}

func (e *StorageError) Error() string {
	return e.Message
}

// NewStorageError creates a new storage error
func NewStorageError(provider, code, message, key string) *StorageError {
	return &StorageError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Key:      key,
	}
}
