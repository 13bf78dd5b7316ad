package storage

import "fmt"

// Settings selects and configures the active provider.
type Settings struct {
	Provider  string
	LocalPath string
	BaseURL   string
	S3        S3Config
}

// NewProvider constructs the storage provider named in the settings.
func NewProvider(s Settings) (Provider, error) {
	switch s.Provider {
	case "s3":
		return NewS3Client(s.S3)
	case "local", "":
		return NewLocalClient(s.LocalPath, s.BaseURL)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", s.Provider)
	}
}
