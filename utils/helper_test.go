package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStringToObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	parsed, err := StringToObjectID(id.Hex())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = StringToObjectID("not-an-id")
	require.Error(t, err)
}

func TestIsValidObjectID(t *testing.T) {
	require.True(t, IsValidObjectID(primitive.NewObjectID().Hex()))
	require.False(t, IsValidObjectID(""))
	require.False(t, IsValidObjectID("zzzz"))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{10485760, "10.0 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, FormatFileSize(tt.bytes))
	}
}

func TestSanitizeFilename(t *testing.T) {
	require.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	require.Equal(t, "photo.jpg", SanitizeFilename("  photo.jpg  "))
	require.Equal(t, "report.pdf", SanitizeFilename("/tmp/report.pdf"))
}

func TestFileExtension(t *testing.T) {
	require.Equal(t, ".jpg", FileExtension("Beach.JPG"))
	require.Equal(t, ".png", FileExtension("chart.png"))
	require.Equal(t, "", FileExtension("Makefile"))
}

func TestIsImageMimeType(t *testing.T) {
	require.True(t, IsImageMimeType("image/jpeg"))
	require.True(t, IsImageMimeType("IMAGE/PNG"))
	require.False(t, IsImageMimeType("application/pdf"))
	require.False(t, IsImageMimeType(""))
}
