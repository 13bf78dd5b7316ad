package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *LocalClient {
	t.Helper()
	client, err := NewLocalClient(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)
	return client
}

func TestLocalUploadAndExists(t *testing.T) {
	client := newTestClient(t)

	url, err := client.Upload("user1/folder1/photo.jpg", []byte("fake-jpeg"), "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/uploads/user1/folder1/photo.jpg", url)

	exists, err := client.Exists("user1/folder1/photo.jpg")
	require.NoError(t, err)
	require.True(t, exists)

	data, err := os.ReadFile(filepath.Join(client.basePath, "user1", "folder1", "photo.jpg"))
	require.NoError(t, err)
	require.Equal(t, []byte("fake-jpeg"), data)
}

func TestLocalUploadStream(t *testing.T) {
	client := newTestClient(t)

	url, err := client.UploadStream("a/b/c.png", bytes.NewReader([]byte("png-bytes")), 9, "image/png")
	require.NoError(t, err)
	require.Contains(t, url, "/uploads/a/b/c.png")

	exists, err := client.Exists("a/b/c.png")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestLocalDelete(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Upload("k.bin", []byte("x"), "application/octet-stream")
	require.NoError(t, err)

	require.NoError(t, client.Delete("k.bin"))

	exists, err := client.Exists("k.bin")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLocalDeleteMissingIsNoop(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.Delete("never-uploaded"))
}

func TestLocalHealthCheck(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.HealthCheck())
}
