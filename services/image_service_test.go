package services

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"filehive/utils"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectKey(t *testing.T) {
	owner := primitive.NewObjectID()
	folder := primitive.NewObjectID()

	key := ObjectKey(owner, folder, "beach sunset.JPG")

	parts := strings.Split(key, "/")
	require.Len(t, parts, 3)
	require.Equal(t, owner.Hex(), parts[0])
	require.Equal(t, folder.Hex(), parts[1])
	require.True(t, strings.HasSuffix(key, ".jpg"), "extension should be lowercased: %s", key)
}

func TestObjectKeyUnique(t *testing.T) {
	owner := primitive.NewObjectID()
	folder := primitive.NewObjectID()

	a := ObjectKey(owner, folder, "photo.png")
	b := ObjectKey(owner, folder, "photo.png")
	require.NotEqual(t, a, b)
}

func TestObjectKeyNoExtension(t *testing.T) {
	owner := primitive.NewObjectID()
	folder := primitive.NewObjectID()

	key := ObjectKey(owner, folder, "README")
	require.False(t, strings.Contains(strings.Split(key, "/")[2], "."))
}

func uploadHeader(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	is := &ImageService{maxUploadSize: 10 << 20}

	_, err := is.UploadImage(primitive.NewObjectID(), "", primitive.NewObjectID().Hex(),
		uploadHeader("report.pdf", "application/pdf", 1024))

	require.ErrorIs(t, err, utils.ErrValidation)
	require.Contains(t, err.Error(), "application/pdf")
}

func TestUploadImageRejectsOversized(t *testing.T) {
	is := &ImageService{maxUploadSize: 1024}

	_, err := is.UploadImage(primitive.NewObjectID(), "", primitive.NewObjectID().Hex(),
		uploadHeader("big.png", "image/png", 4096))

	require.ErrorIs(t, err, utils.ErrValidation)
}

func TestUploadImageRequiresFile(t *testing.T) {
	is := &ImageService{}

	_, err := is.UploadImage(primitive.NewObjectID(), "", primitive.NewObjectID().Hex(), nil)
	require.ErrorIs(t, err, utils.ErrValidation)
}

func TestSearchImagesBlankQuery(t *testing.T) {
	is := &ImageService{}

	images, err := is.SearchImages(primitive.NewObjectID(), "")
	require.NoError(t, err)
	require.Empty(t, images)
}
