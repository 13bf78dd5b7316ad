package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"time"

	"filehive/database"
	"filehive/models"
	"filehive/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const searchResultLimit = 50

type ImageService struct {
	imageCollection  *mongo.Collection
	folderCollection *mongo.Collection
	maxUploadSize    int64
}

func NewImageService(maxUploadSize int64) *ImageService {
	return &ImageService{
		imageCollection:  database.GetCollection(database.ImagesCollection),
		folderCollection: database.GetCollection(database.FoldersCollection),
		maxUploadSize:    maxUploadSize,
	}
}

// ObjectKey builds the storage key for an uploaded image. Keys are namespaced
// by owner and folder so blobs from different accounts never collide.
func ObjectKey(ownerID, folderID primitive.ObjectID, filename string) string {
	ext := utils.FileExtension(filename)
	return fmt.Sprintf("%s/%s/%s%s", ownerID.Hex(), folderID.Hex(), uuid.New().String(), ext)
}

// UploadImage stores the file bytes with the configured storage provider and
// records the image under the given folder.
func (is *ImageService) UploadImage(ownerID primitive.ObjectID, name, folderID string, header *multipart.FileHeader) (*models.Image, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if header == nil {
		return nil, utils.ValidationErrorf("image file is required")
	}
	if is.maxUploadSize > 0 && header.Size > is.maxUploadSize {
		return nil, utils.ValidationErrorf("file exceeds maximum upload size of %s", utils.FormatFileSize(is.maxUploadSize))
	}

	mimeType := header.Header.Get("Content-Type")
	if !utils.IsImageMimeType(mimeType) {
		return nil, utils.ValidationErrorf("unsupported image type %q", mimeType)
	}

	folderObjID, err := utils.StringToObjectID(folderID)
	if err != nil {
		return nil, utils.ValidationErrorf("invalid folder ID")
	}

	var folder models.Folder
	err = is.folderCollection.FindOne(ctx, bson.M{"_id": folderObjID, "owner": ownerID}).Decode(&folder)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundErrorf("folder not found")
		}
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if name == "" {
		name = header.Filename
	}
	name = utils.SanitizeFilename(name)

	key := ObjectKey(ownerID, folderObjID, header.Filename)
	url, err := GetStorageProvider().Upload(key, data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	now := time.Now()
	image := &models.Image{
		ID:         primitive.NewObjectID(),
		OwnerID:    ownerID,
		FolderID:   folderObjID,
		Name:       name,
		StorageKey: key,
		URL:        url,
		Size:       header.Size,
		MimeType:   mimeType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := is.imageCollection.InsertOne(ctx, image); err != nil {
		// The blob is already stored; try not to leave it orphaned.
		if delErr := GetStorageProvider().Delete(key); delErr != nil {
			logrus.WithError(delErr).WithField("key", key).Warn("Failed to clean up blob after insert failure")
		}
		return nil, err
	}
	return image, nil
}

// ListImages returns one page of the owner's images newest first, optionally
// restricted to a folder, along with the total match count.
func (is *ImageService) ListImages(ownerID primitive.ObjectID, folderID string, page, limit int) ([]models.Image, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{"owner": ownerID}
	if folderID != "" {
		folderObjID, err := utils.StringToObjectID(folderID)
		if err != nil {
			return nil, 0, utils.ValidationErrorf("invalid folder ID")
		}
		filter["folder"] = folderObjID
	}

	total, err := is.imageCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := (page - 1) * limit
	cursor, err := is.imageCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	images := make([]models.Image, 0)
	if err := cursor.All(ctx, &images); err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

// SearchImages matches image names case-insensitively for the owner.
func (is *ImageService) SearchImages(ownerID primitive.ObjectID, query string) ([]models.Image, error) {
	// A blank query matches nothing rather than erroring.
	if query == "" {
		return []models.Image{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"owner": ownerID,
		"name":  bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"},
	}

	cursor, err := is.imageCollection.Find(ctx, filter,
		options.Find().
			SetSort(bson.M{"created_at": -1}).
			SetLimit(searchResultLimit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	images := make([]models.Image, 0)
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// GetImage returns a single owner-scoped image.
func (is *ImageService) GetImage(ownerID, imageID primitive.ObjectID) (*models.Image, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var image models.Image
	err := is.imageCollection.FindOne(ctx, bson.M{"_id": imageID, "owner": ownerID}).Decode(&image)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundErrorf("image not found")
		}
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes the record and attempts to remove the stored blob.
// Blob deletion failures are logged and swallowed; the record delete decides
// the outcome.
func (is *ImageService) DeleteImage(ownerID, imageID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	image, err := is.GetImage(ownerID, imageID)
	if err != nil {
		return err
	}

	if err := GetStorageProvider().Delete(image.StorageKey); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"image_id": imageID.Hex(),
			"key":      image.StorageKey,
		}).Warn("Failed to delete image blob")
	}

	if _, err := is.imageCollection.DeleteOne(ctx, bson.M{"_id": imageID, "owner": ownerID}); err != nil {
		return err
	}
	return nil
}
