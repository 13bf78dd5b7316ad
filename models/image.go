package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Image struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    primitive.ObjectID `bson:"owner" json:"owner"`
	FolderID   primitive.ObjectID `bson:"folder" json:"folder"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	StorageKey string             `bson:"storage_key" json:"storage_key"`
	URL        string             `bson:"url" json:"url"`
	Size       int64              `bson:"size" json:"size"`
	MimeType   string             `bson:"mime_type" json:"mime_type"`
	Tags       []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// ImageRef is the projection used when cascading folder deletes through
// object storage.
type ImageRef struct {
	ID         primitive.ObjectID `bson:"_id"`
	StorageKey string             `bson:"storage_key"`
}
