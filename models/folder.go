package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Folder struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID  `bson:"owner" json:"owner"`
	ParentID  *primitive.ObjectID `bson:"parent,omitempty" json:"parent,omitempty"`
	Name      string              `bson:"name" json:"name" validate:"required"`
	Path      string              `bson:"path" json:"path"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`

	// ParentName is populated on list responses, never stored.
	ParentName string `bson:"-" json:"parent_name,omitempty"`
}

// FolderNode is a folder with its children attached, used by the tree endpoint.
type FolderNode struct {
	Folder
	Children []*FolderNode `json:"children"`
}

// FolderContents bundles a folder with its direct subfolders and images.
type FolderContents struct {
	Folder     *Folder  `json:"folder"`
	Subfolders []Folder `json:"subfolders"`
	Images     []Image  `json:"images"`
}

// FolderRef is the (id, parent) projection used by the cascade delete closure.
type FolderRef struct {
	ID       primitive.ObjectID  `bson:"_id"`
	ParentID *primitive.ObjectID `bson:"parent,omitempty"`
}

type FolderCreateRequest struct {
	Name     string `json:"name" validate:"required,max=255,folder_name"`
	ParentID string `json:"parent_id"`
}

type FolderRenameRequest struct {
	Name string `json:"name" validate:"required,max=255,folder_name"`
}
