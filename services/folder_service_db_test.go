package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"filehive/database"
	"filehive/models"
	"filehive/utils"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateFolderDuplicateSibling(t *testing.T) {
	requireMongo(t)
	fs := NewFolderService()
	owner := primitive.NewObjectID()

	first, err := fs.CreateFolder(owner, &models.FolderCreateRequest{Name: "Docs"})
	require.NoError(t, err)
	require.Equal(t, "/Docs", first.Path)

	_, err = fs.CreateFolder(owner, &models.FolderCreateRequest{Name: "Docs"})
	require.ErrorIs(t, err, utils.ErrConflict)

	// The same name is fine under a different parent.
	child, err := fs.CreateFolder(owner, &models.FolderCreateRequest{
		Name:     "Docs",
		ParentID: first.ID.Hex(),
	})
	require.NoError(t, err)
	require.Equal(t, "/Docs/Docs", child.Path)

	// And fine for a different owner at the root.
	_, err = fs.CreateFolder(primitive.NewObjectID(), &models.FolderCreateRequest{Name: "Docs"})
	require.NoError(t, err)
}

func TestCreateFolderConcurrentDuplicates(t *testing.T) {
	requireMongo(t)
	fs := NewFolderService()
	owner := primitive.NewObjectID()

	// Both creates race past the fast-path count check; the unique
	// (owner, parent, name) index must let exactly one through.
	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fs.CreateFolder(owner, &models.FolderCreateRequest{Name: "Race"})
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, utils.ErrConflict)
			conflicts++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, 1, conflicts)
}

func TestCreateFolderMissingParent(t *testing.T) {
	requireMongo(t)
	fs := NewFolderService()

	_, err := fs.CreateFolder(primitive.NewObjectID(), &models.FolderCreateRequest{
		Name:     "stray",
		ParentID: primitive.NewObjectID().Hex(),
	})
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCreateFolderParentOwnedByOther(t *testing.T) {
	requireMongo(t)
	fs := NewFolderService()

	other, err := fs.CreateFolder(primitive.NewObjectID(), &models.FolderCreateRequest{Name: "theirs"})
	require.NoError(t, err)

	// Another account's folder reads as absent, not as forbidden.
	_, err = fs.CreateFolder(primitive.NewObjectID(), &models.FolderCreateRequest{
		Name:     "mine",
		ParentID: other.ID.Hex(),
	})
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestRenameFolderToOwnName(t *testing.T) {
	requireMongo(t)
	fs := NewFolderService()
	owner := primitive.NewObjectID()

	folder, err := fs.CreateFolder(owner, &models.FolderCreateRequest{Name: "Photos"})
	require.NoError(t, err)

	// Renaming to the current name must not conflict with the folder itself.
	renamed, err := fs.RenameFolder(owner, folder.ID, &models.FolderRenameRequest{Name: "Photos"})
	require.NoError(t, err)
	require.Equal(t, "Photos", renamed.Name)
	require.Equal(t, "/Photos", renamed.Path)
}

func TestRenameFolderSiblingConflict(t *testing.T) {
	requireMongo(t)
	fs := NewFolderService()
	owner := primitive.NewObjectID()

	_, err := fs.CreateFolder(owner, &models.FolderCreateRequest{Name: "alpha"})
	require.NoError(t, err)
	beta, err := fs.CreateFolder(owner, &models.FolderCreateRequest{Name: "beta"})
	require.NoError(t, err)

	_, err = fs.RenameFolder(owner, beta.ID, &models.FolderRenameRequest{Name: "alpha"})
	require.ErrorIs(t, err, utils.ErrConflict)
}

func TestDeleteFolderCascade(t *testing.T) {
	requireMongo(t)
	fs := NewFolderService()
	owner := primitive.NewObjectID()

	docs, err := fs.CreateFolder(owner, &models.FolderCreateRequest{Name: "Docs"})
	require.NoError(t, err)
	year, err := fs.CreateFolder(owner, &models.FolderCreateRequest{
		Name:     "2024",
		ParentID: docs.ID.Hex(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	images := database.GetCollection(database.ImagesCollection)
	_, err = images.InsertOne(ctx, &models.Image{
		ID:         primitive.NewObjectID(),
		OwnerID:    owner,
		FolderID:   year.ID,
		Name:       "a.png",
		StorageKey: "orphan/key/a.png",
		MimeType:   "image/png",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	})
	require.NoError(t, err)

	deleted, err := fs.DeleteFolder(owner, docs.ID)
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	_, err = fs.GetFolder(owner, docs.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)
	_, err = fs.GetFolder(owner, year.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	count, err := images.CountDocuments(ctx, bson.M{"owner": owner})
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestDeleteFolderLeavesOtherOwnersAlone(t *testing.T) {
	requireMongo(t)
	fs := NewFolderService()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	mine, err := fs.CreateFolder(owner, &models.FolderCreateRequest{Name: "shared-name"})
	require.NoError(t, err)
	theirs, err := fs.CreateFolder(other, &models.FolderCreateRequest{Name: "shared-name"})
	require.NoError(t, err)

	// Deleting through an account that does not own the folder is a 404.
	_, err = fs.DeleteFolder(other, mine.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	deleted, err := fs.DeleteFolder(owner, mine.ID)
	require.NoError(t, err)
	require.Equal(t, 1, deleted)

	still, err := fs.GetFolder(other, theirs.ID)
	require.NoError(t, err)
	require.Equal(t, "shared-name", still.Name)
}
