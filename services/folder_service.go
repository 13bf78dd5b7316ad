package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"filehive/database"
	"filehive/models"
	"filehive/utils"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FolderService struct {
	folderCollection *mongo.Collection
	imageCollection  *mongo.Collection
}

func NewFolderService() *FolderService {
	return &FolderService{
		folderCollection: database.GetCollection(database.FoldersCollection),
		imageCollection:  database.GetCollection(database.ImagesCollection),
	}
}

var slashRuns = regexp.MustCompile(`/+`)

// BuildFolderPath computes the materialized path for a folder under the given
// parent path. Root folders get "/name"; any run of slashes is collapsed so a
// "/" fallback parent cannot produce "//name".
func BuildFolderPath(parentPath, name string) string {
	return slashRuns.ReplaceAllString(parentPath+"/"+name, "/")
}

// DescendantClosure returns the set of folder ids reachable from target by
// following parent edges, target included. Fixed-point iteration over the flat
// (id, parent) list: each pass adds folders whose parent is already in the set,
// until a full pass adds nothing. No recursion, terminates on any acyclic
// parent graph regardless of depth.
func DescendantClosure(target primitive.ObjectID, refs []models.FolderRef) map[primitive.ObjectID]struct{} {
	closure := map[primitive.ObjectID]struct{}{target: {}}

	added := true
	for added {
		added = false
		for _, ref := range refs {
			if ref.ParentID == nil {
				continue
			}
			if _, inSet := closure[*ref.ParentID]; !inSet {
				continue
			}
			if _, seen := closure[ref.ID]; seen {
				continue
			}
			closure[ref.ID] = struct{}{}
			added = true
		}
	}

	return closure
}

// AssembleFolderTree links a flat folder list into a forest in two linear
// passes: one to build the id->node map, one to attach each node to its parent
// or to the root list. A folder whose parent is missing from the list is
// treated as a root rather than dropped.
func AssembleFolderTree(folders []models.Folder) []*models.FolderNode {
	nodes := make(map[primitive.ObjectID]*models.FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &models.FolderNode{Folder: f, Children: []*models.FolderNode{}}
	}

	roots := []*models.FolderNode{}
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentID != nil {
			if parent, ok := nodes[*f.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// GetFolder returns a folder scoped to its owner
func (fs *FolderService) GetFolder(ownerID, folderID primitive.ObjectID) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return fs.getFolder(ctx, ownerID, folderID)
}

func (fs *FolderService) getFolder(ctx context.Context, ownerID, folderID primitive.ObjectID) (*models.Folder, error) {
	var folder models.Folder
	err := fs.folderCollection.FindOne(ctx, bson.M{
		"_id":   folderID,
		"owner": ownerID,
	}).Decode(&folder)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NotFoundErrorf("folder not found")
		}
		return nil, err
	}

	return &folder, nil
}

// CreateFolder creates a new folder under an optional parent
func (fs *FolderService) CreateFolder(ownerID primitive.ObjectID, req *models.FolderCreateRequest) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.ValidationErrorf("name is required")
	}

	// Validate parent folder if specified. The lookup is owner-scoped, so a
	// parent belonging to another account reads as absent.
	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		pid, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			return nil, utils.ValidationErrorf("invalid parent folder id")
		}
		if _, err := fs.getFolder(ctx, ownerID, pid); err != nil {
			return nil, utils.NotFoundErrorf("parent folder not found")
		}
		parentID = &pid
	}

	if err := fs.checkDuplicateName(ctx, ownerID, name, parentID, primitive.NilObjectID); err != nil {
		return nil, err
	}

	path, err := fs.buildPath(ctx, name, parentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		ParentID:  parentID,
		Name:      name,
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := fs.folderCollection.InsertOne(ctx, folder); err != nil {
		// The unique (owner, parent, name) index is the authority under
		// concurrent creates; the check above is only a fast path.
		if utils.IsDuplicateKey(err) {
			return nil, utils.ConflictErrorf("folder with this name already exists in this location")
		}
		return nil, err
	}

	return folder, nil
}

// ListFolders returns all folders for an owner ordered by creation time, each
// annotated with its parent's name.
func (fs *FolderService) ListFolders(ownerID primitive.ObjectID) ([]models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	folders, err := fs.listFolders(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(folders))
	for _, f := range folders {
		names[f.ID] = f.Name
	}
	for i := range folders {
		if folders[i].ParentID != nil {
			folders[i].ParentName = names[*folders[i].ParentID]
		}
	}

	return folders, nil
}

// GetTree returns the owner's folders assembled into a forest
func (fs *FolderService) GetTree(ownerID primitive.ObjectID) ([]*models.FolderNode, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	folders, err := fs.listFolders(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return AssembleFolderTree(folders), nil
}

// GetContents returns a folder with its direct subfolders and images
func (fs *FolderService) GetContents(ownerID, folderID primitive.ObjectID) (*models.FolderContents, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	folder, err := fs.getFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	cursor, err := fs.folderCollection.Find(ctx,
		bson.M{"owner": ownerID, "parent": folderID},
		options.Find().SetSort(bson.M{"name": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subfolders := []models.Folder{}
	if err = cursor.All(ctx, &subfolders); err != nil {
		return nil, err
	}

	imgCursor, err := fs.imageCollection.Find(ctx,
		bson.M{"owner": ownerID, "folder": folderID},
		options.Find().SetSort(bson.M{"created_at": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer imgCursor.Close(ctx)

	images := []models.Image{}
	if err = imgCursor.All(ctx, &images); err != nil {
		return nil, err
	}

	return &models.FolderContents{
		Folder:     folder,
		Subfolders: subfolders,
		Images:     images,
	}, nil
}

// RenameFolder renames a folder and recomputes its own materialized path.
// Descendant paths are left as written; they are display strings recomputed
// only on each folder's own rename.
func (fs *FolderService) RenameFolder(ownerID, folderID primitive.ObjectID, req *models.FolderRenameRequest) (*models.Folder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.ValidationErrorf("name is required")
	}

	folder, err := fs.getFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, err
	}

	// Renaming to the current name must not conflict with itself.
	if err := fs.checkDuplicateName(ctx, ownerID, name, folder.ParentID, folder.ID); err != nil {
		return nil, err
	}

	path, err := fs.buildPath(ctx, name, folder.ParentID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":       name,
		"path":       path,
		"updated_at": time.Now(),
	}}

	if _, err := fs.folderCollection.UpdateOne(ctx,
		bson.M{"_id": folderID, "owner": ownerID}, update,
	); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, utils.ConflictErrorf("folder with this name already exists in this location")
		}
		return nil, err
	}

	return fs.getFolder(ctx, ownerID, folderID)
}

// DeleteFolder deletes a folder, every descendant folder and every image in
// any of them, returning the number of folders removed. The two bulk deletes
// are not transactional; a failure between them surfaces as an error with no
// rollback.
func (fs *FolderService) DeleteFolder(ownerID, folderID primitive.ObjectID) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := fs.getFolder(ctx, ownerID, folderID); err != nil {
		return 0, err
	}

	// Single bulk read of the owner's (id, parent) pairs; the closure is
	// computed in memory rather than one query per level.
	cursor, err := fs.folderCollection.Find(ctx,
		bson.M{"owner": ownerID},
		options.Find().SetProjection(bson.M{"_id": 1, "parent": 1}),
	)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var refs []models.FolderRef
	if err = cursor.All(ctx, &refs); err != nil {
		return 0, err
	}

	closure := DescendantClosure(folderID, refs)
	folderIDs := make([]primitive.ObjectID, 0, len(closure))
	for id := range closure {
		folderIDs = append(folderIDs, id)
	}

	// Remove stored blobs best-effort before dropping the records; a blob
	// that outlives its record is orphaned garbage, not corruption.
	fs.deleteImageBlobs(ctx, ownerID, folderIDs)

	if _, err := fs.imageCollection.DeleteMany(ctx, bson.M{
		"owner":  ownerID,
		"folder": bson.M{"$in": folderIDs},
	}); err != nil {
		return 0, err
	}

	result, err := fs.folderCollection.DeleteMany(ctx, bson.M{
		"_id":   bson.M{"$in": folderIDs},
		"owner": ownerID,
	})
	if err != nil {
		return 0, err
	}

	return int(result.DeletedCount), nil
}

// Helper methods

func (fs *FolderService) listFolders(ctx context.Context, ownerID primitive.ObjectID) ([]models.Folder, error) {
	cursor, err := fs.folderCollection.Find(ctx,
		bson.M{"owner": ownerID},
		options.Find().SetSort(bson.M{"created_at": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	folders := []models.Folder{}
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, err
	}

	return folders, nil
}

func (fs *FolderService) checkDuplicateName(ctx context.Context, ownerID primitive.ObjectID, name string, parentID *primitive.ObjectID, excludeID primitive.ObjectID) error {
	filter := bson.M{
		"owner": ownerID,
		"name":  name,
	}

	if parentID != nil {
		filter["parent"] = *parentID
	} else {
		filter["parent"] = bson.M{"$exists": false}
	}

	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := fs.folderCollection.CountDocuments(ctx, filter)
	if err != nil {
		return err
	}

	if count > 0 {
		return utils.ConflictErrorf("folder with this name already exists in this location")
	}

	return nil
}

// buildPath resolves the parent's stored path and derives the new folder's
// path from it. A parent that vanished between validation and here degrades
// to the "/" root prefix instead of failing the write.
func (fs *FolderService) buildPath(ctx context.Context, name string, parentID *primitive.ObjectID) (string, error) {
	if parentID == nil {
		return BuildFolderPath("", name), nil
	}

	var parent models.Folder
	err := fs.folderCollection.FindOne(ctx, bson.M{"_id": *parentID}).Decode(&parent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return BuildFolderPath("/", name), nil
		}
		return "", err
	}

	return BuildFolderPath(parent.Path, name), nil
}

func (fs *FolderService) deleteImageBlobs(ctx context.Context, ownerID primitive.ObjectID, folderIDs []primitive.ObjectID) {
	provider := GetStorageProvider()
	if provider == nil {
		return
	}

	cursor, err := fs.imageCollection.Find(ctx,
		bson.M{"owner": ownerID, "folder": bson.M{"$in": folderIDs}},
		options.Find().SetProjection(bson.M{"_id": 1, "storage_key": 1}),
	)
	if err != nil {
		logrus.WithError(err).Warn("cascade delete: listing image blobs failed")
		return
	}
	defer cursor.Close(ctx)

	var refs []models.ImageRef
	if err = cursor.All(ctx, &refs); err != nil {
		logrus.WithError(err).Warn("cascade delete: reading image blobs failed")
		return
	}

	for _, ref := range refs {
		if ref.StorageKey == "" {
			continue
		}
		if err := provider.Delete(ref.StorageKey); err != nil {
			logrus.WithError(err).WithField("key", ref.StorageKey).
				Warn("cascade delete: blob removal failed")
		}
	}
}
