package services

import (
	"testing"

	"filehive/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFolderPath(t *testing.T) {
	tests := []struct {
		name       string
		parentPath string
		folder     string
		want       string
	}{
		{"root folder", "", "photos", "/photos"},
		{"nested folder", "/photos", "vacation", "/photos/vacation"},
		{"deeply nested", "/photos/vacation", "2024", "/photos/vacation/2024"},
		{"slash fallback parent", "/", "orphaned", "/orphaned"},
		{"parent path with trailing slash", "/photos/", "raw", "/photos/raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, BuildFolderPath(tt.parentPath, tt.folder))
		})
	}
}

func TestDescendantClosureChain(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	unrelated := primitive.NewObjectID()

	refs := []models.FolderRef{
		{ID: a},
		{ID: b, ParentID: &a},
		{ID: c, ParentID: &b},
		{ID: unrelated},
	}

	closure := DescendantClosure(a, refs)

	require.Len(t, closure, 3)
	require.Contains(t, closure, a)
	require.Contains(t, closure, b)
	require.Contains(t, closure, c)
	require.NotContains(t, closure, unrelated)
}

func TestDescendantClosureLeaf(t *testing.T) {
	root := primitive.NewObjectID()
	leaf := primitive.NewObjectID()

	refs := []models.FolderRef{
		{ID: root},
		{ID: leaf, ParentID: &root},
	}

	closure := DescendantClosure(leaf, refs)

	require.Len(t, closure, 1)
	require.Contains(t, closure, leaf)
}

func TestDescendantClosureDeepChainNoRecursion(t *testing.T) {
	// A straight chain far deeper than any sane stack-recursive walk.
	const depth = 10000

	refs := make([]models.FolderRef, depth)
	ids := make([]primitive.ObjectID, depth)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	refs[0] = models.FolderRef{ID: ids[0]}
	for i := 1; i < depth; i++ {
		refs[i] = models.FolderRef{ID: ids[i], ParentID: &ids[i-1]}
	}

	closure := DescendantClosure(ids[0], refs)
	require.Len(t, closure, depth)
}

func TestDescendantClosureOrderIndependent(t *testing.T) {
	// The fixed-point loop must find descendants even when children appear
	// before their parents in the flat list.
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	refs := []models.FolderRef{
		{ID: c, ParentID: &b},
		{ID: b, ParentID: &a},
		{ID: a},
	}

	closure := DescendantClosure(a, refs)
	require.Len(t, closure, 3)
}

func TestAssembleFolderTree(t *testing.T) {
	rootID := primitive.NewObjectID()
	childID := primitive.NewObjectID()
	grandchildID := primitive.NewObjectID()
	otherRootID := primitive.NewObjectID()

	folders := []models.Folder{
		{ID: rootID, Name: "docs", Path: "/docs"},
		{ID: childID, ParentID: &rootID, Name: "work", Path: "/docs/work"},
		{ID: grandchildID, ParentID: &childID, Name: "2024", Path: "/docs/work/2024"},
		{ID: otherRootID, Name: "photos", Path: "/photos"},
	}

	roots := AssembleFolderTree(folders)

	require.Len(t, roots, 2)

	var docs *models.FolderNode
	for _, r := range roots {
		if r.ID == rootID {
			docs = r
		}
	}
	require.NotNil(t, docs)
	require.Len(t, docs.Children, 1)
	require.Equal(t, childID, docs.Children[0].ID)
	require.Len(t, docs.Children[0].Children, 1)
	require.Equal(t, grandchildID, docs.Children[0].Children[0].ID)
}

func TestAssembleFolderTreeOrphanBecomesRoot(t *testing.T) {
	missingParent := primitive.NewObjectID()
	orphanID := primitive.NewObjectID()

	folders := []models.Folder{
		{ID: orphanID, ParentID: &missingParent, Name: "stray", Path: "/stray"},
	}

	roots := AssembleFolderTree(folders)

	require.Len(t, roots, 1)
	require.Equal(t, orphanID, roots[0].ID)
}

func TestAssembleFolderTreeNodeCount(t *testing.T) {
	rootID := primitive.NewObjectID()
	folders := []models.Folder{{ID: rootID, Name: "a", Path: "/a"}}
	for i := 0; i < 25; i++ {
		folders = append(folders, models.Folder{
			ID:       primitive.NewObjectID(),
			ParentID: &rootID,
		})
	}

	roots := AssembleFolderTree(folders)

	count := 0
	var walk func(nodes []*models.FolderNode)
	walk = func(nodes []*models.FolderNode) {
		for _, n := range nodes {
			count++
			walk(n.Children)
		}
	}
	walk(roots)

	require.Equal(t, len(folders), count)
}

func TestAssembleFolderTreeEmpty(t *testing.T) {
	require.Empty(t, AssembleFolderTree(nil))
}
