package catalog

import (
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

// Electronics > Computers > Laptops, Electronics > Phones, Books (root)
func testCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Electronics", Slug: "electronics"},
		{ID: 2, Name: "Computers", Slug: "computers", ParentID: ptr(1)},
		{ID: 3, Name: "Laptops", Slug: "laptops", ParentID: ptr(2)},
		{ID: 4, Name: "Phones", Slug: "phones", ParentID: ptr(1)},
		{ID: 5, Name: "Books", Slug: "books"},
	}
}

func TestAncestorsPath(t *testing.T) {
	tree := NewTree(testCategories())

	path, err := tree.AncestorsPath(3)
	require.NoError(t, err)
	assert.Equal(t, "Electronics > Computers > Laptops", path)

	path, err = tree.AncestorsPath(1)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", path)

	path, err = tree.AncestorsPath(5)
	require.NoError(t, err)
	assert.Equal(t, "Books", path)
}

func TestAncestorsPathUnknownCategory(t *testing.T) {
	tree := NewTree(testCategories())

	_, err := tree.AncestorsPath(99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSubtreeIDs(t *testing.T) {
	tree := NewTree(testCategories())

	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, tree.SubtreeIDs(1))
	assert.ElementsMatch(t, []int64{2, 3}, tree.SubtreeIDs(2))
	assert.ElementsMatch(t, []int64{3}, tree.SubtreeIDs(3))
	assert.ElementsMatch(t, []int64{5}, tree.SubtreeIDs(5))
	assert.Empty(t, tree.SubtreeIDs(99))
}

func TestIsDescendant(t *testing.T) {
	tree := NewTree(testCategories())

	assert.True(t, tree.IsDescendant(3, 1))
	assert.True(t, tree.IsDescendant(3, 2))
	assert.True(t, tree.IsDescendant(4, 1))
	assert.False(t, tree.IsDescendant(1, 3))
	assert.False(t, tree.IsDescendant(5, 1))
	assert.False(t, tree.IsDescendant(1, 1))
}

func TestValidateParentRejectsCycles(t *testing.T) {
	tree := NewTree(testCategories())

	// Electronics cannot move under its own descendant Laptops.
	err := tree.ValidateParent(1, ptr(3))
	assert.ErrorIs(t, err, models.ErrValidation)

	// Nor under itself.
	err = tree.ValidateParent(1, ptr(1))
	assert.ErrorIs(t, err, models.ErrValidation)

	// Unknown parent is rejected.
	err = tree.ValidateParent(1, ptr(99))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestValidateParentAllowsValidMoves(t *testing.T) {
	tree := NewTree(testCategories())

	assert.NoError(t, tree.ValidateParent(3, ptr(5)))
	assert.NoError(t, tree.ValidateParent(4, ptr(2)))
	assert.NoError(t, tree.ValidateParent(3, nil))
}
