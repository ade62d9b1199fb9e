package catalog

import (
	"strings"

	"storefront/internal/models"
)

// Tree is an in-memory view of the category table, built per request.
// The taxonomy is small; traversal over parent_id beats pushing
// recursion into SQL here.
type Tree struct {
	byID     map[int64]models.Category
	children map[int64][]int64
}

// NewTree indexes the given category rows.
func NewTree(categories []models.Category) *Tree {
	t := &Tree{
		byID:     make(map[int64]models.Category, len(categories)),
		children: make(map[int64][]int64),
	}
	for _, c := range categories {
		t.byID[c.ID] = c
		if c.ParentID != nil {
			t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
		}
	}
	return t
}

// Get returns the category with the given id.
func (t *Tree) Get(id int64) (models.Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// AncestorsPath returns the root-to-node name chain joined by " > ".
func (t *Tree) AncestorsPath(id int64) (string, error) {
	c, ok := t.byID[id]
	if !ok {
		return "", models.NotFoundErrorf("category %d", id)
	}

	names := []string{c.Name}
	for c.ParentID != nil {
		parent, ok := t.byID[*c.ParentID]
		if !ok {
			return "", models.NotFoundErrorf("category %d (parent of %d)", *c.ParentID, c.ID)
		}
		names = append(names, parent.Name)
		if len(names) > len(t.byID) {
			return "", models.ValidationErrorf("category %d has a cyclic ancestry", id)
		}
		c = parent
	}

	// Collected leaf-first, reverse to root-first.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " > "), nil
}

// SubtreeIDs returns the ids of the category and all its descendants.
func (t *Tree) SubtreeIDs(id int64) []int64 {
	if _, ok := t.byID[id]; !ok {
		return nil
	}

	ids := []int64{}
	stack := []int64{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, cur)
		stack = append(stack, t.children[cur]...)
	}
	return ids
}

// IsDescendant reports whether id lies strictly inside the subtree
// rooted at ancestorID.
func (t *Tree) IsDescendant(id, ancestorID int64) bool {
	c, ok := t.byID[id]
	if !ok || id == ancestorID {
		return false
	}

	seen := 0
	for c.ParentID != nil {
		if *c.ParentID == ancestorID {
			return true
		}
		parent, ok := t.byID[*c.ParentID]
		if !ok {
			return false
		}
		seen++
		if seen > len(t.byID) {
			return false
		}
		c = parent
	}
	return false
}

// ValidateParent rejects parent assignments that would create a cycle:
// a category may not become a child of itself or of any of its own
// descendants.
func (t *Tree) ValidateParent(id int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return models.ValidationErrorf("category cannot be its own parent")
	}
	if _, ok := t.byID[*parentID]; !ok {
		return models.ValidationErrorf("parent category %d does not exist", *parentID)
	}
	if t.IsDescendant(*parentID, id) {
		return models.ValidationErrorf("category cannot be a parent of its own ancestor")
	}
	return nil
}
