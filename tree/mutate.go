package tree

import (
	"errors"
	"fmt"
	"slices"
)

var ErrIndex = errors.New("child index out of range")

// Replace substitutes g for the node viewed by r and rebuilds every ancestor
// up to the root. Siblings along the path are reused by reference. It
// returns the new root; views of the old tree stay valid for the old tree.
// A nil g is rejected; use Remove to delete a child.
func Replace(c *Cache, r *Red, g *Green) (*Green, error) {
	if g == nil {
		return nil, fmt.Errorf("replace %s with nil: %w", r.Kind(), ErrNotNode)
	}
	for r.parent != nil {
		parent := r.parent
		pg := parent.green
		if pg.variant == variantAlias {
			g = c.Alias(pg.kind, g)
		} else {
			children := slices.Clone(pg.children)
			children[r.index] = g
			g = c.Node(pg.kind, children)
		}
		r = parent
	}
	return g, nil
}

// listNode returns the interior node holding the list viewed by r.
func listNode(r *Red) (*Red, error) {
	inner := r.Unwrap()
	if inner == nil || inner.green.variant != variantNode {
		return nil, fmt.Errorf("edit %s: %w", r.Kind(), ErrNotNode)
	}
	return inner, nil
}

// InsertMany inserts gs before the child at index of the list node r and
// returns the new root.
func InsertMany(c *Cache, r *Red, index int, gs ...*Green) (*Green, error) {
	list, err := listNode(r)
	if err != nil {
		return nil, err
	}
	if index < 0 || index > len(list.green.children) {
		return nil, fmt.Errorf("insert at %d into %s with %d children: %w", index, list.Kind(), len(list.green.children), ErrIndex)
	}
	children := slices.Insert(slices.Clone(list.green.children), index, gs...)
	return Replace(c, list, c.Node(list.green.kind, children))
}

// PushMany appends gs to the list node r and returns the new root.
func PushMany(c *Cache, r *Red, gs ...*Green) (*Green, error) {
	list, err := listNode(r)
	if err != nil {
		return nil, err
	}
	return InsertMany(c, list, len(list.green.children), gs...)
}

// Remove deletes the child at index of the list node r and returns the new
// root.
func Remove(c *Cache, r *Red, index int) (*Green, error) {
	list, err := listNode(r)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(list.green.children) {
		return nil, fmt.Errorf("remove %d from %s with %d children: %w", index, list.Kind(), len(list.green.children), ErrIndex)
	}
	children := slices.Delete(slices.Clone(list.green.children), index, index+1)
	return Replace(c, list, c.Node(list.green.kind, children))
}
