package splay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringValue struct {
	content string
	deleted bool
}

func (v *stringValue) Len() int {
	if v.deleted {
		return 0
	}
	return len(v.content)
}

func (v *stringValue) String() string {
	return v.content
}

func TestTreeInsertAndLen(t *testing.T) {
	tree := NewTree()
	a := NewNode(&stringValue{content: "AB"})
	b := NewNode(&stringValue{content: "CD"})
	c := NewNode(&stringValue{content: "EF"})

	tree.Insert(a)
	tree.Insert(b)
	tree.Insert(c)

	assert.Equal(t, 6, tree.Len())
}

func TestTreeFindResolvesIndexToNodeAndOffset(t *testing.T) {
	tree := NewTree()
	a := NewNode(&stringValue{content: "AB"})
	b := NewNode(&stringValue{content: "CD"})
	c := NewNode(&stringValue{content: "EF"})
	tree.Insert(a)
	tree.Insert(b)
	tree.Insert(c)

	node, offset := tree.Find(3)
	assert.Equal(t, b, node)
	assert.Equal(t, 1, offset)

	node, offset = tree.Find(0)
	assert.Equal(t, a, node)
	assert.Equal(t, 0, offset)
}

func TestTreeIndexOfReturnsNodeStartIndex(t *testing.T) {
	tree := NewTree()
	a := NewNode(&stringValue{content: "AB"})
	b := NewNode(&stringValue{content: "CD"})
	c := NewNode(&stringValue{content: "EF"})
	tree.Insert(a)
	tree.Insert(b)
	tree.Insert(c)

	assert.Equal(t, 2, tree.IndexOf(b))
	assert.Equal(t, 4, tree.IndexOf(c))
	assert.Equal(t, 0, tree.IndexOf(a))
}

func TestTreeInsertAfterPlacesNodeImmediatelyAfterTarget(t *testing.T) {
	tree := NewTree()
	a := NewNode(&stringValue{content: "AB"})
	c := NewNode(&stringValue{content: "EF"})
	tree.Insert(a)
	tree.Insert(c)

	b := NewNode(&stringValue{content: "CD"})
	tree.InsertAfter(a, b)

	assert.Equal(t, 2, tree.IndexOf(b))
	assert.Equal(t, 6, tree.Len())
}

func TestTreeDeleteRemovesWeight(t *testing.T) {
	tree := NewTree()
	a := NewNode(&stringValue{content: "AB"})
	b := NewNode(&stringValue{content: "CD"})
	tree.Insert(a)
	tree.Insert(b)

	tree.Delete(a)
	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, 0, tree.IndexOf(b))
}

func TestTreeUpdateSubtreeReflectsTombstoning(t *testing.T) {
	tree := NewTree()
	value := &stringValue{content: "AB"}
	a := NewNode(value)
	b := NewNode(&stringValue{content: "CD"})
	tree.Insert(a)
	tree.Insert(b)

	value.deleted = true
	tree.UpdateSubtree(a)
	// UpdateSubtree is node-local, so the ancestor b is refreshed as well.
	tree.UpdateSubtree(b)

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 2, tree.Len())
	assert.Equal(t, 0, tree.IndexOf(b))
}
