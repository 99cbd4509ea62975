package llrb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type intKey int

func (k intKey) Compare(other Key) int {
	o := other.(intKey)
	if k < o {
		return -1
	}
	if k > o {
		return 1
	}
	return 0
}

func TestTreePutGet(t *testing.T) {
	tree := NewTree()
	tree.Put(intKey(5), "five")
	tree.Put(intKey(3), "three")
	tree.Put(intKey(8), "eight")

	assert.Equal(t, 3, tree.Len())

	v, ok := tree.Get(intKey(3))
	assert.True(t, ok)
	assert.Equal(t, "three", v)

	_, ok = tree.Get(intKey(100))
	assert.False(t, ok)
}

func TestTreePutReplacesExistingKey(t *testing.T) {
	tree := NewTree()
	tree.Put(intKey(1), "a")
	tree.Put(intKey(1), "b")

	assert.Equal(t, 1, tree.Len())
	v, ok := tree.Get(intKey(1))
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestTreeFloor(t *testing.T) {
	tree := NewTree()
	for _, k := range []int{10, 20, 30, 40} {
		tree.Put(intKey(k), k)
	}

	k, v := tree.Floor(intKey(25))
	assert.Equal(t, intKey(20), k)
	assert.Equal(t, 20, v)

	k, v = tree.Floor(intKey(30))
	assert.Equal(t, intKey(30), k)
	assert.Equal(t, 30, v)

	k, v = tree.Floor(intKey(5))
	assert.Nil(t, k)
	assert.Nil(t, v)
}

func TestTreeDelete(t *testing.T) {
	tree := NewTree()
	values := []int{15, 5, 25, 1, 10, 20, 30}
	for _, k := range values {
		tree.Put(intKey(k), k)
	}

	tree.Delete(intKey(5))
	assert.Equal(t, len(values)-1, tree.Len())

	_, ok := tree.Get(intKey(5))
	assert.False(t, ok)

	for _, k := range []int{15, 25, 1, 10, 20, 30} {
		_, ok := tree.Get(intKey(k))
		assert.True(t, ok)
	}

	// Deleting an absent key is a no-op.
	tree.Delete(intKey(999))
	assert.Equal(t, len(values)-1, tree.Len())
}
