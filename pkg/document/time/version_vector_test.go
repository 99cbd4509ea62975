package time_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackerwins/riftdoc/pkg/document/time"
)

func TestVersionVectorMaxMin(t *testing.T) {
	a := time.NewActorID()
	b := time.NewActorID()

	vv1 := time.NewVersionVector()
	vv1.Set(a, 5)
	vv1.Set(b, 2)

	vv2 := time.NewVersionVector()
	vv2.Set(a, 3)
	vv2.Set(b, 9)

	max := vv1.Max(vv2)
	assert.Equal(t, uint64(5), max.Get(a))
	assert.Equal(t, uint64(9), max.Get(b))

	min := vv1.Min(vv2)
	assert.Equal(t, uint64(3), min.Get(a))
	assert.Equal(t, uint64(2), min.Get(b))
}

func TestVersionVectorMinDropsUnknownActor(t *testing.T) {
	a := time.NewActorID()
	b := time.NewActorID()

	vv1 := time.NewVersionVector()
	vv1.Set(a, 5)
	vv1.Set(b, 1)

	vv2 := time.NewVersionVector()
	vv2.Set(a, 3)

	min := vv1.Min(vv2)
	assert.Equal(t, uint64(3), min.Get(a))
	assert.Equal(t, uint64(0), min.Get(b))
}

func TestVersionVectorGetUnknownActorIsZero(t *testing.T) {
	vv := time.NewVersionVector()
	unknown := time.NewActorID()
	assert.Equal(t, uint64(0), vv.Get(unknown))
}
