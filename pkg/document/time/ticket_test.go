package time_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackerwins/riftdoc/pkg/document/time"
)

func TestTicketCompare(t *testing.T) {
	a1 := time.NewActorID()
	a2 := time.NewActorID()
	for a2.Compare(a1) < 0 {
		a2 = time.NewActorID()
	}

	lower := time.NewTicket(1, 0, a1)
	higher := time.NewTicket(2, 0, a1)
	assert.True(t, higher.After(lower))
	assert.False(t, lower.After(higher))
	assert.True(t, lower.Equal(time.NewTicket(1, 0, a1)))

	sameLamportDiffActor := time.NewTicket(1, 0, a2)
	assert.True(t, sameLamportDiffActor.After(lower))

	sameLamportSameActorHigherDelim := time.NewTicket(1, 1, a1)
	assert.True(t, sameLamportSameActorHigherDelim.After(lower))
}

func TestTicketKeyUniqueness(t *testing.T) {
	a := time.NewActorID()
	k1 := time.NewTicket(1, 0, a).Key()
	k2 := time.NewTicket(1, 1, a).Key()
	assert.NotEqual(t, k1, k2)
}

func TestActorIDHexRoundTrip(t *testing.T) {
	a := time.NewActorID()
	decoded, err := time.ActorIDFromHex(a.String())
	assert.NoError(t, err)
	assert.True(t, a.Equal(decoded))

	_, err = time.ActorIDFromHex("not-hex")
	assert.ErrorIs(t, err, time.ErrInvalidActorID)
}
