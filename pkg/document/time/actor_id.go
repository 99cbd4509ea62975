// Package time provides the logical clock primitives used across the CRDT
// core: ActorID, TimeTicket and VersionVector.
package time

import (
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

// ActorIDSize is the size of an actor ID in bytes.
const ActorIDSize = 16

// ErrInvalidActorID is returned when an actor ID string cannot be decoded.
var ErrInvalidActorID = errors.New("time: invalid actor id")

// InitialActorID is used while a document is detached and has no assigned
// actor. It sorts before every real actor.
var InitialActorID = &ActorID{}

// ActorID represents an ID of an actor that can mutate the document.
type ActorID struct {
	bytes [ActorIDSize]byte
}

// NewActorID creates a new actor ID backed by a random UUID.
func NewActorID() *ActorID {
	u := uuid.New()
	id := &ActorID{}
	copy(id.bytes[:], u[:])
	return id
}

// ActorIDFromHex decodes an actor ID from its hex representation.
func ActorIDFromHex(s string) (*ActorID, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != ActorIDSize {
		return nil, ErrInvalidActorID
	}
	id := &ActorID{}
	copy(id.bytes[:], b)
	return id, nil
}

// String returns the hex encoding of this actor ID.
func (id *ActorID) String() string {
	return hex.EncodeToString(id.bytes[:])
}

// Compare returns -1, 0 or 1 depending on whether id sorts before, equal to
// or after other.
func (id *ActorID) Compare(other *ActorID) int {
	if id == other {
		return 0
	}
	for i := 0; i < ActorIDSize; i++ {
		if id.bytes[i] < other.bytes[i] {
			return -1
		}
		if id.bytes[i] > other.bytes[i] {
			return 1
		}
	}
	return 0
}

// Equal reports whether id and other refer to the same actor.
func (id *ActorID) Equal(other *ActorID) bool {
	return id.Compare(other) == 0
}
