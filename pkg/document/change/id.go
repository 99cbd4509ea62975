// Package change implements the local mutation pipeline: ChangeID issuance,
// ChangeContext ticket/delimiter bookkeeping, Change execution and
// ChangePack, the wire-facing batch of changes exchanged with a server.
package change

import (
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// InitialID is the ID of a document that has never been edited.
var InitialID = NewID(0, 0, 0, time.InitialActorID, nil)

// ID identifies a Change. It is immutable; every mutator returns a new ID
// rather than mutating in place.
type ID struct {
	clientSeq uint32
	serverSeq uint64
	lamport   uint64
	actorID   *time.ActorID
	vector    time.VersionVector
}

// NewID creates a new instance of ID.
func NewID(
	clientSeq uint32,
	serverSeq uint64,
	lamport uint64,
	actorID *time.ActorID,
	vector time.VersionVector,
) *ID {
	if vector == nil {
		vector = time.NewVersionVector()
	}
	return &ID{
		clientSeq: clientSeq,
		serverSeq: serverSeq,
		lamport:   lamport,
		actorID:   actorID,
		vector:    vector,
	}
}

// Next returns the successor of this ID. When excludeClocks is true (a
// presence-only change), the lamport and version vector are left untouched;
// otherwise both advance: lamport by one, and the actor's own entry in the
// version vector is raised to the new lamport.
func (id *ID) Next(excludeClocks bool) *ID {
	if excludeClocks {
		return NewID(id.clientSeq+1, id.serverSeq, id.lamport, id.actorID, id.vector.DeepCopy())
	}

	lamport := id.lamport + 1
	vector := id.vector.DeepCopy()
	vector.Set(id.actorID, lamport)

	return NewID(id.clientSeq+1, id.serverSeq, lamport, id.actorID, vector)
}

// SyncClocks advances this ID's lamport past other's (monotone: strictly
// greater than any observed remote lamport from the same change), merges
// the version vectors pointwise-max, and records this actor's own entry as
// the new lamport. It is the only clock-advancement rule on remote receive.
func (id *ID) SyncClocks(other *ID) *ID {
	lamport := other.lamport + 1
	if id.lamport >= other.lamport {
		lamport = id.lamport + 1
	}

	vector := id.vector.Max(other.vector)
	vector.Set(id.actorID, lamport)

	return NewID(id.clientSeq, id.serverSeq, lamport, id.actorID, vector)
}

// SetActor returns a copy of this ID with actorID substituted, used once a
// detached document attaches and is assigned a real actor.
func (id *ID) SetActor(actorID *time.ActorID) *ID {
	vector := id.vector.DeepCopy()
	if lamport, ok := vector[id.actorID.String()]; ok {
		delete(vector, id.actorID.String())
		vector.Set(actorID, lamport)
	}
	return NewID(id.clientSeq, id.serverSeq, id.lamport, actorID, vector)
}

// SetServerSeq returns a copy of this ID with serverSeq substituted.
func (id *ID) SetServerSeq(serverSeq uint64) *ID {
	return NewID(id.clientSeq, serverSeq, id.lamport, id.actorID, id.vector)
}

// SetVersionVector returns a copy of this ID with a new version vector.
func (id *ID) SetVersionVector(vector time.VersionVector) *ID {
	return NewID(id.clientSeq, id.serverSeq, id.lamport, id.actorID, vector)
}

// CreateTimeTicket builds a TimeTicket for an operation issued under this
// ID, parameterized by a per-change delimiter.
func (id *ID) CreateTimeTicket(delimiter uint32) *time.Ticket {
	return time.NewTicket(id.lamport, delimiter, id.actorID)
}

// ClientSeq returns the client sequence of this ID.
func (id *ID) ClientSeq() uint32 {
	return id.clientSeq
}

// ServerSeq returns the server sequence of this ID.
func (id *ID) ServerSeq() uint64 {
	return id.serverSeq
}

// Lamport returns the lamport clock of this ID.
func (id *ID) Lamport() uint64 {
	return id.lamport
}

// ActorID returns the actor of this ID.
func (id *ID) ActorID() *time.ActorID {
	return id.actorID
}

// VersionVector returns the version vector of this ID.
func (id *ID) VersionVector() time.VersionVector {
	return id.vector
}
