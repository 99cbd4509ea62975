package time

import "fmt"

// InitialDelimiter is the delimiter used for the very first ticket issued by
// a ChangeContext.
const InitialDelimiter = 0

// MaxLamport is the largest representable lamport value. Local edits
// substitute it for "the editor has seen everything".
const MaxLamport = ^uint64(0)

// InitialTicket is the smallest possible TimeTicket. It never collides with
// a real edit and is used as the document's initial node identity.
var InitialTicket = NewTicket(0, InitialDelimiter, InitialActorID)

// MaxTicket is a sentinel that sorts after every real ticket.
var MaxTicket = NewTicket(MaxLamport, ^uint32(0), &ActorID{
	bytes: [ActorIDSize]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	},
})

// Ticket is a total-order timestamp: (lamport, delimiter, actor). It is
// immutable once created.
type Ticket struct {
	lamport   uint64
	delimiter uint32
	actorID   *ActorID
}

// NewTicket creates a new instance of Ticket.
func NewTicket(lamport uint64, delimiter uint32, actorID *ActorID) *Ticket {
	return &Ticket{
		lamport:   lamport,
		delimiter: delimiter,
		actorID:   actorID,
	}
}

// Lamport returns the lamport value of this ticket.
func (t *Ticket) Lamport() uint64 {
	return t.lamport
}

// Delimiter returns the delimiter of this ticket.
func (t *Ticket) Delimiter() uint32 {
	return t.delimiter
}

// ActorID returns the actor of this ticket.
func (t *Ticket) ActorID() *ActorID {
	return t.actorID
}

// ActorIDHex returns the hex encoded actor of this ticket, treating a nil
// actor as the initial (unassigned) one.
func (t *Ticket) ActorIDHex() string {
	if t.actorID == nil {
		return InitialActorID.String()
	}
	return t.actorID.String()
}

// Key returns a string uniquely identifying this ticket, suitable for use as
// a map key.
func (t *Ticket) Key() string {
	return fmt.Sprintf("%020d:%010d:%s", t.lamport, t.delimiter, t.ActorIDHex())
}

// Compare returns -1, 0 or 1 depending on whether t sorts before, equal to
// or after other, ordering first by lamport, then actor, then delimiter.
func (t *Ticket) Compare(other *Ticket) int {
	if t == other {
		return 0
	}
	if t.lamport < other.lamport {
		return -1
	}
	if t.lamport > other.lamport {
		return 1
	}

	compare := t.actorID.Compare(other.actorID)
	if compare != 0 {
		return compare
	}

	if t.delimiter < other.delimiter {
		return -1
	}
	if t.delimiter > other.delimiter {
		return 1
	}
	return 0
}

// After reports whether t sorts strictly after other.
func (t *Ticket) After(other *Ticket) bool {
	return t.Compare(other) > 0
}

// Equal reports whether t and other are the same ticket.
func (t *Ticket) Equal(other *Ticket) bool {
	return t.Compare(other) == 0
}

// AnnotatedString returns a debug string for this ticket.
func (t *Ticket) AnnotatedString() string {
	return fmt.Sprintf("%d:%d:%s", t.lamport, t.delimiter, t.ActorIDHex())
}
