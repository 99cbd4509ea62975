package operations

import (
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/time"
)

// Style applies attributes to the index range [from, to) of a Text, without
// touching its content.
type Style struct {
	parentCreatedAt *time.Ticket
	from            int
	to              int
	attributes      map[string]string
	executedAt      *time.Ticket
}

// NewStyle creates a new instance of Style.
func NewStyle(parentCreatedAt *time.Ticket, from, to int, attributes map[string]string, executedAt *time.Ticket) *Style {
	return &Style{parentCreatedAt: parentCreatedAt, from: from, to: to, attributes: attributes, executedAt: executedAt}
}

// ParentCreatedAt returns the ticket of the text this operation addresses.
func (o *Style) ParentCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// ExecutedAt returns this operation's own ticket.
func (o *Style) ExecutedAt() *time.Ticket {
	return o.executedAt
}

// EffectedCreatedAt returns the text's own creation ticket: styling never
// creates a new top-level element.
func (o *Style) EffectedCreatedAt() *time.Ticket {
	return o.parentCreatedAt
}

// Rebind returns a copy of this Style with executedAt in place of its own ticket.
func (o *Style) Rebind(executedAt *time.Ticket) Operation {
	return NewStyle(o.parentCreatedAt, o.from, o.to, o.attributes, executedAt)
}

// Execute applies attributes to [from, to) of the addressed text.
func (o *Style) Execute(root *crdt.Root, source Source, vector time.VersionVector) (*ExecutionResult, error) {
	text, err := findParentText(root, o.parentCreatedAt)
	if err != nil {
		return nil, err
	}

	from, to := text.CreateRange(o.from, o.to)
	gcPairs, _, err := text.Style(from, to, o.attributes, vector, o.executedAt)
	if err != nil {
		return nil, err
	}
	registerGCPairs(root, gcPairs)

	// Style is not generally invertible without recording each node's prior
	// attribute values; style changes are not undoable.
	return &ExecutionResult{
		OpInfos: []OpInfo{{Path: "", Type: "style"}},
	}, nil
}
