package json

import (
	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/crdt"
	"github.com/hackerwins/riftdoc/pkg/document/operations"
)

// Text is the mutator-facing proxy over a crdt.Text.
type Text struct {
	ctx  *change.Context
	text *crdt.Text
}

// NewText creates a new instance of Text, proxying target.
func NewText(ctx *change.Context, target *crdt.Text) *Text {
	return &Text{ctx: ctx, text: target}
}

// Len returns the current visible length of this text.
func (t *Text) Len() int {
	return t.text.Len()
}

// String returns the plain-text content of this text.
func (t *Text) String() string {
	return t.text.String()
}

// Marshal returns the JSON encoding of this text.
func (t *Text) Marshal() string {
	return t.text.Marshal()
}

// Edit replaces [from, to) with content, optionally tagging the inserted
// run with attributes.
func (t *Text) Edit(from, to int, content string, attributes map[string]string) *Text {
	ticket := t.ctx.IssueTimeTicket()
	_ = t.ctx.Push(operations.NewEdit(t.text.CreatedAt(), from, to, content, attributes, ticket))
	return t
}

// Style applies attributes to [from, to) without touching content.
func (t *Text) Style(from, to int, attributes map[string]string) *Text {
	ticket := t.ctx.IssueTimeTicket()
	_ = t.ctx.Push(operations.NewStyle(t.text.CreatedAt(), from, to, attributes, ticket))
	return t
}
