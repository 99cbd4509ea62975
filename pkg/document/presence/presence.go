// Package presence exposes the mutator-facing handle an Update callback
// uses to change its own actor's ephemeral presence, mirroring the way the
// json package exposes the document tree.
package presence

import (
	"github.com/hackerwins/riftdoc/pkg/document/change"
	"github.com/hackerwins/riftdoc/pkg/document/innerpresence"
)

// Presence is the mutator-facing handle for one actor's presence within a
// single Update call.
type Presence struct {
	ctx   *change.Context
	value innerpresence.Presence
}

// New creates a new instance of Presence bound to ctx, wrapping the actor's
// current presence value.
func New(ctx *change.Context, value innerpresence.Presence) *Presence {
	return &Presence{ctx: ctx, value: value}
}

// Get returns the current value of key.
func (p *Presence) Get(key string) (string, bool) {
	v, ok := p.value[key]
	return v, ok
}

// Set stores value under key and records a presence change on the context.
func (p *Presence) Set(key, value string) {
	p.value[key] = value
	p.ctx.SetPresenceChange(&change.PresenceChange{
		Type:     change.PresencePut,
		Presence: p.value.DeepCopy(),
	})
}

// Clear removes this actor's presence entirely, used when detaching.
func (p *Presence) Clear() {
	p.value = innerpresence.NewPresence()
	p.ctx.SetPresenceChange(&change.PresenceChange{Type: change.PresenceClear})
}
