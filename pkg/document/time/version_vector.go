package time

// VersionVector is a map from actor (hex-encoded) to the largest lamport
// value known to have been generated by that actor. It is used for causal
// gating of edits/styles and as the safety threshold for garbage collection.
type VersionVector map[string]uint64

// NewVersionVector creates an empty VersionVector.
func NewVersionVector() VersionVector {
	return make(VersionVector)
}

// Get returns the lamport value recorded for the given actor, or 0 if the
// actor is unknown to this vector.
func (vv VersionVector) Get(actorID *ActorID) uint64 {
	if vv == nil {
		return 0
	}
	return vv[actorID.String()]
}

// Set records lamport as the value for actorID.
func (vv VersionVector) Set(actorID *ActorID, lamport uint64) {
	vv[actorID.String()] = lamport
}

// DeepCopy returns a copy of this vector.
func (vv VersionVector) DeepCopy() VersionVector {
	copied := make(VersionVector, len(vv))
	for k, v := range vv {
		copied[k] = v
	}
	return copied
}

// Max returns the pointwise maximum of vv and other over the union of their
// keys.
func (vv VersionVector) Max(other VersionVector) VersionVector {
	merged := vv.DeepCopy()
	for actor, lamport := range other {
		if existing, ok := merged[actor]; !ok || lamport > existing {
			merged[actor] = lamport
		}
	}
	return merged
}

// Min returns the pointwise minimum of vv and other. An actor missing from
// either side is treated as 0 and therefore drops out of the result: a
// participant we have never heard from can't yet be proven to have seen
// anything.
func (vv VersionVector) Min(other VersionVector) VersionVector {
	merged := NewVersionVector()
	for actor, lamport := range vv {
		if otherLamport, ok := other[actor]; ok {
			if otherLamport < lamport {
				lamport = otherLamport
			}
			merged[actor] = lamport
		}
	}
	return merged
}

// MaxLamport returns the largest lamport value present in this vector, or 0
// if the vector is empty.
func (vv VersionVector) MaxLamport() uint64 {
	var max uint64
	for _, lamport := range vv {
		if lamport > max {
			max = lamport
		}
	}
	return max
}
