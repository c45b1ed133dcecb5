package cnf

import "sync/atomic"

// wedgeIDCounter hands out distinct provenance ids for wedge clauses
// manufactured internally (e.g. by Negate when every input clause was
// dropped). The source this engine is modeled on used a random integer for
// this purpose; a monotonic counter serves the same goal, distinguishing
// otherwise-identical wedges, deterministically.
var wedgeIDCounter int64

// nextWedgeID returns a fresh, process-unique conditional id.
func nextWedgeID() int {
	return int(atomic.AddInt64(&wedgeIDCounter, 1))
}
