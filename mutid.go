package immutables

import "sync/atomic"

// mutCounter is the process-wide generation source for transient edits.
// Its zero value leaves the first Add result at 1, so that 0 stays free to
// mean "frozen" everywhere a mutid field is read.
var mutCounter atomic.Uint64

// nextMutID draws a fresh, process-unique, non-zero generation tag. Two
// mutations derived independently never observe the same tag, which is the
// entire ownership discipline a node needs to decide whether it may be
// mutated in place (see ownsGeneration).
func nextMutID() uint64 {
	return mutCounter.Add(1)
}
