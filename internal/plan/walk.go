package plan

// BufferTotals holds shared-buffer access counters summed over an entire plan
// tree. A hit is a page served from the buffer cache; a read had to come from
// disk.
type BufferTotals struct {
	SharedHit  int64
	SharedRead int64
}

// Buffers sums the Shared Hit Blocks and Shared Read Blocks counters of the
// node and every descendant. Nodes missing a counter contribute zero to it.
// The tree is not modified.
func Buffers(root *Node) BufferTotals {
	var totals BufferTotals
	accumulate(root, &totals)
	return totals
}

func accumulate(node *Node, totals *BufferTotals) {
	if node.SharedHitBlocks != nil {
		totals.SharedHit += *node.SharedHitBlocks
	}
	if node.SharedReadBlocks != nil {
		totals.SharedRead += *node.SharedReadBlocks
	}
	for i := range node.Plans {
		accumulate(&node.Plans[i], totals)
	}
}

// HitRatio returns the cache-hit percentage for the accumulated counters,
// in [0, 100]. Zero accesses yields 0 rather than a division fault.
func (t BufferTotals) HitRatio() float64 {
	denom := t.SharedHit + t.SharedRead
	if denom < 1 {
		denom = 1
	}
	return 100 * float64(t.SharedHit) / float64(denom)
}
