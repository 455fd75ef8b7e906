package immutables

// bitmapNode is a compact array of up to 32 slots indexed by a 32-bit
// occupancy bitmap. Each occupied slot holds either an element T or a
// child node[T]. mutid is the generation tag of the edit that created or
// last wrote this node; only an edit presenting that same non-zero tag may
// mutate it in place, and zero means no edit ever may (see ownsGeneration).
type bitmapNode[T Hasher[T]] struct {
	bitmap uint32
	array  []any
	mutid  uint64
}

// newEmptyBitmapNode returns a fresh, empty bitmap node tagged with mutid.
// A Set's empty root and a Mutation's total-removal fallback both start
// from this.
func newEmptyBitmapNode[T Hasher[T]](mutid uint64) *bitmapNode[T] {
	return &bitmapNode[T]{mutid: mutid}
}

// writable returns a node that the caller may mutate under mutid: self if
// it is already owned by mutid, otherwise a tagged clone.
func (n *bitmapNode[T]) writable(mutid uint64) *bitmapNode[T] {
	if ownsGeneration(mutid, n.mutid) {
		return n
	}
	return &bitmapNode[T]{bitmap: n.bitmap, array: cloneSlice(n.array), mutid: mutid}
}

func (n *bitmapNode[T]) add(shift uint, hash uint32, key T, mutid uint64) (node[T], bool) {
	bit := bitPos(slotIndex(hash, shift))
	idx := compactIndex(n.bitmap, bit)

	if n.bitmap&bit == 0 {
		if ownsGeneration(mutid, n.mutid) {
			n.array = inserted(n.array, idx, any(key))
			n.bitmap |= bit
			return n, true
		}
		return &bitmapNode[T]{
			bitmap: n.bitmap | bit,
			array:  inserted(n.array, idx, any(key)),
			mutid:  mutid,
		}, true
	}

	slot := n.array[idx]

	if child, isChild := asNode[T](slot); isChild {
		subNode, added := child.add(shift+shiftStep, hash, key, mutid)
		if subNode == child {
			return n, added
		}
		ret := n.writable(mutid)
		ret.array[idx] = subNode
		return ret, added
	}

	existing := slot.(T)
	if existing.Equal(key) {
		return n, false
	}

	var subNode node[T]
	existingHash := foldHash(existing.Hash())
	if existingHash == hash {
		subNode = newCollisionNode[T](hash, []T{existing, key}, mutid)
	} else {
		var sub node[T] = newEmptyBitmapNode[T](mutid)
		sub, _ = sub.add(shift+shiftStep, existingHash, existing, mutid)
		sub, _ = sub.add(shift+shiftStep, hash, key, mutid)
		subNode = sub
	}

	ret := n.writable(mutid)
	ret.array[idx] = subNode
	return ret, true
}

func (n *bitmapNode[T]) find(shift uint, hash uint32, key T) bool {
	bit := bitPos(slotIndex(hash, shift))
	if n.bitmap&bit == 0 {
		return false
	}
	idx := compactIndex(n.bitmap, bit)
	slot := n.array[idx]
	if child, isChild := asNode[T](slot); isChild {
		return child.find(shift+shiftStep, hash, key)
	}
	return slot.(T).Equal(key)
}

func (n *bitmapNode[T]) without(shift uint, hash uint32, key T, mutid uint64) (withoutResult, node[T]) {
	bit := bitPos(slotIndex(hash, shift))
	if n.bitmap&bit == 0 {
		return withoutNotFound, nil
	}
	idx := compactIndex(n.bitmap, bit)
	slot := n.array[idx]

	if child, isChild := asNode[T](slot); isChild {
		res, subNode := child.without(shift+shiftStep, hash, key, mutid)
		switch res {
		case withoutNotFound:
			return withoutNotFound, nil
		case withoutEmpty:
			panic("immutables: non-root without reported empty; this is a structural invariant violation")
		default: // withoutNewNode
			if bn, isBitmap := subNode.(*bitmapNode[T]); isBitmap && len(bn.array) == 1 {
				if _, stillNode := asNode[T](bn.array[0]); !stillNode {
					ret := n.writable(mutid)
					ret.array[idx] = bn.array[0]
					return withoutNewNode, ret
				}
			}
			ret := n.writable(mutid)
			ret.array[idx] = subNode
			return withoutNewNode, ret
		}
	}

	existing := slot.(T)
	if !existing.Equal(key) {
		return withoutNotFound, nil
	}

	if len(n.array) == 1 {
		return withoutEmpty, nil
	}

	if ownsGeneration(mutid, n.mutid) {
		n.array = removed(n.array, idx)
		n.bitmap &^= bit
		return withoutNewNode, n
	}
	return withoutNewNode, &bitmapNode[T]{
		bitmap: n.bitmap &^ bit,
		array:  removed(n.array, idx),
		mutid:  mutid,
	}
}

func (n *bitmapNode[T]) each(yield func(T) bool) bool {
	for _, slot := range n.array {
		if child, isChild := asNode[T](slot); isChild {
			if !child.each(yield) {
				return false
			}
			continue
		}
		if !yield(slot.(T)) {
			return false
		}
	}
	return true
}
