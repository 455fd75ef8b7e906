package immutables

// collisionNode is a leaf bucket for elements that share a full 32-bit
// hash. array always holds at least two elements in a valid tree; a
// removal that would leave one survivor promotes it to a singleton
// bitmap leaf instead (see without).
type collisionNode[T Hasher[T]] struct {
	hash  uint32
	array []T
	mutid uint64
}

func newCollisionNode[T Hasher[T]](hash uint32, elems []T, mutid uint64) *collisionNode[T] {
	return &collisionNode[T]{hash: hash, array: elems, mutid: mutid}
}

func (n *collisionNode[T]) writable(mutid uint64) *collisionNode[T] {
	if ownsGeneration(mutid, n.mutid) {
		return n
	}
	return &collisionNode[T]{hash: n.hash, array: cloneSlice(n.array), mutid: mutid}
}

func (n *collisionNode[T]) indexOf(key T) int {
	for i, e := range n.array {
		if e.Equal(key) {
			return i
		}
	}
	return -1
}

func (n *collisionNode[T]) add(shift uint, hash uint32, key T, mutid uint64) (node[T], bool) {
	if hash != n.hash {
		wrapper := &bitmapNode[T]{
			bitmap: bitPos(slotIndex(n.hash, shift)),
			array:  []any{node[T](n)},
			mutid:  mutid,
		}
		return wrapper.add(shift, hash, key, mutid)
	}

	if n.indexOf(key) != -1 {
		return n, false
	}

	if ownsGeneration(mutid, n.mutid) {
		n.array = append(n.array, key)
		return n, true
	}
	return &collisionNode[T]{hash: n.hash, array: inserted(n.array, len(n.array), key), mutid: mutid}, true
}

func (n *collisionNode[T]) find(shift uint, hash uint32, key T) bool {
	if hash != n.hash {
		return false
	}
	return n.indexOf(key) != -1
}

func (n *collisionNode[T]) without(shift uint, hash uint32, key T, mutid uint64) (withoutResult, node[T]) {
	if hash != n.hash {
		return withoutNotFound, nil
	}
	idx := n.indexOf(key)
	if idx == -1 {
		return withoutNotFound, nil
	}

	if len(n.array) == 1 {
		// Unreachable in a valid tree: collision nodes never drop below
		// size 2 (see the struct comment).
		return withoutEmpty, nil
	}

	if len(n.array) == 2 {
		survivorIdx := 1 - idx
		survivor := n.array[survivorIdx]
		promoted := &bitmapNode[T]{
			bitmap: bitPos(slotIndex(hash, shift)),
			array:  []any{survivor},
			mutid:  mutid,
		}
		return withoutNewNode, promoted
	}

	if ownsGeneration(mutid, n.mutid) {
		n.array = removed(n.array, idx)
		return withoutNewNode, n
	}
	return withoutNewNode, &collisionNode[T]{hash: n.hash, array: removed(n.array, idx), mutid: mutid}
}

func (n *collisionNode[T]) each(yield func(T) bool) bool {
	for _, e := range n.array {
		if !yield(e) {
			return false
		}
	}
	return true
}
