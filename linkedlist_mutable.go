package coll

import "math/rand/v2"

// MutableLinkedList extends LinkedList with O(1) append and prepend and
// O(n) positional edits.
type MutableLinkedList struct {
	LinkedList
}

func NewMutableLinkedList(src any) (*MutableLinkedList, error) {
	values, err := valuesOf("NewMutableLinkedList", src)
	if err != nil {
		return nil, err
	}
	return &MutableLinkedList{*newLinkedList(values)}, nil
}

func MutableLinkedListOf(values ...any) *MutableLinkedList {
	return &MutableLinkedList{*newLinkedList(values)}
}

func (l *MutableLinkedList) Immutable() *LinkedList {
	return newLinkedList(l.ToArray())
}

func (l *MutableLinkedList) RangeOfValues(start, end int) (*MutableLinkedList, error) {
	values, err := l.rangeOf("RangeOfValues", start, end)
	if err != nil {
		return nil, err
	}
	return &MutableLinkedList{*newLinkedList(values)}, nil
}

func (l *MutableLinkedList) Iterator() *Iterator {
	return NewIterator(l)
}

func (l *MutableLinkedList) Append(v any)   { l.pushBack(v) }
func (l *MutableLinkedList) Prepend(v any)  { l.pushFront(v) }
func (l *MutableLinkedList) AddValue(v any) { l.pushBack(v) }

func (l *MutableLinkedList) AddValues(src any) error {
	values, err := valuesOf("AddValues", src)
	if err != nil {
		return err
	}
	for _, v := range values {
		l.pushBack(v)
	}
	return nil
}

// InsertValue inserts v before index i; i == Count() appends.
func (l *MutableLinkedList) InsertValue(i int, v any) error {
	switch {
	case i < 0 || i > l.count:
		return outOfBounds("InsertValue", i, l.count+1)
	case i == 0:
		l.pushFront(v)
	case i == l.count:
		l.pushBack(v)
	default:
		prev := l.nodeAt(i - 1)
		l.nodes[prev].next = l.alloc(v, l.nodes[prev].next)
		l.count++
	}
	return nil
}

// SetValue replaces the value at index i; i == Count() appends.
func (l *MutableLinkedList) SetValue(i int, v any) error {
	if i == l.count {
		l.pushBack(v)
		return nil
	}
	n := l.nodeAt(i)
	if n == nilNode {
		return outOfBounds("SetValue", i, l.count+1)
	}
	l.nodes[n].value = v
	return nil
}

func (l *MutableLinkedList) RemoveIndex(i int) error {
	if i < 0 || i >= l.count {
		return outOfBounds("RemoveIndex", i, l.count)
	}
	prev := nilNode
	if i > 0 {
		prev = l.nodeAt(i - 1)
	}
	n := l.head
	if prev != nilNode {
		n = l.nodes[prev].next
	}
	l.unlink(prev, n)
	return nil
}

// RemoveIndexes removes all given indexes at once. Duplicate indexes are
// allowed.
func (l *MutableLinkedList) RemoveIndexes(indexes ...int) error {
	drop, err := indexSet("RemoveIndexes", indexes, l.count)
	if err != nil {
		return err
	}
	l.removeIf(func(i int, _ any) bool { return drop[i] }, false)
	return nil
}

func (l *MutableLinkedList) RemoveRangeOfIndexes(start, end int) error {
	if err := checkRange("RemoveRangeOfIndexes", start, end, l.count); err != nil {
		return err
	}
	l.removeIf(func(i int, _ any) bool { return i >= start && i < end }, false)
	return nil
}

// RemoveValue removes every value with the same Identity Key as v.
func (l *MutableLinkedList) RemoveValue(v any) bool {
	key := IdentityKey(v)
	return l.removeIf(func(_ int, item any) bool { return IdentityKey(item) == key }, false)
}

func (l *MutableLinkedList) RemoveValues(values ...any) bool {
	keys := identityKeys(values)
	return l.removeIf(func(_ int, item any) bool {
		_, found := keys[IdentityKey(item)]
		return found
	}, false)
}

// RetainIndex keeps only the value at index i.
func (l *MutableLinkedList) RetainIndex(i int) (bool, error) {
	if i < 0 || i >= l.count {
		return false, outOfBounds("RetainIndex", i, l.count)
	}
	return l.removeIf(func(j int, _ any) bool { return j != i }, false), nil
}

func (l *MutableLinkedList) RetainIndexes(indexes ...int) (bool, error) {
	keep, err := indexSet("RetainIndexes", indexes, l.count)
	if err != nil {
		return false, err
	}
	return l.removeIf(func(i int, _ any) bool { return !keep[i] }, false), nil
}

func (l *MutableLinkedList) RetainRangeOfIndexes(start, end int) (bool, error) {
	if err := checkRange("RetainRangeOfIndexes", start, end, l.count); err != nil {
		return false, err
	}
	return l.removeIf(func(i int, _ any) bool { return i < start || i >= end }, false), nil
}

// RetainValue keeps only the values with the same Identity Key as v.
func (l *MutableLinkedList) RetainValue(v any) bool {
	key := IdentityKey(v)
	return l.removeIf(func(_ int, item any) bool { return IdentityKey(item) != key }, false)
}

func (l *MutableLinkedList) RetainValues(values ...any) bool {
	keys := identityKeys(values)
	return l.removeIf(func(_ int, item any) bool {
		_, found := keys[IdentityKey(item)]
		return !found
	}, false)
}

// DeleteNode removes the first value with the same Identity Key as v and
// reports whether one was found. Deleting from an empty list fails with
// ErrEmptyCollection.
func (l *MutableLinkedList) DeleteNode(v any) (bool, error) {
	if l.head == nilNode {
		return false, emptyCollection("DeleteNode")
	}
	key := IdentityKey(v)
	return l.removeIf(func(_ int, item any) bool { return IdentityKey(item) == key }, true), nil
}

// PopFront removes and returns the head value.
func (l *MutableLinkedList) PopFront() (any, error) {
	if l.head == nilNode {
		return nil, emptyCollection("PopFront")
	}
	v := l.nodes[l.head].value
	l.unlink(nilNode, l.head)
	return v, nil
}

// Reverse relinks the nodes in reverse order without moving values.
func (l *MutableLinkedList) Reverse() {
	prev := nilNode
	n := l.head
	l.tail = n
	for n != nilNode {
		next := l.nodes[n].next
		l.nodes[n].next = prev
		prev, n = n, next
	}
	l.head = prev
}

// Shuffle applies a uniformly random permutation to the values. The links
// stay as they are.
func (l *MutableLinkedList) Shuffle() {
	values := l.ToArray()
	rand.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	i := 0
	for n := l.head; n != nilNode; n = l.nodes[n].next {
		l.nodes[n].value = values[i]
		i++
	}
}

func (l *MutableLinkedList) Clear() bool {
	if l.count == 0 {
		return false
	}
	clear(l.nodes)
	l.nodes = l.nodes[:0]
	l.head, l.tail, l.free, l.count = nilNode, nilNode, nilNode, 0
	return true
}

func (l *MutableLinkedList) Put(key any, v any) error {
	i, err := indexKey("Put", key)
	if err != nil {
		return err
	}
	return l.SetValue(i, v)
}

func (l *MutableLinkedList) Delete(key any) error {
	i, err := indexKey("Delete", key)
	if err != nil {
		return err
	}
	return l.RemoveIndex(i)
}

// removeIf unlinks the nodes for which match returns true. match gets the
// position each value had before the call.
func (l *MutableLinkedList) removeIf(match func(i int, v any) bool, firstOnly bool) bool {
	removed := false
	prev := nilNode
	i := 0
	for n := l.head; n != nilNode; i++ {
		next := l.nodes[n].next
		if match(i, l.nodes[n].value) {
			l.unlink(prev, n)
			removed = true
			if firstOnly {
				break
			}
		} else {
			prev = n
		}
		n = next
	}
	return removed
}
