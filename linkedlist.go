package coll

import (
	"iter"
	"strconv"
)

const nilNode = -1

type node struct {
	value any
	next  int
}

// LinkedList is an immutable singly-linked sequence. Nodes live in a flat
// arena and link to each other by index, so the list never holds pointers
// between nodes and has no back-links.
//
// Indexed access walks from the head and costs O(n); prefer List when random
// access dominates.
type LinkedList struct {
	nodes []node
	head  int
	tail  int
	free  int
	count int
}

func NewLinkedList(src any) (*LinkedList, error) {
	values, err := valuesOf("NewLinkedList", src)
	if err != nil {
		return nil, err
	}
	return newLinkedList(values), nil
}

func LinkedListOf(values ...any) *LinkedList {
	return newLinkedList(values)
}

func newLinkedList(values []any) *LinkedList {
	l := &LinkedList{head: nilNode, tail: nilNode, free: nilNode}
	if len(values) > 0 {
		l.nodes = make([]node, 0, roundUpToPowerOf2(len(values)))
	}
	for _, v := range values {
		l.pushBack(v)
	}
	return l
}

func (l *LinkedList) Count() int    { return l.count }
func (l *LinkedList) IsEmpty() bool { return l.count == 0 }
func (l *LinkedList) String() string {
	return Dump(l)
}

func (l *LinkedList) Value(i int) (any, error) {
	n := l.nodeAt(i)
	if n == nilNode {
		return nil, outOfBounds("Value", i, l.count)
	}
	return l.nodes[n].value, nil
}

func (l *LinkedList) First() (any, error) {
	if l.head == nilNode {
		return nil, emptyCollection("First")
	}
	return l.nodes[l.head].value, nil
}

func (l *LinkedList) Last() (any, error) {
	if l.tail == nilNode {
		return nil, emptyCollection("Last")
	}
	return l.nodes[l.tail].value, nil
}

// Find returns the position of the first value with the same Identity Key as
// v, or -1 if there is none. Searching an empty list fails with
// ErrEmptyCollection.
func (l *LinkedList) Find(v any) (int, error) {
	if l.head == nilNode {
		return -1, emptyCollection("Find")
	}
	return l.IndexOf(v), nil
}

func (l *LinkedList) IndexOf(v any) int {
	key := IdentityKey(v)
	i := 0
	for n := l.head; n != nilNode; n = l.nodes[n].next {
		if IdentityKey(l.nodes[n].value) == key {
			return i
		}
		i++
	}
	return -1
}

func (l *LinkedList) LastIndexOf(v any) int {
	key := IdentityKey(v)
	found := -1
	i := 0
	for n := l.head; n != nilNode; n = l.nodes[n].next {
		if IdentityKey(l.nodes[n].value) == key {
			found = i
		}
		i++
	}
	return found
}

func (l *LinkedList) HasValue(v any) bool {
	return l.IndexOf(v) >= 0
}

// RangeOfValues returns a new LinkedList over [start,end).
func (l *LinkedList) RangeOfValues(start, end int) (*LinkedList, error) {
	values, err := l.rangeOf("RangeOfValues", start, end)
	if err != nil {
		return nil, err
	}
	return newLinkedList(values), nil
}

func (l *LinkedList) rangeOf(op string, start, end int) ([]any, error) {
	if err := checkRange(op, start, end, l.count); err != nil {
		return nil, err
	}
	values := make([]any, 0, end-start)
	for i, v := range l.All() {
		if i >= end {
			break
		}
		if i >= start {
			values = append(values, v)
		}
	}
	return values, nil
}

func (l *LinkedList) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for n := l.head; n != nilNode; n = l.nodes[n].next {
			if !yield(l.nodes[n].value) {
				return
			}
		}
	}
}

func (l *LinkedList) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		i := 0
		for n := l.head; n != nilNode; n = l.nodes[n].next {
			if !yield(i, l.nodes[n].value) {
				return
			}
			i++
		}
	}
}

func (l *LinkedList) Iterator() *Iterator {
	return NewIterator(l)
}

func (l *LinkedList) ToArray() []any {
	out := make([]any, 0, l.count)
	for v := range l.Values() {
		out = append(out, v)
	}
	return out
}

func (l *LinkedList) ToDictionary() map[string]any {
	d := make(map[string]any, l.count)
	for i, v := range l.All() {
		d[strconv.Itoa(i)] = v
	}
	return d
}

func (l *LinkedList) ToList() *List {
	return &List{items: l.ToArray()}
}

func (l *LinkedList) ToMap() *Map {
	m := newMapCap(l.count)
	for i, v := range l.All() {
		m.put(IntKey(i), v)
	}
	return m
}

func (l *LinkedList) Get(key any) (any, error) {
	i, err := indexKey("Get", key)
	if err != nil {
		return nil, err
	}
	return l.Value(i)
}

func (l *LinkedList) Has(key any) bool {
	i, err := indexKey("Has", key)
	return err == nil && i >= 0 && i < l.count
}

func (l *LinkedList) Put(key any, v any) error {
	return unsupported("Put", "LinkedList")
}

func (l *LinkedList) Delete(key any) error {
	return unsupported("Delete", "LinkedList")
}

// nodeAt returns the arena index of the i-th node, or nilNode.
func (l *LinkedList) nodeAt(i int) int {
	if i < 0 || i >= l.count {
		return nilNode
	}
	if i == l.count-1 {
		return l.tail
	}
	n := l.head
	for ; i > 0; i-- {
		n = l.nodes[n].next
	}
	return n
}

func (l *LinkedList) alloc(v any, next int) int {
	if l.free != nilNode {
		n := l.free
		l.free = l.nodes[n].next
		l.nodes[n] = node{v, next}
		return n
	}
	l.nodes = append(l.nodes, node{v, next})
	return len(l.nodes) - 1
}

func (l *LinkedList) release(n int) {
	l.nodes[n] = node{nil, l.free}
	l.free = n
}

func (l *LinkedList) pushBack(v any) {
	n := l.alloc(v, nilNode)
	if l.tail == nilNode {
		l.head = n
	} else {
		l.nodes[l.tail].next = n
	}
	l.tail = n
	l.count++
}

func (l *LinkedList) pushFront(v any) {
	n := l.alloc(v, l.head)
	l.head = n
	if l.tail == nilNode {
		l.tail = n
	}
	l.count++
}

// unlink removes node n whose predecessor is prev (nilNode for the head).
func (l *LinkedList) unlink(prev, n int) {
	next := l.nodes[n].next
	if prev == nilNode {
		l.head = next
	} else {
		l.nodes[prev].next = next
	}
	if l.tail == n {
		l.tail = prev
	}
	l.release(n)
	l.count--
}
