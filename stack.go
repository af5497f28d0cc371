package coll

// Stack is a LIFO view over a MutableList. The top of the stack is the last
// element of the list.
type Stack struct {
	list MutableList
}

func NewStack(values ...any) *Stack {
	return &Stack{list: *MutableListOf(values...)}
}

func (s *Stack) Count() int    { return s.list.Count() }
func (s *Stack) IsEmpty() bool { return s.list.IsEmpty() }
func (s *Stack) Push(v any)    { s.list.AddValue(v) }

func (s *Stack) Peek() (any, error) {
	if s.list.IsEmpty() {
		return nil, emptyCollection("Peek")
	}
	return s.list.items[len(s.list.items)-1], nil
}

func (s *Stack) Pop() (any, error) {
	n := len(s.list.items)
	if n == 0 {
		return nil, emptyCollection("Pop")
	}
	v := s.list.items[n-1]
	s.list.items[n-1] = nil
	s.list.items = s.list.items[:n-1]
	return v, nil
}

// ToList returns the stack contents bottom to top.
func (s *Stack) ToList() *List { return s.list.ToList() }

// Queue is a FIFO view over a MutableLinkedList.
type Queue struct {
	list MutableLinkedList
}

func NewQueue(values ...any) *Queue {
	return &Queue{list: *MutableLinkedListOf(values...)}
}

func (q *Queue) Count() int    { return q.list.Count() }
func (q *Queue) IsEmpty() bool { return q.list.IsEmpty() }
func (q *Queue) Enqueue(v any) { q.list.Append(v) }
func (q *Queue) ToList() *List { return q.list.ToList() }

func (q *Queue) Peek() (any, error) {
	if q.list.IsEmpty() {
		return nil, emptyCollection("Peek")
	}
	return q.list.First()
}

func (q *Queue) Dequeue() (any, error) {
	if q.list.IsEmpty() {
		return nil, emptyCollection("Dequeue")
	}
	return q.list.PopFront()
}

// Deque is a double-ended queue over a MutableList.
type Deque struct {
	list MutableList
}

func NewDeque(values ...any) *Deque {
	return &Deque{list: *MutableListOf(values...)}
}

func (d *Deque) Count() int     { return d.list.Count() }
func (d *Deque) IsEmpty() bool  { return d.list.IsEmpty() }
func (d *Deque) PushBack(v any) { d.list.AddValue(v) }
func (d *Deque) ToList() *List  { return d.list.ToList() }

func (d *Deque) PushFront(v any) {
	ensure(d.list.InsertValue(0, v))
}

func (d *Deque) PeekFront() (any, error) {
	if d.list.IsEmpty() {
		return nil, emptyCollection("PeekFront")
	}
	return d.list.items[0], nil
}

func (d *Deque) PeekBack() (any, error) {
	if d.list.IsEmpty() {
		return nil, emptyCollection("PeekBack")
	}
	return d.list.items[len(d.list.items)-1], nil
}

func (d *Deque) PopFront() (any, error) {
	if d.list.IsEmpty() {
		return nil, emptyCollection("PopFront")
	}
	v := d.list.items[0]
	ensure(d.list.RemoveIndex(0))
	return v, nil
}

func (d *Deque) PopBack() (any, error) {
	n := len(d.list.items)
	if n == 0 {
		return nil, emptyCollection("PopBack")
	}
	v := d.list.items[n-1]
	ensure(d.list.RemoveIndex(n - 1))
	return v, nil
}
