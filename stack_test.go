package coll

import "testing"

func TestStack(t *testing.T) {
	s := NewStack(1, 2)
	s.Push(3)
	eq(t, s.Count(), 3)
	v, err := s.Peek()
	ok(t, err)
	eq(t, v, any(3))

	for _, e := range []any{3, 2, 1} {
		v, err := s.Pop()
		ok(t, err)
		eq(t, v, e)
	}
	eq(t, s.IsEmpty(), true)
	_, err = s.Pop()
	isErr(t, err, ErrEmptyCollection)
	_, err = s.Peek()
	isErr(t, err, ErrEmptyCollection)

	s.Push("x")
	deepEqual(t, s.ToList().ToArray(), []any{"x"})
}

func TestQueue(t *testing.T) {
	q := NewQueue("a")
	q.Enqueue("b")
	q.Enqueue("c")
	v, err := q.Peek()
	ok(t, err)
	eq(t, v, any("a"))
	deepEqual(t, q.ToList().ToArray(), []any{"a", "b", "c"})

	for _, e := range []any{"a", "b", "c"} {
		v, err := q.Dequeue()
		ok(t, err)
		eq(t, v, e)
	}
	eq(t, q.Count(), 0)
	_, err = q.Dequeue()
	isErr(t, err, ErrEmptyCollection)
	_, err = q.Peek()
	isErr(t, err, ErrEmptyCollection)
}

func TestDeque(t *testing.T) {
	d := NewDeque(2)
	d.PushFront(1)
	d.PushBack(3)
	deepEqual(t, d.ToList().ToArray(), []any{1, 2, 3})

	front, err := d.PeekFront()
	ok(t, err)
	eq(t, front, any(1))
	back, err := d.PeekBack()
	ok(t, err)
	eq(t, back, any(3))

	v, _ := d.PopFront()
	eq(t, v, any(1))
	v, _ = d.PopBack()
	eq(t, v, any(3))
	v, _ = d.PopBack()
	eq(t, v, any(2))
	eq(t, d.IsEmpty(), true)
	eq(t, d.Count(), 0)

	_, err = d.PopFront()
	isErr(t, err, ErrEmptyCollection)
	_, err = d.PopBack()
	isErr(t, err, ErrEmptyCollection)
	_, err = d.PeekFront()
	isErr(t, err, ErrEmptyCollection)
	_, err = d.PeekBack()
	isErr(t, err, ErrEmptyCollection)
}
