package coll

import (
	"errors"
	"iter"
	"log/slog"
	"math"
	"os"
	"strings"
	"testing"
)

var allBackends = []Backend{FileBackend, BoltBackend, MemoryBackend}

type logWriter struct{ t testing.TB }

func (c *logWriter) Write(buf []byte) (int, error) {
	msg := string(buf)
	origLen := len(msg)
	msg = strings.TrimSuffix(msg, "\n")
	c.t.Log(msg)
	return origLen, nil
}

func testLogger(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(&logWriter{t}, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	}))
}

func storedList(t *testing.T, o StoredOptions) *StoredList {
	o.Dir = t.TempDir()
	o.Logger = testLogger(t)
	o.Verbose = true
	l := must(NewStoredList(o))
	t.Cleanup(func() {
		if err := l.Close(); err != nil {
			t.Error(err)
		}
	})
	return l
}

func forEachBackend(t *testing.T, fn func(t *testing.T, o StoredOptions)) {
	for _, b := range allBackends {
		for _, enc := range []Encoding{MsgPack, JSON} {
			t.Run(b.String()+"/"+enc.String(), func(t *testing.T) {
				fn(t, StoredOptions{Backend: b, Encoding: enc, BoltBatchSize: 3})
			})
		}
	}
}

func storedValues(t testing.TB, l *StoredList) []any {
	t.Helper()
	return must(l.ToArray())
}

func TestStoredList_Basics(t *testing.T) {
	forEachBackend(t, func(t *testing.T, o StoredOptions) {
		l := storedList(t, o)
		eq(t, l.IsEmpty(), true)
		ok(t, l.AddValue(1))
		ok(t, l.AddValue("two"))
		ok(t, l.AddValue(ListOf(3, must(MapOf("k", nil)))))
		ok(t, l.AddValues([]any{4, 5.5}))
		eq(t, l.Count(), 5)
		eq(t, l.Backend(), o.Backend)
		eq(t, l.Encoding(), o.Encoding)

		v, err := l.Value(1)
		ok(t, err)
		eq(t, v, any("two"))
		v, err = l.Value(2)
		ok(t, err)
		if !Equal(v, []any{3, must(MapOf("k", nil))}) {
			t.Fatalf("Value(2) = %s", Dump(v))
		}
		_, err = l.Value(5)
		isErr(t, err, ErrOutOfBounds)
		_, err = l.Value(-1)
		isErr(t, err, ErrOutOfBounds)

		i, err := l.IndexOf(4)
		ok(t, err)
		eq(t, i, 3)
		found, err := l.HasValue("nope")
		ok(t, err)
		eq(t, found, false)

		var seen []int
		ok(t, l.Scan(func(i int, _ any) bool {
			seen = append(seen, i)
			return i < 1
		}))
		deepEqual(t, seen, []int{0, 1})

		list, err := l.ToList()
		ok(t, err)
		eq(t, list.Count(), 5)
		last, _ := list.Last()
		eq(t, last, any(5.5))
	})
}

func TestStoredList_ReadsReturnCopies(t *testing.T) {
	forEachBackend(t, func(t *testing.T, o StoredOptions) {
		l := storedList(t, o)
		src := MutableListOf(1)
		ok(t, l.AddValue(src))
		src.AddValue(2)

		v := must(l.Value(0)).([]any)
		deepEqual(t, v, []any{1})
		v[0] = "changed"
		deepEqual(t, must(l.Value(0)), any([]any{1}))
	})
}

func TestStoredList_Large(t *testing.T) {
	const n = 100_000
	for _, b := range allBackends {
		t.Run(b.String(), func(t *testing.T) {
			l := storedList(t, StoredOptions{Backend: b})
			var seq iter.Seq[any] = func(yield func(any) bool) {
				for i := range n {
					if !yield(i) {
						return
					}
				}
			}
			ok(t, l.AddValues(seq))
			eq(t, l.Count(), n)
			eq(t, must(l.Value(50000)), any(50000))
			eq(t, must(l.Value(0)), any(0))
			eq(t, must(l.Value(n-1)), any(n-1))

			st := l.Stats()
			eq(t, st.Records, n)
			if st.TotalSize() <= 0 {
				t.Fatalf("Stats = %v, wanted non-zero size", st)
			}
		})
	}
}

func TestStoredList_Rewrites(t *testing.T) {
	forEachBackend(t, func(t *testing.T, o StoredOptions) {
		l := storedList(t, o)
		ok(t, l.AddValues([]any{0, 1, 2, 3, 4, 5}))

		ok(t, l.SetValue(1, "one"))
		ok(t, l.SetValue(l.Count(), 6))
		isErr(t, l.SetValue(10, 0), ErrOutOfBounds)
		deepEqual(t, storedValues(t, l), []any{0, "one", 2, 3, 4, 5, 6})

		ok(t, l.InsertValue(0, "first"))
		ok(t, l.InsertValue(3, "mid"))
		ok(t, l.InsertValue(l.Count(), "end"))
		isErr(t, l.InsertValue(-1, 0), ErrOutOfBounds)
		deepEqual(t, storedValues(t, l), []any{"first", 0, "one", "mid", 2, 3, 4, 5, 6, "end"})

		ok(t, l.RemoveIndex(0))
		isErr(t, l.RemoveIndex(9), ErrOutOfBounds)
		ok(t, l.RemoveRangeOfIndexes(1, 3))
		isErr(t, l.RemoveRangeOfIndexes(3, 1), ErrInvalidRange)
		deepEqual(t, storedValues(t, l), []any{0, 2, 3, 4, 5, 6, "end"})

		changed, err := l.RetainRangeOfIndexes(1, 6)
		ok(t, err)
		eq(t, changed, true)
		changed, err = l.RetainRangeOfIndexes(0, l.Count())
		ok(t, err)
		eq(t, changed, false)
		deepEqual(t, storedValues(t, l), []any{2, 3, 4, 5, 6})

		changed, err = l.RemoveValues(3, 5, "zz")
		ok(t, err)
		eq(t, changed, true)
		changed, err = l.RemoveValues("zz")
		ok(t, err)
		eq(t, changed, false)

		ok(t, l.Reverse())
		deepEqual(t, storedValues(t, l), []any{6, 4, 2})

		ok(t, l.AddValue(7))
		deepEqual(t, storedValues(t, l), []any{6, 4, 2, 7})

		ok(t, l.Clear())
		eq(t, l.Count(), 0)
		ok(t, l.AddValue("again"))
		deepEqual(t, storedValues(t, l), []any{"again"})
	})
}

func TestStoredList_RewriteRemovesOldFile(t *testing.T) {
	for _, b := range []Backend{FileBackend, BoltBackend} {
		t.Run(b.String(), func(t *testing.T) {
			l := storedList(t, StoredOptions{Backend: b})
			ok(t, l.AddValues([]any{1, 2, 3}))
			old := l.Path()
			ok(t, l.RemoveIndex(1))
			if l.Path() == old {
				t.Fatalf("Path unchanged after rewrite")
			}
			if _, err := os.Stat(old); !os.IsNotExist(err) {
				t.Fatalf("old backing file still exists: %v", err)
			}
		})
	}
}

func TestStoredList_Close(t *testing.T) {
	for _, b := range []Backend{FileBackend, BoltBackend} {
		t.Run(b.String(), func(t *testing.T) {
			l := must(NewStoredList(StoredOptions{Dir: t.TempDir(), Backend: b, Logger: testLogger(t)}))
			ok(t, l.AddValue(1))
			path := l.Path()
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("backing file missing: %v", err)
			}

			ok(t, l.Close())
			ok(t, l.Close())
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("backing file still exists after Close: %v", err)
			}
			eq(t, l.Path(), "")
			eq(t, l.Count(), 0)
			isErr(t, l.AddValue(2), ErrClosed)
			_, err := l.Value(0)
			isErr(t, err, ErrClosed)
			_, err = l.ToArray()
			isErr(t, err, ErrClosed)
			isErr(t, l.Clear(), ErrClosed)
			eq(t, l.Stats().Records, 0)
		})
	}
}

func TestWithStoredList(t *testing.T) {
	var path string
	err := WithStoredList(StoredOptions{Dir: t.TempDir(), Logger: testLogger(t)}, func(l *StoredList) error {
		path = l.Path()
		return l.AddValue("x")
	})
	ok(t, err)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("backing file still exists: %v", err)
	}

	boom := errors.New("boom")
	err = WithStoredList(StoredOptions{Backend: MemoryBackend}, func(l *StoredList) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithStoredList err = %v, wanted boom", err)
	}
}

func TestStoredList_InvalidOptions(t *testing.T) {
	_, err := NewStoredList(StoredOptions{Encoding: Encoding(7)})
	isErr(t, err, ErrInvalidArgument)
	_, err = NewStoredList(StoredOptions{Backend: Backend(7)})
	isErr(t, err, ErrInvalidArgument)
	eq(t, Backend(7).String(), "backend(7)")
}

func TestStoredList_ObjectsRejected(t *testing.T) {
	forEachBackend(t, func(t *testing.T, o StoredOptions) {
		l := storedList(t, o)
		isErr(t, l.AddValue(&widget{}), ErrInvalidArgument)
		eq(t, l.Count(), 0)
	})
}

func TestStoredList_DetectsCorruption(t *testing.T) {
	l := storedList(t, StoredOptions{Backend: FileBackend})
	ok(t, l.AddValue(1))
	eq(t, must(l.Value(0)), any(1))

	f, err := os.OpenFile(l.Path(), os.O_WRONLY, 0)
	ok(t, err)
	_, err = f.WriteAt([]byte{0x02}, 1)
	ok(t, err)
	ok(t, f.Close())

	_, err = l.Value(0)
	var de *DataError
	if !errors.As(err, &de) {
		t.Fatalf("Value err = %v, wanted *DataError", err)
	}
}

func TestStoredList_FailedAddValuesKeepsNothing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, o StoredOptions) {
		l := storedList(t, o)
		ok(t, l.AddValue("keep"))

		isErr(t, l.AddValues([]any{1, 2, &widget{}, 4}), ErrInvalidArgument)
		eq(t, l.Count(), 1)
		deepEqual(t, storedValues(t, l), []any{"keep"})

		var seq iter.Seq[any] = func(yield func(any) bool) {
			for i := range 10 {
				if !yield(i) {
					return
				}
			}
			yield(&widget{})
		}
		isErr(t, l.AddValues(seq), ErrInvalidArgument)
		eq(t, l.Count(), 1)

		isErr(t, l.AddValue([]any{"x", &widget{}}), ErrInvalidArgument)
		eq(t, l.Count(), 1)

		ok(t, l.AddValues([]any{5, 6}))
		deepEqual(t, storedValues(t, l), []any{"keep", 5, 6})
	})
}

func TestStoredList_FloatsKeepIdentity(t *testing.T) {
	forEachBackend(t, func(t *testing.T, o StoredOptions) {
		l := storedList(t, o)
		values := []any{5.0, math.Copysign(0, -1), 5, ListOf(1.0, 2)}
		ok(t, l.AddValues(values))
		for i, v := range values {
			eq(t, IdentityKey(must(l.Value(i))), IdentityKey(v))
		}
	})
}
