package coll

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"runtime"
)

const DefaultBoltBatchSize = 512

type StoredOptions struct {
	Dir      string // defaults to os.TempDir()
	Prefix   string // backing file name prefix, defaults to "coll"
	Backend  Backend
	Encoding Encoding

	// BoltBatchSize is the number of appends buffered per Bolt write
	// transaction (BoltBackend only).
	BoltBatchSize int

	Context context.Context
	Logger  *slog.Logger
	Verbose bool
}

func (o *StoredOptions) normalize() {
	if o.Dir == "" {
		o.Dir = os.TempDir()
	}
	if o.Prefix == "" {
		o.Prefix = "coll"
	}
	if o.BoltBatchSize <= 0 {
		o.BoltBatchSize = DefaultBoltBatchSize
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// StoredList is an append-mostly list whose values live in a backing store
// (a temporary file by default) instead of memory. Values are serialized on
// AddValue and deserialized on every read, so a read returns a fresh copy.
//
// The backing store is deleted by Close. A list that becomes unreachable
// without being closed is closed by a finalizer, but callers should not rely
// on that; use WithStoredList or defer Close.
//
// Mutators other than appends and Clear rewrite the whole store in O(n):
// the surviving records are streamed into a fresh store which then replaces
// the old one.
type StoredList struct {
	opt    StoredOptions
	st     recordStorage
	closed bool
}

func NewStoredList(o StoredOptions) (*StoredList, error) {
	o.normalize()
	switch o.Encoding {
	case MsgPack, JSON:
	default:
		return nil, collErrf("NewStoredList", ErrInvalidArgument, nil, "unknown encoding %v", o.Encoding)
	}
	st, err := openStorage(o.Backend, &o)
	if err != nil {
		return nil, fmt.Errorf("coll: cannot create %v storage: %w", o.Backend, err)
	}
	l := &StoredList{opt: o, st: st}
	l.debugf("coll: stored list created", slog.String("file", st.Path()))
	runtime.SetFinalizer(l, (*StoredList).finalize)
	return l, nil
}

// WithStoredList creates a StoredList, passes it to fn and closes it however
// fn returns.
func WithStoredList(o StoredOptions, fn func(l *StoredList) error) (err error) {
	l, err := NewStoredList(o)
	if err != nil {
		return err
	}
	defer func() {
		cerr := l.Close()
		if err == nil {
			err = cerr
		}
	}()
	return fn(l)
}

func (l *StoredList) finalize() {
	if l.closed {
		return
	}
	l.opt.Logger.LogAttrs(l.opt.Context, slog.LevelWarn, "coll: stored list garbage-collected without Close", slog.String("file", l.st.Path()), slog.Int("count", l.st.Len()))
	l.Close()
}

// Close deletes the backing store. It is safe to call more than once.
func (l *StoredList) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	runtime.SetFinalizer(l, nil)
	path := l.st.Path()
	err := l.st.Close()
	if err != nil {
		l.opt.Logger.LogAttrs(l.opt.Context, slog.LevelWarn, "coll: failed to delete backing file", slog.String("file", path), slog.Any("err", err))
	} else {
		l.debugf("coll: stored list closed", slog.String("file", path))
	}
	return err
}

func (l *StoredList) debugf(msg string, attrs ...slog.Attr) {
	if !l.opt.Verbose {
		return
	}
	attrs = append(attrs, slog.String("backend", l.opt.Backend.String()))
	l.opt.Logger.LogAttrs(l.opt.Context, slog.LevelDebug, msg, attrs...)
}

func (l *StoredList) check(op string) error {
	if l.closed {
		return collErrf(op, ErrClosed, nil, "stored list is closed")
	}
	return nil
}

func (l *StoredList) Count() int {
	if l.closed {
		return 0
	}
	return l.st.Len()
}

func (l *StoredList) IsEmpty() bool { return l.Count() == 0 }

// Path returns the primary backing file, or "" for in-memory lists.
func (l *StoredList) Path() string {
	if l.closed {
		return ""
	}
	return l.st.Path()
}

func (l *StoredList) Encoding() Encoding { return l.opt.Encoding }
func (l *StoredList) Backend() Backend   { return l.opt.Backend }

func (l *StoredList) AddValue(v any) error {
	if err := l.check("AddValue"); err != nil {
		return err
	}
	n := l.st.Len()
	if err := appendEncoded(l.st, l.opt.Encoding, v); err != nil {
		return l.rollback("AddValue", n, err)
	}
	return nil
}

// AddValues appends every value of src. Collections and iter.Seq sources are
// streamed without materializing them. If any value fails, none of them are
// kept.
func (l *StoredList) AddValues(src any) error {
	if err := l.check("AddValues"); err != nil {
		return err
	}
	n := l.st.Len()
	err := eachValue("AddValues", src, func(v any) error {
		return appendEncoded(l.st, l.opt.Encoding, v)
	})
	if err != nil {
		return l.rollback("AddValues", n, err)
	}
	return nil
}

// rollback drops the records appended after position n by a failed op.
func (l *StoredList) rollback(op string, n int, err error) error {
	added := l.st.Len() - n
	if terr := l.st.Truncate(n); terr != nil {
		l.opt.Logger.LogAttrs(l.opt.Context, slog.LevelWarn, "coll: failed to drop partial append", slog.String("op", op), slog.String("file", l.st.Path()), slog.Any("err", terr))
		return fmt.Errorf("%w (rollback failed: %w)", err, terr)
	}
	if added > 0 {
		l.debugf("coll: partial append dropped", slog.String("op", op), slog.Int("count", added))
	}
	return err
}

func appendEncoded(st recordStorage, enc Encoding, v any) error {
	buf := recordBytesPool.Get().([]byte)
	buf, err := enc.appendValue(buf[:0], v)
	if err == nil {
		err = st.Append(buf)
	}
	releaseRecordBytes(buf)
	return err
}

func eachValue(op string, src any, fn func(v any) error) error {
	var values iter.Seq[any]
	switch src := src.(type) {
	case Collection:
		values = src.Values()
	case iter.Seq[any]:
		values = src
	default:
		vals, err := valuesOf(op, src)
		if err != nil {
			return err
		}
		for _, v := range vals {
			if err := fn(v); err != nil {
				return err
			}
		}
		return nil
	}
	for v := range values {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// Value reads and decodes the value at index i.
func (l *StoredList) Value(i int) (any, error) {
	if err := l.check("Value"); err != nil {
		return nil, err
	}
	if n := l.st.Len(); i < 0 || i >= n {
		return nil, outOfBounds("Value", i, n)
	}
	return l.read(l.st, i)
}

func (l *StoredList) read(st recordStorage, i int) (any, error) {
	buf := recordBytesPool.Get().([]byte)
	defer func() { releaseRecordBytes(buf) }()
	raw, err := st.Get(i, buf[:0])
	if err != nil {
		return nil, err
	}
	return l.opt.Encoding.decodeValue(raw)
}

// Scan decodes values in order and calls fn for each until fn returns false.
func (l *StoredList) Scan(fn func(i int, v any) bool) error {
	if err := l.check("Scan"); err != nil {
		return err
	}
	for i := range l.st.Len() {
		v, err := l.read(l.st, i)
		if err != nil {
			return err
		}
		if !fn(i, v) {
			return nil
		}
	}
	return nil
}

// IndexOf returns the index of the first value with the same Identity Key as
// v, or -1.
func (l *StoredList) IndexOf(v any) (int, error) {
	key := IdentityKey(v)
	result := -1
	err := l.Scan(func(i int, item any) bool {
		if IdentityKey(item) == key {
			result = i
			return false
		}
		return true
	})
	return result, err
}

func (l *StoredList) HasValue(v any) (bool, error) {
	i, err := l.IndexOf(v)
	return i >= 0, err
}

// ToArray loads every value into memory.
func (l *StoredList) ToArray() ([]any, error) {
	out := make([]any, 0, l.Count())
	err := l.Scan(func(_ int, v any) bool {
		out = append(out, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *StoredList) ToList() (*List, error) {
	items, err := l.ToArray()
	if err != nil {
		return nil, err
	}
	return &List{items: items}, nil
}

// Clear replaces the backing store with a fresh empty one.
func (l *StoredList) Clear() error {
	if err := l.check("Clear"); err != nil {
		return err
	}
	return l.replace("Clear", func(*rewriter) error { return nil })
}

// SetValue replaces the value at index i; i == Count() appends.
func (l *StoredList) SetValue(i int, v any) error {
	if err := l.check("SetValue"); err != nil {
		return err
	}
	n := l.st.Len()
	if i == n {
		return l.AddValue(v)
	}
	if i < 0 || i > n {
		return outOfBounds("SetValue", i, n)
	}
	return l.replace("SetValue", func(w *rewriter) error {
		if err := w.copyRange(0, i); err != nil {
			return err
		}
		if err := w.add(v); err != nil {
			return err
		}
		return w.copyRange(i+1, n)
	})
}

// InsertValue shifts values at i and above one position right.
func (l *StoredList) InsertValue(i int, v any) error {
	if err := l.check("InsertValue"); err != nil {
		return err
	}
	n := l.st.Len()
	if i < 0 || i > n {
		return outOfBounds("InsertValue", i, n)
	}
	if i == n {
		return l.AddValue(v)
	}
	return l.replace("InsertValue", func(w *rewriter) error {
		if err := w.copyRange(0, i); err != nil {
			return err
		}
		if err := w.add(v); err != nil {
			return err
		}
		return w.copyRange(i, n)
	})
}

func (l *StoredList) RemoveIndex(i int) error {
	if err := l.check("RemoveIndex"); err != nil {
		return err
	}
	n := l.st.Len()
	if i < 0 || i >= n {
		return outOfBounds("RemoveIndex", i, n)
	}
	return l.replace("RemoveIndex", func(w *rewriter) error {
		if err := w.copyRange(0, i); err != nil {
			return err
		}
		return w.copyRange(i+1, n)
	})
}

// RemoveRangeOfIndexes removes the values in [start,end).
func (l *StoredList) RemoveRangeOfIndexes(start, end int) error {
	if err := l.check("RemoveRangeOfIndexes"); err != nil {
		return err
	}
	n := l.st.Len()
	if err := checkRange("RemoveRangeOfIndexes", start, end, n); err != nil {
		return err
	}
	if start == end {
		return nil
	}
	return l.replace("RemoveRangeOfIndexes", func(w *rewriter) error {
		if err := w.copyRange(0, start); err != nil {
			return err
		}
		return w.copyRange(end, n)
	})
}

// RetainRangeOfIndexes keeps only the values in [start,end) and reports
// whether anything was removed.
func (l *StoredList) RetainRangeOfIndexes(start, end int) (bool, error) {
	if err := l.check("RetainRangeOfIndexes"); err != nil {
		return false, err
	}
	n := l.st.Len()
	if err := checkRange("RetainRangeOfIndexes", start, end, n); err != nil {
		return false, err
	}
	if start == 0 && end == n {
		return false, nil
	}
	err := l.replace("RetainRangeOfIndexes", func(w *rewriter) error {
		return w.copyRange(start, end)
	})
	return err == nil, err
}

// RemoveValues removes every value equal to one of values and reports
// whether anything was removed.
func (l *StoredList) RemoveValues(values ...any) (bool, error) {
	if err := l.check("RemoveValues"); err != nil {
		return false, err
	}
	keys := identityKeys(values)
	n := l.st.Len()
	err := l.replace("RemoveValues", func(w *rewriter) error {
		for i := range n {
			v, err := l.read(w.src, i)
			if err != nil {
				return err
			}
			if _, found := keys[IdentityKey(v)]; found {
				continue
			}
			if err := w.copy(i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return l.st.Len() != n, nil
}

func (l *StoredList) Reverse() error {
	if err := l.check("Reverse"); err != nil {
		return err
	}
	n := l.st.Len()
	if n < 2 {
		return nil
	}
	return l.replace("Reverse", func(w *rewriter) error {
		for i := n - 1; i >= 0; i-- {
			if err := w.copy(i); err != nil {
				return err
			}
		}
		return nil
	})
}

// rewriter streams records from the current store into a fresh one.
type rewriter struct {
	src, dst recordStorage
	enc      Encoding
	buf      []byte
}

func (w *rewriter) copy(i int) error {
	raw, err := w.src.Get(i, w.buf[:0])
	if err != nil {
		return err
	}
	if cap(raw) > cap(w.buf) {
		w.buf = raw[:0]
	}
	return w.dst.Append(raw)
}

func (w *rewriter) copyRange(start, end int) error {
	for i := start; i < end; i++ {
		if err := w.copy(i); err != nil {
			return err
		}
	}
	return nil
}

func (w *rewriter) add(v any) error {
	return appendEncoded(w.dst, w.enc, v)
}

// replace fills a fresh store using fn, then swaps it in and deletes the old
// one. If fn fails, the fresh store is discarded and the list is unchanged.
func (l *StoredList) replace(op string, fn func(w *rewriter) error) error {
	dst, err := openStorage(l.opt.Backend, &l.opt)
	if err != nil {
		return fmt.Errorf("coll: %s: cannot create storage: %w", op, err)
	}
	if err := l.st.Flush(); err != nil {
		dst.Close()
		return err
	}
	w := &rewriter{src: l.st, dst: dst, enc: l.opt.Encoding}
	err = fn(w)
	if err == nil {
		err = dst.Flush()
	}
	if err != nil {
		dst.Close()
		return err
	}

	old := l.st
	oldPath := old.Path()
	l.st = dst
	if err := old.Close(); err != nil {
		l.opt.Logger.LogAttrs(l.opt.Context, slog.LevelWarn, "coll: failed to delete backing file", slog.String("file", oldPath), slog.Any("err", err))
	}
	l.debugf("coll: stored list rewritten", slog.String("op", op), slog.String("file", dst.Path()), slog.Int("count", dst.Len()))
	return nil
}
