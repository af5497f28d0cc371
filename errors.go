package coll

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfBounds     = errors.New("out of bounds")
	ErrInvalidRange    = errors.New("invalid range")
	ErrKeyNotFound     = errors.New("key not found")
	ErrConflict        = errors.New("conflict")
	ErrUnsupported     = errors.New("unsupported operation")
	ErrEmptyCollection = errors.New("empty collection")
	ErrRuntime         = errors.New("runtime error")
	ErrInvalidProperty = errors.New("invalid property")
	ErrClosed          = errors.New("closed")
)

// Error describes a failed container operation. Kind is one of the Err*
// sentinels above, so callers match it with errors.Is.
type Error struct {
	Op   string
	Kind error
	Key  any
	Msg  string
	Err  error
}

func collErrf(op string, kind error, key any, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Key: key, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func (e *Error) Error() string {
	var buf strings.Builder
	if e.Op != "" {
		buf.WriteString(e.Op)
		buf.WriteString(": ")
	}
	buf.WriteString(e.Kind.Error())
	if e.Key != nil {
		fmt.Fprintf(&buf, " [%v]", e.Key)
	}
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}

func outOfBounds(op string, i, count int) error {
	return collErrf(op, ErrOutOfBounds, i, "index must be in [0,%d)", count)
}

func invalidRange(op string, start, end, count int) error {
	return collErrf(op, ErrInvalidRange, nil, "range [%d,%d) is invalid for %d items", start, end, count)
}

func unsupported(op string, typ string) error {
	return collErrf(op, ErrUnsupported, nil, "%s is immutable", typ)
}

func emptyCollection(op string) error {
	return collErrf(op, ErrEmptyCollection, nil, "collection is empty")
}

// DataError reports a corrupted or undecodable out-of-core record.
type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x", e.Msg, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s: (%d) %x", e.Msg, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x...%x", e.Msg, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s: (%d) %x...%x", e.Msg, n, p, s)
		}
	}
}
