package coll

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend selects where a StoredList keeps its records.
type Backend int

const (
	// FileBackend keeps records in a temporary data file with a separate
	// offset index file. Memory use does not grow with the record count.
	FileBackend Backend = iota
	// BoltBackend keeps records in a temporary Bolt database.
	BoltBackend
	// MemoryBackend keeps encoded records in process memory.
	MemoryBackend
)

func (b Backend) String() string {
	switch b {
	case FileBackend:
		return "file"
	case BoltBackend:
		return "bolt"
	case MemoryBackend:
		return "memory"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// recordStorage is an append-only array of encoded records addressed by
// position.
type recordStorage interface {
	// Append adds a record. The storage copies rec if it needs to keep it.
	Append(rec []byte) error

	// Get returns the payload of record i, reading it into buf's spare
	// capacity when it can. buf must be empty. The caller has checked that i
	// is within [0, Len()).
	Get(i int, buf []byte) ([]byte, error)

	// Len returns the number of records appended so far.
	Len() int

	// Truncate drops every record at position n and above. n > Len() is a
	// no-op.
	Truncate(n int) error

	// Flush makes all appended records durable enough to be read back
	// through an independent handle.
	Flush() error

	// Stats returns storage sizes.
	Stats() storageStats

	// Path returns the primary backing file, or "" for in-memory storage.
	Path() string

	// Close releases the handles and deletes the backing files. It is safe
	// to call more than once.
	Close() error
}

type storageStats struct {
	DataSize  int64
	IndexSize int64
}

func openStorage(b Backend, o *StoredOptions) (recordStorage, error) {
	switch b {
	case FileBackend:
		return openFileStorage(o.Dir, o.Prefix)
	case BoltBackend:
		return openBoltStorage(o.Dir, o.Prefix, o.BoltBatchSize)
	case MemoryBackend:
		return newMemStorage(), nil
	default:
		return nil, collErrf("NewStoredList", ErrInvalidArgument, nil, "unknown backend %v", b)
	}
}

func removeFile(fn string) error {
	if fn == "" {
		return nil
	}
	err := os.Remove(fn)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", filepath.Base(fn), err)
	}
	return nil
}
