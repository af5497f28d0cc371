package coll

import (
	"encoding/binary"
	"os"
	"unsafe"

	"go.etcd.io/bbolt"
)

const recordsBucket = "records"

// boltStorage keeps records in a single Bolt bucket keyed by the 8-byte
// big-endian record position. Appends are buffered and written in batches,
// one write transaction per batch.
type boltStorage struct {
	bdb       *bbolt.DB
	fileName  string
	batchSize int

	committed int
	pending   [][]byte
}

func openBoltStorage(dir, prefix string, batchSize int) (_ recordStorage, err error) {
	f, err := os.CreateTemp(dir, prefix+"-*.bolt")
	if err != nil {
		return nil, err
	}
	fileName := f.Name()
	f.Close()

	bdb, err := bbolt.Open(fileName, 0600, &bbolt.Options{
		NoSync:         true,
		NoFreelistSync: true,
	})
	if err != nil {
		removeFile(fileName)
		return nil, err
	}
	err = bdb.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(unsafeBytesFromString(recordsBucket))
		return err
	})
	if err != nil {
		bdb.Close()
		removeFile(fileName)
		return nil, err
	}
	return &boltStorage{
		bdb:       bdb,
		fileName:  fileName,
		batchSize: batchSize,
	}, nil
}

func (s *boltStorage) Append(rec []byte) error {
	s.pending = append(s.pending, append([]byte(nil), rec...))
	if len(s.pending) >= s.batchSize {
		return s.Flush()
	}
	return nil
}

func (s *boltStorage) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	err := s.bdb.Update(func(btx *bbolt.Tx) error {
		buck := btx.Bucket(unsafeBytesFromString(recordsBucket))
		var key [8]byte
		for i, rec := range s.pending {
			binary.BigEndian.PutUint64(key[:], uint64(s.committed+i))
			if err := buck.Put(key[:], rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.committed += len(s.pending)
	clear(s.pending)
	s.pending = s.pending[:0]
	return nil
}

func (s *boltStorage) Truncate(n int) error {
	if n >= s.Len() {
		return nil
	}
	if n >= s.committed {
		clear(s.pending[n-s.committed:])
		s.pending = s.pending[:n-s.committed]
		return nil
	}
	clear(s.pending)
	s.pending = s.pending[:0]
	err := s.bdb.Update(func(btx *bbolt.Tx) error {
		buck := btx.Bucket(unsafeBytesFromString(recordsBucket))
		var key [8]byte
		for i := n; i < s.committed; i++ {
			binary.BigEndian.PutUint64(key[:], uint64(i))
			if err := buck.Delete(key[:]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.committed = n
	return nil
}

func (s *boltStorage) Get(i int, buf []byte) ([]byte, error) {
	if i >= s.committed {
		return append(buf, s.pending[i-s.committed]...), nil
	}
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], uint64(i))
	var found bool
	err := s.bdb.View(func(btx *bbolt.Tx) error {
		v := btx.Bucket(unsafeBytesFromString(recordsBucket)).Get(key[:])
		if v != nil {
			found = true
			buf = append(buf, v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, dataErrf(key[:], 0, nil, "record %d missing from bolt storage", i)
	}
	return buf, nil
}

func (s *boltStorage) Len() int     { return s.committed + len(s.pending) }
func (s *boltStorage) Path() string { return s.fileName }

func (s *boltStorage) Stats() storageStats {
	var st storageStats
	s.bdb.View(func(btx *bbolt.Tx) error {
		bs := btx.Bucket(unsafeBytesFromString(recordsBucket)).Stats()
		st.DataSize = int64(bs.LeafInuse + bs.InlineBucketInuse)
		st.IndexSize = int64(bs.BranchInuse)
		return nil
	})
	for _, rec := range s.pending {
		st.DataSize += int64(len(rec))
	}
	return st
}

func (s *boltStorage) Close() error {
	if s.bdb == nil {
		return nil
	}
	err := s.bdb.Close()
	s.bdb = nil
	s.pending = nil
	s.committed = 0
	if rerr := removeFile(s.fileName); err == nil {
		err = rerr
	}
	return err
}

func unsafeBytesFromString(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
