package coll

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

const (
	offsetSize   = 8
	checksumSize = 8
	fileBufSize  = 64 * 1024
)

// fileStorage keeps records in a data file and their start offsets in an
// index file. Each file is opened twice: a buffered append-only writer and
// a read-only handle used for random access.
//
// Data record: uvarint payload length, payload, xxhash64 of the payload
// (little-endian). Index entry: big-endian uint64 offset of the record.
type fileStorage struct {
	dataName  string
	indexName string

	dataW  *os.File
	dataBW *bufio.Writer
	dataR  *os.File
	idxW   *os.File
	idxBW  *bufio.Writer
	idxR   *os.File

	size  int64
	count int
	dirty bool
	rec   []byte

	// err is sticky: after a failed write the files no longer match size
	// and count, and every later call fails with it.
	err error
}

func openFileStorage(dir, prefix string) (_ recordStorage, err error) {
	s := &fileStorage{}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	s.dataW, err = os.CreateTemp(dir, prefix+"-*.dat")
	if err != nil {
		return nil, err
	}
	s.dataName = s.dataW.Name()
	s.idxW, err = os.CreateTemp(dir, prefix+"-*.idx")
	if err != nil {
		return nil, err
	}
	s.indexName = s.idxW.Name()

	s.dataR, err = os.Open(s.dataName)
	if err != nil {
		return nil, err
	}
	s.idxR, err = os.Open(s.indexName)
	if err != nil {
		return nil, err
	}
	s.dataBW = bufio.NewWriterSize(s.dataW, fileBufSize)
	s.idxBW = bufio.NewWriterSize(s.idxW, fileBufSize)
	return s, nil
}

func (s *fileStorage) fail(err error) error {
	s.err = err
	return err
}

func (s *fileStorage) Append(payload []byte) error {
	if s.err != nil {
		return s.err
	}
	s.rec = appendUvarint(s.rec[:0], uint64(len(payload)))
	s.rec = appendRaw(s.rec, payload)
	s.rec = appendUint64LE(s.rec, xxhash.Sum64(payload))
	if _, err := s.dataBW.Write(s.rec); err != nil {
		return s.fail(err)
	}
	s.dirty = true

	var off [offsetSize]byte
	binary.BigEndian.PutUint64(off[:], uint64(s.size))
	if _, err := s.idxBW.Write(off[:]); err != nil {
		return s.fail(err)
	}
	s.size += int64(len(s.rec))
	s.count++
	return nil
}

func (s *fileStorage) Flush() error {
	if s.err != nil {
		return s.err
	}
	if !s.dirty {
		return nil
	}
	if err := s.dataBW.Flush(); err != nil {
		return s.fail(err)
	}
	if err := s.idxBW.Flush(); err != nil {
		return s.fail(err)
	}
	s.dirty = false
	return nil
}

func (s *fileStorage) Truncate(n int) error {
	if n >= s.count {
		return nil
	}
	if err := s.Flush(); err != nil {
		return err
	}
	var size int64
	if n > 0 {
		var off [offsetSize]byte
		if _, err := s.idxR.ReadAt(off[:], int64(n)*offsetSize); err != nil {
			return s.fail(err)
		}
		size = int64(binary.BigEndian.Uint64(off[:]))
		if size > s.size {
			return dataErrf(off[:], 0, nil, "record %d: invalid offset %d", n, size)
		}
	}
	if err := truncateFile(s.dataW, size); err != nil {
		return s.fail(err)
	}
	if err := truncateFile(s.idxW, int64(n)*offsetSize); err != nil {
		return s.fail(err)
	}
	s.size, s.count = size, n
	return nil
}

// truncateFile cuts f to size and moves its write position to the new end.
func truncateFile(f *os.File, size int64) error {
	if err := f.Truncate(size); err != nil {
		return err
	}
	_, err := f.Seek(size, io.SeekStart)
	return err
}

func (s *fileStorage) Get(i int, buf []byte) ([]byte, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}

	var offs [2 * offsetSize]byte
	n := offsetSize
	if i+1 < s.count {
		n = 2 * offsetSize
	}
	if _, err := s.idxR.ReadAt(offs[:n], int64(i)*offsetSize); err != nil {
		return nil, err
	}
	start := int64(binary.BigEndian.Uint64(offs[:offsetSize]))
	end := s.size
	if n > offsetSize {
		end = int64(binary.BigEndian.Uint64(offs[offsetSize:]))
	}
	if start > end || end > s.size {
		return nil, dataErrf(offs[:n], 0, nil, "record %d: invalid offsets %d..%d", i, start, end)
	}

	off, buf := grow(buf, int(end-start))
	raw := buf[off:]
	if _, err := s.dataR.ReadAt(raw, start); err != nil {
		return nil, err
	}

	d := makeByteDecoder(raw)
	payload, err := d.VarBytes()
	if err != nil {
		return nil, err
	}
	sum, err := d.FixedUint64()
	if err != nil {
		return nil, err
	}
	if len(d.Buf) != 0 {
		return nil, dataErrf(raw, d.Off(), nil, "record %d: %d trailing bytes", i, len(d.Buf))
	}
	if actual := xxhash.Sum64(payload); actual != sum {
		return nil, dataErrf(raw, 0, nil, "record %d: checksum mismatch: stored %016x, computed %016x", i, sum, actual)
	}
	return payload, nil
}

func (s *fileStorage) Len() int     { return s.count }
func (s *fileStorage) Path() string { return s.dataName }

func (s *fileStorage) Stats() storageStats {
	return storageStats{
		DataSize:  s.size,
		IndexSize: int64(s.count) * offsetSize,
	}
}

func (s *fileStorage) Close() error {
	var firstErr error
	for _, f := range []*os.File{s.dataW, s.dataR, s.idxW, s.idxR} {
		if f != nil {
			f.Close()
		}
	}
	s.dataW, s.dataR, s.idxW, s.idxR = nil, nil, nil, nil
	s.dataBW, s.idxBW = nil, nil
	for _, fn := range []string{s.dataName, s.indexName} {
		if err := removeFile(fn); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.dataName, s.indexName = "", ""
	s.count, s.size, s.dirty, s.err = 0, 0, false, nil
	return firstErr
}
