package coll

import "fmt"

type StoredStats struct {
	Records   int
	DataSize  int64
	IndexSize int64
	Backend   Backend
	Encoding  Encoding
}

func (s StoredStats) TotalSize() int64 {
	return s.DataSize + s.IndexSize
}

func (s StoredStats) String() string {
	return fmt.Sprintf("%d records, data_size = %d, index_size = %d, total_size = %d (%v, %v)", s.Records, s.DataSize, s.IndexSize, s.TotalSize(), s.Backend, s.Encoding)
}

func (l *StoredList) Stats() StoredStats {
	result := StoredStats{
		Backend:  l.opt.Backend,
		Encoding: l.opt.Encoding,
	}
	if l.closed {
		return result
	}
	ss := l.st.Stats()
	result.Records = l.st.Len()
	result.DataSize = ss.DataSize
	result.IndexSize = ss.IndexSize
	return result
}
