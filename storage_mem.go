package coll

type memStorage struct {
	records [][]byte
	size    int64
}

// newMemStorage returns an in-process recordStorage, mostly useful in tests
// and for small lists.
func newMemStorage() recordStorage {
	return &memStorage{}
}

func (s *memStorage) Append(rec []byte) error {
	s.records = append(s.records, append([]byte(nil), rec...))
	s.size += int64(len(rec))
	return nil
}

func (s *memStorage) Truncate(n int) error {
	if n >= len(s.records) {
		return nil
	}
	for _, rec := range s.records[n:] {
		s.size -= int64(len(rec))
	}
	clear(s.records[n:])
	s.records = s.records[:n]
	return nil
}

func (s *memStorage) Get(i int, buf []byte) ([]byte, error) {
	return append(buf, s.records[i]...), nil
}

func (s *memStorage) Len() int     { return len(s.records) }
func (s *memStorage) Flush() error { return nil }
func (s *memStorage) Path() string { return "" }

func (s *memStorage) Stats() storageStats {
	return storageStats{DataSize: s.size}
}

func (s *memStorage) Close() error {
	s.records = nil
	s.size = 0
	return nil
}
