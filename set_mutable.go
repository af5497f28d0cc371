package coll

// MutableSet extends Set with in-place membership changes.
type MutableSet struct {
	Set
}

func NewMutableHashSet(src any) (*MutableSet, error) {
	s, err := newSet("NewMutableHashSet", src, false)
	if err != nil {
		return nil, err
	}
	return &MutableSet{*s}, nil
}

func NewMutableOrderedSet(src any) (*MutableSet, error) {
	s, err := newSet("NewMutableOrderedSet", src, true)
	if err != nil {
		return nil, err
	}
	return &MutableSet{*s}, nil
}

func MutableHashSetOf(values ...any) *MutableSet {
	return &MutableSet{*newSetOf(values, false)}
}

func MutableOrderedSetOf(values ...any) *MutableSet {
	return &MutableSet{*newSetOf(values, true)}
}

func (s *MutableSet) Immutable() *Set {
	return s.Set.Clone()
}

// Clone returns an independent mutable copy of the same flavor.
func (s *MutableSet) Clone() *MutableSet {
	return &MutableSet{*s.Set.Clone()}
}

// PutValue adds v unless an equal value is already present, and reports
// whether the set grew.
func (s *MutableSet) PutValue(v any) bool {
	return s.put(IdentityKey(v), v)
}

func (s *MutableSet) PutValues(values ...any) bool {
	changed := false
	for _, v := range values {
		if s.put(IdentityKey(v), v) {
			changed = true
		}
	}
	return changed
}

func (s *MutableSet) RemoveValue(v any) bool {
	return s.RemoveValues(v)
}

func (s *MutableSet) RemoveValues(values ...any) bool {
	keys := identityKeys(values)
	return s.keepIf(func(k string) bool {
		_, found := keys[k]
		return !found
	})
}

func (s *MutableSet) RetainValue(v any) bool {
	return s.RetainValues(v)
}

// RetainValues keeps only the members equal to one of values.
func (s *MutableSet) RetainValues(values ...any) bool {
	keys := identityKeys(values)
	return s.keepIf(func(k string) bool {
		_, found := keys[k]
		return found
	})
}

func (s *MutableSet) Clear() bool {
	if len(s.items) == 0 {
		return false
	}
	clear(s.items)
	s.order = s.order[:0]
	return true
}

// Put adds v; the key is ignored because set members are their own keys.
func (s *MutableSet) Put(key any, v any) error {
	s.PutValue(v)
	return nil
}

func (s *MutableSet) Delete(v any) error {
	if !s.RemoveValue(v) {
		return collErrf("Delete", ErrKeyNotFound, nil, "value not in set")
	}
	return nil
}
