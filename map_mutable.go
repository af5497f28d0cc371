package coll

// MutableMap extends Map with upserts, removals and key renames.
type MutableMap struct {
	Map
}

func NewMutableMap(src any) (*MutableMap, error) {
	m, err := NewMap(src)
	if err != nil {
		return nil, err
	}
	return &MutableMap{*m}, nil
}

func MutableMapOf(kv ...any) (*MutableMap, error) {
	m, err := MapOf(kv...)
	if err != nil {
		return nil, err
	}
	return &MutableMap{*m}, nil
}

func (m *MutableMap) Immutable() *Map {
	return m.Map.ToMap()
}

// PutEntry inserts or replaces the value under key and reports whether a new
// key was added.
func (m *MutableMap) PutEntry(key any, v any) (bool, error) {
	k, err := KeyOf(key)
	if err != nil {
		return false, err
	}
	return m.put(k, v), nil
}

// PutEntries upserts every entry of src. All keys are validated first.
func (m *MutableMap) PutEntries(src any) error {
	keys, values, err := entriesOf("PutEntries", src)
	if err != nil {
		return err
	}
	for i, k := range keys {
		m.put(k, values[i])
	}
	return nil
}

func (m *MutableMap) RemoveKey(key any) (bool, error) {
	return m.RemoveKeys(key)
}

func (m *MutableMap) RemoveKeys(keys ...any) (bool, error) {
	drop, err := keySet(keys)
	if err != nil {
		return false, err
	}
	return m.keepIf(func(e entry) bool {
		_, found := drop[e.key]
		return !found
	}), nil
}

func (m *MutableMap) RetainKey(key any) (bool, error) {
	return m.RetainKeys(key)
}

// RetainKeys removes every entry whose key is not among keys.
func (m *MutableMap) RetainKeys(keys ...any) (bool, error) {
	keep, err := keySet(keys)
	if err != nil {
		return false, err
	}
	return m.keepIf(func(e entry) bool {
		_, found := keep[e.key]
		return found
	}), nil
}

// RemoveValue removes every entry whose value has the same Identity Key as v.
func (m *MutableMap) RemoveValue(v any) bool {
	return m.RemoveValues(v)
}

func (m *MutableMap) RemoveValues(values ...any) bool {
	keys := identityKeys(values)
	return m.keepIf(func(e entry) bool {
		_, found := keys[IdentityKey(e.value)]
		return !found
	})
}

func (m *MutableMap) RetainValue(v any) bool {
	return m.RetainValues(v)
}

func (m *MutableMap) RetainValues(values ...any) bool {
	keys := identityKeys(values)
	return m.keepIf(func(e entry) bool {
		_, found := keys[IdentityKey(e.value)]
		return found
	})
}

// RenameKey moves the value under oldKey to newKey, keeping its position.
// It fails with ErrKeyNotFound if oldKey is absent and with ErrConflict if
// newKey is already present.
func (m *MutableMap) RenameKey(oldKey, newKey any) error {
	ok, err := KeyOf(oldKey)
	if err != nil {
		return err
	}
	nk, err := KeyOf(newKey)
	if err != nil {
		return err
	}
	i, found := m.index[ok]
	if !found {
		return collErrf("RenameKey", ErrKeyNotFound, ok.Value(), "")
	}
	if ok == nk {
		return nil
	}
	if _, exists := m.index[nk]; exists {
		return collErrf("RenameKey", ErrConflict, nk.Value(), "key already exists")
	}
	delete(m.index, ok)
	m.index[nk] = i
	m.entries[i].key = nk
	return nil
}

func (m *MutableMap) Clear() bool {
	if len(m.entries) == 0 {
		return false
	}
	clear(m.entries)
	m.entries = m.entries[:0]
	clear(m.index)
	return true
}

func (m *MutableMap) Put(key any, v any) error {
	_, err := m.PutEntry(key, v)
	return err
}

func (m *MutableMap) Delete(key any) error {
	k, err := KeyOf(key)
	if err != nil {
		return err
	}
	if _, found := m.index[k]; !found {
		return collErrf("Delete", ErrKeyNotFound, k.Value(), "")
	}
	m.keepIf(func(e entry) bool { return e.key != k })
	return nil
}

func keySet(keys []any) (map[Key]struct{}, error) {
	set := make(map[Key]struct{}, len(keys))
	for _, key := range keys {
		k, err := KeyOf(key)
		if err != nil {
			return nil, err
		}
		set[k] = struct{}{}
	}
	return set, nil
}
