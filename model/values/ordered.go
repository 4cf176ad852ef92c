package values

// OrderedMap is a map that remembers the insertion order of its keys. It is
// the decode target for dictionaries whose order matters.
type OrderedMap[K comparable, V any] struct {
	Keys   []K
	Values map[K]V
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{Values: make(map[K]V)}
}

// Set stores value under key. A new key is appended to the key order; an
// existing key keeps its position.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if m.Values == nil {
		m.Values = make(map[K]V)
	}
	if _, ok := m.Values[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Values[key] = value
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.Values[key]
	return value, ok
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.Keys)
}

// Pairs returns the entries in insertion order.
func (m *OrderedMap[K, V]) Pairs() []KeyValuePair[K, V] {
	pairs := make([]KeyValuePair[K, V], len(m.Keys))
	for i, key := range m.Keys {
		pairs[i] = KeyValuePair[K, V]{Key: key, Value: m.Values[key]}
	}
	return pairs
}

func (m *OrderedMap[K, V]) isOrderedMap() {}

// KeyValuePair is one dictionary entry. A slice of pairs is the decode target
// for dictionaries whose keys need not be unique or comparable.
type KeyValuePair[K any, V any] struct {
	Key   K
	Value V
}

func (KeyValuePair[K, V]) isKeyValuePair() {}

type orderedMap interface {
	isOrderedMap()
}

type keyValuePair interface {
	isKeyValuePair()
}
