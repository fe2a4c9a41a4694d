package enum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/enumily/internal/entities"
)

// Entry is one key/value record of a Source.
type Entry[V comparable] struct {
	Key   string
	Value V
}

// Source is the ordered mapping an Enum is built from.
type Source[V comparable] []Entry[V]

// Entity is an entry of a constructed Enum together with its provenance.
// Entries added by Extend are own; entries of the extended enum are
// inherited.
type Entity[V comparable] struct {
	Key       string
	Value     V
	Inherited bool
}

// Enum is an immutable, validated set of unique key/value pairs. The zero
// value is not usable; construct with New.
type Enum[V comparable] struct {
	layers   [][]entities.Pair[V]
	entities []entities.Entity[V]
	byKey    map[string]V
	byValue  map[valueID]string
	inverted map[V]string      // numeric values only; nil unless inverted
	byName   map[string]string // property spelling of inverted values
	opts     options
}

// New validates source and builds an Enum from it. Values must be numbers or
// strings and must be unique. Numbers are equal when their magnitudes are,
// so 1 and 1.0 collide, while 1 and "1" are distinct in an Enum[any]. On failure the returned error wraps ErrDuplicateValue,
// ErrDuplicateKey or ErrInvalidValue and no Enum is returned.
func New[V comparable](source Source[V], opts ...Option) (*Enum[V], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return build([][]entities.Pair[V]{toPairs(source)}, o)
}

// MustNew is like New but panics on error. Intended for package-level enums
// whose definitions are fixed at compile time.
func MustNew[V comparable](source Source[V], opts ...Option) *Enum[V] {
	e, err := New(source, opts...)
	if err != nil {
		panic(fmt.Sprintf("enum: %v", err))
	}
	return e
}

func toPairs[V comparable](source Source[V]) []entities.Pair[V] {
	pairs := make([]entities.Pair[V], len(source))
	for i, e := range source {
		pairs[i] = entities.Pair[V]{Key: e.Key, Value: e.Value}
	}
	return pairs
}

func build[V comparable](layers [][]entities.Pair[V], o options) (*Enum[V], error) {
	for _, layer := range layers {
		if err := validateLayer(layer); err != nil {
			return nil, err
		}
	}

	ents := entities.Enumerate(layers...)
	if err := validateUnique(ents); err != nil {
		return nil, err
	}

	e := &Enum[V]{
		layers:   layers,
		entities: ents,
		byKey:    make(map[string]V, len(ents)),
		byValue:  make(map[valueID]string, len(ents)),
		opts:     o,
	}
	for _, ent := range ents {
		id, _ := identify(ent.Value)
		e.byKey[ent.Key] = ent.Value
		e.byValue[id] = ent.Key
	}

	if o.inverted {
		e.inverted = make(map[V]string)
		e.byName = make(map[string]string)
		for _, ent := range ents {
			if classify(ent.Value) != kindNumber {
				continue
			}
			e.inverted[ent.Value] = ent.Key
			e.byName[PropertyName(ent.Value)] = ent.Key
		}
	}
	return e, nil
}

// validateLayer checks value types and key uniqueness within one layer.
func validateLayer[V comparable](layer []entities.Pair[V]) error {
	var invalid, dupKeys []string
	seen := make(map[string]bool, len(layer))
	for _, p := range layer {
		if classify(p.Value) == kindInvalid {
			invalid = append(invalid, p.Key)
		}
		if seen[p.Key] {
			dupKeys = append(dupKeys, p.Key)
		}
		seen[p.Key] = true
	}
	if len(invalid) > 0 {
		return &ValidationError{Err: ErrInvalidValue, Keys: invalid}
	}
	if len(dupKeys) > 0 {
		return &ValidationError{Err: ErrDuplicateKey, Keys: dupKeys}
	}
	return nil
}

// validateUnique compares the cardinality of the value set with the entry
// count and names every key involved in a collision.
func validateUnique[V comparable](ents []entities.Entity[V]) error {
	ids := make([]valueID, len(ents))
	owners := make(map[valueID][]string, len(ents))
	for i, ent := range ents {
		ids[i], _ = identify(ent.Value)
		owners[ids[i]] = append(owners[ids[i]], ent.Key)
	}
	if len(owners) == len(ents) {
		return nil
	}

	var keys []string
	for i, ent := range ents {
		if ks := owners[ids[i]]; len(ks) > 1 && ks[0] == ent.Key {
			keys = append(keys, ks...)
		}
	}
	return &ValidationError{Err: ErrDuplicateValue, Keys: keys}
}

// Len returns the number of keys.
func (e *Enum[V]) Len() int {
	return len(e.entities)
}

// Keys returns the keys in order: inherited keys first, then own keys.
func (e *Enum[V]) Keys() []string {
	return entities.Keys(e.entities)
}

// Values returns the values index-aligned with Keys.
func (e *Enum[V]) Values() []V {
	values := make([]V, len(e.entities))
	for i, ent := range e.entities {
		values[i] = ent.Value
	}
	return values
}

// Entries returns every key/value pair in Keys order with its provenance.
func (e *Enum[V]) Entries() []Entity[V] {
	out := make([]Entity[V], len(e.entities))
	for i, ent := range e.entities {
		out[i] = Entity[V](ent)
	}
	return out
}

// Value returns the value stored under key. A missing key is an ordinary
// miss: the zero value and false.
func (e *Enum[V]) Value(key string) (V, bool) {
	v, ok := e.byKey[key]
	return v, ok
}

// Key returns the key whose value equals value. Numbers match by magnitude,
// and a number never matches a string: in an Enum[any], Key(1) and Key("1")
// are different lookups. Values that cannot be enum values are misses.
func (e *Enum[V]) Key(value V) (string, bool) {
	id, ok := identify(value)
	if !ok {
		return "", false
	}
	k, ok := e.byValue[id]
	return k, ok
}

// Has reports whether key is defined.
func (e *Enum[V]) Has(key string) bool {
	_, ok := e.byKey[key]
	return ok
}

// Contains reports whether value is defined.
func (e *Enum[V]) Contains(value V) bool {
	_, ok := e.Key(value)
	return ok
}

// IsInverted reports whether the enum was built with WithInverted(true).
func (e *Enum[V]) IsInverted() bool {
	return e.opts.inverted
}

// Inverted returns a copy of the numeric value to key mapping. String values
// never appear. Returns nil when the enum is not inverted.
func (e *Enum[V]) Inverted() map[V]string {
	if e.inverted == nil {
		return nil
	}
	out := make(map[V]string, len(e.inverted))
	for v, k := range e.inverted {
		out[v] = k
	}
	return out
}

// Lookup reads the enum the way a property of the decorated object would
// be read. A key yields its value. On an inverted enum, the decimal spelling
// of a numeric value ("1", "2.5") yields its key, and takes precedence over
// a key spelled the same way.
func (e *Enum[V]) Lookup(name string) (any, bool) {
	if k, ok := e.byName[name]; ok {
		return k, true
	}
	if v, ok := e.byKey[name]; ok {
		return v, true
	}
	return nil, false
}

// Extend returns a new Enum holding the receiver's entries followed by
// additions. The receiver is not modified. A key already present is
// redefined and reported once, as an own entry. Uniqueness is validated over
// the combined set. The inverted setting is inherited unless opts override it.
func (e *Enum[V]) Extend(additions Source[V], opts ...Option) (*Enum[V], error) {
	o := e.opts
	for _, opt := range opts {
		opt(&o)
	}
	layers := make([][]entities.Pair[V], 0, len(e.layers)+1)
	layers = append(layers, e.layers...)
	layers = append(layers, toPairs(additions))
	return build(layers, o)
}

// MarshalJSON encodes the enum as an object of its keys in order. Helper
// operations and the inverted view are not part of the encoding.
func (e *Enum[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ent := range e.entities {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ent.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(ent.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *Enum[V]) String() string {
	parts := make([]string, len(e.entities))
	for i, ent := range e.entities {
		parts[i] = fmt.Sprintf("%s: %#v", ent.Key, ent.Value)
	}
	return "Enum{" + strings.Join(parts, ", ") + "}"
}
