package enum

import (
	"bytes"
	"encoding/json"
)

// Pair associates an enum value with a display label.
type Pair[V comparable] struct {
	Value V
	Label string
}

// Label builds a Pair. V is inferred from value.
func Label[V comparable](value V, label string) Pair[V] {
	return Pair[V]{Value: value, Label: label}
}

// Item is one record of a List. Key is resolved from the enum; HasKey is
// false when the value is not defined by the enum, in which case Key is
// empty and the record is still kept.
type Item[V comparable] struct {
	Key    string
	HasKey bool
	Value  V
	Label  string
}

// List is an ordered label list produced by ToList. Its operations never
// modify the receiver.
type List[V comparable] struct {
	items  []Item[V]
	fields FieldNames
}

// ToList builds a List with one record per pair, in the order of pairs. The
// key of each record comes from Key(pair.Value); value and label are copied
// as given.
func (e *Enum[V]) ToList(pairs []Pair[V], opts ...ListOption) List[V] {
	o := listOptions{fields: DefaultFieldNames()}
	for _, opt := range opts {
		opt(&o)
	}

	items := make([]Item[V], len(pairs))
	for i, p := range pairs {
		key, ok := e.Key(p.Value)
		items[i] = Item[V]{
			Key:    key,
			HasKey: ok,
			Value:  p.Value,
			Label:  p.Label,
		}
	}
	return List[V]{items: items, fields: o.fields}
}

// Len returns the number of records.
func (l List[V]) Len() int {
	return len(l.items)
}

// Items returns a copy of the records.
func (l List[V]) Items() []Item[V] {
	out := make([]Item[V], len(l.items))
	copy(out, l.items)
	return out
}

// Labels returns the labels in order.
func (l List[V]) Labels() []string {
	out := make([]string, len(l.items))
	for i, it := range l.items {
		out[i] = it.Label
	}
	return out
}

// FieldNames returns the names used by MarshalJSON.
func (l List[V]) FieldNames() FieldNames {
	return l.fields
}

// Pick returns the records whose value equals one of values, in list order.
// Equality is that of Key; records holding invalid values never match.
func (l List[V]) Pick(values ...V) List[V] {
	return l.filter(values, true)
}

// Omit returns the records whose value equals none of values, in list order.
// Pick and Omit with the same values partition the list.
func (l List[V]) Omit(values ...V) List[V] {
	return l.filter(values, false)
}

func (l List[V]) filter(values []V, keep bool) List[V] {
	items := make([]Item[V], 0, len(l.items))
	for _, it := range l.items {
		if includes(values, it.Value) == keep {
			items = append(items, it)
		}
	}
	return List[V]{items: items, fields: l.fields}
}

func includes[V comparable](values []V, v V) bool {
	for _, x := range values {
		if sameValue(x, v) {
			return true
		}
	}
	return false
}

// ValueLabelMap maps record values to labels. Without arguments every record
// is included; otherwise only records matching values. When two records share
// a value the later one wins.
func (l List[V]) ValueLabelMap(values ...V) map[V]string {
	src := l
	if len(values) > 0 {
		src = l.Pick(values...)
	}
	out := make(map[V]string, len(src.items))
	for _, it := range src.items {
		if classify(it.Value) == kindInvalid {
			continue
		}
		out[it.Value] = it.Label
	}
	return out
}

// MarshalJSON encodes the list as an array of objects using the configured
// field names. Records without a key omit the key field.
func (l List[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, it := range l.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := l.writeItem(&buf, it); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (l List[V]) writeItem(buf *bytes.Buffer, it Item[V]) error {
	type field struct {
		name  string
		value any
	}
	fields := make([]field, 0, 3)
	if it.HasKey {
		fields = append(fields, field{l.fields.Key, it.Key})
	}
	fields = append(fields,
		field{l.fields.Value, it.Value},
		field{l.fields.Label, it.Label},
	)

	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.name)
		if err != nil {
			return err
		}
		value, err := json.Marshal(f.value)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return nil
}
