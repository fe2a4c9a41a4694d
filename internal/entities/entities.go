// Package entities flattens layered key/value records into a single ordered
// sequence. Layers are supplied root first; every layer but the last is
// reported as inherited, and a key redefined by a later layer is reported
// only once, at its final definition.
package entities

// Pair is one key/value record of a layer.
type Pair[V any] struct {
	Key   string
	Value V
}

// Entity is a Pair tagged with its provenance.
type Entity[V any] struct {
	Key       string
	Value     V
	Inherited bool // Defined by an earlier layer than the last.
}

// position locates the final definition of a key.
type position struct {
	layer int
	index int
}

// Enumerate returns the entities of all layers, inherited entries before own
// entries. Within a layer, input order is preserved. Returns an empty, non-nil
// slice when there are no entries.
func Enumerate[V any](layers ...[]Pair[V]) []Entity[V] {
	final := make(map[string]position)
	for li, layer := range layers {
		for pi, p := range layer {
			final[p.Key] = position{layer: li, index: pi}
		}
	}

	own := len(layers) - 1
	result := make([]Entity[V], 0, len(final))
	for li, layer := range layers {
		for pi, p := range layer {
			if final[p.Key] != (position{layer: li, index: pi}) {
				continue
			}
			result = append(result, Entity[V]{
				Key:       p.Key,
				Value:     p.Value,
				Inherited: li != own,
			})
		}
	}
	return result
}

// Keys returns the keys of entities in order.
func Keys[V any](ents []Entity[V]) []string {
	keys := make([]string, len(ents))
	for i, e := range ents {
		keys[i] = e.Key
	}
	return keys
}
