// Package enum builds enum-like values from ordered key/value records.
//
// An Enum is created from a Source, validated for unique values, and then
// queried through its methods:
//
//	direction := enum.MustNew(enum.Source[int]{
//	    {Key: "Up", Value: 1},
//	    {Key: "Down", Value: 2},
//	})
//	direction.Keys()   // [Up Down]
//	direction.Key(2)   // "Down", true
//
// # Inversion
//
// With WithInverted(true) the numeric values are also readable in reverse,
// either as a map through Inverted or by their decimal spelling through
// Lookup. String values never take part in the reverse view, although Key
// still resolves them.
//
// # Extension
//
// Extend layers new entries over an existing Enum and returns a new Enum.
// Existing entries become inherited and are listed first; the original Enum
// is unchanged.
//
// # Label lists
//
// ToList pairs values with display labels, producing a List whose records
// carry the resolved key. Lists support Pick, Omit and ValueLabelMap, and
// serialize to JSON with configurable field names.
//
// Enums are immutable once built and safe for concurrent use.
package enum
