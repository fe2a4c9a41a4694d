package catalog

import (
	"math"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/enumily/pkg/enum"
)

// Document keys.
const (
	keyEnums    = "enums"
	keyValues   = "values"
	keyExtends  = "extends"
	keyInverted = "inverted"
	keyLabels   = "labels"
	keyFields   = "fields"
	keyValue    = "value"
	keyLabel    = "label"
)

// decode walks the YAML node tree rather than unmarshaling into maps so that
// key order and the int/string distinction of scalars survive.
func decode(data []byte) ([]*Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse catalog"), ErrMalformed)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, malformed(root, "top level must be a mapping")
	}
	enums := lookup(root, keyEnums)
	if enums == nil {
		return nil, malformed(root, "missing %q", keyEnums)
	}
	if enums.Kind != yaml.MappingNode {
		return nil, malformed(enums, "%q must be a mapping of enum names", keyEnums)
	}

	defs := make([]*Definition, 0, len(enums.Content)/2)
	for i := 0; i+1 < len(enums.Content); i += 2 {
		name, body := enums.Content[i], enums.Content[i+1]
		d, err := decodeDefinition(name.Value, body)
		if err != nil {
			return nil, errors.Wrapf(err, "enum %q", name.Value)
		}
		d.Line = name.Line
		defs = append(defs, d)
	}
	return defs, nil
}

func decodeDefinition(name string, body *yaml.Node) (*Definition, error) {
	if body.Kind != yaml.MappingNode {
		return nil, malformed(body, "definition must be a mapping")
	}
	d := &Definition{Name: name}

	for i := 0; i+1 < len(body.Content); i += 2 {
		key, val := body.Content[i], body.Content[i+1]
		switch key.Value {
		case keyValues:
			src, err := decodeValues(val)
			if err != nil {
				return nil, err
			}
			d.Values = src
		case keyExtends:
			if err := val.Decode(&d.Extends); err != nil {
				return nil, malformed(val, "%q must be an enum name", keyExtends)
			}
		case keyInverted:
			var inv bool
			if err := val.Decode(&inv); err != nil {
				return nil, malformed(val, "%q must be a boolean", keyInverted)
			}
			d.Inverted = &inv
		case keyLabels:
			labels, err := decodeLabels(val)
			if err != nil {
				return nil, err
			}
			d.Labels = labels
		case keyFields:
			if err := val.Decode(&d.Fields); err != nil {
				return nil, malformed(val, "%q must map key, value and label to field names", keyFields)
			}
		default:
			return nil, malformed(key, "unknown field %q", key.Value)
		}
	}
	return d, nil
}

// decodeValues reads the ordered key/value mapping of a definition.
func decodeValues(n *yaml.Node) (enum.Source[any], error) {
	if n.Kind != yaml.MappingNode {
		return nil, malformed(n, "%q must be a mapping of keys to values", keyValues)
	}
	src := make(enum.Source[any], 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		v, err := Scalar(val)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", key.Value)
		}
		src = append(src, enum.Entry[any]{Key: key.Value, Value: v})
	}
	return src, nil
}

// decodeLabels reads a sequence of {value, label} mappings.
func decodeLabels(n *yaml.Node) ([]enum.Pair[any], error) {
	if n.Kind != yaml.SequenceNode {
		return nil, malformed(n, "%q must be a sequence", keyLabels)
	}
	pairs := make([]enum.Pair[any], 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.MappingNode {
			return nil, malformed(item, "label entries must be mappings with %q and %q", keyValue, keyLabel)
		}
		valNode, labelNode := lookup(item, keyValue), lookup(item, keyLabel)
		if valNode == nil || labelNode == nil {
			return nil, malformed(item, "label entries need both %q and %q", keyValue, keyLabel)
		}
		v, err := Scalar(valNode)
		if err != nil {
			return nil, err
		}
		var label string
		if err := labelNode.Decode(&label); err != nil {
			return nil, malformed(labelNode, "%q must be a string", keyLabel)
		}
		pairs = append(pairs, enum.Label(v, label))
	}
	return pairs, nil
}

// Scalar converts a YAML scalar into an enum value: integers, and floats
// holding a whole number in int64 range, become int64; other floats become
// float64; strings (including quoted digits) stay strings.
func Scalar(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, malformed(n, "enum values must be scalars")
	}
	switch n.ShortTag() {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, malformed(n, "integer %q out of range", n.Value)
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, malformed(n, "invalid number %q", n.Value)
		}
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f), nil
		}
		return f, nil
	case "!!str":
		return n.Value, nil
	default:
		return nil, malformed(n, "unsupported value %q (%s); use a number or a string", n.Value, n.ShortTag())
	}
}

// ParseScalar parses text the way a catalog value is parsed, so 1 is a
// number and '1' is a string.
func ParseScalar(text string) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse value %q", text), ErrMalformed)
	}
	if len(doc.Content) == 0 {
		return "", nil
	}
	return Scalar(doc.Content[0])
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func malformed(n *yaml.Node, format string, args ...any) error {
	return errors.Wrapf(ErrMalformed, "line %d: "+format, append([]any{n.Line}, args...)...)
}
