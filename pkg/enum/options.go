package enum

// Option configures New and Extend.
type Option func(*options)

type options struct {
	inverted bool
}

// WithInverted exposes the numeric value to key reverse view through
// Inverted and Lookup. Off by default.
func WithInverted(inverted bool) Option {
	return func(o *options) {
		o.inverted = inverted
	}
}

// Default label list field names.
const (
	DefaultKeyField   = "key"
	DefaultValueField = "value"
	DefaultLabelField = "label"
)

// FieldNames names the fields of a serialized label list record.
type FieldNames struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// DefaultFieldNames returns key, value and label.
func DefaultFieldNames() FieldNames {
	return FieldNames{
		Key:   DefaultKeyField,
		Value: DefaultValueField,
		Label: DefaultLabelField,
	}
}

// withDefaults fills empty names with their defaults.
func (f FieldNames) withDefaults() FieldNames {
	if f.Key == "" {
		f.Key = DefaultKeyField
	}
	if f.Value == "" {
		f.Value = DefaultValueField
	}
	if f.Label == "" {
		f.Label = DefaultLabelField
	}
	return f
}

// ListOption configures ToList.
type ListOption func(*listOptions)

type listOptions struct {
	fields FieldNames
}

// WithFieldNames renames the fields used when a List is serialized. Empty
// names keep their default.
func WithFieldNames(fields FieldNames) ListOption {
	return func(o *listOptions) {
		o.fields = fields.withDefaults()
	}
}
