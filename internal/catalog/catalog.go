// Package catalog loads named enum definitions from a YAML or JSON file and
// builds them with the enum package, resolving extends chains and label
// declarations.
package catalog

import (
	"os"

	"github.com/cockroachdb/errors"

	"github.com/mesh-intelligence/enumily/internal/logging"
	"github.com/mesh-intelligence/enumily/pkg/enum"
)

// Catalog errors.
var (
	ErrMalformed     = errors.New("malformed catalog")
	ErrUnknownEnum   = errors.New("unknown enum")
	ErrUnknownParent = errors.New("extends an unknown enum")
	ErrExtendsCycle  = errors.New("extends cycle")
)

// Definition is one entry of the catalog file as declared.
type Definition struct {
	Name     string
	Extends  string
	Inverted *bool // nil inherits from the parent, or false
	Values   enum.Source[any]
	Labels   []enum.Pair[any]
	Fields   enum.FieldNames
	Line     int // line of the definition in the file, 0 when unknown
}

// HasLabels reports whether the definition declares labels.
func (d *Definition) HasLabels() bool {
	return d.Labels != nil
}

// Catalog is a set of built enums in declaration order.
type Catalog struct {
	order []string
	defs  map[string]*Definition
	enums map[string]*enum.Enum[any]
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load catalog %s", path)
	}
	logging.Logger.Debugw("catalog loaded", logging.FieldFile, path, logging.FieldCount, len(c.order))
	return c, nil
}

// Parse decodes a catalog document and builds every enum it declares. The
// first definition that fails to build aborts the parse.
func Parse(data []byte) (*Catalog, error) {
	defs, err := decode(data)
	if err != nil {
		return nil, err
	}
	return Build(defs)
}

// Build constructs enums from definitions. Parents are built before their
// children regardless of declaration order.
func Build(defs []*Definition) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(defs)),
		defs:  make(map[string]*Definition, len(defs)),
		enums: make(map[string]*enum.Enum[any], len(defs)),
	}
	for _, d := range defs {
		if _, dup := c.defs[d.Name]; dup {
			return nil, errors.Wrapf(ErrMalformed, "enum %q declared twice", d.Name)
		}
		c.defs[d.Name] = d
		c.order = append(c.order, d.Name)
	}

	for _, name := range c.order {
		if _, err := c.build(name, nil); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// build resolves one enum, building its ancestors first. path holds the
// names currently being resolved, for cycle detection.
func (c *Catalog) build(name string, path []string) (*enum.Enum[any], error) {
	if e, ok := c.enums[name]; ok {
		return e, nil
	}
	for _, p := range path {
		if p == name {
			return nil, errors.WithHint(
				errors.Wrapf(ErrExtendsCycle, "%v -> %s", path, name),
				"remove one of the extends references",
			)
		}
	}
	d := c.defs[name]

	var opts []enum.Option
	if d.Inverted != nil {
		opts = append(opts, enum.WithInverted(*d.Inverted))
	}

	var (
		e   *enum.Enum[any]
		err error
	)
	if d.Extends == "" {
		e, err = enum.New(d.Values, opts...)
	} else {
		if _, ok := c.defs[d.Extends]; !ok {
			return nil, errors.WithHintf(
				errors.Wrapf(ErrUnknownParent, "enum %q extends %q", name, d.Extends),
				"declared enums: %v", c.order,
			)
		}
		parent, perr := c.build(d.Extends, append(path, name))
		if perr != nil {
			return nil, perr
		}
		logging.Logger.Debugw("extending enum", logging.FieldEnum, name, logging.FieldParent, d.Extends)
		e, err = parent.Extend(d.Values, opts...)
	}
	if err != nil {
		err = errors.Wrapf(err, "enum %q", name)
		if errors.Is(err, enum.ErrDuplicateValue) {
			err = errors.WithHint(err, "every value, including inherited ones, must appear once")
		}
		return nil, err
	}

	c.enums[name] = e
	return e, nil
}

// Names returns the enum names in declaration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of enums.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Get returns the named enum.
func (c *Catalog) Get(name string) (*enum.Enum[any], error) {
	e, ok := c.enums[name]
	if !ok {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrUnknownEnum, "%q", name),
			"declared enums: %v", c.order,
		)
	}
	return e, nil
}

// Definition returns the named definition as declared.
func (c *Catalog) Definition(name string) (*Definition, error) {
	d, ok := c.defs[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEnum, "%q", name)
	}
	return d, nil
}

// List returns the label list of the named enum. Declared labels are used as
// given; without labels every key labels its own value, in key order.
func (c *Catalog) List(name string) (enum.List[any], error) {
	e, err := c.Get(name)
	if err != nil {
		return enum.List[any]{}, err
	}
	d := c.defs[name]

	pairs := d.Labels
	if !d.HasLabels() {
		ents := e.Entries()
		pairs = make([]enum.Pair[any], len(ents))
		for i, ent := range ents {
			pairs[i] = enum.Label(ent.Value, ent.Key)
		}
	}
	return e.ToList(pairs, enum.WithFieldNames(d.Fields)), nil
}
