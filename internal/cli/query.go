package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/enumily/internal/catalog"
	"github.com/mesh-intelligence/enumily/internal/logging"
	"github.com/mesh-intelligence/enumily/pkg/enum"
)

// ErrNotFound is returned when a key, value or property is absent.
var ErrNotFound = errors.New("not found")

// withEnum loads the catalog and returns the named enum.
func (a *app) withEnum(name string) (*enum.Enum[any], error) {
	cat, err := a.catalog()
	if err != nil {
		return nil, err
	}
	e, err := cat.Get(name)
	if err != nil {
		return nil, userError(err)
	}
	return e, nil
}

// parseValues parses command-line text into enum values.
func parseValues(texts []string) ([]any, error) {
	values := make([]any, len(texts))
	for i, t := range texts {
		v, err := catalog.ParseScalar(t)
		if err != nil {
			return nil, userError(errors.WithHint(err, "quote a value to pass it as a string, e.g. \"'1'\""))
		}
		values[i] = v
	}
	return values, nil
}

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <enum>",
		Short: "Print the keys of an enum in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.withEnum(args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, e.Keys())
			}
			writeLines(cmd, e.Keys())
			return nil
		},
	}
}

func newValuesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "values <enum>",
		Short: "Print the values of an enum in key order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.withEnum(args[0])
			if err != nil {
				return err
			}
			values := e.Values()
			if a.flags.jsonMode {
				return writeJSON(cmd, values)
			}
			lines := make([]string, len(values))
			for i, v := range values {
				lines[i] = formatValue(v)
			}
			writeLines(cmd, lines)
			return nil
		},
	}
}

func newGetValueCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get-value <enum> <key>",
		Short: "Print the value of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.withEnum(args[0])
			if err != nil {
				return err
			}
			v, ok := e.Value(args[1])
			if !ok {
				logging.Logger.Debugw("key miss", logging.FieldEnum, args[0], "key", args[1])
				return userError(errors.Wrapf(ErrNotFound, "key %q in enum %q", args[1], args[0]))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, v)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			return nil
		},
	}
}

func newGetKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get-key <enum> <value>",
		Short: "Print the key of a value",
		Long: "Print the key of a value. The value is parsed like a catalog value:\n" +
			"1 is a number and '1' is a string.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.withEnum(args[0])
			if err != nil {
				return err
			}
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}
			k, ok := e.Key(values[0])
			if !ok {
				logging.Logger.Debugw("value miss", logging.FieldEnum, args[0], "value", values[0])
				return userError(errors.Wrapf(ErrNotFound, "value %s in enum %q", formatValue(values[0]), args[0]))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, k)
			}
			fmt.Fprintln(cmd.OutOrStdout(), k)
			return nil
		},
	}
}

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <enum> <property>",
		Short: "Read a property of an enum",
		Long: "Read a property of an enum: a key yields its value. On an inverted enum\n" +
			"the spelling of a numeric value yields its key.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.withEnum(args[0])
			if err != nil {
				return err
			}
			v, ok := e.Lookup(args[1])
			if !ok {
				return userError(errors.Wrapf(ErrNotFound, "property %q in enum %q", args[1], args[0]))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, v)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			return nil
		},
	}
}

func newInvertedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inverted <enum>",
		Short: "Print the value to key mapping of an inverted enum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.withEnum(args[0])
			if err != nil {
				return err
			}
			if !e.IsInverted() {
				return userError(errors.WithHint(
					errors.Newf("enum %q is not inverted", args[0]),
					"set \"inverted: true\" on the definition"))
			}

			inv := e.Inverted()
			var fields []field
			for _, ent := range e.Entries() {
				if k, ok := inv[ent.Value]; ok && k == ent.Key {
					fields = append(fields, field{name: enum.PropertyName(ent.Value), value: k})
				}
			}
			if a.flags.jsonMode {
				raw, err := orderedObject(fields)
				if err != nil {
					return sysError(err)
				}
				return writeJSON(cmd, raw)
			}
			rows := make([][]string, len(fields))
			for i, f := range fields {
				rows[i] = []string{f.name, f.value.(string)}
			}
			return writeTable(cmd, []string{"Value", "Key"}, rows)
		},
	}
}
