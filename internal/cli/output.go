package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/enumily/pkg/enum"
)

// field is one member of an ordered JSON object.
type field struct {
	name  string
	value any
}

// writeJSON prints v as indented JSON on stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return sysError(errors.Wrap(err, "marshal JSON"))
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return sysError(errors.Wrap(err, "indent JSON"))
	}
	buf.WriteByte('\n')
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

// orderedObject encodes fields as a JSON object, keeping their order.
func orderedObject(fields []field) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// formatValue renders an enum value for humans: strings quoted, numbers bare,
// so 1 and "1" stay distinguishable.
func formatValue(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// propertyKey renders a value as an object member name.
func propertyKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return enum.PropertyName(v)
}

// writeTable prints rows under header as a pterm table.
func writeTable(cmd *cobra.Command, header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return sysError(errors.Wrap(err, "render table"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// writeLines prints one line per item.
func writeLines(cmd *cobra.Command, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), l)
	}
}
