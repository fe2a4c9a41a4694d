package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/enumily/internal/logging"
	"github.com/mesh-intelligence/enumily/internal/paths"
	"github.com/mesh-intelligence/enumily/pkg/enum"
)

// withList loads the catalog and returns the label list of the named enum.
func (a *app) withList(name string) (enum.List[any], error) {
	cat, err := a.catalog()
	if err != nil {
		return enum.List[any]{}, err
	}
	list, err := cat.List(name)
	if err != nil {
		return enum.List[any]{}, userError(err)
	}
	return list, nil
}

func newListCmd(a *app) *cobra.Command {
	var pick, omit []string

	cmd := &cobra.Command{
		Use:   "list <enum>",
		Short: "Print the labeled option list of an enum",
		Long: "Print the labeled option list of an enum. Labels come from the\n" +
			"definition, or default to the keys. --pick keeps and --omit drops the\n" +
			"given values; both may be combined.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.withList(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pick") {
				values, err := parseValues(pick)
				if err != nil {
					return err
				}
				list = list.Pick(values...)
			}
			if cmd.Flags().Changed("omit") {
				values, err := parseValues(omit)
				if err != nil {
					return err
				}
				list = list.Omit(values...)
			}
			logging.Logger.Debugw("list", logging.FieldEnum, args[0], logging.FieldCount, list.Len())

			if a.flags.jsonMode {
				return writeJSON(cmd, list)
			}
			fields := list.FieldNames()
			items := list.Items()
			rows := make([][]string, len(items))
			for i, it := range items {
				rows[i] = []string{it.Key, formatValue(it.Value), it.Label}
			}
			return writeTable(cmd, []string{fields.Key, fields.Value, fields.Label}, rows)
		},
	}

	cmd.Flags().StringSliceVar(&pick, "pick", nil, "keep only these values")
	cmd.Flags().StringSliceVar(&omit, "omit", nil, "drop these values")
	return cmd
}

func newLabelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "labels <enum> [value...]",
		Short: "Print the value to label mapping of an enum",
		Long: "Print the value to label mapping of an enum, restricted to the given\n" +
			"values when any are passed. When a value is labeled twice the later\n" +
			"label wins.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.withList(args[0])
			if err != nil {
				return err
			}
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}
			fields := labelFields(list, values)

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
			return writeTable(cmd, []string{"Value", "Label"}, rows)
		},
	}
}

// labelFields projects the list, restricted to values when any are given,
// onto object members named by the value spelling. Members keep the
// position of their first appearance and the later label wins, so 1 and "1"
// merge into one member.
func labelFields(list enum.List[any], values []any) []field {
	if len(values) > 0 {
		list = list.Pick(values...)
	}
	var fields []field
	index := make(map[string]int, list.Len())
	for _, it := range list.Items() {
		name := propertyKey(it.Value)
		if i, ok := index[name]; ok {
			fields[i].value = it.Label
			continue
		}
		index[name] = len(fields)
		fields = append(fields, field{name: name, value: it.Label})
	}
	return fields
}

// validateOutput is the JSON form of the validate command.
type validateOutput struct {
	File  string   `json:"file"`
	Valid bool     `json:"valid"`
	Enums []string `json:"enums"`
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every enum in the catalog builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := paths.ResolveCatalogFile(a.flags.file, a.cfg.File, a.configDir)
			if err != nil {
				return sysError(err)
			}
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, validateOutput{File: path, Valid: true, Enums: cat.Names()})
			}
			pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("%s: %d enums", path, cat.Len())
			return nil
		},
	}
}
