package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/enumily/internal/logging"
)

func newNamesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List the enums declared in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, cat.Names())
			}
			writeLines(cmd, cat.Names())
			return nil
		},
	}
}

// showEntity is the JSON form of one entry.
type showEntity struct {
	Key       string `json:"key"`
	Value     any    `json:"value"`
	Inherited bool   `json:"inherited"`
}

// showOutput is the JSON form of the show command.
type showOutput struct {
	Name     string          `json:"name"`
	Extends  string          `json:"extends,omitempty"`
	Inverted bool            `json:"inverted"`
	Length   int             `json:"length"`
	Enum     json.RawMessage `json:"enum"`
	Entries  []showEntity    `json:"entries"`
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <enum>",
		Short: "Display an enum with all its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			e, err := cat.Get(name)
			if err != nil {
				return userError(err)
			}
			def, err := cat.Definition(name)
			if err != nil {
				return userError(err)
			}
			logging.Logger.Debugw("show", logging.FieldEnum, name, logging.FieldCount, e.Len())

			ents := e.Entries()
			if a.flags.jsonMode {
				raw, err := e.MarshalJSON()
				if err != nil {
					return sysError(err)
				}
				out := showOutput{
					Name:     name,
					Extends:  def.Extends,
					Inverted: e.IsInverted(),
					Length:   e.Len(),
					Enum:     raw,
					Entries:  make([]showEntity, len(ents)),
				}
				for i, ent := range ents {
					out.Entries[i] = showEntity{Key: ent.Key, Value: ent.Value, Inherited: ent.Inherited}
				}
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Name:      %s\n", name)
			if def.Extends != "" {
				fmt.Fprintf(w, "Extends:   %s\n", def.Extends)
			}
			fmt.Fprintf(w, "Inverted:  %t\n", e.IsInverted())
			fmt.Fprintf(w, "Length:    %d\n\n", e.Len())

			rows := make([][]string, len(ents))
			for i, ent := range ents {
				rows[i] = []string{ent.Key, formatValue(ent.Value), strconv.FormatBool(ent.Inherited)}
			}
			return writeTable(cmd, []string{"Key", "Value", "Inherited"}, rows)
		},
	}
}
