package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/core/tables"
)

var (
	columnsFile   string
	columnsOutput string
)

var columnsCmd = &cobra.Command{
	Use:   "columns [table]",
	Short: "List the table catalog or the columns of one table",
	Long: "Without arguments, lists every table of the catalog. With a table key,\n" +
		"lists its columns with their defaults. --file validates and merges an\n" +
		"override catalog first, the same way the server does at startup.",
	Example: "  hrconsole columns\n  hrconsole columns employees -o yaml\n  hrconsole columns --file columns.yaml",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := tables.Builtin()
		if columnsFile != "" {
			overrides, err := tables.LoadFile(columnsFile)
			if err != nil {
				return err
			}
			defs = tables.Merge(defs, overrides)
		}

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			return printTables(out, defs, columnsOutput)
		}

		i := slices.IndexFunc(defs, func(d core.TableDefinition) bool { return d.Info.Key == args[0] })
		if i < 0 {
			return fmt.Errorf("%w: %s", core.ErrTableNotFound, args[0])
		}
		return printColumns(out, defs[i], columnsOutput)
	},
}

func init() {
	columnsCmd.Flags().StringVar(&columnsFile, "file", "", "YAML catalog merged over the built-in tables")
	columnsCmd.Flags().StringVarP(&columnsOutput, "output", "o", "table", "output format: table|yaml|json")
}

func printTables(w io.Writer, defs []core.TableDefinition, format string) error {
	switch format {
	case "yaml", "json":
		return encode(w, format, map[string]any{"tables": defs})
	case "table":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tGROUP\tLABEL\tCOLUMNS\tGROUPED")
	for _, def := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			def.Info.Key, def.Info.Group, def.Info.Label, len(def.Columns), yesNo(len(def.AttributeKeys) > 0))
	}
	return tw.Flush()
}

func printColumns(w io.Writer, def core.TableDefinition, format string) error {
	switch format {
	case "yaml", "json":
		return encode(w, format, def)
	case "table":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	pref := core.DefaultPreference(def)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTITLE\tFORMAT\tWIDTH\tPINNED\tGROUP\tVISIBLE\tFIXED")
	for _, col := range def.Columns {
		colFormat := col.Format
		if colFormat == "" {
			colFormat = core.FormatText
		}
		width := "-"
		if col.Width > 0 {
			width = strconv.Itoa(col.Width)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			col.Key, col.Title, colFormat, width, dash(col.Pinned), dash(col.Group),
			yesNo(slices.Contains(pref.ActiveKeys, col.Key)),
			yesNo(slices.Contains(def.Fixed, col.Key)))
	}
	return tw.Flush()
}

func encode(w io.Writer, format string, v any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
