package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"athena/internal/builtins"
)

func newBuiltinsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "builtins",
		Short: "List the functions expressions can call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuiltins(cmd, a)
		},
	}
	cmd.Flags().String("format", "", "output format (pretty|json)")
	return cmd
}

type builtinJSON struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
	Arity  int      `json:"arity"`
}

func runBuiltins(cmd *cobra.Command, a *app) error {
	format, err := a.outputFormat(cmd)
	if err != nil {
		return err
	}
	reg := builtins.Default()
	out := cmd.OutOrStdout()

	if format == "json" {
		list := make([]builtinJSON, 0, reg.Len())
		for _, name := range reg.Names() {
			d, _ := reg.Lookup(name)
			list = append(list, builtinJSON{Name: d.Name, Params: d.Params, Arity: d.Arity()})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range reg.Names() {
		d, _ := reg.Lookup(name)
		fmt.Fprintf(tw, "%s\t%d\n", d, d.Arity())
	}
	return tw.Flush()
}
