package command

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"onenight/internal/engine"
)

func NewRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the role catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tTYPE\tNIGHT\tCOPIES")
			for _, def := range engine.NewRegistry().Defs() {
				r := def.New()
				night := "-"
				if p := r.Priorities(); len(p) > 0 {
					night = fmt.Sprint(p[0])
				}
				copies := fmt.Sprint(def.Min)
				if def.Max != def.Min {
					copies = fmt.Sprintf("%d-%d", def.Min, def.Max)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Name, r.Type(), night, copies)
			}
			return w.Flush()
		},
	}
}
