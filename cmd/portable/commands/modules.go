package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/portable/internal/modules/portablecase"
)

func (c *CLI) newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the available report modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, m := range c.app.Modules() {
				output := "no"
				if m.RequiresOutputPath() {
					output = "yes"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\toutput path: %s\n", m.Name(), m.Description(), output)
			}
			return w.Flush()
		},
	}
}

func (c *CLI) newOptionsCmd() *cobra.Command {
	var module string
	cmd := &cobra.Command{
		Use:   "options <case>",
		Short: "List the tag names and hash sets a case offers for export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.app.Options(cmd.Context(), module, args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TAG NAME ID\tTAG NAME\tTAGS")
			for _, tn := range opts.TagNames {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%d\n", tn.ID, tn.DisplayName, tn.TagCount)
			}
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, "HASH SET ID\tHASH SET\tMEMBERS")
			for _, hs := range opts.HashSets {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%d\n", hs.ID, hs.Name, hs.MemberCount)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&module, "module", "m", portablecase.Name, "Report module to query")
	return cmd
}
