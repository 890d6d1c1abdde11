package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/portable/internal/core/domain"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <case>",
		Short: "Check that a case bundle has no dangling references and intact content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "case:    %s (%s)\n", report.CaseName, report.CaseID)
			_, _ = fmt.Fprintf(w, "objects: %d, content files: %d\n", report.Objects, report.ContentFiles)
			for _, d := range report.Dangling {
				_, _ = fmt.Fprintf(w, "  dangling %s\n", d)
			}
			for _, p := range report.MissingContent {
				_, _ = fmt.Fprintf(w, "  missing content %s\n", p)
			}
			for _, p := range report.CorruptContent {
				_, _ = fmt.Fprintf(w, "  corrupt content %s\n", p)
			}
			_, _ = fmt.Fprintf(w, "result:  %s\n", report.Summary())

			if !report.OK() {
				return domain.Annotate(domain.ErrVerificationFailed, "problems", report.Summary())
			}
			return nil
		},
	}
}
