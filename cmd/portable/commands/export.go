package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/portable/internal/app"
	"go.trai.ch/portable/internal/core/domain"
	"go.trai.ch/portable/internal/modules/portablecase"
)

type exportFlags struct {
	module       string
	config       string
	source       string
	caseName     string
	tagNames     []string
	tagNameIDs   []int64
	tagIDs       []int64
	hashSets     []int64
	hashSetMode  string
	derived      bool
	tree         bool
	compression  string
	saveSettings string
}

func (c *CLI) newExportCmd() *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export <output-dir>",
		Short: "Export the selected items into a new portable case",
		Long: `Export the selected items into a new portable case under <output-dir>.

Settings are read from --config, or from the nearest portable.yaml when neither
--config nor --source is given. Selection flags override the loaded settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.exportSettings(cmd, &f)
			if err != nil {
				return err
			}

			result, err := c.app.Export(cmd.Context(), app.ExportOptions{
				Module:         f.module,
				OutputTarget:   args[0],
				Settings:       settings,
				SaveSettingsTo: f.saveSettings,
			})
			if result != nil {
				printResult(cmd.OutOrStdout(), result)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.module, "module", "m", portablecase.Name, "Report module to run")
	flags.StringVarP(&f.config, "config", "c", "", "Settings file to export with")
	flags.StringVarP(&f.source, "source", "s", "", "Case to export from")
	flags.StringVarP(&f.caseName, "name", "n", "", "Name of the portable case directory")
	flags.StringSliceVarP(&f.tagNames, "tag", "t", nil, "Export every item tagged with this tag name")
	flags.Int64SliceVar(&f.tagNameIDs, "tag-name-id", nil, "Export every item tagged with this tag name id")
	flags.Int64SliceVar(&f.tagIDs, "tag-id", nil, "Export the item of this tag")
	flags.Int64SliceVar(&f.hashSets, "hash-set", nil, "Hash set to filter by or include")
	flags.StringVar(&f.hashSetMode, "hash-set-mode", "", "How hash sets combine with tags: filter or include")
	flags.BoolVar(&f.derived, "include-derived", false, "Export every artifact derived from an exported file")
	flags.BoolVar(&f.tree, "preserve-tree", false, "Export the parent directories of every file")
	flags.StringVar(&f.compression, "compression", "", "Payload compression: none or zstd")
	flags.StringVar(&f.saveSettings, "save-settings", "", "Write the settings used to this file after a successful export")
	return cmd
}

// exportSettings loads settings when asked to and applies every flag the user set.
func (c *CLI) exportSettings(cmd *cobra.Command, f *exportFlags) (*domain.PortableCaseSettings, error) {
	flags := cmd.Flags()

	settings := domain.DefaultPortableCaseSettings()
	if f.config != "" || !flags.Changed("source") {
		loaded, err := c.app.LoadSettings(f.config)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if flags.Changed("source") {
		settings.Source = f.source
	}
	if flags.Changed("name") {
		settings.CaseName = f.caseName
	}
	if flags.Changed("tag") {
		settings.Selection.TagNames = f.tagNames
	}
	if flags.Changed("tag-name-id") {
		settings.Selection.TagNameIDs = f.tagNameIDs
	}
	if flags.Changed("tag-id") {
		settings.Selection.TagIDs = f.tagIDs
	}
	if flags.Changed("hash-set") {
		settings.Selection.HashSetIDs = f.hashSets
	}
	if flags.Changed("hash-set-mode") {
		settings.Selection.HashSetMode = domain.HashSetMode(f.hashSetMode)
	}
	if flags.Changed("include-derived") {
		settings.Selection.IncludeDerivedArtifacts = f.derived
	}
	if flags.Changed("preserve-tree") {
		settings.Selection.PreserveDirectoryTree = f.tree
	}
	if flags.Changed("compression") {
		settings.Content.Compression = domain.Compression(f.compression)
	}
	return settings, nil
}

func printResult(w io.Writer, r *domain.BuildResult) {
	_, _ = fmt.Fprintf(w, "status:   %s\n", r.Status)
	if r.CasePath != "" {
		_, _ = fmt.Fprintf(w, "case:     %s (%s)\n", r.CasePath, r.CaseID)
	}
	_, _ = fmt.Fprintf(w, "objects:  %d written, %d skipped\n", r.ObjectsWritten, len(r.Errors))
	_, _ = fmt.Fprintf(w, "content:  %d stored, %d deduplicated, %d bytes\n",
		r.ContentStored, r.ContentDeduplicated, r.BytesCopied)
	_, _ = fmt.Fprintf(w, "duration: %s\n", r.Duration.Round(time.Millisecond))
	for _, e := range r.Errors {
		_, _ = fmt.Fprintf(w, "  skipped %s\n", e.Error())
	}
	if r.Err != nil {
		_, _ = fmt.Fprintf(w, "error:    %v\n", r.Err)
	}
}
