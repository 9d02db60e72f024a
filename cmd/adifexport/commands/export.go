package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/g3zod/adifexport/internal/logger"
	"github.com/g3zod/adifexport/internal/output"
	"github.com/g3zod/adifexport/pkg/adif"
	"github.com/g3zod/adifexport/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the specification tables to files",
	Long: `Export reads an ADIF Specification XHTML document and writes its tables
below the exports directory, one subdirectory per format.

The exports directory is deleted and recreated on every run.

Examples:
  adifexport export ADIF_315.htm
  adifexport export ADIF_315.htm --exports-dir out --formats csv,xlsx
  adifexport export --url https://adif.org/315/ADIF_315.htm --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()
	flags.StringP("url", "u", "", "download the document from this URL")
	flags.StringP("exports-dir", "o", "exports", "directory the exports are written to")
	flags.StringSliceP("formats", "f", nil, "formats to write: csv, tsv, xlsx, parquet, xml, json, yaml (default all)")
	flags.BoolP("yes", "y", false, "export annotated specifications without asking")
	flags.Bool("skip-verify", false, "do not re-read the merged files after exporting")
	flags.String("max-size", "32MB", "largest document accepted from --url (e.g. 32MB, 0=unlimited)")
	flags.Duration("timeout", 0, "download timeout (default 30s)")

	_ = viper.BindPFlag("exports_dir", flags.Lookup("exports-dir"))
	_ = viper.BindPFlag("formats", flags.Lookup("formats"))
	_ = viper.BindPFlag("yes", flags.Lookup("yes"))
	_ = viper.BindPFlag("skip_verify", flags.Lookup("skip-verify"))
	_ = viper.BindPFlag("fetch.max_size", flags.Lookup("max-size"))
	_ = viper.BindPFlag("fetch.timeout", flags.Lookup("timeout"))
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	formats, err := output.ParseFormats(cfg.Formats)
	if err != nil {
		return err
	}
	logger.Debug("export command starting", "formats", cfg.Formats, "exports_dir", cfg.ExportsDir)

	rawURL, _ := cmd.Flags().GetString("url")
	doc, err := loadDocument(ctx, cfg, args, rawURL)
	if err != nil {
		return err
	}

	spec, err := adif.Load(ctx, doc,
		adif.WithConfirm(newPrompter(cfg.AssumeYes).Confirm),
		adif.WithProgress(progress),
	)
	if err != nil {
		return err
	}

	summary, err := export.New(spec,
		export.WithRoot(cfg.ExportsDir),
		export.WithFormats(formats...),
		export.WithProgress(progress),
		export.WithSkipVerify(cfg.SkipVerify),
	).Export(ctx)
	if err != nil {
		return err
	}

	logger.Info("export complete",
		"version", spec.Version,
		"status", spec.Status,
		"files", summary.Files,
		"bytes", summary.Bytes)
	logInfo("Exported %s tables with %s records from %s ADIF Specification %s to %s (%d files, %s)",
		humanize.Comma(int64(summary.Tables)),
		humanize.Comma(int64(summary.Rows)),
		spec.Status, spec.Version,
		summary.Root, summary.Files,
		humanize.Bytes(uint64(summary.Bytes)))
	return nil
}
