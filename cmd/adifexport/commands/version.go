package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/g3zod/adifexport/internal/output"
	"github.com/g3zod/adifexport/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		if formatName == "" {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return nil
		}
		format, err := output.ParseFormat(formatName)
		if err != nil {
			return err
		}
		if format != output.FormatJSON && format != output.FormatYAML {
			return errUnsupportedReport(format)
		}
		w, err := output.NewWriter(cmd.OutOrStdout(), format, output.WithPretty(true))
		if err != nil {
			return err
		}
		if err := w.Write(version.Get()); err != nil {
			return err
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().String("format", "", "print as json or yaml")
}

var errReportFormat = errors.New("reports are written as json or yaml")

func errUnsupportedReport(f output.Format) error {
	return fmt.Errorf("%w, not %s", errReportFormat, f)
}
