// Package commands implements the CLI commands for adifexport.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/g3zod/adifexport/internal/config"
	"github.com/g3zod/adifexport/internal/logger"
	"github.com/g3zod/adifexport/pkg/adif"
)

var rootCmd = &cobra.Command{
	Use:   "adifexport",
	Short: "Export the tables of an ADIF Specification document",
	Long: `adifexport reads an ADIF Specification XHTML document and exports its
data types, enumerations and fields as CSV, TSV, XLSX, Parquet, XML, JSON
and YAML files.

Examples:
  # Export a downloaded specification into ./exports
  adifexport export ADIF_315.htm

  # Fetch the specification and export only CSV and JSON
  adifexport export --url https://adif.org/315/ADIF_315.htm --formats csv,json

  # Show which tables a document contains
  adifexport inspect ADIF_315.htm

  # Upload an exports tree to an S3-compatible bucket
  adifexport publish exports --endpoint https://s3.example.com --bucket adif`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.adifexport.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("json-logs", false, "write logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(config.Name)
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// initLogging configures the logger and tags the run before any command
// does work.
func initLogging(_ *cobra.Command, _ []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("json_logs"),
	})
	logger.WithRun(uuid.NewString())
	if f := viper.ConfigFileUsed(); f != "" {
		logger.Debug("config file loaded", "path", f)
	}
	return nil
}

// loadConfig validates the merged flag, environment and file settings.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	switch {
	case err == nil:
	case errors.Is(err, adif.ErrUserDeclined):
		fmt.Fprintln(os.Stderr, "export cancelled")
	default:
		logger.Error("command failed", "error", err)
		logError("%v", err)
	}
	return err
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// progress forwards library progress messages to stderr.
func progress(msg string) {
	logInfo("%s", msg)
}
