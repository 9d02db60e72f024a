package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/g3zod/adifexport/internal/logger"
	"github.com/g3zod/adifexport/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish [exports-dir]",
	Short: "Upload an exports tree to an S3-compatible bucket",
	Long: `Publish uploads every file below the exports directory to a bucket,
keyed {prefix}/{version}/{path}. The version is read from json/all.json
unless --adif-version is given.

Credentials are read from the config file or the ADIFEXPORT_PUBLISH_ACCESS_KEY
and ADIFEXPORT_PUBLISH_SECRET_KEY environment variables.

Examples:
  adifexport publish exports --endpoint https://s3.example.com --bucket adif
  adifexport publish --endpoint http://localhost:9000 --bucket adif --prefix specs
  adifexport publish exports --local /tmp/bucket --bucket adif`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	flags := publishCmd.Flags()
	flags.String("endpoint", "", "object storage endpoint URL")
	flags.String("bucket", "", "bucket name")
	flags.String("prefix", "adif", "object key prefix")
	flags.String("region", "us-east-1", "bucket region")
	flags.String("adif-version", "", "version used in object keys (default read from json/all.json)")
	flags.String("local", "", "copy into this directory instead of uploading")

	_ = viper.BindPFlag("publish.endpoint", flags.Lookup("endpoint"))
	_ = viper.BindPFlag("publish.bucket", flags.Lookup("bucket"))
	_ = viper.BindPFlag("publish.prefix", flags.Lookup("prefix"))
	_ = viper.BindPFlag("publish.region", flags.Lookup("region"))
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root := cfg.ExportsDir
	if len(args) == 1 {
		root = args[0]
	}

	adifVersion, _ := cmd.Flags().GetString("adif-version")
	if adifVersion == "" {
		if adifVersion, err = publish.ExportVersion(root); err != nil {
			return err
		}
	}

	var store publish.Store
	if local, _ := cmd.Flags().GetString("local"); local != "" {
		if cfg.Publish.Bucket == "" {
			return publish.ErrBucketRequired
		}
		store = publish.NewLocalStore(local)
	} else {
		if err := cfg.RequirePublish(); err != nil {
			return err
		}
		if store, err = publish.NewS3Store(cfg.Publish); err != nil {
			return err
		}
	}

	logger.Debug("publish command starting", "root", root, "bucket", cfg.Publish.Bucket, "prefix", cfg.Publish.Prefix, "version", adifVersion)
	res, err := publish.New(store, cfg.Publish.Bucket,
		publish.WithPrefix(cfg.Publish.Prefix),
		publish.WithProgress(progress),
	).Publish(ctx, root, adifVersion)
	if err != nil {
		return err
	}

	logger.Info("publish complete", "bucket", res.Bucket, "objects", res.Objects, "bytes", res.Bytes)
	logInfo("Published %s objects (%s) to bucket %s",
		humanize.Comma(int64(res.Objects)), humanize.Bytes(uint64(res.Bytes)), res.Bucket)
	return nil
}
