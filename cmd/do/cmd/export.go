package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devfolio/devfolio/internal/app"
	"github.com/devfolio/devfolio/internal/config"
	"github.com/devfolio/devfolio/internal/export"
	"github.com/devfolio/devfolio/internal/logger"
	"github.com/devfolio/devfolio/internal/storage"
)

func ExportCmd() *cobra.Command {
	var out string
	var clean bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the site to static files",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runExport(cmd.Context(), out, clean)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	cmd.Flags().BoolVar(&clean, "clean", true, "remove the output directory first")
	return cmd
}

func PublishCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the site and upload it to the S3 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runExport(cmd.Context(), out, true)
			if err != nil {
				return err
			}

			cfg.RequireS3()
			store, err := storage.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			stats, err := export.Publish(cmd.Context(), store, out)
			if err != nil {
				return err
			}
			fmt.Printf("published %d files to %s, removed %d stale\n", stats.Uploaded, store.URL(""), stats.Deleted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	return cmd
}

func runExport(ctx context.Context, out string, clean bool) (*config.Config, error) {
	cfg := config.Load()
	logger.Init(logger.Options{IsDev: true})

	if clean {
		err := os.RemoveAll(out)
		if err != nil {
			return nil, fmt.Errorf("failed to clean %s: %w", out, err)
		}
	}

	a, err := app.NewContent(cfg)
	if err != nil {
		return nil, err
	}

	files, err := export.Site(ctx, a, out)
	if err != nil {
		return nil, err
	}
	fmt.Printf("exported %d files to %s\n", len(files), out)
	return cfg, nil
}
