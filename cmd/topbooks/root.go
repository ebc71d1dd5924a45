package main

import (
	"fmt"
	"log/slog"
	"path"
	"runtime"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"topbooks/internal/dataset"
	"topbooks/internal/logger"
)

type rootOptions struct {
	logLevel  string
	logFormat string
	data      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "topbooks",
		Short: "Dashboard for the Goodreads top 15 books of 2012-2021",
		Long: `topbooks loads a pre-scraped CSV of the Goodreads top 15 books per year,
normalises its rating and shelving counts and shows tables and charts of it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, thisFile, _, _ := runtime.Caller(0)

			lvl, err := logger.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}

			return logger.SetupSLog(lvl, opts.logFormat, path.Dir(path.Dir(path.Dir(thisFile))), middleware.RequestIDKey)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", logLevel, "Log level: debug, info, warn or error (LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", logFormat, "Log format: text or json (LOG_FORMAT)")
	cmd.PersistentFlags().StringVarP(&opts.data, "data", "d", datasetPath, "Path to the books CSV (DATASET_PATH)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newSummaryCmd(opts))

	return cmd
}

func (o *rootOptions) load() (*dataset.Dataset, error) {
	ds, err := dataset.Load(o.data, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("cannot load dataset: %w", err)
	}

	return ds, nil
}
