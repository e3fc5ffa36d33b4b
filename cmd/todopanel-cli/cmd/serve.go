package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"todopanel/internal/adapters/notebook"
	"todopanel/internal/adapters/rest"
	"todopanel/internal/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve todo items over HTTP",
	Long: `Serve the todo item endpoint other panels sync against.

Examples:
  todopanel-cli serve
  todopanel-cli serve --addr localhost:9000`,
	// The root hook would open the cache and sync against ourselves;
	// the server only needs config, a logger, and the scanner.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Init(cfgFile)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}
		if cmd.Flags().Changed("notebook-root") {
			cfg.NotebookRoot = notebookRoot
		}

		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(level)
		}

		scanner := notebook.NewScanner(cfg.NotebookRoot, cfg.ScanTTL, logger)
		srv := rest.NewServer(cfg.StoragePath, scanner, logger)

		logger.WithField("addr", cfg.ListenAddr).Info("serving todo items")
		return srv.Run(cfg.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "bind address, overrides the config")
	rootCmd.AddCommand(serveCmd)
}
