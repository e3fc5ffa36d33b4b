package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"todopanel/internal/adapters/httpremote"
	"todopanel/internal/adapters/notebook"
	"todopanel/internal/adapters/sqlite"
	"todopanel/internal/application"
	"todopanel/internal/config"
	"todopanel/internal/domain"
	"todopanel/internal/ports"
)

var (
	cfgFile      string
	remoteURL    string
	notebookRoot string
	showNotebook bool

	cache *sqlite.Cache
	ctrl  *application.Controller
)

var rootCmd = &cobra.Command{
	Use:   "todopanel-cli",
	Short: "CLI for the todo panel item store",
	Long: `todopanel-cli manages the same todo items the panel shows.

Items live in a local cache and, when a remote endpoint is configured,
are kept in sync with it. Notebook TODO markers appear alongside manual
items but can only be changed by editing the notebook itself.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		config.Init(cfgFile)
		cfg := config.Load()
		if cmd.Flags().Changed("remote") {
			cfg.RemoteURL = remoteURL
		}
		if cmd.Flags().Changed("notebook-root") {
			cfg.NotebookRoot = notebookRoot
		}
		if cmd.Flags().Changed("show-notebook") {
			cfg.ShowNotebookTodos = showNotebook
		}

		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(level)
		}

		var err error
		cache, err = sqlite.Open(cfg.CachePath)
		if err != nil {
			return err
		}

		var remote ports.RemoteStore
		if cfg.RemoteURL != "" {
			remote = httpremote.NewClient(cfg.RemoteURL, nil)
		}

		ctrl = application.NewController(domain.NewStore(), cache, remote, logger)
		ctrl.SetShowNotebook(cfg.ShowNotebookTodos)
		if cfg.NotebookRoot != "" {
			ctrl.SetScanner(notebook.NewScanner(cfg.NotebookRoot, cfg.ScanTTL, logger))
		}
		ctrl.Initialize(context.Background())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if ctrl != nil {
			ctrl.Close()
		}
		if cache != nil {
			cache.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "base URL of the remote endpoint")
	rootCmd.PersistentFlags().StringVar(&notebookRoot, "notebook-root", "", "directory scanned for notebook TODO markers")
	rootCmd.PersistentFlags().BoolVar(&showNotebook, "show-notebook", false, "include notebook-derived items")
}

// GetController returns the initialized sync controller
func GetController() *application.Controller {
	return ctrl
}
