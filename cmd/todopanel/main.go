package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"todopanel/internal/adapters/editor"
	"todopanel/internal/adapters/httpremote"
	"todopanel/internal/adapters/notebook"
	"todopanel/internal/adapters/sqlite"
	"todopanel/internal/adapters/tui"
	"todopanel/internal/application"
	"todopanel/internal/config"
	"todopanel/internal/domain"
	"todopanel/internal/ports"
)

func main() {
	config.Init(os.Getenv("TODOPANEL_CONFIG"))
	cfg := config.Load()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	// The terminal belongs to the panel; route logs to a file if asked,
	// otherwise drop them.
	logger.SetOutput(io.Discard)
	if logPath := os.Getenv("TODOPANEL_LOG_FILE"); logPath != "" {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			logger.SetOutput(f)
			defer f.Close()
		}
	}

	cache, err := sqlite.Open(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cache.Close()

	var remote ports.RemoteStore
	if cfg.RemoteURL != "" {
		remote = httpremote.NewClient(cfg.RemoteURL, nil)
	}

	ctrl := application.NewController(domain.NewStore(), cache, remote, logger)
	ctrl.SetShowNotebook(cfg.ShowNotebookTodos)
	if cfg.NotebookRoot != "" {
		ctrl.SetScanner(notebook.NewScanner(cfg.NotebookRoot, cfg.ScanTTL, logger))
	}

	app := tui.NewApp(ctrl, editor.NewOpener(), cfg.NotebookRoot)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
