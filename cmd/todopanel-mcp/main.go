package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"todopanel/internal/adapters/httpremote"
	mcpadapter "todopanel/internal/adapters/mcp"
	"todopanel/internal/adapters/notebook"
	"todopanel/internal/adapters/sqlite"
	"todopanel/internal/application"
	"todopanel/internal/config"
	"todopanel/internal/domain"
	"todopanel/internal/ports"
)

func main() {
	cfgFlag := flag.String("config", "", "path to the config file")
	flag.Parse()

	config.Init(*cfgFlag)
	cfg := config.Load()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	cache, err := sqlite.Open(cfg.CachePath)
	if err != nil {
		log.Fatalf("todopanel-mcp: %v", err)
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
	ctrl.Initialize(context.Background())
	defer ctrl.Close()

	mcpServer := server.NewMCPServer(
		"todopanel-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, ctrl)
	mcpadapter.RegisterWriteTools(mcpServer, ctrl)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("todopanel-mcp: %v", err)
	}
}
