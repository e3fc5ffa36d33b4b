package main

import (
	"flag"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"todopanel/internal/adapters/notebook"
	"todopanel/internal/adapters/rest"
	"todopanel/internal/config"
)

func main() {
	cfgFlag := flag.String("config", "", "path to the config file")
	addrFlag := flag.String("addr", "", "bind address, overrides the config")
	flag.Parse()

	config.Init(*cfgFlag)
	cfg := config.Load()
	if *addrFlag != "" {
		cfg.ListenAddr = *addrFlag
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	scanner := notebook.NewScanner(cfg.NotebookRoot, cfg.ScanTTL, logger)
	srv := rest.NewServer(cfg.StoragePath, scanner, logger)

	logger.WithField("addr", cfg.ListenAddr).Info("serving todo items")
	if err := srv.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("todopaneld: %v", err)
	}
}
