package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"moneypath/internal/config"
	"moneypath/internal/logging"
	"moneypath/internal/serverapp"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("MONEYPATH_CONFIG")
	if cfgPath == "" {
		cfgPath = "moneypath_config.yml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("load config", "path", cfgPath, "err", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       cfg.Server.DataDir,
		StaticDir:     "static",
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
		Logger:        logger,
	})
	if err != nil {
		logger.Error("build server", "err", err)
		os.Exit(1)
	}

	logger.Info("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
