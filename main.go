package main

import (
	"os"

	"taskflow/config"
	"taskflow/connection"
	"taskflow/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_INVALID, Description: %v", err)
	}
	if err := logging.Init(logging.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
	}); err != nil {
		logging.Logger.Fatalf("Event ID: LOGGER_INIT_FAILED, Description: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	if err := connection.StartServer(cfg); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_FAILED, Description: %v", err)
		os.Exit(1)
	}
}
