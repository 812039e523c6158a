package api

import (
	"os"
	"strings"

	"github.com/5pponent/diary-server/api/config"
	"github.com/5pponent/diary-server/api/controllers"
	"github.com/5pponent/diary-server/api/logging"

	"github.com/joho/godotenv"
)

var server = controllers.Server{}

func init() {
	// Load .env only outside production.
	if os.Getenv("APP_ENV") != config.ProdEnv {
		_ = godotenv.Load()
	}
}

func Run() {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		logging.Log.Fatalf("Cannot load configuration: %v", err)
	}
	logging.Init(cfg.Log.Level, cfg.Production())

	server.Initialize(cfg)

	addr := ":" + strings.TrimSpace(cfg.Server.Port)
	server.Run(addr)
}
