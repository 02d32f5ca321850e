package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ehgns852/moamoa/internal/config"
	"github.com/ehgns852/moamoa/internal/database"
	"github.com/ehgns852/moamoa/internal/router"
	"github.com/ehgns852/moamoa/internal/service"
	"github.com/ehgns852/moamoa/internal/storage"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if cfg.Storage.Backend == "local" {
		if err := ensureDir(cfg.Storage.LocalDir); err != nil {
			log.Fatalf("create upload dir: %v", err)
		}
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// pick the image upload backend
	var uploader storage.Uploader
	switch cfg.Storage.Backend {
	case "gcs":
		uploader = storage.NewGCSUploader(cfg.Storage.GCSBucket)
	default:
		uploader = storage.NewLocalUploader(cfg.Storage.LocalDir, cfg.Storage.BaseURL)
	}

	assetService := service.NewAssetService(db, uploader)

	// setup router
	r := router.SetupRouter(cfg, db, assetService)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
