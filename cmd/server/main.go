package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TFMV/addrmatch/internal/address"
	"github.com/TFMV/addrmatch/internal/canon"
	"github.com/TFMV/addrmatch/internal/dedupe"
	"github.com/TFMV/addrmatch/pkg/api"
	"github.com/TFMV/addrmatch/pkg/config"
	"github.com/TFMV/addrmatch/pkg/db"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The database is optional. Without one the service still parses,
	// matches, and dedupes, it just cannot persist runs.
	var pool *pgxpool.Pool
	if cfg.DBCreds.Host != "" {
		pool, err = db.NewConnection(context.Background(), db.DBCreds{
			Host:     cfg.DBCreds.Host,
			Port:     cfg.DBCreds.Port,
			Username: cfg.DBCreds.Username,
			Password: cfg.DBCreds.Password,
			Database: cfg.DBCreds.Database,
		})
		if err != nil {
			log.Fatalf("Failed to create database connection pool: %v", err)
		}
		defer pool.Close()
	}

	parser := address.NewParserForProvince(canon.NewTable(), cfg.Province)
	matcher := address.NewMatcher(parser, cfg.MatcherConfig())
	deduper := dedupe.New(parser, matcher, dedupe.Options{})

	router := gin.Default()
	api.SetupRoutes(router, pool, parser, matcher, deduper)

	addr := ":" + cfg.Server.Port
	log.Printf("Starting server on %s", addr)
	log.Fatal(router.Run(addr))
}
