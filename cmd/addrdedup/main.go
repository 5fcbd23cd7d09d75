package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TFMV/addrmatch/internal/address"
	"github.com/TFMV/addrmatch/internal/canon"
	"github.com/TFMV/addrmatch/internal/dedupe"
	"github.com/TFMV/addrmatch/pkg/api"
	"github.com/TFMV/addrmatch/pkg/config"
	"github.com/TFMV/addrmatch/pkg/db"
)

// report is the JSON document written to stdout after a run.
type report struct {
	RunID   int            `json:"run_id,omitempty"`
	Elapsed string         `json:"elapsed"`
	Summary dedupe.Summary `json:"summary"`
	Pairs   []dedupe.Pair  `json:"pairs"`
}

func main() {
	configPath := flag.String("config", "", "Path to the config file (optional)")
	csvPath := flag.String("csv", "", "Path to the CSV file of (id, source, raw_address) rows")
	table := flag.String("table", "", "Database table of address records; -csv is bulk loaded into it first when both are set")
	fuzzy := flag.Bool("fuzzy", false, "Enable fuzzy matching")
	workers := flag.Int("workers", 0, "Number of scoring workers (0 = default)")
	store := flag.Bool("store", false, "Persist scored pairs to the database")
	matchesOnly := flag.Bool("matches-only", false, "Report only pairs that matched")
	flag.Parse()

	if *csvPath == "" && *table == "" {
		log.Fatalf("A CSV file or a database table is required")
	}

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	} else {
		cfg.Province = address.DefaultProvince
	}

	parser := address.NewParserForProvince(canon.NewTable(), cfg.Province)
	matcher := address.NewMatcher(parser, cfg.MatcherConfig())
	deduper := dedupe.New(parser, matcher, dedupe.Options{Workers: *workers, Fuzzy: *fuzzy})

	ctx := context.Background()
	var pool *pgxpool.Pool
	if *table != "" || *store {
		var err error
		pool, err = db.NewConnection(ctx, db.DBCreds{
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

	var records []dedupe.Record
	switch {
	case *table != "":
		if *csvPath != "" {
			file, err := os.Open(*csvPath)
			if err != nil {
				log.Fatalf("Error opening file: %v", err)
			}
			loaded, err := db.LoadAddresses(ctx, pool, *table, file, parser)
			file.Close()
			if err != nil {
				log.Fatalf("Error loading CSV into %s: %v", *table, err)
			}
			log.Printf("Loaded %d rows into %s", loaded, *table)
		}
		var err error
		records, err = db.FetchRecords(ctx, pool, *table)
		if err != nil {
			log.Fatalf("Error fetching records from %s: %v", *table, err)
		}
	default:
		file, err := os.Open(*csvPath)
		if err != nil {
			log.Fatalf("Error opening file: %v", err)
		}
		defer file.Close()

		records, err = api.ReadRecords(file)
		if err != nil {
			log.Fatalf("Error reading CSV: %v", err)
		}
	}

	start := time.Now()
	pairs, summary := deduper.Run(records)

	rep := report{
		Elapsed: time.Since(start).String(),
		Summary: summary,
		Pairs:   pairs,
	}
	if *matchesOnly {
		rep.Pairs = dedupe.Matches(pairs)
	}

	if *store {
		runID, err := db.CreateRun(ctx, pool, "CLI Deduplication")
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := db.InsertPairs(ctx, pool, runID, pairs); err != nil {
			log.Fatalf("%v", err)
		}
		rep.RunID = runID
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
}
