package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datagate/adapters/localfs"
	"datagate/adapters/postgres"
	"datagate/app"
	"datagate/domain/core"
	"datagate/domain/dataset"
	"datagate/domain/quality"
	"datagate/domain/sampling"
	"datagate/internal"
	"datagate/internal/config"
	"datagate/internal/profiling"
	"datagate/ports"
)

// qcgate loads a registered table from the registry, runs the quality
// gate over it and prints the report as JSON. Exit status 2 signals a
// STOP verdict so pipeline wrappers can branch on it.
func main() {
	datasetName := flag.String("dataset", "", "registered dataset name to gate")
	keyColumns := flag.String("keys", "", "comma-separated key columns")
	flag.Parse()

	if *datasetName == "" {
		log.Fatal("usage: qcgate -dataset <name> [-keys col1,col2]")
	}

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	repo, err := openRepository(appConfig)
	if err != nil {
		log.Fatalf("failed to open registry: %v", err)
	}

	ctx := context.Background()
	entries, err := repo.LoadTables(ctx)
	if err != nil {
		log.Fatalf("failed to load registered tables: %v", err)
	}
	entry, ok := entries[*datasetName]
	if !ok {
		log.Fatalf("failed to load dataset: %v", core.NewDatasetNotFoundError(*datasetName))
	}

	engine, err := quality.NewEngine(appConfig.Quality.Engine)
	if err != nil {
		log.Fatalf("failed to build quality engine: %v", err)
	}
	sampler := sampling.NewSampler(
		appConfig.Sampling.RowThreshold,
		appConfig.Sampling.SampleSize,
		appConfig.Sampling.Seed,
	)
	service := app.NewPipelineService(engine, profiling.NewProfiler(sampler), logger)

	var keys dataset.KeySpec
	if *keyColumns != "" {
		keys = dataset.KeySpec(strings.Split(*keyColumns, ","))
	}

	report, err := service.RunGate(ctx, entry.Table, keys, nil)
	if err != nil {
		log.Fatalf("quality gate failed: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode report: %v", err)
	}
	fmt.Println(string(out))

	if report.Verdict.Halts() {
		os.Exit(2)
	}
}

// openRepository picks the Postgres registry when DATABASE_URL is set,
// otherwise the local storage root.
func openRepository(appConfig *config.Config) (ports.TextTableRepository, error) {
	if appConfig.Database.URL != "" {
		db, err := sqlx.Connect("postgres", appConfig.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, err
		}
		return postgres.NewTextTableRepository(db), nil
	}
	return localfs.NewTextTableRepository(appConfig.Storage.Root)
}
