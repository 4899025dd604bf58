package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/planops/sopdash/internal/cli"
	"github.com/planops/sopdash/internal/controller"
	"github.com/planops/sopdash/internal/db"
	"github.com/planops/sopdash/internal/domain"
	"github.com/planops/sopdash/internal/importer"
	"github.com/planops/sopdash/internal/repository"
	"github.com/planops/sopdash/internal/seed"
	"github.com/planops/sopdash/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The store lives in process memory unless SOPDASH_DB points at a file.
	dbPath := os.Getenv("SOPDASH_DB")
	if dbPath == "" {
		dbPath = ":memory:"
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	materialRepo := repository.NewSQLiteMaterialRepo(database)
	scenarioRepo := repository.NewSQLiteScenarioRepo(database)
	alertRepo := repository.NewSQLiteAlertRepo(database)

	// Seed the built-in scenarios on first run.
	ctx := context.Background()
	infos, err := scenarioRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing scenarios: %w", err)
	}
	if len(infos) == 0 {
		if err := seed.Load(ctx, materialRepo, scenarioRepo, alertRepo); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	scenarioSvc := service.NewScenarioService(scenarioRepo, loadLatency())
	alertSvc := service.NewAlertService(alertRepo)
	materialSvc := service.NewMaterialService(materialRepo)

	app := &cli.App{
		Scenarios:  scenarioSvc,
		Alerts:     alertSvc,
		Materials:  materialSvc,
		Controller: controller.New(scenarioSvc, alertSvc, materialSvc, nil),
		ExportDir:  ".",
		Import: func(ctx context.Context, path string) (domain.ScenarioID, error) {
			return importer.ImportFile(ctx, path, materialRepo, scenarioRepo, alertRepo)
		},
	}

	// Detect interactive terminal for the bare dashboard entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// loadLatency reads SOPDASH_LATENCY_MS, the simulated fetch delay for
// scenario loads. It defaults to 300ms so the loading states are visible.
func loadLatency() time.Duration {
	raw := os.Getenv("SOPDASH_LATENCY_MS")
	if raw == "" {
		return 300 * time.Millisecond
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
