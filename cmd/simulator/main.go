package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/udisondev/famsim/internal/battlelog"
	"github.com/udisondev/famsim/internal/config"
	"github.com/udisondev/famsim/internal/data"
	"github.com/udisondev/famsim/internal/db"
	"github.com/udisondev/famsim/internal/sim"
)

const SimulatorConfigPath = "config/simulator.yaml"

func main() {
	importCatalog := flag.String("import-catalog", "", "load a YAML catalog into postgres and exit")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *importCatalog); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, importPath string) error {
	cfgPath := SimulatorConfigPath
	if p := os.Getenv("SIMULATOR_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulator(cfgPath)
	if err != nil {
		return fmt.Errorf("loading simulator config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	if importPath != "" {
		return importCatalog(ctx, cfg.Database, importPath)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid simulator config: %w", err)
	}

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	var trace *zap.Logger
	if cfg.Trace.FirstBattle {
		trace, err = battlelog.New(cfg.Trace)
		if err != nil {
			return fmt.Errorf("creating battle trace: %w", err)
		}
		defer func() { _ = trace.Sync() }()
	}

	runner, err := sim.NewRunner(cat, cfg, trace)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}
	rep, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation %s: %w", rep.RunID, err)
	}

	fmt.Printf("run %s: %d battles, P1 %d / P2 %d (%.2f%%), %d by decision, %d failed, %.2f cycles avg\n",
		rep.RunID, rep.Played, rep.P1Wins, rep.P2Wins, rep.P1WinRate()*100,
		rep.Decisions, rep.Failed, rep.AvgCycles())
	return nil
}

func loadCatalog(ctx context.Context, cfg config.Simulator) (*data.Catalog, error) {
	if cfg.Catalog.Source == "yaml" {
		cat, err := data.LoadCatalogFile(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		return cat, nil
	}

	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	cat, err := db.NewCatalogRepository(database.Pool()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from database: %w", err)
	}
	return cat, nil
}

func importCatalog(ctx context.Context, dbCfg config.DatabaseConfig, path string) error {
	cat, err := data.LoadCatalogFile(path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	database, err := openDatabase(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.NewCatalogRepository(database.Pool()).Save(ctx, cat); err != nil {
		return fmt.Errorf("importing catalog: %w", err)
	}
	return nil
}

func openDatabase(ctx context.Context, dbCfg config.DatabaseConfig) (*db.DB, error) {
	database, err := db.New(ctx, dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.RunMigrations(ctx, dbCfg.DSN()); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database connected", "host", dbCfg.Host, "dbname", dbCfg.DBName)
	return database, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
