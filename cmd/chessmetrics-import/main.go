package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chessmetrics/importer/internal/config"
	"github.com/chessmetrics/importer/internal/database"
	"github.com/chessmetrics/importer/internal/importer"
	"github.com/chessmetrics/importer/internal/migrations"
	"github.com/chessmetrics/importer/internal/repositories"
	"github.com/chessmetrics/importer/internal/views"
)

var opts struct {
	PGNFolder     string         `long:"pgn-folder" default:"pgn_files" description:"Folder containing PGN files"`
	DBPath        string         `long:"db-path" default:"chess_games.db" description:"Path of the SQLite database"`
	BatchSize     int            `long:"batch-size" description:"Games per insert transaction (overrides config)"`
	ForceReimport bool           `long:"force-reimport" description:"Reprocess files that were already imported"`
	Stats         bool           `long:"stats" description:"Print database statistics after the import"`
	Verbose       bool           `short:"v" long:"verbose" description:"Verbose logging"`
	Config        flags.Filename `long:"config" description:"Optional YAML config file"`
	DebugSQL      bool           `long:"debug-sql" description:"Log every SQL query"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	logger, err := newLogger(opts.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	if err := run(context.Background(), log); err != nil {
		log.Errorw("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *zap.SugaredLogger) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		cfg, err = config.LoadFile(string(opts.Config))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if opts.BatchSize > 0 {
		cfg.BatchSize = opts.BatchSize
	}

	db, err := database.New(opts.DBPath, opts.DebugSQL || cfg.DebugSQL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	start := time.Now()
	res, err := importer.ImportFolder(ctx, db, log, opts.PGNFolder, importer.Options{
		BatchSize:  cfg.BatchSize,
		Force:      opts.ForceReimport,
		Encodings:  cfg.Encodings,
		Extensions: cfg.Extensions,
	})
	if err != nil {
		return err
	}

	if err := views.Rebuild(ctx, db); err != nil {
		return fmt.Errorf("rebuild views: %w", err)
	}

	fmt.Printf("Import complete: %d games in %s (%d files skipped, %d file errors)\n",
		res.TotalGamesImported, time.Since(start).Round(time.Millisecond), res.FilesSkipped, res.FileErrors)

	if opts.Stats {
		return printStats(ctx, db)
	}

	return nil
}

func printStats(ctx context.Context, db *bun.DB) error {
	total, err := repositories.CountGames(ctx, db)
	if err != nil {
		return err
	}
	fmt.Printf("\nDatabase statistics:\nTotal games: %d\n", total)

	results, err := repositories.ResultDistribution(ctx, db)
	if err != nil {
		return err
	}
	fmt.Println("\nResult distribution:")
	for _, r := range results {
		fmt.Printf("  %s: %d\n", r.Result, r.Count)
	}

	openings, err := repositories.TopOpenings(ctx, db, 10)
	if err != nil {
		return err
	}
	fmt.Println("\nMost common openings:")
	for i, o := range openings {
		name := o.Opening
		if name == "" {
			name = "Unknown"
		}
		fmt.Printf("  %d. %s - %s: %d games\n", i+1, o.ECO, name, o.Count)
	}

	players, err := repositories.TopPlayers(ctx, db, 10)
	if err != nil {
		return err
	}
	fmt.Println("\nMost active players:")
	for i, p := range players {
		fmt.Printf("  %d. %s: %d games\n", i+1, p.Name, p.Games)
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
