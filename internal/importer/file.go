package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chessmetrics/importer/internal/models"
	"github.com/chessmetrics/importer/internal/pgn"
	"github.com/chessmetrics/importer/internal/repositories"
)

// Options parameterize an import run.
type Options struct {
	// BatchSize is the number of games flushed per transaction.
	BatchSize int
	// Force reprocesses files that already have a ledger row. Per-game
	// signature dedup still applies.
	Force bool
	// Encodings is the ordered decode fallback list; empty means
	// pgn.DefaultEncodings.
	Encodings []string
	// Extensions lists eligible file extensions; empty means ".pgn".
	Extensions []string
}

const defaultBatchSize = 100

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return defaultBatchSize
}

// ImportFile drives one file end to end: skip check, decode, parse,
// dedupe, batch, write, ledger upsert. A malformed game or a duplicate
// never fails the file; only a decode failure or a batch-write failure
// does, and in that case no ledger row is written so a re-run retries the
// file.
func ImportFile(ctx context.Context, db *bun.DB, log *zap.SugaredLogger, path string, opts Options) (FileResult, error) {
	var res FileResult
	filename := filepath.Base(path)

	if !opts.Force {
		processed, err := repositories.IsFileProcessed(ctx, db, filename)
		if err != nil {
			return res, fmt.Errorf("skip check for %s: %w", filename, err)
		}
		if processed {
			log.Debugw("file already processed, skipping", "file", filename)
			res.Skipped = true
			return res, nil
		}
	}

	text, checksum, err := pgn.DecodeFile(path, opts.Encodings)
	if err != nil {
		return res, err
	}

	parser := pgn.NewParser(strings.NewReader(text))
	importDate := time.Now()
	seen := make(map[string]bool)
	var batch []*repositories.PendingGame

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := repositories.InsertGamesBatch(ctx, db, batch); err != nil {
			return fmt.Errorf("batch write for %s: %w", filename, err)
		}
		res.GamesImported += len(batch)
		batch = nil
		return nil
	}

	for {
		game, err := parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *pgn.ParseError
		if errors.As(err, &perr) {
			res.MalformedGames++
			log.Warnw("skipping malformed game", "file", filename, "error", perr)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("read %s: %w", filename, err)
		}

		sig := pgn.Signature(game.Headers, game.Moves)
		if seen[sig] {
			res.DuplicateGames++
			continue
		}
		exists, err := repositories.GameExists(ctx, db, sig)
		if err != nil {
			return res, fmt.Errorf("dedup check for %s: %w", filename, err)
		}
		if exists {
			res.DuplicateGames++
			continue
		}
		seen[sig] = true

		batch = append(batch, mapGame(game, filename, sig, importDate))
		if len(batch) >= opts.batchSize() {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}

	if err := flush(); err != nil {
		return res, err
	}

	file := &models.ImportedFile{
		Filename:   filename,
		ImportDate: time.Now(),
		GamesCount: res.GamesImported,
		Checksum:   &checksum,
	}
	if err := repositories.RecordImportedFile(ctx, db, file); err != nil {
		return res, fmt.Errorf("record ledger for %s: %w", filename, err)
	}

	log.Infow("file imported",
		"file", filename,
		"games", res.GamesImported,
		"duplicates", res.DuplicateGames,
		"malformed", res.MalformedGames,
	)

	return res, nil
}
