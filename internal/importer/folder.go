package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chessmetrics/importer/internal/models"
	"github.com/chessmetrics/importer/internal/repositories"
)

// ImportFolder enumerates eligible files in deterministic order and runs
// ImportFile on each. A failed file is logged and counted, never fatal;
// the loop always reaches the end of the folder. The aggregated
// FolderResult is the only externally observed summary of the run.
func ImportFolder(ctx context.Context, db *bun.DB, log *zap.SugaredLogger, folder string, opts Options) (FolderResult, error) {
	var res FolderResult

	files, err := listFiles(folder, opts.Extensions)
	if err != nil {
		return res, err
	}
	if len(files) == 0 {
		log.Warnw("no importable files found", "folder", folder)
		return res, nil
	}
	log.Infow("starting import", "folder", folder, "files", len(files))

	run := &models.ImportRun{
		RunID:     uuid.NewString(),
		Folder:    folder,
		StartedAt: time.Now(),
	}
	if err := repositories.StartRun(ctx, db, run); err != nil {
		return res, fmt.Errorf("start run: %w", err)
	}

	for i, name := range files {
		fr, err := ImportFile(ctx, db, log, filepath.Join(folder, name), opts)
		if err != nil {
			res.FileErrors++
			log.Errorw("file failed", "file", name, "progress", fmt.Sprintf("%d/%d", i+1, len(files)), "error", err)
			continue
		}
		res.add(fr)
	}

	finished := time.Now()
	run.FinishedAt = &finished
	run.GamesImported = res.TotalGamesImported
	run.FilesProcessed = res.FilesProcessed
	run.FilesSkipped = res.FilesSkipped
	run.FileErrors = res.FileErrors
	run.DuplicateGames = res.DuplicateGames
	run.MalformedGames = res.MalformedGames
	if err := repositories.FinishRun(ctx, db, run); err != nil {
		return res, fmt.Errorf("finish run: %w", err)
	}

	log.Infow("import finished",
		"run_id", run.RunID,
		"games", res.TotalGamesImported,
		"files_skipped", res.FilesSkipped,
		"file_errors", res.FileErrors,
		"duration", run.Duration(),
	)

	return res, nil
}

func listFiles(folder string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".pgn"}
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", folder, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		for _, want := range extensions {
			if strings.EqualFold(ext, want) {
				files = append(files, entry.Name())
				break
			}
		}
	}
	sort.Strings(files)

	return files, nil
}
