package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ImportedFile is the per-file idempotency ledger. One row per filename;
// reprocessing a file upserts the row. It is informational only and is not
// a foreign-key parent of Game.
type ImportedFile struct {
	bun.BaseModel `bun:"table:import_metadata,alias:im"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	Filename   string    `bun:"filename,unique,notnull" json:"filename"`
	ImportDate time.Time `bun:"import_date,notnull" json:"import_date"`
	GamesCount int       `bun:"games_count,default:0" json:"games_count"`
	Checksum   *string   `bun:"checksum" json:"checksum,omitempty"`
}

// ImportRun tracks one folder import run and its outcome.
type ImportRun struct {
	bun.BaseModel `bun:"table:import_runs,alias:ir"`

	ID             int64      `bun:"id,pk,autoincrement" json:"id"`
	RunID          string     `bun:"run_id,unique,notnull" json:"run_id"`
	Folder         string     `bun:"folder,notnull" json:"folder"`
	StartedAt      time.Time  `bun:"started_at,notnull" json:"started_at"`
	FinishedAt     *time.Time `bun:"finished_at" json:"finished_at,omitempty"`
	GamesImported  int        `bun:"games_imported,default:0" json:"games_imported"`
	FilesProcessed int        `bun:"files_processed,default:0" json:"files_processed"`
	FilesSkipped   int        `bun:"files_skipped,default:0" json:"files_skipped"`
	FileErrors     int        `bun:"file_errors,default:0" json:"file_errors"`
	DuplicateGames int        `bun:"duplicate_games,default:0" json:"duplicate_games"`
	MalformedGames int        `bun:"malformed_games,default:0" json:"malformed_games"`
}

// Duration returns the wall-clock duration of a finished run, or zero if
// the run has not finished.
func (r *ImportRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
