package repositories

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/chessmetrics/importer/internal/models"
)

// PendingGame is one arena entry of a batch: a game row awaiting its real
// primary key, plus the moves that will reference it.
type PendingGame struct {
	Game  *models.Game
	Moves []*models.Move
}

// IsFileProcessed reports whether the filename already has an
// import_metadata row.
func IsFileProcessed(ctx context.Context, db *bun.DB, filename string) (bool, error) {
	return db.NewSelect().
		Model((*models.ImportedFile)(nil)).
		Where("filename = ?", filename).
		Exists(ctx)
}

// GameExists reports whether a game with the given signature is already
// stored.
func GameExists(ctx context.Context, db *bun.DB, signature string) (bool, error) {
	return db.NewSelect().
		Model((*models.Game)(nil)).
		Where("signature = ?", signature).
		Exists(ctx)
}

// RecordImportedFile upserts the per-file ledger row keyed by filename.
func RecordImportedFile(ctx context.Context, db *bun.DB, file *models.ImportedFile) error {
	_, err := db.NewInsert().
		Model(file).
		On("CONFLICT (filename) DO UPDATE").
		Set("import_date = EXCLUDED.import_date").
		Set("games_count = EXCLUDED.games_count").
		Set("checksum = EXCLUDED.checksum").
		Exec(ctx)

	return err
}

// InsertGamesBatch persists a batch of games and their moves in one
// transaction. Game rows are inserted individually so the store-assigned
// IDs can be backfilled into the pending moves before the bulk move
// insert. Any failure rolls back the entire batch; previously committed
// batches are unaffected.
func InsertGamesBatch(ctx context.Context, db *bun.DB, batch []*PendingGame) error {
	if len(batch) == 0 {
		return nil
	}

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var allMoves []*models.Move

		for _, pending := range batch {
			if _, err := tx.NewInsert().Model(pending.Game).Exec(ctx); err != nil {
				return fmt.Errorf("insert game %q: %w", pending.Game.Signature, err)
			}

			for _, mv := range pending.Moves {
				mv.GameID = pending.Game.ID
			}
			allMoves = append(allMoves, pending.Moves...)
		}

		if len(allMoves) > 0 {
			if _, err := tx.NewInsert().Model(&allMoves).Exec(ctx); err != nil {
				return fmt.Errorf("insert moves: %w", err)
			}
		}

		return nil
	})
}

// StartRun inserts a fresh import_runs row.
func StartRun(ctx context.Context, db *bun.DB, run *models.ImportRun) error {
	_, err := db.NewInsert().Model(run).Exec(ctx)
	return err
}

// FinishRun writes the final counters and finish time of a run.
func FinishRun(ctx context.Context, db *bun.DB, run *models.ImportRun) error {
	_, err := db.NewUpdate().Model(run).WherePK().Exec(ctx)
	return err
}

// CountGames returns the total number of stored games.
func CountGames(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.Game)(nil)).Count(ctx)
}

// MovesForGame returns a game's moves in ply order.
func MovesForGame(ctx context.Context, db *bun.DB, gameID int64) ([]*models.Move, error) {
	var moves []*models.Move
	err := db.NewSelect().
		Model(&moves).
		Where("game_id = ?", gameID).
		Order("ply_number ASC").
		Scan(ctx)

	return moves, err
}
