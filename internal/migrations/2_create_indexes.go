package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	// Migration 2: indexes
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_games_eco ON games(eco)",
			"CREATE INDEX IF NOT EXISTS idx_games_result ON games(result)",
			"CREATE INDEX IF NOT EXISTS idx_games_white_player ON games(white_player)",
			"CREATE INDEX IF NOT EXISTS idx_games_black_player ON games(black_player)",
			"CREATE INDEX IF NOT EXISTS idx_games_date ON games(date)",
			"CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id)",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_moves_game_ply ON moves(game_id, ply_number)",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS idx_games_eco",
			"DROP INDEX IF EXISTS idx_games_result",
			"DROP INDEX IF EXISTS idx_games_white_player",
			"DROP INDEX IF EXISTS idx_games_black_player",
			"DROP INDEX IF EXISTS idx_games_date",
			"DROP INDEX IF EXISTS idx_moves_game_id",
			"DROP INDEX IF EXISTS idx_moves_game_ply",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	})
}
