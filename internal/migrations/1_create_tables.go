package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/chessmetrics/importer/internal/models"
)

func init() {
	// Migration 1: create tables
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().
			Model((*models.Game)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().
			Model((*models.Move)(nil)).
			IfNotExists().
			ForeignKey(`("game_id") REFERENCES "games" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return err
		}

		plain := []interface{}{
			(*models.ImportedFile)(nil),
			(*models.ImportRun)(nil),
		}
		for _, model := range plain {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		modelsList := []interface{}{
			(*models.ImportRun)(nil),
			(*models.ImportedFile)(nil),
			(*models.Move)(nil),
			(*models.Game)(nil),
		}

		for _, model := range modelsList {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})
}
