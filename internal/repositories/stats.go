package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/chessmetrics/importer/internal/models"
)

// ResultCount is one row of the result distribution.
type ResultCount struct {
	Result string `bun:"result"`
	Count  int    `bun:"count"`
}

// OpeningCount is one row of the most common openings.
type OpeningCount struct {
	ECO     string `bun:"eco"`
	Opening string `bun:"opening"`
	Count   int    `bun:"count"`
}

// PlayerCount is one row of the most active players.
type PlayerCount struct {
	Name  string `bun:"player"`
	Games int    `bun:"count"`
}

// ResultDistribution returns the number of games per result.
func ResultDistribution(ctx context.Context, db *bun.DB) ([]ResultCount, error) {
	var rows []ResultCount
	err := db.NewSelect().
		Model((*models.Game)(nil)).
		ColumnExpr("result").
		ColumnExpr("COUNT(*) AS count").
		Group("result").
		OrderExpr("count DESC").
		Scan(ctx, &rows)

	return rows, err
}

// TopOpenings returns the most common openings by ECO code.
func TopOpenings(ctx context.Context, db *bun.DB, limit int) ([]OpeningCount, error) {
	var rows []OpeningCount
	err := db.NewSelect().
		Model((*models.Game)(nil)).
		ColumnExpr("eco").
		ColumnExpr("opening").
		ColumnExpr("COUNT(*) AS count").
		Where("eco != ''").
		Group("eco").
		OrderExpr("count DESC").
		Limit(limit).
		Scan(ctx, &rows)

	return rows, err
}

// TopPlayers returns the most active players counting both colors.
func TopPlayers(ctx context.Context, db *bun.DB, limit int) ([]PlayerCount, error) {
	var rows []PlayerCount
	err := db.NewRaw(`
        SELECT player, COUNT(*) AS count
        FROM (
            SELECT white_player AS player FROM games
            UNION ALL
            SELECT black_player AS player FROM games
        )
        GROUP BY player
        ORDER BY count DESC
        LIMIT ?`, limit).
		Scan(ctx, &rows)

	return rows, err
}
