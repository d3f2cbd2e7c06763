package views

import (
	"context"

	"github.com/uptrace/bun"
)

// Read-side aggregate views. These are projections over games/moves and are
// rebuilt after an import run; they are not part of the transactional core.
var definitions = map[string]string{
	"opening_stats": `
        CREATE VIEW opening_stats AS
        SELECT
            eco,
            opening,
            COUNT(*) AS total_games,
            SUM(CASE WHEN result = '1-0' THEN 1 ELSE 0 END) AS white_wins,
            SUM(CASE WHEN result = '0-1' THEN 1 ELSE 0 END) AS black_wins,
            SUM(CASE WHEN result = '1/2-1/2' THEN 1 ELSE 0 END) AS draws,
            ROUND(SUM(CASE WHEN result = '1-0' THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 2) AS white_win_percent,
            ROUND(SUM(CASE WHEN result = '0-1' THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 2) AS black_win_percent,
            ROUND(SUM(CASE WHEN result = '1/2-1/2' THEN 1 ELSE 0 END) * 100.0 / COUNT(*), 2) AS draw_percent,
            ROUND(AVG(white_elo)) AS avg_white_elo,
            ROUND(AVG(black_elo)) AS avg_black_elo,
            MIN(date) AS first_played,
            MAX(date) AS last_played
        FROM games
        WHERE eco != ''
        GROUP BY eco
        ORDER BY total_games DESC`,

	"player_performance": `
        CREATE VIEW player_performance AS
        SELECT
            player_name,
            COUNT(*) AS games_played,
            SUM(CASE WHEN (player_color = 'white' AND result = '1-0') OR
                        (player_color = 'black' AND result = '0-1')
                THEN 1 ELSE 0 END) AS wins,
            SUM(CASE WHEN result = '1/2-1/2' THEN 1 ELSE 0 END) AS draws,
            SUM(CASE WHEN (player_color = 'white' AND result = '0-1') OR
                        (player_color = 'black' AND result = '1-0')
                THEN 1 ELSE 0 END) AS losses,
            ROUND(
                (SUM(CASE WHEN (player_color = 'white' AND result = '1-0') OR
                            (player_color = 'black' AND result = '0-1')
                    THEN 1 ELSE 0 END) +
                SUM(CASE WHEN result = '1/2-1/2' THEN 0.5 ELSE 0 END)) * 100.0 /
                COUNT(*), 2
            ) AS score_percent,
            ROUND(AVG(elo)) AS avg_elo
        FROM (
            SELECT white_player AS player_name, 'white' AS player_color, result, white_elo AS elo
            FROM games
            UNION ALL
            SELECT black_player AS player_name, 'black' AS player_color, result, black_elo AS elo
            FROM games
        ) AS player_games
        GROUP BY player_name
        ORDER BY games_played DESC`,

	"time_stats": `
        CREATE VIEW time_stats AS
        SELECT
            SUBSTR(date, 1, 4) AS year,
            COUNT(*) AS games_count,
            ROUND(AVG(white_elo)) AS avg_white_elo,
            ROUND(AVG(black_elo)) AS avg_black_elo,
            SUM(CASE WHEN result = '1-0' THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS white_win_percent,
            SUM(CASE WHEN result = '0-1' THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS black_win_percent,
            SUM(CASE WHEN result = '1/2-1/2' THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS draw_percent
        FROM games
        WHERE date LIKE '____.__.__'
        GROUP BY year
        ORDER BY year`,

	// Plies are 0-based, so the first four half-moves are 0..3.
	"common_opening_sequences": `
        CREATE VIEW common_opening_sequences AS
        SELECT
            m1.san AS move1,
            m2.san AS move2,
            m3.san AS move3,
            m4.san AS move4,
            COUNT(*) AS frequency
        FROM
            moves m1
            JOIN moves m2 ON m1.game_id = m2.game_id AND m2.ply_number = 1
            JOIN moves m3 ON m1.game_id = m3.game_id AND m3.ply_number = 2
            JOIN moves m4 ON m1.game_id = m4.game_id AND m4.ply_number = 3
        WHERE
            m1.ply_number = 0
        GROUP BY
            m1.san, m2.san, m3.san, m4.san
        ORDER BY
            frequency DESC
        LIMIT 100`,
}

// Rebuild drops and recreates every aggregate view so definition changes
// take effect on the next run.
func Rebuild(ctx context.Context, db *bun.DB) error {
	for name, def := range definitions {
		if _, err := db.ExecContext(ctx, "DROP VIEW IF EXISTS "+name); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, def); err != nil {
			return err
		}
	}

	return nil
}
