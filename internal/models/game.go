package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// Game represents one imported chess game. Header fields keep the PGN
// seven-tag-roster defaults ("?" / "*") when the source file omits them.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Event       string    `bun:"event,notnull" json:"event"`
	Site        string    `bun:"site,notnull" json:"site"`
	Date        string    `bun:"date,notnull" json:"date"`
	Round       string    `bun:"round,notnull" json:"round"`
	WhitePlayer string    `bun:"white_player,notnull" json:"white_player"`
	BlackPlayer string    `bun:"black_player,notnull" json:"black_player"`
	Result      string    `bun:"result,notnull" json:"result"`
	WhiteElo    int       `bun:"white_elo,default:0" json:"white_elo"`
	BlackElo    int       `bun:"black_elo,default:0" json:"black_elo"`
	ECO         string    `bun:"eco" json:"eco"`
	Opening     string    `bun:"opening" json:"opening"`
	TimeControl string    `bun:"time_control" json:"time_control"`
	Termination string    `bun:"termination" json:"termination"`
	PGNFilename string    `bun:"pgn_filename,notnull" json:"pgn_filename"`
	ImportDate  time.Time `bun:"import_date,nullzero,notnull,default:current_timestamp" json:"import_date"`
	Signature   string    `bun:"signature,unique,notnull" json:"signature"`

	Moves []*Move `bun:"rel:has-many,join:id=game_id" json:"moves,omitempty"`
}

// Validate checks that required Game fields are present.
func (g *Game) Validate() error {
	if g.Signature == "" {
		return errors.New("signature is required")
	}
	if g.PGNFilename == "" {
		return errors.New("pgn filename is required")
	}
	if g.WhitePlayer == "" || g.BlackPlayer == "" {
		return errors.New("player names are required")
	}
	return nil
}

// IsDecisive reports whether the game ended with a winner.
func (g *Game) IsDecisive() bool {
	return g.Result == ResultWhiteWins || g.Result == ResultBlackWins
}

// Winner returns the winning player's name, or "" for draws and
// unfinished games.
func (g *Game) Winner() string {
	switch g.Result {
	case ResultWhiteWins:
		return g.WhitePlayer
	case ResultBlackWins:
		return g.BlackPlayer
	}
	return ""
}
