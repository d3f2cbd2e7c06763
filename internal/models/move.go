package models

import "github.com/uptrace/bun"

// Move is one ply of a game. PlyNumber is 0-based and contiguous within a
// game; moves are written in the same transaction as their parent Game and
// cascade-deleted with it.
type Move struct {
	bun.BaseModel `bun:"table:moves,alias:m"`

	ID        int64   `bun:"id,pk,autoincrement" json:"id"`
	GameID    int64   `bun:"game_id,notnull" json:"game_id"`
	PlyNumber int     `bun:"ply_number,notnull" json:"ply_number"`
	SAN       string  `bun:"san,notnull" json:"san"`
	UCI       string  `bun:"uci,notnull" json:"uci"`
	Comment   *string `bun:"comment" json:"comment,omitempty"`
	NAG       *string `bun:"nag" json:"nag,omitempty"`

	Game *Game `bun:"rel:belongs-to,join:game_id=id" json:"-"`
}

// IsWhite reports whether the ply was played by white.
func (m *Move) IsWhite() bool {
	return m.PlyNumber%2 == 0
}

// MoveNumber returns the 1-based full-move number the ply belongs to.
func (m *Move) MoveNumber() int {
	return m.PlyNumber/2 + 1
}
