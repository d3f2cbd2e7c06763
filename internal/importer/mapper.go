package importer

import (
	"regexp"
	"strconv"
	"time"

	"github.com/chessmetrics/importer/internal/models"
	"github.com/chessmetrics/importer/internal/pgn"
	"github.com/chessmetrics/importer/internal/repositories"
)

var nonDigits = regexp.MustCompile(`[^\d]`)

// parseElo extracts a non-negative integer rating from a header value,
// returning 0 for absent or unparseable ratings.
func parseElo(s string) int {
	digits := nonDigits.ReplaceAllString(s, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// mapGame converts a parsed game into a pending batch entry.
func mapGame(g *pgn.Game, filename, signature string, importDate time.Time) *repositories.PendingGame {
	h := g.Headers
	game := &models.Game{
		Event:       headerOr(h, "Event", models.UnknownTag),
		Site:        headerOr(h, "Site", models.UnknownTag),
		Date:        headerOr(h, "Date", models.UnknownDate),
		Round:       headerOr(h, "Round", models.UnknownTag),
		WhitePlayer: headerOr(h, "White", models.UnknownTag),
		BlackPlayer: headerOr(h, "Black", models.UnknownTag),
		Result:      headerOr(h, "Result", models.UnknownResult),
		WhiteElo:    parseElo(h["WhiteElo"]),
		BlackElo:    parseElo(h["BlackElo"]),
		ECO:         h["ECO"],
		Opening:     h["Opening"],
		TimeControl: h["TimeControl"],
		Termination: h["Termination"],
		PGNFilename: filename,
		ImportDate:  importDate,
		Signature:   signature,
	}

	moves := make([]*models.Move, 0, len(g.Moves))
	for ply, mv := range g.Moves {
		m := &models.Move{
			PlyNumber: ply,
			SAN:       mv.SAN,
			UCI:       mv.UCI,
		}
		if mv.Comment != "" {
			c := mv.Comment
			m.Comment = &c
		}
		if mv.NAG != "" {
			n := mv.NAG
			m.NAG = &n
		}
		moves = append(moves, m)
	}

	return &repositories.PendingGame{Game: game, Moves: moves}
}

func headerOr(headers map[string]string, key, def string) string {
	if v, ok := headers[key]; ok && v != "" {
		return v
	}
	return def
}
