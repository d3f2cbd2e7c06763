package pgn

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// signaturePlies caps how much of the move list participates in a game's
// signature. Truncating keeps dedup stable when long games differ only in
// late annotation noise across overlapping exports.
const signaturePlies = 10

// Signature computes a stable content hash identifying a game: the seven
// roster headers (with PGN placeholder defaults) plus the canonical
// notation of at most the first 10 plies, joined with "|" and hashed with
// SHA-256. A header-only game still yields a deterministic signature.
func Signature(headers map[string]string, moves []Move) string {
	parts := []string{
		headerOr(headers, "White", "?"),
		headerOr(headers, "Black", "?"),
		headerOr(headers, "Date", "????.??.??"),
		headerOr(headers, "Event", "?"),
		headerOr(headers, "Site", "?"),
		headerOr(headers, "Round", "?"),
		headerOr(headers, "Result", "*"),
	}

	for i, mv := range moves {
		if i >= signaturePlies {
			break
		}
		parts = append(parts, mv.UCI)
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func headerOr(headers map[string]string, key, def string) string {
	if v, ok := headers[key]; ok && v != "" {
		return v
	}
	return def
}
