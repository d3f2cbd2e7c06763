package models

// Game results as recorded in PGN headers and movetext terminators.
const (
	ResultWhiteWins  = "1-0"
	ResultBlackWins  = "0-1"
	ResultDraw       = "1/2-1/2"
	ResultUnfinished = "*"
)

// PGN seven-tag-roster placeholders used when a header is absent.
const (
	UnknownTag    = "?"
	UnknownDate   = "????.??.??"
	UnknownResult = "*"
)
