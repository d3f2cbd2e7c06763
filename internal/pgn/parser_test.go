package pgn

import (
	"errors"
	"io"
	"strings"
	"testing"
)

const twoGames = `[Event "Rated Blitz"]
[Site "lichess.org"]
[Date "2020.01.01"]
[Round "1"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 e5 2. Nf3! {sharp} Nc6 3. Bb5 $13 a6 (3... Nf6 4. O-O d6) 4. Bxc6
dxc6 1-0

[Event "Second"]
[White "Carol"]
[Black "Dave"]
[Result "1/2-1/2"]

1. d4 d5 1/2-1/2
`

func TestParserReadsGamesLazily(t *testing.T) {
	p := NewParser(strings.NewReader(twoGames))

	g1, err := p.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g1.Headers["White"] != "Alice" || g1.Headers["Result"] != "1-0" {
		t.Fatalf("unexpected headers: %+v", g1.Headers)
	}
	if len(g1.Moves) != 8 {
		t.Fatalf("expected 8 mainline moves, got %d: %+v", len(g1.Moves), g1.Moves)
	}

	g2, err := p.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g2.Headers["White"] != "Carol" || len(g2.Moves) != 2 {
		t.Fatalf("unexpected second game: %+v", g2)
	}

	if _, err := p.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestParserMoveAnnotations(t *testing.T) {
	p := NewParser(strings.NewReader(twoGames))
	g, err := p.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nf3 := g.Moves[2]
	if nf3.SAN != "Nf3" {
		t.Fatalf("expected glyph stripped from SAN, got %q", nf3.SAN)
	}
	if nf3.NAG != "1" {
		t.Fatalf("expected suffix ! mapped to NAG 1, got %q", nf3.NAG)
	}
	if nf3.Comment != "sharp" {
		t.Fatalf("expected comment attached to preceding move, got %q", nf3.Comment)
	}

	bb5 := g.Moves[4]
	if bb5.NAG != "13" {
		t.Fatalf("expected numeric annotation 13, got %q", bb5.NAG)
	}

	capture := g.Moves[6]
	if capture.SAN != "Bxc6" || capture.UCI != "Bxc6" {
		t.Fatalf("unexpected capture move: %+v", capture)
	}
}

func TestParserStripsCheckMarksFromCanonicalForm(t *testing.T) {
	src := `[White "A"]
[Black "B"]

1. e4 f6 2. d4 g5 3. Qh5# 1-0
`
	p := NewParser(strings.NewReader(src))
	g, err := p.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mate := g.Moves[4]
	if mate.SAN != "Qh5#" {
		t.Fatalf("expected SAN to keep mate mark, got %q", mate.SAN)
	}
	if mate.UCI != "Qh5" {
		t.Fatalf("expected canonical form without mate mark, got %q", mate.UCI)
	}
}

func TestParserRecoversFromMalformedGame(t *testing.T) {
	src := `[White "First"]
[Black "B"]
[Result "*"]

1. e4 e5 *

[White "Broken"]
[Black "B"]
[Result "*"]

1. e4 zz9@# *

[White "Third"]
[Black "B"]
[Result "*"]

1. d4 d5 *
`
	p := NewParser(strings.NewReader(src))

	if g, err := p.Next(); err != nil || g.Headers["White"] != "First" {
		t.Fatalf("expected first game, got %+v, %v", g, err)
	}

	_, err := p.Next()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError for broken game, got %v", err)
	}

	g, err := p.Next()
	if err != nil {
		t.Fatalf("expected recovery after malformed game, got %v", err)
	}
	if g.Headers["White"] != "Third" || len(g.Moves) != 2 {
		t.Fatalf("unexpected game after recovery: %+v", g)
	}
}

func TestParserHeaderOnlyGame(t *testing.T) {
	src := `[White "Lonely"]
[Black "Header"]
[Result "*"]

*
`
	p := NewParser(strings.NewReader(src))
	g, err := p.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(g.Moves) != 0 {
		t.Fatalf("expected zero moves, got %d", len(g.Moves))
	}
}

func TestParserUnterminatedComment(t *testing.T) {
	src := `[White "A"]

1. e4 {never closed
`
	p := NewParser(strings.NewReader(src))
	_, err := p.Next()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParserNoGameBetweenTagSections(t *testing.T) {
	// Back-to-back games without blank lines between movetext and the
	// next tag section.
	src := `[White "A"]
1. e4 e5 1-0
[White "B"]
1. d4 d5 0-1
`
	p := NewParser(strings.NewReader(src))
	g1, err := p.Next()
	if err != nil || g1.Headers["White"] != "A" {
		t.Fatalf("unexpected first game: %+v, %v", g1, err)
	}
	g2, err := p.Next()
	if err != nil || g2.Headers["White"] != "B" {
		t.Fatalf("unexpected second game: %+v, %v", g2, err)
	}
}
