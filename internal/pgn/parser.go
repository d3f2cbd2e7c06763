package pgn

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Move is one half-move as read from movetext. SAN keeps check/mate marks
// but drops annotation glyphs; UCI is the fully stripped canonical form
// used for signatures and stored in the uci column. Move legality is not
// checked here.
type Move struct {
	SAN     string
	UCI     string
	Comment string
	NAG     string
}

// Game is one parsed game: its tag-pair headers and mainline moves.
type Game struct {
	Headers map[string]string
	Moves   []Move
}

// ParseError marks a single malformed game. The parser has already
// consumed the game's lines, so callers can count the error and keep
// reading the rest of the stream.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pgn: malformed game at line %d: %s", e.Line, e.Msg)
}

// Parser reads games lazily from a decoded PGN stream.
type Parser struct {
	s        *bufio.Scanner
	line     int
	pushed   *string
	pushedLn int
}

func NewParser(r io.Reader) *Parser {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Parser{s: s}
}

// Example: [Event "Rated Blitz game"]
var tagRegex = regexp.MustCompile(`^\[([0-9A-Za-z_]+)\s+"(.*)"\]`)

var (
	moveNumberRegex = regexp.MustCompile(`^\d+$`)
	sanRegex        = regexp.MustCompile(`^(O-O(-O)?|0-0(-0)?|[KQRBN][a-h]?[1-8]?x?[a-h][1-8](=[QRBN])?|[a-h](x[a-h])?[1-8](=[QRBN])?|--|Z0)[+#]?$`)
)

// Suffix annotations map to the standard numeric glyphs.
var suffixNAGs = map[string]string{
	"!":  "1",
	"?":  "2",
	"!!": "3",
	"??": "4",
	"!?": "5",
	"?!": "6",
}

// Next returns the next game in the stream, io.EOF at the end, or a
// *ParseError for a malformed game. After a ParseError the parser is
// positioned at the start of the following game.
func (p *Parser) Next() (*Game, error) {
	game := &Game{Headers: map[string]string{}}
	var movetext []string
	seenAny := false
	inMovetext := false
	startLine := 0

	for {
		line, ln, ok := p.nextLine()
		if !ok {
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if inMovetext {
				break
			}
			continue
		}
		// Export-format escape lines.
		if strings.HasPrefix(trimmed, "%") {
			continue
		}

		if m := tagRegex.FindStringSubmatch(trimmed); m != nil {
			if inMovetext {
				// Tag section of the following game.
				p.pushback(line, ln)
				break
			}
			if !seenAny {
				startLine = ln
			}
			seenAny = true
			game.Headers[m[1]] = m[2]
			continue
		}

		if !seenAny {
			startLine = ln
		}
		seenAny = true
		inMovetext = true
		movetext = append(movetext, trimmed)
	}

	if !seenAny {
		return nil, io.EOF
	}

	moves, err := parseMovetext(strings.Join(movetext, "\n"))
	if err != nil {
		return nil, &ParseError{Line: startLine, Msg: err.Error()}
	}
	game.Moves = moves

	return game, nil
}

func (p *Parser) nextLine() (string, int, bool) {
	if p.pushed != nil {
		line, ln := *p.pushed, p.pushedLn
		p.pushed = nil
		return line, ln, true
	}
	if !p.s.Scan() {
		return "", 0, false
	}
	p.line++
	return p.s.Text(), p.line, true
}

func (p *Parser) pushback(line string, ln int) {
	p.pushed = &line
	p.pushedLn = ln
}

// parseMovetext tokenizes a game's movetext: move numbers, SAN tokens,
// {comments}, ;line comments, $n annotations, suffix glyphs, and
// parenthesized variations (skipped, mainline only).
func parseMovetext(text string) ([]Move, error) {
	var moves []Move
	rs := []rune(text)
	i := 0

	for i < len(rs) {
		ch := rs[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '.':
			i++

		case ch == '{':
			end := indexRune(rs, i+1, '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated comment")
			}
			attachComment(moves, strings.TrimSpace(string(rs[i+1:end])))
			i = end + 1

		case ch == ';':
			for i < len(rs) && rs[i] != '\n' {
				i++
			}

		case ch == '(':
			depth := 1
			i++
			for i < len(rs) && depth > 0 {
				switch rs[i] {
				case '(':
					depth++
				case ')':
					depth--
				case '{':
					end := indexRune(rs, i+1, '}')
					if end < 0 {
						return nil, fmt.Errorf("unterminated comment in variation")
					}
					i = end
				}
				i++
			}
			if depth != 0 {
				return nil, fmt.Errorf("unbalanced variation")
			}

		case ch == ')':
			return nil, fmt.Errorf("unexpected ')' in movetext")

		case ch == '$':
			j := i + 1
			for j < len(rs) && rs[j] >= '0' && rs[j] <= '9' {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("empty numeric annotation")
			}
			if len(moves) > 0 {
				appendNAG(&moves[len(moves)-1], string(rs[i+1:j]))
			}
			i = j

		default:
			j := i
			for j < len(rs) && !isTokenBreak(rs[j]) {
				j++
			}
			token := string(rs[i:j])
			i = j
			if err := consumeToken(token, &moves); err != nil {
				return nil, err
			}
		}
	}

	return moves, nil
}

func consumeToken(token string, moves *[]Move) error {
	switch token {
	case "1-0", "0-1", "1/2-1/2", "*":
		// Game terminator.
		return nil
	}
	if moveNumberRegex.MatchString(token) {
		return nil
	}

	san, glyph := splitSuffixGlyph(token)
	if !sanRegex.MatchString(san) {
		return fmt.Errorf("unrecognized movetext token %q", token)
	}

	mv := Move{SAN: san, UCI: strings.TrimRight(san, "+#")}
	if nag, ok := suffixNAGs[glyph]; ok {
		mv.NAG = nag
	}
	*moves = append(*moves, mv)

	return nil
}

func attachComment(moves []Move, comment string) {
	// Comments before the first move annotate the game, not a ply; those
	// are dropped here.
	if len(moves) == 0 || comment == "" {
		return
	}
	last := &moves[len(moves)-1]
	if last.Comment != "" {
		last.Comment += " " + comment
	} else {
		last.Comment = comment
	}
}

func appendNAG(mv *Move, nag string) {
	if mv.NAG == "" {
		mv.NAG = nag
	} else {
		mv.NAG += "," + nag
	}
}

func splitSuffixGlyph(token string) (string, string) {
	i := len(token)
	for i > 0 && (token[i-1] == '!' || token[i-1] == '?') {
		i--
	}
	return token[:i], token[i:]
}

func isTokenBreak(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '.', '{', '}', '(', ')', ';', '$':
		return true
	}
	return false
}

func indexRune(rs []rune, from int, r rune) int {
	for i := from; i < len(rs); i++ {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
