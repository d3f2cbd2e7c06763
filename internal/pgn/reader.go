package pgn

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrUndecodable marks a file that could not be decoded with any of the
// configured encodings. It is file-scoped: the caller skips the file and
// continues with the rest of the folder.
var ErrUndecodable = errors.New("pgn: file not decodable with any configured encoding")

// DefaultEncodings is the ordered fallback list used when no encodings are
// configured. Third-party chess tools commonly export latin-1.
var DefaultEncodings = []string{"utf-8", "latin-1", "iso-8859-1"}

// DecodeFile reads the file at path and decodes it with the first encoding
// in the list that accepts its bytes. The UTF-8 attempt is strict, so a
// latin-1 export genuinely falls through to the charmap decoders; the
// 8859-family decoders accept any byte sequence, which terminates the
// chain. It returns the decoded text and the hex SHA-256 checksum of the
// raw bytes.
func DecodeFile(path string, encodings []string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	sum := sha256.Sum256(raw)
	checksum := hex.EncodeToString(sum[:])

	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}

	for _, name := range encodings {
		text, ok, err := decode(raw, name)
		if err != nil {
			return "", checksum, err
		}
		if ok {
			return text, checksum, nil
		}
	}

	return "", checksum, fmt.Errorf("%w: %s", ErrUndecodable, path)
}

func decode(raw []byte, encoding string) (string, bool, error) {
	switch normalizeEncoding(encoding) {
	case "utf-8":
		if !utf8.Valid(raw) {
			return "", false, nil
		}
		return string(raw), true, nil
	case "latin-1", "iso-8859-1":
		text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false, nil
		}
		return string(text), true, nil
	case "iso-8859-15":
		text, err := charmap.ISO8859_15.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false, nil
		}
		return string(text), true, nil
	case "windows-1252", "cp1252":
		text, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false, nil
		}
		return string(text), true, nil
	default:
		return "", false, fmt.Errorf("pgn: unknown encoding %q", encoding)
	}
}

func normalizeEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "utf8":
		return "utf-8"
	case "latin1":
		return "latin-1"
	case "iso8859-1", "iso_8859-1":
		return "iso-8859-1"
	}
	return name
}
