package pgn

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestDecodeFileUTF8(t *testing.T) {
	raw := []byte("[White \"Réti\"]\n\n1. Nf3 d5 *\n")
	path := writeTemp(t, "utf8.pgn", raw)

	text, checksum, err := DecodeFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != string(raw) {
		t.Fatalf("expected passthrough decode for valid utf-8")
	}

	sum := sha256.Sum256(raw)
	if checksum != hex.EncodeToString(sum[:]) {
		t.Fatalf("unexpected checksum %s", checksum)
	}
}

func TestDecodeFileFallsBackToLatin1(t *testing.T) {
	// 0xE9 is latin-1 "é" and invalid as a standalone UTF-8 byte.
	raw := []byte("[White \"R\xe9ti\"]\n")
	path := writeTemp(t, "latin1.pgn", raw)

	text, _, err := DecodeFile(path, nil)
	if err != nil {
		t.Fatalf("expected fallback decode, got error: %v", err)
	}
	if !strings.Contains(text, "Réti") {
		t.Fatalf("expected latin-1 bytes decoded, got %q", text)
	}
}

func TestDecodeFileExhaustsEncodings(t *testing.T) {
	raw := []byte("pr\xffix")
	path := writeTemp(t, "bad.pgn", raw)

	_, _, err := DecodeFile(path, []string{"utf-8"})
	if !errors.Is(err, ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}

func TestDecodeFileStopsAtFirstSuccess(t *testing.T) {
	raw := []byte("plain ascii\n")
	path := writeTemp(t, "ascii.pgn", raw)

	// The unknown encoding after utf-8 must never be consulted.
	text, _, err := DecodeFile(path, []string{"utf-8", "no-such-encoding"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != string(raw) {
		t.Fatalf("unexpected decode result %q", text)
	}
}

func TestDecodeFileUnknownEncoding(t *testing.T) {
	path := writeTemp(t, "x.pgn", []byte("\xff"))
	if _, _, err := DecodeFile(path, []string{"utf-8", "no-such-encoding"}); err == nil {
		t.Fatalf("expected error for unknown encoding name")
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, _, err := DecodeFile(filepath.Join(t.TempDir(), "absent.pgn"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
