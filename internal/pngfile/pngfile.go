// Package pngfile names and writes the PNG captures produced by the window
// and headless front ends.
package pngfile

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Captures are written often and read rarely.
var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Path returns dir/<prefix>_<label>.png with the label made file-safe.
func Path(dir, prefix, label string) string {
	return filepath.Join(dir, prefix+"_"+Label(label)+".png")
}

// Write encodes img to path, creating any missing parent directories.
func Write(path string, img image.Image) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("pngfile: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pngfile: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := encoder.Encode(f, img); err != nil {
		return fmt.Errorf("pngfile: encode %s: %w", path, err)
	}
	return nil
}

// Label maps a snapshot label onto a file-name fragment. ASCII letters,
// digits, '-' and '.' pass through; every other rune becomes '_'. Blank
// labels become "unlabeled".
func Label(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, s)
}
