// Package document turns uploaded resume files into plain text.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned for files the extractor cannot read.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extractor converts a raw document into plain text.
type Extractor interface {
	Extract(name string, r io.Reader) (string, error)
}

// maxSize bounds the bytes read from a single document.
const maxSize = 5 << 20

// PlainText reads UTF-8 text documents.
type PlainText struct{}

var plainTextExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".text": true,
}

// Extract returns the document text with Windows line endings normalised.
func (PlainText) Extract(name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !plainTextExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxSize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8 text", ErrUnsupportedFormat, name)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.TrimSpace(text), nil
}

// ReadFile opens path and extracts its text with e.
func ReadFile(e Extractor, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return e.Extract(filepath.Base(path), file)
}
