package dictionary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// ErrEmptyWordList is returned for word list files without any content.
var ErrEmptyWordList = errors.New("word list is empty")

// textExtensions are the extensions a word list is expected to carry.
// Files with other extensions are still loaded, with a warning.
var textExtensions = []string{".txt", ".lst", ".words", ""}

// ValidateTextFile checks that filename is a readable, non-empty text file.
func ValidateTextFile(filename string) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, expected a word list", filename)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("%s: %w", filename, ErrEmptyWordList)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, e := range textExtensions {
		if ext == e {
			validExt = true
			break
		}
	}
	if !validExt {
		log.Warnf("Word list %s has unexpected extension %s (expected one of %v)", filename, ext, textExtensions)
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	if !utf8.Valid(trimPartialRune(buffer[:n])) {
		log.Warnf("Word list %s does not look like UTF-8 text, bytes are indexed as-is", filename)
	}

	log.Debugf("Text file %s validated", filename)
	return nil
}

// trimPartialRune drops a rune cut off at the end of a read buffer.
func trimPartialRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return b
		}
		b = b[:len(b)-1]
	}
	return b
}
