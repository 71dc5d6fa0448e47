// Package dictionary loads newline-delimited word lists into a dicttree.Tree.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/wordserve/pkg/dicttree"
	"github.com/charmbracelet/log"
)

// BaseScore is the score of the first word of a list. Every following line
// scores one less, so earlier words always rank higher.
const BaseScore = 100003

// LoaderStats describes a finished load.
type LoaderStats struct {
	Lines     int
	FirstRank int
	LastRank  int
}

// LoadWords reads one word per line from r into a new tree, scoring lines
// from BaseScore downwards.
func LoadWords(r io.Reader) (*dicttree.Tree, error) {
	tree := dicttree.New()
	if _, err := LoadWordsInto(tree, r, BaseScore); err != nil {
		return tree, err
	}
	return tree, nil
}

// LoadWordsInto inserts the lines of r into tree, giving the first line the
// score base and decrementing for each line after it. Blank lines still
// consume a score. On a read error the words inserted so far remain.
func LoadWordsInto(tree *dicttree.Tree, r io.Reader, base int) (LoaderStats, error) {
	reader := bufio.NewReader(r)
	stats := LoaderStats{FirstRank: base, LastRank: base}
	score := base

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			word := strings.TrimRight(line, "\r\n")
			tree.Insert(word, score)
			stats.LastRank = score
			stats.Lines++
			score--
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return stats, fmt.Errorf("failed to read word list at line %d: %w", stats.Lines+1, err)
		}
	}

	log.Debugf("Loaded %d lines, scores %d..%d", stats.Lines, stats.FirstRank, stats.LastRank)
	return stats, nil
}

// LoadFile validates and loads a word list file.
func LoadFile(filename string) (*dicttree.Tree, error) {
	return LoadFileWithBase(filename, BaseScore)
}

// LoadFileWithBase is LoadFile with a custom score for the first line.
func LoadFileWithBase(filename string, base int) (*dicttree.Tree, error) {
	if err := ValidateTextFile(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", filename, err)
	}
	defer file.Close()

	tree := dicttree.New()
	if _, err := LoadWordsInto(tree, file, base); err != nil {
		return tree, err
	}
	return tree, nil
}
