// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordserve/internal/logger"
	"github.com/bastiangx/wordserve/internal/utils"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// InputHandler processes user input from stdin, providing
// suggestions. It accepts many flags to control behavior such as
// minimum and maximum prefix length, suggestion limits, and filtering options.
type InputHandler struct {
	completer       suggest.ICompleter
	out             *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
	noFilter        bool
	color           bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		out:             logger.NewWithWriter(os.Stderr, ""),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
		color:           true,
	}
}

// SetOutput redirects the prediction listing, without terminal colors.
func (h *InputHandler) SetOutput(w io.Writer) {
	h.out = logger.NewWithWriter(w, "")
	h.color = false
}

// Start begins the interface loop on stdin.
func (h *InputHandler) Start() error {
	h.out.Print("WordServe CLI [BETA]")
	h.out.Print("type a prefix and press Enter to see the predictions (Ctrl+C to exit):")
	return h.Run(os.Stdin)
}

// Run reads one prefix per line from r and prints a prediction set for
// each non-empty line. It returns nil at end of input.
func (h *InputHandler) Run(r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if prefix := strings.TrimSpace(line); prefix != "" {
			h.handleInput(prefix)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

// handleInput validates a single prefix, asks the completer for
// predictions and prints them.
func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++

	if len(prefix) < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter && !utils.IsValidInput(prefix) {
		h.out.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.out.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	h.out.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		word := s.Word
		if h.color {
			word = wordStyle.Render(s.Word)
		}
		h.out.Printf("%2d. %-40s (freq: %8s)", i+1, word, utils.FormatWithCommas(s.Frequency))
	}
}
