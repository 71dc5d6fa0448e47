package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordserve/internal/utils"
	"github.com/bastiangx/wordserve/pkg/config"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word completions
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	out          *bufio.Writer
	requestCount int
}

// NewServer creates a new completion server using stdin/stdout for IPC
func NewServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	return NewServerWithIO(completer, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// responses to w.
func NewServerWithIO(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	out := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(out)
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:   enc,
		out:       out,
	}
}

// Start processes requests until the input stream ends.
func (s *Server) Start() error {
	log.Debug("Starting IPC server")

	for {
		var req Request
		err := s.decoder.Decode(&req)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("IPC input closed after %d requests", s.requestCount)
				return nil
			}
			// the stream cannot be resynchronized after a framing error
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.requestCount++
		s.handleRequest(req)
	}
}

// RequestCount returns the number of requests served.
func (s *Server) RequestCount() int {
	return s.requestCount
}

func (s *Server) handleRequest(req Request) {
	if req.Action != "" {
		s.handleDictionary(DictionaryRequest{ID: req.ID, Action: req.Action, Word: req.Word, Score: req.Score})
		return
	}
	s.handleComplete(CompletionRequest{ID: req.ID, Prefix: req.Prefix, Limit: req.Limit})
}

// validatePrefix checks a prefix against the configured length bounds.
func validatePrefix(cfg *config.Config, prefix string) error {
	if prefix == "" {
		return errors.New("missing prefix")
	}
	if len(prefix) < cfg.Server.MinPrefix {
		return fmt.Errorf("prefix must be at least %d characters", cfg.Server.MinPrefix)
	}
	if len(prefix) > cfg.Server.MaxPrefix {
		return fmt.Errorf("prefix exceeds maximum length of %d characters", cfg.Server.MaxPrefix)
	}
	return nil
}

// handleComplete answers a completion request.
func (s *Server) handleComplete(req CompletionRequest) {
	if err := validatePrefix(s.config, req.Prefix); err != nil {
		log.Debug("Rejected completion request", "id", req.ID, "err", err)
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	start := time.Now()
	suggestions := s.completer.Complete(req.Prefix, s.config.ClampLimit(req.Limit))
	elapsed := time.Since(start)

	s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: rankSuggestions(suggestions),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

// rankSuggestions converts ordered suggestions to positional ranks, 1 first.
func rankSuggestions(suggestions []suggest.Suggestion) []CompletionSuggestion {
	ranks := utils.CreateRankList(len(suggestions))
	result := make([]CompletionSuggestion, len(suggestions))
	for i, s := range suggestions {
		result[i] = CompletionSuggestion{Word: s.Word, Rank: ranks[i], Freq: s.Frequency}
	}
	return result
}

// handleDictionary answers a dictionary management request.
func (s *Server) handleDictionary(req DictionaryRequest) {
	resp := DictionaryResponse{ID: req.ID, Status: "ok"}

	switch req.Action {
	case ActionInsert:
		if req.Word == "" {
			s.sendError(req.ID, "missing word", 400)
			return
		}
		if req.Score == nil {
			s.completer.AddUnranked(req.Word)
			log.Debug("Inserted unranked word", "word", req.Word)
			break
		}
		s.completer.AddWord(req.Word, *req.Score)
		log.Debug("Inserted word", "word", req.Word, "score", *req.Score)
	case ActionRemove:
		resp.Removed = s.completer.RemoveWord(req.Word)
	case ActionContains:
		resp.Found = s.completer.Contains(req.Word)
	case ActionStats:
		resp.Stats = s.completer.Stats()
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
		return
	}
	s.send(resp)
}

// send encodes one response and flushes it to the client.
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(CompletionError{ID: id, Error: message, Code: code})
}
