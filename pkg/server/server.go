package server

import (
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/argcmd/pkg/config"
	"github.com/bastiangx/argcmd/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for command completions
type Server struct {
	completer suggest.ICompleter
	config    config.ServerConfig
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
}

// NewServerWithIO creates a completion server on the given streams
func NewServerWithIO(completer suggest.ICompleter, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(r),
		encoder:   msgpack.NewEncoder(w),
	}
}

// Start answers requests until the input is closed.
// A value that cannot be decoded ends the loop, the stream cannot be resynced.
func (s *Server) Start() error {
	log.Debug("Starting IPC server")

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Client closed input")
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			_ = s.sendError("", "invalid msgpack request", 400)
			return err
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(req Request) error {
	switch req.Action {
	case "", "complete":
		return s.handleComplete(req)
	case "health":
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "stats":
		stats := s.completer.Stats()
		return s.send(StatsResponse{
			ID:     req.ID,
			Status: "ok",
			Nodes:  stats["nodes"],
			Words:  stats["words"],
		})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

// handleComplete validates the prefix against the [server] bounds, caps the
// limit at max_limit and answers with the candidates in trie order.
func (s *Server) handleComplete(req Request) error {
	prefixLen := utf8.RuneCountInString(req.Prefix)
	if prefixLen < s.config.MinPrefix {
		log.Debug("Prefix too short", "id", req.ID, "prefix", req.Prefix)
		return s.sendError(req.ID, fmt.Sprintf("prefix must be at least %d characters", s.config.MinPrefix), 400)
	}
	if s.config.MaxPrefix > 0 && prefixLen > s.config.MaxPrefix {
		log.Debug("Prefix too long", "id", req.ID, "len", prefixLen)
		return s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d characters", s.config.MaxPrefix), 400)
	}

	start := time.Now()
	var suggestions []CompletionSuggestion

	if req.Index != nil {
		if word, ok := s.completer.CompleteAt(req.Prefix, *req.Index); ok {
			suggestions = append(suggestions, CompletionSuggestion{Word: word, Rank: 1})
		}
	} else {
		limit := req.Limit
		if limit < 1 || (s.config.MaxLimit > 0 && limit > s.config.MaxLimit) {
			limit = s.config.MaxLimit
		}
		for _, sg := range s.completer.Complete(req.Prefix, limit) {
			suggestions = append(suggestions, CompletionSuggestion{Word: sg.Word, Rank: sg.Rank})
		}
	}

	if suggestions == nil {
		suggestions = []CompletionSuggestion{}
	}
	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}
