package server

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/modularizer/automobile-complete/pkg/session"
)

// ReloadFunc supplies fresh dictionary text for the "reload" op.
type ReloadFunc func() (string, error)

// Server handles the IPC for one completion session.
type Server struct {
	sess   *session.Session
	reload ReloadFunc
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
}

// NewServer creates a completion server using stdin/stdout for IPC.
func NewServer(sess *session.Session, reload ReloadFunc) *Server {
	return NewServerIO(sess, reload, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on explicit streams.
func NewServerIO(sess *session.Session, reload ReloadFunc, r io.Reader, w io.Writer) *Server {
	return &Server{
		sess:   sess,
		reload: reload,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start begins the request loop. It returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting server")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	start := time.Now()
	switch req.Op {
	case "text":
		if err := s.sess.HandleTextChange(req.Text); err != nil {
			s.sendError(req.ID, err)
			return
		}
		s.sendState(req.ID, start)
	case "key":
		if err := s.handleKey(req.Key); err != nil {
			s.sendError(req.ID, err)
			return
		}
		s.sendState(req.ID, start)
	case "save":
		if req.Prefix == "" || req.Completion == "" {
			s.send(ErrorResponse{ID: req.ID, Error: "save requires 'p' and 'c'", Code: 400})
			return
		}
		if err := s.sess.SaveWord(req.Prefix, req.Completion); err != nil {
			s.sendError(req.ID, err)
			return
		}
		s.sendState(req.ID, start)
	case "reload":
		s.handleReload(req)
	case "stats":
		s.send(StatusResponse{ID: req.ID, Status: "ok", Stats: s.sess.Trie().Stats()})
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.send(ErrorResponse{ID: req.ID, Error: "unknown op: " + req.Op, Code: 400})
	}
}

func (s *Server) handleKey(key string) error {
	switch key {
	case "tab", "enter":
		return s.sess.HandleTabOrEnter()
	case "up":
		return s.sess.HandleArrowUp()
	case "down":
		return s.sess.HandleArrowDown()
	default:
		return errBadKey
	}
}

var errBadKey = errors.New("unknown key")

func (s *Server) handleReload(req Request) {
	if s.reload == nil {
		s.send(ErrorResponse{ID: req.ID, Error: "no reload source configured", Code: 400})
		return
	}
	text, err := s.reload()
	if err != nil {
		log.Errorf("Reload source: %v", err)
		s.send(ErrorResponse{ID: req.ID, Error: err.Error(), Code: 500})
		return
	}
	if err := s.sess.Reload(text); err != nil {
		s.sendError(req.ID, err)
		return
	}
	s.send(StatusResponse{ID: req.ID, Status: "reloaded", Stats: s.sess.Trie().Stats()})
}

func (s *Server) sendState(id string, start time.Time) {
	st, err := s.sess.State()
	if err != nil {
		s.sendError(id, err)
		return
	}
	resp := StateResponse{
		ID:         id,
		Text:       st.Text,
		Prefix:     st.Prefix,
		Suggestion: st.Suggestion,
		Focused:    st.Focused,
		TabTarget:  st.TabTarget,
		TimeTaken:  time.Since(start).Microseconds(),
	}
	for _, o := range st.Options {
		resp.Options = append(resp.Options, OptionPayload{
			TypedPrefix:     o.TypedPrefix,
			RemainingPrefix: o.RemainingPrefix,
			Completion:      o.Completion,
			Freq:            o.Freq,
			FullReplacement: o.FullReplacement,
		})
	}
	s.send(resp)
}

// sendError maps session errors to codes: contract violations are server
// faults, bad keys are client faults.
func (s *Server) sendError(id string, err error) {
	code := 500
	if errors.Is(err, errBadKey) {
		code = 400
	}
	s.send(ErrorResponse{ID: id, Error: err.Error(), Code: code})
}

func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}
