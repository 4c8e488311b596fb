package server

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Server is the HTTP server fronting the modem core: upload payloads or
// captures, trigger transmit/receive, list devices, and stream capture
// telemetry over a websocket.
type Server struct {
	mux     *http.ServeMux
	handler *Handlers
	addr    string
	log     zerolog.Logger
}

// NewServer creates a new HTTP server.
func NewServer(addr string, handler *Handlers, log zerolog.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		handler: handler,
		addr:    addr,
		log:     log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/upload", s.handler.HandleUpload)
	s.mux.HandleFunc("/api/send", s.handler.HandleSend)
	s.mux.HandleFunc("/api/receive", s.handler.HandleReceive)
	s.mux.HandleFunc("/api/devices", s.handler.HandleDevices)
	s.mux.HandleFunc("/api/download/", s.handler.HandleDownload)

	s.mux.HandleFunc("/ws", s.handler.HandleWebSocket)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.addr).Msg("starting modem HTTP server")
	return http.ListenAndServe(s.addr, s.mux)
}
