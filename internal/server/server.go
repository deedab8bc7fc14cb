package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"onenight/internal/config"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	log      *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		handlers: NewHandlers(cfg.AnswerTimeout, log),
		port:     cfg.Port,
		log:      log,
	}
}

// Handler returns the routes without binding a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("/api/join", s.handlers.HandleJoin)
	mux.HandleFunc("/api/roles", s.handlers.HandleRoles)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	return mux
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("one night server starting", zap.String("addr", "http://localhost"+addr))
	s.log.Info("create a game", zap.String("url", "http://localhost"+addr+"/api/create"))
	return http.ListenAndServe(addr, s.Handler())
}

// Close stops every running game.
func (s *Server) Close() {
	s.handlers.Close()
}
