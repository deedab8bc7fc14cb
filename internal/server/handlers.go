package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"onenight/internal/engine"
	"onenight/internal/lobby"
	qr "onenight/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr      *lobby.Manager
	Registry      *engine.Registry
	AnswerTimeout time.Duration

	log  *zap.Logger
	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHandlers(answerTimeout time.Duration, log *zap.Logger) *Handlers {
	reg := engine.NewRegistry()
	return &Handlers{
		LobbyMgr:      lobby.NewManager(reg),
		Registry:      reg,
		AnswerTimeout: answerTimeout,
		log:           log,
		hubs:          make(map[string]*Hub),
	}
}

func (h *Handlers) hub(gameID string) (*Hub, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	hub, ok := h.hubs[gameID]
	return hub, ok
}

// Close stops every hub.
func (h *Handlers) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, hub := range h.hubs {
		hub.Stop()
		delete(h.hubs, id)
	}
}

type createResponse struct {
	GameID  string `json:"game_id"`
	JoinURL string `json:"join_url"`
	QRURL   string `json:"qr_url"`
}

// HandleCreateGame creates a new game lobby and returns its ID.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.LobbyMgr.Create()
	hub := NewHub(gameID, h.LobbyMgr.Get(gameID), h.AnswerTimeout, h.log)
	h.mu.Lock()
	h.hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()

	h.log.Info("game created", zap.String("game_id", gameID))
	writeJSON(w, http.StatusCreated, createResponse{
		GameID:  gameID,
		JoinURL: qr.JoinURL(r.Host, gameID),
		QRURL:   "/api/qr?game=" + gameID,
	})
}

type joinResponse struct {
	GameID   string             `json:"game_id"`
	PlayerID string             `json:"player_id"`
	WSPath   string             `json:"ws_path"`
	Players  []lobby.PlayerInfo `json:"players"`
	Roles    []engine.RoleDef   `json:"roles"`
}

// HandleJoin describes a lobby to a phone that scanned its QR code and
// hands out a fresh player id.
func (h *Handlers) HandleJoin(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	lob := h.LobbyMgr.Get(gameID)
	if lob == nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	id := GeneratePlayerID()
	writeJSON(w, http.StatusOK, joinResponse{
		GameID:   gameID,
		PlayerID: id,
		WSPath:   "/ws?game=" + gameID + "&player=" + id,
		Players:  lob.GetPlayers(),
		Roles:    h.Registry.Defs(),
	})
}

// HandleRoles lists the role catalogue with its allowed counts.
func (h *Handlers) HandleRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Registry.Defs())
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	png, err := qr.Generate(qr.JoinURL(r.Host, gameID), qr.DefaultSize)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	playerID := r.URL.Query().Get("player")

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, ok := h.hub(gameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade error", zap.Error(err))
		return
	}

	client := NewClient(hub, conn, playerID)
	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	id := GeneratePlayerID()
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(id))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
