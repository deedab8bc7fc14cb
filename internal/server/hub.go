package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"onenight/internal/bot"
	"onenight/internal/engine"
	"onenight/internal/lobby"
	"onenight/internal/protocol"
)

// Hub manages WebSocket connections and the game for one room. All state
// below is owned by the Run goroutine; the game itself is driven by its
// own goroutine once started.
type Hub struct {
	gameID        string
	lobby         *lobby.Lobby
	log           *zap.Logger
	answerTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	game    *engine.Game
	seats   map[string]engine.Participant // by lobby player id
	remotes map[string]*RemoteParticipant // by lobby player id
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	finished   chan gameOutcome
	quit       chan struct{}
	done       chan struct{}
}

type gameOutcome struct {
	result engine.Result
	err    error
}

func NewHub(gameID string, lob *lobby.Lobby, answerTimeout time.Duration, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		gameID:        gameID,
		lobby:         lob,
		log:           log.With(zap.String("game_id", gameID)),
		answerTimeout: answerTimeout,
		ctx:           ctx,
		cancel:        cancel,
		seats:         make(map[string]engine.Participant),
		remotes:       make(map[string]*RemoteParticipant),
		clients:       make(map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		incoming:      make(chan IncomingMessage, 256),
		finished:      make(chan gameOutcome, 1),
		quit:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if r, ok := h.remotes[client.PlayerID]; ok {
				r.Attach(client)
			}
			h.sendLobbyUpdate()

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
				if r, ok := h.remotes[client.PlayerID]; ok {
					r.Detach(client)
				}
				// A player who drops out of the lobby gives up the seat,
				// unless another socket already took it over.
				if client.PlayerID != "" && !h.lobby.IsStarted() && h.clientFor(client.PlayerID) == nil {
					h.lobby.Leave(client.PlayerID)
					h.sendLobbyUpdate()
				}
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case out := <-h.finished:
			h.handleFinished(out)

		case <-h.quit:
			h.cancel()
			for client := range h.clients {
				client.close()
			}
			return
		}
	}
}

// Stop cancels a running game and ends Run.
func (h *Hub) Stop() {
	close(h.quit)
	<-h.done
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgAddBot:
		h.handleAddBot(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgAnswer:
		h.handleAnswer(msg)
	case protocol.MsgSay:
		h.handleSay(msg)
	default:
		h.sendError(msg.Client, fmt.Sprintf("unknown message type %q", msg.Envelope.Type))
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &join); err != nil || join.PlayerID == "" || join.Name == "" {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	msg.Client.PlayerID = join.PlayerID
	if r, ok := h.remotes[join.PlayerID]; ok {
		// Rejoining a running game.
		r.Attach(msg.Client)
		return
	}
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.log.Info("player joined", zap.String("player_id", join.PlayerID), zap.String("name", join.Name))
	h.sendLobbyUpdate()
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleAddBot(msg IncomingMessage) {
	var add protocol.AddBotMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &add); err != nil || add.Name == "" {
		h.sendError(msg.Client, "invalid add_bot message")
		return
	}
	if _, err := h.lobby.AddBot(add.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	var start protocol.StartGameMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &start); err != nil {
		h.sendError(msg.Client, "invalid start_game message")
		return
	}
	if err := h.lobby.SetRoles(start.Roles, start.LoneWolf); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	roles, err := h.lobby.Start()
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	lobbyPlayers := h.lobby.GetPlayers()
	players := make([]engine.Participant, len(lobbyPlayers))
	for i, lp := range lobbyPlayers {
		if lp.Bot {
			players[i] = bot.New(lp.Name, uint64(time.Now().UnixNano())+uint64(i), h.log)
		} else {
			r := NewRemoteParticipant(lp.Name, h.clientFor(lp.ID), h.answerTimeout, h.log)
			h.remotes[lp.ID] = r
			players[i] = r
		}
		h.seats[lp.ID] = players[i]
	}

	opts := engine.DefaultOptions()
	opts.LoneWolf = start.LoneWolf
	opts.Logger = h.log
	g, err := engine.New(players, roles, opts)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.game = g
	h.sendLobbyUpdate()

	go func() {
		err := g.Play(h.ctx, nil)
		h.finished <- gameOutcome{result: g.Result(), err: err}
	}()
}

// clientFor returns the connected client of a lobby player, or nil.
func (h *Hub) clientFor(playerID string) envelopeSender {
	for c := range h.clients {
		if c.PlayerID == playerID {
			return c
		}
	}
	return nil
}

func (h *Hub) handleAnswer(msg IncomingMessage) {
	r, ok := h.remotes[msg.Client.PlayerID]
	if !ok || !r.Deliver(msg.Envelope) {
		h.sendError(msg.Client, "no question pending for this answer")
	}
}

func (h *Hub) handleSay(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, "game not started")
		return
	}
	sender, ok := h.seats[msg.Client.PlayerID]
	if !ok {
		h.sendError(msg.Client, "not seated")
		return
	}
	var chat protocol.ChatMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &chat); err != nil {
		h.sendError(msg.Client, "invalid say message")
		return
	}
	m, err := messageFromChat(h.game.Players(), sender, chat)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	g := h.game
	go func() {
		if err := g.SendMessage(h.ctx, m); err != nil {
			h.log.Warn("relay failed", zap.Error(err))
		}
	}()
}

var errUnknownPlayer = errors.New("unknown player")

func messageFromChat(players []engine.Participant, sender engine.Participant, chat protocol.ChatMsg) (engine.Message, error) {
	byName := make(map[string]engine.Participant, len(players))
	for _, p := range players {
		byName[p.Name()] = p
	}
	m := engine.Message{
		Sender: sender,
		Kind:   engine.MessageKind(chat.Kind),
		Topic:  engine.Topic(chat.Topic),
		Role:   chat.Role,
		Text:   chat.Text,
	}
	if chat.Addressee != "" {
		p, ok := byName[chat.Addressee]
		if !ok {
			return engine.Message{}, fmt.Errorf("%w: %q", errUnknownPlayer, chat.Addressee)
		}
		m.Addressee = p
	}
	for _, name := range chat.Targets {
		p, ok := byName[name]
		if !ok {
			return engine.Message{}, fmt.Errorf("%w: %q", errUnknownPlayer, name)
		}
		m.Targets = append(m.Targets, p)
	}
	return m, nil
}

func (h *Hub) handleFinished(out gameOutcome) {
	over := protocol.GameOverMsg{
		Votes:      out.result.Votes,
		Dead:       out.result.Dead,
		Winners:    out.result.Winners,
		FinalRoles: out.result.FinalRoles,
	}
	if out.err != nil {
		h.log.Error("game aborted", zap.Error(out.err))
		over.Error = out.err.Error()
	} else {
		h.log.Info("game finished", zap.Strings("winners", out.result.Winners))
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameOver, over))
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready, Bot: p.Bot}
	}
	env := protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:   h.gameID,
		Players:  lps,
		Roles:    h.lobby.RoleMix(),
		Started:  h.lobby.IsStarted(),
		CanStart: !h.lobby.IsStarted() && h.lobby.CanStart(),
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal error", zap.Error(err))
		return
	}
	for client := range h.clients {
		_ = client.sendRaw(data)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	_ = client.SendEnvelope(env)
}
