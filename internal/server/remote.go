package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"onenight/internal/engine"
	"onenight/internal/protocol"
)

// envelopeSender is the part of a Client a RemoteParticipant writes to.
type envelopeSender interface {
	SendEnvelope(env protocol.Envelope) error
}

type pendingRequest struct {
	env   protocol.Envelope
	reply chan protocol.Envelope
}

// RemoteParticipant sits a websocket player at an engine table. Every
// choice is a request envelope answered by an answer envelope carrying
// the same id, and each wait is bounded by timeout.
type RemoteParticipant struct {
	name    string
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	conn    envelopeSender
	pending map[string]*pendingRequest
}

func NewRemoteParticipant(name string, conn envelopeSender, timeout time.Duration, log *zap.Logger) *RemoteParticipant {
	return &RemoteParticipant{
		name:    name,
		timeout: timeout,
		log:     log.With(zap.String("player", name)),
		conn:    conn,
		pending: make(map[string]*pendingRequest),
	}
}

func (r *RemoteParticipant) Name() string { return r.name }

// Attach swaps the connection after a reconnect and replays any request
// still waiting for an answer. A nil conn detaches.
func (r *RemoteParticipant) Attach(conn envelopeSender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conn = conn
	if conn == nil {
		return
	}
	for id, p := range r.pending {
		if err := conn.SendEnvelope(p.env); err != nil {
			r.log.Warn("replay failed", zap.String("request_id", id), zap.Error(err))
		}
	}
}

// Detach drops conn if it is still the attached connection. A socket that
// was already replaced by a reconnect leaves the new one in place.
func (r *RemoteParticipant) Detach(conn envelopeSender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == conn {
		r.conn = nil
	}
}

// Deliver routes an answer to the request it replies to. It reports
// false for unknown or already answered ids.
func (r *RemoteParticipant) Deliver(env protocol.Envelope) bool {
	r.mu.Lock()
	p, ok := r.pending[env.ID]
	delete(r.pending, env.ID)
	r.mu.Unlock()
	if !ok {
		return false
	}
	p.reply <- env
	return true
}

func (r *RemoteParticipant) notify(typ string, payload any) error {
	env, err := protocol.NewEnvelope(typ, payload)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn == nil {
		return fmt.Errorf("%w: %s is disconnected", engine.ErrCommunication, r.name)
	}
	if err := r.conn.SendEnvelope(env); err != nil {
		return fmt.Errorf("%w: %s: %v", engine.ErrCommunication, r.name, err)
	}
	return nil
}

// request sends a question and waits for its answer. A disconnected
// player may still answer after reconnecting, within the timeout.
func (r *RemoteParticipant) request(ctx context.Context, typ string, payload any) (protocol.AnswerMsg, error) {
	id := uuid.NewString()
	env, err := protocol.NewRequest(typ, id, payload)
	if err != nil {
		return protocol.AnswerMsg{}, err
	}
	p := &pendingRequest{env: env, reply: make(chan protocol.Envelope, 1)}

	r.mu.Lock()
	r.pending[id] = p
	if r.conn != nil {
		if err := r.conn.SendEnvelope(env); err != nil {
			r.log.Warn("request not sent", zap.String("type", typ), zap.Error(err))
		}
	}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.pending, id)
		r.mu.Unlock()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case reply := <-p.reply:
		if reply.Type != protocol.MsgAnswer {
			return protocol.AnswerMsg{}, fmt.Errorf("%w: %s sent %q", engine.ErrUnexpectedResponse, r.name, reply.Type)
		}
		var ans protocol.AnswerMsg
		if err := reply.Decode(&ans); err != nil {
			return protocol.AnswerMsg{}, fmt.Errorf("%w: %s: %v", engine.ErrUnexpectedResponse, r.name, err)
		}
		return ans, nil
	case <-timer.C:
		return protocol.AnswerMsg{}, fmt.Errorf("%w: %s did not answer %s within %s", engine.ErrCommunication, r.name, typ, r.timeout)
	case <-ctx.Done():
		return protocol.AnswerMsg{}, fmt.Errorf("%w: %s: %v", engine.ErrCommunication, r.name, ctx.Err())
	}
}

func target(t engine.RoleTarget) protocol.Target {
	if t.IsCenter() {
		return protocol.Target{Center: t.Center}
	}
	return protocol.Target{Player: t.Player.Name(), Center: -1}
}

func names(ps []engine.Participant) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name()
	}
	return out
}

func (r *RemoteParticipant) ShowRole(_ context.Context, t engine.RoleTarget, role engine.Role) error {
	return r.notify(protocol.MsgShowRole, protocol.ShowRoleMsg{Target: target(t), Role: role.VerboseID()})
}

func (r *RemoteParticipant) ShowRoleType(_ context.Context, t engine.RoleTarget, typ engine.RoleType) error {
	return r.notify(protocol.MsgShowRoleType, protocol.ShowRoleTypeMsg{Target: target(t), Type: string(typ)})
}

func (r *RemoteParticipant) ChoosePlayer(ctx context.Context, candidates []engine.Participant) (engine.Participant, error) {
	ans, err := r.request(ctx, protocol.MsgChoosePlayer, protocol.ChoosePlayerMsg{Candidates: names(candidates)})
	if err != nil {
		return nil, err
	}
	if ans.Player == nil {
		return nil, fmt.Errorf("%w: %s answered without a player", engine.ErrUnexpectedResponse, r.name)
	}
	for _, c := range candidates {
		if c.Name() == *ans.Player {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s chose %q", engine.ErrInvalidChoice, r.name, *ans.Player)
}

func (r *RemoteParticipant) ChooseBool(ctx context.Context) (bool, error) {
	ans, err := r.request(ctx, protocol.MsgChooseBool, struct{}{})
	if err != nil {
		return false, err
	}
	if ans.Bool == nil {
		return false, fmt.Errorf("%w: %s answered without a yes/no", engine.ErrUnexpectedResponse, r.name)
	}
	return *ans.Bool, nil
}

func (r *RemoteParticipant) ChooseNum(ctx context.Context, choices []int) (int, error) {
	ans, err := r.request(ctx, protocol.MsgChooseNum, protocol.ChooseNumMsg{Choices: choices})
	if err != nil {
		return 0, err
	}
	if ans.Num == nil {
		return 0, fmt.Errorf("%w: %s answered without a number", engine.ErrUnexpectedResponse, r.name)
	}
	return *ans.Num, nil
}

func (r *RemoteParticipant) ReceiveMessage(_ context.Context, msg engine.Message) error {
	return r.notify(protocol.MsgMessage, chatFromMessage(msg))
}

func (r *RemoteParticipant) Handshake(_ context.Context, others []engine.Participant, roles map[string]int) error {
	return r.notify(protocol.MsgHandshake, protocol.HandshakeMsg{Others: names(others), Roles: roles})
}

func (r *RemoteParticipant) ShowTime(_ context.Context, t engine.Time) error {
	return r.notify(protocol.MsgTime, protocol.TimeMsg{
		Phase:   t.Phase.String(),
		Role:    t.Role,
		Dead:    names(t.Dead),
		Winners: names(t.Winners),
	})
}

func (r *RemoteParticipant) ShowWin(_ context.Context, won bool) error {
	return r.notify(protocol.MsgWin, protocol.WinMsg{Won: won})
}

func chatFromMessage(msg engine.Message) protocol.ChatMsg {
	out := protocol.ChatMsg{
		Kind:    string(msg.Kind),
		Topic:   string(msg.Topic),
		Role:    msg.Role,
		Targets: names(msg.Targets),
		Text:    msg.Text,
	}
	if msg.Sender != nil {
		out.Sender = msg.Sender.Name()
	}
	if msg.Addressee != nil {
		out.Addressee = msg.Addressee.Name()
	}
	return out
}
