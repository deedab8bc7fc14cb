package engine

import (
	"context"
	"fmt"
)

// Participant is anything that can sit at the table: a websocket client,
// a bot, or a scripted test double. Identity is the name.
//
// Every method may block on the other side. Implementations return
// errors wrapping ErrCommunication or ErrUnexpectedResponse.
type Participant interface {
	Name() string
	ShowRole(ctx context.Context, target RoleTarget, role Role) error
	ShowRoleType(ctx context.Context, target RoleTarget, roleType RoleType) error
	ChoosePlayer(ctx context.Context, candidates []Participant) (Participant, error)
	ChooseBool(ctx context.Context) (bool, error)
	ChooseNum(ctx context.Context, choices []int) (int, error)
	ReceiveMessage(ctx context.Context, msg Message) error
	Handshake(ctx context.Context, others []Participant, roles map[string]int) error
	ShowTime(ctx context.Context, t Time) error
	ShowWin(ctx context.Context, won bool) error
}

// RoleTarget names the card a reveal refers to: a player's card or a
// center slot.
type RoleTarget struct {
	Player Participant
	Center int
}

func PlayerTarget(p Participant) RoleTarget {
	return RoleTarget{Player: p, Center: -1}
}

func CenterTarget(slot int) RoleTarget {
	return RoleTarget{Center: slot}
}

func (t RoleTarget) IsCenter() bool { return t.Player == nil }

func (t RoleTarget) String() string {
	if t.IsCenter() {
		return fmt.Sprintf("center %d", t.Center)
	}
	return t.Player.Name()
}

// MessageKind classifies table talk.
type MessageKind string

const (
	MessageClaim    MessageKind = "claim"
	MessageClaimNot MessageKind = "claim_not"
	MessageQuestion MessageKind = "question"
)

// Topic is what a claim or question is about.
type Topic string

const (
	TopicWhatRole   Topic = "what_role"
	TopicIsRole     Topic = "is_role"
	TopicActionSelf Topic = "action_self"
	TopicActionOne  Topic = "action_one"
	TopicActionTwo  Topic = "action_two"
)

// Message is a free-text claim or question relayed to the table. The
// engine does not interpret it.
type Message struct {
	Sender    Participant
	Kind      MessageKind
	Topic     Topic
	Role      string
	Addressee Participant   // questions only
	Targets   []Participant // action topics
	Text      string
}
