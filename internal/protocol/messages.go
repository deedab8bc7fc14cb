package protocol

// Message types: Server → Client
const (
	MsgLobbyUpdate  = "lobby_update"
	MsgHandshake    = "handshake"
	MsgTime         = "time"
	MsgShowRole     = "show_role"
	MsgShowRoleType = "show_role_type"
	MsgChoosePlayer = "choose_player"
	MsgChooseBool   = "choose_bool"
	MsgChooseNum    = "choose_num"
	MsgMessage      = "message"
	MsgWin          = "win"
	MsgGameOver     = "game_over"
	MsgError        = "error"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	MsgAddBot    = "add_bot"
	MsgAnswer    = "answer"
	MsgSay       = "say"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID   string         `json:"game_id"`
	Players  []LobbyPlayer  `json:"players"`
	Roles    map[string]int `json:"roles"`
	Started  bool           `json:"started"`
	CanStart bool           `json:"can_start"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Bot   bool   `json:"bot,omitempty"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// StartGameMsg carries the role mix: role name to number of copies.
type StartGameMsg struct {
	Roles    map[string]int `json:"roles"`
	LoneWolf bool           `json:"lone_wolf"`
}

type AddBotMsg struct {
	Name string `json:"name"`
}

// Target names a card: a player's, or a center slot when Player is empty.
type Target struct {
	Player string `json:"player,omitempty"`
	Center int    `json:"center"`
}

type HandshakeMsg struct {
	Others []string       `json:"others"`
	Roles  map[string]int `json:"roles"`
}

type TimeMsg struct {
	Phase   string   `json:"phase"`
	Role    string   `json:"role,omitempty"`
	Dead    []string `json:"dead,omitempty"`
	Winners []string `json:"winners,omitempty"`
}

type ShowRoleMsg struct {
	Target Target `json:"target"`
	Role   string `json:"role"`
}

type ShowRoleTypeMsg struct {
	Target Target `json:"target"`
	Type   string `json:"type"`
}

type ChoosePlayerMsg struct {
	Candidates []string `json:"candidates"`
}

type ChooseNumMsg struct {
	Choices []int `json:"choices"`
}

// AnswerMsg replies to a choose_* request. Exactly one field is set.
type AnswerMsg struct {
	Player *string `json:"player,omitempty"`
	Bool   *bool   `json:"bool,omitempty"`
	Num    *int    `json:"num,omitempty"`
}

// ChatMsg is a claim or question. Clients send it as say without a
// sender; the server relays it as message with one.
type ChatMsg struct {
	Sender    string   `json:"sender,omitempty"`
	Kind      string   `json:"kind"`
	Topic     string   `json:"topic"`
	Role      string   `json:"role,omitempty"`
	Addressee string   `json:"addressee,omitempty"`
	Targets   []string `json:"targets,omitempty"`
	Text      string   `json:"text,omitempty"`
}

type WinMsg struct {
	Won bool `json:"won"`
}

type GameOverMsg struct {
	Votes      map[string]string `json:"votes"`
	Dead       []string          `json:"dead"`
	Winners    []string          `json:"winners"`
	FinalRoles map[string]string `json:"final_roles"`
	Error      string            `json:"error,omitempty"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
