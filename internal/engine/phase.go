package engine

// Phase is the part of the round a Time announcement marks.
type Phase int

const (
	PhaseDusk  Phase = iota // handshake and role reveal
	PhaseNight              // one role's night segment
	PhaseDay                // discussion
	PhaseVote               // votes are being collected
	PhaseEnd                // dead and winners are known
)

var phaseNames = map[Phase]string{
	PhaseDusk:  "Dusk",
	PhaseNight: "Night",
	PhaseDay:   "Day",
	PhaseVote:  "Vote",
	PhaseEnd:   "End",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Time is broadcast to every participant when the phase changes.
type Time struct {
	Phase   Phase
	Role    string        // effective role id, PhaseNight only
	Dead    []Participant // PhaseEnd only
	Winners []Participant // PhaseEnd only
}

func (t Time) String() string {
	if t.Phase == PhaseNight {
		return t.Phase.String() + "(" + t.Role + ")"
	}
	return t.Phase.String()
}
