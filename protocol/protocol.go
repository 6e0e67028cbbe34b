package protocol

// Cmd represents a command exchanged between players and the engine
type Cmd int

const (
	Null Cmd = iota
	NewJoiner
	Start
	DrawStock
	DrawDiscard
	PlayMelds
	ExtendMeld
	SwapJoker
	SkipMeld
	Discard
	AdvanceRound
	State
	Error
)

var cmdNames = []string{
	"Null",
	"NewJoiner",
	"Start",
	"DrawStock",
	"DrawDiscard",
	"PlayMelds",
	"ExtendMeld",
	"SwapJoker",
	"SkipMeld",
	"Discard",
	"AdvanceRound",
	"State",
	"Error",
}

func (c Cmd) String() string {
	if c < Null || int(c) >= len(cmdNames) {
		return "Unknown"
	}
	return cmdNames[c]
}

// PlayerInfo identifies a seat before any cards exist
type PlayerInfo struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}
