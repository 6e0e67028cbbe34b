package game

// Phase represents the stage of the current player's turn, or the
// terminal stages of the round/game.
type Phase int

const (
	PhaseDraw Phase = iota
	PhaseMeld
	PhaseDiscard
	PhaseRoundOver
	PhaseGameOver
)

var phaseNames = []string{"draw", "meld", "discard", "roundOver", "gameOver"}

func (p Phase) String() string {
	if p < PhaseDraw || p > PhaseGameOver {
		return "unknown"
	}
	return phaseNames[p]
}

// MeldKind is the result of classifying a set of cards
type MeldKind int

const (
	InvalidMeld MeldKind = iota
	SequenceMeld
	GroupMeld
)

var meldKindNames = []string{"invalid", "sequence", "group"}

func (k MeldKind) String() string {
	if k < InvalidMeld || k > GroupMeld {
		return "unknown"
	}
	return meldKindNames[k]
}

// Position names the end of a meld an extension targets
type Position int

const (
	AtStart Position = iota
	AtEnd
)

func (p Position) String() string {
	if p == AtStart {
		return "start"
	}
	return "end"
}
