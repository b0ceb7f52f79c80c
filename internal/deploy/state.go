package deploy

import "fmt"

type State int

const (
	Unresolved State = iota
	ConfigResolved
	BuildSkipped
	BuildSucceeded
	SessionOpen
	DirectoryPrepared
	ArtifactTransferred
	Extracted
	Relocated
	Done
	Failed
)

var stateNames = map[State]string{
	Unresolved:          "Unresolved",
	ConfigResolved:      "ConfigResolved",
	BuildSkipped:        "BuildSkipped",
	BuildSucceeded:      "BuildSucceeded",
	SessionOpen:         "SessionOpen",
	DirectoryPrepared:   "DirectoryPrepared",
	ArtifactTransferred: "ArtifactTransferred",
	Extracted:           "Extracted",
	Relocated:           "Relocated",
	Done:                "Done",
	Failed:              "Failed",
}

var transitions = map[State][]State{
	Unresolved:          {ConfigResolved},
	ConfigResolved:      {BuildSkipped, BuildSucceeded},
	BuildSkipped:        {SessionOpen},
	BuildSucceeded:      {SessionOpen},
	SessionOpen:         {DirectoryPrepared},
	DirectoryPrepared:   {ArtifactTransferred},
	ArtifactTransferred: {Extracted},
	Extracted:           {Relocated},
	Relocated:           {Done},
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// CanTransition reports whether to directly follows from. Every non-terminal state may
// fail; there are no back-edges.
func CanTransition(from State, to State) bool {
	if from.Terminal() {
		return false
	}

	if to == Failed {
		return true
	}

	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}
