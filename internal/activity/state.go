package activity

import (
	"fmt"

	"github.com/go-drift/apppermission/pkg/permission"
)

// Phase is a step in the lifecycle of one button press.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGranted
	PhaseRationale
	PhaseRequesting
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGranted:
		return "granted"
	case PhaseRationale:
		return "rationale"
	case PhaseRequesting:
		return "requesting"
	case PhaseResolved:
		return "resolved"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the state of one action. Level is set once Phase is
// PhaseResolved.
type State struct {
	Phase Phase
	Level permission.GrantLevel
}

func (s State) String() string {
	if s.Phase == PhaseResolved {
		return fmt.Sprintf("%s(%s)", s.Phase, s.Level)
	}
	return s.Phase.String()
}

// Labels is an OutcomeSink that keeps the last text of each label.
type Labels struct {
	Storage  string
	Location string
}

func (l *Labels) SetStorageResult(text string)  { l.Storage = text }
func (l *Labels) SetLocationResult(text string) { l.Location = text }
