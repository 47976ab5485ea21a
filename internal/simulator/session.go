package simulator

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/go-drift/apppermission/internal/activity"
	"github.com/go-drift/apppermission/pkg/permission"
	"github.com/go-drift/apppermission/pkg/platform"
)

// ActionState is the final state of one button.
type ActionState struct {
	Action activity.Action
	State  activity.State
}

// Report is the outcome of a scenario run.
type Report struct {
	SDK        int
	Tier       permission.PlatformTier
	Labels     activity.Labels
	States     []ActionState
	Requests   [][]string
	Rationales []activity.Rationale
	// Pending counts requests still waiting for an answer. It is zero
	// unless a result could not be delivered.
	Pending int
}

// Run presses the scenario's buttons against a scripted device and reports
// the resulting labels.
//
// Run installs the device as the process-wide native bridge and a
// synchronous UI dispatcher. Answers are flushed after every press, so each
// flow resolves before the next button is pressed.
func Run(s *Scenario, logger *log.Logger) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	device := s.Device()
	platform.SetNativeBridge(device)
	platform.RegisterDispatch(func(cb func()) { cb() })

	tier, err := platform.Permissions.Tier()
	if err != nil {
		return nil, fmt.Errorf("failed to read device tier: %w", err)
	}

	labels := &activity.Labels{}
	presenter := NewPresenter(s.RationaleTaps...)
	act, err := activity.New(tier, platform.Permissions, labels, presenter, activity.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	var order []activity.Action
	seen := make(map[activity.Action]bool)
	for _, name := range s.Actions {
		action, err := activity.ParseAction(name)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Info("press", "action", action)
		}
		act.Trigger(action)
		if err := device.Flush(); err != nil {
			return nil, fmt.Errorf("failed to deliver result for %s: %w", action, err)
		}
		if !seen[action] {
			seen[action] = true
			order = append(order, action)
		}
	}

	report := &Report{
		SDK:        s.SDK,
		Tier:       tier,
		Labels:     *labels,
		Requests:   device.Requests(),
		Rationales: presenter.Shown(),
		Pending:    platform.Permissions.Pending(),
	}
	for _, action := range order {
		report.States = append(report.States, ActionState{Action: action, State: act.State(action)})
	}
	return report, nil
}
