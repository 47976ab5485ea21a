// Package activity implements the app screen: a "save" button guarded by the
// storage permission and a "local weather" button guarded by location.
//
// All methods must be called on the UI thread. Platform results arrive there
// through the continuation registered with PermissionPlatform.Launch.
package activity

//go:generate mockgen -source=activity.go -destination=mocks/mocks.go -package=mocks PermissionPlatform,OutcomeSink,RationalePresenter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/go-drift/apppermission/pkg/errors"
	"github.com/go-drift/apppermission/pkg/permission"
	"github.com/go-drift/apppermission/pkg/platform"
)

// PermissionPlatform answers status queries and issues permission requests.
// *platform.AndroidPermissions implements it.
type PermissionPlatform interface {
	permission.StatusSource
	// Launch requests ids. onResult runs once when the user answers.
	Launch(ids []string, onResult platform.ResultFunc) (string, error)
}

// OutcomeSink receives the text for each result label.
type OutcomeSink interface {
	SetStorageResult(text string)
	SetLocationResult(text string)
}

// Rationale is the content of an explanation dialog.
type Rationale struct {
	Title   string
	Message string
	// Icon is a drawable resource name.
	Icon string
}

// RationalePresenter shows a modal rationale. Exactly one of onAllow or
// onCancel is called when the user dismisses it.
type RationalePresenter interface {
	ShowRationale(r Rationale, onAllow, onCancel func())
}

// Action identifies a button.
type Action int

const (
	ActionSave Action = iota
	ActionLocalWeather
)

func (a Action) String() string {
	switch a {
	case ActionSave:
		return "save"
	case ActionLocalWeather:
		return "local_weather"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction parses the names produced by Action.String.
func ParseAction(s string) (Action, error) {
	switch s {
	case "save":
		return ActionSave, nil
	case "local_weather":
		return ActionLocalWeather, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// flow binds an action to its permission, rationale and label.
type flow struct {
	spec      func(permission.PlatformTier) permission.Spec
	classify  func(results map[string]bool, tier permission.PlatformTier) permission.GrantLevel
	rationale Rationale
	text      func(permission.GrantLevel) string
	label     func(OutcomeSink, string)
}

var flows = map[Action]flow{
	ActionSave: {
		spec:      permission.StorageSpec,
		classify:  classifyStorage,
		rationale: StorageRationale,
		text:      storageText,
		label:     OutcomeSink.SetStorageResult,
	},
	ActionLocalWeather: {
		spec:      permission.LocationSpec,
		classify:  permission.ClassifyLocationGrant,
		rationale: LocationRationale,
		text:      locationText,
		label:     OutcomeSink.SetLocationResult,
	},
}

func classifyStorage(results map[string]bool, _ permission.PlatformTier) permission.GrantLevel {
	return permission.ClassifyStorageGrant(results[permission.WriteExternalStorage])
}

// Activity runs the permission flow behind each button.
type Activity struct {
	tier      permission.PlatformTier
	platform  PermissionPlatform
	sink      OutcomeSink
	presenter RationalePresenter
	logger    *log.Logger

	states   map[Action]State
	presses  map[Action]uint64
	requests map[Action]string
}

// Option configures an Activity.
type Option func(*Activity)

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *log.Logger) Option {
	return func(a *Activity) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Activity for a device on tier. The tier is fixed for the
// lifetime of the Activity.
func New(tier permission.PlatformTier, p PermissionPlatform, sink OutcomeSink, presenter RationalePresenter, opts ...Option) (*Activity, error) {
	if p == nil {
		return nil, fmt.Errorf("permission platform is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("outcome sink is required")
	}
	if presenter == nil {
		return nil, fmt.Errorf("rationale presenter is required")
	}
	a := &Activity{
		tier:      tier,
		platform:  p,
		sink:      sink,
		presenter: presenter,
		logger:    log.New(io.Discard),
		states:    make(map[Action]State),
		presses:   make(map[Action]uint64),
		requests:  make(map[Action]string),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Tier returns the platform tier the Activity was created for.
func (a *Activity) Tier() permission.PlatformTier {
	return a.tier
}

// OnSaveClicked handles the "save" button.
func (a *Activity) OnSaveClicked() {
	a.Trigger(ActionSave)
}

// OnLocalWeatherClicked handles the "local weather" button.
func (a *Activity) OnLocalWeatherClicked() {
	a.Trigger(ActionLocalWeather)
}

// Trigger starts the flow for action from Idle, whatever state the previous
// press left behind. Results and rationale taps belonging to an earlier
// press of the same button are ignored.
func (a *Activity) Trigger(action Action) {
	f, ok := flows[action]
	if !ok {
		return
	}
	a.presses[action]++
	press := a.presses[action]
	delete(a.requests, action)
	a.transition(action, State{Phase: PhaseIdle})

	spec := f.spec(a.tier)
	if err := spec.Validate(); err != nil {
		errors.Report(&errors.Error{
			Op:   "activity." + action.String(),
			Kind: errors.KindConfig,
			Err:  err,
		})
		a.resolve(action, press, f, permission.Denied)
		return
	}
	decision := permission.Evaluate(spec, a.tier, a.platform)
	a.logger.Debug("evaluated", "action", action, "tier", a.tier, "decision", decision)

	switch decision.Outcome {
	case permission.AlreadyGranted:
		a.transition(action, State{Phase: PhaseGranted})
		a.resolve(action, press, f, decision.Level)
	case permission.NeedsRationale:
		a.transition(action, State{Phase: PhaseRationale})
		a.presenter.ShowRationale(f.rationale,
			func() {
				if a.current(action, press) {
					a.request(action, press, f, spec)
				}
			},
			func() { a.resolve(action, press, f, permission.Denied) },
		)
	case permission.NeedsRequest:
		a.request(action, press, f, spec)
	}
}

// State returns the current state of action.
func (a *Activity) State(action Action) State {
	return a.states[action]
}

// PendingRequest returns the id of the platform request the latest press of
// action is waiting on.
func (a *Activity) PendingRequest(action Action) (string, bool) {
	id, ok := a.requests[action]
	return id, ok
}

func (a *Activity) current(action Action, press uint64) bool {
	return a.presses[action] == press
}

func (a *Activity) request(action Action, press uint64, f flow, spec permission.Spec) {
	a.transition(action, State{Phase: PhaseRequesting})
	id, err := a.platform.Launch(spec.Identifiers, func(results map[string]bool) {
		a.logger.Debug("result", "action", action, "press", press, "results", results)
		a.resolve(action, press, f, f.classify(results, a.tier))
	})
	if err != nil {
		errors.Report(&errors.Error{
			Op:   "activity." + action.String(),
			Kind: errors.KindPlatform,
			Err:  err,
		})
		a.resolve(action, press, f, permission.Denied)
		return
	}
	if a.current(action, press) && a.states[action].Phase == PhaseRequesting {
		a.requests[action] = id
	}
}

// resolve ends press with level. A label that panics ends the flow as
// Denied.
func (a *Activity) resolve(action Action, press uint64, f flow, level permission.GrantLevel) {
	if !a.current(action, press) {
		a.logger.Debug("stale result ignored", "action", action, "press", press, "latest", a.presses[action])
		return
	}
	delete(a.requests, action)
	a.transition(action, State{Phase: PhaseResolved, Level: level})

	defer errors.RecoverWithCallback("activity."+action.String(), func(any) {
		a.transition(action, State{Phase: PhaseResolved, Level: permission.Denied})
	})
	f.label(a.sink, f.text(level))
}

func (a *Activity) transition(action Action, next State) {
	a.logger.Debug("transition", "action", action, "from", a.states[action], "to", next)
	a.states[action] = next
}
