package permission

import "fmt"

// GrantLevel is how much access a resolved request ended up with.
type GrantLevel int

const (
	Denied GrantLevel = iota
	Partial
	Full
)

func (l GrantLevel) String() string {
	switch l {
	case Denied:
		return "denied"
	case Partial:
		return "partial"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("GrantLevel(%d)", int(l))
	}
}

// Outcome is the branch chosen by Evaluate.
type Outcome int

const (
	// AlreadyGranted means the action may proceed without asking.
	AlreadyGranted Outcome = iota
	// NeedsRationale means the user declined before and should see why the
	// permission is needed before being asked again.
	NeedsRationale
	// NeedsRequest means the platform dialog should be shown directly.
	NeedsRequest
)

func (o Outcome) String() string {
	switch o {
	case AlreadyGranted:
		return "already-granted"
	case NeedsRationale:
		return "needs-rationale"
	case NeedsRequest:
		return "needs-request"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Decision is the result of evaluating a spec. Level is only meaningful
// when Outcome is AlreadyGranted.
type Decision struct {
	Outcome Outcome
	Level   GrantLevel
}

func (d Decision) String() string {
	if d.Outcome == AlreadyGranted {
		return fmt.Sprintf("%s(%s)", d.Outcome, d.Level)
	}
	return d.Outcome.String()
}

// StatusSource answers grant queries for one identifier at a time.
type StatusSource interface {
	// IsGranted reports the current grant status of id.
	IsGranted(id string) bool
	// ShouldShowRationale reports whether the user declined id before
	// without choosing "don't ask again".
	ShouldShowRationale(id string) bool
}

// Evaluate decides how to proceed with spec on tier.
//
// Tiers that grant at install time short-circuit to AlreadyGranted(Full)
// without consulting status. Otherwise only the probe identifier is queried.
func Evaluate(spec Spec, tier PlatformTier, status StatusSource) Decision {
	if !tier.EnforcesRuntime() {
		return Decision{Outcome: AlreadyGranted, Level: Full}
	}
	probe := spec.Probe()
	switch {
	case status.IsGranted(probe):
		return Decision{Outcome: AlreadyGranted, Level: Full}
	case status.ShouldShowRationale(probe):
		return Decision{Outcome: NeedsRationale}
	default:
		return Decision{Outcome: NeedsRequest}
	}
}

// ClassifyLocationGrant maps the result of a location request to a level.
// Identifiers missing from results count as not granted.
func ClassifyLocationGrant(results map[string]bool, tier PlatformTier) GrantLevel {
	if tier.SplitsBackgroundLocation() {
		switch {
		case results[AccessBackgroundLocation]:
			return Full
		case results[AccessCoarseLocation]:
			return Partial
		default:
			return Denied
		}
	}
	if results[AccessCoarseLocation] {
		return Full
	}
	return Denied
}

// ClassifyStorageGrant maps the single storage result to a level.
func ClassifyStorageGrant(granted bool) GrantLevel {
	if granted {
		return Full
	}
	return Denied
}
