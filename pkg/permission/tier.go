// Package permission decides how a runtime permission request should proceed.
//
// The decision is a pure function of a [Spec], the [PlatformTier] the device
// runs, and a [StatusSource] that answers grant and rationale queries. Nothing
// in this package talks to the platform directly; see package platform for
// the bridge that implements [StatusSource] on a device.
package permission

import "fmt"

// Android SDK levels at which permission behavior changes.
const (
	// SDKRuntimePermissions is Android 6.0 (M), the first level that
	// enforces dangerous permissions at runtime.
	SDKRuntimePermissions = 23

	// SDKBackgroundLocation is Android 10 (Q), the first level with a
	// separate background location permission.
	SDKBackgroundLocation = 29
)

// PlatformTier groups platform versions by how they enforce permissions.
type PlatformTier int

const (
	// TierPreRuntime grants every declared permission at install time.
	TierPreRuntime PlatformTier = iota
	// TierRuntime enforces dangerous permissions at runtime.
	TierRuntime
	// TierBackgroundLocationSplit enforces at runtime and distinguishes
	// background from foreground location.
	TierBackgroundLocationSplit
)

// TierForSDK returns the tier for an Android SDK integer.
func TierForSDK(sdk int) PlatformTier {
	switch {
	case sdk >= SDKBackgroundLocation:
		return TierBackgroundLocationSplit
	case sdk >= SDKRuntimePermissions:
		return TierRuntime
	default:
		return TierPreRuntime
	}
}

// EnforcesRuntime reports whether permissions must be checked and requested
// while the app runs.
func (t PlatformTier) EnforcesRuntime() bool {
	return t >= TierRuntime
}

// SplitsBackgroundLocation reports whether background location is a
// separate grant from coarse location.
func (t PlatformTier) SplitsBackgroundLocation() bool {
	return t >= TierBackgroundLocationSplit
}

func (t PlatformTier) String() string {
	switch t {
	case TierPreRuntime:
		return "pre-runtime"
	case TierRuntime:
		return "runtime"
	case TierBackgroundLocationSplit:
		return "background-location-split"
	default:
		return fmt.Sprintf("PlatformTier(%d)", int(t))
	}
}
