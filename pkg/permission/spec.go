package permission

import (
	"errors"
	"fmt"
	"slices"
)

// Android manifest permission identifiers used by the app.
const (
	WriteExternalStorage     = "android.permission.WRITE_EXTERNAL_STORAGE"
	AccessCoarseLocation     = "android.permission.ACCESS_COARSE_LOCATION"
	AccessBackgroundLocation = "android.permission.ACCESS_BACKGROUND_LOCATION"
)

// Errors returned by Spec.Validate.
var (
	ErrNoIdentifiers     = errors.New("permission: spec has no identifiers")
	ErrEmptyIdentifier   = errors.New("permission: empty identifier")
	ErrDuplicate         = errors.New("permission: duplicate identifier")
	ErrUnknownClassifier = errors.New("permission: classifier is not one of the spec identifiers")
)

// Spec identifies one logical permission request.
//
// Identifiers are requested together in order. The first identifier is the
// one Evaluate probes. Full and Partial name the identifiers whose grant
// means full or partial access; they are only set for location.
type Spec struct {
	Name        string
	Identifiers []string
	Full        string
	Partial     string
}

// StorageSpec returns the spec for writing external storage. The identifier
// set is the same on every tier.
func StorageSpec(tier PlatformTier) Spec {
	return Spec{
		Name:        "storage",
		Identifiers: []string{WriteExternalStorage},
	}
}

// LocationSpec returns the spec for device location on the given tier.
//
// On the background split tier both identifiers are requested and background
// comes first, so it is the one probed before deciding between a rationale
// and a request. Coarse location is never re-checked at that point.
func LocationSpec(tier PlatformTier) Spec {
	if tier.SplitsBackgroundLocation() {
		return Spec{
			Name:        "location",
			Identifiers: []string{AccessBackgroundLocation, AccessCoarseLocation},
			Full:        AccessBackgroundLocation,
			Partial:     AccessCoarseLocation,
		}
	}
	return Spec{
		Name:        "location",
		Identifiers: []string{AccessCoarseLocation},
		Full:        AccessCoarseLocation,
	}
}

// Probe returns the identifier whose status decides the outcome.
func (s Spec) Probe() string {
	if len(s.Identifiers) == 0 {
		return ""
	}
	return s.Identifiers[0]
}

// Validate checks the spec is well formed.
func (s Spec) Validate() error {
	if len(s.Identifiers) == 0 {
		return fmt.Errorf("%s: %w", s.Name, ErrNoIdentifiers)
	}
	seen := make(map[string]struct{}, len(s.Identifiers))
	for _, id := range s.Identifiers {
		if id == "" {
			return fmt.Errorf("%s: %w", s.Name, ErrEmptyIdentifier)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%s: %w %q", s.Name, ErrDuplicate, id)
		}
		seen[id] = struct{}{}
	}
	for _, id := range []string{s.Full, s.Partial} {
		if id != "" && !slices.Contains(s.Identifiers, id) {
			return fmt.Errorf("%s: %w %q", s.Name, ErrUnknownClassifier, id)
		}
	}
	return nil
}
