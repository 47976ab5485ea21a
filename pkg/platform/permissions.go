package platform

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/go-drift/apppermission/pkg/errors"
	"github.com/go-drift/apppermission/pkg/permission"
)

// Channel names used by the Android permission service.
const (
	PermissionsChannel = "apppermission/permissions"
	ResultsChannel     = "apppermission/permissions/results"
)

// AndroidPermissions queries and requests Android runtime permissions.
//
// Status queries are synchronous method calls. Launch returns as soon as the
// system dialog is shown; the answer arrives later on ResultsChannel and is
// delivered to the continuation registered for that request, on the UI
// thread. Requests are never timed out or canceled.
type AndroidPermissions struct {
	channel *MethodChannel
	results *Stream[permissionResult]
	pending *pendingRequests

	mu  sync.Mutex
	sub *Subscription
}

// Permissions is the singleton Android permission service.
var Permissions = &AndroidPermissions{
	channel: NewMethodChannel(PermissionsChannel),
	results: NewStream("permissions.results", NewEventChannel(ResultsChannel), parsePermissionResult),
	pending: newPendingRequests(),
}

// SDKInt returns the device's Android SDK level.
func (p *AndroidPermissions) SDKInt() (int, error) {
	result, err := p.channel.Invoke("sdkInt", nil)
	if err != nil {
		return 0, err
	}
	sdk, ok := toInt(parseMap(result)["sdkInt"])
	if !ok {
		return 0, fmt.Errorf("sdkInt: %w", ErrInvalidArguments)
	}
	return sdk, nil
}

// Tier returns the platform tier of the device.
func (p *AndroidPermissions) Tier() (permission.PlatformTier, error) {
	sdk, err := p.SDKInt()
	if err != nil {
		return permission.TierPreRuntime, err
	}
	return permission.TierForSDK(sdk), nil
}

// Check returns the current grant status of id.
func (p *AndroidPermissions) Check(id string) (bool, error) {
	result, err := p.channel.Invoke("check", map[string]any{"permission": id})
	if err != nil {
		return false, err
	}
	m := parseMap(result)
	if _, ok := m["granted"]; !ok {
		return false, fmt.Errorf("check %s: %w", id, ErrInvalidArguments)
	}
	return parseBool(m["granted"]), nil
}

// Rationale reports whether the platform suggests explaining id before
// asking again.
func (p *AndroidPermissions) Rationale(id string) (bool, error) {
	result, err := p.channel.Invoke("shouldShowRationale", map[string]any{"permission": id})
	if err != nil {
		return false, err
	}
	m := parseMap(result)
	if _, ok := m["shouldShow"]; !ok {
		return false, fmt.Errorf("shouldShowRationale %s: %w", id, ErrInvalidArguments)
	}
	return parseBool(m["shouldShow"]), nil
}

// IsGranted returns true if id is currently granted.
// Best-effort: errors are reported and treated as not granted.
func (p *AndroidPermissions) IsGranted(id string) bool {
	granted, err := p.Check(id)
	if err != nil {
		p.report("permissions.check", err)
		return false
	}
	return granted
}

// ShouldShowRationale returns true if a rationale should be shown for id.
// Best-effort: errors are reported and treated as false.
func (p *AndroidPermissions) ShouldShowRationale(id string) bool {
	show, err := p.Rationale(id)
	if err != nil {
		p.report("permissions.shouldShowRationale", err)
		return false
	}
	return show
}

// Launch asks the platform for ids and returns the request id. onResult is
// called exactly once, on the UI thread, when the user answers. If Launch
// returns an error, onResult is never called.
func (p *AndroidPermissions) Launch(ids []string, onResult ResultFunc) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("launch: %w", permission.ErrNoIdentifiers)
	}
	if onResult == nil {
		return "", fmt.Errorf("launch: nil result callback: %w", ErrInvalidArguments)
	}

	// Subscribe before triggering the native request so the result cannot
	// arrive unobserved.
	p.ensureListening()

	requestID := uuid.NewString()
	p.pending.add(requestID, onResult)

	_, err := p.channel.Invoke("request", map[string]any{
		"requestId":   requestID,
		"permissions": slices.Clone(ids),
	})
	if err != nil {
		p.pending.take(requestID)
		return "", err
	}
	return requestID, nil
}

// Pending returns the number of requests waiting for a result.
func (p *AndroidPermissions) Pending() int {
	return p.pending.len()
}

func (p *AndroidPermissions) ensureListening() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sub != nil && !p.sub.IsCanceled() {
		return
	}
	p.sub = p.results.Listen(p.handleResult)
}

func (p *AndroidPermissions) handleResult(result permissionResult) {
	fn, ok := p.pending.take(result.RequestID)
	if !ok {
		errors.Report(&errors.Error{
			Op:      "permissions.results",
			Kind:    errors.KindParsing,
			Channel: ResultsChannel,
			Err:     fmt.Errorf("%w: %s", ErrUnknownRequest, result.RequestID),
		})
		return
	}

	dispatchOrRun(func() {
		defer errors.Recover("permissions.onResult")
		fn(result.Results)
	})
}

func (p *AndroidPermissions) report(op string, err error) {
	errors.Report(&errors.Error{
		Op:      op,
		Kind:    errors.KindPlatform,
		Channel: PermissionsChannel,
		Err:     err,
	})
}

func (p *AndroidPermissions) reset() {
	p.mu.Lock()
	p.sub = nil
	p.mu.Unlock()
	p.pending.clear()
}

// permissionResult is a decoded result event.
type permissionResult struct {
	RequestID string
	Results   map[string]bool
}

func parsePermissionResult(data any) (permissionResult, error) {
	invalid := &errors.ParseError{
		Channel:  ResultsChannel,
		DataType: "PermissionResult",
		Got:      data,
	}
	m := parseMap(data)
	if m == nil {
		return permissionResult{}, invalid
	}
	id := parseString(m["requestId"])
	if id == "" {
		return permissionResult{}, invalid
	}
	results, ok := parseGrantMap(m["results"])
	if !ok {
		return permissionResult{}, invalid
	}
	return permissionResult{RequestID: id, Results: results}, nil
}
