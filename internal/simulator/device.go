// Package simulator provides a scripted Android device that answers the
// permission channel, so the activity can run without a phone.
package simulator

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-drift/apppermission/pkg/permission"
	"github.com/go-drift/apppermission/pkg/platform"
)

// Device is a platform.NativeBridge backed by an in-memory grant table.
//
// Permission requests are not answered immediately. Each one is queued with
// the next scripted response and delivered on Flush, the way a real dialog
// answers after Launch has returned.
type Device struct {
	mu        sync.Mutex
	sdk       int
	granted   map[string]bool
	rationale map[string]bool
	responses []map[string]bool
	queued    []pendingResult
	streams   map[string]bool
	requests  [][]string
}

type pendingResult struct {
	requestID string
	results   map[string]bool
}

// NewDevice creates a device running the given SDK level.
func NewDevice(sdk int) *Device {
	return &Device{
		sdk:       sdk,
		granted:   make(map[string]bool),
		rationale: make(map[string]bool),
		streams:   make(map[string]bool),
	}
}

// Grant marks ids as granted.
func (d *Device) Grant(ids ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range ids {
		d.granted[id] = true
	}
}

// SetRationale marks ids as rationale-eligible.
func (d *Device) SetRationale(ids ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range ids {
		d.rationale[id] = true
	}
}

// QueueResponse appends the user's answer to the next system dialog.
// Identifiers missing from answer are denied.
func (d *Device) QueueResponse(answer map[string]bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses = append(d.responses, answer)
}

// IsGranted reports the device's current grant status for id.
func (d *Device) IsGranted(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isGranted(id)
}

// Requests returns the identifier sets of every request received so far.
func (d *Device) Requests() [][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]string, len(d.requests))
	for i, ids := range d.requests {
		out[i] = slices.Clone(ids)
	}
	return out
}

// Streaming reports whether the Go side has started the event stream for
// channel.
func (d *Device) Streaming(channel string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.streams[channel]
}

// Queued returns the number of answers waiting to be delivered.
func (d *Device) Queued() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queued)
}

// InvokeMethod implements platform.NativeBridge.
func (d *Device) InvokeMethod(channel, method string, argsData []byte) ([]byte, error) {
	if channel != platform.PermissionsChannel {
		return nil, fmt.Errorf("%w: %s", platform.ErrChannelNotFound, channel)
	}
	decoded, err := platform.DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}
	args, _ := decoded.(map[string]any)

	var result any
	switch method {
	case "sdkInt":
		d.mu.Lock()
		result = map[string]any{"sdkInt": d.sdk}
		d.mu.Unlock()
	case "check":
		id, err := stringArg(args, "permission")
		if err != nil {
			return nil, err
		}
		result = map[string]any{"granted": d.IsGranted(id)}
	case "shouldShowRationale":
		id, err := stringArg(args, "permission")
		if err != nil {
			return nil, err
		}
		d.mu.Lock()
		result = map[string]any{"shouldShow": d.rationale[id]}
		d.mu.Unlock()
	case "request":
		if err := d.request(args); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", platform.ErrMethodNotFound, method)
	}
	return platform.DefaultCodec.Encode(result)
}

// StartEventStream implements platform.NativeBridge.
func (d *Device) StartEventStream(channel string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.streams[channel] = true
	return nil
}

// StopEventStream implements platform.NativeBridge.
func (d *Device) StopEventStream(channel string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.streams, channel)
	return nil
}

// Flush delivers every queued answer on the results channel, in request
// order. It returns the first delivery error.
func (d *Device) Flush() error {
	for {
		d.mu.Lock()
		if len(d.queued) == 0 {
			d.mu.Unlock()
			return nil
		}
		next := d.queued[0]
		d.queued = d.queued[1:]
		d.mu.Unlock()

		data, err := platform.DefaultCodec.Encode(map[string]any{
			"requestId": next.requestID,
			"results":   next.results,
		})
		if err != nil {
			return err
		}
		if err := platform.HandleEvent(platform.ResultsChannel, data); err != nil {
			return err
		}
	}
}

func (d *Device) request(args map[string]any) error {
	requestID, err := stringArg(args, "requestId")
	if err != nil {
		return err
	}
	raw, ok := args["permissions"].([]any)
	if !ok || len(raw) == 0 {
		return fmt.Errorf("request: permissions: %w", platform.ErrInvalidArguments)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		id, ok := v.(string)
		if !ok || id == "" {
			return fmt.Errorf("request: permission %v: %w", v, platform.ErrInvalidArguments)
		}
		ids = append(ids, id)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.requests = append(d.requests, ids)

	var answer map[string]bool
	if len(d.responses) > 0 {
		answer = d.responses[0]
		d.responses = d.responses[1:]
	}

	results := make(map[string]bool, len(ids))
	for _, id := range ids {
		granted := d.isGranted(id) || answer[id]
		results[id] = granted
		if granted {
			d.granted[id] = true
			delete(d.rationale, id)
		} else {
			// Android offers a rationale after the first denial.
			d.rationale[id] = true
		}
	}
	d.queued = append(d.queued, pendingResult{requestID: requestID, results: results})
	return nil
}

// isGranted reports the grant status of id. Permissions are granted at
// install time before runtime permissions existed. Callers hold d.mu.
func (d *Device) isGranted(id string) bool {
	return d.sdk < permission.SDKRuntimePermissions || d.granted[id]
}

func stringArg(args map[string]any, key string) (string, error) {
	s, ok := args[key].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s: %w", key, platform.ErrInvalidArguments)
	}
	return s, nil
}
