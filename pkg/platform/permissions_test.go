package platform

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"

	"github.com/go-drift/apppermission/pkg/errors"
	"github.com/go-drift/apppermission/pkg/permission"
)

// permissionBridge answers permission method calls from canned tables and
// records request calls.
type permissionBridge struct {
	mu        sync.Mutex
	sdk       any
	granted   map[string]bool
	rationale map[string]bool
	err       error
	requests  []map[string]any
	started   []string
}

func (b *permissionBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	var decoded map[string]any
	if len(args) > 0 {
		if err := json.Unmarshal(args, &decoded); err != nil {
			return nil, err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	switch method {
	case "sdkInt":
		return DefaultCodec.Encode(map[string]any{"sdkInt": b.sdk})
	case "check":
		id, _ := decoded["permission"].(string)
		return DefaultCodec.Encode(map[string]any{"granted": b.granted[id]})
	case "shouldShowRationale":
		id, _ := decoded["permission"].(string)
		return DefaultCodec.Encode(map[string]any{"shouldShow": b.rationale[id]})
	case "request":
		b.requests = append(b.requests, decoded)
		return DefaultCodec.Encode(nil)
	default:
		return nil, ErrMethodNotFound
	}
}

func (b *permissionBridge) StartEventStream(channel string) error {
	b.mu.Lock()
	b.started = append(b.started, channel)
	b.mu.Unlock()
	return nil
}

func (b *permissionBridge) StopEventStream(string) error { return nil }

func (b *permissionBridge) lastRequest(t *testing.T) (string, []string) {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		t.Fatal("no request was sent")
	}
	req := b.requests[len(b.requests)-1]
	id, _ := req["requestId"].(string)
	var ids []string
	for _, v := range req["permissions"].([]any) {
		ids = append(ids, v.(string))
	}
	return id, ids
}

// captureHandler collects reported errors and panics.
type captureHandler struct {
	errs   []*errors.Error
	panics []*errors.PanicError
}

func (h *captureHandler) HandleError(err *errors.Error)      { h.errs = append(h.errs, err) }
func (h *captureHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func captureErrors(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	old := errors.DefaultHandler
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(old) })
	return h
}

func sendResult(t *testing.T, requestID string, results map[string]bool) {
	t.Helper()
	data, err := DefaultCodec.Encode(map[string]any{"requestId": requestID, "results": results})
	if err != nil {
		t.Fatal(err)
	}
	if err := HandleEvent(ResultsChannel, data); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
}

func TestSDKIntAndTier(t *testing.T) {
	tests := []struct {
		name     string
		sdk      any
		wantTier permission.PlatformTier
		wantErr  bool
	}{
		{"lollipop", 22, permission.TierPreRuntime, false},
		{"marshmallow", 23, permission.TierRuntime, false},
		{"q", 29, permission.TierBackgroundLocationSplit, false},
		{"missing", nil, permission.TierPreRuntime, true},
		{"wrong type", "29", permission.TierPreRuntime, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupTestBridge(t.Cleanup, &permissionBridge{sdk: tt.sdk})

			tier, err := Permissions.Tier()
			if tt.wantErr {
				if !stderrors.Is(err, ErrInvalidArguments) {
					t.Fatalf("expected ErrInvalidArguments, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tier != tt.wantTier {
				t.Errorf("Tier() = %v, want %v", tier, tt.wantTier)
			}
		})
	}
}

func TestStatusQueries(t *testing.T) {
	SetupTestBridge(t.Cleanup, &permissionBridge{
		granted:   map[string]bool{permission.AccessCoarseLocation: true},
		rationale: map[string]bool{permission.WriteExternalStorage: true},
	})

	if !Permissions.IsGranted(permission.AccessCoarseLocation) {
		t.Error("coarse location should be granted")
	}
	if Permissions.IsGranted(permission.WriteExternalStorage) {
		t.Error("storage should not be granted")
	}
	if !Permissions.ShouldShowRationale(permission.WriteExternalStorage) {
		t.Error("storage should be rationale eligible")
	}
	if Permissions.ShouldShowRationale(permission.AccessBackgroundLocation) {
		t.Error("background location should not be rationale eligible")
	}
}

func TestStatusQueriesReportBridgeErrors(t *testing.T) {
	h := captureErrors(t)
	SetupTestBridge(t.Cleanup, &permissionBridge{err: fmt.Errorf("binder died")})

	if Permissions.IsGranted(permission.WriteExternalStorage) {
		t.Error("IsGranted should be false on error")
	}
	if Permissions.ShouldShowRationale(permission.WriteExternalStorage) {
		t.Error("ShouldShowRationale should be false on error")
	}
	if len(h.errs) != 2 {
		t.Fatalf("expected 2 reported errors, got %d", len(h.errs))
	}
	if h.errs[0].Op != "permissions.check" || h.errs[0].Kind != errors.KindPlatform {
		t.Errorf("unexpected report: %v", h.errs[0])
	}
}

func TestStatusWithoutBridge(t *testing.T) {
	t.Cleanup(ResetForTest)
	if _, err := Permissions.Check(permission.WriteExternalStorage); !stderrors.Is(err, ErrPlatformUnavailable) {
		t.Errorf("expected ErrPlatformUnavailable, got %v", err)
	}
}

func TestLaunchDeliversOnce(t *testing.T) {
	h := captureErrors(t)
	bridge := &permissionBridge{}
	SetupTestBridge(t.Cleanup, bridge)

	var calls []map[string]bool
	ids := []string{permission.AccessBackgroundLocation, permission.AccessCoarseLocation}
	requestID, err := Permissions.Launch(ids, func(results map[string]bool) {
		calls = append(calls, results)
	})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}

	gotID, gotIDs := bridge.lastRequest(t)
	if gotID != requestID {
		t.Errorf("request id = %q, want %q", gotID, requestID)
	}
	if len(gotIDs) != 2 || gotIDs[0] != ids[0] || gotIDs[1] != ids[1] {
		t.Errorf("requested identifiers = %v, want %v", gotIDs, ids)
	}
	if Permissions.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", Permissions.Pending())
	}
	if len(calls) != 0 {
		t.Fatal("callback ran before the result arrived")
	}

	result := map[string]bool{permission.AccessCoarseLocation: true, permission.AccessBackgroundLocation: false}
	sendResult(t, requestID, result)
	sendResult(t, requestID, result)

	if len(calls) != 1 {
		t.Fatalf("callback ran %d times, want 1", len(calls))
	}
	if !calls[0][permission.AccessCoarseLocation] || calls[0][permission.AccessBackgroundLocation] {
		t.Errorf("unexpected results %v", calls[0])
	}
	if Permissions.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", Permissions.Pending())
	}
	if len(h.errs) != 1 || !stderrors.Is(h.errs[0].Err, ErrUnknownRequest) {
		t.Errorf("duplicate result should be reported as unknown request, got %v", h.errs)
	}
}

func TestLaunchDispatchesOnUIThread(t *testing.T) {
	SetupTestBridge(t.Cleanup, &permissionBridge{})
	var queued []func()
	RegisterDispatch(func(cb func()) { queued = append(queued, cb) })

	got := false
	requestID, err := Permissions.Launch([]string{permission.WriteExternalStorage}, func(results map[string]bool) {
		got = results[permission.WriteExternalStorage]
	})
	if err != nil {
		t.Fatal(err)
	}
	sendResult(t, requestID, map[string]bool{permission.WriteExternalStorage: true})
	if got {
		t.Fatal("callback should wait for the UI thread")
	}
	if len(queued) != 1 {
		t.Fatalf("expected 1 queued callback, got %d", len(queued))
	}
	queued[0]()
	if !got {
		t.Error("callback did not receive the grant")
	}
}

func TestLaunchErrors(t *testing.T) {
	SetupTestBridge(t.Cleanup, &permissionBridge{err: fmt.Errorf("activity gone")})
	noop := func(map[string]bool) {}

	if _, err := Permissions.Launch(nil, noop); !stderrors.Is(err, permission.ErrNoIdentifiers) {
		t.Errorf("empty ids: got %v", err)
	}
	if _, err := Permissions.Launch([]string{permission.WriteExternalStorage}, nil); !stderrors.Is(err, ErrInvalidArguments) {
		t.Errorf("nil callback: got %v", err)
	}
	if _, err := Permissions.Launch([]string{permission.WriteExternalStorage}, noop); err == nil {
		t.Error("expected bridge error")
	}
	if Permissions.Pending() != 0 {
		t.Errorf("failed launch left %d pending requests", Permissions.Pending())
	}
}

func TestMalformedResultIsReported(t *testing.T) {
	h := captureErrors(t)
	SetupTestBridge(t.Cleanup, &permissionBridge{})
	if _, err := Permissions.Launch([]string{permission.WriteExternalStorage}, func(map[string]bool) {}); err != nil {
		t.Fatal(err)
	}

	for _, payload := range []string{`"oops"`, `{"results":{}}`, `{"requestId":"x"}`} {
		if err := HandleEvent(ResultsChannel, []byte(payload)); err != nil {
			t.Fatalf("HandleEvent(%s): %v", payload, err)
		}
	}
	if len(h.errs) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(h.errs))
	}
	for _, e := range h.errs {
		var parseErr *errors.ParseError
		if e.Kind != errors.KindParsing || !stderrors.As(e.Err, &parseErr) {
			t.Errorf("expected parse error report, got %v", e)
		}
	}
	if Permissions.Pending() != 1 {
		t.Errorf("malformed events must not consume the pending request")
	}
}

func TestResultCallbackPanicIsRecovered(t *testing.T) {
	h := captureErrors(t)
	SetupTestBridge(t.Cleanup, &permissionBridge{})
	requestID, err := Permissions.Launch([]string{permission.WriteExternalStorage}, func(map[string]bool) {
		panic("label gone")
	})
	if err != nil {
		t.Fatal(err)
	}
	sendResult(t, requestID, map[string]bool{permission.WriteExternalStorage: true})
	if len(h.panics) != 1 || h.panics[0].Op != "permissions.onResult" {
		t.Errorf("expected recovered panic, got %v", h.panics)
	}
}

func TestResultStreamStartedOnFirstLaunch(t *testing.T) {
	bridge := &permissionBridge{}
	SetupTestBridge(t.Cleanup, bridge)
	noop := func(map[string]bool) {}
	for i := 0; i < 2; i++ {
		if _, err := Permissions.Launch([]string{permission.WriteExternalStorage}, noop); err != nil {
			t.Fatal(err)
		}
	}
	count := 0
	for _, ch := range bridge.started {
		if ch == ResultsChannel {
			count++
		}
	}
	if count != 1 {
		t.Errorf("results stream started %d times, want 1", count)
	}
}
