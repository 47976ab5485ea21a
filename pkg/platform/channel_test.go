package platform

import (
	stderrors "errors"
	"testing"
)

func TestListenBeforeBridgeStartsStreamLater(t *testing.T) {
	captureErrors(t)
	t.Cleanup(ResetForTest)

	ch := NewEventChannel("test/late-bridge")
	var startErr error
	var events []any
	ch.Listen(EventHandler{
		OnEvent: func(data any) { events = append(events, data) },
		OnError: func(err error) { startErr = err },
	})
	if !stderrors.Is(startErr, ErrPlatformUnavailable) {
		t.Fatalf("expected ErrPlatformUnavailable before the bridge, got %v", startErr)
	}

	bridge := &permissionBridge{}
	SetNativeBridge(bridge)
	if len(bridge.started) != 1 || bridge.started[0] != "test/late-bridge" {
		t.Errorf("stream not started on SetNativeBridge: %v", bridge.started)
	}

	if err := HandleEvent("test/late-bridge", []byte(`{"n":1}`)); err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestSubscriptionCancel(t *testing.T) {
	SetupTestBridge(t.Cleanup, nil)

	ch := NewEventChannel("test/cancel")
	count := 0
	sub := ch.Listen(EventHandler{OnEvent: func(any) { count++ }})
	_ = HandleEvent("test/cancel", []byte(`1`))
	sub.Cancel()
	sub.Cancel()
	_ = HandleEvent("test/cancel", []byte(`2`))

	if count != 1 {
		t.Errorf("received %d events, want 1", count)
	}
	if !sub.IsCanceled() {
		t.Error("subscription should be canceled")
	}
}

func TestHandleEventDoneAndError(t *testing.T) {
	SetupTestBridge(t.Cleanup, nil)

	ch := NewEventChannel("test/done")
	done := false
	var gotErr error
	sub := ch.Listen(EventHandler{
		OnError: func(err error) { gotErr = err },
		OnDone:  func() { done = true },
	})

	if err := HandleEventError("test/done", "E_BUSY", "dialog already shown"); err != nil {
		t.Fatal(err)
	}
	var chErr *ChannelError
	if !stderrors.As(gotErr, &chErr) || chErr.Code != "E_BUSY" {
		t.Errorf("expected ChannelError E_BUSY, got %v", gotErr)
	}
	if got := chErr.Error(); got != "E_BUSY: dialog already shown" {
		t.Errorf("ChannelError.Error() = %q", got)
	}

	if err := HandleEventDone("test/done"); err != nil {
		t.Fatal(err)
	}
	if !done || !sub.IsCanceled() {
		t.Error("done should cancel the subscription and notify the handler")
	}
}

func TestHandleEventUnregistered(t *testing.T) {
	h := captureErrors(t)
	err := HandleEvent("test/nowhere", []byte(`{}`))
	if !stderrors.Is(err, ErrChannelNotRegistered) {
		t.Errorf("expected ErrChannelNotRegistered, got %v", err)
	}
	if len(h.errs) != 1 || h.errs[0].Channel != "test/nowhere" {
		t.Errorf("expected one report for the channel, got %v", h.errs)
	}
}

func TestHandleMethodCall(t *testing.T) {
	ch := NewMethodChannel("test/methods")
	ch.SetHandler(func(method string, args any) (any, error) {
		if method != "echo" {
			return nil, ErrMethodNotFound
		}
		return args, nil
	})

	out, err := HandleMethodCall("test/methods", "echo", []byte(`{"a":true}`))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":true}` {
		t.Errorf("got %s", out)
	}
	if _, err := HandleMethodCall("test/methods", "other", nil); !stderrors.Is(err, ErrMethodNotFound) {
		t.Errorf("expected ErrMethodNotFound, got %v", err)
	}
	if _, err := HandleMethodCall("test/missing", "echo", nil); !stderrors.Is(err, ErrChannelNotFound) {
		t.Errorf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestStreamParsesAndReportsRejects(t *testing.T) {
	h := captureErrors(t)
	SetupTestBridge(t.Cleanup, nil)

	errNotCount := stderrors.New("not a count")
	stream := NewStream("test.counts", NewEventChannel("test/counts"), func(data any) (int, error) {
		n, ok := toInt(parseMap(data)["count"])
		if !ok {
			return 0, errNotCount
		}
		return n, nil
	})

	var got []int
	sub := stream.Listen(func(n int) { got = append(got, n) })

	for _, payload := range []string{`{"count":3}`, `{"count":"x"}`, `{"count":5}`} {
		if err := HandleEvent("test/counts", []byte(payload)); err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != 2 || got[0] != 3 || got[1] != 5 {
		t.Errorf("got %v, want [3 5]", got)
	}
	if len(h.errs) != 1 || h.errs[0].Op != "test.counts.parse" || !stderrors.Is(h.errs[0].Err, errNotCount) {
		t.Errorf("expected one parse report, got %v", h.errs)
	}

	if err := HandleEventError("test/counts", "E_GONE", "stream lost"); err != nil {
		t.Fatal(err)
	}
	if len(h.errs) != 2 || h.errs[1].Op != "test.counts" {
		t.Errorf("expected stream error report, got %v", h.errs)
	}

	sub.Cancel()
	if err := HandleEvent("test/counts", []byte(`{"count":7}`)); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("canceled stream received %v", got)
	}
}
