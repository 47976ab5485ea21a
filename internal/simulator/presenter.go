package simulator

import (
	"sync"

	"github.com/go-drift/apppermission/internal/activity"
)

// Presenter is an activity.RationalePresenter that answers each dialog with
// the next scripted tap. Once the taps run out every dialog is canceled.
type Presenter struct {
	mu    sync.Mutex
	taps  []string
	shown []activity.Rationale
}

// NewPresenter creates a presenter that answers with taps in order.
func NewPresenter(taps ...string) *Presenter {
	return &Presenter{taps: taps}
}

// ShowRationale implements activity.RationalePresenter.
func (p *Presenter) ShowRationale(r activity.Rationale, onAllow, onCancel func()) {
	p.mu.Lock()
	p.shown = append(p.shown, r)
	tap := TapCancel
	if len(p.taps) > 0 {
		tap = p.taps[0]
		p.taps = p.taps[1:]
	}
	p.mu.Unlock()

	if tap == TapAllow {
		onAllow()
		return
	}
	onCancel()
}

// Shown returns the dialogs presented so far.
func (p *Presenter) Shown() []activity.Rationale {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]activity.Rationale, len(p.shown))
	copy(out, p.shown)
	return out
}
