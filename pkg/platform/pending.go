package platform

import "sync"

// ResultFunc receives the outcome of a permission request, keyed by
// identifier.
type ResultFunc func(results map[string]bool)

// pendingRequests holds one continuation per in-flight request.
// A continuation is removed when it is taken, so it runs at most once.
type pendingRequests struct {
	mu   sync.Mutex
	byID map[string]ResultFunc
}

func newPendingRequests() *pendingRequests {
	return &pendingRequests{byID: make(map[string]ResultFunc)}
}

func (p *pendingRequests) add(id string, fn ResultFunc) {
	p.mu.Lock()
	p.byID[id] = fn
	p.mu.Unlock()
}

func (p *pendingRequests) take(id string) (ResultFunc, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn, ok := p.byID[id]
	if ok {
		delete(p.byID, id)
	}
	return fn, ok
}

func (p *pendingRequests) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}

func (p *pendingRequests) clear() {
	p.mu.Lock()
	p.byID = make(map[string]ResultFunc)
	p.mu.Unlock()
}
