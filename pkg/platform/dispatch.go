package platform

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the function that schedules callbacks on the UI
// thread. The host calls it once during startup.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback on the UI thread. It returns false when no
// dispatch function is registered or callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// dispatchOrRun schedules callback on the UI thread, or runs it on the
// calling goroutine when no dispatcher is registered. A continuation must
// not be dropped.
func dispatchOrRun(callback func()) {
	if !Dispatch(callback) {
		callback()
	}
}
