package gtship

import "github.com/bft-labs/gtship/internal/ports"

// Callback receives exactly one OnComplete or OnFailure per SendLocations call.
// It is invoked from the dispatcher's worker goroutine, or from the caller's
// goroutine when the batch is rejected at submission.
type Callback = ports.Callback

// CallbackFuncs adapts two functions to Callback. Nil funcs are skipped.
type CallbackFuncs struct {
	Complete func()
	Failure  func()
}

// OnComplete calls Complete.
func (f CallbackFuncs) OnComplete() {
	if f.Complete != nil {
		f.Complete()
	}
}

// OnFailure calls Failure.
func (f CallbackFuncs) OnFailure() {
	if f.Failure != nil {
		f.Failure()
	}
}

var _ Callback = CallbackFuncs{}
