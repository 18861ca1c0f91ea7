package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
	// PhaseDone and PhaseFailed close a module: Name is "module".
	PhaseDone
	PhaseFailed
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Path    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Check.
type PhaseObserver func(PhaseEvent)

// phase reports the start of name and returns the matching end callback.
func (o PhaseObserver) phase(name, path string) func() {
	if o == nil {
		return func() {}
	}
	start := time.Now()
	o(PhaseEvent{Name: name, Path: path, Status: PhaseStart})
	return func() {
		o(PhaseEvent{Name: name, Path: path, Status: PhaseEnd, Elapsed: time.Since(start)})
	}
}

// module reports that every phase of path is over.
func (o PhaseObserver) module(path string, failed bool) {
	if o == nil {
		return
	}
	status := PhaseDone
	if failed {
		status = PhaseFailed
	}
	o(PhaseEvent{Name: "module", Path: path, Status: status})
}
