package driver

import "time"

// PassTimer is the Go port of the original implementation's GPU pass
// timer (original_source/src/gpu/timer.rs): a monotonic-clock stopwatch
// per named pass, gated behind Config.GPUTiming (spec §4.M point 5,
// "optionally stamp GPU timers between passes"). There are no literal GPU
// timestamp queries in this CPU-simulated pipeline, so it times each
// simulated pass's wall-clock span instead, which is the faithful
// CPU-side equivalent of the same contract.
type PassTimer struct {
	enabled bool
	started time.Time
	current string
	spans   []PassSpan
}

// PassSpan is one completed pass's name and duration.
type PassSpan struct {
	Pass     string
	Duration time.Duration
}

// NewPassTimer returns a PassTimer; when enabled is false every method is a
// no-op so call sites never need to branch on Config.GPUTiming themselves.
func NewPassTimer(enabled bool) *PassTimer {
	return &PassTimer{enabled: enabled}
}

// Start begins timing a pass named name. Calling Start while a previous
// pass is still open implicitly ends it first.
func (t *PassTimer) Start(name string) {
	if !t.enabled {
		return
	}
	if t.current != "" {
		t.end()
	}
	t.current = name
	t.started = time.Now()
}

// End closes the currently open pass, if any.
func (t *PassTimer) End() {
	if !t.enabled || t.current == "" {
		return
	}
	t.end()
}

func (t *PassTimer) end() {
	t.spans = append(t.spans, PassSpan{Pass: t.current, Duration: time.Since(t.started)})
	t.current = ""
}

// Spans returns every completed pass span recorded so far.
func (t *PassTimer) Spans() []PassSpan {
	t.End()
	return t.spans
}
