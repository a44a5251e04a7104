package core

import "time"

// LoopState is the readiness of the viewer.
type LoopState uint8

const (
	StateLoading LoopState = iota // textured assets not ready
	StateReady
	StateFailed // assets failed; colored modes still work
)

func (s LoopState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// maxFrameTime caps dt after stalls such as window drags.
const maxFrameTime = 0.25

// Loop tracks frame timing and viewer state.
type Loop struct {
	State LoopState
	Frame uint64

	now      func() time.Time
	lastTime time.Time
}

// NewLoop creates a loop in the loading state.
func NewLoop() *Loop {
	return newLoopWithClock(time.Now)
}

func newLoopWithClock(now func() time.Time) *Loop {
	return &Loop{now: now, lastTime: now()}
}

// Tick should be called once per update. It returns the elapsed seconds
// since the previous tick, capped at maxFrameTime.
func (l *Loop) Tick() float64 {
	now := l.now()
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now
	l.Frame++

	if dt > maxFrameTime {
		dt = maxFrameTime
	}
	if dt < 0 {
		dt = 0
	}
	return dt
}

// Ready reports whether textured rendering may proceed.
func (l *Loop) Ready() bool { return l.State == StateReady }
