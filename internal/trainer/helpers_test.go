package trainer

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/lowaak/zbf-timer/internal/clock"
)

var epoch = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestHIIT(plan ...HIITMovement) (*HIITController, *clock.ManualTimeSource, *RecordingCueSink) {
	src := clock.NewManualTimeSource(epoch)
	cues := &RecordingCueSink{}
	h := NewHIITController(clock.NewSessionClock(src), cues, testLogger())
	h.SetPlan(plan)
	return h, src, cues
}

func newTestStrength(plan ...StrengthMovement) (*StrengthController, *clock.ManualTimeSource, *RecordingCueSink) {
	src := clock.NewManualTimeSource(epoch)
	cues := &RecordingCueSink{}
	s := NewStrengthController(clock.NewSessionClock(src), cues, testLogger())
	s.SetPlan(plan)
	return s, src, cues
}

func hiitMoves(n int) []HIITMovement {
	moves := make([]HIITMovement, n)
	for i := range moves {
		moves[i] = HIITMovement{
			ID:   fmt.Sprintf("move-%d", i),
			Name: fmt.Sprintf("Move %d", i),
			Cues: []string{fmt.Sprintf("cue %d", i)},
		}
	}
	return moves
}

func strengthMove(id string, sets, reps, rest int) StrengthMovement {
	return StrengthMovement{ID: id, Name: "Lift " + id, Sets: sets, Reps: reps, Rest: rest}
}

// settle calls advance until it reports no transition, returning how many happened
func settle(advance func(time.Time) bool, now time.Time) int {
	n := 0
	for advance(now) {
		n++
	}
	return n
}

func cueNames(sink *RecordingCueSink) []CueName {
	var names []CueName
	for _, c := range sink.Cues() {
		names = append(names, c.Name)
	}
	return names
}

// recordingRenderSink collects everything a WorkoutManager publishes
type recordingRenderSink struct {
	mu       sync.Mutex
	models   []DisplayModel
	snapshot []PlanSnapshot
}

func (r *recordingRenderSink) Present(dm DisplayModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = append(r.models, dm)
}

func (r *recordingRenderSink) PresentPlans(p PlanSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = append(r.snapshot, p)
}

func (r *recordingRenderSink) last(kind WorkoutKind) (DisplayModel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.models) - 1; i >= 0; i-- {
		if r.models[i].Kind == kind {
			return r.models[i], true
		}
	}
	return DisplayModel{}, false
}

func (r *recordingRenderSink) lastPlans() (PlanSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshot) == 0 {
		return PlanSnapshot{}, false
	}
	return r.snapshot[len(r.snapshot)-1], true
}

func (r *recordingRenderSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.models)
}

func newTestSource() *clock.ManualTimeSource {
	return clock.NewManualTimeSource(epoch)
}

func newTestClock(src *clock.ManualTimeSource) *clock.SessionClock {
	return clock.NewSessionClock(src)
}
