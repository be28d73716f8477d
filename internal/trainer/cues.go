package trainer

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/zbf-timer/internal/go_func_utils"
)

// CueSink plays a tone. Implementations may fail or panic; controllers never see it.
type CueSink interface {
	Emit(name CueName, frequencyHz float64, duration time.Duration)
}

// CueSinkFunc adapts a function to CueSink
type CueSinkFunc func(name CueName, frequencyHz float64, duration time.Duration)

func (f CueSinkFunc) Emit(name CueName, frequencyHz float64, duration time.Duration) {
	f(name, frequencyHz, duration)
}

// NopCueSink discards every cue
type NopCueSink struct{}

func (NopCueSink) Emit(CueName, float64, time.Duration) {}

// cueEmitter isolates controller state from sink failures
type cueEmitter struct {
	sink   CueSink
	logger *log.Logger
}

func newCueEmitter(sink CueSink, logger *log.Logger) cueEmitter {
	if sink == nil {
		sink = NopCueSink{}
	}
	return cueEmitter{sink: sink, logger: logger}
}

func (e cueEmitter) emit(tone CueTone) {
	go_func_utils.SafeCall(e.logger, func() {
		e.sink.Emit(tone.Name, tone.FrequencyHz, tone.Duration)
	})
}

// RecordedCue is a cue captured by RecordingCueSink
type RecordedCue struct {
	Name        CueName
	FrequencyHz float64
	Duration    time.Duration
}

// RecordingCueSink keeps every emitted cue in order
type RecordingCueSink struct {
	mu   sync.Mutex
	cues []RecordedCue
}

func (r *RecordingCueSink) Emit(name CueName, frequencyHz float64, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, RecordedCue{Name: name, FrequencyHz: frequencyHz, Duration: duration})
}

// Cues returns a copy of the recorded cues
func (r *RecordingCueSink) Cues() []RecordedCue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedCue(nil), r.cues...)
}

// Count returns how many cues with the given name were recorded
func (r *RecordingCueSink) Count(name CueName) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.cues {
		if c.Name == name {
			n++
		}
	}
	return n
}

// MultiCueSink fans a cue out to several sinks
type MultiCueSink []CueSink

func (m MultiCueSink) Emit(name CueName, frequencyHz float64, duration time.Duration) {
	for _, sink := range m {
		if sink != nil {
			sink.Emit(name, frequencyHz, duration)
		}
	}
}
