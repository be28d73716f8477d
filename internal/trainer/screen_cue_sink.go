package trainer

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// ScreenBeepCueSink rings the terminal bell for every cue. Terminals have a single
// bell, so frequency and duration are ignored.
type ScreenBeepCueSink struct {
	screen tcell.Screen
}

func NewScreenBeepCueSink(screen tcell.Screen) *ScreenBeepCueSink {
	if screen == nil {
		panic("ScreenBeepCueSink: screen cannot be nil")
	}
	return &ScreenBeepCueSink{screen: screen}
}

func (s *ScreenBeepCueSink) Emit(CueName, float64, time.Duration) {
	_ = s.screen.Beep()
}
