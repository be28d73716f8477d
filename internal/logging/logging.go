package logging

import (
	"io"
	"log"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the rotating log file
type Options struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Extra also copies output to the given writer, e.g. os.Stderr for headless commands
	Extra io.Writer
}

// UILogBuffer is the capacity of the channel feeding the in-app log page
const UILogBuffer = 256

// Logging bundles the application logger with the line feed for the UI
type Logging struct {
	Logger  *log.Logger
	UILines <-chan string

	file   *lumberjack.Logger
	feed   *ChannelWriter
	closed sync.Once
}

// New creates a logger writing to a rotating file and to a UI line channel
func New(opts Options) *Logging {
	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	feed := NewChannelWriter(UILogBuffer)

	writers := []io.Writer{file, feed}
	if opts.Extra != nil {
		writers = append(writers, opts.Extra)
	}

	return &Logging{
		Logger:  log.New(io.MultiWriter(writers...), "", log.LstdFlags|log.Lmicroseconds),
		UILines: feed.Lines(),
		file:    file,
		feed:    feed,
	}
}

// Close flushes the log file and closes the UI feed
func (l *Logging) Close() error {
	var err error
	l.closed.Do(func() {
		l.feed.Close()
		err = l.file.Close()
	})
	return err
}

// ChannelWriter turns written bytes into lines on a buffered channel.
// Writes never block: lines are dropped while the channel is full.
type ChannelWriter struct {
	mu      sync.Mutex
	lines   chan string
	closed  bool
	dropped int
}

func NewChannelWriter(buffer int) *ChannelWriter {
	return &ChannelWriter{lines: make(chan string, buffer)}
}

func (w *ChannelWriter) Lines() <-chan string {
	return w.lines
}

func (w *ChannelWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return len(p), nil
	}
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		select {
		case w.lines <- line:
		default:
			w.dropped++
		}
	}
	return len(p), nil
}

// Dropped returns how many lines were discarded because nobody was reading
func (w *ChannelWriter) Dropped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

func (w *ChannelWriter) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.lines)
	}
}
