package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kpauljoseph/pdftool/pkg/logger"
)

// Sink receives human readable progress lines from a running operation.
type Sink interface {
	AppendLine(line string)
}

// Func adapts a plain function to a Sink.
type Func func(line string)

func (f Func) AppendLine(line string) {
	f(line)
}

// Printf formats a line and hands it to the sink. A nil sink drops the line.
func Printf(s Sink, format string, args ...interface{}) {
	if s == nil {
		return
	}
	s.AppendLine(fmt.Sprintf(format, args...))
}

type LoggerSink struct {
	log *logger.Logger
}

func NewLoggerSink(log *logger.Logger) *LoggerSink {
	return &LoggerSink{log: log}
}

func (s *LoggerSink) AppendLine(line string) {
	s.log.Info("%s", line)
}

// WriterSink writes every line followed by a newline.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) AppendLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}

// Collector keeps all lines in memory. It backs the GUI log areas and tests.
type Collector struct {
	mu       sync.Mutex
	lines    []string
	onAppend func(line string)
}

func NewCollector() *Collector {
	return &Collector{}
}

// OnAppend registers a callback invoked after each line is stored.
func (c *Collector) OnAppend(fn func(line string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAppend = fn
}

func (c *Collector) AppendLine(line string) {
	c.mu.Lock()
	c.lines = append(c.lines, line)
	fn := c.onAppend
	c.mu.Unlock()

	if fn != nil {
		fn(line)
	}
}

func (c *Collector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Collector) String() string {
	return strings.Join(c.Lines(), "\n")
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

type tee []Sink

func (t tee) AppendLine(line string) {
	for _, s := range t {
		s.AppendLine(line)
	}
}

// Tee fans a line out to every non-nil sink.
func Tee(sinks ...Sink) Sink {
	var out tee
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
