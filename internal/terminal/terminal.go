// Package terminal holds the bounded line buffers behind the hack terminal
// and the system log panels.
package terminal

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Class styles a line.
type Class int

const (
	ClassOutput Class = iota
	ClassInfo
	ClassSuccess
	ClassWarning
	ClassError
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassInfo:
		return "info"
	case ClassSuccess:
		return "success"
	case ClassWarning:
		return "warning"
	case ClassError:
		return "error"
	default:
		return "output"
	}
}

// Line is one entry of a buffer.
type Line struct {
	Text  string
	Class Class
	At    time.Time // Zero for terminal output
}

// Buffer keeps the most recent lines, dropping the oldest beyond max.
type Buffer struct {
	max   int
	lines []Line
}

// NewBuffer creates a buffer holding at most max lines.
// A non-positive max keeps everything.
func NewBuffer(max int) *Buffer {
	return &Buffer{max: max}
}

// Add appends a line of the given class.
func (b *Buffer) Add(text string, class Class) {
	b.push(Line{Text: text, Class: class})
}

// Addf appends a formatted output line.
func (b *Buffer) Addf(format string, args ...any) {
	b.Add(fmt.Sprintf(format, args...), ClassOutput)
}

func (b *Buffer) push(l Line) {
	b.lines = append(b.lines, l)
	if b.max > 0 && len(b.lines) > b.max {
		b.lines = append(b.lines[:0], b.lines[len(b.lines)-b.max:]...)
	}
}

// Clear removes every line.
func (b *Buffer) Clear() {
	b.lines = b.lines[:0]
}

// Lines returns a copy of the buffered lines, oldest first.
func (b *Buffer) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Tail returns up to n of the newest lines, oldest first.
func (b *Buffer) Tail(n int) []Line {
	if n <= 0 || n >= len(b.lines) {
		return b.Lines()
	}
	out := make([]Line, n)
	copy(out, b.lines[len(b.lines)-n:])
	return out
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Log is the system log: a timestamped buffer that also forwards every
// entry to a structured logger.
type Log struct {
	Buffer
	logger *log.Logger
	now    func() time.Time
}

// NewLog creates a system log. logger may be nil.
func NewLog(max int, logger *log.Logger) *Log {
	return &Log{
		Buffer: Buffer{max: max},
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the timestamp source.
func (l *Log) SetClock(now func() time.Time) {
	l.now = now
}

// Add appends a timestamped entry and forwards it to the logger.
func (l *Log) Add(text string, class Class) {
	l.push(Line{Text: text, Class: class, At: l.now()})
	if l.logger == nil {
		return
	}
	switch class {
	case ClassError:
		l.logger.Error(text)
	case ClassWarning:
		l.logger.Warn(text)
	default:
		l.logger.Info(text, "class", class)
	}
}

// Addf appends a formatted entry of the given class.
func (l *Log) Addf(class Class, format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...), class)
}

// Format renders a log line the way the panel shows it.
func Format(l Line) string {
	if l.At.IsZero() {
		return l.Text
	}
	return fmt.Sprintf("[%s] %s", l.At.Format("15:04:05"), l.Text)
}
