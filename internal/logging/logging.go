// Package logging builds logs.Log values for processes whose stdout is
// reserved for data: JSON results or the MCP protocol.
package logging

import (
	"io"
	"sync"

	"github.com/cyclopcam/logs"
)

// Logger drops messages below MinLevel and hands the rest to a logs.Logger.
type Logger struct {
	MinLevel logs.Level

	mu  sync.Mutex
	out *logs.Logger
}

var _ logs.Log = (*Logger)(nil)

// New returns a Logger writing to w. Debug lines are dropped unless verbose.
func New(w io.Writer, verbose bool) *Logger {
	l := &Logger{MinLevel: logs.LevelInfo, out: &logs.Logger{Output: w}}
	if verbose {
		l.MinLevel = logs.LevelDebug
	}
	return l
}

// Discard returns a Logger that writes nothing.
func Discard() *Logger {
	return &Logger{MinLevel: logs.LevelCritical + 1, out: &logs.Logger{Output: io.Discard}}
}

func (l *Logger) write(level logs.Level, emit func(string, ...interface{}), format string, a ...interface{}) {
	if level < l.MinLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	emit(format, a...)
}

func (l *Logger) Close() {
	l.out.Close()
}

func (l *Logger) Debugf(format string, a ...interface{}) {
	l.write(logs.LevelDebug, l.out.Debugf, format, a...)
}

func (l *Logger) Infof(format string, a ...interface{}) {
	l.write(logs.LevelInfo, l.out.Infof, format, a...)
}

func (l *Logger) Warnf(format string, a ...interface{}) {
	l.write(logs.LevelWarn, l.out.Warnf, format, a...)
}

func (l *Logger) Errorf(format string, a ...interface{}) {
	l.write(logs.LevelError, l.out.Errorf, format, a...)
}

func (l *Logger) Criticalf(format string, a ...interface{}) {
	l.write(logs.LevelCritical, l.out.Criticalf, format, a...)
}
