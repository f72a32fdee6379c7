// Package obslog is the planner's logging seam. The teacher
// (order_fulfillment/main.go) logs with nothing fancier than the standard
// library's "log" package ("log.Fatal(err)"); this package keeps that same
// ambient choice but gives it the leveling and per-run tagging the
// original Python NetworkOptimizerLogger provides
// (original_source/src/utils/logging_utils.py), grounded on stdlib "log"
// rather than a third-party logging framework no example in the pack uses
// for this kind of CLI tool.
package obslog

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Level mirrors the --log-level choices of spec §6's CLI surface.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) (Level, error) {
	switch s {
	case "DEBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARNING":
		return Warn, nil
	case "ERROR", "CRITICAL":
		return Error, nil
	default:
		return Info, fmt.Errorf("obslog: unknown log level %q", s)
	}
}

// Logger is a small leveled wrapper around *log.Logger, one per run, the
// Go analogue of NetworkOptimizerLogger.get_logger(). RunID tags every
// line so interleaved scenario goroutines (spec §5: "a shared log sink
// must accept interleaved lines") stay attributable.
type Logger struct {
	level Level
	runID string
	std   *log.Logger
}

// New builds a Logger writing to stderr, matching the teacher's plain
// log.Fatal(err) destination.
func New(level Level, runID string) *Logger {
	return &Logger{
		level: level,
		runID: runID,
		std:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) log(level Level, tag, format string, args ...any) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.std.Printf("%s run=%s %s", tag, l.runID, msg)
}

func (l *Logger) Debugf(format string, args ...any) { l.log(Debug, "DEBUG", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(Info, "INFO", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(Warn, "WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(Error, "ERROR", format, args...) }

// Timed logs the start and completion (with elapsed duration) of op,
// mirroring TimedOperation in the original logging_utils.py.
func (l *Logger) Timed(op string, fn func() error) error {
	start := time.Now()
	l.Infof("starting %s...", op)
	err := fn()
	elapsed := time.Since(start)
	if err != nil {
		l.Errorf("error in %s after %s: %v", op, elapsed, err)
		return err
	}
	l.Infof("completed %s in %s", op, elapsed)
	return nil
}
