package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level. Unknown
// names fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled logging throughout the pipeline.
type Logger struct {
	min   Level
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
}

// NewLogger creates a Logger writing info and below to stdout and errors to
// stderr.
func NewLogger() *Logger {
	return &Logger{
		min:   LevelDebug,
		info:  log.New(os.Stdout, "", 0),
		warn:  log.New(os.Stdout, "", 0),
		err:   log.New(os.Stderr, "", 0),
		debug: log.New(os.Stdout, "", 0),
	}
}

// NewLoggerTo creates a Logger writing every level to w, dropping messages
// below minLevel.
func NewLoggerTo(w io.Writer, minLevel Level) *Logger {
	l := log.New(w, "", 0)
	return &Logger{min: minLevel, info: l, warn: l, err: l, debug: l}
}

// Discard returns a Logger that drops everything. Used by tests.
func Discard() *Logger {
	return NewLoggerTo(io.Discard, LevelError+1)
}

// WithLevel returns a copy of l that drops messages below minLevel.
func (l *Logger) WithLevel(minLevel Level) *Logger {
	c := *l
	c.min = minLevel
	return &c
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	if l.min > LevelInfo {
		return
	}
	l.info.Printf(fmt.Sprintf("[%s] \033[32mINFO\033[0m  %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	if l.min > LevelWarn {
		return
	}
	l.warn.Printf(fmt.Sprintf("[%s] \033[33mWARN\033[0m  %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	if l.min > LevelError {
		return
	}
	l.err.Printf(fmt.Sprintf("[%s] \033[31mERROR\033[0m %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.min > LevelDebug {
		return
	}
	l.debug.Printf(fmt.Sprintf("[%s] \033[36mDEBUG\033[0m %s\n", l.timestamp(), format), args...)
}
