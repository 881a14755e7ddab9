// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

// Package logx extends the standard library's logging with named,
// leveled loggers. Call AddLogger to register each desired sink, then
// use the package-level functions to send a message to every
// registered logger whose level permits it.
package logx

import (
	"fmt"
	"io"
	golog "log"
	"os"
	"sync"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	}
	return fmt.Sprintf("LEVEL(%d)", l)
}

// ParseLevel returns the log level named by s.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "fatal":
		return FATAL, nil
	}
	return -1, fmt.Errorf("invalid log level: %q", s)
}

type logger struct {
	out   *golog.Logger
	level Level
}

var (
	mu      sync.RWMutex
	loggers = make(map[string]*logger)
)

// AddLogger registers a named sink that receives every message logged
// at level or above.
func AddLogger(name string, output io.Writer, level Level) {
	mu.Lock()
	defer mu.Unlock()

	loggers[name] = &logger{out: golog.New(output, "", golog.LstdFlags), level: level}
}

// DelLogger removes a sink previously registered with AddLogger.
func DelLogger(name string) {
	mu.Lock()
	defer mu.Unlock()

	delete(loggers, name)
}

// WillLog reports whether a message at level would reach any sink.
// Useful when the message itself is expensive to format.
func WillLog(level Level) bool {
	mu.RLock()
	defer mu.RUnlock()

	for _, l := range loggers {
		if l.level <= level {
			return true
		}
	}
	return false
}

func logf(level Level, format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()

	for _, l := range loggers {
		if l.level <= level {
			l.out.Printf("%s %s", level, fmt.Sprintf(format, args...))
		}
	}
}

func logln(level Level, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()

	msg := fmt.Sprintln(args...)
	for _, l := range loggers {
		if l.level <= level {
			l.out.Printf("%s %s", level, msg)
		}
	}
}

func Debug(format string, args ...interface{}) { logf(DEBUG, format, args...) }
func Info(format string, args ...interface{})  { logf(INFO, format, args...) }
func Warn(format string, args ...interface{})  { logf(WARN, format, args...) }
func Error(format string, args ...interface{}) { logf(ERROR, format, args...) }

func Fatal(format string, args ...interface{}) {
	logf(FATAL, format, args...)
	os.Exit(1)
}

func Debugln(args ...interface{}) { logln(DEBUG, args...) }
func Infoln(args ...interface{})  { logln(INFO, args...) }
func Warnln(args ...interface{})  { logln(WARN, args...) }
func Errorln(args ...interface{}) { logln(ERROR, args...) }

func Fatalln(args ...interface{}) {
	logln(FATAL, args...)
	os.Exit(1)
}
