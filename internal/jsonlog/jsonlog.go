package jsonlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	InfoLevel Level = iota
	ErrorLevel
	FatalLevel
	NilLevel
)

type Level int8

func (lv Level) String() string {
	switch lv {
	case InfoLevel:
		return "INFO"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	case NilLevel:
		return "NIL"
	default:
		return ""
	}
}

// ParseLevel accepts the lower-case names used on the command line.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return InfoLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	case "off", "nil":
		return NilLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

type Logger struct {
	out   io.Writer
	level Level
	mu    sync.Mutex
	exit  func(code int)
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		out:   out,
		level: level,
		exit:  os.Exit,
	}
}

func (l *Logger) Info(message string, properties map[string]string) {
	l.print(InfoLevel, message, properties)
}

func (l *Logger) Error(err error, properties map[string]string) {
	l.print(ErrorLevel, err.Error(), properties)
}

func (l *Logger) FatalErr(err error, properties map[string]string) {
	l.print(FatalLevel, err.Error(), properties)
	l.exit(1)
}

func (l *Logger) print(level Level, message string, properties map[string]string) (int, error) {
	if l.level > level {
		return 0, nil
	}

	aux := struct {
		Level      string            `json:"level"`
		Time       string            `json:"time"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties,omitempty"`
		Trace      string            `json:"trace,omitempty"`
	}{
		Level:      level.String(),
		Time:       time.Now().UTC().Format(time.RFC3339),
		Message:    message,
		Properties: properties,
	}

	if level >= ErrorLevel {
		aux.Trace = string(debug.Stack())
	}

	line, err := json.Marshal(aux)
	if err != nil {
		line = []byte(ErrorLevel.String() + ": unable to marshal log message: " + err.Error())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Write(append(line, '\n'))
}

// Write lets the logger back a *log.Logger, e.g. http.Server.ErrorLog.
// Everything written this way is logged at ERROR.
func (l *Logger) Write(b []byte) (int, error) {
	_, err := l.print(ErrorLevel, strings.TrimRight(string(b), "\n"), nil)
	if err != nil {
		return 0, err
	}

	return len(b), nil
}
