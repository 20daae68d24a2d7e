// Package logging provides structured debug logging for fillforge components.
// All components of one process share a session-scoped log file under
// ~/.fillforge/logs/; when the file cannot be opened the logger falls back to
// stderr rather than failing.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	sessionID     string
	sessionIDOnce sync.Once
)

// sessionIDValue returns the process-wide session id, generating it once.
func sessionIDValue() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// Logger writes timestamped, component-tagged log lines. A nil *Logger is
// valid and discards everything, so components can treat logging as optional.
type Logger struct {
	component string
	file      *os.File
	out       *log.Logger
	logPath   string
	mu        sync.Mutex
	closeOnce sync.Once
}

// New creates a logger for one component writing to the session log file in
// dir. An empty dir defaults to ~/.fillforge/logs. If the directory or file
// cannot be created the returned logger writes to stderr and the error is
// reported so callers can surface the degraded mode.
func New(component, dir string) (*Logger, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fallback(component), fmt.Errorf("logging: resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".fillforge", "logs")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fallback(component), fmt.Errorf("logging: create log directory: %w", err)
	}

	logPath := filepath.Join(dir, fmt.Sprintf("%s-fillforge.log", sessionIDValue()))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fallback(component), fmt.Errorf("logging: open log file: %w", err)
	}

	return &Logger{
		component: component,
		file:      file,
		out:       log.New(file, "", 0),
		logPath:   logPath,
	}, nil
}

// fallback builds a stderr logger used when file logging is unavailable.
func fallback(component string) *Logger {
	return &Logger{
		component: component,
		out:       log.New(os.Stderr, "", 0),
	}
}

func (l *Logger) write(level, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	l.out.Printf("[%s] [%s] [%s] %s", ts, l.component, level, fmt.Sprintf(format, v...))
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) { l.write("DEBUG", format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.write("INFO", format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.write("WARN", format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.write("ERROR", format, v...) }

// LogPath returns the path of the session log file, or empty in fallback mode.
func (l *Logger) LogPath() string {
	if l == nil {
		return ""
	}
	return l.logPath
}

// SessionID returns the process-wide logging session id.
func SessionID() string {
	return sessionIDValue()
}

// Close closes the underlying log file. Safe to call multiple times and on a
// nil logger.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
