package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const noID = "xxxxxxxx"

var base = newBase(os.Stderr)

func newBase(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(lineFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// lineFormatter keeps the fixed-width "[id] [LEVEL] [component] message" layout.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	id, _ := e.Data["id"].(string)
	if id == "" {
		id = noID
	}
	component, _ := e.Data["component"].(string)
	line := fmt.Sprintf("%s [%s] [%-5s] [%-8s] %s\n",
		e.Time.Format("2006/01/02 15:04:05"), id, levelName(e.Level), component, e.Message)
	return []byte(line), nil
}

func levelName(l logrus.Level) string {
	switch l {
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	default:
		return "ERROR"
	}
}

// SetLevel sets the minimum level for every component logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	base.SetLevel(lvl)
	return nil
}

// SetOutput redirects all component loggers.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// Logger provides structured logging across the application
type Logger struct {
	component string
	entry     *logrus.Entry
}

// New creates a new logger for a specific component
func New(component string) *Logger {
	return &Logger{
		component: component,
		entry:     logrus.NewEntry(base).WithField("component", component),
	}
}

// GenerateID creates a short unique identifier for run tracing
func GenerateID() string {
	return uuid.NewString()[:8]
}

// Log writes a message at the given level tagged with id
func (l *Logger) Log(id string, level logrus.Level, message string, args ...interface{}) {
	l.entry.WithField("id", id).Logf(level, message, args...)
}

func (l *Logger) Debug(id, message string, args ...interface{}) {
	l.Log(id, logrus.DebugLevel, message, args...)
}

func (l *Logger) Info(id, message string, args ...interface{}) {
	l.Log(id, logrus.InfoLevel, message, args...)
}

func (l *Logger) Warn(id, message string, args ...interface{}) {
	l.Log(id, logrus.WarnLevel, message, args...)
}

func (l *Logger) Error(id, message string, args ...interface{}) {
	l.Log(id, logrus.ErrorLevel, message, args...)
}

// DebugBg logs debug messages not tied to a run
func (l *Logger) DebugBg(message string, args ...interface{}) {
	l.Log(noID, logrus.DebugLevel, message, args...)
}

// InfoBg logs info messages not tied to a run
func (l *Logger) InfoBg(message string, args ...interface{}) {
	l.Log(noID, logrus.InfoLevel, message, args...)
}

// WarnBg logs warning messages not tied to a run
func (l *Logger) WarnBg(message string, args ...interface{}) {
	l.Log(noID, logrus.WarnLevel, message, args...)
}

// ErrorBg logs error messages not tied to a run
func (l *Logger) ErrorBg(message string, args ...interface{}) {
	l.Log(noID, logrus.ErrorLevel, message, args...)
}
