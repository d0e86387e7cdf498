// Package runlog writes the harness run log: plain-text lines of the form
// [ISO-8601 timestamp] [LEVEL] message, one file per invocation.
package runlog

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Formatter renders entries as "[timestamp] [LEVEL] message" lines.
// Info-level entries are tagged ACTION: they trace the mutations the run
// performed, which is what a violation report is read against.
type Formatter struct{}

// Format implements logrus.Formatter.
func (Formatter) Format(e *log.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("[%s] [%s] %s\n", e.Time.Format("2006-01-02T15:04:05.000Z07:00"), tag(e.Level), e.Message)), nil
}

func tag(level log.Level) string {
	switch level {
	case log.InfoLevel:
		return "ACTION"
	case log.WarnLevel:
		return "WARN"
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		return "ERROR"
	}
	return "DEBUG"
}

// New opens path, truncating any previous run, and returns a logger writing
// formatted lines to the file and to stderr. The returned close function
// flushes and releases the file.
func New(path string) (*log.Logger, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open run log: %w", err)
	}
	logger := log.New()
	logger.SetFormatter(Formatter{})
	logger.SetOutput(io.MultiWriter(f, os.Stderr))
	return logger, f.Close, nil
}
