package alert

import (
	"fmt"
	"io"
	"sync"

	"github.com/kevin07696/amwalpay-bridge/internal/domain/ports"
)

// Writer shows alerts as lines on a terminal or any other writer
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates an error surface that prints to out
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// ShowError prints "<title>: <message>"
func (w *Writer) ShowError(title, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "%s: %s\n", title, message)
}

// Log routes alerts to the structured logger, for headless hosts with no user to show them to
type Log struct {
	logger ports.Logger
}

// NewLog creates an error surface backed by logger
func NewLog(logger ports.Logger) *Log {
	return &Log{logger: logger}
}

// ShowError logs the alert at warn level
func (l *Log) ShowError(title, message string) {
	l.logger.Warn("user alert",
		ports.String("title", title),
		ports.String("message", message),
	)
}
