package event

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/osse101/GatherBonus_Go/internal/logger"
)

// DeadLetterWriter appends events the harness could not deliver to a JSON-lines file
type DeadLetterWriter struct {
	file *os.File
	mu   sync.Mutex
}

// DeadLetterEntry is one rejected event or raw input line
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         *Event    `json:"event,omitempty"`
	Raw           string    `json:"raw,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter opens path for appending
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write records an event that failed to publish
func (dlw *DeadLetterWriter) Write(event Event, lastError error) error {
	logger.Warn(LogMsgEventDeadLettered, "event_type", event.Type, "error", errString(lastError))
	return dlw.append(DeadLetterEntry{Event: &event, LastError: errString(lastError)})
}

// WriteRaw records an input line that could not be decoded into an event
func (dlw *DeadLetterWriter) WriteRaw(line []byte, lastError error) error {
	logger.Warn(LogMsgEventDeadLettered, "error", errString(lastError))
	return dlw.append(DeadLetterEntry{Raw: string(line), LastError: errString(lastError)})
}

func (dlw *DeadLetterWriter) append(entry DeadLetterEntry) error {
	entry.SchemaVersion = DeadLetterSchemaVersion
	entry.Timestamp = time.Now()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	dlw.mu.Lock()
	defer dlw.mu.Unlock()
	_, err = dlw.file.Write(append(data, '\n'))
	return err
}

// Close closes the dead-letter file
func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
