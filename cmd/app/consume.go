package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/osse101/GatherBonus_Go/internal/event"
)

// maxLineBytes bounds a single input event
const maxLineBytes = 1 << 20

type publisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

type rawDeadLetter interface {
	WriteRaw(line []byte, lastError error) error
}

var errLineTooLong = fmt.Errorf("line too long: exceeds %d bytes", maxLineBytes)

// consume reads JSON-line events from r until EOF or ctx is done. Lines that
// do not decode or exceed maxLineBytes are dead-lettered; blank lines are
// skipped.
func consume(ctx context.Context, r io.Reader, pub publisher, dl rawDeadLetter) error {
	br := bufio.NewReaderSize(r, 64*1024)

	for {
		if ctx.Err() != nil {
			return nil
		}
		raw, tooLong, readErr := readLine(br)
		if tooLong {
			deadLetter(dl, raw, errLineTooLong)
		} else if line := bytes.TrimSpace(raw); len(line) > 0 {
			evt, err := decodeLine(line)
			if err != nil {
				deadLetter(dl, line, err)
			} else if err := pub.Publish(ctx, evt); err != nil {
				slog.Error("Failed to publish event", "event_type", evt.Type, "error", err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

// readLine returns the next line without its newline. A line longer than
// maxLineBytes is drained to its end and reported with tooLong set; only its
// first maxLineBytes bytes are returned.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, err := br.ReadSlice('\n')
		body := bytes.TrimSuffix(chunk, []byte{'\n'})
		if !tooLong {
			if room := maxLineBytes - len(line); len(body) > room {
				line = append(line, body[:room]...)
				tooLong = true
			} else {
				line = append(line, body...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, err
	}
}

func deadLetter(dl rawDeadLetter, line []byte, cause error) {
	if err := dl.WriteRaw(line, cause); err != nil {
		slog.Error("Failed to dead-letter input line", "error", err)
	}
}

func decodeLine(line []byte) (event.Event, error) {
	var evt event.Event
	if err := json.Unmarshal(line, &evt); err != nil {
		return event.Event{}, fmt.Errorf("invalid event json: %w", err)
	}
	if evt.Type == "" {
		return event.Event{}, errors.New("event has no type")
	}
	if evt.Version == "" {
		evt.Version = event.EventSchemaVersion
	}
	return evt, nil
}
