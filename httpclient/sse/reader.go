// Package sse reads Server-Sent Events from a streaming response body.
package sse

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// maxLineSize bounds a single field line.
const maxLineSize = 1 << 20

// Event is one dispatched server-sent event.
type Event struct {
	// Event is the "event:" type, empty for unnamed events.
	Event string
	// Data joins every "data:" line of the event with "\n".
	Data string
	ID   string
	// Retry is the reconnection delay requested by the server, zero if absent.
	Retry time.Duration
}

// Reader yields events until the stream ends with io.EOF.
type Reader interface {
	Next() (*Event, error)
	Close() error
}

type reader struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
}

func NewReader(body io.ReadCloser) Reader {
	s := bufio.NewScanner(body)
	s.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &reader{scanner: s, body: body}
}

func (r *reader) Next() (*Event, error) {
	var (
		ev   Event
		data []string
	)
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			if len(data) > 0 {
				ev.Data = strings.Join(data, "\n")
				return &ev, nil
			}
			// Events without data are not dispatched.
			ev = Event{}
			continue
		}
		if line[0] == ':' {
			continue
		}
		name, value := splitField(line)
		switch name {
		case "data":
			data = append(data, value)
		case "event":
			ev.Event = value
		case "id":
			if !strings.ContainsRune(value, 0) {
				ev.ID = value
			}
		case "retry":
			if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
				ev.Retry = time.Duration(ms) * time.Millisecond
			}
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if len(data) > 0 {
		ev.Data = strings.Join(data, "\n")
		return &ev, nil
	}
	return nil, io.EOF
}

func (r *reader) Close() error {
	return r.body.Close()
}

func splitField(line string) (name, value string) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return name, strings.TrimPrefix(value, " ")
}
