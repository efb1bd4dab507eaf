package eventlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	arena "github.com/wakesync/cmax-arena"
)

var (
	ErrBlankLine    = errors.New("eventlog: blank line in log")
	ErrUnknownEvent = errors.New("eventlog: unknown event type")
)

// DecodeEvent decodes a single JSONL line into its typed event.
func DecodeEvent(line []byte) (arena.Event, error) {
	var head struct {
		Type arena.EventType `json:"type"`
	}
	if err := json.Unmarshal(line, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case arena.EventType_MatchStart:
		var ev arena.MatchStartEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	case arena.EventType_Turn:
		var ev arena.TurnEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	case arena.EventType_MatchEnd:
		var ev arena.MatchEndEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, err
		}
		return &ev, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, head.Type)
	}
}

type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next event, io.EOF at the end of the stream.
func (r *Reader) Next() (arena.Event, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	r.line++
	raw := r.sc.Bytes()
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: line %d", ErrBlankLine, r.line)
	}
	ev, err := DecodeEvent(raw)
	if err != nil {
		return nil, fmt.Errorf("eventlog: line %d: %w", r.line, err)
	}
	return ev, nil
}

// ReadAll decodes the remaining stream.
func (r *Reader) ReadAll() ([]arena.Event, error) {
	events := make([]arena.Event, 0)
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
}

// ReadFile loads a complete log from path.
func ReadFile(path string) ([]arena.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewReader(f).ReadAll()
}
