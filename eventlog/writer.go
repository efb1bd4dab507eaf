// Package eventlog reads and writes match event streams in their on-disk
// form: UTF-8 JSONL, one event per LF-terminated line, keys sorted so file
// hashes are reproducible across implementations.
package eventlog

import (
	"io"
	"os"

	arena "github.com/wakesync/cmax-arena"
	"github.com/wakesync/cmax-arena/canonical"
)

type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteEvent appends one canonical-JSON line.
func (w *Writer) WriteEvent(ev arena.Event) error {
	line, err := canonical.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(line); err != nil {
		return err
	}
	_, err = w.w.Write([]byte("\n"))
	return err
}

// WriteAll writes a whole log in order.
func (w *Writer) WriteAll(events []arena.Event) error {
	for _, ev := range events {
		if err := w.WriteEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes a complete log to path.
func WriteFile(path string, events []arena.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := NewWriter(f).WriteAll(events); err != nil {
		return err
	}
	return f.Close()
}
