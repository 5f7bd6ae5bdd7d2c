// Package display renders an evaluation for a human. The monitor package
// never depends on it; callers hand it whatever they got back.
package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/KyleBrandon/safetemp/internal/monitor"
)

type Display interface {
	Show(scale monitor.Scale, sensor1, sensor2 float64, ev monitor.Evaluation) error
}

type TextDisplay struct {
	mu  sync.Mutex
	out io.Writer
}

func NewText(out io.Writer) *TextDisplay {
	return &TextDisplay{out: out}
}

// Message is the status line shown for a result.
func Message(r monitor.Result) string {
	switch r {
	case monitor.Nominal:
		return "Temperature range OK"
	case monitor.Alarm:
		return "ALARM: temperature out of range or sensors disagree"
	}

	return "Function error: invalid input"
}

func (d *TextDisplay) Show(scale monitor.Scale, sensor1, sensor2 float64, ev monitor.Evaluation) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := fmt.Fprintf(d.out, "sensor 1: %.2f °%s  sensor 2: %.2f °%s\n", sensor1, scale, sensor2, scale); err != nil {
		return err
	}

	if ev.Result != monitor.Invalid {
		if _, err := fmt.Fprintf(d.out, "actual temperature: %.2f °%s (%.2f °%s)\n", ev.Mean, scale, ev.Converted, scale.Other()); err != nil {
			return err
		}
	} else if ev.Violations != 0 {
		if _, err := fmt.Fprintf(d.out, "failed checks: %s\n", ev.Violations); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(d.out, Message(ev.Result))
	return err
}
