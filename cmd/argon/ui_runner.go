package main

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"argon/internal/driver"
	"argon/internal/source"
	"argon/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// progressEvents hands every phase event to the model; Check runs in its
// own goroutine so the observer may block on a full channel.
func progressEvents(events chan<- driver.PhaseEvent) driver.PhaseObserver {
	return func(ev driver.PhaseEvent) { events <- ev }
}

func runCheckWithUI(ctx context.Context, out io.Writer, cfg *runConfig, paths []string) (*driver.Result, error) {
	events := make(chan driver.PhaseEvent, 256)
	drv, err := cfg.newDriver(progressEvents(events))
	if err != nil {
		return nil, err
	}
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		res, err := drv.Check(ctx, paths...)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking", absPaths(paths), events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы Check не застрял на полном канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, fmt.Errorf("progress ui: %w", uiErr)
	}
	return outcome.result, outcome.err
}

// lineProgress is the fallback when out is not a terminal: one line per
// finished phase and per finished module.
func lineProgress(out io.Writer) driver.PhaseObserver {
	return func(ev driver.PhaseEvent) {
		switch ev.Status {
		case driver.PhaseEnd:
			fmt.Fprintf(out, "%-8s %s (%s)\n", ev.Name, ev.Path, ev.Elapsed.Round(time.Microsecond))
		case driver.PhaseDone:
			fmt.Fprintf(out, "%-8s %s\n", "ok", ev.Path)
		case driver.PhaseFailed:
			fmt.Fprintf(out, "%-8s %s\n", "failed", ev.Path)
		}
	}
}

func absPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := source.AbsolutePath(p); err == nil {
			out = append(out, abs)
		}
	}
	return out
}
