package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"athena/internal/driver"
	"athena/internal/ui"
)

type batchOutcome struct {
	batch *driver.Batch
	err   error
}

// runBatchWithUI runs EvalFiles while a bubbletea progress view consumes its
// events on out.
func runBatchWithUI(ctx context.Context, out io.Writer, title string, files []string, opts driver.BatchOptions) (*driver.Batch, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		b, err := driver.EvalFiles(ctx, files, opts)
		outcomeCh <- batchOutcome{batch: b, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// после выхода (в том числе по ctrl+c) модель больше не читает канал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.batch, uiErr
	}
	return outcome.batch, outcome.err
}
