package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pacemaker/pkg/collectors"
)

// FrameCmd returns a bubbletea Cmd that sends a FrameEvent after the given
// duration. This drives the frame loop.
func FrameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameEvent{Time: t}
	})
}

// CollectCmd returns a Cmd that waits delay, runs c once off the update
// goroutine, and delivers the result as a DataUpdateEvent. A run may take
// at most one collector interval.
func CollectCmd(c collectors.Collector, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), c.Interval())
		defer cancel()
		return DataUpdateEvent{Update: collectors.Run(ctx, c)}
	})
}
