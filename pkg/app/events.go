// Package app hosts the overlay in a bubbletea program. All telemetry
// publishes, widget updates and rendering happen inside Update and View on
// the program's goroutine; work done elsewhere (websocket reads, host
// sampling, file watching) arrives as one of the messages below.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/pacemaker/pkg/collectors"
	"gitlab.com/tinyland/lab/pacemaker/pkg/feed"
	"gitlab.com/tinyland/lab/pacemaker/pkg/theme"
)

// FrameEvent is sent by the frame ticker. Each one advances the synthetic
// feed and every widget by the time since the previous frame.
type FrameEvent struct {
	Time time.Time
}

// FeedEvent carries one envelope read from the live feed.
type FeedEvent struct {
	Envelope feed.Envelope
}

// FeedErrorEvent reports a feed connection failure. The client keeps
// reconnecting; the model only logs it.
type FeedErrorEvent struct {
	Err error
}

// DataUpdateEvent carries the result of one collector run back into the
// update loop.
type DataUpdateEvent struct {
	Update collectors.Update
}

// ThemeReloadEvent replaces the active theme after the theme file changed.
// Err is set when the new file could not be loaded; the old theme stays.
type ThemeReloadEvent struct {
	Theme theme.Theme
	Err   error
}
