package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// maxEnvelopeBytes bounds a single websocket message.
const maxEnvelopeBytes = 1 << 20

// Client reads Envelopes from a websocket telemetry feed, reconnecting
// after failures until its context ends.
type Client struct {
	url       string
	reconnect time.Duration
	logger    *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithReconnect sets the delay between connection attempts.
func WithReconnect(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.reconnect = d
		}
	}
}

// WithClientLogger sets the logger for connection events.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a Client for the ws:// or wss:// url.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{url: url, reconnect: 2 * time.Second, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run connects and hands every received Envelope to deliver. deliver is
// called from Run's goroutine; callers running a UI loop forward the
// envelope as a message rather than publishing directly. Run returns the
// context's error once ctx is done.
func (c *Client) Run(ctx context.Context, deliver func(Envelope)) error {
	for {
		err := c.session(ctx, deliver)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("telemetry feed disconnected", "url", c.url, "error", err, "retry", c.reconnect)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnect):
		}
	}
}

func (c *Client) session(ctx context.Context, deliver func(Envelope)) error {
	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("feed: dial %s: %w", c.url, err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxEnvelopeBytes)
	c.logger.Info("telemetry feed connected", "url", c.url)

	for {
		var env Envelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return errors.New("feed: server closed connection")
			}
			return fmt.Errorf("feed: read: %w", err)
		}
		deliver(env)
	}
}
