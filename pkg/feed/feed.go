// Package feed is the producer side of the overlay: the Bus of typed
// brokers, the synthetic Generator that stands in for a game telemetry API,
// the Pump that publishes a Source into the Bus once per frame, and a
// websocket Client for live feeds.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/pacemaker/pkg/broker"
	"gitlab.com/tinyland/lab/pacemaker/pkg/telemetry"
)

// ErrUnknownKind is returned for envelopes whose kind is not a telemetry
// domain.
var ErrUnknownKind = errors.New("feed: unknown envelope kind")

// Kind names a telemetry domain on the wire.
type Kind string

// Telemetry domains.
const (
	KindLeaderboard Kind = "leaderboard"
	KindRelative    Kind = "relative"
	KindTire        Kind = "tire"
	KindVehicle     Kind = "vehicle"
	KindInput       Kind = "input"
)

// Envelope is one snapshot as received from a live feed.
type Envelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Bus holds one broker per telemetry domain.
type Bus struct {
	Leaderboard *broker.Broker[telemetry.LeaderboardData]
	Relative    *broker.Broker[telemetry.RelativeTimingData]
	Tire        *broker.Broker[telemetry.TireData]
	Vehicle     *broker.Broker[telemetry.VehicleData]
	Input       *broker.Broker[telemetry.InputTelemetryData]

	teams int
}

// NewBus returns a Bus whose envelope validation accepts team indices in
// [0, teams).
func NewBus(teams int) *Bus {
	return &Bus{
		Leaderboard: broker.New[telemetry.LeaderboardData](),
		Relative:    broker.New[telemetry.RelativeTimingData](),
		Tire:        broker.New[telemetry.TireData](),
		Vehicle:     broker.New[telemetry.VehicleData](),
		Input:       broker.New[telemetry.InputTelemetryData](),
		teams:       teams,
	}
}

// Apply decodes env and publishes it on the matching broker. Snapshots
// that reference unknown team colours are rejected.
func (b *Bus) Apply(env Envelope) error {
	switch env.Kind {
	case KindLeaderboard:
		var d telemetry.LeaderboardData
		if err := bDecode(env, &d); err != nil {
			return err
		}
		if err := d.ValidateTeams(b.teams); err != nil {
			return err
		}
		b.Leaderboard.Publish(d)
	case KindRelative:
		var d telemetry.RelativeTimingData
		if err := bDecode(env, &d); err != nil {
			return err
		}
		if err := d.ValidateTeams(b.teams); err != nil {
			return err
		}
		b.Relative.Publish(d)
	case KindTire:
		var d telemetry.TireData
		if err := bDecode(env, &d); err != nil {
			return err
		}
		b.Tire.Publish(d)
	case KindVehicle:
		var d telemetry.VehicleData
		if err := bDecode(env, &d); err != nil {
			return err
		}
		b.Vehicle.Publish(d)
	case KindInput:
		d := telemetry.DefaultInput()
		if err := bDecode(env, &d); err != nil {
			return err
		}
		b.Input.Publish(d)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, env.Kind)
	}
	return nil
}

func bDecode(env Envelope, v any) error {
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("feed: decode %s: %w", env.Kind, err)
	}
	return nil
}

// Source produces one snapshot per domain for a point in session time.
type Source interface {
	Name() string
	// Advance moves the source to elapsed session time t.
	Advance(t time.Duration)
	Leaderboard() telemetry.LeaderboardData
	Relative() telemetry.RelativeTimingData
	Tire() telemetry.TireData
	Vehicle() telemetry.VehicleData
	Input() telemetry.InputTelemetryData
}

// Pump publishes a Source into a Bus once per frame. Input telemetry is
// rate limited by a Throttle independent of the frame rate.
type Pump struct {
	src     Source
	bus     *Bus
	input   *Throttle
	elapsed time.Duration
}

// NewPump returns a Pump publishing input samples at most inputHz times a
// second.
func NewPump(src Source, bus *Bus, inputHz float64) *Pump {
	return &Pump{src: src, bus: bus, input: NewThrottle(inputHz)}
}

// Tick advances the source by dt and publishes every domain. The input
// domain is published only when its throttle is ready.
func (p *Pump) Tick(dt time.Duration) {
	p.elapsed += dt
	p.src.Advance(p.elapsed)

	p.bus.Leaderboard.Publish(p.src.Leaderboard())
	p.bus.Relative.Publish(p.src.Relative())
	p.bus.Tire.Publish(p.src.Tire())
	p.bus.Vehicle.Publish(p.src.Vehicle())
	if p.input.Ready(dt) {
		p.bus.Input.Publish(p.src.Input())
	}
}

// Elapsed returns the session time the pump has advanced to.
func (p *Pump) Elapsed() time.Duration { return p.elapsed }
