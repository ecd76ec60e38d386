// Package telemetry defines the snapshot types that flow from producers to
// overlays. Every snapshot is a complete value for its domain: producers
// build a new one each tick and never mutate it after publishing.
package telemetry

import (
	"errors"
	"fmt"
	"slices"
)

// MaxHistory is the number of input samples retained for the input trace.
const MaxHistory = 200

// TeamCount is the number of entries in the team colour table.
const TeamCount = 10

// ErrTeamIndex is returned when a snapshot references a team colour that
// does not exist.
var ErrTeamIndex = errors.New("telemetry: team index out of range")

// PlayerData is one leaderboard row.
type PlayerData struct {
	Position       int     `json:"position"`
	Number         int     `json:"number"`
	Name           string  `json:"name"`
	CurrentTime    string  `json:"current_time"`
	BestTime       string  `json:"best_time"`
	Gap            string  `json:"gap"`
	TeamColorIndex int     `json:"team_color_index"`
	BatteryPercent float64 `json:"battery_percent"`
	InPit          bool    `json:"in_pit"`
}

// LeaderboardData is the full classification for the session.
type LeaderboardData struct {
	Players     []PlayerData `json:"players"`
	SessionType string       `json:"session_type"`
	SessionTime string       `json:"session_time"`
}

// Clone returns a copy of d that shares no memory with it.
func (d LeaderboardData) Clone() LeaderboardData {
	d.Players = slices.Clone(d.Players)
	return d
}

// RelativePlayerData is one row of the relative-timing tower.
type RelativePlayerData struct {
	Position       int     `json:"position"`
	Number         int     `json:"number"`
	Name           string  `json:"name"`
	TeamCode       string  `json:"team_code"`
	Gap            float64 `json:"gap"`
	TeamColorIndex int     `json:"team_color_index"`
}

// RelativeTimingData lists the cars around the player.
type RelativeTimingData struct {
	Players        []RelativePlayerData `json:"players"`
	PlayerPosition int                  `json:"player_position"`
}

// Clone returns a copy of d that shares no memory with it.
func (d RelativeTimingData) Clone() RelativeTimingData {
	d.Players = slices.Clone(d.Players)
	return d
}

// Wheel indexes the four-element tire arrays.
type Wheel int

// Wheel positions in array order.
const (
	FrontLeft Wheel = iota
	FrontRight
	RearLeft
	RearRight
)

var wheelNames = [4]string{"FL", "FR", "RL", "RR"}

// String returns the two-letter wheel label.
func (w Wheel) String() string {
	if w < FrontLeft || w > RearRight {
		return fmt.Sprintf("Wheel(%d)", int(w))
	}
	return wheelNames[w]
}

// TireData holds per-wheel temperature (°C), pressure (bar) and wear (%).
type TireData struct {
	Temperatures [4]float64 `json:"temperatures"`
	Pressures    [4]float64 `json:"pressures"`
	Wear         [4]float64 `json:"wear"`
}

// VehicleData drives the speedometer.
type VehicleData struct {
	Speed       float64 `json:"speed"`
	Gear        int     `json:"gear"`
	RPM         float64 `json:"rpm"` // normalised 0..1
	EngineTemp  float64 `json:"engine_temp"`
	OilTemp     float64 `json:"oil_temp"`
	FuelPercent float64 `json:"fuel_percent"`
	ERSPercent  float64 `json:"ers_percent"`
	DRSEnabled  bool    `json:"drs_enabled"`
	LapTime     string  `json:"lap_time"`
	LastLap     string  `json:"last_lap"`
}

// InputTelemetryData is one sample of driver inputs.
type InputTelemetryData struct {
	Steering float64 `json:"steering"` // -1 (left) .. 1 (right)
	Throttle float64 `json:"throttle"` // 0..1
	Brake    float64 `json:"brake"`    // 0..1
	Gear     int     `json:"gear"`
	RPM      float64 `json:"rpm"` // normalised 0..1
}

// DefaultInput returns the idle input sample: no pedals, first gear.
func DefaultInput() InputTelemetryData {
	return InputTelemetryData{Gear: 1}
}

// ValidateTeams checks every team colour index in d against the palette
// size n.
func (d LeaderboardData) ValidateTeams(n int) error {
	for _, p := range d.Players {
		if p.TeamColorIndex < 0 || p.TeamColorIndex >= n {
			return fmt.Errorf("%w: player #%d has team %d (palette size %d)",
				ErrTeamIndex, p.Number, p.TeamColorIndex, n)
		}
	}
	return nil
}

// ValidateTeams checks every team colour index in d against the palette
// size n.
func (d RelativeTimingData) ValidateTeams(n int) error {
	for _, p := range d.Players {
		if p.TeamColorIndex < 0 || p.TeamColorIndex >= n {
			return fmt.Errorf("%w: player #%d has team %d (palette size %d)",
				ErrTeamIndex, p.Number, p.TeamColorIndex, n)
		}
	}
	return nil
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
