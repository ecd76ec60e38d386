package feed

import (
	"math"
	"time"

	"gitlab.com/tinyland/lab/pacemaker/pkg/telemetry"
)

// Generator is a synthetic Source: a fixed practice session whose battery
// levels, tire temperatures, vehicle and driver inputs follow smooth
// waveforms of session time.
type Generator struct {
	leaderboard telemetry.LeaderboardData
	relative    telemetry.RelativeTimingData
	tire        telemetry.TireData
	vehicle     telemetry.VehicleData
	input       telemetry.InputTelemetryData
}

var _ Source = (*Generator)(nil)

// NewGenerator returns a Generator at session time zero.
func NewGenerator() *Generator {
	return &Generator{
		leaderboard: telemetry.LeaderboardData{
			SessionType: "Practice",
			SessionTime: "1:09:45",
			Players: []telemetry.PlayerData{
				{Position: 1, Number: 38, Name: "O Rasmussen", CurrentTime: "2:06.358", TeamColorIndex: 0, BatteryPercent: 15},
				{Position: 2, Number: 51, Name: "A P Guidi", CurrentTime: "-", TeamColorIndex: 1, BatteryPercent: 96},
				{Position: 3, Number: 35, Name: "P Chatin", CurrentTime: "-", TeamColorIndex: 3, BatteryPercent: 18},
				{Position: 4, Number: 83, Name: "R Kubica", CurrentTime: "-", TeamColorIndex: 1, BatteryPercent: 19},
				{Position: 5, Number: 11, Name: "J Munro", CurrentTime: "-", TeamColorIndex: 9, BatteryPercent: 99},
				{Position: 6, Number: 36, Name: "N Lapierre", CurrentTime: "-", TeamColorIndex: 3, BatteryPercent: 99},
				{Position: 7, Number: 8, Name: "S Buemi", CurrentTime: "-", TeamColorIndex: 2, BatteryPercent: 25},
				{Position: 8, Number: 5, Name: "M Campbell", CurrentTime: "PIT", TeamColorIndex: 0, BatteryPercent: 0, InPit: true},
			},
		},
		relative: telemetry.RelativeTimingData{
			PlayerPosition: 12,
			Players: []telemetry.RelativePlayerData{
				{Position: 7, Number: 7, Name: "S Vandoorne", TeamCode: "HY", Gap: -18.8, TeamColorIndex: 0},
				{Position: 13, Number: 13, Name: "F Heriau", TeamCode: "BR3", Gap: -7.0, TeamColorIndex: 2},
				{Position: 1, Number: 1, Name: "O Rasmussen", TeamCode: "HY", Gap: -1.7, TeamColorIndex: 0},
				{Position: 12, Number: 12, Name: "J Munro", TeamCode: "HY", Gap: 0, TeamColorIndex: 9},
				{Position: 7, Number: 7, Name: "C Schiavoni", TeamCode: "BR3", Gap: 4.6, TeamColorIndex: 2},
				{Position: 14, Number: 14, Name: "J Caygill", TeamCode: "BR3", Gap: 14.2, TeamColorIndex: 2},
				{Position: 8, Number: 8, Name: "A A Harthy", TeamCode: "BR3", Gap: 14.8, TeamColorIndex: 2},
			},
		},
		tire: telemetry.TireData{
			Temperatures: [4]float64{85, 87, 83, 84},
			Pressures:    [4]float64{2.2, 2.2, 2.1, 2.1},
			Wear:         [4]float64{20, 25, 15, 18},
		},
		vehicle: telemetry.VehicleData{
			Speed:       94,
			Gear:        3,
			RPM:         0.6,
			EngineTemp:  62.1,
			OilTemp:     59.4,
			FuelPercent: 75,
			ERSPercent:  98.6,
			LapTime:     "88.71 (26.4 laps)",
			LastLap:     "98.6% (25.0 laps)",
		},
		input: telemetry.DefaultInput(),
	}
}

// Name implements Source.
func (g *Generator) Name() string { return "synthetic" }

// Advance recomputes every waveform for session time t.
func (g *Generator) Advance(t time.Duration) {
	s := t.Seconds()

	for i := range g.leaderboard.Players {
		p := &g.leaderboard.Players[i]
		if p.InPit {
			continue
		}
		battery := 50 + math.Trunc(30*math.Sin(s*0.5+float64(p.Number)))
		p.BatteryPercent = min(max(battery, 0), 100)
	}

	for i := range g.tire.Temperatures {
		g.tire.Temperatures[i] = 75 + 15*math.Sin(s*0.8+float64(i))
	}

	g.vehicle.Speed = 80 + math.Trunc(20*math.Sin(s*2))
	g.vehicle.RPM = 0.5 + 0.4*math.Sin(s*3)
	g.vehicle.Gear = min(max(2+int(2*(math.Sin(s*1.5)+1)), 1), 6)

	g.input.Steering = math.Sin(s*1.5) * 0.8
	g.input.Throttle = telemetry.Clamp01((math.Sin(s*2) + 1) * 0.5)
	g.input.Brake = telemetry.Clamp01((math.Sin(s*3+1) + 1) * 0.3)
	g.input.RPM = telemetry.Clamp01((math.Sin(s*3+1) + 1) * 0.5)
	g.input.Gear = gGearCycle(s)
}

// gGearCycle steps through gears 1..6 and back down, one step every two
// seconds.
func gGearCycle(s float64) int {
	step := int(s*0.5) % 12
	if step < 6 {
		return step + 1
	}
	return 12 - step
}

// Leaderboard implements Source. The returned value shares no memory with
// the generator.
func (g *Generator) Leaderboard() telemetry.LeaderboardData { return g.leaderboard.Clone() }

// Relative implements Source.
func (g *Generator) Relative() telemetry.RelativeTimingData { return g.relative.Clone() }

// Tire implements Source.
func (g *Generator) Tire() telemetry.TireData { return g.tire }

// Vehicle implements Source.
func (g *Generator) Vehicle() telemetry.VehicleData { return g.vehicle }

// Input implements Source.
func (g *Generator) Input() telemetry.InputTelemetryData { return g.input }
