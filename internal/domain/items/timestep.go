package items

import "time"

// Timestep is the bucket width of a timeseries served by the price feed
type Timestep string

const (
	Timestep5m  Timestep = "5m"
	Timestep1h  Timestep = "1h"
	Timestep6h  Timestep = "6h"
	Timestep24h Timestep = "24h"
)

var timestepDurations = map[Timestep]time.Duration{
	Timestep5m:  5 * time.Minute,
	Timestep1h:  time.Hour,
	Timestep6h:  6 * time.Hour,
	Timestep24h: 24 * time.Hour,
}

// ValidTimesteps lists the timesteps accepted by the timeseries endpoint
func ValidTimesteps() []Timestep {
	return []Timestep{Timestep5m, Timestep1h, Timestep6h, Timestep24h}
}

// ParseTimestep validates a timestep string
func ParseTimestep(s string) (Timestep, error) {
	ts := Timestep(s)
	if _, ok := timestepDurations[ts]; !ok {
		return "", &ErrInvalidTimestep{Timestep: s}
	}
	return ts, nil
}

// Duration returns the bucket width, or zero for an unknown timestep
func (t Timestep) Duration() time.Duration {
	return timestepDurations[t]
}

func (t Timestep) String() string {
	return string(t)
}
