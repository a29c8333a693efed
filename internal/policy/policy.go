package policy

import (
	"pifand/internal/util"
)

const (
	// FanOff is the duty cycle of a stopped fan
	FanOff = 0.0
	// FanMax is the duty cycle of a fan running at full speed
	FanMax = 100.0
)

// Settings holds the validated temperature thresholds and duty cycle bounds
// used to derive a fan speed from a temperature reading.
type Settings struct {
	// MinTemp is the temperature (°C) at which the fan engages
	MinTemp float64
	// MinCoolTemp is the temperature (°C) below which an engaged fan
	// disengages again. Must be below MinTemp, the gap between the two
	// is what prevents on/off chattering around a single threshold.
	MinCoolTemp float64
	// MaxTemp is the temperature (°C) at which the fan saturates at FanMax
	MaxTemp float64

	// FanLow and FanHigh bound the duty cycle (percent) of the ramp region
	FanLow  float64
	FanHigh float64
}

// Evaluate maps a single temperature reading to a fan duty cycle.
//
// The activated flag is the hysteresis latch: while false, readings below
// MinTemp keep the fan off, once engaged the fan keeps running until the
// temperature drops below MinCoolTemp. The returned flag is the new latch
// state and must be fed back in on the next call.
//
// Evaluate is a pure function, the latch is the only state it carries
// across readings.
func Evaluate(temperature float64, activated bool, settings Settings) (duty float64, active bool) {
	if !activated && temperature < settings.MinTemp {
		return FanOff, false
	}

	// Note that the latch engages before the cooldown check below. A reading
	// below MinCoolTemp on the very first engaged tick therefore turns the
	// fan off again immediately. Do not reorder these branches into a plain
	// threshold comparison.
	switch {
	case temperature < settings.MinCoolTemp:
		return FanOff, false
	case temperature < settings.MinTemp:
		return settings.FanLow, true
	case temperature > settings.MaxTemp:
		return FanMax, true
	default:
		ratio := util.Ratio(temperature, settings.MinTemp, settings.MaxTemp)
		duty = settings.FanLow + (settings.FanHigh-settings.FanLow)*ratio
		return util.Coerce(duty, settings.FanLow, settings.FanHigh), true
	}
}

// Sweep simulates the policy over an ascending temperature sweep starting
// from a disengaged fan and returns the resulting duty cycles. Used to
// preview the configured fan curve on the console.
func Sweep(settings Settings, from float64, to float64, step float64) []float64 {
	var result []float64
	activated := false
	var duty float64
	for temperature := from; temperature <= to; temperature += step {
		duty, activated = Evaluate(temperature, activated, settings)
		result = append(result, duty)
	}
	return result
}
