package climate

import (
	"math"
	"strconv"

	"github.com/victorjacobs/go-natureremo/remo"
)

// TempRange parses a mode's allowed target temperatures, dropping the empty
// placeholder entries the vendor uses for "not applicable".
func TempRange(mode remo.AirconModeRange) []float64 {
	var temps []float64
	for _, entry := range mode.Temp {
		if entry == "" {
			continue
		}
		if temp, err := strconv.ParseFloat(entry, 64); err == nil {
			temps = append(temps, temp)
		}
	}
	return temps
}

// MinTemp returns the lowest allowed temperature, or 0 when the mode has no
// usable temperature range.
func MinTemp(mode remo.AirconModeRange) float64 {
	temps := TempRange(mode)
	if len(temps) == 0 {
		return 0
	}
	min := temps[0]
	for _, temp := range temps[1:] {
		if temp < min {
			min = temp
		}
	}
	return min
}

// MaxTemp returns the highest allowed temperature, or 0 when the mode has no
// usable temperature range.
func MaxTemp(mode remo.AirconModeRange) float64 {
	temps := TempRange(mode)
	if len(temps) == 0 {
		return 0
	}
	max := temps[0]
	for _, temp := range temps[1:] {
		if temp > max {
			max = temp
		}
	}
	return max
}

// TempStep derives the temperature step from the gap between the first two
// allowed temperatures. Some ACs report inconsistent ranges, so only 1.0 and
// 0.5 are trusted; anything else falls back to 1.
func TempStep(mode remo.AirconModeRange) float64 {
	temps := TempRange(mode)
	if len(temps) >= 2 {
		step := math.Round((temps[1]-temps[0])*10) / 10
		if step == 1.0 || step == 0.5 {
			return step
		}
	}
	return 1
}
