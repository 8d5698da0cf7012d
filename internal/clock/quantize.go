// Package clock snaps wall-clock times to the 10-minute grid of the time slider.
package clock

import (
	"fmt"
	"math"
	"time"
)

// Slider bounds in minutes of the day.
const (
	SliderMin  = 0
	SliderMax  = 1439
	SliderStep = 10
)

// lastStep is the greatest slider value on the step grid.
const lastStep = SliderMax / SliderStep * SliderStep

// Quantized is a time of day rounded to the slider grid.
type Quantized struct {
	Hour         int
	Minute       int
	TotalMinutes int
}

// String formats the time as HH:MM.
func (q Quantized) String() string {
	return fmt.Sprintf("%02d:%02d", q.Hour, q.Minute)
}

// Quantize rounds t's minute to the nearest multiple of 10, half up.
//
// A minute that rounds to 60 carries into the next hour (08:55 becomes 09:00).
// 23:55 and later would carry to 24:00, past the slider's end, so they clamp
// to the last step, 23:50.
func Quantize(t time.Time) Quantized {
	hour := t.Hour()
	minute := int(math.Round(float64(t.Minute())/SliderStep)) * SliderStep

	total := hour*60 + minute
	if total > lastStep {
		total = lastStep
	}
	h, m := FromTotalMinutes(total)
	return Quantized{Hour: h, Minute: m, TotalMinutes: total}
}

// FromTotalMinutes splits minutes of the day into hour and minute.
func FromTotalMinutes(total int) (hour, minute int) {
	return total / 60, total % 60
}

// Snap clamps a slider value to [SliderMin, SliderMax] and rounds it to the step grid.
func Snap(total int) int {
	if total < SliderMin {
		return SliderMin
	}
	snapped := int(math.Round(float64(total)/SliderStep)) * SliderStep
	if snapped > lastStep {
		snapped = lastStep
	}
	return snapped
}

// Apply returns t with its hour and minute replaced by total minutes of the day.
// The date and location are kept; seconds are cleared.
func Apply(t time.Time, total int) time.Time {
	hour, minute := FromTotalMinutes(total)
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

// Parse reads an "HH:MM" time of day into minutes of the day.
func Parse(s string) (int, error) {
	tm, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parsing time of day %q: %w", s, err)
	}
	return tm.Hour()*60 + tm.Minute(), nil
}
