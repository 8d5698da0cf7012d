package app

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/sunroom/internal/clock"
	"github.com/Faultbox/sunroom/internal/daylight"
	"github.com/Faultbox/sunroom/internal/solar"
)

// Lighting is everything derived from one timestamp.
type Lighting struct {
	Time      time.Time
	Angle     solar.Angle
	Direction r3.Vec // Light position, LightRadius from the origin
	Band      daylight.Band
	Color     daylight.Color
	Label     daylight.Label
	Clock     clock.Quantized
}

// Derive computes the lighting for t at c. Band and label use t's own hour;
// the clock readout uses the quantized time.
func Derive(t time.Time, c solar.Coordinate) Lighting {
	angle := solar.Position(t, c)
	hour := t.Hour()
	return Lighting{
		Time:      t,
		Angle:     angle,
		Direction: solar.Direction(angle),
		Band:      daylight.BandFor(hour),
		Color:     daylight.LightColor(hour),
		Label:     daylight.LabelFor(hour),
		Clock:     clock.Quantize(t),
	}
}

// LightPosition returns Direction in renderer precision.
func (l Lighting) LightPosition() mgl32.Vec3 {
	return mgl32.Vec3(solar.Float32(l.Direction))
}
