package app

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Faultbox/sunroom/internal/clock"
	"github.com/Faultbox/sunroom/internal/daylight"
	"github.com/Faultbox/sunroom/internal/solar"
)

var kst = time.FixedZone("KST", 9*60*60)

func at(hour, minute, second int) time.Time {
	return time.Date(2024, time.June, 21, hour, minute, second, 0, kst)
}

func TestDeriveMorningScenario(t *testing.T) {
	Convey("Given the summer solstice at 08:15 in Seoul", t, func() {
		l := Derive(at(8, 15, 0), solar.Seoul)

		Convey("the light is warm amber from the morning band", func() {
			So(l.Band, ShouldEqual, daylight.BandMorning)
			So(l.Color.Hex(), ShouldEqual, "#ffdca8")
		})

		Convey("the label reads morning", func() {
			So(l.Label, ShouldEqual, daylight.LabelMorning)
		})

		Convey("the clock shows 08:20 at slider position 500", func() {
			So(l.Clock.String(), ShouldEqual, "08:20")
			So(l.Clock.Minute, ShouldEqual, 20)
			So(l.Clock.TotalMinutes, ShouldEqual, 500)
		})

		Convey("the sun is up in the east, 10 units out", func() {
			So(l.Angle.AboveHorizon(), ShouldBeTrue)
			So(l.Direction.Y, ShouldBeGreaterThan, 0)
			So(l.Direction.X, ShouldBeLessThan, 0)
			norm := math.Sqrt(l.Direction.X*l.Direction.X + l.Direction.Y*l.Direction.Y + l.Direction.Z*l.Direction.Z)
			So(norm, ShouldAlmostEqual, solar.LightRadius, 1e-9)
		})

		Convey("the renderer gets the same vector in float32", func() {
			p := l.LightPosition()
			So(float64(p.X()), ShouldAlmostEqual, l.Direction.X, 1e-5)
			So(float64(p.Y()), ShouldAlmostEqual, l.Direction.Y, 1e-5)
			So(float64(p.Z()), ShouldAlmostEqual, l.Direction.Z, 1e-5)
		})
	})
}

func TestDeriveNight(t *testing.T) {
	Convey("Given 02:00 in Seoul", t, func() {
		l := Derive(at(2, 0, 0), solar.Seoul)

		Convey("the sun is below the horizon and the light stays where it is", func() {
			So(l.Angle.AboveHorizon(), ShouldBeFalse)
			So(l.Direction.Y, ShouldBeLessThan, 0)
			So(float64(l.LightPosition().Y()), ShouldAlmostEqual, l.Direction.Y, 1e-5)
		})

		Convey("the light is cool dark blue with a dawn label", func() {
			So(l.Band, ShouldEqual, daylight.BandNight)
			So(l.Color.Hex(), ShouldEqual, "#334466")
			So(l.Label, ShouldEqual, daylight.LabelDawn)
		})
	})
}

func TestDeriveClassifiesByRealHour(t *testing.T) {
	Convey("Given 09:55, which displays as 10:00", t, func() {
		l := Derive(at(9, 55, 0), solar.Seoul)

		So(l.Clock.String(), ShouldEqual, "10:00")
		So(l.Band, ShouldEqual, daylight.BandMorning)
		So(l.Color.Hex(), ShouldEqual, "#ffdca8")
	})
}

func TestState(t *testing.T) {
	Convey("Given a state at 08:15:42", t, func() {
		s := NewState(at(8, 15, 42))

		Convey("Now returns it unchanged", func() {
			So(s.Now().Equal(at(8, 15, 42)), ShouldBeTrue)
		})

		Convey("moving the slider to 500 writes back 08:20:00 on the same date", func() {
			s.SetTotalMinutes(500)
			So(s.Now().Equal(at(8, 20, 0)), ShouldBeTrue)
			So(s.Now().Location(), ShouldEqual, kst)
		})

		Convey("the slider extremes map to 00:00 and 23:59", func() {
			s.SetTotalMinutes(clock.SliderMin)
			So(s.Now().Equal(at(0, 0, 0)), ShouldBeTrue)
			s.SetTotalMinutes(clock.SliderMax)
			So(s.Now().Equal(at(23, 59, 0)), ShouldBeTrue)
		})

		Convey("Set replaces the timestamp wholesale", func() {
			next := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
			s.Set(next)
			So(s.Now().Equal(next), ShouldBeTrue)
		})
	})
}

func TestStep(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		delta int
		want  time.Time
	}{
		{"forward from the displayed time", at(8, 15, 0), 1, at(8, 30, 0)},
		{"backward", at(8, 15, 0), -1, at(8, 10, 0)},
		{"several steps", at(8, 0, 0), 6, at(9, 0, 0)},
		{"wraps past midnight on the same date", at(23, 50, 0), 1, at(0, 0, 0)},
		{"wraps before midnight on the same date", at(0, 0, 0), -1, at(23, 50, 0)},
		{"zero is a no-op", at(8, 15, 42), 0, at(8, 15, 42)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.start)
			s.Step(tt.delta)
			if !s.Now().Equal(tt.want) {
				t.Errorf("Step(%d) from %s = %s, want %s",
					tt.delta, tt.start.Format("15:04:05"), s.Now().Format("15:04:05"), tt.want.Format("15:04:05"))
			}
		})
	}
}
