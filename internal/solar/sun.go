// Package solar places the scene's sun light from the real solar position.
package solar

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
	"gonum.org/v1/gonum/spatial/r3"
)

// LightRadius is the distance of the directional light from the scene origin.
const LightRadius = 10.0

// Coordinate is a geographic location in degrees (north and east positive).
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Seoul is the location the room is lit for.
var Seoul = Coordinate{Latitude: 37.5665, Longitude: 126.978}

// Angle is the sun's horizontal position in radians.
// Azimuth follows suncalc: 0 is south, positive values turn west.
type Angle struct {
	Altitude float64
	Azimuth  float64
}

// AboveHorizon reports whether the sun is up.
func (a Angle) AboveHorizon() bool {
	return a.Altitude > 0
}

// Position returns the solar altitude and azimuth at t for the given location.
func Position(t time.Time, c Coordinate) Angle {
	p := suncalc.GetPosition(t, c.Latitude, c.Longitude)
	return Angle{Altitude: p.Altitude, Azimuth: p.Azimuth}
}

// Direction converts a solar angle to a light position on a sphere of LightRadius.
// Y is up. An altitude of ±π/2 collapses X and Z to zero.
func Direction(a Angle) r3.Vec {
	cosAlt := math.Cos(a.Altitude)
	unit := r3.Vec{
		X: cosAlt * math.Sin(a.Azimuth),
		Y: math.Sin(a.Altitude),
		Z: cosAlt * math.Cos(a.Azimuth),
	}
	return r3.Scale(LightRadius, unit)
}

// LightDirection returns the light position for the sun at t seen from lat/lon.
func LightDirection(t time.Time, latitude, longitude float64) r3.Vec {
	return Direction(Position(t, Coordinate{Latitude: latitude, Longitude: longitude}))
}

// Float32 converts a light vector to the layout the renderer uploads.
func Float32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
