// Package daylight classifies an hour of the day into a light color band
// and a human-facing time-of-day label.
package daylight

// Band is a contiguous range of hours sharing one sun color.
type Band int

const (
	// BandNight covers every hour not claimed by another band (19:00 to 05:59).
	BandNight Band = iota
	// BandMorning is [6, 10).
	BandMorning
	// BandDay is [10, 16).
	BandDay
	// BandEvening is [16, 19).
	BandEvening
)

var bandNames = [...]string{
	BandNight:   "night",
	BandMorning: "morning",
	BandDay:     "day",
	BandEvening: "evening",
}

// String returns the band name.
func (b Band) String() string {
	if b < 0 || int(b) >= len(bandNames) {
		return "unknown"
	}
	return bandNames[b]
}

// Sun colors per band.
var (
	WarmAmber    = MustParseHex("#ffdca8")
	NeutralWhite = MustParseHex("#ffffff")
	WarmOrange   = MustParseHex("#ffbb66")
	CoolDarkBlue = MustParseHex("#334466")
)

// Color returns the sun color of the band.
func (b Band) Color() Color {
	switch b {
	case BandMorning:
		return WarmAmber
	case BandDay:
		return NeutralWhite
	case BandEvening:
		return WarmOrange
	default:
		return CoolDarkBlue
	}
}

// BandFor returns the band an hour in [0, 23] falls into.
// Bands are half-open and checked in order; the first match wins.
func BandFor(hour int) Band {
	switch {
	case hour >= 6 && hour < 10:
		return BandMorning
	case hour >= 10 && hour < 16:
		return BandDay
	case hour >= 16 && hour < 19:
		return BandEvening
	default:
		return BandNight
	}
}

// LightColor returns the sun color for an hour in [0, 23].
func LightColor(hour int) Color {
	return BandFor(hour).Color()
}
