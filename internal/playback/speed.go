package playback

import (
	"strconv"

	"github.com/samber/lo"
)

// Speed is a playback rate multiplier from AllSpeeds.
type Speed float64

// AllSpeeds is the cyclic order Next walks through.
var AllSpeeds = []Speed{0.5, 1.0, 1.5, 2.0, 2.5}

// DefaultSpeed is the rate a session starts with.
const DefaultSpeed Speed = 1.0

// Next returns the following speed, wrapping to the first after the last.
// A speed outside AllSpeeds is returned unchanged.
func (s Speed) Next() Speed {
	i := lo.IndexOf(AllSpeeds, s)
	if i < 0 {
		return s
	}
	return AllSpeeds[(i+1)%len(AllSpeeds)]
}

// Rate returns the multiplier passed to the backend.
func (s Speed) Rate() float64 { return float64(s) }

// String formats the speed without trailing zeros: "1", "1.5".
func (s Speed) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}
