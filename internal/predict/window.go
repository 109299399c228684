package predict

import (
	"math"
	"strconv"
	"strings"
)

const (
	WindowBelow       = 500
	WindowAboveFactor = 3.5

	// WindowAboveFactor as a fraction, so the bound is computed in integers.
	windowAboveNum = 7
	windowAboveDen = 2
)

// Window is the inclusive closing-rank range shown for a user rank.
type Window struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// NewWindow keeps a fixed buffer below the rank and a multiplicative margin
// above it. Lower numbers are better ranks.
func NewWindow(rank int) Window {
	lower := rank - WindowBelow
	if lower < 1 {
		lower = 1
	}
	return Window{Lower: lower, Upper: upperBound(rank)}
}

// upperBound saturates at math.MaxInt instead of overflowing.
func upperBound(rank int) int {
	q, r := rank/windowAboveDen, rank%windowAboveDen
	extra := r * windowAboveNum / windowAboveDen
	if q > (math.MaxInt-extra)/windowAboveNum {
		return math.MaxInt
	}
	return q*windowAboveNum + extra
}

func (w Window) Contains(rank int) bool {
	return rank >= w.Lower && rank <= w.Upper
}

// Classify compares a user rank with a historical closing rank.
func Classify(userRank, closingRank int) Chance {
	switch {
	case userRank < closingRank:
		return ChanceHigh
	case userRank > closingRank:
		return ChanceLow
	default:
		return ChanceModerate
	}
}

// ParseClosingRank strips thousands separators and surrounding space.
func ParseClosingRank(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
