package predict

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	cases := []struct {
		rank         int
		lower, upper int
	}{
		{1, 1, 3},
		{2, 1, 7},
		{500, 1, 1750},
		{501, 1, 1753},
		{502, 2, 1757},
		{1200, 700, 4200},
		{99999, 99499, 349996},
		{1<<52 + 1, 1<<52 + 1 - 500, 15762598695796739},
		{math.MaxInt / 3, math.MaxInt/3 - 500, math.MaxInt},
		{math.MaxInt, math.MaxInt - 500, math.MaxInt},
	}
	for _, tc := range cases {
		w := NewWindow(tc.rank)
		assert.Equal(t, tc.lower, w.Lower, "lower for rank %d", tc.rank)
		assert.Equal(t, tc.upper, w.Upper, "upper for rank %d", tc.rank)
	}
}

func TestWindowHugeRanksContainRank(t *testing.T) {
	for _, rank := range []int{math.MaxInt / 7 * 2, math.MaxInt/7*2 + 1, math.MaxInt / 3, math.MaxInt - 1, math.MaxInt} {
		w := NewWindow(rank)
		assert.LessOrEqual(t, w.Lower, w.Upper, "rank %d", rank)
		assert.True(t, w.Contains(rank), "rank %d", rank)
	}
}

func TestWindowBoundsOrdered(t *testing.T) {
	for rank := 1; rank <= 20000; rank += 37 {
		w := NewWindow(rank)
		require.LessOrEqual(t, w.Lower, w.Upper, "rank %d", rank)
		require.True(t, w.Contains(rank), "window of %d should contain the rank itself", rank)
		require.True(t, w.Contains(w.Lower))
		require.True(t, w.Contains(w.Upper))
		require.False(t, w.Contains(w.Upper+1))
	}
}

func TestClassify(t *testing.T) {
	for user := -3; user <= 3; user++ {
		for closing := -3; closing <= 3; closing++ {
			got := Classify(user, closing)
			switch {
			case user < closing:
				assert.Equal(t, ChanceHigh, got)
			case user > closing:
				assert.Equal(t, ChanceLow, got)
			default:
				assert.Equal(t, ChanceModerate, got)
			}
		}
	}
}

func TestParseClosingRank(t *testing.T) {
	n, err := ParseClosingRank(" 12,345 ")
	require.NoError(t, err)
	assert.Equal(t, 12345, n)

	for _, bad := range []string{"N/A", "", "--", "12.5"} {
		_, err := ParseClosingRank(bad)
		assert.Error(t, err, bad)
	}
}
