package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var careRate = ServiceRate{Name: "Care", BaseRateCents: 3500, MinHours: 2}

func TestCalculateBaseOnly(t *testing.T) {
	b := Calculate(careRate, 2, false, false)

	require.Len(t, b.Items, 1)
	assert.Equal(t, "Care (2h @ $35.00/hr)", b.Items[0].Label)
	assert.Equal(t, int64(7000), b.Items[0].AmountCents)
	assert.Equal(t, int64(7000), b.TotalCents)
}

func TestCalculateAppliesMinimumHoursFloor(t *testing.T) {
	floored := Calculate(careRate, 1, false, false)
	atFloor := Calculate(careRate, 2, false, false)

	// Below the posted minimum the quote is identical to the minimum.
	assert.Equal(t, atFloor, floored)
	assert.Equal(t, "Care (2h @ $35.00/hr)", floored.Items[0].Label)
}

func TestCalculateWeekendSurcharge(t *testing.T) {
	b := Calculate(careRate, 3, true, false)

	require.Len(t, b.Items, 2)
	assert.Equal(t, int64(10500), b.Items[0].AmountCents)
	assert.Equal(t, "Weekend Surcharge (15%)", b.Items[1].Label)
	assert.Equal(t, int64(1575), b.Items[1].AmountCents)
	assert.Equal(t, int64(12075), b.TotalCents)
}

func TestCalculateSameDayRushFee(t *testing.T) {
	b := Calculate(careRate, 2, false, true)

	require.Len(t, b.Items, 2)
	assert.Equal(t, int64(7000), b.Items[0].AmountCents)
	assert.Equal(t, "Same Day Rush Fee", b.Items[1].Label)
	assert.Equal(t, int64(2500), b.Items[1].AmountCents)
	assert.Equal(t, int64(9500), b.TotalCents)
}

func TestCalculateBothModifiers(t *testing.T) {
	b := Calculate(careRate, 3, true, true)

	require.Len(t, b.Items, 3)
	assert.Equal(t, int64(10500), b.Items[0].AmountCents)
	assert.Equal(t, int64(1575), b.Items[1].AmountCents)
	assert.Equal(t, int64(2500), b.Items[2].AmountCents)
	assert.Equal(t, int64(14575), b.TotalCents)
}

func TestSurchargeComputedFromBaseOnly(t *testing.T) {
	// The rush fee must never inflate the 15% surcharge.
	weekendOnly := Calculate(careRate, 3, true, false)
	both := Calculate(careRate, 3, true, true)

	assert.Equal(t, weekendOnly.Items[1].AmountCents, both.Items[1].AmountCents)
}

func TestModifierIndependence(t *testing.T) {
	base := Calculate(careRate, 4, false, false)

	for _, tc := range []struct {
		name    string
		weekend bool
		sameDay bool
		extraN  int
	}{
		{"weekend", true, false, 1},
		{"same_day", false, true, 1},
		{"both", true, true, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := Calculate(careRate, 4, tc.weekend, tc.sameDay)
			assert.Len(t, b.Items, 1+tc.extraN)
			assert.Equal(t, base.Items[0], b.Items[0])
		})
	}
}

func TestTotalEqualsSumOfItems(t *testing.T) {
	rates := []ServiceRate{
		careRate,
		{Name: "Tech Concierge", BaseRateCents: 4500, MinHours: 1},
		{Name: "Companion Care", BaseRateCents: 5000, MinHours: 3},
		{Name: "Oddball", BaseRateCents: 3333, MinHours: 1.5},
	}

	for _, rate := range rates {
		for _, hours := range []float64{0.5, 1, 1.5, 2, 3, 7.25, 40} {
			for _, weekend := range []bool{false, true} {
				for _, sameDay := range []bool{false, true} {
					b := Calculate(rate, hours, weekend, sameDay)

					var sum int64
					for _, item := range b.Items {
						assert.GreaterOrEqual(t, item.AmountCents, int64(0))
						sum += item.AmountCents
					}
					assert.Equal(t, sum, b.TotalCents)
					require.NotEmpty(t, b.Items)
				}
			}
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	first := Calculate(careRate, 3.5, true, true)
	second := Calculate(careRate, 3.5, true, true)

	assert.Equal(t, first, second)
}

func TestFractionalRounding(t *testing.T) {
	// 1.5h * 3333 = 4999.5 -> 5000; surcharge from the rounded base:
	// 5000 * 0.15 = 750.
	rate := ServiceRate{Name: "Oddball", BaseRateCents: 3333, MinHours: 1}
	b := Calculate(rate, 1.5, true, false)

	assert.Equal(t, int64(5000), b.Items[0].AmountCents)
	assert.Equal(t, int64(750), b.Items[1].AmountCents)
	assert.Equal(t, "Oddball (1.5h @ $33.33/hr)", b.Items[0].Label)
}
