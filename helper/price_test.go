package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeDiscountMagnitudeBranches(t *testing.T) {
	tests := []struct {
		name         string
		base         float64
		value        float64
		wantDiscount float64
		wantPayable  float64
	}{
		{"fraction", 1000, 0.1, 100, 900},
		{"fraction boundary exactly 1", 1000, 1, 1000, 0},
		{"percent", 1000, 10, 100, 900},
		{"percent boundary exactly 100", 1000, 100, 1000, 0},
		{"flat amount", 1000, 500, 500, 500},
		{"flat amount exceeds base", 1000, 2000, 2000, 0},
		{"zero value", 1000, 0, 0, 1000},
		{"negative value", 1000, -5, 0, 1000},
		{"zero base", 0, 50, 0, 0},
		{"negative base", -100, 50, 0, -100},
		{"rounding half away from zero", 1001, 0.5, 501, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, payable := ComputeDiscount(tt.base, tt.value)
			assert.Equal(t, tt.wantDiscount, discount)
			assert.Equal(t, tt.wantPayable, payable)
		})
	}
}

func TestComputeDiscountIsPure(t *testing.T) {
	d1, p1 := ComputeDiscount(123457, 33)
	d2, p2 := ComputeDiscount(123457, 33)
	assert.Equal(t, d1, d2)
	assert.Equal(t, p1, p2)
}

func TestComputeRankDiscount(t *testing.T) {
	assert.Equal(t, float64(30000), ComputeRankDiscount(300000, 10))
	assert.Equal(t, float64(0), ComputeRankDiscount(300000, 0))
	assert.Equal(t, float64(167), ComputeRankDiscount(3333, 5)) // 166.65 → 167
}

func TestCalculatePrice(t *testing.T) {
	loc := VenueLocation
	weekdayMorning := time.Date(2025, 7, 2, 9, 0, 0, 0, loc)  // thứ tư
	weekendGolden := time.Date(2025, 7, 5, 19, 0, 0, 0, loc) // thứ bảy

	assert.Equal(t, float64(50000), CalculatePrice(weekdayMorning, "2D", weekdayMorning))
	assert.Equal(t, float64(70000), CalculatePrice(weekdayMorning, "IMAX", weekdayMorning))
	assert.Equal(t, float64(70000), CalculatePrice(weekendGolden, "2D", weekendGolden))
}
