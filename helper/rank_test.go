package helper

import (
	"testing"

	"cinema_booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRanks() []model.MembershipRank {
	maxMember := 999
	maxSilver := 4999
	return []model.MembershipRank{
		{DTO: model.DTO{ID: 1}, Name: "MEMBER", MinPoints: 0, MaxPoints: &maxMember, PointMultiplier: 1},
		{DTO: model.DTO{ID: 2}, Name: "SILVER", MinPoints: 1000, MaxPoints: &maxSilver,
			TicketDiscountPercent: 5, SnackDiscountPercent: 0, PointMultiplier: 1.2, OnlyNormalSeat: true},
		{DTO: model.DTO{ID: 3}, Name: "GOLD", MinPoints: 5000,
			TicketDiscountPercent: 10, SnackDiscountPercent: 5, PointMultiplier: 1.5},
	}
}

func TestCurrentRank(t *testing.T) {
	ranks := testRanks()

	assert.Equal(t, "MEMBER", CurrentRank(ranks, 0).Name)
	assert.Equal(t, "MEMBER", CurrentRank(ranks, 999).Name)
	assert.Equal(t, "SILVER", CurrentRank(ranks, 1000).Name)
	assert.Equal(t, "GOLD", CurrentRank(ranks, 5000).Name)
	assert.Equal(t, "GOLD", CurrentRank(ranks, 1_000_000).Name)
}

func TestCurrentRankOverlapPicksHighestMin(t *testing.T) {
	// Dữ liệu chồng lấn: cả hai khoảng chứa 1500 → chọn MinPoints cao hơn
	ranks := []model.MembershipRank{
		{Name: "A", MinPoints: 0},
		{Name: "B", MinPoints: 1000},
	}
	assert.Equal(t, "B", CurrentRank(ranks, 1500).Name)
}

func TestCurrentRankFloorFallback(t *testing.T) {
	// Điểm nằm dưới mọi khoảng → hạng sàn, không bao giờ "không có hạng"
	ranks := []model.MembershipRank{
		{Name: "BRONZE", MinPoints: 100},
		{Name: "SILVER", MinPoints: 1000},
	}
	assert.Equal(t, "BRONZE", CurrentRank(ranks, 50).Name)
	assert.Nil(t, CurrentRank(nil, 50))
}

func TestNextRank(t *testing.T) {
	ranks := testRanks()

	next, needed := NextRank(ranks, 200)
	require.NotNil(t, next)
	assert.Equal(t, "SILVER", next.Name)
	assert.Equal(t, 800, needed)

	next, needed = NextRank(ranks, 4999)
	require.NotNil(t, next)
	assert.Equal(t, "GOLD", next.Name)
	assert.Equal(t, 1, needed)

	next, needed = NextRank(ranks, 5000)
	assert.Nil(t, next)
	assert.Zero(t, needed)
}

func TestCalculateOrderDiscount(t *testing.T) {
	ranks := testRanks()
	gold := CurrentRank(ranks, 6000)

	d := CalculateOrderDiscount(gold, 300000, 100000, false)
	assert.Equal(t, float64(30000), d.TicketDiscount)
	assert.Equal(t, float64(5000), d.SnackDiscount)
	assert.Equal(t, float64(35000), d.TotalDiscount)
	assert.Equal(t, float64(365000), d.FinalTotal)
}

func TestCalculateOrderDiscountOnlyNormalSeat(t *testing.T) {
	ranks := testRanks()
	silver := CurrentRank(ranks, 2000)

	// Đơn có ghế VIP/COUPLE → bỏ hẳn giảm giá vé, không giảm một phần
	d := CalculateOrderDiscount(silver, 200000, 50000, true)
	assert.Zero(t, d.TicketDiscount)
	assert.Equal(t, float64(250000), d.FinalTotal)

	d = CalculateOrderDiscount(silver, 200000, 50000, false)
	assert.Equal(t, float64(10000), d.TicketDiscount)
}

func TestCalculateOrderDiscountNoRank(t *testing.T) {
	d := CalculateOrderDiscount(nil, 200000, 50000, false)
	assert.Zero(t, d.TotalDiscount)
	assert.Equal(t, float64(250000), d.FinalTotal)
}

func TestCalculatePoints(t *testing.T) {
	ranks := testRanks()
	member := CurrentRank(ranks, 0)
	gold := CurrentRank(ranks, 6000)

	assert.Equal(t, 270, CalculatePoints(member, 270000)) // hệ số 1 → giữ nguyên floor
	assert.Equal(t, 405, CalculatePoints(gold, 270000))   // 270 × 1.5
	assert.Equal(t, 270, CalculatePoints(nil, 270999))    // không có hạng → floor
	assert.Zero(t, CalculatePoints(gold, 0))
	assert.Equal(t, 2, CalculatePoints(gold, 1001)) // floor(1.001)=1 × 1.5 = 1.5 → 2
}
