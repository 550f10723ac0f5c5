package helper

import (
	"math"

	"cinema_booking/model"
)

// CurrentRank tìm hạng thành viên theo điểm: trong các hạng có
// MinPoints ≤ points và (MaxPoints nil hoặc points ≤ MaxPoints), chọn hạng
// có MinPoints cao nhất (dữ liệu chồng lấn vẫn không nhập nhằng).
// Không hạng nào khớp → trả về hạng thấp nhất, không bao giờ "không có hạng".
func CurrentRank(ranks []model.MembershipRank, points int) *model.MembershipRank {
	if len(ranks) == 0 {
		return nil
	}

	var best *model.MembershipRank
	for i := range ranks {
		r := &ranks[i]
		if r.MinPoints > points {
			continue
		}
		if r.MaxPoints != nil && points > *r.MaxPoints {
			continue
		}
		if best == nil || r.MinPoints > best.MinPoints {
			best = r
		}
	}
	if best != nil {
		return best
	}

	// Fallback: hạng sàn
	floor := &ranks[0]
	for i := range ranks {
		if ranks[i].MinPoints < floor.MinPoints {
			floor = &ranks[i]
		}
	}
	return floor
}

// NextRank trả về hạng kế tiếp và số điểm còn thiếu;
// (nil, 0) nghĩa là đã vượt mọi mốc điểm
func NextRank(ranks []model.MembershipRank, points int) (*model.MembershipRank, int) {
	var next *model.MembershipRank
	for i := range ranks {
		r := &ranks[i]
		if r.MinPoints <= points {
			continue
		}
		if next == nil || r.MinPoints < next.MinPoints {
			next = r
		}
	}
	if next == nil {
		return nil, 0
	}
	return next, next.MinPoints - points
}

// CalculateOrderDiscount tính giảm giá theo hạng cho một đơn hàng.
// Giảm giá vé bị bỏ hoàn toàn (không giảm một phần) khi hạng chỉ áp dụng
// cho ghế NORMAL mà đơn có ghế VIP/COUPLE; giảm giá bắp nước luôn áp dụng.
func CalculateOrderDiscount(rank *model.MembershipRank, ticketTotal, snackTotal float64, hasSpecialSeat bool) model.OrderDiscount {
	d := model.OrderDiscount{FinalTotal: ticketTotal + snackTotal}
	if rank == nil {
		return d
	}

	if !(rank.OnlyNormalSeat && hasSpecialSeat) {
		d.TicketDiscount = ComputeRankDiscount(ticketTotal, rank.TicketDiscountPercent)
	}
	d.SnackDiscount = ComputeRankDiscount(snackTotal, rank.SnackDiscountPercent)

	d.TotalDiscount = d.TicketDiscount + d.SnackDiscount
	d.FinalTotal = ticketTotal + snackTotal - d.TotalDiscount
	return d
}

// CalculatePoints tính điểm tích lũy: floor(số tiền / 1000), nhân hệ số
// điểm của hạng nếu > 1, làm tròn half away from zero
func CalculatePoints(rank *model.MembershipRank, baseAmount float64) int {
	if baseAmount <= 0 {
		return 0
	}
	base := math.Floor(baseAmount / 1000)
	if rank == nil || rank.PointMultiplier <= 1 {
		return int(base)
	}
	return int(math.Round(base * rank.PointMultiplier))
}
