package helper

import (
	"math"
	"time"
)

// ComputeDiscount áp dụng một giá trị giảm giá lên số tiền gốc.
// DiscountValue dùng ngữ nghĩa theo độ lớn (hợp đồng dữ liệu khuyến mãi
// có sẵn – giữ nguyên, kể cả biên 1 và 100 thuộc nhánh dưới):
//   0 < v ≤ 1   → tỷ lệ
//   1 < v ≤ 100 → phần trăm
//   v > 100     → số tiền giảm cố định
// Số tiền giảm được làm tròn về đơn vị tiền gần nhất (half away from zero).
func ComputeDiscount(baseAmount, discountValue float64) (discount, payable float64) {
	if baseAmount <= 0 || discountValue <= 0 {
		return 0, baseAmount
	}

	switch {
	case discountValue <= 1:
		discount = baseAmount * discountValue
	case discountValue <= 100:
		discount = baseAmount * discountValue / 100
	default:
		discount = discountValue
	}

	discount = math.Round(discount)
	payable = baseAmount - discount
	if payable < 0 {
		payable = 0
	}
	return discount, payable
}

// ComputeRankDiscount tính số tiền giảm theo phần trăm của hạng thành viên,
// dùng chung cho tổng tiền vé và tổng tiền bắp nước
func ComputeRankDiscount(amount, percent float64) float64 {
	return math.Round(amount * percent / 100)
}

// CalculatePrice tính giá vé cơ bản của suất chiếu theo định dạng,
// khung giờ vàng (18h-22h) và cuối tuần
func CalculatePrice(startTime time.Time, format string, date time.Time) float64 {
	basePrice := 50000.0

	// Định dạng
	switch format {
	case "IMAX":
		basePrice += 20000
	case "4DX":
		basePrice += 10000
	case "3D":
		basePrice += 5000
	}

	// Giờ vàng (18h-22h)
	hour := startTime.Hour()
	if hour >= 18 && hour < 22 {
		basePrice += 10000
	}

	// Cuối tuần
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		basePrice += 10000
	}

	return basePrice
}
