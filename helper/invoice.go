package helper

import (
	"time"

	"cinema_booking/constants"
	"cinema_booking/model"
)

// PriceBreakdown là bảng giá lịch sử của một hóa đơn để hiển thị/đối soát
type PriceBreakdown struct {
	Base     float64 `json:"base"`
	Discount float64 `json:"discount"`
	Paid     float64 `json:"paid"`
}

// LatestSuccessPayment chọn giao dịch SUCCESS mới nhất của hóa đơn:
// ưu tiên PaidAt, rồi UpdatedAt, rồi CreatedAt
func LatestSuccessPayment(txns []model.Payment) *model.Payment {
	var latest *model.Payment
	for i := range txns {
		t := &txns[i]
		if t.Status != constants.PAYMENT_SUCCESS {
			continue
		}
		if latest == nil || paymentTime(t).After(paymentTime(latest)) {
			latest = t
		}
	}
	return latest
}

func paymentTime(t *model.Payment) time.Time {
	if t.PaidAt != nil {
		return *t.PaidAt
	}
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt
	}
	return t.CreatedAt
}

// InvoiceBreakdown dựng lại bảng giá gốc/giảm/đã trả của hóa đơn.
// Giao dịch SUCCESS là nguồn sự thật – phản ánh số tiền thực trả, bất kể
// khuyến mãi về sau bị tắt hay hết hạn. Chưa có giao dịch thì mới tính lại
// theo khuyến mãi (và chỉ khi khuyến mãi còn hiệu lực tại now) – đây là
// con số hiển thị tạm cho hóa đơn chưa thanh toán, có thể lệch với số
// tiền trả cuối cùng.
// Hàm chỉ đọc, gọi bao nhiêu lần và vào lúc nào cũng cho cùng kết quả.
func InvoiceBreakdown(order *model.Order, txns []model.Payment, promo *model.Promotion, now time.Time) PriceBreakdown {
	base := order.OriginalTotal

	if txn := LatestSuccessPayment(txns); txn != nil {
		discount := base - txn.Amount
		if discount < 0 {
			discount = 0
		}
		return PriceBreakdown{Base: base, Discount: discount, Paid: txn.Amount}
	}

	if order.PromotionId != nil && promo != nil {
		if err := ValidatePromotion(promo, now); err == nil {
			discount, payable := ComputeDiscount(base, promo.DiscountValue)
			return PriceBreakdown{Base: base, Discount: discount, Paid: payable}
		}
	}

	return PriceBreakdown{Base: base, Discount: 0, Paid: base}
}

// TheaterName tra tên rạp của hóa đơn theo chuỗi tham chiếu tường minh:
// showtime → phòng → rạp (không dùng reflection)
func TheaterName(order *model.Order) string {
	room := &order.Showtime.Room
	if room.Cinema.Name != "" {
		return room.Cinema.Name
	}
	if room.Name != "" {
		return room.Name
	}
	return ""
}
