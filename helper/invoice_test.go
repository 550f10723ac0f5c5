package helper

import (
	"testing"
	"time"

	"cinema_booking/constants"
	"cinema_booking/model"

	"github.com/stretchr/testify/assert"
)

func successTxn(amount float64, paidAt time.Time) model.Payment {
	return model.Payment{Amount: amount, Status: constants.PAYMENT_SUCCESS, PaidAt: &paidAt}
}

// P5: có giao dịch SUCCESS thì số liệu đối soát theo giao dịch,
// bất kể khuyến mãi về sau bị tắt hay hết hạn
func TestBreakdownPrefersConfirmedPayment(t *testing.T) {
	now := VenueNow()
	promoId := uint(3)
	order := &model.Order{OriginalTotal: 1000, PromotionId: &promoId}
	txns := []model.Payment{successTxn(900, now.Add(-time.Hour))}

	expired := now.Add(-24 * time.Hour)
	deadPromo := &model.Promotion{DiscountValue: 50, Status: constants.PROMOTION_INACTIVE, EndDate: &expired}

	b := InvoiceBreakdown(order, txns, deadPromo, now)
	assert.Equal(t, PriceBreakdown{Base: 1000, Discount: 100, Paid: 900}, b)

	// Idempotent – gọi lại lúc khác vẫn cùng kết quả
	assert.Equal(t, b, InvoiceBreakdown(order, txns, deadPromo, now.Add(48*time.Hour)))
}

func TestBreakdownPicksLatestSuccess(t *testing.T) {
	now := VenueNow()
	order := &model.Order{OriginalTotal: 1000}
	txns := []model.Payment{
		{Amount: 500, Status: constants.PAYMENT_FAILED},
		successTxn(800, now.Add(-2*time.Hour)),
		successTxn(900, now.Add(-time.Hour)), // SUCCESS mới nhất thắng
	}

	b := InvoiceBreakdown(order, txns, nil, now)
	assert.Equal(t, float64(900), b.Paid)
	assert.Equal(t, float64(100), b.Discount)
}

func TestLatestSuccessPaymentTimeFallback(t *testing.T) {
	now := VenueNow()
	// Không có PaidAt → so theo UpdatedAt, rồi CreatedAt
	older := model.Payment{Amount: 800, Status: constants.PAYMENT_SUCCESS,
		DTO: model.DTO{CreatedAt: now.Add(-3 * time.Hour), UpdatedAt: now.Add(-3 * time.Hour)}}
	newer := model.Payment{Amount: 900, Status: constants.PAYMENT_SUCCESS,
		DTO: model.DTO{CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now.Add(-1 * time.Hour)}}

	latest := LatestSuccessPayment([]model.Payment{older, newer})
	assert.Equal(t, float64(900), latest.Amount)

	assert.Nil(t, LatestSuccessPayment([]model.Payment{{Status: constants.PAYMENT_FAILED}}))
}

// Kịch bản C: base 500000, DiscountValue=50 (1<50≤100 → phần trăm) →
// giảm 250000; sau khi giao dịch SUCCESS 250000 về, kết quả không đổi
func TestBreakdownPromotionThenPayment(t *testing.T) {
	now := VenueNow()
	promoId := uint(1)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	promo := &model.Promotion{DiscountValue: 50, Status: constants.PROMOTION_ACTIVE, StartDate: &start, EndDate: &end}
	order := &model.Order{OriginalTotal: 500000, PromotionId: &promoId}

	// Chưa thanh toán → tính lại theo khuyến mãi
	b := InvoiceBreakdown(order, nil, promo, now)
	assert.Equal(t, PriceBreakdown{Base: 500000, Discount: 250000, Paid: 250000}, b)

	// Có giao dịch SUCCESS → vẫn cùng bảng giá
	txns := []model.Payment{successTxn(250000, now)}
	assert.Equal(t, b, InvoiceBreakdown(order, txns, promo, now))
}

func TestBreakdownInactivePromotionIgnored(t *testing.T) {
	now := VenueNow()
	promoId := uint(1)
	order := &model.Order{OriginalTotal: 500000, PromotionId: &promoId}
	promo := &model.Promotion{DiscountValue: 50, Status: constants.PROMOTION_INACTIVE}

	b := InvoiceBreakdown(order, nil, promo, now)
	assert.Equal(t, PriceBreakdown{Base: 500000, Discount: 0, Paid: 500000}, b)
}

func TestBreakdownNoPromotionNoPayment(t *testing.T) {
	order := &model.Order{OriginalTotal: 120000}
	b := InvoiceBreakdown(order, nil, nil, VenueNow())
	assert.Equal(t, PriceBreakdown{Base: 120000, Discount: 0, Paid: 120000}, b)
}

func TestValidatePromotionWindow(t *testing.T) {
	now := VenueNow()
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	active := &model.Promotion{Status: constants.PROMOTION_ACTIVE, StartDate: &start, EndDate: &end}
	assert.NoError(t, ValidatePromotion(active, now))

	// Không giới hạn hai đầu
	open := &model.Promotion{Status: constants.PROMOTION_ACTIVE}
	assert.NoError(t, ValidatePromotion(open, now))

	notYet := &model.Promotion{Status: constants.PROMOTION_ACTIVE, StartDate: &end}
	assert.ErrorIs(t, ValidatePromotion(notYet, now), ErrPromotionExpired)

	over := &model.Promotion{Status: constants.PROMOTION_ACTIVE, EndDate: &start}
	assert.ErrorIs(t, ValidatePromotion(over, now), ErrPromotionExpired)

	inactive := &model.Promotion{Status: constants.PROMOTION_INACTIVE, StartDate: &start, EndDate: &end}
	assert.ErrorIs(t, ValidatePromotion(inactive, now), ErrPromotionInvalid)

	assert.ErrorIs(t, ValidatePromotion(nil, now), ErrPromotionInvalid)
}

func TestTheaterNameLookupChain(t *testing.T) {
	order := &model.Order{Showtime: model.Showtime{Room: model.Room{
		Name:   "Phòng 3",
		Cinema: model.Cinema{Name: "CinemaPro Quận 1"},
	}}}
	assert.Equal(t, "CinemaPro Quận 1", TheaterName(order))

	order.Showtime.Room.Cinema.Name = ""
	assert.Equal(t, "Phòng 3", TheaterName(order))

	order.Showtime.Room.Name = ""
	assert.Equal(t, "", TheaterName(order))
}
