package helper

import (
	"errors"
	"time"

	"cinema_booking/constants"
	"cinema_booking/model"
)

var (
	ErrPromotionInvalid = errors.New("khuyến mãi không tồn tại hoặc đã tắt")
	ErrPromotionExpired = errors.New("khuyến mãi ngoài thời gian áp dụng")
)

// ValidatePromotion kiểm tra khuyến mãi còn hiệu lực tại thời điểm now
// (now là giờ rạp – caller truyền VenueNow() hoặc đồng hồ test)
func ValidatePromotion(p *model.Promotion, now time.Time) error {
	if p == nil || p.Status != constants.PROMOTION_ACTIVE {
		return ErrPromotionInvalid
	}
	if p.StartDate != nil && now.Before(*p.StartDate) {
		return ErrPromotionExpired
	}
	if p.EndDate != nil && now.After(*p.EndDate) {
		return ErrPromotionExpired
	}
	return nil
}
