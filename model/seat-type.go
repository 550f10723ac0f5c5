package model

// SeatType nhân giá vé theo loại ghế. Ghế COUPLE tính tiền một lần cho cả cặp.
type SeatType struct {
	DTO
	Type          string  `gorm:"not null;uniqueIndex" validate:"required" json:"type"` // NORMAL VIP COUPLE
	PriceModifier float64 `json:"priceModifier"`
}
