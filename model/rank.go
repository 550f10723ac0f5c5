package model

// MembershipRank là hạng thành viên theo điểm tích lũy.
// MinPoints/MaxPoints tạo thành khoảng điểm; MaxPoints nil = không giới hạn trên.
type MembershipRank struct {
	DTO
	Name                  string  `gorm:"unique;not null" json:"name"`
	MinPoints             int     `gorm:"not null" json:"minPoints"`
	MaxPoints             *int    `json:"maxPoints"`
	TicketDiscountPercent float64 `gorm:"type:decimal(5,2);default:0" json:"ticketDiscountPercent"`
	SnackDiscountPercent  float64 `gorm:"type:decimal(5,2);default:0" json:"snackDiscountPercent"`
	PointMultiplier       float64 `gorm:"default:1" json:"pointMultiplier"`
	// Chỉ áp dụng giảm giá vé cho ghế NORMAL khi bật cờ này
	OnlyNormalSeat bool `gorm:"default:false" json:"onlyNormalSeat"`
}

type MembershipRanks []MembershipRank

// OrderDiscount là kết quả tính giảm giá theo hạng cho một đơn hàng
type OrderDiscount struct {
	TicketDiscount float64 `json:"ticketDiscount"`
	SnackDiscount  float64 `json:"snackDiscount"`
	TotalDiscount  float64 `json:"totalDiscount"`
	FinalTotal     float64 `json:"finalTotal"`
}

type EditRankInput struct {
	Name                  *string  `json:"name"`
	MinPoints             *int     `json:"minPoints" validate:"omitempty,min=0"`
	MaxPoints             *int     `json:"maxPoints" validate:"omitempty,min=0"`
	TicketDiscountPercent *float64 `json:"ticketDiscountPercent" validate:"omitempty,min=0,max=100"`
	SnackDiscountPercent  *float64 `json:"snackDiscountPercent" validate:"omitempty,min=0,max=100"`
	PointMultiplier       *float64 `json:"pointMultiplier" validate:"omitempty,min=0"`
	OnlyNormalSeat        *bool    `json:"onlyNormalSeat"`
}
