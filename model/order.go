package model

import "time"

// Order là hóa đơn đặt vé. Sau khi Status = PAID thì OriginalTotal/TotalAmount
// là bất biến (chỉ ghi thêm lịch sử, không sửa).
type Order struct {
	DTO
	PublicCode string    `gorm:"unique;size:20" json:"publicCode"` // ORD-XXXXXX
	CustomerID *uint     `json:"customerId,omitempty"`             // null nếu khách vãng lai
	Customer   *Customer `json:"customer,omitempty"`
	ShowtimeID uint      `json:"showtimeId"`
	Showtime   Showtime  `json:"showtime"`

	OriginalTotal float64 `json:"originalTotal"` // tổng chưa giảm (vé + bắp nước)
	TotalAmount   float64 `json:"totalAmount"`   // số tiền phải trả sau giảm

	Status      string `json:"status"` // PENDING, PAID, FAILED, CANCELLED
	PromotionId *uint  `json:"promotionId,omitempty"`
	// Bật khi số tiền gateway báo về lệch với TotalAmount – chờ đối soát tay,
	// tuyệt đối không tự đánh PAID
	PaymentFlagged bool `gorm:"default:false" json:"paymentFlagged"`

	HeldBy    string     `gorm:"size:64" json:"-"` // token giữ ghế của đơn này
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	PaymentMethod string     `json:"paymentMethod"`
	CreatedAt     time.Time  `json:"createdAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt"`

	Tickets []Ticket     `gorm:"foreignKey:OrderId" json:"tickets"`
	Snacks  []OrderSnack `gorm:"foreignKey:OrderId" json:"snacks"`

	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

type CreateBookingInput struct {
	SeatIds        []uint           `json:"seatIds" validate:"required,min=1,dive,gt=0"`
	Snacks         []SnackLineInput `json:"snacks" validate:"omitempty,dive"`
	PromotionId    *uint            `json:"promotionId"`
	GuestSessionId string           `json:"guestSessionId"`
	CustomerName   string           `json:"customerName"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email" validate:"omitempty,email"`
}
