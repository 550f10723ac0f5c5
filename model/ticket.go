package model

import "time"

type Ticket struct {
	DTO
	Status     string  `gorm:"not null;default:'PENDING'" json:"status"` // PENDING, ISSUED, CANCELLED
	TicketCode string  `gorm:"size:20;uniqueIndex" json:"ticketCode"`
	Price      float64 `gorm:"not null" json:"price"`

	IssuedAt       *time.Time `json:"issuedAt,omitempty"`
	UsedAt         *time.Time `json:"usedAt,omitempty"`
	CancelledAt    *time.Time `json:"cancelledAt"`
	ShowtimeSeatId uint       `json:"showtimeSeatId"`
	ShowtimeId     uint       `json:"showtimeId"`
	SeatId         uint       `json:"seatId"`
	OrderId        uint       `json:"orderId"`
	CustomerId     *uint      `gorm:"default:null" json:"customerId"`
	// Relationship – không expose vào JSON mặc định
	Showtime     Showtime     `gorm:"foreignKey:ShowtimeId" json:"-"`
	Seat         Seat         `gorm:"foreignKey:SeatId" json:"-"`
	Order        Order        `gorm:"foreignKey:OrderId" json:"-"`
	ShowtimeSeat ShowtimeSeat `gorm:"foreignKey:ShowtimeSeatId" json:"-"`
}
