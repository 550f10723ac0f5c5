package model

type Seat struct {
	DTO
	Row         string   `gorm:"not null" validate:"required" json:"row"`          // e.g., "A", "B"
	Column      int      `gorm:"not null" validate:"required,min=1" json:"column"` // e.g., 1, 2
	RoomId      uint     `json:"RoomId"`
	Room        Room     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	IsAvailable bool     `gorm:"default:true" json:"isAvailable"` // ghế bị tắt thì không đưa vào sơ đồ bán
	SeatTypeId  uint     `json:"seatTypeId"`
	SeatType    SeatType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"SeatType"`
	// Hai ghế đôi dùng chung một CoupleId và luôn được giữ/đặt/trả cùng nhau
	CoupleId *uint `json:"coupleId"`
}

// HoldSeatsInput giữ/trả ghế trước khi chốt đơn
type HoldSeatsInput struct {
	SeatIds   []uint `json:"seatIds" validate:"required,min=1,dive,gt=0"`
	SessionId string `json:"sessionId"`
}
