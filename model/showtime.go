package model

import "time"

type Showtime struct {
	DTO
	PublicCode string    `gorm:"size:16;uniqueIndex" json:"publicCode"`
	StartTime  time.Time `validate:"required" json:"start"`
	EndTime    time.Time `validate:"required" json:"end"`
	Price      float64   `json:"price"` // giá vé cơ bản của suất, nhân với PriceModifier của loại ghế
	Status     string    `json:"status"`
	Format     string    `gorm:"size:10" json:"format"` // 2D, 3D, IMAX, 4DX
	RoomId     uint      `json:"roomId"`
	Room       Room      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;foreignKey:RoomId" json:"Room"`

	Tickets []Ticket `gorm:"foreignKey:ShowtimeId" json:"tickets"`
}

// ShowtimeSeat là bản chiếu DB của trạng thái ghế theo suất, phục vụ danh sách
// và realtime; trạng thái sống nằm trong inventory.Store
type ShowtimeSeat struct {
	DTO
	ShowtimeId uint       `gorm:"index:idx_showtime_seat,unique" json:"showtimeId"`
	SeatId     uint       `gorm:"index:idx_showtime_seat,unique" json:"seatId"`
	SeatRow    string     `json:"seatRow"`
	SeatNumber int        `json:"seatNumber"`
	SeatTypeId uint       `json:"seatTypeId"`
	Status     string     `json:"status"`
	ExpiredAt  *time.Time `json:"expiredAt"`
	HeldBy     string     `json:"heldBy"`
	Showtime   Showtime   `json:"Showtime"`
	SeatType   SeatType   `json:"SeatType"`
	Seat       Seat       `json:"Seat"`
}

type CreateShowtimeInput struct {
	RoomId    uint      `json:"roomId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	Format    string    `json:"format" validate:"required,oneof=2D 3D IMAX 4DX"`
	Price     float64   `json:"price"` // 0 = tính giá động theo khung giờ
}

type FilterShowtimeInput struct {
	Pagination
	RoomId    uint   `json:"roomId" validate:"omitempty,gt=0"`
	CinemaId  uint   `json:"cinemaId" validate:"omitempty,gt=0"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}
