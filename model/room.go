package model

type Room struct {
	DTO
	Name       string `gorm:"not null" validate:"required" json:"name"`
	RoomNumber uint   `json:"roomNumber" validate:"required,min=1"`
	Capacity   *int   `json:"capacity"`
	Row        string `json:"row"` // các hàng ghế, ví dụ "ABCDEFGHI"

	Status        string `gorm:"not null" json:"status"` // available, maintenance, closed
	CinemaId      uint   `json:"cinemaId"`
	Cinema        Cinema `gorm:"foreignKey:CinemaId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"cinema"`
	Seats         []Seat `gorm:"foreignKey:RoomId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"seats"`
	HasCoupleSeat bool   `gorm:"default:false" json:"hasCoupleSeat"`
}

type CreateScreeningRoomInput struct {
	CinemaId      uint   `json:"cinemaId" validate:"required"`
	RoomNumber    uint   `json:"roomNumber" validate:"omitempty,min=1"` // 0 = tự đánh số
	Row           string `json:"row" validate:"required"`               // số hàng ghế A B C D E F G H I
	Columns       int    `json:"columns" validate:"required"`
	VipColMin     int    `json:"vipColMin" validate:"omitempty"`
	VipColMax     int    `json:"vipColMax" validate:"omitempty"`
	HasCoupleSeat bool   `json:"hasCoupleSeat"`
}
