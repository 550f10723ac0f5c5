package model

type Snack struct {
	DTO
	Name   string  `gorm:"not null" validate:"required" json:"name"`
	Price  float64 `gorm:"not null" json:"price"`
	Active bool    `gorm:"default:true" json:"isActive"`
}

type Snacks []Snack

// OrderSnack là một dòng bắp nước trong đơn hàng
type OrderSnack struct {
	DTO
	OrderId  uint    `gorm:"not null;index" json:"orderId"`
	SnackId  uint    `gorm:"not null" json:"snackId"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"` // đơn giá tại thời điểm đặt

	Snack Snack `gorm:"foreignKey:SnackId" json:"snack"`
}

type SnackLineInput struct {
	SnackId  uint `json:"snackId" validate:"required,gt=0"`
	Quantity int  `json:"quantity" validate:"required,gt=0"`
}
