package model

import "time"

// Promotion dùng một trường DiscountValue duy nhất, ngữ nghĩa theo độ lớn
// (hợp đồng dữ liệu có sẵn, không "sửa"):
//   0 < v ≤ 1   → tỷ lệ (0.1 = 10%)
//   1 < v ≤ 100 → phần trăm
//   v > 100     → số tiền giảm cố định (VND)
type Promotion struct {
	DTO
	Code          string     `gorm:"unique;not null" json:"code"`
	Name          string     `gorm:"not null" json:"name"`
	Description   string     `gorm:"type:text" json:"description"`
	DiscountValue float64    `gorm:"type:decimal(10,2);not null" json:"discountValue"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Status        string     `gorm:"default:'active';not null" json:"status"` // active, inactive
}

type Promotions []Promotion

type CreatePromotionInput struct {
	Code          string     `json:"code" validate:"required"`
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description"`
	DiscountValue float64    `json:"discountValue" validate:"required,gt=0"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
}

type EditPromotionInput struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	DiscountValue *float64   `json:"discountValue" validate:"omitempty,gt=0"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Status        *string    `json:"status" validate:"omitempty,oneof=active inactive"`
}
