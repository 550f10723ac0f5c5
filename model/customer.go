package model

type Customer struct {
	DTO
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Password string `gorm:"not null" json:"-"`
	UserName string `json:"username"`

	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`

	IsActive bool   `gorm:"default:true" json:"isActive"`
	Role     string `gorm:"default:customer" json:"role"` // customer, admin

	// Điểm tích lũy – chỉ tăng khi đơn hàng được thanh toán,
	// không bao giờ bị trừ khi đặt vé thất bại
	Points int   `gorm:"default:0" json:"points"`
	RankId *uint `json:"rankId"`

	Rank *MembershipRank `gorm:"foreignKey:RankId" json:"rank,omitempty"`
}

type Customers []Customer

type RegisterCustomerInput struct {
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"required,min=9,max=12"`
	Password  string  `json:"password" validate:"required,min=6"`
	UserName  string  `json:"username" validate:"required,min=3"`
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type FilterCustomer struct {
	Pagination
	SearchKey   string `json:"searchKey"`
	PhoneNumber string `json:"phoneNumber"`
	Active      *bool  `json:"active"`
}
