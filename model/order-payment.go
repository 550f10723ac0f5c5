package model

import "time"

// Payment là một giao dịch thanh toán của đơn hàng. Một đơn có thể có nhiều
// giao dịch (retry); giao dịch SUCCESS mới nhất là số tiền thực trả.
type Payment struct {
	DTO
	OrderId     uint    `gorm:"not null;index" json:"orderId"`
	Amount      float64 `gorm:"not null" json:"amount"`
	PaymentCode string  `gorm:"unique" json:"paymentCode"`
	Status      string  `gorm:"default:PENDING" json:"status"` // SUCCESS, FAILED, PENDING
	Method      string  `json:"method"`                        // VNPAY, MOMO
	ProviderTxn string  `gorm:"size:64" json:"providerTxn"`

	PaidAt *time.Time `json:"paidAt,omitempty"`

	Order Order `gorm:"foreignKey:OrderId" json:"-"`
}

type CreatePaymentInput struct {
	OrderId uint   `json:"orderId" validate:"required,gt=0"`
	Method  string `json:"method" validate:"required,oneof=VNPAY MOMO"`
}
