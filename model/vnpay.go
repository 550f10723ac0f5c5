package model

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	IPNURL     string
}

type PaymentRequest struct {
	Amount    int64  `json:"amount"` // VND, chưa nhân 100
	OrderInfo string `json:"orderInfo"`
	TxnRef    string `json:"txnRef"` // mã công khai của đơn hàng
	IPAddr    string `json:"ipAddr"`
}

// PaymentResponse là kết quả đã xác minh chữ ký từ return URL hoặc IPN.
// Amount luôn được điền để lớp đối soát so với số tiền phải thu của đơn.
type PaymentResponse struct {
	IsSuccess bool   `json:"isSuccess"`
	TxnRef    string `json:"txnRef"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"` // 00=Success
	Message   string `json:"message"`
}
