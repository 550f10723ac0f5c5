package constants

// Thông báo chung
const (
	ERROR_INPUT                = "Dữ liệu đầu vào không hợp lệ"
	ERROR_PARSE_DATA_TO_LOCALS = "Lỗi xử lý dữ liệu nội bộ"
	DATA_INPUT_IS_NOT_NUMBER   = "Tham số phải là số"
	NOT_ADMIN                  = "Bạn không có quyền thực hiện thao tác này"
	NOT_FOUND                  = "Không tìm thấy dữ liệu"
)

const (
	ERROR_INTERNAL_ERROR = "Lỗi hệ thống, vui lòng thử lại sau"
)

// Vai trò người dùng
const (
	ROLE_ADMIN    = "admin"
	ROLE_CUSTOMER = "customer"
)

// Mã lỗi máy đọc được trả kèm response cho client rẽ nhánh
const (
	KEY_SEAT_UNAVAILABLE = "SEAT_UNAVAILABLE"
	KEY_INVALID_SEAT     = "INVALID_SEAT"
	KEY_HOLD_EXPIRED     = "HOLD_EXPIRED"
	KEY_PAYMENT_MISMATCH = "PAYMENT_MISMATCH"
)

// Trạng thái vé
const (
	TICKET_PENDING   = "PENDING"
	TICKET_ISSUED    = "ISSUED"
	TICKET_CANCELLED = "CANCELLED"
	TICKET_USED      = "USED"
)

// Trạng thái đơn hàng
const (
	ORDER_PENDING   = "PENDING"
	ORDER_PAID      = "PAID"
	ORDER_FAILED    = "FAILED"
	ORDER_CANCELLED = "CANCELLED"
)

// Trạng thái giao dịch thanh toán
const (
	PAYMENT_PENDING = "PENDING"
	PAYMENT_SUCCESS = "SUCCESS"
	PAYMENT_FAILED  = "FAILED"
)

// Trạng thái khuyến mãi
const (
	PROMOTION_ACTIVE   = "active"
	PROMOTION_INACTIVE = "inactive"
)

// Loại ghế
const (
	SEAT_TYPE_NORMAL = "NORMAL"
	SEAT_TYPE_VIP    = "VIP"
	SEAT_TYPE_COUPLE = "COUPLE"
)
