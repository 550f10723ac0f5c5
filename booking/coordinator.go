package booking

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/inventory"
	"cinema_booking/model"

	"github.com/google/uuid"
)

var (
	// ErrPaymentMismatch: số tiền gateway báo về lệch với số phải trả –
	// hóa đơn bị gắn cờ chờ đối soát tay, không bao giờ tự đánh PAID
	ErrPaymentMismatch = errors.New("số tiền thanh toán không khớp hóa đơn")
	ErrInvoiceNotFound = errors.New("hóa đơn không tồn tại")
	// ErrInvoiceNotPending: callback đến cho hóa đơn đã chốt
	ErrInvoiceNotPending = errors.New("hóa đơn không ở trạng thái chờ thanh toán")
	ErrUnknownSnack      = errors.New("món bắp nước không tồn tại hoặc đã ngừng bán")
)

// Sai số cho phép khi so số tiền gateway với hóa đơn (tiền VND nguyên đơn vị)
const paymentTolerance = 0.5

// SeatInfo là một ghế trong sơ đồ suất chiếu kèm giá bán.
// Với ghế đôi, Price là giá của cả cặp và chỉ được tính một lần.
type SeatInfo struct {
	SeatId   uint
	Label    string
	Type     string // NORMAL, VIP, COUPLE
	CoupleId *uint
	Active   bool
	Price    float64
}

// Catalog là các nguồn dữ liệu chỉ đọc mà luồng đặt vé cần
type Catalog interface {
	ShowtimeSeats(showtimeId uint) ([]SeatInfo, error)
	Promotion(id uint) (*model.Promotion, error)
	Ranks() ([]model.MembershipRank, error)
	CustomerPoints(customerId uint) (int, error)
	Snacks(ids []uint) (map[uint]model.Snack, error)
}

// InvoiceRepo ghi nhận hóa đơn/giao dịch/điểm. Mọi ghi điểm và trạng thái
// hóa đơn chỉ xảy ra trên luồng xử lý callback thanh toán của hóa đơn đó.
type InvoiceRepo interface {
	CreateInvoice(order *model.Order) error
	GetInvoice(invoiceId uint) (*model.Order, error)
	MarkPaid(invoiceId uint, paidAt time.Time) error
	MarkFailed(invoiceId uint) error
	FlagMismatch(invoiceId uint) error
	RecordTransaction(txn *model.Payment) error
	AddPoints(customerId uint, points int) error
}

// PaymentNotice là dữ liệu callback từ cổng thanh toán
type PaymentNotice struct {
	InvoiceId   uint
	Amount      float64
	Success     bool
	ProviderTxn string
	Method      string
	PaidAt      time.Time
}

// Coordinator điều phối một lượt đặt vé: kiểm tra ghế, giữ nguyên tử,
// tính tiền, chốt khi thanh toán thành công hoặc trả ghế khi thất bại.
// Không giữ khóa ghế qua bất kỳ I/O nào – giữ ghế xong mới ghi hóa đơn,
// thanh toán là một lượt gọi riêng đối chiếu theo id hóa đơn.
type Coordinator struct {
	store   *inventory.Store
	catalog Catalog
	repo    InvoiceRepo

	notify     func(order *model.Order) // fire-and-forget, lỗi không ảnh hưởng booking
	recalcRank func(customerId uint)    // trigger job tính lại hạng, chạy lại an toàn
	now        func() time.Time         // giờ rạp
}

type Option func(*Coordinator)

func WithNotifier(fn func(order *model.Order)) Option {
	return func(c *Coordinator) { c.notify = fn }
}

func WithRankRecalc(fn func(customerId uint)) Option {
	return func(c *Coordinator) { c.recalcRank = fn }
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

func New(store *inventory.Store, catalog Catalog, repo InvoiceRepo, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:   store,
		catalog: catalog,
		repo:    repo,
		now:     helper.VenueNow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HolderToken dựng token giữ ghế: khách đăng nhập theo id, khách vãng lai
// theo session
func HolderToken(customerId *uint, guestSessionId string) string {
	if customerId != nil {
		return fmt.Sprintf("USER_%d", *customerId)
	}
	if guestSessionId != "" {
		return guestSessionId
	}
	return "GUEST_" + uuid.New().String()
}

// RequestBooking thực hiện một lượt đặt vé và trả về hóa đơn PENDING kèm
// hạn giữ ghế để client chạy đồng hồ đếm ngược thanh toán.
func (c *Coordinator) RequestBooking(showtimeId uint, in model.CreateBookingInput, customerId *uint) (*model.Order, error) {
	seats, err := c.catalog.ShowtimeSeats(showtimeId)
	if err != nil {
		return nil, err
	}
	seatById := make(map[uint]SeatInfo, len(seats))
	for _, s := range seats {
		seatById[s.SeatId] = s
	}

	// 1. Ghế phải thuộc suất và còn bán
	var invalid []uint
	for _, id := range in.SeatIds {
		s, ok := seatById[id]
		if !ok || !s.Active {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return nil, &inventory.InvalidSeatError{SeatIds: invalid, Reason: "ghế không thuộc suất chiếu hoặc đã tắt bán"}
	}

	// 2. Bổ sung nửa còn lại của ghế đôi trước khi giữ
	seatIds, err := c.store.ExpandPairs(showtimeId, in.SeatIds)
	if err != nil {
		return nil, err
	}

	// 3. Giữ ghế nguyên tử – thất bại thì store bảo đảm không còn hold lơ lửng
	holder := HolderToken(customerId, in.GuestSessionId)
	expiresAt, err := c.store.Hold(showtimeId, seatIds, holder)
	if err != nil {
		return nil, err
	}
	rollback := func() { _ = c.store.Release(showtimeId, seatIds, holder) }

	// 4. Tổng tiền vé (cặp ghế đôi tính một lần) + tổng tiền bắp nước
	ticketTotal, hasSpecialSeat := c.ticketTotal(seatIds, seatById)
	snackLines, snackTotal, err := c.snackLines(in.Snacks)
	if err != nil {
		rollback()
		return nil, err
	}

	originalTotal := ticketTotal + snackTotal
	payable := originalTotal
	var promotionId *uint

	// 5. Khuyến mãi tường minh tính trên tổng gộp; không có thì đi luồng
	// giảm giá theo hạng thành viên
	if in.PromotionId != nil {
		promo, err := c.catalog.Promotion(*in.PromotionId)
		if err == nil && helper.ValidatePromotion(promo, c.now()) == nil {
			_, payable = helper.ComputeDiscount(originalTotal, promo.DiscountValue)
			promotionId = in.PromotionId
		}
		// Khuyến mãi không hợp lệ → đặt vé vẫn đi tiếp, không giảm giá
	} else if customerId != nil {
		rank, err := c.customerRank(*customerId)
		if err != nil {
			rollback()
			return nil, err
		}
		d := helper.CalculateOrderDiscount(rank, ticketTotal, snackTotal, hasSpecialSeat)
		payable = d.FinalTotal
	}

	// 6-7. Ghi hóa đơn PENDING kèm hạn giữ ghế
	order := &model.Order{
		PublicCode:    "ORD-" + uuid.New().String()[:8],
		CustomerID:    customerId,
		ShowtimeID:    showtimeId,
		OriginalTotal: originalTotal,
		TotalAmount:   payable,
		Status:        constants.ORDER_PENDING,
		PromotionId:   promotionId,
		HeldBy:        holder,
		ExpiresAt:     &expiresAt,
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		Email:         in.Email,
		Snacks:        snackLines,
		Tickets:       c.pendingTickets(showtimeId, seatIds, seatById, customerId),
	}
	if err := c.repo.CreateInvoice(order); err != nil {
		rollback()
		return nil, err
	}
	return order, nil
}

func (c *Coordinator) ticketTotal(seatIds []uint, seatById map[uint]SeatInfo) (float64, bool) {
	total := 0.0
	hasSpecial := false
	countedPairs := make(map[uint]bool)
	for _, id := range seatIds {
		s := seatById[id]
		if s.Type != constants.SEAT_TYPE_NORMAL {
			hasSpecial = true
		}
		if s.CoupleId != nil {
			if countedPairs[*s.CoupleId] {
				continue // nửa thứ hai của cặp
			}
			countedPairs[*s.CoupleId] = true
		}
		total += s.Price
	}
	return total, hasSpecial
}

func (c *Coordinator) snackLines(lines []model.SnackLineInput) ([]model.OrderSnack, float64, error) {
	if len(lines) == 0 {
		return nil, 0, nil
	}
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.SnackId)
	}
	snacks, err := c.catalog.Snacks(ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]model.OrderSnack, 0, len(lines))
	total := 0.0
	for _, l := range lines {
		s, ok := snacks[l.SnackId]
		if !ok || !s.Active {
			return nil, 0, ErrUnknownSnack
		}
		out = append(out, model.OrderSnack{SnackId: s.ID, Quantity: l.Quantity, Price: s.Price})
		total += s.Price * float64(l.Quantity)
	}
	return out, total, nil
}

func (c *Coordinator) pendingTickets(showtimeId uint, seatIds []uint, seatById map[uint]SeatInfo, customerId *uint) []model.Ticket {
	tickets := make([]model.Ticket, 0, len(seatIds))
	for _, id := range seatIds {
		s := seatById[id]
		price := s.Price
		if s.CoupleId != nil {
			price = price / 2 // mỗi nửa cặp mang nửa giá để tổng vé khớp
		}
		tickets = append(tickets, model.Ticket{
			TicketCode: "TKT-" + uuid.New().String()[:10],
			Status:     "PENDING",
			Price:      price,
			SeatId:     id,
			ShowtimeId: showtimeId,
			CustomerId: customerId,
		})
	}
	return tickets
}

func (c *Coordinator) customerRank(customerId uint) (*model.MembershipRank, error) {
	points, err := c.catalog.CustomerPoints(customerId)
	if err != nil {
		return nil, err
	}
	ranks, err := c.catalog.Ranks()
	if err != nil {
		return nil, err
	}
	return helper.CurrentRank(ranks, points), nil
}

// ConfirmPayment xử lý callback từ cổng thanh toán. Luôn ghi lại giao dịch;
// chỉ khi số tiền khớp và hold còn hạn mới chuyển ghế sang BOOKED và đánh
// hóa đơn PAID. Gọi lại cho hóa đơn đã PAID là no-op (callback idempotent).
func (c *Coordinator) ConfirmPayment(notice PaymentNotice) (*model.Order, error) {
	order, err := c.repo.GetInvoice(notice.InvoiceId)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}

	txn := &model.Payment{
		OrderId:     order.ID,
		Amount:      notice.Amount,
		PaymentCode: fmt.Sprintf("PAY_%s_%s", notice.PaidAt.Format("20060102"), uuid.New().String()[:6]),
		Method:      notice.Method,
		ProviderTxn: notice.ProviderTxn,
		Status:      constants.PAYMENT_FAILED,
	}
	if notice.Success {
		txn.Status = constants.PAYMENT_SUCCESS
		paidAt := notice.PaidAt
		txn.PaidAt = &paidAt
	}
	if err := c.repo.RecordTransaction(txn); err != nil {
		return nil, err
	}

	if order.Status == constants.ORDER_PAID {
		return order, nil
	}
	if order.Status != constants.ORDER_PENDING {
		return order, ErrInvoiceNotPending
	}

	seatIds := orderSeatIds(order)

	if !notice.Success {
		// Thanh toán thất bại → trả ghế ngay, không gia hạn hold
		_ = c.store.Release(order.ShowtimeID, seatIds, order.HeldBy)
		if err := c.repo.MarkFailed(order.ID); err != nil {
			return order, err
		}
		order.Status = constants.ORDER_FAILED
		return order, nil
	}

	if math.Abs(notice.Amount-order.TotalAmount) > paymentTolerance {
		// Lệch tiền → gắn cờ chờ đối soát tay, hóa đơn vẫn PENDING
		if err := c.repo.FlagMismatch(order.ID); err != nil {
			return order, err
		}
		order.PaymentFlagged = true
		return order, ErrPaymentMismatch
	}

	if err := c.store.Book(order.ShowtimeID, seatIds, order.HeldBy, order.ID); err != nil {
		if errors.Is(err, inventory.ErrHoldExpired) || errors.Is(err, inventory.ErrNotHolder) {
			// Xác nhận đến sau khi hold hết hạn → đặt lại từ đầu; tiền đã
			// trừ là việc hoàn tiền ngoài luồng của ứng dụng tích hợp
			if markErr := c.repo.MarkFailed(order.ID); markErr != nil {
				return order, markErr
			}
			order.Status = constants.ORDER_FAILED
			return order, inventory.ErrHoldExpired
		}
		return order, err
	}

	if err := c.repo.MarkPaid(order.ID, notice.PaidAt); err != nil {
		return order, err
	}
	order.Status = constants.ORDER_PAID
	paidAt := notice.PaidAt
	order.PaidAt = &paidAt

	// Cộng điểm theo số tiền thực trả; điểm chỉ tăng, không bao giờ bị trừ
	if order.CustomerID != nil {
		if rank, err := c.customerRank(*order.CustomerID); err == nil {
			if points := helper.CalculatePoints(rank, notice.Amount); points > 0 {
				if err := c.repo.AddPoints(*order.CustomerID, points); err == nil && c.recalcRank != nil {
					c.recalcRank(*order.CustomerID)
				}
			}
		}
	}

	if c.notify != nil {
		c.notify(order)
	}
	return order, nil
}

// ReleaseBooking trả ghế của một hóa đơn PENDING (người dùng hủy hoặc hold
// hết hạn) và đánh hóa đơn FAILED
func (c *Coordinator) ReleaseBooking(invoiceId uint) error {
	order, err := c.repo.GetInvoice(invoiceId)
	if err != nil {
		return ErrInvoiceNotFound
	}
	if order.Status != constants.ORDER_PENDING {
		return ErrInvoiceNotPending
	}
	_ = c.store.Release(order.ShowtimeID, orderSeatIds(order), order.HeldBy)
	return c.repo.MarkFailed(order.ID)
}

func orderSeatIds(order *model.Order) []uint {
	ids := make([]uint, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		ids = append(ids, t.SeatId)
	}
	return ids
}
