package booking_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"cinema_booking/booking"
	"cinema_booking/constants"
	"cinema_booking/inventory"
	"cinema_booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeCatalog struct {
	seats  map[uint][]booking.SeatInfo
	promos map[uint]*model.Promotion
	ranks  []model.MembershipRank
	points map[uint]int
	snacks map[uint]model.Snack
}

func (f *fakeCatalog) ShowtimeSeats(showtimeId uint) ([]booking.SeatInfo, error) {
	seats, ok := f.seats[showtimeId]
	if !ok {
		return nil, errors.New("suất chiếu không tồn tại")
	}
	return seats, nil
}

func (f *fakeCatalog) Promotion(id uint) (*model.Promotion, error) {
	p, ok := f.promos[id]
	if !ok {
		return nil, errors.New("khuyến mãi không tồn tại")
	}
	return p, nil
}

func (f *fakeCatalog) Ranks() ([]model.MembershipRank, error) { return f.ranks, nil }

func (f *fakeCatalog) CustomerPoints(customerId uint) (int, error) {
	return f.points[customerId], nil
}

func (f *fakeCatalog) Snacks(ids []uint) (map[uint]model.Snack, error) {
	out := make(map[uint]model.Snack)
	for _, id := range ids {
		if s, ok := f.snacks[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type fakeRepo struct {
	mu       sync.Mutex
	nextId   uint
	invoices map[uint]*model.Order
	txns     []model.Payment
	points   map[uint]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{invoices: make(map[uint]*model.Order), points: make(map[uint]int)}
}

func (r *fakeRepo) CreateInvoice(order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextId++
	order.ID = r.nextId
	for i := range order.Tickets {
		order.Tickets[i].OrderId = order.ID
	}
	r.invoices[order.ID] = order
	return nil
}

func (r *fakeRepo) GetInvoice(invoiceId uint) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.invoices[invoiceId]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *order
	return &clone, nil
}

func (r *fakeRepo) setStatus(invoiceId uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.invoices[invoiceId]
	if !ok {
		return errors.New("not found")
	}
	order.Status = status
	return nil
}

func (r *fakeRepo) MarkPaid(invoiceId uint, paidAt time.Time) error {
	if err := r.setStatus(invoiceId, constants.ORDER_PAID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t := paidAt
	r.invoices[invoiceId].PaidAt = &t
	return nil
}

func (r *fakeRepo) MarkFailed(invoiceId uint) error {
	return r.setStatus(invoiceId, constants.ORDER_FAILED)
}

func (r *fakeRepo) FlagMismatch(invoiceId uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.invoices[invoiceId]
	if !ok {
		return errors.New("not found")
	}
	order.PaymentFlagged = true
	return nil
}

func (r *fakeRepo) RecordTransaction(txn *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns = append(r.txns, *txn)
	return nil
}

func (r *fakeRepo) AddPoints(customerId uint, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points[customerId] += points
	return nil
}

func uintPtr(v uint) *uint { return &v }

// Sơ đồ test: suất 7 có ghế thường B5/B6 (id 5, 6) giá 100k, ghế VIP id 8
// giá 120k và cặp ghế đôi id 10+11 (cặp 900) giá cả cặp 300k.
func newTestSetup(t *testing.T) (*booking.Coordinator, *inventory.Store, *fakeCatalog, *fakeRepo, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 14, 18, 0, 0, 0, time.FixedZone("ICT", 7*3600))}

	store := inventory.NewStore(inventory.WithClock(clock.Now))
	pair := uintPtr(900)
	store.RegisterShowtime(7, []inventory.Seat{
		{SeatId: 5, Active: true},
		{SeatId: 6, Active: true},
		{SeatId: 8, Active: true},
		{SeatId: 10, CoupleId: pair, Active: true},
		{SeatId: 11, CoupleId: pair, Active: true},
	})

	pairPrice := func() *uint { v := uint(900); return &v }()
	catalog := &fakeCatalog{
		seats: map[uint][]booking.SeatInfo{
			7: {
				{SeatId: 5, Label: "B5", Type: constants.SEAT_TYPE_NORMAL, Active: true, Price: 100000},
				{SeatId: 6, Label: "B6", Type: constants.SEAT_TYPE_NORMAL, Active: true, Price: 100000},
				{SeatId: 8, Label: "C1", Type: constants.SEAT_TYPE_VIP, Active: true, Price: 120000},
				{SeatId: 10, Label: "H1", Type: constants.SEAT_TYPE_COUPLE, CoupleId: pairPrice, Active: true, Price: 300000},
				{SeatId: 11, Label: "H2", Type: constants.SEAT_TYPE_COUPLE, CoupleId: pairPrice, Active: true, Price: 300000},
			},
		},
		promos: map[uint]*model.Promotion{},
		ranks: []model.MembershipRank{
			{DTO: model.DTO{ID: 1}, Name: "MEMBER", MinPoints: 0, TicketDiscountPercent: 0, SnackDiscountPercent: 0, PointMultiplier: 1},
			{DTO: model.DTO{ID: 2}, Name: "GOLD", MinPoints: 500, TicketDiscountPercent: 10, SnackDiscountPercent: 5, PointMultiplier: 1.5},
		},
		points: map[uint]int{42: 800},
		snacks: map[uint]model.Snack{
			1: {DTO: model.DTO{ID: 1}, Name: "Bắp lớn", Price: 45000, Active: true},
		},
	}

	repo := newFakeRepo()
	coord := booking.New(store, catalog, repo, booking.WithClock(clock.Now))
	return coord, store, catalog, repo, clock
}

// Kịch bản: khách hạng GOLD đặt cặp ghế đôi 300k, giảm 10% vé → trả 270k,
// thanh toán thành công thì cả hai nửa cặp sang BOOKED và hóa đơn PAID.
func TestBookCouplePairWithRankDiscount(t *testing.T) {
	coord, store, _, repo, clock := newTestSetup(t)

	order, err := coord.RequestBooking(7, model.CreateBookingInput{SeatIds: []uint{10}}, uintPtr(42))
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_PENDING, order.Status)
	assert.Equal(t, 300000.0, order.OriginalTotal)
	assert.Equal(t, 270000.0, order.TotalAmount)
	require.Len(t, order.Tickets, 2) // nửa còn lại của cặp được giữ kèm
	require.NotNil(t, order.ExpiresAt)

	paid, err := coord.ConfirmPayment(booking.PaymentNotice{
		InvoiceId: order.ID,
		Amount:    270000,
		Success:   true,
		Method:    "VNPAY",
		PaidAt:    clock.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_PAID, paid.Status)

	for _, seatId := range []uint{10, 11} {
		view, err := store.View(7, seatId)
		require.NoError(t, err)
		assert.Equal(t, inventory.SeatBooked, view.Status)
	}

	// Điểm cộng theo số tiền thực trả: floor(270000/1000) × 1.5 = 405
	assert.Equal(t, 405, repo.points[42])

	// Callback gửi lại lần hai là no-op
	again, err := coord.ConfirmPayment(booking.PaymentNotice{
		InvoiceId: order.ID, Amount: 270000, Success: true, PaidAt: clock.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_PAID, again.Status)
	assert.Equal(t, 405, repo.points[42], "điểm không được cộng hai lần")
}

// Hai khách cùng lao vào ghế B5: đúng một người giữ được, người kia nhận
// lỗi nêu rõ ghế tranh chấp.
func TestConcurrentBookingSameSeat(t *testing.T) {
	coord, _, _, _, _ := newTestSetup(t)

	type result struct {
		order *model.Order
		err   error
	}
	results := make(chan result, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		session := []string{"GUEST_A", "GUEST_B"}[i]
		go func(session string) {
			defer wg.Done()
			order, err := coord.RequestBooking(7, model.CreateBookingInput{
				SeatIds:        []uint{5},
				GuestSessionId: session,
			}, nil)
			results <- result{order, err}
		}(session)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for r := range results {
		if r.err == nil {
			wins++
			assert.Equal(t, constants.ORDER_PENDING, r.order.Status)
		} else {
			losses++
			var unavail *inventory.SeatUnavailableError
			require.ErrorAs(t, r.err, &unavail)
			assert.Contains(t, unavail.SeatIds, uint(5))
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
}

func TestPaymentMismatchFlagsInvoice(t *testing.T) {
	coord, store, _, repo, clock := newTestSetup(t)

	order, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{5}, GuestSessionId: "GUEST_X",
	}, nil)
	require.NoError(t, err)

	_, err = coord.ConfirmPayment(booking.PaymentNotice{
		InvoiceId: order.ID, Amount: 90000, Success: true, PaidAt: clock.Now(),
	})
	require.ErrorIs(t, err, booking.ErrPaymentMismatch)

	stored, _ := repo.GetInvoice(order.ID)
	assert.Equal(t, constants.ORDER_PENDING, stored.Status, "lệch tiền không được tự đánh PAID")
	assert.True(t, stored.PaymentFlagged)

	view, _ := store.View(7, 5)
	assert.Equal(t, inventory.SeatHeld, view.Status, "ghế vẫn giữ chờ đối soát")
}

func TestPaymentToleranceWithinHalfUnit(t *testing.T) {
	coord, _, _, _, clock := newTestSetup(t)

	order, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{5}, GuestSessionId: "GUEST_X",
	}, nil)
	require.NoError(t, err)

	paid, err := coord.ConfirmPayment(booking.PaymentNotice{
		InvoiceId: order.ID, Amount: order.TotalAmount + 0.4, Success: true, PaidAt: clock.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_PAID, paid.Status)
}

func TestConfirmAfterHoldExpiry(t *testing.T) {
	coord, store, _, repo, clock := newTestSetup(t)

	order, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{5}, GuestSessionId: "GUEST_X",
	}, nil)
	require.NoError(t, err)

	clock.Advance(11 * time.Minute)

	_, err = coord.ConfirmPayment(booking.PaymentNotice{
		InvoiceId: order.ID, Amount: order.TotalAmount, Success: true, PaidAt: clock.Now(),
	})
	require.ErrorIs(t, err, inventory.ErrHoldExpired)

	stored, _ := repo.GetInvoice(order.ID)
	assert.Equal(t, constants.ORDER_FAILED, stored.Status)

	view, _ := store.View(7, 5)
	assert.Equal(t, inventory.SeatAvailable, view.Status)
}

func TestFailedPaymentReleasesSeats(t *testing.T) {
	coord, store, _, repo, clock := newTestSetup(t)

	order, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{5, 6}, GuestSessionId: "GUEST_X",
	}, nil)
	require.NoError(t, err)

	failed, err := coord.ConfirmPayment(booking.PaymentNotice{
		InvoiceId: order.ID, Amount: order.TotalAmount, Success: false, PaidAt: clock.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.ORDER_FAILED, failed.Status)

	for _, seatId := range []uint{5, 6} {
		view, _ := store.View(7, seatId)
		assert.Equal(t, inventory.SeatAvailable, view.Status)
	}
	// Giao dịch thất bại vẫn được lưu lại để đối soát
	require.Len(t, repo.txns, 1)
	assert.Equal(t, constants.PAYMENT_FAILED, repo.txns[0].Status)
}

func TestPromotionAppliedOverRankDiscount(t *testing.T) {
	coord, _, catalog, _, clock := newTestSetup(t)

	start := clock.Now().Add(-time.Hour)
	end := clock.Now().Add(time.Hour)
	catalog.promos[3] = &model.Promotion{
		DTO: model.DTO{ID: 3}, Name: "Giảm 20%", DiscountValue: 20,
		StartDate: &start, EndDate: &end, Status: constants.PROMOTION_ACTIVE,
	}

	// Khách GOLD dùng mã khuyến mãi → chỉ áp mã, bỏ qua giảm giá hạng
	order, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{5}, PromotionId: uintPtr(3),
	}, uintPtr(42))
	require.NoError(t, err)
	assert.Equal(t, 100000.0, order.OriginalTotal)
	assert.Equal(t, 80000.0, order.TotalAmount)
	require.NotNil(t, order.PromotionId)
}

func TestExpiredPromotionIgnored(t *testing.T) {
	coord, _, catalog, _, clock := newTestSetup(t)

	start := clock.Now().Add(-48 * time.Hour)
	end := clock.Now().Add(-24 * time.Hour)
	catalog.promos[4] = &model.Promotion{
		DTO: model.DTO{ID: 4}, Name: "Hết hạn", DiscountValue: 50,
		StartDate: &start, EndDate: &end, Status: constants.PROMOTION_ACTIVE,
	}

	order, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{5}, PromotionId: uintPtr(4), GuestSessionId: "GUEST_X",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, order.TotalAmount, "mã hết hạn → đặt vé đi tiếp không giảm giá")
	assert.Nil(t, order.PromotionId)
}

func TestSnackLinesAndRankSnackDiscount(t *testing.T) {
	coord, _, _, _, _ := newTestSetup(t)

	// GOLD: vé VIP 120k giảm 10% = 12k, bắp 2×45k giảm 5% = 4.5k → 193.5k...
	// tiền VND làm tròn nửa-lên: 193500
	order, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{8},
		Snacks:  []model.SnackLineInput{{SnackId: 1, Quantity: 2}},
	}, uintPtr(42))
	require.NoError(t, err)
	assert.Equal(t, 210000.0, order.OriginalTotal)
	assert.Equal(t, 193500.0, order.TotalAmount)
	require.Len(t, order.Snacks, 1)
	assert.Equal(t, 45000.0, order.Snacks[0].Price)
}

func TestUnknownSnackRejectedAndSeatsFreed(t *testing.T) {
	coord, store, _, _, _ := newTestSetup(t)

	_, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds:        []uint{5},
		Snacks:         []model.SnackLineInput{{SnackId: 99, Quantity: 1}},
		GuestSessionId: "GUEST_X",
	}, nil)
	require.ErrorIs(t, err, booking.ErrUnknownSnack)

	view, _ := store.View(7, 5)
	assert.Equal(t, inventory.SeatAvailable, view.Status, "đặt hỏng không được để hold lơ lửng")
}

func TestInvalidSeatRejectedBeforeHold(t *testing.T) {
	coord, _, _, _, _ := newTestSetup(t)

	_, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{5, 77}, GuestSessionId: "GUEST_X",
	}, nil)
	var invalid *inventory.InvalidSeatError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.SeatIds, uint(77))
}

func TestReleaseBooking(t *testing.T) {
	coord, store, _, repo, _ := newTestSetup(t)

	order, err := coord.RequestBooking(7, model.CreateBookingInput{
		SeatIds: []uint{5}, GuestSessionId: "GUEST_X",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, coord.ReleaseBooking(order.ID))

	stored, _ := repo.GetInvoice(order.ID)
	assert.Equal(t, constants.ORDER_FAILED, stored.Status)
	view, _ := store.View(7, 5)
	assert.Equal(t, inventory.SeatAvailable, view.Status)

	// Hóa đơn đã chốt thì không release lần nữa
	assert.ErrorIs(t, coord.ReleaseBooking(order.ID), booking.ErrInvoiceNotPending)
}
