package inventory

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

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
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC)}
	s := NewStore(WithHoldTTL(5*time.Minute), WithClock(clk.Now))

	coupleId := uint(900)
	s.RegisterShowtime(1, []Seat{
		{SeatId: 1, Active: true},
		{SeatId: 2, Active: true},
		{SeatId: 3, Active: true},
		{SeatId: 10, Active: true, CoupleId: &coupleId},
		{SeatId: 11, Active: true, CoupleId: &coupleId},
		{SeatId: 20, Active: false},
	})
	return s, clk
}

func TestHoldThenBook(t *testing.T) {
	s, _ := newTestStore(t)

	exp, err := s.Hold(1, []uint{1, 2}, "USER_7")
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	require.NoError(t, s.Book(1, []uint{1, 2}, "USER_7", 42))

	v, err := s.View(1, 1)
	require.NoError(t, err)
	assert.Equal(t, SeatBooked, v.Status)

	// Ghế đã bán không giữ lại được
	_, err = s.Hold(1, []uint{1}, "USER_8")
	var unavailable *SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []uint{1}, unavailable.SeatIds)
}

func TestHoldAllOrNothing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Hold(1, []uint{2}, "USER_1")
	require.NoError(t, err)

	// Yêu cầu chồng lên ghế đang giữ: không ghế nào được giữ thêm
	_, err = s.Hold(1, []uint{1, 2, 3}, "USER_2")
	var unavailable *SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []uint{2}, unavailable.SeatIds)

	for _, id := range []uint{1, 3} {
		v, err := s.View(1, id)
		require.NoError(t, err)
		assert.Equal(t, SeatAvailable, v.Status, "seat %d must not be left held", id)
	}
}

func TestInactiveAndUnknownSeats(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Hold(1, []uint{20}, "USER_1")
	var invalid *InvalidSeatError
	require.ErrorAs(t, err, &invalid)

	_, err = s.Hold(1, []uint{999}, "USER_1")
	require.ErrorAs(t, err, &invalid)

	_, err = s.Hold(77, []uint{1}, "USER_1")
	assert.ErrorIs(t, err, ErrShowtimeUnknown)
}

// P1: N yêu cầu đồng thời cho cùng một ghế – đúng một yêu cầu thành công
func TestConcurrentHoldsSingleWinner(t *testing.T) {
	s, _ := newTestStore(t)

	const n = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Hold(1, []uint{3}, fmt.Sprintf("USER_%d", i))
			if err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			} else {
				var unavailable *SeatUnavailableError
				assert.ErrorAs(t, err, &unavailable)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

// P2: ghế đôi luôn cùng trạng thái, yêu cầu một nửa cặp bị từ chối
func TestPairAtomicity(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Hold(1, []uint{10}, "USER_1")
	var invalid *InvalidSeatError
	require.ErrorAs(t, err, &invalid)

	expanded, err := s.ExpandPairs(1, []uint{10})
	require.NoError(t, err)
	assert.Equal(t, []uint{10, 11}, expanded)

	_, err = s.Hold(1, expanded, "USER_1")
	require.NoError(t, err)

	a, _ := s.View(1, 10)
	b, _ := s.View(1, 11)
	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.HeldBy, b.HeldBy)

	// Nửa cặp bị người khác giữ → cả yêu cầu bị từ chối
	_, err = s.Hold(1, expanded, "USER_2")
	var unavailable *SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)

	require.NoError(t, s.Book(1, expanded, "USER_1", 7))
	a, _ = s.View(1, 10)
	b, _ = s.View(1, 11)
	assert.Equal(t, SeatBooked, a.Status)
	assert.Equal(t, SeatBooked, b.Status)
}

func TestReleaseRequiresHolder(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Hold(1, []uint{1}, "USER_1")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Release(1, []uint{1}, "USER_2"), ErrNotHolder)
	require.NoError(t, s.Release(1, []uint{1}, "USER_1"))

	v, _ := s.View(1, 1)
	assert.Equal(t, SeatAvailable, v.Status)
}

// P6: hold hết hạn được coi là AVAILABLE ngay lần truy cập kế tiếp,
// xác nhận thanh toán đến muộn bị từ chối với ErrHoldExpired
func TestHoldExpiryIsLazy(t *testing.T) {
	s, clk := newTestStore(t)

	_, err := s.Hold(1, []uint{1}, "USER_1")
	require.NoError(t, err)

	clk.Advance(5*time.Minute + time.Second)

	v, err := s.View(1, 1)
	require.NoError(t, err)
	assert.Equal(t, SeatAvailable, v.Status)

	// Xác nhận muộn → đặt lại từ đầu, không gia hạn ngầm
	err = s.Book(1, []uint{1}, "USER_1", 42)
	assert.ErrorIs(t, err, ErrHoldExpired)

	// Người khác giữ được ngay, không cần worker quét
	_, err = s.Hold(1, []uint{1}, "USER_2")
	assert.NoError(t, err)
}

func TestStaleHolderCannotBookAfterReacquire(t *testing.T) {
	s, clk := newTestStore(t)

	_, err := s.Hold(1, []uint{1}, "USER_1")
	require.NoError(t, err)

	clk.Advance(6 * time.Minute)

	_, err = s.Hold(1, []uint{1}, "USER_2")
	require.NoError(t, err)

	// Hold cũ của USER_1 không được "nâng cấp" thành booking
	err = s.Book(1, []uint{1}, "USER_1", 42)
	assert.ErrorIs(t, err, ErrNotHolder)
}

func TestReapExpired(t *testing.T) {
	s, clk := newTestStore(t)

	_, err := s.Hold(1, []uint{1, 2}, "USER_1")
	require.NoError(t, err)
	expanded, _ := s.ExpandPairs(1, []uint{10})
	_, err = s.Hold(1, expanded, "USER_2")
	require.NoError(t, err)
	require.NoError(t, s.Book(1, expanded, "USER_2", 9))

	clk.Advance(10 * time.Minute)

	freed := s.ReapExpired()
	assert.Equal(t, []uint{1, 2}, freed[1])

	// Ghế đã BOOKED không bao giờ bị reaper động vào
	v, _ := s.View(1, 10)
	assert.Equal(t, SeatBooked, v.Status)
}

func TestCancelBookingFreesSeats(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Hold(1, []uint{1, 2}, "USER_1")
	require.NoError(t, err)
	require.NoError(t, s.Book(1, []uint{1, 2}, "USER_1", 42))

	freed, err := s.CancelBooking(1, 42)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, freed)

	_, err = s.Hold(1, []uint{1, 2}, "USER_3")
	assert.NoError(t, err)
}

func TestDropShowtime(t *testing.T) {
	s, _ := newTestStore(t)

	s.DropShowtime(1)
	_, err := s.Snapshot(1)
	assert.True(t, errors.Is(err, ErrShowtimeUnknown))
}
