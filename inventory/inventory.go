package inventory

import (
	"sort"
	"sync"
	"time"
)

const (
	SeatAvailable = "AVAILABLE"
	SeatHeld      = "HELD"
	SeatBooked    = "BOOKED"
)

const DefaultHoldTimeout = 10 * time.Minute

// Seat là thông tin sơ đồ phòng cần cho máy trạng thái
type Seat struct {
	SeatId   uint
	CoupleId *uint // hai ghế đôi chung CoupleId luôn chuyển trạng thái cùng nhau
	Active   bool  // ghế tắt bán không giữ/đặt được
}

type seatState struct {
	seat      Seat
	status    string
	heldBy    string
	expiresAt time.Time
	invoiceId uint
}

// SeatView là ảnh chụp trạng thái một ghế để hiển thị
type SeatView struct {
	SeatId    uint       `json:"seatId"`
	Status    string     `json:"status"`
	HeldBy    string     `json:"heldBy,omitempty"`
	ExpiredAt *time.Time `json:"expiredAt,omitempty"`
	CoupleId  *uint      `json:"coupleId,omitempty"`
}

// showtimeTable giữ trạng thái ghế của một suất chiếu, khóa riêng từng suất
// để các suất khác nhau đặt vé song song không tranh chấp nhau
type showtimeTable struct {
	mu    sync.Mutex
	seats map[uint]*seatState
	pairs map[uint][]uint // CoupleId -> hai seatId của cặp
}

// Store là nguồn sự thật trạng thái ghế theo (suất chiếu, ghế).
// Mọi chuyển trạng thái trên một suất là tuần tự (linearizable) vì
// đi qua mutex của suất đó.
type Store struct {
	mu        sync.RWMutex
	showtimes map[uint]*showtimeTable
	holdTTL   time.Duration
	now       func() time.Time
}

type Option func(*Store)

// WithHoldTTL đổi thời gian giữ ghế mặc định
func WithHoldTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// WithClock tiêm đồng hồ (phục vụ test hết hạn)
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		showtimes: make(map[uint]*showtimeTable),
		holdTTL:   DefaultHoldTimeout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) HoldTTL() time.Duration { return s.holdTTL }

// RegisterShowtime khởi tạo bảng ghế cho suất chiếu từ sơ đồ phòng.
// Gọi lại với cùng showtimeId sẽ thay toàn bộ trạng thái (tạo lại suất).
func (s *Store) RegisterShowtime(showtimeId uint, seats []Seat) {
	t := &showtimeTable{
		seats: make(map[uint]*seatState, len(seats)),
		pairs: make(map[uint][]uint),
	}
	for _, seat := range seats {
		t.seats[seat.SeatId] = &seatState{seat: seat, status: SeatAvailable}
		if seat.CoupleId != nil {
			t.pairs[*seat.CoupleId] = append(t.pairs[*seat.CoupleId], seat.SeatId)
		}
	}
	s.mu.Lock()
	s.showtimes[showtimeId] = t
	s.mu.Unlock()
}

// RestoreBooked đặt thẳng một ghế vào trạng thái BOOKED, dùng khi dựng lại
// kho từ hóa đơn đã thanh toán lúc server khởi động
func (s *Store) RestoreBooked(showtimeId uint, seatId uint, invoiceId uint) {
	t, err := s.table(showtimeId)
	if err != nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.seats[seatId]; ok {
		st.status = SeatBooked
		st.heldBy = ""
		st.invoiceId = invoiceId
	}
}

// DropShowtime xóa suất chiếu khỏi store (suất bị hủy/hết hạn)
func (s *Store) DropShowtime(showtimeId uint) {
	s.mu.Lock()
	delete(s.showtimes, showtimeId)
	s.mu.Unlock()
}

func (s *Store) table(showtimeId uint) (*showtimeTable, error) {
	s.mu.RLock()
	t, ok := s.showtimes[showtimeId]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrShowtimeUnknown
	}
	return t, nil
}

// expired kiểm tra hold quá hạn – hết hạn được xử lý "lười" tại lần truy cập
// kế tiếp, không phụ thuộc worker quét nền
func (st *seatState) expiredAt(now time.Time) bool {
	return st.status == SeatHeld && now.After(st.expiresAt)
}

// ExpandPairs bổ sung nửa còn lại của mỗi ghế đôi vào danh sách yêu cầu
func (s *Store) ExpandPairs(showtimeId uint, seatIds []uint) ([]uint, error) {
	t, err := s.table(showtimeId)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	seen := make(map[uint]bool, len(seatIds))
	out := make([]uint, 0, len(seatIds))
	add := func(id uint) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range seatIds {
		st, ok := t.seats[id]
		if !ok {
			return nil, &InvalidSeatError{SeatIds: []uint{id}, Reason: "không thuộc suất chiếu"}
		}
		add(id)
		if st.seat.CoupleId != nil {
			for _, partner := range t.pairs[*st.seat.CoupleId] {
				add(partner)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Hold giữ nguyên tử toàn bộ ghế yêu cầu: hoặc tất cả sang HELD, hoặc không
// ghế nào đổi trạng thái. Yêu cầu chứa một nửa ghế đôi mà thiếu nửa kia sẽ
// bị từ chối (caller phải ExpandPairs trước).
func (s *Store) Hold(showtimeId uint, seatIds []uint, holder string) (time.Time, error) {
	t, err := s.table(showtimeId)
	if err != nil {
		return time.Time{}, err
	}
	now := s.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	requested := make(map[uint]bool, len(seatIds))
	for _, id := range seatIds {
		requested[id] = true
	}

	var invalid, unavailable []uint
	for _, id := range seatIds {
		st, ok := t.seats[id]
		if !ok || !st.seat.Active {
			invalid = append(invalid, id)
			continue
		}
		// Ghế đôi: nửa còn lại phải có mặt trong cùng yêu cầu
		if st.seat.CoupleId != nil {
			for _, partner := range t.pairs[*st.seat.CoupleId] {
				if !requested[partner] {
					return time.Time{}, &InvalidSeatError{
						SeatIds: []uint{id},
						Reason:  "ghế đôi phải được giữ cả cặp",
					}
				}
			}
		}
		if st.status == SeatBooked || (st.status == SeatHeld && !st.expiredAt(now)) {
			unavailable = append(unavailable, id)
		}
	}
	if len(invalid) > 0 {
		return time.Time{}, &InvalidSeatError{SeatIds: invalid, Reason: "ghế không tồn tại hoặc đã tắt bán"}
	}
	if len(unavailable) > 0 {
		return time.Time{}, &SeatUnavailableError{SeatIds: unavailable}
	}

	// Tất cả khả dụng – chuyển trạng thái trong cùng một critical section,
	// không có hold lơ lửng khi thất bại
	exp := now.Add(s.holdTTL)
	for _, id := range seatIds {
		st := t.seats[id]
		st.status = SeatHeld
		st.heldBy = holder
		st.expiresAt = exp
		st.invoiceId = 0
	}
	return exp, nil
}

// Release trả ghế về AVAILABLE. Chỉ người đang giữ mới trả được; hold đã
// hết hạn trả tự do (trạng thái đằng nào cũng đã là khả dụng).
func (s *Store) Release(showtimeId uint, seatIds []uint, holder string) error {
	t, err := s.table(showtimeId)
	if err != nil {
		return err
	}
	now := s.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range seatIds {
		st, ok := t.seats[id]
		if !ok {
			return &InvalidSeatError{SeatIds: []uint{id}, Reason: "không thuộc suất chiếu"}
		}
		if st.status == SeatHeld && !st.expiredAt(now) && st.heldBy != holder {
			return ErrNotHolder
		}
		if st.status == SeatBooked {
			return &SeatUnavailableError{SeatIds: []uint{id}}
		}
	}
	for _, id := range seatIds {
		st := t.seats[id]
		if st.status == SeatHeld {
			st.status = SeatAvailable
			st.heldBy = ""
			st.expiresAt = time.Time{}
		}
	}
	return nil
}

// Book chuyển HELD → BOOKED khi thanh toán được xác nhận. Tất cả ghế phải
// đang được holder giữ và hold chưa hết hạn; hold quá hạn bị từ chối với
// ErrHoldExpired, không bao giờ được âm thầm gia hạn.
func (s *Store) Book(showtimeId uint, seatIds []uint, holder string, invoiceId uint) error {
	t, err := s.table(showtimeId)
	if err != nil {
		return err
	}
	now := s.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range seatIds {
		st, ok := t.seats[id]
		if !ok {
			return &InvalidSeatError{SeatIds: []uint{id}, Reason: "không thuộc suất chiếu"}
		}
		switch {
		case st.status == SeatBooked:
			return &SeatUnavailableError{SeatIds: []uint{id}}
		case st.status != SeatHeld:
			return ErrHoldExpired
		case st.expiredAt(now):
			return ErrHoldExpired
		case st.heldBy != holder:
			return ErrNotHolder
		}
	}
	for _, id := range seatIds {
		st := t.seats[id]
		st.status = SeatBooked
		st.heldBy = ""
		st.expiresAt = time.Time{}
		st.invoiceId = invoiceId
	}
	return nil
}

// CancelBooking trả ghế BOOKED về AVAILABLE – chỉ dành cho luồng hủy/hoàn vé
// của quản trị, không bao giờ tự động
func (s *Store) CancelBooking(showtimeId uint, invoiceId uint) ([]uint, error) {
	t, err := s.table(showtimeId)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var freed []uint
	for id, st := range t.seats {
		if st.status == SeatBooked && st.invoiceId == invoiceId {
			st.status = SeatAvailable
			st.invoiceId = 0
			freed = append(freed, id)
		}
	}
	sort.Slice(freed, func(i, j int) bool { return freed[i] < freed[j] })
	return freed, nil
}

// View trả về ảnh chụp một ghế; hold quá hạn hiển thị là AVAILABLE
func (s *Store) View(showtimeId, seatId uint) (SeatView, error) {
	t, err := s.table(showtimeId)
	if err != nil {
		return SeatView{}, err
	}
	now := s.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.seats[seatId]
	if !ok {
		return SeatView{}, &InvalidSeatError{SeatIds: []uint{seatId}, Reason: "không thuộc suất chiếu"}
	}
	return viewOf(st, now), nil
}

// Snapshot trả về toàn bộ trạng thái ghế của một suất để hiển thị sơ đồ
func (s *Store) Snapshot(showtimeId uint) ([]SeatView, error) {
	t, err := s.table(showtimeId)
	if err != nil {
		return nil, err
	}
	now := s.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	views := make([]SeatView, 0, len(t.seats))
	for _, st := range t.seats {
		views = append(views, viewOf(st, now))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].SeatId < views[j].SeatId })
	return views, nil
}

func viewOf(st *seatState, now time.Time) SeatView {
	v := SeatView{SeatId: st.seat.SeatId, Status: st.status, CoupleId: st.seat.CoupleId}
	if st.status == SeatHeld {
		if st.expiredAt(now) {
			v.Status = SeatAvailable
		} else {
			v.HeldBy = st.heldBy
			exp := st.expiresAt
			v.ExpiredAt = &exp
		}
	}
	return v
}

// ReapExpired chủ động trả ghế có hold quá hạn về AVAILABLE và trả về danh
// sách ghế vừa giải phóng theo suất. Đây chỉ là tối ưu cho danh sách ghế –
// tính đúng đắn đã được bảo đảm bởi kiểm tra hết hạn tại chỗ.
func (s *Store) ReapExpired() map[uint][]uint {
	s.mu.RLock()
	ids := make([]uint, 0, len(s.showtimes))
	tables := make([]*showtimeTable, 0, len(s.showtimes))
	for id, t := range s.showtimes {
		ids = append(ids, id)
		tables = append(tables, t)
	}
	s.mu.RUnlock()

	now := s.now()
	freed := make(map[uint][]uint)
	for i, t := range tables {
		t.mu.Lock()
		for seatId, st := range t.seats {
			if st.expiredAt(now) {
				st.status = SeatAvailable
				st.heldBy = ""
				st.expiresAt = time.Time{}
				freed[ids[i]] = append(freed[ids[i]], seatId)
			}
		}
		t.mu.Unlock()
	}
	for _, seats := range freed {
		sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
	}
	return freed
}
