package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/meinhoongagan/harmony-booking/availability"
)

// memStore is an in-memory Store. WithSlotLock is a single mutex, which is a
// stricter version of the per-(staff, date) serialization the Postgres store
// provides with advisory locks; the Creator contract is the same.
type memStore struct {
	mu sync.Mutex

	hours    Hours
	services map[uint]availability.Service
	staff    map[uint]bool // staff working at the business
	shifts   map[uint]*availability.Shift
	leaves   map[uint]*availability.Leave

	nextID      uint
	inserted    []NewBooking
	insertedIDs []uint
	assigned    map[uint]uint // booking id -> staff id
}

func newMemStore(t *testing.T) *memStore {
	t.Helper()
	open, _ := availability.ParseTimeOfDay("09:00")
	closeT, _ := availability.ParseTimeOfDay("17:00")
	shiftStart, _ := availability.ParseTimeOfDay("09:00")
	shiftEnd, _ := availability.ParseTimeOfDay("17:00")
	return &memStore{
		hours: Hours{Open: open, Close: closeT},
		services: map[uint]availability.Service{
			1: {ID: 1, BusinessID: 1, Duration: 30},
			2: {ID: 2, BusinessID: 1, Duration: 45},
		},
		staff:  map[uint]bool{7: true},
		shifts: map[uint]*availability.Shift{7: {Start: shiftStart, End: shiftEnd}},
		leaves:   map[uint]*availability.Leave{},
		nextID:   100,
		assigned: map[uint]uint{},
	}
}

func (m *memStore) Hours(ctx context.Context, businessID uint) (Hours, error) {
	if businessID != 1 {
		return Hours{}, ErrBusinessNotFound
	}
	return m.hours, nil
}

func (m *memStore) ServicesForBusiness(ctx context.Context, serviceIDs []uint, businessID uint) ([]availability.Service, error) {
	var out []availability.Service
	for _, id := range serviceIDs {
		if s, ok := m.services[id]; ok && s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) StaffWorksAt(ctx context.Context, staffID, businessID uint) (bool, error) {
	return m.staff[staffID], nil
}

func (m *memStore) ShiftFor(ctx context.Context, staffID, businessID uint, date time.Time) (*availability.Shift, error) {
	return m.shifts[staffID], nil
}

func (m *memStore) LeaveFor(ctx context.Context, staffID, businessID uint, date time.Time) (*availability.Leave, error) {
	return m.leaves[staffID], nil
}

func (m *memStore) ActiveBookingsFor(ctx context.Context, staffID, businessID uint, date time.Time) ([]availability.BookingSlot, error) {
	var slots []availability.BookingSlot
	for i, nb := range m.inserted {
		assignee := uint(0)
		if nb.StaffID != nil {
			assignee = *nb.StaffID
		}
		if a, ok := m.assigned[m.insertedIDs[i]]; ok {
			assignee = a
		}
		if assignee != staffID || !nb.Date.Equal(date) {
			continue
		}
		duration := 0
		for _, s := range nb.Services {
			duration += s.Duration
		}
		slots = append(slots, availability.BookingSlot{
			ID:       m.insertedIDs[i],
			Start:    nb.Time,
			Duration: duration,
		})
	}
	return slots, nil
}

func (m *memStore) InsertBooking(ctx context.Context, nb NewBooking) (uint, error) {
	m.nextID++
	m.inserted = append(m.inserted, nb)
	m.insertedIDs = append(m.insertedIDs, m.nextID)
	return m.nextID, nil
}

func (m *memStore) AssignStaff(ctx context.Context, bookingID, staffID uint) error {
	m.assigned[bookingID] = staffID
	return nil
}

func (m *memStore) WithSlotLock(ctx context.Context, staffID uint, date time.Time, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m)
}

func staffID(id uint) *uint { return &id }

func testRequest(t *testing.T) Request {
	t.Helper()
	at, _ := availability.ParseTimeOfDay("10:00")
	return Request{
		UserID:     3,
		BusinessID: 1,
		Date:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Time:       at,
		ServiceIDs: []uint{1},
		StaffID:    staffID(7),
	}
}

func TestCreate_PersistsSnapshot(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)

	req := testRequest(t)
	req.ServiceIDs = []uint{1, 2}

	id, err := creator.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected booking id")
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(store.inserted))
	}
	nb := store.inserted[0]
	if len(nb.Services) != 2 || nb.Services[0].Duration != 30 || nb.Services[1].Duration != 45 {
		t.Fatalf("expected duration snapshots 30 and 45, got %+v", nb.Services)
	}
	if nb.StaffID == nil || *nb.StaffID != 7 {
		t.Fatalf("expected staff assignment 7, got %+v", nb.StaffID)
	}
}

func TestCreate_UnknownBusiness(t *testing.T) {
	creator := NewCreator(newMemStore(t))
	req := testRequest(t)
	req.BusinessID = 42

	if _, err := creator.Create(context.Background(), req); err != ErrBusinessNotFound {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

func TestCreate_ForeignServiceRejected(t *testing.T) {
	creator := NewCreator(newMemStore(t))
	req := testRequest(t)
	req.ServiceIDs = []uint{1, 99}

	_, err := creator.Create(context.Background(), req)
	rej, ok := AsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rej.Reason != availability.ReasonInvalidServiceSelection {
		t.Fatalf("expected invalid service selection, got %s", rej.Reason)
	}
}

func TestCreate_StaffNotEmployed(t *testing.T) {
	creator := NewCreator(newMemStore(t))
	req := testRequest(t)
	req.StaffID = staffID(99)

	if _, err := creator.Create(context.Background(), req); err != ErrStaffNotEmployed {
		t.Fatalf("expected ErrStaffNotEmployed, got %v", err)
	}
}

func TestCreate_ConflictRejected(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)
	ctx := context.Background()

	if _, err := creator.Create(ctx, testRequest(t)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same staff, overlapping start.
	req := testRequest(t)
	at, _ := availability.ParseTimeOfDay("10:15")
	req.Time = at

	_, err := creator.Create(ctx, req)
	rej, ok := AsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rej.Reason != availability.ReasonStaffDoubleBooked {
		t.Fatalf("expected staff double booked, got %s", rej.Reason)
	}
}

func TestCreate_BackToBackAccepted(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)
	ctx := context.Background()

	if _, err := creator.Create(ctx, testRequest(t)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	req := testRequest(t)
	at, _ := availability.ParseTimeOfDay("10:30")
	req.Time = at

	if _, err := creator.Create(ctx, req); err != nil {
		t.Fatalf("back-to-back create: %v", err)
	}
}

func TestCreate_NoStaffSkipsConflictScan(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)
	ctx := context.Background()

	// Two bookings at the same time with no staff attached both go through.
	req := testRequest(t)
	req.StaffID = nil
	if _, err := creator.Create(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := creator.Create(ctx, req); err != nil {
		t.Fatalf("second create: %v", err)
	}
}

// TestCreate_ConcurrentSameSlot drives N identical requests through the
// creator at once. The slot lock serializes the scan-then-insert sequence, so
// exactly one must win and the rest must be rejected as double bookings.
func TestCreate_ConcurrentSameSlot(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)

	const n = 16
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = creator.Create(context.Background(), testRequest(t))
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		rej, ok := AsRejection(err)
		if !ok {
			t.Fatalf("unexpected error: %v", err)
		}
		if rej.Reason != availability.ReasonStaffDoubleBooked {
			t.Fatalf("expected staff double booked, got %s", rej.Reason)
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly 1 accepted booking, got %d", accepted)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected exactly 1 insert, got %d", len(store.inserted))
	}
}

func testReassign(t *testing.T, bookingID uint) ReassignRequest {
	t.Helper()
	at, _ := availability.ParseTimeOfDay("10:00")
	return ReassignRequest{
		BookingID:  bookingID,
		BusinessID: 1,
		Date:       time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Time:       at,
		Services:   []availability.Service{{ID: 1, BusinessID: 1, Duration: 30}},
		StaffID:    7,
	}
}

func TestReassign_OwnSlotDoesNotBlock(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)
	ctx := context.Background()

	id, err := creator.Create(ctx, testRequest(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Moving the booking onto the staff member it already occupies must not
	// collide with itself.
	if err := creator.Reassign(ctx, testReassign(t, id)); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if store.assigned[id] != 7 {
		t.Fatalf("expected booking %d assigned to staff 7, got %d", id, store.assigned[id])
	}
}

func TestReassign_SameStartConflictRejected(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)
	ctx := context.Background()

	// Staff 7 already holds a booking at 10:00.
	if _, err := creator.Create(ctx, testRequest(t)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// A second booking at the same time, created without staff.
	req := testRequest(t)
	req.StaffID = nil
	id, err := creator.Create(ctx, req)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	// Moving the second booking onto staff 7 must reject: the conflicting
	// booking starts at the identical time but is a different booking.
	err = creator.Reassign(ctx, testReassign(t, id))
	rej, ok := AsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rej.Reason != availability.ReasonStaffDoubleBooked {
		t.Fatalf("expected staff double booked, got %s", rej.Reason)
	}
	if _, assigned := store.assigned[id]; assigned {
		t.Fatalf("rejected reassignment must not persist")
	}
}

func TestReassign_StaffNotEmployed(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)
	ctx := context.Background()

	id, err := creator.Create(ctx, testRequest(t))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := testReassign(t, id)
	req.StaffID = 99
	if err := creator.Reassign(ctx, req); err != ErrStaffNotEmployed {
		t.Fatalf("expected ErrStaffNotEmployed, got %v", err)
	}
}

func TestAvailableSlots_ExcludesBookedInterval(t *testing.T) {
	store := newMemStore(t)
	creator := NewCreator(store)
	ctx := context.Background()

	if _, err := creator.Create(ctx, testRequest(t)); err != nil {
		t.Fatalf("create: %v", err)
	}

	slots, err := creator.AvailableSlots(ctx, testRequest(t), 30)
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	for _, s := range slots {
		if s.String() == "10:00" {
			t.Fatalf("expected 10:00 to be excluded, got %v", slots)
		}
	}
	found := false
	for _, s := range slots {
		if s.String() == "10:30" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 10:30 in slots, got %v", slots)
	}
}
