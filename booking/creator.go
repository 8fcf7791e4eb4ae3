package booking

import (
	"context"
	"time"

	"github.com/meinhoongagan/harmony-booking/availability"
)

// Request is a validated booking request. Controllers build it from the
// request body after type checking, so everything here already satisfies the
// data model invariants.
type Request struct {
	UserID     uint
	BusinessID uint
	Date       time.Time
	Time       availability.TimeOfDay
	ServiceIDs []uint
	StaffID    *uint
}

// Creator is the booking lifecycle manager: it gathers the facts the
// availability resolver needs, asks for a decision, and persists accepted
// bookings. All decision logic lives in the availability package; Creator is
// the glue around it.
type Creator struct {
	store Store
}

func NewCreator(store Store) *Creator {
	return &Creator{store: store}
}

// Create resolves and persists a booking. On rejection the returned error is
// a *Rejection carrying the reason; store failures propagate as-is.
//
// Fact gathering, the resolve call and the insert all run inside the store's
// per-(staff, date) critical section, so two concurrent requests for the same
// staff and slot cannot both pass the overlap scan.
func (c *Creator) Create(ctx context.Context, req Request) (uint, error) {
	hours, err := c.store.Hours(ctx, req.BusinessID)
	if err != nil {
		return 0, err
	}

	services, err := c.store.ServicesForBusiness(ctx, req.ServiceIDs, req.BusinessID)
	if err != nil {
		return 0, err
	}
	if len(req.ServiceIDs) == 0 || len(services) != len(req.ServiceIDs) {
		return 0, &Rejection{Reason: availability.ReasonInvalidServiceSelection}
	}

	lockStaff := uint(0)
	if req.StaffID != nil {
		works, err := c.store.StaffWorksAt(ctx, *req.StaffID, req.BusinessID)
		if err != nil {
			return 0, err
		}
		if !works {
			return 0, ErrStaffNotEmployed
		}
		lockStaff = *req.StaffID
	}

	var bookingID uint
	err = c.store.WithSlotLock(ctx, lockStaff, req.Date, func(s Store) error {
		facts, err := gatherStaffFacts(ctx, s, req)
		if err != nil {
			return err
		}

		result := availability.Resolve(availability.Request{
			BusinessID: req.BusinessID,
			OpenTime:   hours.Open,
			CloseTime:  hours.Close,
			Time:       req.Time,
			Services:   services,
			StaffID:    req.StaffID,
			Shift:      facts.shift,
			Leave:      facts.leave,
			Existing:   facts.existing,
		})
		if !result.Accepted {
			return &Rejection{Reason: result.Reason}
		}

		bookingID, err = s.InsertBooking(ctx, NewBooking{
			UserID:     req.UserID,
			BusinessID: req.BusinessID,
			Date:       req.Date,
			Time:       req.Time,
			Services:   services,
			StaffID:    req.StaffID,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return bookingID, nil
}

// ReassignRequest moves an existing booking to a staff member. Date, Time and
// Services come from the stored booking, so the availability checks run
// against the slot the booking already occupies.
type ReassignRequest struct {
	BookingID  uint
	BusinessID uint
	Date       time.Time
	Time       availability.TimeOfDay
	Services   []availability.Service
	StaffID    uint
}

// Reassign re-runs the availability checks for the target staff member and
// persists the assignment. The booking's own slot is excluded from the
// conflict scan by booking id, so a different booking at the same start time
// still rejects. Runs inside the same critical section the create path uses.
func (c *Creator) Reassign(ctx context.Context, req ReassignRequest) error {
	works, err := c.store.StaffWorksAt(ctx, req.StaffID, req.BusinessID)
	if err != nil {
		return err
	}
	if !works {
		return ErrStaffNotEmployed
	}

	hours, err := c.store.Hours(ctx, req.BusinessID)
	if err != nil {
		return err
	}

	return c.store.WithSlotLock(ctx, req.StaffID, req.Date, func(s Store) error {
		shift, err := s.ShiftFor(ctx, req.StaffID, req.BusinessID, req.Date)
		if err != nil {
			return err
		}
		leave, err := s.LeaveFor(ctx, req.StaffID, req.BusinessID, req.Date)
		if err != nil {
			return err
		}
		existing, err := s.ActiveBookingsFor(ctx, req.StaffID, req.BusinessID, req.Date)
		if err != nil {
			return err
		}

		others := make([]availability.BookingSlot, 0, len(existing))
		for _, slot := range existing {
			if slot.ID != req.BookingID {
				others = append(others, slot)
			}
		}

		staff := req.StaffID
		result := availability.Resolve(availability.Request{
			BusinessID: req.BusinessID,
			OpenTime:   hours.Open,
			CloseTime:  hours.Close,
			Time:       req.Time,
			Services:   req.Services,
			StaffID:    &staff,
			Shift:      shift,
			Leave:      leave,
			Existing:   others,
		})
		if !result.Accepted {
			return &Rejection{Reason: result.Reason}
		}

		return s.AssignStaff(ctx, req.BookingID, req.StaffID)
	})
}

// AvailableSlots lists the start times the resolver would accept for the
// request on the requested date, stepping through the day in step-minute
// increments. Facts are read outside any lock; the create path re-checks.
func (c *Creator) AvailableSlots(ctx context.Context, req Request, step int) ([]availability.TimeOfDay, error) {
	hours, err := c.store.Hours(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	services, err := c.store.ServicesForBusiness(ctx, req.ServiceIDs, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if len(req.ServiceIDs) == 0 || len(services) != len(req.ServiceIDs) {
		return nil, &Rejection{Reason: availability.ReasonInvalidServiceSelection}
	}

	facts, err := gatherStaffFacts(ctx, c.store, req)
	if err != nil {
		return nil, err
	}

	return availability.FreeSlots(availability.Request{
		BusinessID: req.BusinessID,
		OpenTime:   hours.Open,
		CloseTime:  hours.Close,
		Services:   services,
		StaffID:    req.StaffID,
		Shift:      facts.shift,
		Leave:      facts.leave,
		Existing:   facts.existing,
	}, step), nil
}

type staffFacts struct {
	shift    *availability.Shift
	leave    *availability.Leave
	existing []availability.BookingSlot
}

func gatherStaffFacts(ctx context.Context, s Store, req Request) (staffFacts, error) {
	var facts staffFacts
	if req.StaffID == nil {
		return facts, nil
	}

	shift, err := s.ShiftFor(ctx, *req.StaffID, req.BusinessID, req.Date)
	if err != nil {
		return facts, err
	}
	leave, err := s.LeaveFor(ctx, *req.StaffID, req.BusinessID, req.Date)
	if err != nil {
		return facts, err
	}
	existing, err := s.ActiveBookingsFor(ctx, *req.StaffID, req.BusinessID, req.Date)
	if err != nil {
		return facts, err
	}

	facts.shift = shift
	facts.leave = leave
	facts.existing = existing
	return facts, nil
}
