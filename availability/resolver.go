package availability

// Reason identifies why a booking request was rejected. Rejections are
// expected business outcomes, not errors: callers must not retry without
// changing the request.
type Reason string

const (
	ReasonInvalidServiceSelection Reason = "invalid_service_selection"
	ReasonOutsideBusinessHours    Reason = "outside_business_hours"
	ReasonStaffNotScheduled       Reason = "staff_not_scheduled"
	ReasonStaffOnLeave            Reason = "staff_on_leave"
	ReasonOutsideStaffShift       Reason = "outside_staff_shift"
	ReasonStaffDoubleBooked       Reason = "staff_double_booked"
)

// Message returns the user-facing message for a rejection reason.
func (r Reason) Message() string {
	switch r {
	case ReasonInvalidServiceSelection:
		return "One or more services are invalid"
	case ReasonOutsideBusinessHours:
		return "Booking time is outside business hours"
	case ReasonStaffNotScheduled:
		return "Selected staff is not available on this date"
	case ReasonStaffOnLeave:
		return "Selected staff is on leave on this date"
	case ReasonOutsideStaffShift:
		return "Selected staff is not available at this time"
	case ReasonStaffDoubleBooked:
		return "Selected staff has a conflicting booking"
	}
	return "Booking request rejected"
}

// Service is the read-only slice of a service the resolver needs.
type Service struct {
	ID         uint
	BusinessID uint
	Duration   int // minutes, always >= 1
}

// Shift is a staff member's working window for one business on one date.
type Shift struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Leave is a staff member's declared absence for one date. Status is carried
// for symmetry with the schema but deliberately not consulted: any leave row
// blocks scheduling, even one still pending approval.
type Leave struct {
	Status string
}

// BookingSlot is an existing active booking reduced to its occupied interval.
// Duration is the sum of the booking's line-item service durations. ID carries
// the source booking so callers can exclude a specific booking from a scan;
// the resolver itself never reads it.
type BookingSlot struct {
	ID       uint
	Start    TimeOfDay
	Duration int
}

// End returns the exclusive end of the slot's half-open interval.
func (b BookingSlot) End() TimeOfDay {
	return b.Start.Add(b.Duration)
}

// Request carries everything the resolver needs, gathered by the caller
// before invocation. All fields are read-only facts.
type Request struct {
	BusinessID uint
	OpenTime   TimeOfDay
	CloseTime  TimeOfDay

	Time     TimeOfDay
	Services []Service

	// StaffID is optional. When nil only business-hours and service checks
	// apply; no staff row means no staff conflicts to scan.
	StaffID  *uint
	Shift    *Shift
	Leave    *Leave
	Existing []BookingSlot
}

// TotalDuration sums the requested services' durations in minutes.
func (r Request) TotalDuration() int {
	total := 0
	for _, s := range r.Services {
		total += s.Duration
	}
	return total
}

// Result is the resolver's decision.
type Result struct {
	Accepted bool
	Reason   Reason // set only when Accepted is false
}

func accepted() Result        { return Result{Accepted: true} }
func rejected(r Reason) Result { return Result{Reason: r} }

// Resolve decides whether a proposed booking may be accepted. It is a pure
// function of its inputs: no I/O, no writes, safe for any number of
// concurrent callers. Checks run in a fixed order and the first failure wins.
//
// Two quirks of the platform are preserved on purpose:
//   - business-hours and shift checks bound only the requested start instant,
//     so a booking may run past closing time or past the end of a shift;
//   - a leave row blocks the date whatever its status, including "pending".
func Resolve(req Request) Result {
	if len(req.Services) == 0 {
		return rejected(ReasonInvalidServiceSelection)
	}
	for _, s := range req.Services {
		if s.BusinessID != req.BusinessID {
			return rejected(ReasonInvalidServiceSelection)
		}
	}

	if req.Time.Before(req.OpenTime) || req.Time.After(req.CloseTime) {
		return rejected(ReasonOutsideBusinessHours)
	}

	if req.StaffID == nil {
		return accepted()
	}

	if req.Shift == nil {
		return rejected(ReasonStaffNotScheduled)
	}
	if req.Leave != nil {
		return rejected(ReasonStaffOnLeave)
	}
	if req.Time.Before(req.Shift.Start) || req.Time.After(req.Shift.End) {
		return rejected(ReasonOutsideStaffShift)
	}

	start := req.Time
	end := req.Time.Add(req.TotalDuration())
	for _, b := range req.Existing {
		if overlaps(start, end, b.Start, b.End()) {
			return rejected(ReasonStaffDoubleBooked)
		}
	}

	return accepted()
}

// overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching boundaries do not overlap, so
// back-to-back bookings are allowed.
func overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
