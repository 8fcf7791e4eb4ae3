package availability

// FreeSlots returns the start times within a staff member's shift where a
// booking of the given total duration would be accepted by Resolve. The grid
// advances by step minutes. Facts are the same ones Resolve consumes, so a
// slot listed here is exactly a request Resolve would accept.
func FreeSlots(req Request, step int) []TimeOfDay {
	if step <= 0 || len(req.Services) == 0 {
		return nil
	}

	windowStart := req.OpenTime
	windowEnd := req.CloseTime
	if req.StaffID != nil && req.Shift != nil {
		if req.Shift.Start.After(windowStart) {
			windowStart = req.Shift.Start
		}
		if req.Shift.End.Before(windowEnd) {
			windowEnd = req.Shift.End
		}
	}

	var slots []TimeOfDay
	for t := windowStart; !t.After(windowEnd); t = t.Add(step) {
		candidate := req
		candidate.Time = t
		if Resolve(candidate).Accepted {
			slots = append(slots, t)
		}
	}
	return slots
}
