package availability

import "testing"

func TestFreeSlots_SkipsBusyIntervals(t *testing.T) {
	req := withStaff(t, baseRequest(t))
	req.Shift = &Shift{Start: tod(t, "09:00"), End: tod(t, "10:00")}
	req.Existing = []BookingSlot{{Start: tod(t, "09:15"), Duration: 30}}

	slots := FreeSlots(req, 15)
	// A 30-minute request at 09:00, 09:15 or 09:30 overlaps the busy
	// 09:15-09:45 interval; 09:45 touches it and 10:00 starts on the shift
	// boundary, both fine.
	want := []string{"09:45", "10:00"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d (%v)", len(want), len(slots), slots)
	}
	for i, w := range want {
		if slots[i].String() != w {
			t.Fatalf("slot %d: expected %s, got %s", i, w, slots[i])
		}
	}
}

func TestFreeSlots_NoStaffUsesBusinessHours(t *testing.T) {
	req := baseRequest(t)
	req.OpenTime = tod(t, "09:00")
	req.CloseTime = tod(t, "09:30")

	slots := FreeSlots(req, 15)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d (%v)", len(slots), slots)
	}
	if slots[0].String() != "09:00" || slots[2].String() != "09:30" {
		t.Fatalf("unexpected slots %v", slots)
	}
}

func TestFreeSlots_ShiftNarrowsWindow(t *testing.T) {
	req := withStaff(t, baseRequest(t))
	req.Shift = &Shift{Start: tod(t, "13:00"), End: tod(t, "13:30")}

	slots := FreeSlots(req, 30)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d (%v)", len(slots), slots)
	}
	if slots[0].String() != "13:00" || slots[1].String() != "13:30" {
		t.Fatalf("unexpected slots %v", slots)
	}
}

func TestFreeSlots_InvalidStep(t *testing.T) {
	if got := FreeSlots(baseRequest(t), 0); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
