package availability

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
	}{
		{"09:00", 540},
		{"09:00:00", 540},
		{"00:00", 0},
		{"23:59", 1439},
		{"13:45:30", 825},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if got.Minutes() != c.minutes {
			t.Fatalf("parse %q: expected %d minutes, got %d", c.in, c.minutes, got.Minutes())
		}
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "9am", "25:00", "12:61", "noon"} {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestTimeOfDay_String(t *testing.T) {
	v, _ := ParseTimeOfDay("09:05")
	if v.String() != "09:05" {
		t.Fatalf("expected 09:05, got %s", v.String())
	}
}

func TestTimeOfDay_Add(t *testing.T) {
	v, _ := ParseTimeOfDay("10:00")
	if got := v.Add(45).String(); got != "10:45" {
		t.Fatalf("expected 10:45, got %s", got)
	}
	if got := v.Add(150).String(); got != "12:30" {
		t.Fatalf("expected 12:30, got %s", got)
	}
}

func TestTimeOfDay_Scan(t *testing.T) {
	var v TimeOfDay
	if err := v.Scan("14:30:00"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if v.String() != "14:30" {
		t.Fatalf("expected 14:30, got %s", v.String())
	}
	if err := v.Scan([]byte("08:15:00")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if v.String() != "08:15" {
		t.Fatalf("expected 08:15, got %s", v.String())
	}
}

func TestTimeOfDay_Value(t *testing.T) {
	v, _ := ParseTimeOfDay("14:30")
	out, err := v.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if out != "14:30:00" {
		t.Fatalf("expected 14:30:00, got %v", out)
	}
}
