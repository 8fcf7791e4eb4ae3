package availability

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date, stored as minutes since
// midnight. Business hours, shift bounds and booking times are all local to
// the business, so comparing them must never go through a timezone-aware
// timestamp.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" (the formats Postgres TIME
// columns and request bodies use).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// Add returns the time of day the given number of minutes later. The result
// may pass midnight; callers compare raw minute values, so a booking that
// runs past 24:00 still orders correctly within its own day.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

func (t TimeOfDay) After(other TimeOfDay) bool { return t > other }

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60%24, int(t)%60)
}

// Value implements the driver.Valuer interface so the type maps onto TIME
// columns.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}

// Scan implements the sql.Scanner interface.
func (t *TimeOfDay) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	case time.Time:
		*t = TimeOfDay(v.Hour()*60 + v.Minute())
		return nil
	default:
		return fmt.Errorf("failed to scan TimeOfDay: unsupported type %T", value)
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
