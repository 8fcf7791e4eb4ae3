package booking

import (
	"errors"
	"fmt"

	"github.com/meinhoongagan/harmony-booking/availability"
)

// Store lookup failures. These are a different failure class from rejections:
// a rejection is a final business answer, these are bad references or broken
// I/O the caller surfaces as such.
var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrStaffNotEmployed = errors.New("selected staff does not work for this business")
)

// Rejection is the resolver saying no. It is terminal and non-retryable:
// the same request will be rejected again until its facts change.
type Rejection struct {
	Reason availability.Reason
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("booking rejected: %s", r.Reason)
}

// AsRejection unwraps a Rejection from err, if there is one.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
