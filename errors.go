package emitter

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is matched by errors.Is for every *CapacityError.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// CapacityError is returned by Register when tracking EventName would exceed Limit distinct
// event names. The registration did not happen: raise the limit with SetMaxListeners or drop
// the request.
type CapacityError struct {
	EventName string
	Limit     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"cannot register %q: limit of %d event names reached, use SetMaxListeners to raise it",
		e.EventName, e.Limit)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
