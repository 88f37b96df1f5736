package purchase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPrice    = errors.New("invalid service price")
	ErrInvalidState    = errors.New("operation not allowed in current purchase state")
	ErrMissingCustomer = errors.New("customer id is unknown")
)

// PartialFailureError reports a purchase whose reservation was applied but
// whose sale was not recorded. When compensation was attempted, Compensated
// tells whether the vehicle was released again and CompensationErr holds
// the failure otherwise.
type PartialFailureError struct {
	VehicleID       int64
	Err             error
	Attempted       bool
	Compensated     bool
	CompensationErr error
}

func (e *PartialFailureError) Error() string {
	msg := fmt.Sprintf("vehicle %d reserved but sale not recorded: %v", e.VehicleID, e.Err)
	switch {
	case e.Compensated:
		msg += "; reservation released"
	case e.Attempted:
		msg += fmt.Sprintf("; releasing reservation failed: %v", e.CompensationErr)
	}
	return msg
}

func (e *PartialFailureError) Unwrap() []error {
	if e.CompensationErr != nil {
		return []error{e.Err, e.CompensationErr}
	}
	return []error{e.Err}
}
