package clinic

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the HTTP layer.
const (
	CodeValidation  = "validationError"
	CodeSlotTaken   = "slotTaken"
	CodeUnavailable = "storeUnavailable"
)

// BookingError carries a machine-readable code so callers can distinguish a
// lost slot race from a malformed submission.
type BookingError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func NewValidationError(msg string) error {
	return &BookingError{
		Code:    CodeValidation,
		Message: msg,
	}
}

func NewSlotTakenError(date, slot string) error {
	return &BookingError{
		Code:    CodeSlotTaken,
		Message: fmt.Sprintf("slot %q on %s is already booked", slot, date),
	}
}

func NewUnavailableError(err error) error {
	return &BookingError{
		Code:    CodeUnavailable,
		Message: "booking store unavailable",
		Err:     err,
	}
}

// ErrorCode extracts the booking error code, or "" for unclassified errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
