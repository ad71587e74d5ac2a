package errs

import "errors"

// Sentinel errors shared by the usecase, infra and handler layers.
var (
	// Remote service errors
	ErrAuthFailed      = errors.New("perfect api authentication failed")
	ErrTransport       = errors.New("perfect api request failed")
	ErrBookingRejected = errors.New("reservation rejected by perfect api")

	// Widget flow errors
	ErrValidationFailed  = errors.New("reservation validation failed")
	ErrInvalidTransition = errors.New("invalid widget state transition")
	ErrUnknownSlot       = errors.New("time slot is not currently offered")

	// Session errors
	ErrSessionNotFound = errors.New("widget session not found")
	ErrRateLimited     = errors.New("widget session rate limited")
)
