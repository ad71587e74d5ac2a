package reservation

import (
	"fmt"
	"time"
)

// User-facing copy. Renderers and tests compare these verbatim.
const (
	MsgTimeInvalid     = "Time selected is invalid."
	MsgDateInvalid     = "Date is an invalid format."
	MsgDateMissing     = "You must select a date."
	MsgDateInPast      = "Date selected is in the past."
	MsgDateTooFar      = "Reservation date must be within 30 days."
	MsgNameLength      = "Name must be between 1 and 50 characters."
	MsgPhoneFormat     = "Phone number must be in the format ########## and 10 digits."
	MsgPartySizeRange  = "Party Size must be between 1 and 99 people."
	MsgBookingFailed   = "There was a problem creating your reservation. If you have already created a reservation with this phone number you will not be able to create a second on the same day. Please refresh the page and try again."
	MsgActivationError = "Unable to load Perfect form."
)

func NoAvailabilityMessage(partySize int, date time.Time) string {
	return fmt.Sprintf("No reservations available for parties of %d on %s.", partySize, date.Format(DateLayout))
}
