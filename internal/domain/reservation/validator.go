package reservation

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinNameLength = 1
	MaxNameLength = 50
	MinPhone      = int64(1000000000)
	MaxPhone      = int64(9999999999)
	MinPartySize  = 1
	MaxPartySize  = 99
)

type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

func (r *ValidationResult) add(field Field, msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{Field: field, Message: msg})
}

// Validate runs every rule and reports each violation once, ordered time,
// date, name, phone, party size. today must be local midnight in the
// restaurant's time zone; the draft date is parsed in the same location.
func Validate(d Draft, today time.Time) ValidationResult {
	res := ValidationResult{Valid: true}

	if !validTime(d.Time) {
		res.add(FieldTime, MsgTimeInvalid)
	}

	dateValue := strings.TrimSpace(d.Date)
	if dateValue == "" {
		res.add(FieldDate, MsgDateMissing)
	} else if date, err := ParseDate(dateValue, today.Location()); err != nil {
		res.add(FieldDate, MsgDateInvalid)
	} else if date.Before(today) {
		res.add(FieldDate, MsgDateInPast)
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(d.Name)); n < MinNameLength || n > MaxNameLength {
		res.add(FieldName, MsgNameLength)
	}

	if _, ok := ParsePhone(d.Phone); !ok {
		res.add(FieldPhone, MsgPhoneFormat)
	}

	if d.PartySize < MinPartySize || d.PartySize > MaxPartySize {
		res.add(FieldPartySize, MsgPartySizeRange)
	}

	return res
}

// midnight (minute 0) is rejected as a selection even though it decodes.
func validTime(id SlotID) bool {
	if id.IsEmpty() {
		return false
	}
	slot, err := Decode(id)
	if err != nil {
		return false
	}
	return slot.Minutes() != 0
}

// ParsePhone accepts exactly ten digits with no country code.
func ParsePhone(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < MinPhone || n > MaxPhone {
		return 0, false
	}
	return n, true
}

// ExceedsSoftLimit reports whether date lies more than days after today.
func ExceedsSoftLimit(date, today time.Time, days int) bool {
	return date.After(today.AddDate(0, 0, days))
}
