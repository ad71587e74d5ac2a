package reservation

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Draft is the reservation being authored in one widget instance. Fields hold
// what the visitor entered; Validate decides whether it can be submitted.
type Draft struct {
	Name      string
	Phone     string
	PartySize int
	Date      string
	Time      SlotID
	Email     string
}

// ParseDate interprets a YYYY-MM-DD value as local midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
}

// Midnight truncates t to 00:00 of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Booking is a validated, frozen draft ready to be sent to the booking
// service.
type Booking struct {
	Name      string
	Phone     string
	PartySize int
	Date      time.Time
	Slot      Slot
	Email     string
}

// ToBooking converts a draft that already passed Validate.
func (d Draft) ToBooking(loc *time.Location) (Booking, error) {
	date, err := ParseDate(d.Date, loc)
	if err != nil {
		return Booking{}, err
	}
	slot, err := Decode(d.Time)
	if err != nil {
		return Booking{}, err
	}
	return Booking{
		Name:      strings.TrimSpace(d.Name),
		Phone:     strings.TrimSpace(d.Phone),
		PartySize: d.PartySize,
		Date:      date,
		Slot:      slot,
		Email:     strings.TrimSpace(d.Email),
	}, nil
}

// StartsAt is local midnight of the booking date plus the slot offset.
func (b Booking) StartsAt() time.Time {
	return b.Date.Add(time.Duration(b.Slot.Minutes()) * time.Minute)
}
