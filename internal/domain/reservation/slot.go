package reservation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedSlot = errors.New("malformed slot identifier")

const (
	minutesPerDay = 24 * 60
	noonMinutes   = 12 * 60
)

// SlotID is a bookable time exactly as the remote service delivered it:
// either minutes since midnight ("1140") or a 24-hour clock string ("19:00").
type SlotID string

func MinuteSlotID(minutes int) SlotID {
	return SlotID(strconv.Itoa(minutes))
}

func (id SlotID) String() string {
	return string(id)
}

func (id SlotID) IsEmpty() bool {
	return strings.TrimSpace(string(id)) == ""
}

type Notation int

const (
	NotationMinutes Notation = iota
	NotationClock
)

// Slot is a decoded SlotID. Minutes is the canonical representation; the
// notation is kept because the two revisions of the service label noon
// differently.
type Slot struct {
	minutes  int
	notation Notation
}

func Decode(id SlotID) (Slot, error) {
	raw := strings.TrimSpace(string(id))
	if raw == "" {
		return Slot{}, ErrMalformedSlot
	}
	if strings.Contains(raw, ":") {
		return decodeClock(raw)
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes < 0 || minutes >= minutesPerDay {
		return Slot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, raw)
	}
	return Slot{minutes: minutes, notation: NotationMinutes}, nil
}

func decodeClock(raw string) (Slot, error) {
	hh, mm, ok := strings.Cut(raw, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return Slot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, raw)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return Slot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, raw)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return Slot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, raw)
	}
	return Slot{minutes: hour*60 + minute, notation: NotationClock}, nil
}

func (s Slot) Minutes() int {
	return s.minutes
}

func (s Slot) Notation() Notation {
	return s.notation
}

// Clock renders the slot as a zero-padded 24-hour "HH:MM" string.
func (s Slot) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.minutes/60, s.minutes%60)
}

// Label is the human readable 12-hour form shown in the time selector.
func (s Slot) Label() string {
	if s.notation == NotationClock {
		return clockLabel(s.minutes/60, s.minutes%60)
	}
	return minuteLabel(s.minutes)
}

// minuteLabel: 0 is "0:00 am", 720 is "12:00 pm", 721 is "12:01 pm".
func minuteLabel(slot int) string {
	hour := slot / 60
	suffix := " am"
	if slot >= noonMinutes {
		suffix = " pm"
		if hour > 12 {
			hour -= 12
		}
	}
	return fmt.Sprintf("%d:%02d%s", hour, slot%60, suffix)
}

// clockLabel keeps the 1.5.0 widget's rule: hour 12 is labelled "am".
func clockLabel(hour24, minute int) string {
	hour := hour24
	suffix := " am"
	if hour24 > 12 {
		hour = hour24 - 12
		suffix = " pm"
	}
	return fmt.Sprintf("%d:%02d%s", hour, minute, suffix)
}

// LabelOrRaw decodes id and falls back to the raw identifier when it is
// malformed.
func LabelOrRaw(id SlotID) string {
	s, err := Decode(id)
	if err != nil {
		return string(id)
	}
	return s.Label()
}
