package perfectapi

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"

	"perfect-widget/internal/domain/reservation"
	"perfect-widget/internal/pkg/errs"
)

const (
	Version140 = "1.4.0"
	Version150 = "1.5.0"

	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// Protocol captures what changes between revisions of the Perfect API: the
// slot notation in availability responses and the shape of the create
// reservation payload.
type Protocol interface {
	Version() string
	DecodeTimes(body []byte) ([]reservation.SlotID, error)
	EncodeBooking(b reservation.Booking) (contentType string, body []byte, err error)
}

var protocols = map[string]Protocol{
	Version140: minuteProtocol{},
	Version150: clockProtocol{},
}

func ProtocolFor(version string) (Protocol, error) {
	p, ok := protocols[version]
	if !ok {
		return nil, errs.Newf("unsupported perfect api version %q (supported: %v)", version, SupportedVersions())
	}
	return p, nil
}

func SupportedVersions() []string {
	out := make([]string, 0, len(protocols))
	for v := range protocols {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// minuteProtocol is 1.4.0: slots are minutes since midnight and the booking
// carries a single epoch-millisecond time with no separate date.
type minuteProtocol struct{}

func (minuteProtocol) Version() string { return Version140 }

func (minuteProtocol) DecodeTimes(body []byte) ([]reservation.SlotID, error) {
	var minutes []int
	if err := json.Unmarshal(body, &minutes); err != nil {
		return nil, errs.Wrap(err, "decode available times")
	}
	out := make([]reservation.SlotID, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, reservation.MinuteSlotID(m))
	}
	return out, nil
}

func (minuteProtocol) EncodeBooking(b reservation.Booking) (string, []byte, error) {
	phone, ok := reservation.ParsePhone(b.Phone)
	if !ok {
		return "", nil, errs.Newf("phone %q is not a 10 digit number", b.Phone)
	}
	form := url.Values{}
	form.Set("name", b.Name)
	form.Set("phone", strconv.FormatInt(phone, 10))
	form.Set("partySize", strconv.Itoa(b.PartySize))
	form.Set("time", strconv.FormatInt(b.StartsAt().UnixMilli(), 10))
	return contentTypeForm, []byte(form.Encode()), nil
}

// clockProtocol is 1.5.0: slots are "HH:MM" strings and the booking keeps
// date and time apart.
type clockProtocol struct{}

func (clockProtocol) Version() string { return Version150 }

func (clockProtocol) DecodeTimes(body []byte) ([]reservation.SlotID, error) {
	var clocks []string
	if err := json.Unmarshal(body, &clocks); err != nil {
		return nil, errs.Wrap(err, "decode available times")
	}
	out := make([]reservation.SlotID, 0, len(clocks))
	for _, c := range clocks {
		out = append(out, reservation.SlotID(c))
	}
	return out, nil
}

type clockBookingPayload struct {
	Name  string `json:"name"`
	Phone int64  `json:"phone"`
	Party int    `json:"party"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Email string `json:"email,omitempty"`
}

func (clockProtocol) EncodeBooking(b reservation.Booking) (string, []byte, error) {
	phone, ok := reservation.ParsePhone(b.Phone)
	if !ok {
		return "", nil, errs.Newf("phone %q is not a 10 digit number", b.Phone)
	}
	body, err := json.Marshal(clockBookingPayload{
		Name:  b.Name,
		Phone: phone,
		Party: b.PartySize,
		Date:  b.Date.Format(reservation.DateLayout),
		Time:  b.Slot.Clock(),
		Email: b.Email,
	})
	if err != nil {
		return "", nil, errs.Wrap(err, "encode reservation")
	}
	return contentTypeJSON, body, nil
}
