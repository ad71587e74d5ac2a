//go:build unit || e2e

package builder

import (
	"time"

	"perfect-widget/internal/domain/reservation"
	reqdto "perfect-widget/internal/handler/dto/request"
)

type DraftBuilder struct {
	Name      string
	Phone     string
	PartySize int
	Date      string
	Time      reservation.SlotID
	Email     string
}

// NewDraftBuilder returns a draft that passes validation on any day up to
// the given date.
func NewDraftBuilder(date time.Time) *DraftBuilder {
	return &DraftBuilder{
		Name:      "Ada Lovelace",
		Phone:     "5035550123",
		PartySize: 4,
		Date:      date.Format(reservation.DateLayout),
		Time:      "1140",
	}
}

func (b *DraftBuilder) WithName(name string) *DraftBuilder {
	b.Name = name
	return b
}

func (b *DraftBuilder) WithPhone(phone string) *DraftBuilder {
	b.Phone = phone
	return b
}

func (b *DraftBuilder) WithPartySize(n int) *DraftBuilder {
	b.PartySize = n
	return b
}

func (b *DraftBuilder) WithDate(date string) *DraftBuilder {
	b.Date = date
	return b
}

func (b *DraftBuilder) WithTime(id reservation.SlotID) *DraftBuilder {
	b.Time = id
	return b
}

func (b *DraftBuilder) WithEmail(email string) *DraftBuilder {
	b.Email = email
	return b
}

func (b *DraftBuilder) Build() reservation.Draft {
	return reservation.Draft{
		Name:      b.Name,
		Phone:     b.Phone,
		PartySize: b.PartySize,
		Date:      b.Date,
		Time:      b.Time,
		Email:     b.Email,
	}
}

func (b *DraftBuilder) BuildContactDTO() reqdto.ContactRequest {
	name, phone := b.Name, b.Phone
	req := reqdto.ContactRequest{Name: &name, Phone: &phone}
	if b.Email != "" {
		email := b.Email
		req.Email = &email
	}
	return req
}
