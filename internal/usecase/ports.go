package usecase

//go:generate mockgen -source=ports.go -destination=../../tests/mock/usecase/mock_ports.go -package=usecasemock

import (
	"context"
	"time"

	"perfect-widget/internal/domain/reservation"
)

// Restaurant is the identity the remote service associates with an API key.
type Restaurant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Authenticator interface {
	Authenticate(ctx context.Context) (Restaurant, error)
}

// AvailabilityClient is the read side of the remote service. An empty slice
// from FetchAvailableTimes means fully booked and is not an error.
type AvailabilityClient interface {
	FetchPartySizes(ctx context.Context) ([]int, error)
	FetchAvailableTimes(ctx context.Context, partySize int, date time.Time) ([]reservation.SlotID, error)
}

type BookingClient interface {
	CreateReservation(ctx context.Context, booking reservation.Booking) (reservationID string, err error)
}
