package response

import (
	"perfect-widget/internal/domain/alert"
	"perfect-widget/internal/domain/reservation"
	"perfect-widget/internal/usecase"

	"github.com/jinzhu/copier"
)

// View names the screen a renderer should show for a flow state.
type View string

const (
	ViewForm    View = "form"
	ViewConfirm View = "confirm"
	ViewSuccess View = "success"
)

type DraftResponse struct {
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	PartySize int                `json:"partySize"`
	Date      string             `json:"date"`
	Time      reservation.SlotID `json:"time"`
	Email     string             `json:"email,omitempty"`
}

type WidgetResponse struct {
	State         reservation.UIState   `json:"state"`
	View          View                  `json:"view"`
	Draft         DraftResponse         `json:"draft" copier:"-"`
	PartySizes    []int                 `json:"partySizes"`
	TimeOptions   []usecase.TimeOption  `json:"timeOptions"`
	Controls      usecase.Controls      `json:"controls"`
	Alerts        []alert.Alert         `json:"alerts"`
	Confirmation  *usecase.Confirmation `json:"confirmation,omitempty"`
	ReservationID string                `json:"reservationId,omitempty"`
	Degraded      bool                  `json:"degraded"`
}

type RestaurantResponse struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type ActivateResponse struct {
	Token      string             `json:"token"`
	Restaurant RestaurantResponse `json:"restaurant"`
	Widget     *WidgetResponse    `json:"widget"`
}

// SubmitRejection is the error detail returned when a draft fails validation.
type SubmitRejection struct {
	Errors []reservation.FieldError `json:"errors"`
	Widget *WidgetResponse          `json:"widget"`
}

func FromSnapshot(snap usecase.FlowSnapshot) (*WidgetResponse, error) {
	resp := &WidgetResponse{}
	if err := copier.CopyWithOption(resp, &snap, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if err := copier.Copy(&resp.Draft, &snap.Draft); err != nil {
		return nil, err
	}
	resp.View = viewFor(snap.State)
	if resp.PartySizes == nil {
		resp.PartySizes = []int{}
	}
	if resp.TimeOptions == nil {
		resp.TimeOptions = []usecase.TimeOption{}
	}
	if resp.Alerts == nil {
		resp.Alerts = []alert.Alert{}
	}
	return resp, nil
}

func FromRestaurant(r usecase.Restaurant) RestaurantResponse {
	return RestaurantResponse{ID: r.ID, Name: r.Name}
}

func viewFor(state reservation.UIState) View {
	switch state {
	case reservation.StateConfirming:
		return ViewConfirm
	case reservation.StateSubmitted:
		return ViewSuccess
	default:
		return ViewForm
	}
}
