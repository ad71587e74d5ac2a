package alert

import (
	"slices"

	"perfect-widget/internal/domain/reservation"
)

type Alert struct {
	Field   reservation.Field `json:"field"`
	Message string            `json:"message"`
}

// Sink collects field-scoped messages for the rendering layer. It is not
// safe for concurrent use; the owning flow serialises access.
type Sink struct {
	alerts []Alert
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Add(field reservation.Field, message string) {
	s.alerts = append(s.alerts, Alert{Field: field, Message: message})
}

func (s *Sink) AddErrors(errs []reservation.FieldError) {
	for _, e := range errs {
		s.Add(e.Field, e.Message)
	}
}

func (s *Sink) Clear() {
	s.alerts = nil
}

// Dismiss drops every alert attached to field.
func (s *Sink) Dismiss(field reservation.Field) {
	s.alerts = slices.DeleteFunc(s.alerts, func(a Alert) bool {
		return a.Field == field
	})
}

func (s *Sink) HasField(field reservation.Field) bool {
	return slices.ContainsFunc(s.alerts, func(a Alert) bool {
		return a.Field == field
	})
}

func (s *Sink) Len() int {
	return len(s.alerts)
}

// Alerts returns a copy in insertion order.
func (s *Sink) Alerts() []Alert {
	return slices.Clone(s.alerts)
}
