package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"perfect-widget/internal/domain/alert"
	"perfect-widget/internal/domain/reservation"
	"perfect-widget/internal/pkg/clock"
	"perfect-widget/internal/pkg/errs"
)

type TimeOption struct {
	ID    reservation.SlotID `json:"value"`
	Label string             `json:"label"`
}

type Controls struct {
	TimeEnabled   bool `json:"timeEnabled"`
	SubmitEnabled bool `json:"submitEnabled"`
}

// Confirmation is what the review and success views show.
type Confirmation struct {
	PartySize int    `json:"partySize"`
	TimeLabel string `json:"time"`
	Date      string `json:"date"`
	Name      string `json:"name"`
}

// FlowSnapshot is a copy of everything a renderer needs. Mutating it has no
// effect on the flow.
type FlowSnapshot struct {
	State         reservation.UIState
	Draft         reservation.Draft
	PartySizes    []int
	TimeOptions   []TimeOption
	Controls      Controls
	Alerts        []alert.Alert
	Confirmation  *Confirmation
	ReservationID string
	Degraded      bool
}

type FlowOptions struct {
	Location      *time.Location
	SoftLimitDays int
	Timeout       time.Duration
}

// availabilityQuery tags an outgoing lookup with the selection it was issued
// for. Results are applied only while that selection is still current.
type availabilityQuery struct {
	partySize int
	date      string
	day       time.Time
	seq       uint64
}

// ReservationFlow drives one widget instance from party/date selection to a
// submitted reservation. Remote calls are made without holding the lock.
type ReservationFlow struct {
	mu sync.Mutex

	availability AvailabilityClient
	booking      BookingClient
	clock        clock.Clock
	logger       *slog.Logger
	opts         FlowOptions

	state         reservation.UIState
	draft         reservation.Draft
	frozen        *reservation.Draft
	partySizes    []int
	options       []TimeOption
	controls      Controls
	alerts        *alert.Sink
	confirmation  *Confirmation
	reservationID string
	degraded      bool
	confirming    bool

	issued  uint64
	applied uint64
}

func NewReservationFlow(
	availability AvailabilityClient,
	booking BookingClient,
	clk clock.Clock,
	logger *slog.Logger,
	opts FlowOptions,
	partySizes []int,
) *ReservationFlow {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	f := &ReservationFlow{
		availability: availability,
		booking:      booking,
		clock:        clk,
		logger:       logger,
		opts:         opts,
		state:        reservation.StateEditing,
		partySizes:   slices.Clone(partySizes),
		alerts:       alert.NewSink(),
	}
	f.draft.Date = f.today().Format(reservation.DateLayout)
	return f
}

func (f *ReservationFlow) today() time.Time {
	return clock.Today(f.clock, f.opts.Location)
}

func (f *ReservationFlow) SetPartySize(ctx context.Context, partySize int) error {
	f.mu.Lock()
	if err := f.requireEditableLocked("set party size"); err != nil {
		f.mu.Unlock()
		return err
	}
	if len(f.partySizes) > 0 && !slices.Contains(f.partySizes, partySize) {
		f.alerts.Clear()
		f.alerts.Add(reservation.FieldPartySize, reservation.MsgPartySizeRange)
		f.mu.Unlock()
		return errs.Mark(errs.Newf("party size %d is not offered", partySize), errs.ErrValidationFailed)
	}
	f.enterEditingLocked()
	f.draft.PartySize = partySize
	q := f.beginQueryLocked()
	f.mu.Unlock()

	f.runQuery(ctx, q)
	return nil
}

// SetDate handles a date change. A past date is replaced with today; a date
// beyond the soft limit only raises a warning.
func (f *ReservationFlow) SetDate(ctx context.Context, value string) error {
	f.mu.Lock()
	if err := f.requireEditableLocked("set date"); err != nil {
		f.mu.Unlock()
		return err
	}
	f.enterEditingLocked()
	f.draft.Date = value

	today := f.today()
	if date, err := reservation.ParseDate(value, f.opts.Location); err == nil {
		switch {
		case date.Before(today):
			f.draft.Date = today.Format(reservation.DateLayout)
		case f.opts.SoftLimitDays > 0 && reservation.ExceedsSoftLimit(date, today, f.opts.SoftLimitDays):
			f.alerts.Add(reservation.FieldDate, reservation.MsgDateTooFar)
		}
	}
	q := f.beginQueryLocked()
	f.mu.Unlock()

	f.runQuery(ctx, q)
	return nil
}

func (f *ReservationFlow) SelectTime(id reservation.SlotID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != reservation.StateEditing {
		return errs.Wrapf(errs.ErrInvalidTransition, "select time in %s", f.state)
	}
	if !f.offeredLocked(id) {
		return errs.Wrapf(errs.ErrUnknownSlot, "slot %q", id)
	}
	f.draft.Time = id
	return nil
}

func (f *ReservationFlow) UpdateContact(ctx context.Context, name, phone, email string) error {
	f.mu.Lock()
	if err := f.requireEditableLocked("update contact"); err != nil {
		f.mu.Unlock()
		return err
	}
	var q *availabilityQuery
	if f.state == reservation.StateFailed {
		f.enterEditingLocked()
		q = f.beginQueryLocked()
	}
	f.draft.Name = name
	f.draft.Phone = phone
	f.draft.Email = email
	f.mu.Unlock()

	f.runQuery(ctx, q)
	return nil
}

// RefreshTimes re-issues the availability lookup for the current selection.
func (f *ReservationFlow) RefreshTimes(ctx context.Context) error {
	f.mu.Lock()
	if f.state != reservation.StateEditing {
		f.mu.Unlock()
		return errs.Wrapf(errs.ErrInvalidTransition, "refresh times in %s", f.state)
	}
	f.alerts.Clear()
	f.resetTimeLocked()
	q := f.beginQueryLocked()
	f.mu.Unlock()

	f.runQuery(ctx, q)
	return nil
}

// Submit validates the draft and, when it passes, freezes it for review.
func (f *ReservationFlow) Submit() (reservation.ValidationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != reservation.StateEditing {
		return reservation.ValidationResult{}, errs.Wrapf(errs.ErrInvalidTransition, "submit in %s", f.state)
	}
	if !f.controls.SubmitEnabled {
		return reservation.ValidationResult{}, errs.Wrap(errs.ErrInvalidTransition, "submit is disabled")
	}

	f.alerts.Clear()
	res := reservation.Validate(f.draft, f.today())
	if !f.offeredLocked(f.draft.Time) && !hasFieldError(res, reservation.FieldTime) {
		res.Valid = false
		res.Errors = append([]reservation.FieldError{{
			Field:   reservation.FieldTime,
			Message: reservation.MsgTimeInvalid,
		}}, res.Errors...)
	}
	if !res.Valid {
		f.alerts.AddErrors(res.Errors)
		return res, errs.Mark(errs.Newf("%d invalid fields", len(res.Errors)), errs.ErrValidationFailed)
	}

	frozen := f.draft
	f.frozen = &frozen
	f.confirmation = &Confirmation{
		PartySize: frozen.PartySize,
		TimeLabel: f.labelLocked(frozen.Time),
		Date:      frozen.Date,
		Name:      frozen.Name,
	}
	f.transitionLocked(reservation.StateConfirming)
	return res, nil
}

// Cancel returns from review to the form. Time and submit stay disabled until
// RefreshTimes completes.
func (f *ReservationFlow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != reservation.StateConfirming || f.confirming {
		return errs.Wrapf(errs.ErrInvalidTransition, "cancel in %s", f.state)
	}
	f.frozen = nil
	f.confirmation = nil
	f.resetTimeLocked()
	f.transitionLocked(reservation.StateEditing)
	return nil
}

// Confirm sends the frozen draft to the booking service. A rejection moves the
// flow to failed and is returned marked with errs.ErrBookingRejected.
func (f *ReservationFlow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.state != reservation.StateConfirming || f.confirming {
		state := f.state
		f.mu.Unlock()
		return errs.Wrapf(errs.ErrInvalidTransition, "confirm in %s", state)
	}
	f.confirming = true
	frozen := *f.frozen
	f.mu.Unlock()

	id, err := f.createReservation(ctx, frozen)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirming = false

	if err != nil {
		f.logger.Warn("widget: reservation rejected", "party_size", frozen.PartySize, "date", frozen.Date, "error", err)
		f.frozen = nil
		f.confirmation = nil
		f.resetTimeLocked()
		f.transitionLocked(reservation.StateFailed)
		f.alerts.Add(reservation.FieldForm, reservation.MsgBookingFailed)
		return err
	}

	f.reservationID = id
	f.draft = reservation.Draft{}
	f.frozen = nil
	f.resetTimeLocked()
	f.transitionLocked(reservation.StateSubmitted)
	f.logger.Info("widget: reservation created", "reservation_id", id, "party_size", frozen.PartySize, "date", frozen.Date)
	return nil
}

func (f *ReservationFlow) createReservation(ctx context.Context, draft reservation.Draft) (string, error) {
	booking, err := draft.ToBooking(f.opts.Location)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "convert draft"), errs.ErrBookingRejected)
	}
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()

	id, err := f.booking.CreateReservation(ctx, booking)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "create reservation"), errs.ErrBookingRejected)
	}
	return id, nil
}

func (f *ReservationFlow) DismissAlerts(field reservation.Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts.Dismiss(field)
}

func (f *ReservationFlow) State() reservation.UIState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ReservationFlow) Snapshot() FlowSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := FlowSnapshot{
		State:         f.state,
		Draft:         f.draft,
		PartySizes:    slices.Clone(f.partySizes),
		TimeOptions:   slices.Clone(f.options),
		Controls:      f.controls,
		Alerts:        f.alerts.Alerts(),
		ReservationID: f.reservationID,
		Degraded:      f.degraded,
	}
	if f.confirmation != nil {
		c := *f.confirmation
		snap.Confirmation = &c
	}
	return snap
}

// --- internals ---

func (f *ReservationFlow) requireEditableLocked(op string) error {
	if f.state == reservation.StateEditing || f.state == reservation.StateFailed {
		return nil
	}
	return errs.Wrapf(errs.ErrInvalidTransition, "%s in %s", op, f.state)
}

// enterEditingLocked clears alerts and the time selection; from failed it is
// a state transition back to the form.
func (f *ReservationFlow) enterEditingLocked() {
	f.resetTimeLocked()
	if f.state != reservation.StateEditing {
		f.transitionLocked(reservation.StateEditing)
		return
	}
	f.alerts.Clear()
}

func (f *ReservationFlow) transitionLocked(to reservation.UIState) {
	f.logger.Debug("widget: state transition", "from", f.state, "to", to)
	f.alerts.Clear()
	f.state = to
}

func (f *ReservationFlow) resetTimeLocked() {
	f.draft.Time = ""
	f.options = nil
	f.controls = Controls{}
}

// beginQueryLocked returns nil when the selection cannot be looked up, leaving
// time and submit disabled.
func (f *ReservationFlow) beginQueryLocked() *availabilityQuery {
	if f.draft.PartySize <= 0 {
		return nil
	}
	day, err := reservation.ParseDate(f.draft.Date, f.opts.Location)
	if err != nil || day.Before(f.today()) {
		return nil
	}
	f.issued++
	return &availabilityQuery{
		partySize: f.draft.PartySize,
		date:      f.draft.Date,
		day:       day,
		seq:       f.issued,
	}
}

func (f *ReservationFlow) runQuery(ctx context.Context, q *availabilityQuery) {
	if q == nil {
		return
	}
	qctx, cancel := f.withTimeout(ctx)
	slots, err := f.availability.FetchAvailableTimes(qctx, q.partySize, q.day)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isStaleLocked(q) {
		f.logger.Debug("widget: dropping stale availability response",
			"party_size", q.partySize, "date", q.date, "seq", q.seq, "applied", f.applied)
		return
	}
	f.applied = q.seq

	if err != nil {
		f.logger.Warn("widget: availability lookup failed", "party_size", q.partySize, "date", q.date, "error", err)
		f.degraded = true
		f.resetTimeLocked()
		return
	}
	f.degraded = false

	if len(slots) == 0 {
		f.resetTimeLocked()
		f.alerts.Add(reservation.FieldDate, reservation.NoAvailabilityMessage(q.partySize, q.day))
		return
	}

	options := make([]TimeOption, 0, len(slots))
	for _, id := range slots {
		options = append(options, TimeOption{ID: id, Label: reservation.LabelOrRaw(id)})
	}
	f.options = options
	f.draft.Time = options[0].ID
	f.controls = Controls{TimeEnabled: true, SubmitEnabled: true}
}

func (f *ReservationFlow) isStaleLocked(q *availabilityQuery) bool {
	return f.state != reservation.StateEditing ||
		q.seq <= f.applied ||
		q.partySize != f.draft.PartySize ||
		q.date != f.draft.Date
}

func (f *ReservationFlow) offeredLocked(id reservation.SlotID) bool {
	return slices.ContainsFunc(f.options, func(o TimeOption) bool {
		return o.ID == id
	})
}

func (f *ReservationFlow) labelLocked(id reservation.SlotID) string {
	for _, o := range f.options {
		if o.ID == id {
			return o.Label
		}
	}
	return reservation.LabelOrRaw(id)
}

func (f *ReservationFlow) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.opts.Timeout > 0 {
		return context.WithTimeout(ctx, f.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

func hasFieldError(res reservation.ValidationResult, field reservation.Field) bool {
	return slices.ContainsFunc(res.Errors, func(e reservation.FieldError) bool {
		return e.Field == field
	})
}
