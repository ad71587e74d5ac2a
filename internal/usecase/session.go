package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"perfect-widget/internal/pkg/clock"
	"perfect-widget/internal/pkg/errs"

	"github.com/google/uuid"
)

type SessionOptions struct {
	TTL  time.Duration
	Flow FlowOptions
}

// WidgetSession is one activated widget instance.
type WidgetSession struct {
	ID         uuid.UUID
	Restaurant Restaurant
	Flow       *ReservationFlow

	lastSeen time.Time
}

// WidgetSessions activates widget instances and keeps their flows alive until
// they are deactivated or sit idle longer than the configured TTL.
type WidgetSessions struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*WidgetSession

	auth         Authenticator
	availability AvailabilityClient
	booking      BookingClient
	clock        clock.Clock
	logger       *slog.Logger
	opts         SessionOptions
}

func NewWidgetSessions(
	auth Authenticator,
	availability AvailabilityClient,
	booking BookingClient,
	clk clock.Clock,
	logger *slog.Logger,
	opts SessionOptions,
) *WidgetSessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &WidgetSessions{
		sessions:     make(map[uuid.UUID]*WidgetSession),
		auth:         auth,
		availability: availability,
		booking:      booking,
		clock:        clk,
		logger:       logger,
		opts:         opts,
	}
}

// Activate authenticates the API key and prepares a fresh draft. An
// authentication failure is fatal for the widget; a failed party size lookup
// only leaves the selector empty.
func (s *WidgetSessions) Activate(ctx context.Context) (*WidgetSession, error) {
	restaurant, err := s.authenticate(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "activate widget"), errs.ErrAuthFailed)
	}

	partySizes, err := s.fetchPartySizes(ctx)
	if err != nil {
		s.logger.Warn("widget: party sizes unavailable", "restaurant_id", restaurant.ID, "error", err)
	}

	id := uuid.New()
	logger := s.logger.With(slog.String("widget_session", id.String()))
	session := &WidgetSession{
		ID:         id,
		Restaurant: restaurant,
		Flow:       NewReservationFlow(s.availability, s.booking, s.clock, logger, s.opts.Flow, partySizes),
		lastSeen:   s.clock.Now(),
	}

	s.mu.Lock()
	s.sweepLocked(session.lastSeen)
	s.sessions[id] = session
	s.mu.Unlock()

	logger.Info("widget: activated", "restaurant_id", restaurant.ID, "party_sizes", len(partySizes))
	return session, nil
}

func (s *WidgetSessions) authenticate(ctx context.Context) (Restaurant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.auth.Authenticate(ctx)
}

func (s *WidgetSessions) fetchPartySizes(ctx context.Context) ([]int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.availability.FetchPartySizes(ctx)
}

func (s *WidgetSessions) Get(id uuid.UUID) (*WidgetSession, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || s.expired(session, now) {
		delete(s.sessions, id)
		return nil, errs.Wrapf(errs.ErrSessionNotFound, "session %s", id)
	}
	session.lastSeen = now
	return session, nil
}

func (s *WidgetSessions) Deactivate(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return errs.Wrapf(errs.ErrSessionNotFound, "session %s", id)
	}
	delete(s.sessions, id)
	s.logger.Info("widget: deactivated", "widget_session", id.String())
	return nil
}

func (s *WidgetSessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *WidgetSessions) sweepLocked(now time.Time) {
	for id, session := range s.sessions {
		if s.expired(session, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *WidgetSessions) expired(session *WidgetSession, now time.Time) bool {
	return s.opts.TTL > 0 && now.Sub(session.lastSeen) > s.opts.TTL
}

func (s *WidgetSessions) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Flow.Timeout > 0 {
		return context.WithTimeout(ctx, s.opts.Flow.Timeout)
	}
	return context.WithCancel(ctx)
}
