//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"perfect-widget/internal/domain/reservation"
	"perfect-widget/internal/pkg/clock"
	"perfect-widget/internal/pkg/errs"
	"perfect-widget/internal/pkg/jwt"
	"perfect-widget/internal/usecase"
	usecasemock "perfect-widget/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type sessionFixture struct {
	auth         *usecasemock.MockAuthenticator
	availability *usecasemock.MockAvailabilityClient
	booking      *usecasemock.MockBookingClient
	clock        *clock.MockClock
	sessions     *usecase.WidgetSessions
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &sessionFixture{
		auth:         usecasemock.NewMockAuthenticator(ctrl),
		availability: usecasemock.NewMockAvailabilityClient(ctrl),
		booking:      usecasemock.NewMockBookingClient(ctrl),
		clock:        clock.NewMockClock(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)),
	}
	f.sessions = usecase.NewWidgetSessions(f.auth, f.availability, f.booking, f.clock, nil, usecase.SessionOptions{
		TTL:  time.Hour,
		Flow: usecase.FlowOptions{Location: time.UTC, SoftLimitDays: 30, Timeout: time.Second},
	})
	return f
}

func (f *sessionFixture) activate(t *testing.T) *usecase.WidgetSession {
	t.Helper()
	f.auth.EXPECT().Authenticate(gomock.Any()).Return(usecase.Restaurant{ID: "r-1", Name: "Chez Go"}, nil)
	f.availability.EXPECT().FetchPartySizes(gomock.Any()).Return([]int{2, 4, 6}, nil)
	session, err := f.sessions.Activate(context.Background())
	require.NoError(t, err)
	return session
}

func TestWidgetSessionsActivate(t *testing.T) {
	t.Run("success: authenticated with party sizes", func(t *testing.T) {
		f := newSessionFixture(t)

		session := f.activate(t)

		assert.NotEqual(t, uuid.Nil, session.ID)
		assert.Equal(t, "r-1", session.Restaurant.ID)
		snap := session.Flow.Snapshot()
		assert.Equal(t, reservation.StateEditing, snap.State)
		assert.Equal(t, []int{2, 4, 6}, snap.PartySizes)
		assert.Equal(t, "2024-06-01", snap.Draft.Date)
		assert.Equal(t, 1, f.sessions.Len())
	})

	t.Run("error: auth failure aborts activation", func(t *testing.T) {
		f := newSessionFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any()).Return(usecase.Restaurant{}, errors.New("http 401"))

		session, err := f.sessions.Activate(context.Background())

		assert.Nil(t, session)
		assert.True(t, errs.Is(err, errs.ErrAuthFailed))
		assert.Zero(t, f.sessions.Len())
	})

	t.Run("party size failure leaves the selector empty", func(t *testing.T) {
		f := newSessionFixture(t)
		f.auth.EXPECT().Authenticate(gomock.Any()).Return(usecase.Restaurant{ID: "r-1"}, nil)
		f.availability.EXPECT().FetchPartySizes(gomock.Any()).Return(nil, errors.New("timeout"))

		session, err := f.sessions.Activate(context.Background())

		require.NoError(t, err)
		assert.Empty(t, session.Flow.Snapshot().PartySizes)
	})

	t.Run("each activation gets its own flow", func(t *testing.T) {
		f := newSessionFixture(t)

		a := f.activate(t)
		b := f.activate(t)

		assert.NotEqual(t, a.ID, b.ID)
		assert.NotSame(t, a.Flow, b.Flow)
		assert.Equal(t, 2, f.sessions.Len())
	})
}

func TestWidgetSessionsGet(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.activate(t)

		got, err := f.sessions.Get(session.ID)
		require.NoError(t, err)
		assert.Same(t, session, got)
	})

	t.Run("error: unknown id", func(t *testing.T) {
		f := newSessionFixture(t)

		_, err := f.sessions.Get(uuid.New())
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("access keeps a session alive", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.activate(t)

		f.clock.Add(50 * time.Minute)
		_, err := f.sessions.Get(session.ID)
		require.NoError(t, err)
		f.clock.Add(50 * time.Minute)

		_, err = f.sessions.Get(session.ID)
		assert.NoError(t, err)
	})

	t.Run("error: idle session expires", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.activate(t)

		f.clock.Add(61 * time.Minute)

		_, err := f.sessions.Get(session.ID)
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
		assert.Zero(t, f.sessions.Len())
	})

	t.Run("expired sessions are swept on activation", func(t *testing.T) {
		f := newSessionFixture(t)
		f.activate(t)
		f.clock.Add(2 * time.Hour)

		f.activate(t)

		assert.Equal(t, 1, f.sessions.Len())
	})
}

func TestWidgetSessionsDeactivate(t *testing.T) {
	f := newSessionFixture(t)
	session := f.activate(t)

	require.NoError(t, f.sessions.Deactivate(session.ID))
	assert.ErrorIs(t, f.sessions.Deactivate(session.ID), errs.ErrSessionNotFound)
	_, err := f.sessions.Get(session.ID)
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

func TestSessionResolver(t *testing.T) {
	jwtService := jwt.NewService("resolver-secret", time.Hour)

	t.Run("success: token resolves to its live session", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.activate(t)
		token, err := jwtService.GenerateToken(session.ID, "r-1")
		require.NoError(t, err)

		got, err := usecase.NewSessionResolver(jwtService, f.sessions).Resolve(token)

		require.NoError(t, err)
		assert.Same(t, session, got)
	})

	t.Run("error: token issued for another restaurant", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.activate(t)
		token, err := jwtService.GenerateToken(session.ID, "r-2")
		require.NoError(t, err)

		_, err = usecase.NewSessionResolver(jwtService, f.sessions).Resolve(token)

		assert.True(t, errs.Is(err, errs.ErrSessionNotFound))
	})

	t.Run("error: malformed token", func(t *testing.T) {
		f := newSessionFixture(t)

		_, err := usecase.NewSessionResolver(jwtService, f.sessions).Resolve("not-a-jwt")

		assert.True(t, errs.Is(err, errs.ErrSessionNotFound))
	})

	t.Run("error: session was deactivated", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.activate(t)
		token, err := jwtService.GenerateToken(session.ID, "r-1")
		require.NoError(t, err)
		require.NoError(t, f.sessions.Deactivate(session.ID))

		_, err = usecase.NewSessionResolver(jwtService, f.sessions).Resolve(token)

		assert.True(t, errs.Is(err, errs.ErrSessionNotFound))
	})
}
