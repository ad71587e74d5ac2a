package usecase

import (
	"perfect-widget/internal/pkg/errs"
	"perfect-widget/internal/pkg/jwt"
)

// SessionResolver turns a widget session token into the live session it was
// issued for.
type SessionResolver interface {
	Resolve(token string) (*WidgetSession, error)
}

type sessionResolverImpl struct {
	jwtService *jwt.Service
	sessions   *WidgetSessions
}

func NewSessionResolver(jwtService *jwt.Service, sessions *WidgetSessions) SessionResolver {
	return &sessionResolverImpl{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

func (r *sessionResolverImpl) Resolve(token string) (*WidgetSession, error) {
	claims, err := r.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "validate session token"), errs.ErrSessionNotFound)
	}
	session, err := r.sessions.Get(claims.SessionID)
	if err != nil {
		return nil, err
	}
	// a token minted under another API key must not reach this restaurant's flow
	if claims.RestaurantID != session.Restaurant.ID {
		return nil, errs.Wrapf(errs.ErrSessionNotFound, "session %s belongs to another restaurant", claims.SessionID)
	}
	return session, nil
}
