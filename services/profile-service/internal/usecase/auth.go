package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/config"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/repository"
	"github.com/vasapolrittideah/user-profile-api/shared/auth"
	"github.com/vasapolrittideah/user-profile-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (*SessionToken, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*model.Session, error)
}

// LoginParams defines the parameters for user login. PreviousToken is the session
// token the client presented, if any; it is revoked when the login succeeds.
type LoginParams struct {
	Email         string
	Password      string
	PreviousToken string
}

// SessionToken is the signed value handed to the client as its session cookie.
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized access")
)

type authUsecase struct {
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	jwtAuth     auth.JWTAuthenticator
	sessionCfg  config.SessionConfig
	now         func() time.Time
}

func NewAuthUsecase(
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	jwtAuth auth.JWTAuthenticator,
	sessionCfg config.SessionConfig,
) AuthUsecase {
	return &authUsecase{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		jwtAuth:     jwtAuth,
		sessionCfg:  sessionCfg,
		now:         time.Now,
	}
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*SessionToken, error) {
	if params.Email == "" || params.Password == "" {
		return nil, ErrInvalidCredentials
	}

	profile, err := u.profileRepo.GetProfileByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, profile.LoginDetails.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if params.PreviousToken != "" {
		if err := u.Logout(ctx, params.PreviousToken); err != nil {
			return nil, err
		}
	}

	return u.createSession(ctx, profile.ID.Hex())
}

func (u *authUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sessionID, err := u.jwtAuth.ParseSessionToken(token, u.sessionCfg.Secret)
	if err != nil {
		// A token we cannot read names no session we could destroy.
		return nil
	}

	return u.sessionRepo.DeleteSession(ctx, sessionID)
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	sessionID, err := u.jwtAuth.ParseSessionToken(token, u.sessionCfg.Secret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	session, err := u.sessionRepo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}

		return nil, err
	}

	return session, nil
}

func (u *authUsecase) createSession(ctx context.Context, profileID string) (*SessionToken, error) {
	now := u.now().UTC()
	expiresAt := now.Add(u.sessionCfg.TTL)

	session, err := u.sessionRepo.CreateSession(ctx, &model.Session{
		ProfileID: profileID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, err
	}

	token, err := u.jwtAuth.GenerateToken(
		u.jwtAuth.NewSessionClaims(session.ID, now, expiresAt),
		u.sessionCfg.Secret,
	)
	if err != nil {
		return nil, err
	}

	return &SessionToken{
		Value:     token,
		ExpiresAt: expiresAt,
	}, nil
}
