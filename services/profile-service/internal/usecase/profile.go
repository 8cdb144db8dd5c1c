package usecase

import (
	"context"
	"errors"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/repository"
	"github.com/vasapolrittideah/user-profile-api/shared/security"
)

// ProfileUsecase defines the business logic for profile operations.
type ProfileUsecase interface {
	// Register stores a new profile and returns its id. No session is created.
	Register(ctx context.Context, params RegisterParams) (string, error)

	// GetProfile returns the profile with the given id.
	GetProfile(ctx context.Context, id string) (*model.Profile, error)

	// UpdateProfile applies params to the profile with the given id. The caller must
	// own the profile as it is stored before the update.
	UpdateProfile(ctx context.Context, caller *model.Session, id string, params UpdateProfileParams) (*model.Profile, error)

	// DeleteProfile permanently removes the profile with the given id. The caller
	// must own the profile.
	DeleteProfile(ctx context.Context, caller *model.Session, id string) error
}

// RegisterParams defines the parameters for registering a profile. Password is plaintext.
type RegisterParams struct {
	PersonalInfo      model.PersonalInfo
	EmploymentHistory []model.Employment
	AdditionalInfo    model.Additional
	Email             string
	Password          string
}

// UpdateProfileParams defines the optional fields of a profile update.
// Only the fields that are not nil will be updated. Password is plaintext.
type UpdateProfileParams struct {
	FirstName             *string
	LastName              *string
	DateOfBirth           *model.Date
	PlaceOfBirth          *string
	Nationality           *string
	EducationalBackground *[]string
	EmploymentHistory     *[]model.Employment
	Interests             *[]string
	Goals                 *[]string
	Email                 *string
	Password              *string
}

var (
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrMissingCredentials   = errors.New("email and password are required")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrInvalidProfileID     = errors.New("invalid profile id")
)

type profileUsecase struct {
	profileRepo repository.ProfileRepository
}

// NewProfileUsecase creates a new instance of ProfileUsecase.
func NewProfileUsecase(profileRepo repository.ProfileRepository) ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo}
}

func (u *profileUsecase) Register(ctx context.Context, params RegisterParams) (string, error) {
	if params.Email == "" || params.Password == "" {
		return "", ErrMissingCredentials
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return "", err
	}

	profile := &model.Profile{
		PersonalInfo:      params.PersonalInfo,
		EmploymentHistory: nonNil(params.EmploymentHistory),
		AdditionalInfo: model.Additional{
			Interests: uniqueStrings(params.AdditionalInfo.Interests),
			Goals:     uniqueStrings(params.AdditionalInfo.Goals),
		},
		LoginDetails: model.LoginDetails{
			Email:        params.Email,
			PasswordHash: passwordHash,
		},
	}
	profile.PersonalInfo.EducationalBackground = nonNil(profile.PersonalInfo.EducationalBackground)

	created, err := u.profileRepo.CreateProfile(ctx, profile)
	if err != nil {
		return "", mapRepositoryError(err)
	}

	return created.ID.Hex(), nil
}

func (u *profileUsecase) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	profile, err := u.profileRepo.GetProfile(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return profile, nil
}

func (u *profileUsecase) UpdateProfile(
	ctx context.Context,
	caller *model.Session,
	id string,
	params UpdateProfileParams,
) (*model.Profile, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	target, err := u.loadTarget(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.authorize(ctx, caller, target); err != nil {
		return nil, err
	}

	repoParams, err := toRepositoryParams(params)
	if err != nil {
		return nil, err
	}

	updated, err := u.profileRepo.UpdateProfile(ctx, id, target.LoginDetails.Email, repoParams)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return updated, nil
}

func (u *profileUsecase) DeleteProfile(ctx context.Context, caller *model.Session, id string) error {
	target, err := u.loadTarget(ctx, id)
	if err != nil {
		return err
	}

	if caller == nil {
		return ErrUnauthorized
	}

	if err := u.authorize(ctx, caller, target); err != nil {
		return err
	}

	if err := u.profileRepo.DeleteProfile(ctx, id, target.LoginDetails.Email); err != nil {
		return mapRepositoryError(err)
	}

	return nil
}

func (u *profileUsecase) loadTarget(ctx context.Context, id string) (*model.Profile, error) {
	target, err := u.profileRepo.GetProfile(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return target, nil
}

// authorize checks that the caller's current email is the target's current email.
func (u *profileUsecase) authorize(ctx context.Context, caller *model.Session, target *model.Profile) error {
	if caller.ProfileID == target.ID.Hex() {
		return nil
	}

	callerProfile, err := u.profileRepo.GetProfile(ctx, caller.ProfileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return ErrUnauthorized
		}
		return err
	}

	if callerProfile.LoginDetails.Email != target.LoginDetails.Email {
		return ErrUnauthorized
	}

	return nil
}

func toRepositoryParams(p UpdateProfileParams) (repository.UpdateProfileParams, error) {
	params := repository.UpdateProfileParams{
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		DateOfBirth:           p.DateOfBirth,
		PlaceOfBirth:          p.PlaceOfBirth,
		Nationality:           p.Nationality,
		EducationalBackground: nonNilPtr(p.EducationalBackground),
		EmploymentHistory:     nonNilPtr(p.EmploymentHistory),
	}

	if p.Interests != nil {
		interests := uniqueStrings(*p.Interests)
		params.Interests = &interests
	}
	if p.Goals != nil {
		goals := uniqueStrings(*p.Goals)
		params.Goals = &goals
	}

	if p.Email != nil {
		if *p.Email == "" {
			return params, ErrMissingCredentials
		}
		params.Email = p.Email
	}

	if p.Password != nil {
		if *p.Password == "" {
			return params, ErrMissingCredentials
		}
		passwordHash, err := security.HashPassword(*p.Password)
		if err != nil {
			return params, err
		}
		params.PasswordHash = &passwordHash
	}

	return params, nil
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProfileNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return ErrInvalidProfileID
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrProfileAlreadyExists
	default:
		return err
	}
}

// uniqueStrings drops repeated values, keeping the first occurrence of each.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

func nonNilPtr[T any](values *[]T) *[]T {
	if values == nil {
		return nil
	}
	out := nonNil(*values)
	return &out
}
