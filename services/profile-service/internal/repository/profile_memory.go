package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
)

// InMemoryProfileRepository keeps profiles in process memory. It honours the same
// uniqueness and ownership conditions as the MongoDB repository.
type InMemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[bson.ObjectID]model.Profile
	byEmail  map[string]bson.ObjectID
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		profiles: make(map[bson.ObjectID]model.Profile),
		byEmail:  make(map[string]bson.ObjectID),
	}
}

func (r *InMemoryProfileRepository) CreateProfile(_ context.Context, profile *model.Profile) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[profile.LoginDetails.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	now := time.Now().UTC()
	profile.ID = bson.NewObjectID()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	r.profiles[profile.ID] = cloneProfile(*profile)
	r.byEmail[profile.LoginDetails.Email] = profile.ID

	return profile, nil
}

func (r *InMemoryProfileRepository) GetProfile(_ context.Context, id string) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[objectID]
	if !ok {
		return nil, ErrNotFound
	}

	clone := cloneProfile(profile)
	return &clone, nil
}

func (r *InMemoryProfileRepository) GetProfileByEmail(_ context.Context, email string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}

	clone := cloneProfile(r.profiles[id])
	return &clone, nil
}

func (r *InMemoryProfileRepository) UpdateProfile(
	_ context.Context,
	id, ownerEmail string,
	params UpdateProfileParams,
) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[objectID]
	if !ok || profile.LoginDetails.Email != ownerEmail {
		return nil, ErrNotFound
	}

	if len(params.fields()) == 0 {
		clone := cloneProfile(profile)
		return &clone, nil
	}

	if params.Email != nil && *params.Email != ownerEmail {
		if _, taken := r.byEmail[*params.Email]; taken {
			return nil, ErrDuplicateEmail
		}
	}

	applyUpdate(&profile, params)
	profile.UpdatedAt = time.Now().UTC()

	if profile.LoginDetails.Email != ownerEmail {
		delete(r.byEmail, ownerEmail)
		r.byEmail[profile.LoginDetails.Email] = objectID
	}
	r.profiles[objectID] = cloneProfile(profile)

	clone := cloneProfile(profile)
	return &clone, nil
}

func (r *InMemoryProfileRepository) DeleteProfile(_ context.Context, id, ownerEmail string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[objectID]
	if !ok || profile.LoginDetails.Email != ownerEmail {
		return ErrNotFound
	}

	delete(r.profiles, objectID)
	delete(r.byEmail, ownerEmail)

	return nil
}

func applyUpdate(profile *model.Profile, p UpdateProfileParams) {
	if p.FirstName != nil {
		profile.PersonalInfo.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		profile.PersonalInfo.LastName = *p.LastName
	}
	if p.DateOfBirth != nil {
		dob := *p.DateOfBirth
		profile.PersonalInfo.DateOfBirth = &dob
	}
	if p.PlaceOfBirth != nil {
		profile.PersonalInfo.PlaceOfBirth = *p.PlaceOfBirth
	}
	if p.Nationality != nil {
		profile.PersonalInfo.Nationality = *p.Nationality
	}
	if p.EducationalBackground != nil {
		profile.PersonalInfo.EducationalBackground = *p.EducationalBackground
	}
	if p.EmploymentHistory != nil {
		profile.EmploymentHistory = *p.EmploymentHistory
	}
	if p.Interests != nil {
		profile.AdditionalInfo.Interests = *p.Interests
	}
	if p.Goals != nil {
		profile.AdditionalInfo.Goals = *p.Goals
	}
	if p.Email != nil {
		profile.LoginDetails.Email = *p.Email
	}
	if p.PasswordHash != nil {
		profile.LoginDetails.PasswordHash = *p.PasswordHash
	}
}

func cloneProfile(p model.Profile) model.Profile {
	p.PersonalInfo.EducationalBackground = slices.Clone(p.PersonalInfo.EducationalBackground)
	p.EmploymentHistory = slices.Clone(p.EmploymentHistory)
	p.AdditionalInfo.Interests = slices.Clone(p.AdditionalInfo.Interests)
	p.AdditionalInfo.Goals = slices.Clone(p.AdditionalInfo.Goals)
	return p
}
