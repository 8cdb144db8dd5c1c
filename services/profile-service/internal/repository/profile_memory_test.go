package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
)

type InMemoryProfileRepositorySuite struct {
	suite.Suite
	repo *InMemoryProfileRepository
	ctx  context.Context
}

func TestInMemoryProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryProfileRepositorySuite))
}

func (s *InMemoryProfileRepositorySuite) SetupTest() {
	s.repo = NewInMemoryProfileRepository()
	s.ctx = context.Background()
}

func (s *InMemoryProfileRepositorySuite) create(email string) *model.Profile {
	profile, err := s.repo.CreateProfile(s.ctx, &model.Profile{
		PersonalInfo: model.PersonalInfo{FirstName: "Ada", EducationalBackground: []string{"BSc"}},
		LoginDetails: model.LoginDetails{Email: email, PasswordHash: "hash"},
	})
	s.Require().NoError(err)
	return profile
}

func (s *InMemoryProfileRepositorySuite) TestCreateProfile() {
	s.Run("assigns id and timestamps", func() {
		profile := s.create("a@x.com")
		s.False(profile.ID.IsZero())
		s.False(profile.CreatedAt.IsZero())
		s.Equal(profile.CreatedAt, profile.UpdatedAt)
	})

	s.Run("rejects duplicate email", func() {
		_, err := s.repo.CreateProfile(s.ctx, &model.Profile{
			LoginDetails: model.LoginDetails{Email: "a@x.com", PasswordHash: "hash"},
		})
		s.Require().ErrorIs(err, ErrDuplicateEmail)
	})
}

func (s *InMemoryProfileRepositorySuite) TestGetProfile() {
	created := s.create("a@x.com")

	s.Run("by id", func() {
		found, err := s.repo.GetProfile(s.ctx, created.ID.Hex())
		s.Require().NoError(err)
		s.Equal(created.LoginDetails.Email, found.LoginDetails.Email)
	})

	s.Run("by email", func() {
		found, err := s.repo.GetProfileByEmail(s.ctx, "a@x.com")
		s.Require().NoError(err)
		s.Equal(created.ID, found.ID)
	})

	s.Run("malformed id", func() {
		_, err := s.repo.GetProfile(s.ctx, "not-an-object-id")
		s.Require().ErrorIs(err, ErrInvalidID)
	})

	s.Run("unknown id", func() {
		_, err := s.repo.GetProfile(s.ctx, bson.NewObjectID().Hex())
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("returned documents do not alias stored state", func() {
		found, err := s.repo.GetProfile(s.ctx, created.ID.Hex())
		s.Require().NoError(err)
		found.PersonalInfo.EducationalBackground[0] = "mutated"

		again, err := s.repo.GetProfile(s.ctx, created.ID.Hex())
		s.Require().NoError(err)
		s.Equal("BSc", again.PersonalInfo.EducationalBackground[0])
	})
}

func (s *InMemoryProfileRepositorySuite) TestUpdateProfile() {
	created := s.create("a@x.com")
	s.create("taken@x.com")

	s.Run("applies only provided fields", func() {
		name := "Grace"
		updated, err := s.repo.UpdateProfile(s.ctx, created.ID.Hex(), "a@x.com", UpdateProfileParams{FirstName: &name})
		s.Require().NoError(err)
		s.Equal("Grace", updated.PersonalInfo.FirstName)
		s.Equal([]string{"BSc"}, updated.PersonalInfo.EducationalBackground)
		s.Equal(created.ID, updated.ID)
	})

	s.Run("owner mismatch is reported as not found", func() {
		name := "Mallory"
		_, err := s.repo.UpdateProfile(s.ctx, created.ID.Hex(), "taken@x.com", UpdateProfileParams{FirstName: &name})
		s.Require().ErrorIs(err, ErrNotFound)
	})

	s.Run("email collision", func() {
		email := "taken@x.com"
		_, err := s.repo.UpdateProfile(s.ctx, created.ID.Hex(), "a@x.com", UpdateProfileParams{Email: &email})
		s.Require().ErrorIs(err, ErrDuplicateEmail)
	})

	s.Run("email change re-keys the email index", func() {
		email := "new@x.com"
		_, err := s.repo.UpdateProfile(s.ctx, created.ID.Hex(), "a@x.com", UpdateProfileParams{Email: &email})
		s.Require().NoError(err)

		_, err = s.repo.GetProfileByEmail(s.ctx, "a@x.com")
		s.Require().ErrorIs(err, ErrNotFound)

		found, err := s.repo.GetProfileByEmail(s.ctx, "new@x.com")
		s.Require().NoError(err)
		s.Equal(created.ID, found.ID)
	})

	s.Run("empty update returns current document", func() {
		found, err := s.repo.UpdateProfile(s.ctx, created.ID.Hex(), "new@x.com", UpdateProfileParams{})
		s.Require().NoError(err)
		s.Equal("Grace", found.PersonalInfo.FirstName)
	})
}

func (s *InMemoryProfileRepositorySuite) TestDeleteProfile() {
	created := s.create("a@x.com")

	s.Run("owner mismatch leaves the profile in place", func() {
		err := s.repo.DeleteProfile(s.ctx, created.ID.Hex(), "someone@x.com")
		s.Require().ErrorIs(err, ErrNotFound)

		_, err = s.repo.GetProfile(s.ctx, created.ID.Hex())
		s.Require().NoError(err)
	})

	s.Run("deletes once", func() {
		s.Require().NoError(s.repo.DeleteProfile(s.ctx, created.ID.Hex(), "a@x.com"))
		s.Require().ErrorIs(s.repo.DeleteProfile(s.ctx, created.ID.Hex(), "a@x.com"), ErrNotFound)

		_, err := s.repo.GetProfileByEmail(s.ctx, "a@x.com")
		s.Require().ErrorIs(err, ErrNotFound)
	})
}
