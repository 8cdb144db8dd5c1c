package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
)

var (
	ErrNotFound       = errors.New("profile not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidID      = errors.New("invalid profile id")
)

// ProfileRepository defines the interface for profile-related database operations.
//
// UpdateProfile and DeleteProfile are conditional on the profile still being owned by
// ownerEmail; when the condition does not hold they return ErrNotFound.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, id, ownerEmail string, params UpdateProfileParams) (*model.Profile, error)
	DeleteProfile(ctx context.Context, id, ownerEmail string) error
}

// UpdateProfileParams defines the optional parameters for updating a profile.
// Only the fields that are not nil will be updated.
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
	PasswordHash          *string
}

// fields returns the dotted document paths to $set.
func (p UpdateProfileParams) fields() bson.M {
	set := bson.M{}
	if p.FirstName != nil {
		set["personalInfo.firstName"] = *p.FirstName
	}
	if p.LastName != nil {
		set["personalInfo.lastName"] = *p.LastName
	}
	if p.DateOfBirth != nil {
		set["personalInfo.dateOfBirth"] = *p.DateOfBirth
	}
	if p.PlaceOfBirth != nil {
		set["personalInfo.placeOfBirth"] = *p.PlaceOfBirth
	}
	if p.Nationality != nil {
		set["personalInfo.nationality"] = *p.Nationality
	}
	if p.EducationalBackground != nil {
		set["personalInfo.educationalBackground"] = *p.EducationalBackground
	}
	if p.EmploymentHistory != nil {
		set["employmentHistory"] = *p.EmploymentHistory
	}
	if p.Interests != nil {
		set["additionalInfo.interests"] = *p.Interests
	}
	if p.Goals != nil {
		set["additionalInfo.goals"] = *p.Goals
	}
	if p.Email != nil {
		set["loginDetails.email"] = *p.Email
	}
	if p.PasswordHash != nil {
		set["loginDetails.password"] = *p.PasswordHash
	}
	return set
}

const profileCollection = "profiles"

type profileMongoRepository struct {
	db *mongo.Database
}

func NewProfileMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProfileRepository {
	collection := db.Collection(profileCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "loginDetails.email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create profile indexes")
	}

	return &profileMongoRepository{db: db}
}

func (r *profileMongoRepository) CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.db.Collection(profileCollection).InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		profile.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return profile, nil
}

func (r *profileMongoRepository) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *profileMongoRepository) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return r.findOne(ctx, bson.M{"loginDetails.email": email})
}

func (r *profileMongoRepository) UpdateProfile(
	ctx context.Context,
	id, ownerEmail string,
	params UpdateProfileParams,
) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	filter := bson.M{"_id": objectID, "loginDetails.email": ownerEmail}

	updateMap := params.fields()
	if len(updateMap) == 0 {
		return r.findOne(ctx, filter)
	}

	updateMap["updatedAt"] = time.Now().UTC()

	result := r.db.Collection(profileCollection).FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileMongoRepository) DeleteProfile(ctx context.Context, id, ownerEmail string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.db.Collection(profileCollection).DeleteOne(ctx, bson.M{
		"_id":                objectID,
		"loginDetails.email": ownerEmail,
	})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *profileMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Profile, error) {
	result := r.db.Collection(profileCollection).FindOne(ctx, filter)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
