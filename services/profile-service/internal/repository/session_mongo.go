package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/model"
)

const sessionCollection = "sessions"

type sessionMongoRepository struct {
	db  *mongo.Database
	now func() time.Time
}

// NewSessionMongoRepository stores sessions in MongoDB. A TTL index on expires_at lets
// the server purge expired sessions; GetSession also checks the expiry because the
// TTL monitor only runs periodically.
func NewSessionMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) SessionRepository {
	collection := db.Collection(sessionCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session indexes")
	}

	return &sessionMongoRepository{db: db, now: time.Now}
}

func (r *sessionMongoRepository) CreateSession(ctx context.Context, session *model.Session) (*model.Session, error) {
	session.ID = uuid.NewString()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = r.now().UTC()
	}

	if session.Expired(r.now()) {
		return nil, errors.New("session already expired")
	}

	if _, err := r.db.Collection(sessionCollection).InsertOne(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (r *sessionMongoRepository) GetSession(ctx context.Context, id string) (*model.Session, error) {
	result := r.db.Collection(sessionCollection).FindOne(ctx, bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": r.now().UTC()},
	})
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := result.Decode(&session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *sessionMongoRepository) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.Collection(sessionCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
