package mongo

import (
	"context"
	"time"

	"bathroom/internal/domain/entity"
	domainerrors "bathroom/internal/domain/errors"
	"bathroom/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const userCollection = "users"

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository ensures the users indexes exist and returns the repository.
func NewUserRepository(ctx context.Context, db *mongo.Database) (repository.UserRepository, error) {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "homeLocation.point", Value: "2dsphere"}},
			Options: options.Index().SetName("geo_users_home"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, errors.Wrap(err, "failed to create user indexes")
	}

	return &userRepository{collection: collection}, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := repository.CheckStorable(user); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domainerrors.ErrUserCreationFailed.WrapMessage("failed to generate user id")
	}
	// BSON dates keep milliseconds only.
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := fromUserDomain(user)
	doc.ID = id.String()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return createError(err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

// createError maps a failed insert; the unique email index reports collisions.
func createError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
}

func (r *userRepository) FindByEmail(ctx context.Context, email string, includeSecret bool) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": entity.NormalizeEmail(email)}, includeSecret)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()}, false)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx,
		bson.M{"email": entity.NormalizeEmail(email)},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check email")
	}

	return count > 0, nil
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, includeSecret bool) (*entity.User, error) {
	findOpts := options.FindOne()
	if !includeSecret {
		findOpts.SetProjection(bson.M{"password": 0})
	}

	var doc userDocument
	if err := r.collection.FindOne(ctx, filter, findOpts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	user, err := toUserDomain(&doc)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "stored user has a malformed id")
	}

	return user, nil
}
