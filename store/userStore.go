package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUserNotFound = errors.New("user not found")

type UserStore struct {
	collection *mongo.Collection
}

func NewUserStore(collection *mongo.Collection) *UserStore {
	return &UserStore{collection: collection}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()
	}
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("%w: insert user: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStoreUnavailable, err)
	}
	return &user, nil
}

func (s *UserStore) CountByEmail(ctx context.Context, email string) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return 0, fmt.Errorf("%w: count users: %v", ErrStoreUnavailable, err)
	}
	return count, nil
}
