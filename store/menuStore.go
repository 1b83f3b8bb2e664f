package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuStore persists the menu catalog in the `menu_items` collection. The
// lifecycle engine only consumes Resolve; the CRUD surface serves the admin
// menu endpoints.
type MenuStore struct {
	collection *mongo.Collection
}

func NewMenuStore(collection *mongo.Collection) *MenuStore {
	return &MenuStore{collection: collection}
}

// Resolve looks up a menu item by id for order-time snapshotting.
func (s *MenuStore) Resolve(ctx context.Context, itemID string) (*models.MenuItem, error) {
	return s.FindByID(ctx, itemID)
}

func (s *MenuStore) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}

	var item models.MenuItem
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMenuItemNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: find menu item: %v", ErrStoreUnavailable, err)
	}
	return &item, nil
}

// MenuFilter narrows menu listings.
type MenuFilter struct {
	Category      string
	AvailableOnly bool
}

func (s *MenuStore) Find(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.AvailableOnly {
		query["available"] = true
	}

	sort := bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}
	cursor, err := s.collection.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("%w: find menu items: %v", ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%w: decode menu items: %v", ErrStoreUnavailable, err)
	}
	return items, nil
}

func (s *MenuStore) Insert(ctx context.Context, item *models.MenuItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("%w: insert menu item: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *MenuStore) Update(ctx context.Context, id string, update bson.M) (*models.MenuItem, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("%w: update menu item: %v", ErrStoreUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrMenuItemNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *MenuStore) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrMenuItemNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("%w: delete menu item: %v", ErrStoreUnavailable, err)
	}
	if result.DeletedCount == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
