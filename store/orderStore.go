package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// OrderFilter narrows order queries. Zero values mean "no constraint".
type OrderFilter struct {
	Status models.OrderStatus
	UserID string
	From   *time.Time
	To     *time.Time

	// SortByReadyAt orders results by ready_at ascending (oldest ready
	// first); the default is created_at descending.
	SortByReadyAt bool
}

// OrderStore persists orders in the `orders` collection. Every mutation is a
// bounded single-document update; the collection is the single source of
// truth and nothing is cached across calls.
type OrderStore struct {
	collection *mongo.Collection
}

func NewOrderStore(collection *mongo.Collection) *OrderStore {
	return &OrderStore{collection: collection}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("%w: insert order: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var order models.Order
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: find order: %v", ErrStoreUnavailable, err)
	}
	return &order, nil
}

func (s *OrderStore) Find(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.From != nil || filter.To != nil {
		createdAt := bson.M{}
		if filter.From != nil {
			createdAt["$gte"] = *filter.From
		}
		if filter.To != nil {
			createdAt["$lt"] = *filter.To
		}
		query["created_at"] = createdAt
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if filter.SortByReadyAt {
		sort = bson.D{{Key: "ready_at", Value: 1}}
	}

	cursor, err := s.collection.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("%w: find orders: %v", ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("%w: decode orders: %v", ErrStoreUnavailable, err)
	}
	return orders, nil
}

// SetStatus writes the new status and derived timestamps in one document
// update. ReadyAt and completedAt are written only when non-nil, so an
// already-stamped field is never overwritten.
func (s *OrderStore) SetStatus(ctx context.Context, id string, status models.OrderStatus, updatedAt time.Time, readyAt, completedAt *time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}

	set := bson.M{
		"status":     status,
		"updated_at": updatedAt,
	}
	if readyAt != nil {
		set["ready_at"] = *readyAt
	}
	if completedAt != nil {
		set["completed_at"] = *completedAt
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: update order status: %v", ErrStoreUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderStore) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrOrderNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("%w: delete order: %v", ErrStoreUnavailable, err)
	}
	if result.DeletedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}
