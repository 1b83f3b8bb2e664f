package store

import (
	"context"
	"fmt"
	"time"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PopularItem is one row of the popular-items aggregation.
type PopularItem struct {
	MenuItemID    string  `bson:"_id" json:"menu_item_id"`
	Name          string  `bson:"name" json:"name"`
	TotalQuantity int     `bson:"total_quantity" json:"total_quantity"`
	TotalRevenue  float64 `bson:"total_revenue" json:"total_revenue"`
	OrderCount    int     `bson:"order_count" json:"order_count"`
}

// PopularItems aggregates line items across orders created since the given
// time, grouped by menu item and sorted by quantity sold.
func (s *OrderStore) PopularItems(ctx context.Context, since time.Time, limit int) ([]PopularItem, error) {
	matchStage := bson.D{{Key: "$match", Value: bson.D{
		{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
	}}}
	unwindStage := bson.D{{Key: "$unwind", Value: "$items"}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$items.menu_item_id"},
		{Key: "name", Value: bson.D{{Key: "$first", Value: "$items.name"}}},
		{Key: "total_quantity", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
		{Key: "total_revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
			{Key: "$multiply", Value: bson.A{"$items.price", "$items.quantity"}},
		}}}},
		{Key: "order_count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "total_quantity", Value: -1}}}}
	limitStage := bson.D{{Key: "$limit", Value: int64(limit)}}

	cursor, err := s.collection.Aggregate(ctx, mongo.Pipeline{matchStage, unwindStage, groupStage, sortStage, limitStage})
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate popular items: %v", ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	items := []PopularItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%w: decode popular items: %v", ErrStoreUnavailable, err)
	}
	return items, nil
}

// RevenueBucket is one row of the revenue aggregation, keyed by day or month.
type RevenueBucket struct {
	Date              string  `bson:"_id" json:"date"`
	Revenue           float64 `bson:"revenue" json:"revenue"`
	OrderCount        int     `bson:"order_count" json:"order_count"`
	AverageOrderValue float64 `bson:"average_order_value" json:"average_order_value"`
}

// RevenueBuckets aggregates non-cancelled order revenue into date buckets for
// orders created in [from, to). A nil `to` leaves the range open-ended.
func (s *OrderStore) RevenueBuckets(ctx context.Context, from time.Time, to *time.Time, monthly bool) ([]RevenueBucket, error) {
	created := bson.D{{Key: "$gte", Value: from}}
	if to != nil {
		created = append(created, bson.E{Key: "$lt", Value: *to})
	}
	format := "%Y-%m-%d"
	if monthly {
		format = "%Y-%m"
	}

	matchStage := bson.D{{Key: "$match", Value: bson.D{
		{Key: "created_at", Value: created},
		{Key: "status", Value: bson.D{{Key: "$ne", Value: models.StatusCancelled}}},
	}}}
	groupStage := bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
			{Key: "format", Value: format},
			{Key: "date", Value: "$created_at"},
		}}}},
		{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		{Key: "order_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "average_order_value", Value: bson.D{{Key: "$avg", Value: "$total"}}},
	}}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}}

	cursor, err := s.collection.Aggregate(ctx, mongo.Pipeline{matchStage, groupStage, sortStage})
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate revenue: %v", ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	buckets := []RevenueBucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("%w: decode revenue: %v", ErrStoreUnavailable, err)
	}
	return buckets, nil
}
