package store

import (
	"context"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStore) InsertOrder(ctx context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := s.orders.InsertOne(ctx, o)
	return translate(err)
}

func (s *MongoStore) FindOrders(ctx context.Context, f models.OrderFilter, skip, limit int) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if skip > 0 {
		opts.SetSkip(int64(skip))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.orders.Find(ctx, orderQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoStore) CountOrders(ctx context.Context, f models.OrderFilter) (int64, error) {
	return s.orders.CountDocuments(ctx, orderQuery(f))
}

func (s *MongoStore) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, from []models.OrderStatus, to models.OrderStatus) (*models.Order, error) {
	filter := bson.M{"_id": id}
	if len(from) > 0 {
		filter["status"] = bson.M{"$in": from}
	}
	update := bson.M{
		"$set": bson.M{
			"status":    to,
			"updatedAt": time.Now(),
		},
	}

	var order models.Order
	err := s.orders.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if err != mongo.ErrNoDocuments || len(from) == 0 {
		return nil, translate(err)
	}

	n, err := s.orders.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrConditionFailed
}

func (s *MongoStore) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ScanOrders(ctx context.Context, f models.OrderFilter, fn func(*models.Order) error) error {
	opts := options.Find().SetProjection(bson.M{
		"status":     1,
		"totalPrice": 1,
		"currency":   1,
		"createdAt":  1,
	})
	cursor, err := s.orders.Find(ctx, orderQuery(f), opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var o models.Order
		if err := cursor.Decode(&o); err != nil {
			return err
		}
		if err := fn(&o); err != nil {
			return err
		}
	}
	return cursor.Err()
}
