package store

import (
	"errors"

	"github.com/Madhav-Gupta-28/storefront-backend-go/database"
	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore implements CatalogStore and OrderStore on top of three collections.
type MongoStore struct {
	categories *mongo.Collection
	products   *mongo.Collection
	orders     *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		categories: db.Collection(database.CategoriesCollection),
		products:   db.Collection(database.ProductsCollection),
		orders:     db.Collection(database.OrdersCollection),
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

func productQuery(f models.ProductFilter) bson.M {
	q := bson.M{}
	switch len(f.CategoryIDs) {
	case 0:
	case 1:
		q["category"] = f.CategoryIDs[0]
	default:
		q["category"] = bson.M{"$in": f.CategoryIDs}
	}
	if len(f.Colors) > 0 {
		q["colors"] = bson.M{"$in": f.Colors}
	}
	if len(f.Sizes) > 0 {
		q["sizes"] = bson.M{"$in": f.Sizes}
	}
	if len(f.Materials) > 0 {
		q["materials"] = bson.M{"$in": f.Materials}
	}
	if f.Gender != "" {
		q["gender"] = f.Gender
	}
	if f.NewArrival != nil {
		q["newArrival"] = *f.NewArrival
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}
	if f.MinHeight != nil || f.MaxHeight != nil {
		height := bson.M{}
		if f.MinHeight != nil {
			height["$gte"] = *f.MinHeight
		}
		if f.MaxHeight != nil {
			height["$lte"] = *f.MaxHeight
		}
		q["height"] = height
	}
	return q
}

// orderQuery matches From inclusive and To exclusive on createdAt.
func orderQuery(f models.OrderFilter) bson.M {
	q := bson.M{}
	if f.ID != nil {
		q["_id"] = *f.ID
	}
	if len(f.Statuses) > 0 {
		q["status"] = bson.M{"$in": f.Statuses}
	}
	if f.From != nil || f.To != nil {
		created := bson.M{}
		if f.From != nil {
			created["$gte"] = *f.From
		}
		if f.To != nil {
			created["$lt"] = *f.To
		}
		q["createdAt"] = created
	}
	return q
}
