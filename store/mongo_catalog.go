package store

import (
	"context"
	"sort"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStore) InsertCategory(ctx context.Context, c *models.Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := s.categories.InsertOne(ctx, c)
	return translate(err)
}

func (s *MongoStore) FindCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *MongoStore) FindCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error) {
	out := make(map[primitive.ObjectID]models.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := s.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var c models.Category
		if err := cursor.Decode(&c); err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, cursor.Err()
}

func (s *MongoStore) CategoryNameTaken(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"name": name}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.categories.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *MongoStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MongoStore) UpdateCategory(ctx context.Context, c *models.Category) error {
	update := bson.M{
		"$set": bson.M{
			"name":            c.Name,
			"cardTitle":       c.CardTitle,
			"cardSubtitle":    c.CardSubtitle,
			"cardBgColor":     c.CardBgColor,
			"cardTextColor":   c.CardTextColor,
			"cardGridClasses": c.CardGridClasses,
			"imageUrl":        c.ImageURL,
			"thumbnailUrl":    c.ThumbnailURL,
			"updatedAt":       c.UpdatedAt,
		},
	}
	res, err := s.categories.UpdateOne(ctx, bson.M{"_id": c.ID}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) IncrementProductCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	res, err := s.categories.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"productCount": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) SetProductCount(ctx context.Context, id primitive.ObjectID, count int) error {
	_, err := s.categories.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"productCount": count}})
	return err
}

func (s *MongoStore) InsertProduct(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.products.InsertOne(ctx, p)
	return translate(err)
}

func (s *MongoStore) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *MongoStore) FindProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"viewedBy": 0, "ratedBy": 0, "secondaryImageUrls": 0, "videoUrl": 0})
	cursor, err := s.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, cursor.Err()
}

func (s *MongoStore) ListProducts(ctx context.Context, f models.ProductFilter, skip, limit int) ([]models.Product, int64, error) {
	query := productQuery(f)

	total, err := s.products.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"viewedBy": 0, "ratedBy": 0})
	if skip > 0 {
		opts.SetSkip(int64(skip))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.products.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *MongoStore) CountProducts(ctx context.Context, f models.ProductFilter) (int64, error) {
	return s.products.CountDocuments(ctx, productQuery(f))
}

func (s *MongoStore) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := s.products.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *MongoStore) ProductFacets(ctx context.Context) (*models.ProductFacets, error) {
	facets := &models.ProductFacets{}
	var err error
	if facets.Colors, err = s.distinctStrings(ctx, "colors"); err != nil {
		return nil, err
	}
	if facets.Sizes, err = s.distinctStrings(ctx, "sizes"); err != nil {
		return nil, err
	}
	if facets.Materials, err = s.distinctStrings(ctx, "materials"); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"minPrice": bson.M{"$min": "$price"},
			"maxPrice": bson.M{"$max": "$price"},
		}}},
	}
	cursor, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			MinPrice float64 `bson:"minPrice"`
			MaxPrice float64 `bson:"maxPrice"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		facets.PriceRange = models.PriceRange{MinPrice: row.MinPrice, MaxPrice: row.MaxPrice}
	}
	return facets, cursor.Err()
}

func (s *MongoStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	update := bson.M{
		"$set": bson.M{
			"name":               p.Name,
			"description":        p.Description,
			"price":              p.Price,
			"originalPrice":      p.OriginalPrice,
			"currency":           p.Currency,
			"category":           p.Category,
			"colors":             p.Colors,
			"sizes":              p.Sizes,
			"materials":          p.Materials,
			"gender":             p.Gender,
			"height":             p.Height,
			"newArrival":         p.NewArrival,
			"imageUrls":          p.ImageURLs,
			"secondaryImageUrls": p.SecondaryImageURLs,
			"videoUrl":           p.VideoURL,
			"focusPoint":         p.FocusPoint,
			"updatedAt":          p.UpdatedAt,
		},
	}
	res, err := s.products.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteProductsByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	res, err := s.products.DeleteMany(ctx, bson.M{"category": categoryID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) CountProductsByCategory(ctx context.Context) (map[primitive.ObjectID]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := map[primitive.ObjectID]int{}
	for cursor.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Count int                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cursor.Err()
}

func (s *MongoStore) RecordView(ctx context.Context, id primitive.ObjectID, viewer string) (int, error) {
	var product models.Product
	err := s.products.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "viewedBy": bson.M{"$ne": viewer}},
		bson.M{"$inc": bson.M{"views": 1}, "$push": bson.M{"viewedBy": viewer}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"views": 1}),
	).Decode(&product)
	if err == nil {
		return product.Views, nil
	}
	if err != mongo.ErrNoDocuments {
		return 0, err
	}

	// Either the product is gone or this viewer was already counted.
	err = s.products.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"views": 1})).Decode(&product)
	if err != nil {
		return 0, translate(err)
	}
	return product.Views, nil
}

func (s *MongoStore) AddRating(ctx context.Context, id primitive.ObjectID, rater string, rating int) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "ratedBy": bson.M{"$ne": rater}},
		bson.M{
			"$inc":  bson.M{"reviewCount": 1, "totalRatingSum": rating},
			"$push": bson.M{"ratedBy": rater},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err == nil {
		return &product, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	n, err := s.products.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrConditionFailed
}
