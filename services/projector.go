package services

import (
	"context"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/Madhav-Gupta-28/storefront-backend-go/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Projector joins stored order lines against the live catalog.
//
// Each line gets the product's current name, thumbnail, price and category
// name. The purchase-time price stays on the line itself. A product or
// category deleted since the order was placed is reported with Missing set
// and its id preserved; the line is never dropped.
type Projector struct {
	catalog store.CatalogStore
}

func NewProjector(catalog store.CatalogStore) *Projector {
	return &Projector{catalog: catalog}
}

func (p *Projector) Project(ctx context.Context, orders []models.Order) ([]models.OrderView, error) {
	productIDs := uniqueIDs(len(orders), func(add func(primitive.ObjectID)) {
		for _, o := range orders {
			for _, item := range o.Products {
				add(item.Product)
			}
		}
	})
	products, err := p.catalog.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	categoryIDs := uniqueIDs(len(products), func(add func(primitive.ObjectID)) {
		for _, prod := range products {
			add(prod.Category)
		}
	})
	categories, err := p.catalog.FindCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		lines := make([]models.OrderLineView, 0, len(o.Products))
		for _, item := range o.Products {
			lines = append(lines, models.OrderLineView{
				Quantity:      item.Quantity,
				Price:         item.Price,
				SelectedColor: item.SelectedColor,
				SelectedSize:  item.SelectedSize,
				Product:       summarize(item.Product, products, categories),
			})
		}
		views = append(views, models.OrderView{Order: o, Products: lines})
	}
	return views, nil
}

func summarize(id primitive.ObjectID, products map[primitive.ObjectID]models.Product, categories map[primitive.ObjectID]models.Category) models.ProductSummary {
	prod, ok := products[id]
	if !ok {
		return models.ProductSummary{ID: id, Missing: true}
	}
	return models.ProductSummary{
		ID:           prod.ID,
		Name:         prod.Name,
		ThumbnailURL: prod.ImageURLs.Thumbnail,
		Price:        prod.Price,
		Category:     categoryRef(prod.Category, categories),
	}
}

func categoryRef(id primitive.ObjectID, categories map[primitive.ObjectID]models.Category) models.CategoryRef {
	c, ok := categories[id]
	if !ok {
		return models.CategoryRef{ID: id, Missing: true}
	}
	return models.CategoryRef{ID: c.ID, Name: c.Name}
}

func uniqueIDs(hint int, collect func(add func(primitive.ObjectID))) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, hint)
	ids := make([]primitive.ObjectID, 0, hint)
	collect(func(id primitive.ObjectID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	})
	return ids
}
