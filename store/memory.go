package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps every collection in process memory. It backs
// STORE_DRIVER=memory and the service and handler tests.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[primitive.ObjectID]models.Category
	products   map[primitive.ObjectID]models.Product
	orders     map[primitive.ObjectID]models.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[primitive.ObjectID]models.Category),
		products:   make(map[primitive.ObjectID]models.Product),
		orders:     make(map[primitive.ObjectID]models.Order),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneProduct(p models.Product) models.Product {
	p.Colors = cloneStrings(p.Colors)
	p.Sizes = cloneStrings(p.Sizes)
	p.Materials = cloneStrings(p.Materials)
	p.Gender = cloneStrings(p.Gender)
	p.ViewedBy = cloneStrings(p.ViewedBy)
	p.RatedBy = cloneStrings(p.RatedBy)
	if p.SecondaryImageURLs != nil {
		p.SecondaryImageURLs = append([]models.ImageSet(nil), p.SecondaryImageURLs...)
	}
	return p
}

func cloneOrder(o models.Order) models.Order {
	o.Products = append([]models.OrderItem(nil), o.Products...)
	if o.DeliveryCompany != nil {
		dc := *o.DeliveryCompany
		o.DeliveryCompany = &dc
	}
	return o
}

func newerFirst(a, b time.Time, aID, bID primitive.ObjectID) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID.Hex() > bID.Hex()
}

func (s *MemoryStore) InsertCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return ErrDuplicate
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *MemoryStore) FindCategory(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) FindCategoriesByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[primitive.ObjectID]models.Category, len(ids))
	for _, id := range ids {
		if c, ok := s.categories[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (s *MemoryStore) CategoryNameTaken(_ context.Context, name string, exclude primitive.ObjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, c := range s.categories {
		if c.Name == name && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID)
	})
	return out, nil
}

func (s *MemoryStore) UpdateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[c.ID]
	if !ok {
		return ErrNotFound
	}
	for id, other := range s.categories {
		if id != c.ID && other.Name == c.Name {
			return ErrDuplicate
		}
	}
	updated := *c
	updated.ProductCount = existing.ProductCount
	updated.CreatedAt = existing.CreatedAt
	s.categories[c.ID] = updated
	return nil
}

func (s *MemoryStore) DeleteCategory(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *MemoryStore) IncrementProductCount(_ context.Context, id primitive.ObjectID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return ErrNotFound
	}
	c.ProductCount += delta
	c.UpdatedAt = time.Now()
	s.categories[id] = c
	return nil
}

func (s *MemoryStore) SetProductCount(_ context.Context, id primitive.ObjectID, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.categories[id]; ok {
		c.ProductCount = count
		s.categories[id] = c
	}
	return nil
}

func (s *MemoryStore) InsertProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.products[p.ID] = cloneProduct(*p)
	return nil
}

func (s *MemoryStore) FindProduct(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = cloneProduct(p)
	return &p, nil
}

func (s *MemoryStore) FindProductsByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[primitive.ObjectID]models.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = cloneProduct(p)
		}
	}
	return out, nil
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func matchProduct(p models.Product, f models.ProductFilter) bool {
	if len(f.CategoryIDs) > 0 {
		found := false
		for _, id := range f.CategoryIDs {
			if p.Category == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Colors) > 0 && !containsAny(p.Colors, f.Colors) {
		return false
	}
	if len(f.Sizes) > 0 && !containsAny(p.Sizes, f.Sizes) {
		return false
	}
	if len(f.Materials) > 0 && !containsAny(p.Materials, f.Materials) {
		return false
	}
	if f.Gender != "" && !containsAny(p.Gender, []string{f.Gender}) {
		return false
	}
	if f.NewArrival != nil && p.NewArrival != *f.NewArrival {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinHeight != nil && (p.Height == nil || *p.Height < *f.MinHeight) {
		return false
	}
	if f.MaxHeight != nil && (p.Height == nil || *p.Height > *f.MaxHeight) {
		return false
	}
	return true
}

// window applies skip and limit. A negative skip counts as 0, as in MongoDB.
func window[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (s *MemoryStore) ListProducts(_ context.Context, f models.ProductFilter, skip, limit int) ([]models.Product, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Product{}
	for _, p := range s.products {
		if matchProduct(p, f) {
			matched = append(matched, cloneProduct(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})
	return window(matched, skip, limit), int64(len(matched)), nil
}

func (s *MemoryStore) CountProducts(_ context.Context, f models.ProductFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, p := range s.products {
		if matchProduct(p, f) {
			n++
		}
	}
	return n, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *MemoryStore) ProductFacets(_ context.Context) (*models.ProductFacets, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	colors, sizes, materials := map[string]struct{}{}, map[string]struct{}{}, map[string]struct{}{}
	facets := &models.ProductFacets{}
	first := true
	for _, p := range s.products {
		for _, v := range p.Colors {
			colors[v] = struct{}{}
		}
		for _, v := range p.Sizes {
			sizes[v] = struct{}{}
		}
		for _, v := range p.Materials {
			materials[v] = struct{}{}
		}
		if first || p.Price < facets.PriceRange.MinPrice {
			facets.PriceRange.MinPrice = p.Price
		}
		if first || p.Price > facets.PriceRange.MaxPrice {
			facets.PriceRange.MaxPrice = p.Price
		}
		first = false
	}
	facets.Colors = sortedKeys(colors)
	facets.Sizes = sortedKeys(sizes)
	facets.Materials = sortedKeys(materials)
	return facets, nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	updated := cloneProduct(*p)
	updated.Views = existing.Views
	updated.ViewedBy = existing.ViewedBy
	updated.ReviewCount = existing.ReviewCount
	updated.TotalRatingSum = existing.TotalRatingSum
	updated.RatedBy = existing.RatedBy
	updated.CreatedAt = existing.CreatedAt
	s.products[p.ID] = updated
	return nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) DeleteProductsByCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, p := range s.products {
		if p.Category == categoryID {
			delete(s.products, id)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountProductsByCategory(_ context.Context) (map[primitive.ObjectID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[primitive.ObjectID]int{}
	for _, p := range s.products {
		counts[p.Category]++
	}
	return counts, nil
}

func (s *MemoryStore) RecordView(_ context.Context, id primitive.ObjectID, viewer string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return 0, ErrNotFound
	}
	if !containsAny(p.ViewedBy, []string{viewer}) {
		p.Views++
		p.ViewedBy = append(cloneStrings(p.ViewedBy), viewer)
		s.products[id] = p
	}
	return p.Views, nil
}

func (s *MemoryStore) AddRating(_ context.Context, id primitive.ObjectID, rater string, rating int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if containsAny(p.RatedBy, []string{rater}) {
		return nil, ErrConditionFailed
	}
	p.ReviewCount++
	p.TotalRatingSum += rating
	p.RatedBy = append(cloneStrings(p.RatedBy), rater)
	s.products[id] = p

	out := cloneProduct(p)
	return &out, nil
}

func matchOrder(o models.Order, f models.OrderFilter) bool {
	if f.ID != nil && o.ID != *f.ID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if o.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.From != nil && o.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !o.CreatedAt.Before(*f.To) {
		return false
	}
	return true
}

func (s *MemoryStore) InsertOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	s.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (s *MemoryStore) FindOrders(_ context.Context, f models.OrderFilter, skip, limit int) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Order{}
	for _, o := range s.orders {
		if matchOrder(o, f) {
			matched = append(matched, cloneOrder(o))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})
	return window(matched, skip, limit), nil
}

func (s *MemoryStore) CountOrders(_ context.Context, f models.OrderFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, o := range s.orders {
		if matchOrder(o, f) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, from []models.OrderStatus, to models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if len(from) > 0 {
		allowed := false
		for _, st := range from {
			if o.Status == st {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, ErrConditionFailed
		}
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	s.orders[id] = o

	out := cloneOrder(o)
	return &out, nil
}

func (s *MemoryStore) DeleteOrder(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *MemoryStore) ScanOrders(ctx context.Context, f models.OrderFilter, fn func(*models.Order) error) error {
	orders, err := s.FindOrders(ctx, f, 0, 0)
	if err != nil {
		return err
	}
	for i := range orders {
		if err := fn(&orders[i]); err != nil {
			return err
		}
	}
	return nil
}
