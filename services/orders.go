package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/Madhav-Gupta-28/storefront-backend-go/cache"
	"github.com/Madhav-Gupta-28/storefront-backend-go/metrics"
	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/Madhav-Gupta-28/storefront-backend-go/store"
	"go.uber.org/zap"
)

const statsCachePrefix = "orders:stats:"

type OrderItemInput struct {
	Product       string   `json:"product"`
	Quantity      int      `json:"quantity"`
	Price         *float64 `json:"price"`
	SelectedColor string   `json:"selectedColor"`
	SelectedSize  string   `json:"selectedSize"`
}

type CreateOrderInput struct {
	Products        []OrderItemInput        `json:"products"`
	TotalPrice      *float64                `json:"totalPrice"`
	Currency        string                  `json:"currency"`
	Subtotal        *float64                `json:"subtotal"`
	DeliveryCost    *float64                `json:"deliveryCost"`
	DeliveryCompany *models.DeliveryCompany `json:"deliveryCompany"`
	DeliveryType    string                  `json:"deliveryType"`
	FirstName       string                  `json:"firstName"`
	LastName        string                  `json:"lastName"`
	Email           string                  `json:"email"`
	Phone1          string                  `json:"phone1"`
	Phone2          string                  `json:"phone2"`
	Wilaya          string                  `json:"wilaya"`
	Municipality    string                  `json:"municipality"`
	Address         string                  `json:"address"`
	OrderType       string                  `json:"orderType"`
}

type OrderListQuery struct {
	Page     int
	Limit    int
	Overview bool
	Status   string
}

type StatsQuery struct {
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Status string `json:"status,omitempty"`
}

type OrderService struct {
	orders    store.OrderStore
	projector *Projector
	workflow  *Workflow
	cache     cache.Cache
	statsTTL  time.Duration
	pageLimit int
	logger    *zap.Logger
}

type OrderServiceConfig struct {
	Workflow  *Workflow
	StatsTTL  time.Duration
	PageLimit int
}

func NewOrderService(orders store.OrderStore, catalog store.CatalogStore, c cache.Cache, cfg OrderServiceConfig, logger *zap.Logger) *OrderService {
	if cfg.Workflow == nil {
		cfg.Workflow = OpenWorkflow()
	}
	if cfg.PageLimit < 1 {
		cfg.PageLimit = 15
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &OrderService{
		orders:    orders,
		projector: NewProjector(catalog),
		workflow:  cfg.Workflow,
		cache:     c,
		statsTTL:  cfg.StatsTTL,
		pageLimit: cfg.PageLimit,
		logger:    logger,
	}
}

func (in *CreateOrderInput) toOrder() (*models.Order, error) {
	if len(in.Products) == 0 {
		return nil, apperr.Validation("Order must contain at least one product.")
	}
	if in.TotalPrice == nil {
		return nil, apperr.Validation("Total price is missing.")
	}
	if in.Currency == "" {
		return nil, apperr.Validation("Currency is missing.")
	}
	phone1 := strings.TrimSpace(in.Phone1)
	if !validPhone(phone1) {
		return nil, apperr.Validation("Primary phone number must be exactly 10 digits.")
	}
	phone2 := strings.TrimSpace(in.Phone2)
	if phone2 != "" && !validPhone(phone2) {
		return nil, apperr.Validation("Optional phone number must be exactly 10 digits.")
	}

	currency := models.Currency(in.Currency)
	if !currency.Valid() {
		return nil, apperr.Validation("Unsupported currency %q.", in.Currency)
	}
	if *in.TotalPrice < 0 {
		return nil, apperr.Validation("Total price cannot be negative.")
	}
	firstName, lastName := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return nil, apperr.Validation("First name and last name are required.")
	}
	orderType := models.OrderType(in.OrderType)
	if orderType != models.OrderTypeDelivery && orderType != models.OrderTypePickup {
		return nil, apperr.Validation("Order type must be either delivery or pickup.")
	}
	if in.DeliveryType != "" && in.DeliveryType != "home" && in.DeliveryType != "office" {
		return nil, apperr.Validation("Delivery type must be either home or office.")
	}

	items := make([]models.OrderItem, 0, len(in.Products))
	for i, p := range in.Products {
		id, err := parseID(p.Product, "product")
		if err != nil {
			return nil, apperr.Validation("Line %d: invalid product ID.", i+1)
		}
		if p.Quantity < 1 {
			return nil, apperr.Validation("Line %d: quantity must be at least 1.", i+1)
		}
		if p.Price == nil || *p.Price < 0 {
			return nil, apperr.Validation("Line %d: a non-negative price is required.", i+1)
		}
		items = append(items, models.OrderItem{
			Product:       id,
			Quantity:      p.Quantity,
			Price:         *p.Price,
			SelectedColor: p.SelectedColor,
			SelectedSize:  p.SelectedSize,
		})
	}

	now := time.Now()
	order := &models.Order{
		Products:        items,
		TotalPrice:      *in.TotalPrice,
		Currency:        currency,
		Subtotal:        in.Subtotal,
		DeliveryCompany: in.DeliveryCompany,
		DeliveryType:    in.DeliveryType,
		FirstName:       firstName,
		LastName:        lastName,
		Email:           strings.TrimSpace(in.Email),
		Phone1:          phone1,
		Phone2:          phone2,
		Wilaya:          in.Wilaya,
		Municipality:    in.Municipality,
		Address:         in.Address,
		OrderType:       orderType,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.DeliveryCost != nil {
		order.DeliveryCost = *in.DeliveryCost
	}
	return order, nil
}

// CreateOrder validates and stores a customer order. Line items are stored
// as references; the response is not enriched.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	order, err := in.toOrder()
	if err != nil {
		return nil, err
	}
	if err := s.orders.InsertOrder(ctx, order); err != nil {
		s.logger.Error("insert order failed", zap.Error(err))
		return nil, apperr.Storage("Server error while creating order.", err)
	}

	metrics.OrdersCreated.Inc()
	s.cache.InvalidatePrefix(ctx, statsCachePrefix)
	return order, nil
}

// ListOrders returns one enriched page of orders, newest first. In overview
// mode every matching order comes back as a single page.
func (s *OrderService) ListOrders(ctx context.Context, q OrderListQuery) (*models.OrderPage, error) {
	filter := models.OrderFilter{}
	if q.Status != "" {
		st := models.OrderStatus(q.Status)
		if !st.Valid() {
			return nil, apperr.InvalidStatus(q.Status)
		}
		filter.Statuses = []models.OrderStatus{st}
	}

	page, limit := normalizePage(q.Page, q.Limit, s.pageLimit)
	skip, inRange := pageOffset(page, limit)
	take := limit
	if q.Overview {
		skip, take, inRange = 0, 0, true
	}

	orders := []models.Order{}
	if inRange {
		var err error
		orders, err = s.orders.FindOrders(ctx, filter, skip, take)
		if err != nil {
			s.logger.Error("find orders failed", zap.Error(err))
			return nil, apperr.Storage("Server error while fetching orders.", err)
		}
	}
	views, err := s.projector.Project(ctx, orders)
	if err != nil {
		s.logger.Error("project orders failed", zap.Error(err))
		return nil, apperr.Storage("Server error while fetching orders.", err)
	}

	if q.Overview {
		return &models.OrderPage{Orders: views, TotalPages: 1, CurrentPage: 1}, nil
	}

	total, err := s.orders.CountOrders(ctx, filter)
	if err != nil {
		s.logger.Error("count orders failed", zap.Error(err))
		return nil, apperr.Storage("Server error while fetching orders.", err)
	}
	return &models.OrderPage{
		Orders:      views,
		TotalPages:  totalPages(total, limit),
		CurrentPage: page,
	}, nil
}

// GetOrder returns a single enriched order.
func (s *OrderService) GetOrder(ctx context.Context, rawID string) (*models.OrderView, error) {
	id, err := parseID(rawID, "order")
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindOrders(ctx, models.OrderFilter{ID: &id}, 0, 1)
	if err != nil {
		return nil, apperr.Storage("Server error while fetching order.", err)
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("Order")
	}
	views, err := s.projector.Project(ctx, orders)
	if err != nil {
		return nil, apperr.Storage("Server error while fetching order.", err)
	}
	return &views[0], nil
}

// SetStatus applies a status change in one atomic write and returns the
// re-projected order.
func (s *OrderService) SetStatus(ctx context.Context, rawID, rawStatus string) (*models.OrderView, error) {
	status := models.OrderStatus(rawStatus)
	if !status.Valid() {
		return nil, apperr.InvalidStatus(rawStatus)
	}
	id, err := parseID(rawID, "order")
	if err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateOrderStatus(ctx, id, s.workflow.Sources(status), status)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, apperr.NotFound("Order")
	case errors.Is(err, store.ErrConditionFailed):
		current, ferr := s.GetOrder(ctx, rawID)
		if ferr != nil {
			return nil, ferr
		}
		return nil, apperr.InvalidTransition(string(current.Status), rawStatus)
	case err != nil:
		s.logger.Error("update order status failed", zap.String("orderId", rawID), zap.Error(err))
		return nil, apperr.Storage("Server error while updating order status.", err)
	}

	metrics.OrderStatusChanges.WithLabelValues(string(status)).Inc()
	s.cache.InvalidatePrefix(ctx, statsCachePrefix)

	views, err := s.projector.Project(ctx, []models.Order{*updated})
	if err != nil {
		return nil, apperr.Storage("Server error while updating order status.", err)
	}
	return &views[0], nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "order")
	if err != nil {
		return err
	}
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Order")
		}
		s.logger.Error("delete order failed", zap.String("orderId", rawID), zap.Error(err))
		return apperr.Storage("Server error while deleting order.", err)
	}
	s.cache.InvalidatePrefix(ctx, statsCachePrefix)
	return nil
}

func (q StatsQuery) filter() (models.OrderFilter, error) {
	var f models.OrderFilter
	if q.From != "" {
		from, err := time.Parse(dayLayout, q.From)
		if err != nil {
			return f, apperr.Validation("from must be a YYYY-MM-DD date.")
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(dayLayout, q.To)
		if err != nil {
			return f, apperr.Validation("to must be a YYYY-MM-DD date.")
		}
		// inclusive of the whole "to" day
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return f, apperr.Validation("from must not be after to.")
	}
	if q.Status != "" {
		st := models.OrderStatus(q.Status)
		if !st.Valid() {
			return f, apperr.InvalidStatus(q.Status)
		}
		f.Statuses = []models.OrderStatus{st}
	}
	return f, nil
}

// Stats returns the dashboard statistics, served from cache when fresh.
func (s *OrderService) Stats(ctx context.Context, q StatsQuery) (*models.OrderStats, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}

	key := cache.Key(statsCachePrefix, q)
	var cached models.OrderStats
	if s.statsTTL > 0 && s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	stats, err := AggregateStats(ctx, s.orders, f)
	if err != nil {
		s.logger.Error("aggregate order stats failed", zap.Error(err))
		return nil, apperr.Storage("Server error while fetching order statistics.", err)
	}
	if s.statsTTL > 0 {
		s.cache.Set(ctx, key, stats, s.statsTTL)
	}
	return stats, nil
}
