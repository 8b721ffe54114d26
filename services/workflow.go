package services

import "github.com/Madhav-Gupta-28/storefront-backend-go/models"

// Workflow decides which status changes staff may apply to an order.
// A nil table means every enumerated status may follow every other one.
type Workflow struct {
	next map[models.OrderStatus]map[models.OrderStatus]bool
}

func OpenWorkflow() *Workflow {
	return &Workflow{}
}

// NewWorkflow builds a workflow from a table of allowed next statuses.
// Re-applying the current status is always allowed.
func NewWorkflow(table map[models.OrderStatus][]models.OrderStatus) *Workflow {
	next := make(map[models.OrderStatus]map[models.OrderStatus]bool, len(models.OrderStatuses))
	for _, from := range models.OrderStatuses {
		next[from] = map[models.OrderStatus]bool{from: true}
		for _, to := range table[from] {
			next[from][to] = true
		}
	}
	return &Workflow{next: next}
}

// StrictWorkflow follows the usual cash-on-delivery flow. Canceled orders may
// be reopened; returned is final.
func StrictWorkflow() *Workflow {
	cancel := []models.OrderStatus{models.OrderStatusCanceledStaff, models.OrderStatusCanceledCustomer}
	return NewWorkflow(map[models.OrderStatus][]models.OrderStatus{
		models.OrderStatusPending: append([]models.OrderStatus{
			models.OrderStatusConfirmed, models.OrderStatusNoAnswer, models.OrderStatusPostponed,
		}, cancel...),
		models.OrderStatusNoAnswer: append([]models.OrderStatus{
			models.OrderStatusConfirmed, models.OrderStatusPostponed,
		}, cancel...),
		models.OrderStatusPostponed: append([]models.OrderStatus{
			models.OrderStatusConfirmed, models.OrderStatusNoAnswer,
		}, cancel...),
		models.OrderStatusConfirmed: append([]models.OrderStatus{
			models.OrderStatusReady, models.OrderStatusPostponed,
		}, cancel...),
		models.OrderStatusReady: append([]models.OrderStatus{
			models.OrderStatusOnTheWay,
		}, cancel...),
		models.OrderStatusOnTheWay: {
			models.OrderStatusDelivered, models.OrderStatusReturned, models.OrderStatusPostponed,
		},
		models.OrderStatusDelivered:        {models.OrderStatusReturned},
		models.OrderStatusCanceledStaff:    {models.OrderStatusPending},
		models.OrderStatusCanceledCustomer: {models.OrderStatusPending},
	})
}

func (w *Workflow) Open() bool {
	return w.next == nil
}

func (w *Workflow) allows(from, to models.OrderStatus) bool {
	if !to.Valid() {
		return false
	}
	if w.Open() {
		return true
	}
	return w.next[from][to]
}

// Sources lists the statuses an order may currently hold to move to `to`.
// It returns nil for an open workflow, meaning no precondition.
func (w *Workflow) Sources(to models.OrderStatus) []models.OrderStatus {
	if w.Open() {
		return nil
	}
	var out []models.OrderStatus
	for _, from := range models.OrderStatuses {
		if w.next[from][to] {
			out = append(out, from)
		}
	}
	return out
}
