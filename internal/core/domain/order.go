package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// validOrderTransitions defines the allowed state machine transitions.
// delivered and cancelled are terminal.
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// Valid reports whether s is one of the five known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s OrderStatus) IsTerminal() bool {
	return len(validOrderTransitions[s]) == 0 && s.Valid()
}

// ProductLine is a product entry in an order. Name and unit price are
// snapshots taken at creation time, so later listing edits never change
// what the order says.
type ProductLine struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// PetLine is a pet entry in an order, with a price snapshot.
type PetLine struct {
	PetID string  `json:"pet_id" bson:"pet_id"`
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

// OrderStatusEntry records a single status change on an order.
type OrderStatusEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	ActorID   string      `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
}

// Order is the purchase aggregate root. TotalAmount is computed at creation
// and immutable afterward. SellerIDs is the denormalized set of sellers
// whose listings appear in the lines; it drives the seller sales view and
// the seller transition authorization without joining through listings.
type Order struct {
	ID             string             `json:"id" bson:"_id"`
	ClientID       string             `json:"client_id" bson:"client_id"`
	Status         OrderStatus        `json:"status" bson:"status"`
	TotalAmount    float64            `json:"total_amount" bson:"total_amount"`
	Products       []ProductLine      `json:"products" bson:"products"`
	Pets           []PetLine          `json:"pets" bson:"pets"`
	SellerIDs      []string           `json:"-" bson:"seller_ids"`
	IdempotencyKey string             `json:"-" bson:"idempotency_key,omitempty"`
	StatusHistory  []OrderStatusEntry `json:"status_history" bson:"status_history"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

// HasSeller reports whether any line in the order belongs to the seller.
func (o *Order) HasSeller(sellerID string) bool {
	for _, id := range o.SellerIDs {
		if id == sellerID {
			return true
		}
	}
	return false
}
