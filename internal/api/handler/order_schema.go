package handler

import (
	"time"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type createOrderRequest struct {
	Products []orderItemRequest `json:"products" validate:"dive"`
	PetIDs   []string           `json:"pet_ids"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// Response types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to
// internal model changes.

type productLineResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type petLineResponse struct {
	PetID string  `json:"pet_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type statusEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id,omitempty"`
}

type orderResponse struct {
	ID            string                `json:"id"`
	ClientID      string                `json:"client_id"`
	Status        string                `json:"status"`
	TotalAmount   float64               `json:"total_amount"`
	Products      []productLineResponse `json:"products"`
	Pets          []petLineResponse     `json:"pets"`
	StatusHistory []statusEntryResponse `json:"status_history"`
	CreatedAt     time.Time             `json:"created_at"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	products := make([]productLineResponse, len(o.Products))
	for i, line := range o.Products {
		products[i] = productLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		}
	}

	pets := make([]petLineResponse, len(o.Pets))
	for i, line := range o.Pets {
		pets[i] = petLineResponse{PetID: line.PetID, Name: line.Name, Price: line.Price}
	}

	history := make([]statusEntryResponse, len(o.StatusHistory))
	for i, entry := range o.StatusHistory {
		history[i] = statusEntryResponse{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp.UTC(),
			ActorID:   entry.ActorID,
		}
	}

	return orderResponse{
		ID:            o.ID,
		ClientID:      o.ClientID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		Products:      products,
		Pets:          pets,
		StatusHistory: history,
		CreatedAt:     o.CreatedAt.UTC(),
	}
}

func toOrderListResponse(orders []*domain.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	return out
}
