package domain

import "time"

// PetStatus tracks the availability of a pet listing.
type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetReserved  PetStatus = "reserved"
	PetSold      PetStatus = "sold"
)

// Pet is a unique sellable animal. Invariant: available implies OwnerID is
// empty; reserved and sold are always tied to an order.
type Pet struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Species     string    `json:"species" bson:"species"`
	Breed       string    `json:"breed,omitempty" bson:"breed,omitempty"`
	Age         int       `json:"age" bson:"age"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Status      PetStatus `json:"status" bson:"status"`
	SellerID    string    `json:"seller_id" bson:"seller_id"`
	OwnerID     string    `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
