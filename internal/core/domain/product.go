package domain

import "time"

// Product is a sellable item with countable stock. OwnerID records the
// buyer once an order containing the product is delivered.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	CategoryID  string    `json:"category_id,omitempty" bson:"category_id,omitempty"`
	SellerID    string    `json:"seller_id" bson:"seller_id"`
	OwnerID     string    `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
