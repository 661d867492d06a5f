package room

import (
	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/types"
)

// Room is a bookable room type within a retreat
type Room struct {
	ID        string `db:"id" json:"id"`
	RetreatID string `db:"retreat_id" json:"retreat_id"`
	Name      string `db:"name" json:"name"`
	// Occupancy is how many guests the room sleeps
	Occupancy int `db:"occupancy" json:"occupancy"`
	// PriceDelta is added to the retreat base price, may be negative
	PriceDelta decimal.Decimal `db:"price_delta" json:"price_delta"`
	// Quantity is how many identical rooms of this type exist
	Quantity int `db:"quantity" json:"quantity"`

	types.BaseModel
}

// Price returns the per-booking price of this room given the retreat base price
func (r *Room) Price(basePrice decimal.Decimal) decimal.Decimal {
	return basePrice.Add(r.PriceDelta)
}
