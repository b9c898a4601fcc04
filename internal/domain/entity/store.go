package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain/geo"
)

// Store tienda física de un proveedor. Latitude/Longitude pueden venir nulas.
type Store struct {
	ID            int64               `json:"id"`
	Owner         int64               `json:"owner"`
	OwnerEmail    string              `json:"owner_email"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Address       string              `json:"address"`
	Latitude      decimal.NullDecimal `json:"latitude"`
	Longitude     decimal.NullDecimal `json:"longitude"`
	Image         string              `json:"image"`
	CreatedAt     time.Time           `json:"created_at"`
	RatingAverage float64             `json:"rating_average"`
	TotalReviews  int                 `json:"total_reviews"`
}

// Location punto geográfico de la tienda, nil si le falta alguna coordenada.
func (s Store) Location() *geo.Point {
	if !s.Latitude.Valid || !s.Longitude.Valid {
		return nil
	}
	return &geo.Point{Lat: s.Latitude.Decimal.InexactFloat64(), Lon: s.Longitude.Decimal.InexactFloat64()}
}
