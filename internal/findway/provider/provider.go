package provider

import (
	"context"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
)

type SearchRequest struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
}

// Source is a read-only flight data backend. Callers treat any error as "no
// data" for that call.
type Source interface {
	Name() string
	AvailableDates(ctx context.Context, origin, destination string) ([]string, error)
	Destinations(ctx context.Context, airport string) ([]entity.Airport, error)
	Flights(ctx context.Context, req SearchRequest) ([]entity.Flight, error)
}
