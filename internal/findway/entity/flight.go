package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const CurrencyEUR = "EUR"

type Airport struct {
	Code string
	Name string
}

type FlightPoint struct {
	Airport string
	Name    string
	Time    time.Time
}

// Flight is a single non-stop leg. Times are airport-local and carry no zone.
type Flight struct {
	FlightNumber string
	Departure    FlightPoint
	Arrival      FlightPoint
	Duration     string
	Price        *decimal.Decimal
	Currency     string
	PriceEUR     *decimal.Decimal
}

// WithPriceEUR returns a copy of f carrying the given EUR price.
func (f Flight) WithPriceEUR(eur *decimal.Decimal) Flight {
	f.PriceEUR = eur
	return f
}

type Route struct {
	Layover              Airport
	Leg1                 Flight
	Leg2                 Flight
	LayoverMinutes       int
	TotalDurationMinutes int
	TotalPriceEUR        *decimal.Decimal
}
