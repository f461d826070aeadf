package inbound

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shandysiswandi/gofindway/internal/findway/usecase"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgerror"
	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02T15:04:05"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SearchQuery is the raw search input shared by the HTTP and CLI surfaces.
type SearchQuery struct {
	Origin      string `validate:"required,len=3,alpha"`
	Destination string `validate:"required,len=3,alpha"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Sort        string `validate:"oneof=price duration"`
}

// ParseSearchInput normalizes and validates q. An empty sort means price.
func ParseSearchInput(q SearchQuery) (usecase.SearchInput, error) {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))
	q.Date = strings.TrimSpace(q.Date)
	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	if q.Sort == "" {
		q.Sort = usecase.SortPrice
	}

	if err := validate.Struct(q); err != nil {
		return usecase.SearchInput{}, validationError(err)
	}

	date, err := time.Parse(dateLayout, q.Date)
	if err != nil {
		return usecase.SearchInput{}, pkgerror.NewBusiness("Date must be in YYYY-MM-DD format", pkgerror.CodeInvalidInput)
	}

	return usecase.SearchInput{
		Origin:      q.Origin,
		Destination: q.Destination,
		Date:        date,
		Sort:        q.Sort,
	}, nil
}

// ParseSort normalizes a sort key on its own. An empty key means price.
func ParseSort(raw string) (string, error) {
	sortKey := strings.ToLower(strings.TrimSpace(raw))
	if sortKey == "" {
		return usecase.SortPrice, nil
	}
	if err := validate.Var(sortKey, "oneof=price duration"); err != nil {
		return "", pkgerror.NewBusiness(`Sort must be "price" or "duration"`, pkgerror.CodeInvalidInput)
	}
	return sortKey, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return pkgerror.NewBusiness("invalid search input", pkgerror.CodeInvalidInput)
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return pkgerror.NewBusiness("origin, destination and date are required", pkgerror.CodeInvalidInput)
		}
	}

	switch verrs[0].Field() {
	case "Origin", "Destination":
		return pkgerror.NewBusiness("Airport codes must be 3 letter IATA codes (e.g. BER, DUB)", pkgerror.CodeInvalidInput)
	case "Date":
		return pkgerror.NewBusiness("Date must be in YYYY-MM-DD format", pkgerror.CodeInvalidInput)
	case "Sort":
		return pkgerror.NewBusiness(`Sort must be "price" or "duration"`, pkgerror.CodeInvalidInput)
	default:
		return pkgerror.NewBusiness("invalid search input", pkgerror.CodeInvalidInput)
	}
}

func searchQueryFromRequest(r *http.Request) SearchQuery {
	q := r.URL.Query()
	return SearchQuery{
		Origin:      firstNotEmpty(q.Get("origin"), q.Get("from")),
		Destination: firstNotEmpty(q.Get("destination"), q.Get("to")),
		Date:        firstNotEmpty(q.Get("date"), q.Get("departureDate"), q.Get("departure_date")),
		Sort:        q.Get("sort"),
	}
}

func firstNotEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// FormatMinutes renders 90 as "1h30m" and 45 as "45m".
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours <= 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// FormatAmount renders 1234.5 as "1,234.50".
func FormatAmount(amount decimal.Decimal) string {
	value := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(value, ".")
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		return "-" + intPart + "." + frac
	}
	return intPart + "." + frac
}

// FormatPrice shows the EUR price, followed by the original fare when it was
// in another currency. Unknown values render as "?".
func FormatPrice(f entity.Flight) string {
	var eur string
	if f.PriceEUR != nil {
		eur = entity.CurrencyEUR + " " + FormatAmount(*f.PriceEUR)
	}

	if f.Price == nil {
		return firstNotEmpty(eur, "?")
	}
	if strings.EqualFold(f.Currency, entity.CurrencyEUR) {
		return firstNotEmpty(eur, entity.CurrencyEUR+" "+FormatAmount(*f.Price))
	}

	original := f.Currency + " " + FormatAmount(*f.Price)
	if eur != "" {
		return eur + " (" + original + ")"
	}
	return original
}

func FormatTotal(total *decimal.Decimal) string {
	if total == nil {
		return "?"
	}
	return entity.CurrencyEUR + " " + FormatAmount(*total)
}

func formatOptionalAmount(value *decimal.Decimal) *string {
	if value == nil {
		return nil
	}
	s := value.StringFixed(2)
	return &s
}

func formatDatetime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(datetimeLayout)
}

func mapFlightPoint(point entity.FlightPoint) FlightPoint {
	return FlightPoint{
		Airport:  point.Airport,
		Name:     point.Name,
		Datetime: formatDatetime(point.Time),
	}
}

func mapFlightResponses(flights []entity.Flight) []FlightResponse {
	resp := make([]FlightResponse, 0, len(flights))
	for _, flight := range flights {
		resp = append(resp, mapFlightResponse(flight))
	}
	return resp
}

func mapFlightResponse(flight entity.Flight) FlightResponse {
	return FlightResponse{
		FlightNumber: flight.FlightNumber,
		Departure:    mapFlightPoint(flight.Departure),
		Arrival:      mapFlightPoint(flight.Arrival),
		Duration:     flight.Duration,
		Price: PriceResponse{
			Amount:    formatOptionalAmount(flight.Price),
			Currency:  flight.Currency,
			AmountEUR: formatOptionalAmount(flight.PriceEUR),
			Formatted: FormatPrice(flight),
		},
	}
}

func mapRouteResponses(routes []entity.Route) []RouteResponse {
	resp := make([]RouteResponse, 0, len(routes))
	for _, route := range routes {
		resp = append(resp, RouteResponse{
			Layover: AirportResponse{Code: route.Layover.Code, Name: route.Layover.Name},
			Leg1:    mapFlightResponse(route.Leg1),
			Leg2:    mapFlightResponse(route.Leg2),
			LayoverDuration: DurationResponse{
				TotalMinutes: route.LayoverMinutes,
				Formatted:    FormatMinutes(route.LayoverMinutes),
			},
			TotalDuration: DurationResponse{
				TotalMinutes: route.TotalDurationMinutes,
				Formatted:    FormatMinutes(route.TotalDurationMinutes),
			},
			TotalPriceEUR: formatOptionalAmount(route.TotalPriceEUR),
			Formatted:     FormatTotal(route.TotalPriceEUR),
		})
	}
	return resp
}
