package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shandysiswandi/gofindway/internal/findway/usecase"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgrouter"
	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestParseSearchInput(t *testing.T) {
	tests := []struct {
		name    string
		in      SearchQuery
		wantErr string
		want    usecase.SearchInput
	}{
		{
			name: "valid and normalized",
			in:   SearchQuery{Origin: " ber", Destination: "dub ", Date: "2025-03-10", Sort: "Duration"},
			want: usecase.SearchInput{Origin: "BER", Destination: "DUB", Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Sort: "duration"},
		},
		{
			name: "sort defaults to price",
			in:   SearchQuery{Origin: "BER", Destination: "DUB", Date: "2025-03-10"},
			want: usecase.SearchInput{Origin: "BER", Destination: "DUB", Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Sort: "price"},
		},
		{
			name:    "missing date",
			in:      SearchQuery{Origin: "BER", Destination: "DUB"},
			wantErr: "origin, destination and date are required",
		},
		{
			name:    "four letter code",
			in:      SearchQuery{Origin: "BERL", Destination: "DUB", Date: "2025-03-10"},
			wantErr: "Airport codes must be 3 letter IATA codes (e.g. BER, DUB)",
		},
		{
			name:    "digits in code",
			in:      SearchQuery{Origin: "BER", Destination: "D1B", Date: "2025-03-10"},
			wantErr: "Airport codes must be 3 letter IATA codes (e.g. BER, DUB)",
		},
		{
			name:    "bad date format",
			in:      SearchQuery{Origin: "BER", Destination: "DUB", Date: "10/03/2025"},
			wantErr: "Date must be in YYYY-MM-DD format",
		},
		{
			name:    "impossible date",
			in:      SearchQuery{Origin: "BER", Destination: "DUB", Date: "2025-02-30"},
			wantErr: "Date must be in YYYY-MM-DD format",
		},
		{
			name:    "bad sort",
			in:      SearchQuery{Origin: "BER", Destination: "DUB", Date: "2025-03-10", Sort: "stops"},
			wantErr: `Sort must be "price" or "duration"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSearchInput(tt.in)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error %q", tt.wantErr)
				}
				e := pkgerror.As(err)
				if e.Code() != pkgerror.CodeInvalidInput || e.Msg() != tt.wantErr {
					t.Fatalf("got error %q (code %v), want %q", e.Msg(), e.Code(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Origin != tt.want.Origin || got.Destination != tt.want.Destination ||
				!got.Date.Equal(tt.want.Date) || got.Sort != tt.want.Sort {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "price", false},
		{" Duration ", "duration", false},
		{"PRICE", "price", false},
		{"stops", "", true},
	}
	for _, c := range cases {
		got, err := ParseSort(c.in)
		if c.wantErr {
			if err == nil || pkgerror.As(err).Msg() != `Sort must be "price" or "duration"` {
				t.Errorf("ParseSort(%q) err = %v", c.in, err)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("ParseSort(%q) = %q, %v; want %q", c.in, got, err, c.want)
		}
	}
}

func TestFormatters(t *testing.T) {
	if got := FormatMinutes(90); got != "1h30m" {
		t.Fatalf("FormatMinutes(90) = %q", got)
	}
	if got := FormatMinutes(45); got != "45m" {
		t.Fatalf("FormatMinutes(45) = %q", got)
	}
	if got := FormatMinutes(120); got != "2h0m" {
		t.Fatalf("FormatMinutes(120) = %q", got)
	}
	if got := FormatAmount(decimal.RequireFromString("1234.5")); got != "1,234.50" {
		t.Fatalf("FormatAmount = %q", got)
	}
	if got := FormatAmount(decimal.RequireFromString("19.999")); got != "20.00" {
		t.Fatalf("FormatAmount = %q", got)
	}
	if got := FormatTotal(nil); got != "?" {
		t.Fatalf("FormatTotal(nil) = %q", got)
	}
	if got := FormatTotal(dec("120")); got != "EUR 120.00" {
		t.Fatalf("FormatTotal = %q", got)
	}

	tests := []struct {
		name   string
		flight entity.Flight
		want   string
	}{
		{name: "eur", flight: entity.Flight{Price: dec("50"), Currency: "EUR", PriceEUR: dec("50")}, want: "EUR 50.00"},
		{name: "eur without annotation", flight: entity.Flight{Price: dec("50"), Currency: "EUR"}, want: "EUR 50.00"},
		{name: "converted", flight: entity.Flight{Price: dec("40"), Currency: "GBP", PriceEUR: dec("50")}, want: "EUR 50.00 (GBP 40.00)"},
		{name: "unconvertible", flight: entity.Flight{Price: dec("40"), Currency: "USD"}, want: "USD 40.00"},
		{name: "no fare", flight: entity.Flight{Currency: "EUR"}, want: "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.flight); got != tt.want {
				t.Fatalf("FormatPrice = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeUsecase struct {
	lastSort string
	output   *usecase.SearchOutput
	direct   []entity.Flight
	routes   []entity.Route
}

func (f *fakeUsecase) Search(_ context.Context, in usecase.SearchInput) *usecase.SearchOutput {
	f.lastSort = in.Sort
	return f.output
}

func (f *fakeUsecase) FindDirect(context.Context, string, string, time.Time) []entity.Flight {
	return f.direct
}

func (f *fakeUsecase) FindConnections(_ context.Context, _, _ string, _ time.Time, sortKey string) []entity.Route {
	f.lastSort = sortKey
	return f.routes
}

type fixedID struct{}

func (fixedID) Generate() string { return "id" }

func sampleRoute() entity.Route {
	t0 := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return entity.Route{
		Layover: entity.Airport{Code: "STN", Name: "London Stansted"},
		Leg1: entity.Flight{
			FlightNumber: "FR 10",
			Departure:    entity.FlightPoint{Airport: "BER", Name: "Berlin", Time: t0},
			Arrival:      entity.FlightPoint{Airport: "STN", Name: "London Stansted", Time: t0.Add(2 * time.Hour)},
			Price:        dec("60"), Currency: "EUR", PriceEUR: dec("60"),
		},
		Leg2: entity.Flight{
			FlightNumber: "FR 11",
			Departure:    entity.FlightPoint{Airport: "STN", Name: "London Stansted", Time: t0.Add(210 * time.Minute)},
			Arrival:      entity.FlightPoint{Airport: "DUB", Name: "Dublin", Time: t0.Add(285 * time.Minute)},
			Price:        dec("48"), Currency: "GBP", PriceEUR: dec("60"),
		},
		LayoverMinutes:       90,
		TotalDurationMinutes: 285,
		TotalPriceEUR:        dec("120"),
	}
}

func serve(t *testing.T, uc uc, target string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	router := pkgrouter.NewRouter(fixedID{})
	RegisterHTTPEndpoint(router, uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return rec, body
}

func TestRoutesEndpoint(t *testing.T) {
	fake := &fakeUsecase{output: &usecase.SearchOutput{
		Kind:        usecase.KindConnection,
		Connections: []entity.Route{sampleRoute()},
		Metadata:    usecase.SearchMetadata{Provider: "Ryanair", TotalResults: 1},
	}}

	rec, body := serve(t, fake, "/routes?origin=ber&destination=dub&date=2025-03-10&sort=duration")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	if fake.lastSort != "duration" {
		t.Fatalf("sort not passed through: %q", fake.lastSort)
	}

	var data SearchResponse
	if err := json.Unmarshal(body["data"], &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Kind != "connection" || data.SearchCriteria.Origin != "BER" || data.Metadata.Provider != "Ryanair" {
		t.Fatalf("unexpected response %+v", data)
	}
	if len(data.Connections) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(data.Connections))
	}
	route := data.Connections[0]
	if route.LayoverDuration.Formatted != "1h30m" || route.TotalDuration.TotalMinutes != 285 {
		t.Fatalf("unexpected durations %+v %+v", route.LayoverDuration, route.TotalDuration)
	}
	if route.TotalPriceEUR == nil || *route.TotalPriceEUR != "120.00" || route.Formatted != "EUR 120.00" {
		t.Fatalf("unexpected total %v %q", route.TotalPriceEUR, route.Formatted)
	}
	if route.Leg2.Price.Formatted != "EUR 60.00 (GBP 48.00)" {
		t.Fatalf("unexpected leg price %q", route.Leg2.Price.Formatted)
	}
	if route.Leg1.Departure.Datetime != "2025-03-10T08:00:00" {
		t.Fatalf("unexpected datetime %q", route.Leg1.Departure.Datetime)
	}
	if data.DirectFlights == nil || len(data.DirectFlights) != 0 {
		t.Fatalf("direct flights should be an empty list, got %v", data.DirectFlights)
	}
}

func TestRoutesEndpointValidation(t *testing.T) {
	rec, body := serve(t, &fakeUsecase{}, "/routes?origin=BERLIN&destination=DUB&date=2025-03-10")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var msg string
	if err := json.Unmarshal(body["message"], &msg); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if msg != "Airport codes must be 3 letter IATA codes (e.g. BER, DUB)" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestDirectAndConnectionsEndpoints(t *testing.T) {
	route := sampleRoute()
	fake := &fakeUsecase{direct: []entity.Flight{route.Leg1}, routes: []entity.Route{route}}

	rec, body := serve(t, fake, "/routes/direct?from=BER&to=STN&date=2025-03-10")
	if rec.Code != http.StatusOK {
		t.Fatalf("direct status = %d", rec.Code)
	}
	var direct DirectResponse
	if err := json.Unmarshal(body["data"], &direct); err != nil {
		t.Fatalf("decode direct: %v", err)
	}
	if len(direct.Flights) != 1 || direct.Flights[0].FlightNumber != "FR 10" || direct.SearchCriteria.Sort != "" {
		t.Fatalf("unexpected direct response %+v", direct)
	}

	rec, body = serve(t, fake, "/routes/connections?origin=BER&destination=DUB&date=2025-03-10")
	if rec.Code != http.StatusOK {
		t.Fatalf("connections status = %d", rec.Code)
	}
	var conns ConnectionsResponse
	if err := json.Unmarshal(body["data"], &conns); err != nil {
		t.Fatalf("decode connections: %v", err)
	}
	if len(conns.Routes) != 1 || fake.lastSort != "price" {
		t.Fatalf("unexpected connections response %+v (sort %q)", conns, fake.lastSort)
	}
}
