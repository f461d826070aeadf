package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shopspring/decimal"
)

const (
	DefaultRyanairBaseURL = "https://www.ryanair.com"

	endpointAvailableDates = "available_dates"
	endpointDestinations   = "destinations"
	endpointFlights        = "flights"
)

type RyanairProvider struct {
	baseURL string
	client  *http.Client
}

func NewRyanairProvider(baseURL string, timeout time.Duration) *RyanairProvider {
	if baseURL == "" {
		baseURL = DefaultRyanairBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RyanairProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *RyanairProvider) Name() string {
	return "Ryanair"
}

func (p *RyanairProvider) AvailableDates(ctx context.Context, origin, destination string) ([]string, error) {
	path := fmt.Sprintf("/api/farfnd/v4/oneWayFares/%s/%s/availabilities", url.PathEscape(origin), url.PathEscape(destination))

	var dates []string
	if err := p.getJSON(ctx, endpointAvailableDates, path, nil, &dates); err != nil {
		return nil, fmt.Errorf("ryanair available dates: %w", err)
	}
	return dates, nil
}

func (p *RyanairProvider) Destinations(ctx context.Context, airport string) ([]entity.Airport, error) {
	path := fmt.Sprintf("/api/views/locate/searchWidget/routes/en/airport/%s", url.PathEscape(airport))

	var resp []struct {
		ArrivalAirport struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"arrivalAirport"`
	}
	if err := p.getJSON(ctx, endpointDestinations, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("ryanair destinations: %w", err)
	}

	seen := make(map[string]struct{}, len(resp))
	airports := make([]entity.Airport, 0, len(resp))
	for _, r := range resp {
		code := strings.TrimSpace(r.ArrivalAirport.Code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		airports = append(airports, entity.Airport{
			Code: code,
			Name: firstNotEmpty(r.ArrivalAirport.Name, code),
		})
	}
	return airports, nil
}

type availabilityResponse struct {
	Currency string `json:"currency"`
	Trips    []struct {
		Origin          string `json:"origin"`
		OriginName      string `json:"originName"`
		Destination     string `json:"destination"`
		DestinationName string `json:"destinationName"`
		Dates           []struct {
			DateOut string `json:"dateOut"`
			Flights []struct {
				FlightNumber json.RawMessage `json:"flightNumber"`
				Time         json.RawMessage `json:"time"`
				Duration     json.RawMessage `json:"duration"`
				RegularFare  json.RawMessage `json:"regularFare"`
			} `json:"flights"`
		} `json:"dates"`
	} `json:"trips"`
}

type regularFare struct {
	Fares []struct {
		Amount *decimal.Decimal `json:"amount"`
	} `json:"fares"`
}

func (p *RyanairProvider) Flights(ctx context.Context, req SearchRequest) ([]entity.Flight, error) {
	query := url.Values{}
	query.Set("ADT", "1")
	query.Set("CHD", "0")
	query.Set("DateIn", "")
	query.Set("DateOut", req.DepartureDate.Format(dateLayout))
	query.Set("Destination", req.Destination)
	query.Set("Disc", "0")
	query.Set("INF", "0")
	query.Set("Origin", req.Origin)
	query.Set("TEEN", "0")
	query.Set("promoCode", "")
	query.Set("IncludeConnectingFlights", "false")
	query.Set("FlexDaysBeforeOut", "0")
	query.Set("FlexDaysOut", "0")
	query.Set("FlexDaysBeforeIn", "0")
	query.Set("FlexDaysIn", "0")
	query.Set("RoundTrip", "false")
	query.Set("ToUs", "AGREED")

	var resp availabilityResponse
	if err := p.getJSON(ctx, endpointFlights, "/api/booking/v4/en-gb/availability", query, &resp); err != nil {
		return nil, fmt.Errorf("ryanair flights: %w", err)
	}

	return parseFlights(resp, req), nil
}

func parseFlights(resp availabilityResponse, req SearchRequest) []entity.Flight {
	currency := firstNotEmpty(strings.ToUpper(strings.TrimSpace(resp.Currency)), entity.CurrencyEUR)

	flights := make([]entity.Flight, 0)
	for _, trip := range resp.Trips {
		origin := firstNotEmpty(trip.Origin, req.Origin)
		destination := firstNotEmpty(trip.Destination, req.Destination)
		for _, date := range trip.Dates {
			for _, f := range date.Flights {
				// no regular fare means sold out
				if isEmptyJSON(f.RegularFare) {
					continue
				}

				var departAt, arriveAt string
				times := rawTexts(f.Time)
				if len(times) > 0 {
					departAt = times[0]
				}
				if len(times) > 1 {
					arriveAt = times[1]
				}

				flights = append(flights, entity.Flight{
					FlightNumber: rawText(f.FlightNumber),
					Departure: entity.FlightPoint{
						Airport: origin,
						Name:    firstNotEmpty(trip.OriginName, origin),
						Time:    parseLocalTime(departAt),
					},
					Arrival: entity.FlightPoint{
						Airport: destination,
						Name:    firstNotEmpty(trip.DestinationName, destination),
						Time:    parseLocalTime(arriveAt),
					},
					Duration: rawText(f.Duration),
					Price:    firstFareAmount(f.RegularFare),
					Currency: currency,
				})
			}
		}
	}
	return flights
}

func firstFareAmount(raw json.RawMessage) *decimal.Decimal {
	var fare regularFare
	if err := json.Unmarshal(raw, &fare); err != nil {
		return nil
	}
	if len(fare.Fares) == 0 {
		return nil
	}
	return fare.Fares[0].Amount
}

func (p *RyanairProvider) getJSON(ctx context.Context, endpoint, path string, query url.Values, target any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
		upstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	rawURL := p.baseURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
