package inbound

type SearchResponse struct {
	SearchCriteria SearchCriteriaResponse `json:"search_criteria"`
	Metadata       MetadataResponse       `json:"metadata"`
	Kind           string                 `json:"kind"`
	DirectFlights  []FlightResponse       `json:"direct_flights"`
	Connections    []RouteResponse        `json:"connections"`
}

type DirectResponse struct {
	SearchCriteria SearchCriteriaResponse `json:"search_criteria"`
	Flights        []FlightResponse       `json:"flights"`
}

type ConnectionsResponse struct {
	SearchCriteria SearchCriteriaResponse `json:"search_criteria"`
	Routes         []RouteResponse        `json:"routes"`
}

type SearchCriteriaResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Sort        string `json:"sort,omitempty"`
}

type MetadataResponse struct {
	Provider     string `json:"provider"`
	TotalResults int    `json:"total_results"`
	SearchTimeMs int64  `json:"search_time_ms"`
}

type FlightResponse struct {
	FlightNumber string        `json:"flight_number"`
	Departure    FlightPoint   `json:"departure"`
	Arrival      FlightPoint   `json:"arrival"`
	Duration     string        `json:"duration"`
	Price        PriceResponse `json:"price"`
}

type FlightPoint struct {
	Airport  string `json:"airport"`
	Name     string `json:"name"`
	Datetime string `json:"datetime"`
}

type PriceResponse struct {
	Amount    *string `json:"amount"`
	Currency  string  `json:"currency"`
	AmountEUR *string `json:"amount_eur"`
	Formatted string  `json:"formatted"`
}

type AirportResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type DurationResponse struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

type RouteResponse struct {
	Layover         AirportResponse  `json:"layover"`
	Leg1            FlightResponse   `json:"leg1"`
	Leg2            FlightResponse   `json:"leg2"`
	LayoverDuration DurationResponse `json:"layover_duration"`
	TotalDuration   DurationResponse `json:"total_duration"`
	TotalPriceEUR   *string          `json:"total_price_eur"`
	Formatted       string           `json:"formatted"`
}
