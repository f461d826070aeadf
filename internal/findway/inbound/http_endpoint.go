package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/gofindway/internal/findway/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Routes(ctx context.Context, r *http.Request) (any, error) {
	input, err := ParseSearchInput(searchQueryFromRequest(r))
	if err != nil {
		return nil, err
	}

	output := h.uc.Search(ctx, input)

	return SearchResponse{
		SearchCriteria: mapCriteria(input),
		Metadata: MetadataResponse{
			Provider:     output.Metadata.Provider,
			TotalResults: output.Metadata.TotalResults,
			SearchTimeMs: output.Metadata.SearchTimeMs,
		},
		Kind:          output.Kind,
		DirectFlights: mapFlightResponses(output.Direct),
		Connections:   mapRouteResponses(output.Connections),
	}, nil
}

func (h *HTTPEndpoint) Direct(ctx context.Context, r *http.Request) (any, error) {
	input, err := ParseSearchInput(searchQueryFromRequest(r))
	if err != nil {
		return nil, err
	}

	flights := h.uc.FindDirect(ctx, input.Origin, input.Destination, input.Date)

	criteria := mapCriteria(input)
	criteria.Sort = ""
	return DirectResponse{
		SearchCriteria: criteria,
		Flights:        mapFlightResponses(flights),
	}, nil
}

func (h *HTTPEndpoint) Connections(ctx context.Context, r *http.Request) (any, error) {
	input, err := ParseSearchInput(searchQueryFromRequest(r))
	if err != nil {
		return nil, err
	}

	routes := h.uc.FindConnections(ctx, input.Origin, input.Destination, input.Date, input.Sort)

	return ConnectionsResponse{
		SearchCriteria: mapCriteria(input),
		Routes:         mapRouteResponses(routes),
	}, nil
}

func mapCriteria(in usecase.SearchInput) SearchCriteriaResponse {
	return SearchCriteriaResponse{
		Origin:      in.Origin,
		Destination: in.Destination,
		Date:        in.Date.Format(dateLayout),
		Sort:        in.Sort,
	}
}
