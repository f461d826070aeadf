package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
)

const (
	KindDirect     = "direct"
	KindConnection = "connection"
	KindNone       = "none"
)

type SearchInput struct {
	Origin      string
	Destination string
	Date        time.Time
	Sort        string
}

type SearchCriteria struct {
	Origin      string
	Destination string
	Date        string
	Sort        string
}

type SearchMetadata struct {
	Provider     string
	TotalResults int
	SearchTimeMs int64
}

type SearchOutput struct {
	Criteria    SearchCriteria
	Metadata    SearchMetadata
	Kind        string
	Direct      []entity.Flight
	Connections []entity.Route
}

// Search tries direct flights first and falls back to one-stop connections
// only when there are none.
func (u *Usecase) Search(ctx context.Context, in SearchInput) *SearchOutput {
	start := time.Now()
	out := &SearchOutput{
		Criteria: SearchCriteria{
			Origin:      in.Origin,
			Destination: in.Destination,
			Date:        in.Date.Format(dateLayout),
			Sort:        in.Sort,
		},
		Kind: KindNone,
	}

	if direct := u.FindDirect(ctx, in.Origin, in.Destination, in.Date); len(direct) > 0 {
		out.Kind = KindDirect
		out.Direct = direct
	} else if routes := u.FindConnections(ctx, in.Origin, in.Destination, in.Date, in.Sort); len(routes) > 0 {
		out.Kind = KindConnection
		out.Connections = routes
	}

	out.Metadata = SearchMetadata{
		Provider:     u.source.Name(),
		TotalResults: len(out.Direct) + len(out.Connections),
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
	return out
}
