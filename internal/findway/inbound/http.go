package inbound

import (
	"context"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shandysiswandi/gofindway/internal/findway/usecase"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgrouter"
)

type uc interface {
	Search(ctx context.Context, in usecase.SearchInput) *usecase.SearchOutput
	FindDirect(ctx context.Context, origin, destination string, date time.Time) []entity.Flight
	FindConnections(ctx context.Context, origin, destination string, date time.Time, sortKey string) []entity.Route
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/routes", end.Routes)
	r.GET("/routes/direct", end.Direct)
	r.GET("/routes/connections", end.Connections)
}
