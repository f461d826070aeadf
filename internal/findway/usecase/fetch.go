package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shandysiswandi/gofindway/internal/findway/provider"
)

// The helpers below are the only place source errors are seen. Each one logs
// the failure and hands back an empty result.

func (u *Usecase) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.callTimeout)
}

func (u *Usecase) availableDates(ctx context.Context, origin, destination string) []string {
	callCtx, cancel := u.callContext(ctx)
	defer cancel()

	dates, err := u.source.AvailableDates(callCtx, origin, destination)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch available dates",
			"provider", u.source.Name(), "origin", origin, "destination", destination, "error", err)
		return nil
	}
	return dates
}

func (u *Usecase) destinations(ctx context.Context, airport string) []entity.Airport {
	callCtx, cancel := u.callContext(ctx)
	defer cancel()

	airports, err := u.source.Destinations(callCtx, airport)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch destinations",
			"provider", u.source.Name(), "airport", airport, "error", err)
		return nil
	}
	return airports
}

func (u *Usecase) flights(ctx context.Context, origin, destination string, date time.Time) []entity.Flight {
	callCtx, cancel := u.callContext(ctx)
	defer cancel()

	flights, err := u.source.Flights(callCtx, provider.SearchRequest{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: date,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch flights",
			"provider", u.source.Name(), "origin", origin, "destination", destination,
			"date", date.Format(dateLayout), "error", err)
		return nil
	}
	return flights
}

// withPriceEUR returns copies of flights annotated with their EUR price.
func (u *Usecase) withPriceEUR(ctx context.Context, flights []entity.Flight) []entity.Flight {
	annotated := make([]entity.Flight, 0, len(flights))
	for _, f := range flights {
		if f.Price == nil {
			annotated = append(annotated, f.WithPriceEUR(nil))
			continue
		}
		annotated = append(annotated, f.WithPriceEUR(u.converter.ToEUR(ctx, *f.Price, f.Currency)))
	}
	return annotated
}
