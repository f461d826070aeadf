package usecase

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
)

const dateLayout = "2006-01-02"

// FindDirect returns the non-stop flights for date, each with its EUR price.
// A date missing from the availability list short-circuits to nil without
// querying flights. Nil means no direct service.
func (u *Usecase) FindDirect(ctx context.Context, origin, destination string, date time.Time) []entity.Flight {
	dates := u.availableDates(ctx, origin, destination)
	if !slices.Contains(dates, date.Format(dateLayout)) {
		slog.DebugContext(ctx, "date not in availability list",
			"origin", origin, "destination", destination, "date", date.Format(dateLayout), "dates", len(dates))
		return nil
	}

	flights := u.flights(ctx, origin, destination, date)
	if len(flights) == 0 {
		return nil
	}

	return u.withPriceEUR(ctx, flights)
}
