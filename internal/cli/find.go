package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shandysiswandi/gofindway/internal/findway/inbound"
	"github.com/shandysiswandi/gofindway/internal/findway/usecase"
)

var (
	errMissingOptions = errors.New("all options are required: --from, --to, --date")
	errNoRoutes       = errors.New("no routes found")
)

type finder interface {
	FindDirect(ctx context.Context, origin, destination string, date time.Time) []entity.Flight
	FindConnections(ctx context.Context, origin, destination string, date time.Time, sortKey string) []entity.Route
}

type finderFactory func(ctx context.Context, configPath string) (finder, func(context.Context) error, error)

func findCmd(newFinder finderFactory, configPath *string) *cobra.Command {
	var from, to, date, sortKey string

	c := &cobra.Command{
		Use:   "find",
		Short: "Find a way to fly from A to B, including one-stop connections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" || strings.TrimSpace(date) == "" {
				return errMissingOptions
			}

			// sort only matters for connections and is checked there
			input, err := inbound.ParseSearchInput(inbound.SearchQuery{
				Origin:      from,
				Destination: to,
				Date:        date,
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			f, closer, err := newFinder(ctx, *configPath)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closer(ctx); cerr != nil {
					slog.WarnContext(ctx, "failed to close resources", "error", cerr)
				}
			}()

			return runSearch(ctx, cmd.OutOrStdout(), f, input, sortKey)
		},
	}

	c.Flags().StringVar(&from, "from", "", "Origin airport IATA code (e.g. BER)")
	c.Flags().StringVar(&to, "to", "", "Destination airport IATA code (e.g. DUB)")
	c.Flags().StringVar(&date, "date", "", "Travel date in YYYY-MM-DD format")
	c.Flags().StringVar(&sortKey, "sort", usecase.SortDuration, `Sort by "duration" or "price"`)
	return c
}

// runSearch prints direct flights when there are any and falls back to
// connections otherwise. rawSort is validated only on the connection path.
// It returns errNoRoutes when both come back empty.
func runSearch(ctx context.Context, w io.Writer, f finder, in usecase.SearchInput, rawSort string) error {
	p := newPrinter(w)
	day := in.Date.Format("2006-01-02")

	p.info(fmt.Sprintf("Searching direct flights %s -> %s on %s...", in.Origin, in.Destination, day))

	if direct := f.FindDirect(ctx, in.Origin, in.Destination, in.Date); len(direct) > 0 {
		p.direct(in.Origin, in.Destination, day, direct)
		return nil
	}

	p.line("No direct flights found. Searching connections...")
	p.blank()

	sortKey, err := inbound.ParseSort(rawSort)
	if err != nil {
		return err
	}

	routes := f.FindConnections(ctx, in.Origin, in.Destination, in.Date, sortKey)
	if len(routes) == 0 {
		p.warn(fmt.Sprintf("No routes found from %s to %s on %s.", in.Origin, in.Destination, day))
		return errNoRoutes
	}

	p.routes(in.Origin, in.Destination, sortKey, routes)
	return nil
}
