package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
)

const (
	SortPrice    = "price"
	SortDuration = "duration"
)

type legKind int

const (
	legOutbound legKind = iota
	legInbound
)

type legResult struct {
	code    string
	kind    legKind
	flights []entity.Flight
}

type candidateLegs struct {
	outbound []entity.Flight
	inbound  []entity.Flight
}

// FindConnections searches one-stop itineraries through every airport served
// from both origin and destination. Any sortKey other than "duration" sorts
// by total EUR price.
func (u *Usecase) FindConnections(ctx context.Context, origin, destination string, date time.Time, sortKey string) []entity.Route {
	candidates := u.candidates(ctx, origin, destination)
	if len(candidates) == 0 {
		slog.InfoContext(ctx, "no layover candidates", "origin", origin, "destination", destination)
		return nil
	}

	legs := u.searchLegs(ctx, origin, destination, date, candidates)

	routes := make([]entity.Route, 0)
	for _, candidate := range candidates {
		l := legs[candidate.Code]
		if l == nil || len(l.outbound) == 0 || len(l.inbound) == 0 {
			continue
		}
		routes = append(routes, u.pairLegs(ctx, candidate, l.outbound, l.inbound)...)
	}

	sortRoutes(routes, sortKey)

	slog.InfoContext(ctx, "connection search finished",
		"origin", origin,
		"destination", destination,
		"date", date.Format(dateLayout),
		"candidates", len(candidates),
		"routes", len(routes),
	)

	return routes
}

// candidates returns the airports reachable from origin that also reach
// destination, in origin's order.
func (u *Usecase) candidates(ctx context.Context, origin, destination string) []entity.Airport {
	var fromOrigin, fromDestination []entity.Airport

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		fromOrigin = u.destinations(ctx, origin)
	}()
	go func() {
		defer wg.Done()
		fromDestination = u.destinations(ctx, destination)
	}()
	wg.Wait()

	return intersectAirports(fromOrigin, fromDestination)
}

func intersectAirports(a, b []entity.Airport) []entity.Airport {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]struct{}, len(b))
	for _, airport := range b {
		inB[airport.Code] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a))
	out := make([]entity.Airport, 0)
	for _, airport := range a {
		if _, ok := inB[airport.Code]; !ok {
			continue
		}
		if _, dup := seen[airport.Code]; dup {
			continue
		}
		seen[airport.Code] = struct{}{}
		out = append(out, airport)
	}
	return out
}

// searchLegs fetches both legs of every candidate concurrently and returns
// once all of them have settled.
func (u *Usecase) searchLegs(
	ctx context.Context,
	origin string,
	destination string,
	date time.Time,
	candidates []entity.Airport,
) map[string]*candidateLegs {
	total := len(candidates) * 2
	resCh := make(chan legResult, total)

	for _, c := range candidates {
		code := c.Code
		go func() {
			resCh <- legResult{code: code, kind: legOutbound, flights: u.flights(ctx, origin, code, date)}
		}()
		go func() {
			resCh <- legResult{code: code, kind: legInbound, flights: u.flights(ctx, code, destination, date)}
		}()
	}

	legs := make(map[string]*candidateLegs, len(candidates))
	for i := 0; i < total; i++ {
		res := <-resCh
		l, ok := legs[res.code]
		if !ok {
			l = &candidateLegs{}
			legs[res.code] = l
		}
		switch res.kind {
		case legOutbound:
			l.outbound = res.flights
		case legInbound:
			l.inbound = res.flights
		}
	}

	return legs
}

func (u *Usecase) pairLegs(ctx context.Context, layover entity.Airport, outbound, inbound []entity.Flight) []entity.Route {
	outbound = u.withPriceEUR(ctx, outbound)
	inbound = u.withPriceEUR(ctx, inbound)

	routes := make([]entity.Route, 0)
	for _, leg1 := range outbound {
		for _, leg2 := range inbound {
			if !hasTimes(leg1) || !hasTimes(leg2) {
				continue
			}

			layoverMinutes := floorMinutes(leg2.Departure.Time.Sub(leg1.Arrival.Time))
			if layoverMinutes < u.minLayoverMinutes {
				continue
			}

			routes = append(routes, entity.Route{
				Layover:              layover,
				Leg1:                 leg1,
				Leg2:                 leg2,
				LayoverMinutes:       layoverMinutes,
				TotalDurationMinutes: floorMinutes(leg2.Arrival.Time.Sub(leg1.Departure.Time)),
				TotalPriceEUR:        sumEUR(leg1, leg2),
			})
		}
	}
	return routes
}

func hasTimes(f entity.Flight) bool {
	return !f.Departure.Time.IsZero() && !f.Arrival.Time.IsZero()
}

// floorMinutes truncates towards negative infinity so that -30s is -1.
func floorMinutes(d time.Duration) int {
	minutes := d / time.Minute
	if d%time.Minute < 0 {
		minutes--
	}
	return int(minutes)
}

func sortRoutes(routes []entity.Route, sortKey string) {
	if strings.EqualFold(sortKey, SortDuration) {
		sort.SliceStable(routes, func(i, j int) bool {
			return routes[i].TotalDurationMinutes < routes[j].TotalDurationMinutes
		})
		return
	}

	// unpriced routes go last and keep their relative order
	sort.SliceStable(routes, func(i, j int) bool {
		a, b := routes[i].TotalPriceEUR, routes[j].TotalPriceEUR
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.LessThan(*b)
	})
}
