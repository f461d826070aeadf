package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shandysiswandi/gofindway/internal/findway/inbound"
	"github.com/shandysiswandi/gofindway/internal/findway/usecase"
)

type theme struct {
	Info    lipgloss.Style
	Warn    lipgloss.Style
	Route   lipgloss.Style
	Layover lipgloss.Style
	Summary lipgloss.Style
}

// newTheme binds styles to w so plain writers (pipes, buffers) get no escape
// codes.
func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		Info:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Warn:    r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Route:   r.NewStyle().Foreground(lipgloss.Color("2")),
		Layover: r.NewStyle().Foreground(lipgloss.Color("3")),
		Summary: r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

type printer struct {
	w     io.Writer
	theme theme
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, theme: newTheme(w)}
}

func (p *printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) blank() {
	fmt.Fprintln(p.w)
}

func (p *printer) info(s string) {
	p.line(p.theme.Info.Render(s))
}

func (p *printer) warn(s string) {
	p.line(p.theme.Warn.Render(s))
}

func (p *printer) direct(origin, destination, day string, flights []entity.Flight) {
	p.blank()
	p.line(p.theme.Route.Render(fmt.Sprintf("Direct: %s -> %s on %s", origin, destination, day)))
	p.blank()

	for _, f := range flights {
		p.line(fmt.Sprintf("  %s  %s -> %s  (%s)  %s",
			f.FlightNumber, clock(f.Departure.Time), clock(f.Arrival.Time), f.Duration, inbound.FormatPrice(f)))
	}
}

func (p *printer) routes(origin, destination, sortKey string, routes []entity.Route) {
	label := "price"
	if strings.EqualFold(sortKey, usecase.SortDuration) {
		label = "total duration"
	}
	p.info(fmt.Sprintf("Found %d connecting route(s), sorted by %s:", len(routes), label))
	p.blank()

	const prefix = "  |  "
	for i, r := range routes {
		p.line(p.theme.Route.Render(fmt.Sprintf("  Route %d: %s -> %s -> %s  (total %s)",
			i+1, origin, r.Layover.Code, destination, inbound.FormatTotal(r.TotalPriceEUR))))
		p.leg(prefix, r.Leg1)
		p.line(prefix + p.theme.Layover.Render(fmt.Sprintf("Layover: %s at %s",
			inbound.FormatMinutes(r.LayoverMinutes), r.Layover.Name)))
		p.leg(prefix, r.Leg2)
		p.line(prefix + p.theme.Summary.Render(fmt.Sprintf("Departs %s -> Arrives %s  (total travel: %s)",
			clock(r.Leg1.Departure.Time), clock(r.Leg2.Arrival.Time), inbound.FormatMinutes(r.TotalDurationMinutes))))
		p.blank()
	}
}

func (p *printer) leg(prefix string, f entity.Flight) {
	p.line(fmt.Sprintf("%s%s  %s -> %s  %s -> %s  %s",
		prefix, f.FlightNumber, clock(f.Departure.Time), clock(f.Arrival.Time),
		f.Departure.Airport, f.Arrival.Airport, inbound.FormatPrice(f)))
}

func clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}
