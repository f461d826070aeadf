package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gofindway/internal/findway/provider"
	"github.com/shopspring/decimal"
)

const DefaultMinLayoverMinutes = 60

type Converter interface {
	ToEUR(ctx context.Context, amount decimal.Decimal, currency string) *decimal.Decimal
}

type Dependency struct {
	Source            provider.Source
	Converter         Converter
	CallTimeout       time.Duration
	MinLayoverMinutes int
}

type Usecase struct {
	source            provider.Source
	converter         Converter
	callTimeout       time.Duration
	minLayoverMinutes int
}

func New(dep Dependency) *Usecase {
	minLayover := dep.MinLayoverMinutes
	if minLayover <= 0 {
		minLayover = DefaultMinLayoverMinutes
	}
	return &Usecase{
		source:            dep.Source,
		converter:         dep.Converter,
		callTimeout:       dep.CallTimeout,
		minLayoverMinutes: minLayover,
	}
}
