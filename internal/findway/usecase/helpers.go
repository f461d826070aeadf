package usecase

import (
	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shopspring/decimal"
)

func sumEUR(leg1, leg2 entity.Flight) *decimal.Decimal {
	if leg1.PriceEUR == nil || leg2.PriceEUR == nil {
		return nil
	}
	total := leg1.PriceEUR.Add(*leg2.PriceEUR).Round(2)
	return &total
}
