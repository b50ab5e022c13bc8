package stats

import (
	"context"

	"github.com/shopspring/decimal"
)

type StatsService interface {
	// GetStats filters the user's shifts by period and aggregates hours,
	// shift count, advances and wage. The adjustment is a manual
	// correction added to the computed wage.
	GetStats(ctx context.Context, period Period, adjustment decimal.Decimal) (StatsResponse, error)
}
