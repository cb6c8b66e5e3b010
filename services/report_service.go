package services

import (
	"context"

	"eventpro-backend/clock"
	"eventpro-backend/models"
	"eventpro-backend/repository"
	"eventpro-backend/utils"

	"github.com/shopspring/decimal"
)

const TopServicesLimit = 5

type Report struct {
	CurrentMonthRevenue  models.Money                 `json:"currentMonthRevenue"`
	PreviousMonthRevenue models.Money                 `json:"previousMonthRevenue"`
	MonthGrowth          float64                      `json:"monthGrowth"`
	RevenueByEventType   []repository.CategoryRevenue `json:"revenueByEventType"`
	TopServices          []repository.ServiceRevenue  `json:"topServices"`
}

type ReportService struct {
	store *repository.Store
	clock clock.Clock
}

func NewReportService(store *repository.Store, clk clock.Clock) *ReportService {
	return &ReportService{store: store, clock: clk}
}

// Build compares the budgets of events dated this month with last month and
// adds the per-type and per-service breakdowns.
func (s *ReportService) Build(ctx context.Context) (*Report, error) {
	firstOfMonth := utils.BeginningOfMonth(s.clock.Now())
	firstOfNext := firstOfMonth.AddDate(0, 1, 0)
	firstOfPrev := firstOfMonth.AddDate(0, -1, 0)

	current, err := s.store.RevenueBetween(ctx, firstOfMonth, firstOfNext)
	if err != nil {
		return nil, err
	}
	previous, err := s.store.RevenueBetween(ctx, firstOfPrev, firstOfMonth)
	if err != nil {
		return nil, err
	}
	byType, err := s.store.RevenueByEventType(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.store.TopServices(ctx, TopServicesLimit)
	if err != nil {
		return nil, err
	}

	return &Report{
		CurrentMonthRevenue:  current,
		PreviousMonthRevenue: previous,
		MonthGrowth:          Growth(current, previous),
		RevenueByEventType:   byType,
		TopServices:          top,
	}, nil
}

// Growth is the percent change from previous to current, rounded to two
// places. A zero previous period counts as 100% growth unless both are zero.
func Growth(current, previous models.Money) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	pct := current.Sub(previous.Decimal).Div(previous.Decimal).Mul(decimal.NewFromInt(100))
	return pct.Round(2).InexactFloat64()
}
