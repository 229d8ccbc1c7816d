package service

import (
	"context"
	"time"

	"budgethub/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SpendingSums interface {
	SumSince(ctx context.Context, userID uuid.UUID, from time.Time) (decimal.Decimal, error)
	SumBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}

type DashboardService struct {
	expenseRepo SpendingSums
	logger      *zap.Logger
	now         func() time.Time
}

func NewDashboardService(expenseRepo SpendingSums, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		expenseRepo: expenseRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// WeeklySummary totals the caller's spending for the current Monday-started
// week and the one before it. The current week has no upper bound, so
// future-dated expenses count toward it.
func (s *DashboardService) WeeklySummary(ctx context.Context, userID uuid.UUID) (*dto.WeeklySummaryResponse, error) {
	startThisWeek, startLastWeek, endLastWeek := weekBounds(s.now())

	thisWeek, err := s.expenseRepo.SumSince(ctx, userID, startThisWeek)
	if err != nil {
		return nil, err
	}

	lastWeek, err := s.expenseRepo.SumBetween(ctx, userID, startLastWeek, endLastWeek)
	if err != nil {
		return nil, err
	}

	return &dto.WeeklySummaryResponse{
		ThisWeek:      thisWeek.Round(2).InexactFloat64(),
		LastWeek:      lastWeek.Round(2).InexactFloat64(),
		PercentChange: percentChange(thisWeek, lastWeek),
	}, nil
}

// weekBounds derives the Monday starting the week containing today, plus the
// inclusive bounds of the week before it.
func weekBounds(today time.Time) (startThisWeek, startLastWeek, endLastWeek time.Time) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	startThisWeek = day.AddDate(0, 0, -offset)
	startLastWeek = startThisWeek.AddDate(0, 0, -7)
	endLastWeek = startThisWeek.AddDate(0, 0, -1)
	return startThisWeek, startLastWeek, endLastWeek
}

// percentChange is the week-over-week delta as a percentage, one decimal
// place, defined as 0 whenever last week had no spending.
func percentChange(thisWeek, lastWeek decimal.Decimal) float64 {
	if lastWeek.Sign() <= 0 {
		return 0
	}
	return thisWeek.Sub(lastWeek).Div(lastWeek).Mul(hundred).Round(1).InexactFloat64()
}
