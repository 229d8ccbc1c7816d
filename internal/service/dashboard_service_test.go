package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name          string
		today         time.Time
		wantThisStart time.Time
		wantLastStart time.Time
		wantLastEnd   time.Time
	}{
		{
			name:          "midweek wednesday",
			today:         date(2024, time.January, 10),
			wantThisStart: date(2024, time.January, 8),
			wantLastStart: date(2024, time.January, 1),
			wantLastEnd:   date(2024, time.January, 7),
		},
		{
			name:          "monday is its own week start",
			today:         date(2024, time.January, 8),
			wantThisStart: date(2024, time.January, 8),
			wantLastStart: date(2024, time.January, 1),
			wantLastEnd:   date(2024, time.January, 7),
		},
		{
			name:          "sunday belongs to the week started the previous monday",
			today:         date(2024, time.January, 14),
			wantThisStart: date(2024, time.January, 8),
			wantLastStart: date(2024, time.January, 1),
			wantLastEnd:   date(2024, time.January, 7),
		},
		{
			name:          "week spanning a month boundary",
			today:         date(2024, time.March, 1),
			wantThisStart: date(2024, time.February, 26),
			wantLastStart: date(2024, time.February, 19),
			wantLastEnd:   date(2024, time.February, 25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thisStart, lastStart, lastEnd := weekBounds(tt.today)
			assert.Equal(t, tt.wantThisStart, thisStart)
			assert.Equal(t, tt.wantLastStart, lastStart)
			assert.Equal(t, tt.wantLastEnd, lastEnd)
		})
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		thisWeek string
		lastWeek string
		want     float64
	}{
		{"zero last week means zero change", "250.00", "0", 0},
		{"negative last week means zero change", "250.00", "-1", 0},
		{"increase", "150.00", "100.00", 50},
		{"decrease", "50.00", "100.00", -50},
		{"rounded to one decimal", "100.00", "300.00", -66.7},
		{"no change", "75.00", "75.00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentChange(
				decimal.RequireFromString(tt.thisWeek),
				decimal.RequireFromString(tt.lastWeek),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeeklySummary(t *testing.T) {
	repo := newFakeExpenseRepo()
	expenseSvc := NewExpenseService(repo, zap.NewNop())
	svc := NewDashboardService(repo, zap.NewNop())
	svc.now = func() time.Time { return date(2024, time.January, 10) } // a Wednesday

	userID := uuid.New()
	addExpense(t, expenseSvc, userID, "This week lunch", 40, "Food", "2024-01-09")
	addExpense(t, expenseSvc, userID, "Future booking", 10, "Transport", "2024-01-20")
	addExpense(t, expenseSvc, userID, "Last week groceries", 25, "Groceries", "2024-01-03")
	addExpense(t, expenseSvc, userID, "Two weeks ago", 500, "Rent", "2023-12-29")

	summary, err := svc.WeeklySummary(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 50.0, summary.ThisWeek, "future-dated expenses count toward the current week")
	assert.Equal(t, 25.0, summary.LastWeek)
	assert.Equal(t, 100.0, summary.PercentChange)
}

func TestWeeklySummaryScopedToCaller(t *testing.T) {
	repo := newFakeExpenseRepo()
	expenseSvc := NewExpenseService(repo, zap.NewNop())
	svc := NewDashboardService(repo, zap.NewNop())
	svc.now = func() time.Time { return date(2024, time.January, 10) }

	alice, bob := uuid.New(), uuid.New()
	addExpense(t, expenseSvc, alice, "Lunch", 40, "Food", "2024-01-09")
	addExpense(t, expenseSvc, bob, "Dinner", 90, "Food", "2024-01-09")

	summary, err := svc.WeeklySummary(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 40.0, summary.ThisWeek)
}

func TestWeeklySummaryEmptyHistory(t *testing.T) {
	repo := newFakeExpenseRepo()
	svc := NewDashboardService(repo, zap.NewNop())
	svc.now = func() time.Time { return date(2024, time.January, 10) }

	summary, err := svc.WeeklySummary(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.ThisWeek)
	assert.Equal(t, 0.0, summary.LastWeek)
	assert.Equal(t, 0.0, summary.PercentChange)
}
