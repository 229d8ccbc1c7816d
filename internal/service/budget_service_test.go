package service

import (
	"context"
	"testing"

	"budgethub/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBudgetFixture() (*BudgetService, *ExpenseService, uuid.UUID) {
	expenseRepo := newFakeExpenseRepo()
	budgetRepo := newFakeBudgetRepo()
	return NewBudgetService(budgetRepo, expenseRepo, zap.NewNop()),
		NewExpenseService(expenseRepo, zap.NewNop()),
		uuid.New()
}

func createBudget(t *testing.T, svc *BudgetService, userID uuid.UUID, category string, limit float64) {
	t.Helper()
	err := svc.Create(context.Background(), userID, &dto.CreateBudgetRequest{
		Category: category,
		Limit:    limit,
	})
	require.NoError(t, err)
}

func listOne(t *testing.T, svc *BudgetService, userID uuid.UUID) dto.BudgetResponse {
	t.Helper()
	budgets, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	return budgets[0]
}

func TestBudgetCreateRequiresCategory(t *testing.T) {
	svc, _, userID := newBudgetFixture()

	err := svc.Create(context.Background(), userID, &dto.CreateBudgetRequest{Limit: 100})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestBudgetCreateDuplicateCategory(t *testing.T) {
	svc, _, userID := newBudgetFixture()
	createBudget(t, svc, userID, "Food", 100)

	err := svc.Create(context.Background(), userID, &dto.CreateBudgetRequest{Category: "Food", Limit: 200})
	assert.ErrorIs(t, err, ErrBudgetExists)
}

func TestBudgetMetricsWarning(t *testing.T) {
	budgetSvc, expenseSvc, userID := newBudgetFixture()
	createBudget(t, budgetSvc, userID, "Food", 100)
	addExpense(t, expenseSvc, userID, "Groceries run", 80, "Food", "2024-03-01")

	b := listOne(t, budgetSvc, userID)
	assert.Equal(t, 80.0, b.Spent)
	assert.Equal(t, 20.0, b.Remaining)
	assert.Equal(t, 80.0, b.PercentUsed)
	assert.True(t, b.Warning)
	assert.Equal(t, "warning", b.AlertLevel)
}

func TestBudgetMetricsDanger(t *testing.T) {
	budgetSvc, expenseSvc, userID := newBudgetFixture()
	createBudget(t, budgetSvc, userID, "Food", 100)
	addExpense(t, expenseSvc, userID, "Feast", 100, "Food", "2024-03-01")

	b := listOne(t, budgetSvc, userID)
	assert.Equal(t, 100.0, b.PercentUsed)
	assert.Equal(t, "danger", b.AlertLevel)
}

func TestBudgetMetricsOverspend(t *testing.T) {
	budgetSvc, expenseSvc, userID := newBudgetFixture()
	createBudget(t, budgetSvc, userID, "Food", 100)
	addExpense(t, expenseSvc, userID, "Banquet", 120, "Food", "2024-03-01")

	b := listOne(t, budgetSvc, userID)
	assert.Equal(t, -20.0, b.Remaining)
	assert.Equal(t, 120.0, b.PercentUsed)
	assert.Equal(t, "danger", b.AlertLevel)
}

func TestBudgetMetricsSafe(t *testing.T) {
	budgetSvc, expenseSvc, userID := newBudgetFixture()
	createBudget(t, budgetSvc, userID, "Food", 100)
	addExpense(t, expenseSvc, userID, "Snack", 10, "Food", "2024-03-01")

	b := listOne(t, budgetSvc, userID)
	assert.Equal(t, 10.0, b.PercentUsed)
	assert.False(t, b.Warning)
	assert.Equal(t, "safe", b.AlertLevel)
}

func TestBudgetZeroLimit(t *testing.T) {
	budgetSvc, expenseSvc, userID := newBudgetFixture()
	createBudget(t, budgetSvc, userID, "Food", 0)
	addExpense(t, expenseSvc, userID, "Snack", 10, "Food", "2024-03-01")

	b := listOne(t, budgetSvc, userID)
	assert.Equal(t, 0.0, b.PercentUsed, "percent_used is clamped to 0 when limit is not positive")
	assert.False(t, b.Warning)
	assert.Equal(t, "safe", b.AlertLevel)
	assert.Equal(t, -10.0, b.Remaining)
}

func TestBudgetCategoryMatchIsExact(t *testing.T) {
	budgetSvc, expenseSvc, userID := newBudgetFixture()
	createBudget(t, budgetSvc, userID, "Food", 100)
	addExpense(t, expenseSvc, userID, "Snack", 10, "food", "2024-03-01")

	b := listOne(t, budgetSvc, userID)
	assert.Equal(t, 0.0, b.Spent, "category comparison is case-sensitive")
}

func TestBudgetSpentScopedToOwner(t *testing.T) {
	expenseRepo := newFakeExpenseRepo()
	budgetRepo := newFakeBudgetRepo()
	budgetSvc := NewBudgetService(budgetRepo, expenseRepo, zap.NewNop())
	expenseSvc := NewExpenseService(expenseRepo, zap.NewNop())
	alice, bob := uuid.New(), uuid.New()

	createBudget(t, budgetSvc, alice, "Food", 100)
	addExpense(t, expenseSvc, alice, "Lunch", 30, "Food", "2024-03-01")
	addExpense(t, expenseSvc, bob, "Dinner", 60, "Food", "2024-03-01")

	b := listOne(t, budgetSvc, alice)
	assert.Equal(t, 30.0, b.Spent)
}

func TestBudgetPercentRounding(t *testing.T) {
	budgetSvc, expenseSvc, userID := newBudgetFixture()
	createBudget(t, budgetSvc, userID, "Food", 30)
	addExpense(t, expenseSvc, userID, "Snack", 10, "Food", "2024-03-01")

	b := listOne(t, budgetSvc, userID)
	assert.Equal(t, 33.33, b.PercentUsed)
}
