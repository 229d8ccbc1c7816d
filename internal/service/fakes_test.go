package service

import (
	"context"
	"time"

	"budgethub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

type fakeExpenseRepo struct {
	expenses map[uuid.UUID]*models.Expense
	order    []uuid.UUID
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[uuid.UUID]*models.Expense)}
}

func (r *fakeExpenseRepo) Create(_ context.Context, expense *models.Expense) error {
	cp := *expense
	r.expenses[expense.ID] = &cp
	r.order = append(r.order, expense.ID)
	return nil
}

func (r *fakeExpenseRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Expense, error) {
	var result []*models.Expense
	for _, id := range r.order {
		if e, ok := r.expenses[id]; ok && e.UserID == userID {
			cp := *e
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id, userID uuid.UUID) (*models.Expense, error) {
	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) Update(_ context.Context, expense *models.Expense) error {
	e, ok := r.expenses[expense.ID]
	if !ok || e.UserID != expense.UserID {
		return pgx.ErrNoRows
	}
	cp := *expense
	r.expenses[expense.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	e, ok := r.expenses[id]
	if !ok || e.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) ReplaceAll(_ context.Context, userID uuid.UUID, expenses []*models.Expense) error {
	var kept []uuid.UUID
	for _, id := range r.order {
		if e, ok := r.expenses[id]; ok && e.UserID == userID {
			delete(r.expenses, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	for _, e := range expenses {
		cp := *e
		r.expenses[e.ID] = &cp
		r.order = append(r.order, e.ID)
	}
	return nil
}

func (r *fakeExpenseRepo) SumByCategory(_ context.Context, userID uuid.UUID, category string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.expenses {
		if e.UserID == userID && e.Category == category {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r *fakeExpenseRepo) SumSince(_ context.Context, userID uuid.UUID, from time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.expenses {
		if e.UserID == userID && !e.Date.Before(from) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r *fakeExpenseRepo) SumBetween(_ context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.expenses {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

type fakeBudgetRepo struct {
	budgets map[uuid.UUID]*models.Budget
	order   []uuid.UUID
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{budgets: make(map[uuid.UUID]*models.Budget)}
}

func (r *fakeBudgetRepo) Create(_ context.Context, budget *models.Budget) error {
	cp := *budget
	r.budgets[budget.ID] = &cp
	r.order = append(r.order, budget.ID)
	return nil
}

func (r *fakeBudgetRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Budget, error) {
	var result []*models.Budget
	for _, id := range r.order {
		if b, ok := r.budgets[id]; ok && b.UserID == userID {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeBudgetRepo) ExistsByCategory(_ context.Context, userID uuid.UUID, category string) (bool, error) {
	for _, b := range r.budgets {
		if b.UserID == userID && b.Category == category {
			return true, nil
		}
	}
	return false, nil
}
