package service

import (
	"context"
	"time"

	"budgethub/internal/dto"
	"budgethub/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

type BudgetRepo interface {
	Create(ctx context.Context, budget *models.Budget) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Budget, error)
	ExistsByCategory(ctx context.Context, userID uuid.UUID, category string) (bool, error)
}

type CategorySums interface {
	SumByCategory(ctx context.Context, userID uuid.UUID, category string) (decimal.Decimal, error)
}

type BudgetService struct {
	budgetRepo  BudgetRepo
	expenseRepo CategorySums
	logger      *zap.Logger
}

func NewBudgetService(budgetRepo BudgetRepo, expenseRepo CategorySums, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// Create persists a budget ceiling. A zero or negative limit is accepted;
// percent-used handles it at read time. One budget per (owner, category).
func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateBudgetRequest) error {
	if req.Category == "" {
		return validationErrorf("Category is required")
	}

	exists, err := s.budgetRepo.ExistsByCategory(ctx, userID, req.Category)
	if err != nil {
		return err
	}
	if exists {
		return ErrBudgetExists
	}

	now := time.Now()
	budget := &models.Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  req.Category,
		Limit:     decimal.NewFromFloat(req.Limit),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		if isUniqueViolation(err) {
			return ErrBudgetExists
		}
		return err
	}
	return nil
}

// List returns each budget with its derived spend metrics: spent is the sum
// of the owner's expenses in the exact same category, remaining may go
// negative, percent_used is clamped to 0 when the limit is not positive.
func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]dto.BudgetResponse, error) {
	budgets, err := s.budgetRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.expenseRepo.SumByCategory(ctx, userID, b.Category)
		if err != nil {
			return nil, err
		}

		percentUsed := decimal.Zero
		if b.Limit.IsPositive() {
			percentUsed = spent.Div(b.Limit).Mul(hundred)
		}

		result = append(result, dto.BudgetResponse{
			ID:          b.ID.String(),
			Category:    b.Category,
			Limit:       b.Limit.Round(2).InexactFloat64(),
			Spent:       spent.Round(2).InexactFloat64(),
			Remaining:   b.Limit.Sub(spent).Round(2).InexactFloat64(),
			PercentUsed: percentUsed.Round(2).InexactFloat64(),
			Warning:     percentUsed.GreaterThanOrEqual(warningThreshold),
			AlertLevel:  alertLevel(percentUsed),
		})
	}

	return result, nil
}

func alertLevel(percentUsed decimal.Decimal) string {
	switch {
	case percentUsed.GreaterThanOrEqual(hundred):
		return "danger"
	case percentUsed.GreaterThanOrEqual(warningThreshold):
		return "warning"
	default:
		return "safe"
	}
}
