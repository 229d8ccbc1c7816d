package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"budgethub/internal/dto"
	"budgethub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const dateLayout = "2006-01-02"

type ExpenseRepo interface {
	Create(ctx context.Context, expense *models.Expense) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Expense, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ReplaceAll(ctx context.Context, userID uuid.UUID, expenses []*models.Expense) error
}

type ExpenseService struct {
	expenseRepo ExpenseRepo
	logger      *zap.Logger

	// Import is a destructive replace; concurrent imports by one owner must
	// not interleave the delete and reinsert phases.
	mu          sync.Mutex
	importLocks map[uuid.UUID]*semaphore.Weighted
}

func NewExpenseService(expenseRepo ExpenseRepo, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
		importLocks: make(map[uuid.UUID]*semaphore.Weighted),
	}
}

func (s *ExpenseService) Add(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) error {
	if req.Description == "" {
		return validationErrorf("Description is required")
	}
	if req.Category == "" {
		return validationErrorf("Category is required")
	}
	if req.Amount <= 0 {
		return validationErrorf("Amount must be a positive number")
	}
	if req.Date == "" {
		return validationErrorf("Date is required")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return validationErrorf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}

	now := time.Now()
	expense := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Description: req.Description,
		Amount:      decimal.NewFromFloat(req.Amount),
		Category:    req.Category,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.expenseRepo.Create(ctx, expense)
}

func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, toExpenseResponse(e))
	}
	return result, nil
}

// Update replaces only the fields present in the request, leaving the rest of
// the stored expense unchanged.
func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateExpenseRequest) error {
	expense, err := s.expenseRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExpenseNotFound
		}
		return err
	}

	if req.Description != nil {
		if *req.Description == "" {
			return validationErrorf("Description cannot be empty")
		}
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return validationErrorf("Amount must be a positive number")
		}
		expense.Amount = decimal.NewFromFloat(*req.Amount)
	}
	if req.Category != nil {
		if *req.Category == "" {
			return validationErrorf("Category cannot be empty")
		}
		expense.Category = *req.Category
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return validationErrorf("invalid date %q, expected YYYY-MM-DD", *req.Date)
		}
		expense.Date = date
	}
	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExpenseNotFound
		}
		return err
	}
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExpenseNotFound
		}
		return err
	}
	return nil
}

// Export renders the owner's expenses as a CSV document.
func (s *ExpenseService) Export(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	expenses, err := s.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeExpensesCSV(&buf, expenses); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import parses an uploaded CSV and replaces the owner's entire expense
// history with the rows it yields. Returns the number of imported expenses.
func (s *ExpenseService) Import(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (int, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return 0, validationErrorf("File must be a .csv")
	}

	expenses, err := parseImportCSV(file)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for _, e := range expenses {
		e.ID = uuid.New()
		e.UserID = userID
		e.CreatedAt = now
		e.UpdatedAt = now
	}

	lock := s.importLock(userID)
	if err := lock.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer lock.Release(1)

	if err := s.expenseRepo.ReplaceAll(ctx, userID, expenses); err != nil {
		return 0, err
	}

	s.logger.Info("Imported expenses",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(expenses)),
	)
	return len(expenses), nil
}

func (s *ExpenseService) importLock(userID uuid.UUID) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.importLocks[userID]
	if !ok {
		lock = semaphore.NewWeighted(1)
		s.importLocks[userID] = lock
	}
	return lock
}

func toExpenseResponse(e *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      e.Amount.Round(2).InexactFloat64(),
		Category:    e.Category,
		Date:        e.Date.Format(dateLayout),
	}
}
