package repository

import (
	"context"
	"time"

	"budgethub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var expenseColumns = []string{"id", "user_id", "description", "amount", "category", "date", "created_at", "updated_at"}

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns(expenseColumns...).
		Values(expense.ID, expense.UserID, expense.Description, expense.Amount, expense.Category, expense.Date, expense.CreatedAt, expense.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListByUser returns the owner's expenses in insertion order.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}

	return expenses, rows.Err()
}

// GetByID returns the expense only when it is owned by userID;
// pgx.ErrNoRows otherwise.
func (r *ExpenseRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var e models.Expense
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Update("expenses").
		Set("description", expense.Description).
		Set("amount", expense.Amount).
		Set("category", expense.Category).
		Set("date", expense.Date).
		Set("updated_at", expense.UpdatedAt).
		Where(squirrel.Eq{"id": expense.ID, "user_id": expense.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ReplaceAll deletes every expense owned by userID and inserts the given
// rows, all inside one transaction. Either the whole import lands or none
// of it does.
func (r *ExpenseRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, expenses []*models.Expense) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	delQuery := squirrel.Delete("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := delQuery.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(expenses) > 0 {
		builder := squirrel.Insert("expenses").
			Columns(expenseColumns...).
			PlaceholderFormat(squirrel.Dollar)

		for _, e := range expenses {
			builder = builder.Values(e.ID, e.UserID, e.Description, e.Amount, e.Category, e.Date, e.CreatedAt, e.UpdatedAt)
		}

		sql, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// SumByCategory totals the owner's expenses whose category matches exactly.
func (r *ExpenseRepository) SumByCategory(ctx context.Context, userID uuid.UUID, category string) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID, "category": category}).
		PlaceholderFormat(squirrel.Dollar)

	return r.sumQuery(ctx, query)
}

// SumSince totals the owner's expenses dated on or after from. There is no
// upper bound, so future-dated rows count too.
func (r *ExpenseRepository) SumSince(ctx context.Context, userID uuid.UUID, from time.Time) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		PlaceholderFormat(squirrel.Dollar)

	return r.sumQuery(ctx, query)
}

// SumBetween totals the owner's expenses dated within [from, to] inclusive.
func (r *ExpenseRepository) SumBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		PlaceholderFormat(squirrel.Dollar)

	return r.sumQuery(ctx, query)
}

func (r *ExpenseRepository) sumQuery(ctx context.Context, query squirrel.SelectBuilder) (decimal.Decimal, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, err
	}

	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
