package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/smarttrav/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
// There is no update: expenses are immutable once logged.
type ExpenseRepo interface {
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// ListByItinerary returns an itinerary's expenses ordered by date.
	ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Expense, error)
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, itinerary_id, category, description, amount, date, created_at`

func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (itinerary_id, category, description, amount, date)
		VALUES (@itinerary_id, @category, @description, @amount, @date)
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"itinerary_id": e.ItineraryID,
		"category":     string(e.Category),
		"description":  e.Description,
		"amount":       e.Amount,
		"date":         e.Date,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", mapError(err))
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE itinerary_id = @itinerary_id
		ORDER BY date, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"itinerary_id": itineraryID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByItinerary: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByItinerary: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByItinerary: rows: %w", err)
	}
	return expenses, nil
}

func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e        domain.Expense
		id, itID pgtype.UUID
		category string
		date     pgtype.Date
	)
	err := s.Scan(&id, &itID, &category, &e.Description, &e.Amount, &date, &e.CreatedAt)
	if err != nil {
		return domain.Expense{}, err
	}
	e.ID = uuid.UUID(id.Bytes)
	e.ItineraryID = uuid.UUID(itID.Bytes)
	e.Category = domain.ExpenseCategory(category)
	e.Date = date.Time
	return e, nil
}
