package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/budget-tracker/backend/internal/models"
)

const budgetColumns = `id, profile_id, category_type, budgeted_amount::text, month,
	 created_at, updated_at`

type BudgetRepository struct {
	db *pgxpool.Pool
}

// NewBudgetRepository создает репозиторий бюджетов.
func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func scanBudget(row rowScanner) (models.Budget, error) {
	var budget models.Budget
	var amount string

	err := row.Scan(
		&budget.ID, &budget.ProfileID, &budget.CategoryType, &amount, &budget.Month,
		&budget.CreatedAt, &budget.UpdatedAt,
	)
	if err != nil {
		return budget, err
	}

	budget.BudgetedAmount, err = parseAmount(amount)
	return budget, err
}

// Upsert создает бюджет типа категории на месяц или обновляет сумму
// существующего.
func (r *BudgetRepository) Upsert(ctx context.Context, budget models.Budget) (models.Budget, error) {
	return scanBudget(r.db.QueryRow(ctx,
		`INSERT INTO budgets (profile_id, category_type, budgeted_amount, month)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (profile_id, category_type, month)
		 DO UPDATE SET budgeted_amount = EXCLUDED.budgeted_amount, updated_at = NOW()
		 RETURNING `+budgetColumns,
		budget.ProfileID, string(budget.CategoryType), amountParam(budget.BudgetedAmount), budget.Month,
	))
}

// ListByMonth возвращает бюджеты профиля на месяц в формате YYYY-MM.
func (r *BudgetRepository) ListByMonth(ctx context.Context, profileID uuid.UUID, month string) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+budgetColumns+`
		 FROM budgets
		 WHERE profile_id = $1 AND month = $2
		 ORDER BY category_type`,
		profileID, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return budgets, nil
}
