package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/budget-tracker/backend/internal/models"
)

type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository создает репозиторий категорий.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// defaultCategories — стартовый справочник, общий для всех пользователей.
var defaultCategories = []models.Category{
	{Name: "Grocery", Type: models.CategoryTypeNeeds},
	{Name: "Rent", Type: models.CategoryTypeNeeds},
	{Name: "Petrol", Type: models.CategoryTypeNeeds},
	{Name: "Monthly bills", Type: models.CategoryTypeNeeds},
	{Name: "Medical", Type: models.CategoryTypeNeeds},
	{Name: "Loan Repayment", Type: models.CategoryTypeNeeds},
	{Name: "Personal care", Type: models.CategoryTypeNeeds},
	{Name: "Salaries", Type: models.CategoryTypeNeeds},
	{Name: "Stationary", Type: models.CategoryTypeNeeds},
	{Name: "Bike Maintenance", Type: models.CategoryTypeNeeds},
	{Name: "Car Maintenance", Type: models.CategoryTypeNeeds},
	{Name: "Entertainment", Type: models.CategoryTypeWants},
	{Name: "Fashion and Clothing", Type: models.CategoryTypeWants},
	{Name: "Food And Restaurant", Type: models.CategoryTypeWants},
	{Name: "Gift", Type: models.CategoryTypeWants},
	{Name: "Sports and Hobby", Type: models.CategoryTypeWants},
	{Name: "Travel", Type: models.CategoryTypeWants},
	{Name: "Home Requirements", Type: models.CategoryTypeWants},
	{Name: "Investment/Savings", Type: models.CategoryTypeSavings},
	{Name: "Insurance", Type: models.CategoryTypeSavings},
	{Name: "Donation", Type: models.CategoryTypeSavings},
}

// EnsureDefaults досоздает отсутствующие категории справочника при старте.
func (r *CategoryRepository) EnsureDefaults(ctx context.Context) error {
	for _, category := range defaultCategories {
		_, err := r.db.Exec(ctx,
			`INSERT INTO categories (name, type, is_custom)
			 VALUES ($1, $2, FALSE)
			 ON CONFLICT (name) DO NOTHING`,
			category.Name, string(category.Type),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// Create добавляет пользовательскую категорию.
func (r *CategoryRepository) Create(ctx context.Context, name string, categoryType models.CategoryType) (models.Category, error) {
	var category models.Category
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name, type, is_custom)
		 VALUES ($1, $2, TRUE)
		 RETURNING id, name, type, is_custom, created_at`,
		name, string(categoryType),
	).Scan(&category.ID, &category.Name, &category.Type, &category.IsCustom, &category.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return category, ErrConflict
		}
		return category, err
	}

	return category, nil
}

// GetByID возвращает категорию по идентификатору.
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name, type, is_custom, created_at FROM categories WHERE id = $1`,
		id,
	).Scan(&category.ID, &category.Name, &category.Type, &category.IsCustom, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category, ErrNotFound
		}
		return category, err
	}

	return category, nil
}

// List возвращает все категории в алфавитном порядке.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, type, is_custom, created_at FROM categories ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Type, &category.IsCustom, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
