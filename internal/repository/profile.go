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

type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository создает репозиторий профилей.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var profile models.Profile
	var monthlyIncome *string

	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.FirstName, &profile.LastName,
		&profile.Currency, &profile.BankAccount, &profile.Address, &profile.Country,
		&profile.AccountType, &monthlyIncome, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return profile, err
	}

	profile.MonthlyIncome, err = parseAmountPtr(monthlyIncome)
	return profile, err
}

const profileColumns = `id, user_id, first_name, last_name, currency,
	 bank_account, address, country, account_type, monthly_income::text,
	 created_at, updated_at`

// Create создает профиль владельца аккаунта; второй профиль — конфликт.
func (r *ProfileRepository) Create(ctx context.Context, profile models.Profile) (models.Profile, error) {
	created, err := scanProfile(r.db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, first_name, last_name, currency,
		                       bank_account, address, country, account_type, monthly_income)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+profileColumns,
		profile.UserID, profile.FirstName, profile.LastName, profile.Currency,
		profile.BankAccount, profile.Address, profile.Country, string(profile.AccountType),
		amountParamPtr(profile.MonthlyIncome),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return created, ErrConflict
		}
		return created, err
	}

	return created, nil
}

// GetForUser возвращает профиль семейной группы пользователя: для члена семьи
// это профиль мастера.
func (r *ProfileRepository) GetForUser(ctx context.Context, userID uuid.UUID) (models.Profile, error) {
	profile, err := scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 WHERE user_id = (SELECT COALESCE(master_user_id, id) FROM users WHERE id = $1)`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile, ErrNotFound
		}
		return profile, err
	}

	return profile, nil
}

// Update обновляет профиль семейной группы пользователя.
func (r *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, profile models.Profile) (models.Profile, error) {
	updated, err := scanProfile(r.db.QueryRow(ctx,
		`UPDATE profiles
		 SET first_name = $2, last_name = $3, currency = $4, bank_account = $5,
		     address = $6, country = $7, account_type = $8, monthly_income = $9,
		     updated_at = NOW()
		 WHERE user_id = (SELECT COALESCE(master_user_id, id) FROM users WHERE id = $1)
		 RETURNING `+profileColumns,
		userID, profile.FirstName, profile.LastName, profile.Currency,
		profile.BankAccount, profile.Address, profile.Country, string(profile.AccountType),
		amountParamPtr(profile.MonthlyIncome),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, ErrNotFound
		}
		return updated, err
	}

	return updated, nil
}
