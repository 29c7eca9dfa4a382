package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/budget-tracker/backend/internal/models"
)

const transactionColumns = `id, profile_id, amount::text, type, category_id,
	 person_name, payment_mode, bank_app, description, date, created_at`

type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository создает репозиторий транзакций.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var tx models.Transaction
	var amount string

	err := row.Scan(
		&tx.ID, &tx.ProfileID, &amount, &tx.Type, &tx.CategoryID,
		&tx.PersonName, &tx.PaymentMode, &tx.BankApp, &tx.Description,
		&tx.Date, &tx.CreatedAt,
	)
	if err != nil {
		return tx, err
	}

	tx.Amount, err = parseAmount(amount)
	return tx, err
}

// Create добавляет транзакцию профиля.
func (r *TransactionRepository) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	return scanTransaction(r.db.QueryRow(ctx,
		`INSERT INTO transactions (profile_id, amount, type, category_id,
		                           person_name, payment_mode, bank_app, description, date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+transactionColumns,
		tx.ProfileID, amountParam(tx.Amount), string(tx.Type), tx.CategoryID,
		tx.PersonName, tx.PaymentMode, tx.BankApp, tx.Description, tx.Date,
	))
}

// GetByID возвращает транзакцию профиля по идентификатору.
func (r *TransactionRepository) GetByID(ctx context.Context, profileID, id uuid.UUID) (models.Transaction, error) {
	tx, err := scanTransaction(r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tx, ErrNotFound
		}
		return tx, err
	}

	return tx, nil
}

// ListByProfile возвращает транзакции профиля, свежие даты первыми.
func (r *TransactionRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE profile_id = $1
		 ORDER BY date DESC, created_at, id`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// Update изменяет транзакцию профиля.
func (r *TransactionRepository) Update(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	updated, err := scanTransaction(r.db.QueryRow(ctx,
		`UPDATE transactions
		 SET amount = $3, type = $4, category_id = $5, person_name = $6,
		     payment_mode = $7, bank_app = $8, description = $9, date = $10
		 WHERE id = $1 AND profile_id = $2
		 RETURNING `+transactionColumns,
		tx.ID, tx.ProfileID, amountParam(tx.Amount), string(tx.Type), tx.CategoryID,
		tx.PersonName, tx.PaymentMode, tx.BankApp, tx.Description, tx.Date,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, ErrNotFound
		}
		return updated, err
	}

	return updated, nil
}

// Delete удаляет транзакцию профиля.
func (r *TransactionRepository) Delete(ctx context.Context, profileID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM transactions WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
