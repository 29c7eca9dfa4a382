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

const userColumns = `id, email, password_hash, first_name, last_name,
	 is_family_member, must_change_password, family_relation, master_user_id,
	 created_at, updated_at`

type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var relation *string

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.IsFamilyMember, &user.MustChangePassword, &relation, &user.MasterUserID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return user, err
	}

	if relation != nil {
		value := models.FamilyRelation(*relation)
		user.FamilyRelation = &value
	}

	return user, nil
}

// Create создает мастер-пользователя при регистрации.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash, firstName, lastName string) (models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		email, passwordHash, firstName, lastName,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user, ErrConflict
		}
		return user, err
	}

	return user, nil
}

// CreateFamilyMember создает подчиненный аккаунт члена семьи с обязательной
// сменой пароля при первом входе.
func (r *UserRepository) CreateFamilyMember(ctx context.Context, masterID uuid.UUID, email, passwordHash, firstName, lastName string, relation models.FamilyRelation) (models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name,
		                    is_family_member, must_change_password, family_relation, master_user_id)
		 VALUES ($1, $2, $3, $4, TRUE, TRUE, $5, $6)
		 RETURNING `+userColumns,
		email, passwordHash, firstName, lastName, string(relation), masterID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user, ErrConflict
		}
		return user, err
	}

	return user, nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, ErrNotFound
		}
		return user, err
	}

	return user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, ErrNotFound
		}
		return user, err
	}

	return user, nil
}

// UpdatePassword меняет хэш пароля и снимает требование смены пароля.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $2, must_change_password = FALSE, updated_at = NOW()
		 WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListFamilyGroup возвращает мастера и всех членов его семьи.
func (r *UserRepository) ListFamilyGroup(ctx context.Context, masterID uuid.UUID) ([]models.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE id = $1 OR master_user_id = $1
		 ORDER BY created_at`,
		masterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// HasFamilyMembers проверяет, есть ли у мастера подчиненные аккаунты.
func (r *UserRepository) HasFamilyMembers(ctx context.Context, masterID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE master_user_id = $1)`,
		masterID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
