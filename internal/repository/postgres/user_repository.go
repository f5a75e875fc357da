package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository реализация репозитория пользователей через PostgreSQL
type PostgresUserRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresUserRepository создает новый репозиторий пользователей
func NewPostgresUserRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, log: log}
}

const userColumns = `
	id, email, password_hash, first_name, last_name,
	subscription_tier, stripe_customer_id, email_verified, created_at, updated_at
`

// scanUser читает строку пользователя
func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.SubscriptionTier,
		&user.StripeCustomerID,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// GetByEmail возвращает пользователя по email без учета регистра
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.NewNotFoundError("user", email)
		}
		return domain.User{}, fmt.Errorf("failed to query user by email: %w", err)
	}
	return user, nil
}

// GetByID возвращает пользователя по идентификатору
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.NewNotFoundError("user", id.String())
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// Create сохраняет нового пользователя. Уникальность email обеспечивается
// индексом, конфликт возвращается как ошибка дубликата.
func (r *PostgresUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name,
			subscription_tier, stripe_customer_id, email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.SubscriptionTier, user.StripeCustomerID, user.EmailVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.User{}, domain.NewDuplicateError("user", "email", user.Email)
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	r.log.Debugw("User created", "userID", user.ID, "email", user.Email)
	return user, nil
}

// Update обновляет изменяемые поля пользователя и штамп updated_at
func (r *PostgresUserRepository) Update(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, subscription_tier = $4,
			stripe_customer_id = $5, email_verified = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.SubscriptionTier,
		user.StripeCustomerID, user.EmailVerified,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("user", user.ID.String())
	}
	return nil
}

// CountPlants возвращает число растений пользователя
func (r *PostgresUserRepository) CountPlants(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_plants WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count user plants: %w", err)
	}
	return count, nil
}
