package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAddressRepository реализация репозитория адресов через PostgreSQL.
// Каждая операция над одной записью фильтруется и по id, и по владельцу:
// чужая запись неотличима от отсутствующей.
type PostgresAddressRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresAddressRepository создает новый репозиторий адресов
func NewPostgresAddressRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresAddressRepository {
	return &PostgresAddressRepository{db: db, log: log}
}

const addressColumns = `
	id, user_id, address_line1, address_line2, city, state, country,
	postal_code, latitude, longitude, timezone, created_at, updated_at
`

// scanAddress читает строку адреса
func scanAddress(row pgx.Row) (domain.Address, error) {
	var a domain.Address
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.AddressLine1,
		&a.AddressLine2,
		&a.City,
		&a.State,
		&a.Country,
		&a.PostalCode,
		&a.Latitude,
		&a.Longitude,
		&a.Timezone,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// ListByUser возвращает адреса пользователя, новые первыми
func (r *PostgresAddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

// GetByIDForUser возвращает адрес пользователя по идентификатору
func (r *PostgresAddressRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND user_id = $2`

	a, err := scanAddress(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Address{}, domain.NewNotFoundError("address", id.String())
		}
		return domain.Address{}, fmt.Errorf("failed to query address: %w", err)
	}
	return a, nil
}

// ExistsForUser проверяет принадлежность адреса пользователю
func (r *PostgresAddressRepository) ExistsForUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, query, id, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check address ownership: %w", err)
	}
	return exists, nil
}

// Create сохраняет новый адрес
func (r *PostgresAddressRepository) Create(ctx context.Context, a domain.Address) (domain.Address, error) {
	query := `
		INSERT INTO addresses (id, user_id, address_line1, address_line2, city,
			state, country, postal_code, latitude, longitude, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.ID, a.UserID, a.AddressLine1, a.AddressLine2, a.City,
		a.State, a.Country, a.PostalCode, a.Latitude, a.Longitude, a.Timezone,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Address{}, fmt.Errorf("failed to insert address: %w", err)
	}

	r.log.Debugw("Address created", "addressID", a.ID, "userID", a.UserID)
	return a, nil
}

// Update обновляет адрес пользователя и штамп updated_at
func (r *PostgresAddressRepository) Update(ctx context.Context, a domain.Address) error {
	query := `
		UPDATE addresses
		SET address_line1 = $3, address_line2 = $4, city = $5, state = $6,
			country = $7, postal_code = $8, latitude = $9, longitude = $10,
			timezone = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query,
		a.ID, a.UserID, a.AddressLine1, a.AddressLine2, a.City,
		a.State, a.Country, a.PostalCode, a.Latitude, a.Longitude, a.Timezone,
	)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("address", a.ID.String())
	}
	return nil
}

// Delete удаляет адрес пользователя
func (r *PostgresAddressRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("address", id.String())
	}

	r.log.Debugw("Address deleted", "addressID", id)
	return nil
}

// CountPlantsUsingAddress возвращает число растений, ссылающихся на адрес,
// независимо от владельца растения
func (r *PostgresAddressRepository) CountPlantsUsingAddress(ctx context.Context, addressID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_plants WHERE address_id = $1`, addressID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plants using address: %w", err)
	}
	return count, nil
}
