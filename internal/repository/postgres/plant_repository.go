package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPlantRepository реализация репозитория растений через PostgreSQL
type PostgresPlantRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresPlantRepository создает новый репозиторий растений
func NewPostgresPlantRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresPlantRepository {
	return &PostgresPlantRepository{db: db, log: log}
}

// plantWithAddressQuery выбирает растение вместе с опциональным адресом
const plantWithAddressQuery = `
	SELECT p.id, p.user_id, p.address_id, p.trefle_plant_id, p.common_name,
		p.scientific_name, p.nickname, p.date_planted, p.location, p.notes,
		p.photo_url, p.created_at, p.updated_at,
		a.id, a.user_id, a.address_line1, a.address_line2, a.city, a.state,
		a.country, a.postal_code, a.latitude, a.longitude, a.timezone,
		a.created_at, a.updated_at
	FROM user_plants p
	LEFT JOIN addresses a ON a.id = p.address_id
`

// scanPlantWithAddress читает строку растения с вложенным адресом
func scanPlantWithAddress(row pgx.Row) (domain.UserPlant, error) {
	var p domain.UserPlant
	var (
		addrID         *uuid.UUID
		addrUserID     *uuid.UUID
		addrLine1      *string
		addrLine2      *string
		addrCity       *string
		addrState      *string
		addrCountry    *string
		addrPostalCode *string
		addrLatitude   *float64
		addrLongitude  *float64
		addrTimezone   *string
		addrCreatedAt  *time.Time
		addrUpdatedAt  *time.Time
	)

	err := row.Scan(
		&p.ID, &p.UserID, &p.AddressID, &p.TreflePlantID, &p.CommonName,
		&p.ScientificName, &p.Nickname, &p.DatePlanted, &p.Location, &p.Notes,
		&p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
		&addrID, &addrUserID, &addrLine1, &addrLine2, &addrCity, &addrState,
		&addrCountry, &addrPostalCode, &addrLatitude, &addrLongitude, &addrTimezone,
		&addrCreatedAt, &addrUpdatedAt,
	)
	if err != nil {
		return domain.UserPlant{}, err
	}

	if addrID != nil {
		p.Address = &domain.Address{
			ID:           *addrID,
			UserID:       *addrUserID,
			AddressLine1: *addrLine1,
			AddressLine2: *addrLine2,
			City:         *addrCity,
			State:        *addrState,
			Country:      *addrCountry,
			PostalCode:   *addrPostalCode,
			Latitude:     addrLatitude,
			Longitude:    addrLongitude,
			Timezone:     *addrTimezone,
			CreatedAt:    *addrCreatedAt,
			UpdatedAt:    *addrUpdatedAt,
		}
	}
	return p, nil
}

// ListByUser возвращает растения пользователя с адресами, новые первыми
func (r *PostgresPlantRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserPlant, error) {
	query := plantWithAddressQuery + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user plants: %w", err)
	}
	defer rows.Close()

	plants := make([]domain.UserPlant, 0)
	for rows.Next() {
		p, err := scanPlantWithAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user plant: %w", err)
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

// GetByIDForUser возвращает растение пользователя по идентификатору
func (r *PostgresPlantRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (domain.UserPlant, error) {
	query := plantWithAddressQuery + ` WHERE p.id = $1 AND p.user_id = $2`

	p, err := scanPlantWithAddress(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserPlant{}, domain.NewNotFoundError("plant", id.String())
		}
		return domain.UserPlant{}, fmt.Errorf("failed to query user plant: %w", err)
	}
	return p, nil
}

// ExistsForUser проверяет принадлежность растения пользователю
func (r *PostgresPlantRepository) ExistsForUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM user_plants WHERE id = $1 AND user_id = $2)`
	if err := r.db.QueryRow(ctx, query, id, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check plant ownership: %w", err)
	}
	return exists, nil
}

// Create сохраняет новое растение
func (r *PostgresPlantRepository) Create(ctx context.Context, p domain.UserPlant) (domain.UserPlant, error) {
	query := `
		INSERT INTO user_plants (id, user_id, address_id, trefle_plant_id,
			common_name, scientific_name, nickname, date_planted, location,
			notes, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.UserID, p.AddressID, p.TreflePlantID,
		p.CommonName, p.ScientificName, p.Nickname, p.DatePlanted, p.Location,
		p.Notes, p.PhotoURL,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.UserPlant{}, fmt.Errorf("failed to insert user plant: %w", err)
	}

	r.log.Debugw("Plant created", "plantID", p.ID, "userID", p.UserID)
	return p, nil
}

// Update обновляет растение пользователя и штамп updated_at
func (r *PostgresPlantRepository) Update(ctx context.Context, p domain.UserPlant) error {
	query := `
		UPDATE user_plants
		SET address_id = $3, nickname = $4, date_planted = $5, location = $6,
			notes = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.AddressID, p.Nickname, p.DatePlanted, p.Location, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update user plant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("plant", p.ID.String())
	}
	return nil
}

// Delete удаляет растение пользователя
func (r *PostgresPlantRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_plants WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user plant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("plant", id.String())
	}

	r.log.Debugw("Plant deleted", "plantID", id)
	return nil
}
