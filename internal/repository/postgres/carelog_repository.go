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

// PostgresCareLogRepository реализация репозитория записей ухода через
// PostgreSQL. Владение проверяется через родительское растение.
type PostgresCareLogRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresCareLogRepository создает новый репозиторий записей ухода
func NewPostgresCareLogRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresCareLogRepository {
	return &PostgresCareLogRepository{db: db, log: log}
}

const careLogColumns = `l.id, l.user_plant_id, l.care_type, l.date_time, l.amount, l.notes, l.created_at`

// scanCareLog читает строку записи ухода
func scanCareLog(row pgx.Row) (domain.PlantCareLog, error) {
	var l domain.PlantCareLog
	err := row.Scan(&l.ID, &l.UserPlantID, &l.CareType, &l.DateTime, &l.Amount, &l.Notes, &l.CreatedAt)
	return l, err
}

// ListByPlant возвращает записи ухода за растением по убыванию времени события.
// Принадлежность растения вызывающему проверяется на уровне сервиса.
func (r *PostgresCareLogRepository) ListByPlant(ctx context.Context, plantID uuid.UUID) ([]domain.PlantCareLog, error) {
	query := `SELECT ` + careLogColumns + ` FROM plant_care_logs l WHERE l.user_plant_id = $1 ORDER BY l.date_time DESC`

	rows, err := r.db.Query(ctx, query, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query care logs: %w", err)
	}
	defer rows.Close()

	logs := make([]domain.PlantCareLog, 0)
	for rows.Next() {
		l, err := scanCareLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan care log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// GetByIDForUser возвращает запись ухода, если ее растение принадлежит пользователю
func (r *PostgresCareLogRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (domain.PlantCareLog, error) {
	query := `
		SELECT ` + careLogColumns + `
		FROM plant_care_logs l
		JOIN user_plants p ON p.id = l.user_plant_id
		WHERE l.id = $1 AND p.user_id = $2
	`

	l, err := scanCareLog(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PlantCareLog{}, domain.NewNotFoundError("care log", id.String())
		}
		return domain.PlantCareLog{}, fmt.Errorf("failed to query care log: %w", err)
	}
	return l, nil
}

// Create сохраняет новую запись ухода
func (r *PostgresCareLogRepository) Create(ctx context.Context, l domain.PlantCareLog) (domain.PlantCareLog, error) {
	query := `
		INSERT INTO plant_care_logs (id, user_plant_id, care_type, date_time, amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		l.ID, l.UserPlantID, l.CareType, l.DateTime, l.Amount, l.Notes,
	).Scan(&l.CreatedAt)
	if err != nil {
		return domain.PlantCareLog{}, fmt.Errorf("failed to insert care log: %w", err)
	}

	r.log.Debugw("Care log created", "logID", l.ID, "plantID", l.UserPlantID)
	return l, nil
}

// Delete удаляет запись ухода, если ее растение принадлежит пользователю
func (r *PostgresCareLogRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		DELETE FROM plant_care_logs l
		USING user_plants p
		WHERE l.id = $1 AND p.id = l.user_plant_id AND p.user_id = $2
	`

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete care log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("care log", id.String())
	}

	r.log.Debugw("Care log deleted", "logID", id)
	return nil
}

// Statistics возвращает сводную статистику ухода за растением
func (r *PostgresCareLogRepository) Statistics(ctx context.Context, plantID uuid.UUID) (domain.CareStatistics, error) {
	query := `
		SELECT care_type, COUNT(*), MIN(date_time), MAX(date_time)
		FROM plant_care_logs
		WHERE user_plant_id = $1
		GROUP BY care_type
		ORDER BY care_type
	`

	rows, err := r.db.Query(ctx, query, plantID)
	if err != nil {
		return domain.CareStatistics{}, fmt.Errorf("failed to query care statistics: %w", err)
	}
	defer rows.Close()

	stats := domain.CareStatistics{CareTypes: make([]domain.CareTypeStatistics, 0)}
	for rows.Next() {
		var s domain.CareTypeStatistics
		if err := rows.Scan(&s.CareType, &s.Count, &s.FirstEntry, &s.LastEntry); err != nil {
			return domain.CareStatistics{}, fmt.Errorf("failed to scan care statistics: %w", err)
		}
		stats.CareTypes = append(stats.CareTypes, s)
		stats.TotalLogs += s.Count
	}
	return stats, rows.Err()
}
