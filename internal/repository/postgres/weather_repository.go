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

// PostgresWeatherRepository реализация репозитория погодных данных через
// PostgreSQL. Одна строка на пару (адрес, календарный день).
type PostgresWeatherRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresWeatherRepository создает новый репозиторий погодных данных
func NewPostgresWeatherRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresWeatherRepository {
	return &PostgresWeatherRepository{db: db, log: log}
}

const weatherColumns = `id, address_id, date, temperature, humidity, precipitation, conditions, created_at`

// scanWeather читает строку погодных данных
func scanWeather(row pgx.Row) (domain.WeatherData, error) {
	var w domain.WeatherData
	err := row.Scan(&w.ID, &w.AddressID, &w.Date, &w.Temperature, &w.Humidity, &w.Precipitation, &w.Conditions, &w.CreatedAt)
	return w, err
}

// GetByAddressAndDate возвращает дневную запись для адреса
func (r *PostgresWeatherRepository) GetByAddressAndDate(ctx context.Context, addressID uuid.UUID, date time.Time) (domain.WeatherData, error) {
	query := `SELECT ` + weatherColumns + ` FROM weather_data WHERE address_id = $1 AND date = $2`

	w, err := scanWeather(r.db.QueryRow(ctx, query, addressID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.WeatherData{}, domain.NewNotFoundError("weather data", addressID.String())
		}
		return domain.WeatherData{}, fmt.Errorf("failed to query weather data: %w", err)
	}
	return w, nil
}

// Insert сохраняет дневную запись. Уникальный индекс (address_id, date) —
// страховка от параллельных первых запросов: второй писатель молча
// игнорируется, запись затем перечитывается.
func (r *PostgresWeatherRepository) Insert(ctx context.Context, w domain.WeatherData) (domain.WeatherData, error) {
	query := `
		INSERT INTO weather_data (id, address_id, date, temperature, humidity, precipitation, conditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (address_id, date) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query,
		w.ID, w.AddressID, w.Date, w.Temperature, w.Humidity, w.Precipitation, w.Conditions,
	)
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("failed to insert weather data: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.log.Debugw("Weather row already present, reusing", "addressID", w.AddressID, "date", w.Date)
	}

	// Единственный источник истины — строка в базе, в том числе когда
	// запись вставил параллельный запрос.
	return r.GetByAddressAndDate(ctx, w.AddressID, w.Date)
}

// ListHistory возвращает записи адреса начиная с даты, новые первыми
func (r *PostgresWeatherRepository) ListHistory(ctx context.Context, addressID uuid.UUID, since time.Time) ([]domain.WeatherData, error) {
	query := `SELECT ` + weatherColumns + ` FROM weather_data WHERE address_id = $1 AND date >= $2 ORDER BY date DESC`

	rows, err := r.db.Query(ctx, query, addressID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather history: %w", err)
	}
	defer rows.Close()

	history := make([]domain.WeatherData, 0)
	for rows.Next() {
		w, err := scanWeather(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weather data: %w", err)
		}
		history = append(history, w)
	}
	return history, rows.Err()
}
