package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/integration/openweather"
	"github.com/botanicbuddy/plantcare-service/internal/integration/trefle"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
)

func testLogger() *logger.Logger {
	return logger.New(logger.ERROR)
}

type fakeUserRepo struct {
	users      map[uuid.UUID]domain.User
	plantCount int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.NewNotFoundError("user", email)
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.User{}, domain.NewDuplicateError("user", "email", user.Email)
		}
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.NewNotFoundError("user", user.ID.String())
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) CountPlants(_ context.Context, _ uuid.UUID) (int, error) {
	return r.plantCount, nil
}

type fakeAddressRepo struct {
	addresses   map[uuid.UUID]domain.Address
	plantsUsing map[uuid.UUID]int
	deleted     []uuid.UUID
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{
		addresses:   make(map[uuid.UUID]domain.Address),
		plantsUsing: make(map[uuid.UUID]int),
	}
}

func (r *fakeAddressRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Address, error) {
	var out []domain.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAddressRepo) GetByIDForUser(_ context.Context, id, userID uuid.UUID) (domain.Address, error) {
	a, ok := r.addresses[id]
	if !ok || a.UserID != userID {
		return domain.Address{}, domain.NewNotFoundError("address", id.String())
	}
	return a, nil
}

func (r *fakeAddressRepo) ExistsForUser(_ context.Context, id, userID uuid.UUID) (bool, error) {
	a, ok := r.addresses[id]
	return ok && a.UserID == userID, nil
}

func (r *fakeAddressRepo) Create(_ context.Context, a domain.Address) (domain.Address, error) {
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.addresses[a.ID] = a
	return a, nil
}

func (r *fakeAddressRepo) Update(_ context.Context, a domain.Address) error {
	existing, ok := r.addresses[a.ID]
	if !ok || existing.UserID != a.UserID {
		return domain.NewNotFoundError("address", a.ID.String())
	}
	r.addresses[a.ID] = a
	return nil
}

func (r *fakeAddressRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	a, ok := r.addresses[id]
	if !ok || a.UserID != userID {
		return domain.NewNotFoundError("address", id.String())
	}
	delete(r.addresses, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeAddressRepo) CountPlantsUsingAddress(_ context.Context, addressID uuid.UUID) (int, error) {
	return r.plantsUsing[addressID], nil
}

type fakePlantRepo struct {
	plants map[uuid.UUID]domain.UserPlant
}

func newFakePlantRepo() *fakePlantRepo {
	return &fakePlantRepo{plants: make(map[uuid.UUID]domain.UserPlant)}
}

func (r *fakePlantRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.UserPlant, error) {
	var out []domain.UserPlant
	for _, p := range r.plants {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlantRepo) GetByIDForUser(_ context.Context, id, userID uuid.UUID) (domain.UserPlant, error) {
	p, ok := r.plants[id]
	if !ok || p.UserID != userID {
		return domain.UserPlant{}, domain.NewNotFoundError("user plant", id.String())
	}
	return p, nil
}

func (r *fakePlantRepo) ExistsForUser(_ context.Context, id, userID uuid.UUID) (bool, error) {
	p, ok := r.plants[id]
	return ok && p.UserID == userID, nil
}

func (r *fakePlantRepo) Create(_ context.Context, p domain.UserPlant) (domain.UserPlant, error) {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	r.plants[p.ID] = p
	return p, nil
}

func (r *fakePlantRepo) Update(_ context.Context, p domain.UserPlant) error {
	existing, ok := r.plants[p.ID]
	if !ok || existing.UserID != p.UserID {
		return domain.NewNotFoundError("user plant", p.ID.String())
	}
	r.plants[p.ID] = p
	return nil
}

func (r *fakePlantRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	p, ok := r.plants[id]
	if !ok || p.UserID != userID {
		return domain.NewNotFoundError("user plant", id.String())
	}
	delete(r.plants, id)
	return nil
}

type fakeCareLogRepo struct {
	logs map[uuid.UUID]domain.PlantCareLog
}

func newFakeCareLogRepo() *fakeCareLogRepo {
	return &fakeCareLogRepo{logs: make(map[uuid.UUID]domain.PlantCareLog)}
}

func (r *fakeCareLogRepo) ListByPlant(_ context.Context, plantID uuid.UUID) ([]domain.PlantCareLog, error) {
	var out []domain.PlantCareLog
	for _, l := range r.logs {
		if l.UserPlantID == plantID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeCareLogRepo) GetByIDForUser(_ context.Context, id, _ uuid.UUID) (domain.PlantCareLog, error) {
	l, ok := r.logs[id]
	if !ok {
		return domain.PlantCareLog{}, domain.NewNotFoundError("care log", id.String())
	}
	return l, nil
}

func (r *fakeCareLogRepo) Create(_ context.Context, l domain.PlantCareLog) (domain.PlantCareLog, error) {
	l.CreatedAt = time.Now().UTC()
	r.logs[l.ID] = l
	return l, nil
}

func (r *fakeCareLogRepo) Delete(_ context.Context, id, _ uuid.UUID) error {
	if _, ok := r.logs[id]; !ok {
		return domain.NewNotFoundError("care log", id.String())
	}
	delete(r.logs, id)
	return nil
}

func (r *fakeCareLogRepo) Statistics(_ context.Context, plantID uuid.UUID) (domain.CareStatistics, error) {
	byType := make(map[string]*domain.CareTypeStatistics)
	stats := domain.CareStatistics{}
	for _, l := range r.logs {
		if l.UserPlantID != plantID {
			continue
		}
		stats.TotalLogs++
		ts, ok := byType[l.CareType]
		if !ok {
			byType[l.CareType] = &domain.CareTypeStatistics{
				CareType:   l.CareType,
				Count:      1,
				FirstEntry: l.DateTime,
				LastEntry:  l.DateTime,
			}
			continue
		}
		ts.Count++
		if l.DateTime.Before(ts.FirstEntry) {
			ts.FirstEntry = l.DateTime
		}
		if l.DateTime.After(ts.LastEntry) {
			ts.LastEntry = l.DateTime
		}
	}
	for _, ts := range byType {
		stats.CareTypes = append(stats.CareTypes, *ts)
	}
	return stats, nil
}

type fakeWeatherRepo struct {
	rows        map[string]domain.WeatherData
	insertCalls int
}

func newFakeWeatherRepo() *fakeWeatherRepo {
	return &fakeWeatherRepo{rows: make(map[string]domain.WeatherData)}
}

func weatherKey(addressID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s_%s", addressID, date.Format("2006-01-02"))
}

func (r *fakeWeatherRepo) GetByAddressAndDate(_ context.Context, addressID uuid.UUID, date time.Time) (domain.WeatherData, error) {
	row, ok := r.rows[weatherKey(addressID, date)]
	if !ok {
		return domain.WeatherData{}, domain.NewNotFoundError("weather data", addressID.String())
	}
	return row, nil
}

func (r *fakeWeatherRepo) Insert(_ context.Context, w domain.WeatherData) (domain.WeatherData, error) {
	r.insertCalls++
	key := weatherKey(w.AddressID, w.Date)
	if existing, ok := r.rows[key]; ok {
		return existing, nil
	}
	w.CreatedAt = time.Now().UTC()
	r.rows[key] = w
	return w, nil
}

func (r *fakeWeatherRepo) ListHistory(_ context.Context, addressID uuid.UUID, since time.Time) ([]domain.WeatherData, error) {
	var out []domain.WeatherData
	for _, row := range r.rows {
		if row.AddressID == addressID && !row.Date.Before(since) {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeTrefleAPI struct {
	calls  int
	err    error
	search trefle.SearchResponse
	detail trefle.DetailResponse
}

func (f *fakeTrefleAPI) ListPlants(_ context.Context, _ int) (trefle.SearchResponse, error) {
	f.calls++
	return f.search, f.err
}

func (f *fakeTrefleAPI) SearchPlants(_ context.Context, _ string, _ int) (trefle.SearchResponse, error) {
	f.calls++
	return f.search, f.err
}

func (f *fakeTrefleAPI) GetPlantByID(_ context.Context, _ int) (trefle.DetailResponse, error) {
	f.calls++
	return f.detail, f.err
}

func (f *fakeTrefleAPI) GetPlantsByCommonName(_ context.Context, _ string, _ int) (trefle.SearchResponse, error) {
	f.calls++
	return f.search, f.err
}

type fakeWeatherAPI struct {
	calls   int
	err     error
	current openweather.CurrentWeather

	// onCall выполняется во время запроса к провайдеру
	onCall func()
}

func (f *fakeWeatherAPI) GetCurrent(_ context.Context, _, _ float64) (openweather.CurrentWeather, error) {
	f.calls++
	if f.onCall != nil {
		f.onCall()
	}
	return f.current, f.err
}

type recordingProducer struct {
	created int
	deleted int
	logged  int
}

func (p *recordingProducer) PublishPlantCreated(_ context.Context, _ domain.UserPlant) error {
	p.created++
	return nil
}

func (p *recordingProducer) PublishPlantDeleted(_ context.Context, _, _ string) error {
	p.deleted++
	return nil
}

func (p *recordingProducer) PublishCareLogged(_ context.Context, _ domain.PlantCareLog, _ string) error {
	p.logged++
	return nil
}

func (p *recordingProducer) Close() error { return nil }
