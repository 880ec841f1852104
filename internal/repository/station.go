package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/libertysafety/liberty-server-go/internal/model"
)

type PoliceStationRepository interface {
	FindByID(ctx context.Context, id string) (*model.PoliceStation, error)
	FindActive(ctx context.Context) ([]model.PoliceStation, error)
	FindActiveByCity(ctx context.Context, city string) (*model.PoliceStation, error)
	Create(ctx context.Context, station *model.PoliceStation) (*model.PoliceStation, error)
}

type stationRepo struct {
	db sqlxDB
}

func NewPoliceStationRepository(db *sqlx.DB) PoliceStationRepository {
	return &stationRepo{db: db}
}

func (r *stationRepo) FindByID(ctx context.Context, id string) (*model.PoliceStation, error) {
	var station model.PoliceStation
	err := r.db.GetContext(ctx, &station, `
		SELECT * FROM police_stations WHERE id = $1
	`, id)
	return HandleNotFound(&station, err)
}

func (r *stationRepo) FindActive(ctx context.Context) ([]model.PoliceStation, error) {
	var stations []model.PoliceStation
	err := r.db.SelectContext(ctx, &stations, `
		SELECT * FROM police_stations
		WHERE is_active = TRUE
		ORDER BY name ASC
	`)
	return stations, err
}

func (r *stationRepo) FindActiveByCity(ctx context.Context, city string) (*model.PoliceStation, error) {
	var station model.PoliceStation
	err := r.db.GetContext(ctx, &station, `
		SELECT * FROM police_stations
		WHERE is_active = TRUE AND LOWER(city) = LOWER($1)
		ORDER BY name ASC
		LIMIT 1
	`, city)
	return HandleNotFound(&station, err)
}

func (r *stationRepo) Create(ctx context.Context, station *model.PoliceStation) (*model.PoliceStation, error) {
	var created model.PoliceStation
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO police_stations
			(name, address, city, state, phone, email, latitude, longitude, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING *
	`, station.Name, station.Address, station.City, station.State,
		station.Phone, station.Email, station.Latitude, station.Longitude)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
