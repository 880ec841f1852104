package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/libertysafety/liberty-server-go/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrMobile(ctx context.Context, email, mobile string) (*model.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.User, error)
	FindOfficerByStation(ctx context.Context, station string) (*model.User, error)
	FindOfficersByStationID(ctx context.Context, stationID string) ([]model.User, error)
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateStatus(ctx context.Context, id string, params model.UpdateUserStatusParams) (*model.User, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role model.Role) (int, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) UserRepository
}

type userRepo struct {
	db sqlxDB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) WithTx(tx *sqlx.Tx) UserRepository {
	return &userRepo{db: tx}
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE id = $1
	`, id)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE email = $1
	`, email)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindByEmailOrMobile(ctx context.Context, email, mobile string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE email = $1 OR mobile = $2
	`, email, mobile)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindAll(ctx context.Context, limit, offset int) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) FindOfficerByStation(ctx context.Context, station string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users
		WHERE role = 'police' AND police_station = $1 AND is_active = TRUE
		ORDER BY created_at ASC
		LIMIT 1
	`, station)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindOfficersByStationID(ctx context.Context, stationID string) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM users
		WHERE role = 'police' AND police_station = $1 AND is_active = TRUE
	`, stationID)
	return users, err
}

func (r *userRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO users
			(email, mobile, name, role, password_hash, is_verified, is_active,
			 state, city, badge_id, police_station, relation)
		VALUES ($1, $2, $3, $4, $5, TRUE, TRUE, $6, $7, $8, $9, $10)
		RETURNING *
	`, params.Email, params.Mobile, params.Name, params.Role, params.PasswordHash,
		params.State, params.City, params.BadgeID, params.PoliceStation, params.Relation)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1
	`, id, at)
	return err
}

func (r *userRepo) UpdateStatus(ctx context.Context, id string, params model.UpdateUserStatusParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		UPDATE users SET
			is_active = COALESCE($2, is_active),
			is_verified = COALESCE($3, is_verified),
			updated_at = $4
		WHERE id = $1
		RETURNING *
	`, id, params.IsActive, params.IsVerified, time.Now())
	return HandleNotFound(&user, err)
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}

func (r *userRepo) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE role = $1`, role)
	return count, err
}
