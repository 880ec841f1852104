package model

import (
	"time"
)

type User struct {
	ID            string     `db:"id" json:"id"`
	Email         string     `db:"email" json:"email"`
	Mobile        string     `db:"mobile" json:"mobile"`
	Name          string     `db:"name" json:"name"`
	Role          Role       `db:"role" json:"role"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	IsVerified    bool       `db:"is_verified" json:"isVerified"`
	IsActive      bool       `db:"is_active" json:"isActive"`
	State         *string    `db:"state" json:"state,omitempty"`
	City          *string    `db:"city" json:"city,omitempty"`
	BadgeID       *string    `db:"badge_id" json:"badgeId,omitempty"`
	PoliceStation *string    `db:"police_station" json:"policeStation,omitempty"`
	Relation      *string    `db:"relation" json:"relation,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
	LastLogin     *time.Time `db:"last_login" json:"lastLogin,omitempty"`
}

type CreateUserParams struct {
	Email         string
	Mobile        string
	Name          string
	Role          Role
	PasswordHash  string
	State         *string
	City          *string
	BadgeID       *string
	PoliceStation *string
	Relation      *string
}

// UpdateUserStatusParams carries the only mutable account flags. Role is
// immutable after creation, so no update path carries it.
type UpdateUserStatusParams struct {
	IsActive   *bool
	IsVerified *bool
}
