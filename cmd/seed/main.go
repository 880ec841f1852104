package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/libertysafety/liberty-server-go/internal/auth"
	"github.com/libertysafety/liberty-server-go/internal/config"
	"github.com/libertysafety/liberty-server-go/internal/database"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email          TEXT NOT NULL UNIQUE,
	mobile         TEXT NOT NULL UNIQUE,
	name           TEXT NOT NULL,
	role           TEXT NOT NULL,
	password_hash  TEXT NOT NULL,
	is_verified    BOOLEAN NOT NULL DEFAULT FALSE,
	is_active      BOOLEAN NOT NULL DEFAULT TRUE,
	state          TEXT,
	city           TEXT,
	badge_id       TEXT,
	police_station TEXT,
	relation       TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	last_login     TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_users_role ON users (role);

CREATE TABLE IF NOT EXISTS police_stations (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name       TEXT NOT NULL,
	address    TEXT NOT NULL,
	city       TEXT NOT NULL,
	state      TEXT NOT NULL,
	phone      TEXT,
	email      TEXT,
	latitude   DOUBLE PRECISION,
	longitude  DOUBLE PRECISION,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_police_stations_city ON police_stations (LOWER(city));

CREATE TABLE IF NOT EXISTS incidents (
	id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	case_number         TEXT NOT NULL UNIQUE,
	reporter_id         UUID NOT NULL REFERENCES users (id),
	assigned_officer_id UUID REFERENCES users (id),
	police_station_id   UUID REFERENCES police_stations (id),
	title               TEXT NOT NULL,
	description         TEXT NOT NULL,
	incident_type       TEXT,
	vehicle_number      TEXT,
	location_lat        DOUBLE PRECISION,
	location_lng        DOUBLE PRECISION,
	location_address    TEXT,
	status              TEXT NOT NULL DEFAULT 'pending',
	priority            INTEGER NOT NULL DEFAULT 2,
	notify_parent       BOOLEAN NOT NULL DEFAULT FALSE,
	evidence_urls       TEXT[] NOT NULL DEFAULT '{}',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	resolved_at         TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_incidents_reporter ON incidents (reporter_id);
CREATE INDEX IF NOT EXISTS idx_incidents_status ON incidents (status);
CREATE INDEX IF NOT EXISTS idx_incidents_created_at ON incidents (created_at DESC);

CREATE TABLE IF NOT EXISTS chat_rooms (
	id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	incident_id       UUID REFERENCES incidents (id),
	user_id           UUID NOT NULL REFERENCES users (id),
	officer_id        UUID REFERENCES users (id),
	police_station_id UUID REFERENCES police_stations (id),
	is_active         BOOLEAN NOT NULL DEFAULT TRUE,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_chat_rooms_user ON chat_rooms (user_id);
CREATE INDEX IF NOT EXISTS idx_chat_rooms_officer ON chat_rooms (officer_id);

CREATE TABLE IF NOT EXISTS messages (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	chat_room_id UUID NOT NULL REFERENCES chat_rooms (id),
	sender_id    UUID NOT NULL REFERENCES users (id),
	content      TEXT,
	message_type TEXT NOT NULL DEFAULT 'text',
	file_url     TEXT,
	location_lat DOUBLE PRECISION,
	location_lng DOUBLE PRECISION,
	is_alert     BOOLEAN NOT NULL DEFAULT FALSE,
	is_read      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_messages_room ON messages (chat_room_id);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages (created_at DESC);

CREATE TABLE IF NOT EXISTS notifications (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id    UUID NOT NULL REFERENCES users (id),
	title      TEXT NOT NULL,
	message    TEXT NOT NULL,
	type       TEXT NOT NULL,
	is_read    BOOLEAN NOT NULL DEFAULT FALSE,
	action_url TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications (created_at DESC);
`

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

type stationSeed struct {
	name      string
	address   string
	city      string
	state     string
	phone     string
	email     string
	latitude  float64
	longitude float64
}

var stationSeeds = []stationSeed{
	{"Koramangala Police Station", "Koramangala, Bangalore", "Bangalore", "Karnataka", "+91-80-25532470", "koramangala.police@karnataka.gov.in", 12.9352, 77.6245},
	{"Whitefield Police Station", "Whitefield, Bangalore", "Bangalore", "Karnataka", "+91-80-28452301", "whitefield.police@karnataka.gov.in", 12.9698, 77.7500},
	{"Indiranagar Police Station", "Indiranagar, Bangalore", "Bangalore", "Karnataka", "+91-80-25212020", "indiranagar.police@karnataka.gov.in", 12.9719, 77.6412},
	{"MG Road Police Station", "MG Road, Bangalore", "Bangalore", "Karnataka", "+91-80-25584242", "mgroad.police@karnataka.gov.in", 12.9716, 77.6197},
	{"Electronic City Police Station", "Electronic City, Bangalore", "Bangalore", "Karnataka", "+91-80-27835533", "ecity.police@karnataka.gov.in", 12.8456, 77.6603},
	{"Connaught Place Police Station", "Connaught Place, New Delhi", "New Delhi", "Delhi", "+91-11-23412020", "cp.police@delhi.gov.in", 28.6315, 77.2167},
	{"Karol Bagh Police Station", "Karol Bagh, New Delhi", "New Delhi", "Delhi", "+91-11-25782020", "kb.police@delhi.gov.in", 28.6519, 77.1909},
	{"Bandra Police Station", "Bandra West, Mumbai", "Mumbai", "Maharashtra", "+91-22-26420020", "bandra.police@maharashtra.gov.in", 19.0596, 72.8295},
	{"Andheri Police Station", "Andheri West, Mumbai", "Mumbai", "Maharashtra", "+91-22-26730020", "andheri.police@maharashtra.gov.in", 19.1136, 72.8697},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	log.Info().Msg("schema applied")

	stationRepo := repository.NewPoliceStationRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)

	existing, err := stationRepo.FindActive(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to check existing stations")
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("police stations already seeded, skipping")
		return
	}

	var koramangala *model.PoliceStation
	for _, s := range stationSeeds {
		created, err := stationRepo.Create(ctx, &model.PoliceStation{
			Name:      s.name,
			Address:   s.address,
			City:      s.city,
			State:     s.state,
			Phone:     strPtr(s.phone),
			Email:     strPtr(s.email),
			Latitude:  floatPtr(s.latitude),
			Longitude: floatPtr(s.longitude),
		})
		if err != nil {
			log.Fatal().Err(err).Str("station", s.name).Msg("failed to create police station")
		}
		if koramangala == nil {
			koramangala = created
		}
	}
	log.Info().Int("count", len(stationSeeds)).Msg("police stations created")

	hash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash demo password")
	}

	officer, err := userRepo.Create(ctx, model.CreateUserParams{
		Email:         "officer.sharma@police.gov.in",
		Mobile:        "+919876543210",
		Name:          "Officer Rajesh Sharma",
		Role:          model.RolePolice,
		PasswordHash:  hash,
		State:         strPtr("Karnataka"),
		City:          strPtr("Bangalore"),
		BadgeID:       strPtr("KAR001"),
		PoliceStation: &koramangala.ID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create demo officer")
	}
	log.Info().Str("email", officer.Email).Msg("demo police officer created")
}
