package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/libertysafety/liberty-server-go/internal/model"
)

type IncidentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Incident, error)
	FindByCaseNumber(ctx context.Context, caseNumber string) (*model.Incident, error)
	FindByReporterID(ctx context.Context, reporterID string, limit, offset int) ([]model.Incident, error)
	FindForOfficer(ctx context.Context, officerID string, stationID *string, limit, offset int) ([]model.Incident, error)
	FindAll(ctx context.Context, limit, offset int, status string) ([]model.Incident, int, error)
	Create(ctx context.Context, params model.CreateIncidentParams) (*model.Incident, error)
	Update(ctx context.Context, id string, params model.UpdateIncidentParams) (*model.Incident, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.IncidentStatus) (int, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) IncidentRepository
}

type incidentRepo struct {
	db sqlxDB
}

func NewIncidentRepository(db *sqlx.DB) IncidentRepository {
	return &incidentRepo{db: db}
}

func (r *incidentRepo) WithTx(tx *sqlx.Tx) IncidentRepository {
	return &incidentRepo{db: tx}
}

func (r *incidentRepo) FindByID(ctx context.Context, id string) (*model.Incident, error) {
	var incident model.Incident
	err := r.db.GetContext(ctx, &incident, `
		SELECT * FROM incidents WHERE id = $1
	`, id)
	return HandleNotFound(&incident, err)
}

func (r *incidentRepo) FindByCaseNumber(ctx context.Context, caseNumber string) (*model.Incident, error) {
	var incident model.Incident
	err := r.db.GetContext(ctx, &incident, `
		SELECT * FROM incidents WHERE case_number = $1
	`, caseNumber)
	return HandleNotFound(&incident, err)
}

func (r *incidentRepo) FindByReporterID(ctx context.Context, reporterID string, limit, offset int) ([]model.Incident, error) {
	var incidents []model.Incident
	err := r.db.SelectContext(ctx, &incidents, `
		SELECT * FROM incidents
		WHERE reporter_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, reporterID, limit, offset)
	return incidents, err
}

func (r *incidentRepo) FindForOfficer(ctx context.Context, officerID string, stationID *string, limit, offset int) ([]model.Incident, error) {
	var incidents []model.Incident
	err := r.db.SelectContext(ctx, &incidents, `
		SELECT * FROM incidents
		WHERE assigned_officer_id = $1 OR police_station_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, officerID, stationID, limit, offset)
	return incidents, err
}

func (r *incidentRepo) FindAll(ctx context.Context, limit, offset int, status string) ([]model.Incident, int, error) {
	var incidents []model.Incident
	var total int

	query := `SELECT * FROM incidents WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM incidents WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if status != "" {
		query += ` AND status = $` + strconv.Itoa(argIndex)
		countQuery += ` AND status = $` + strconv.Itoa(argIndex)
		args = append(args, status)
		argIndex++
	}

	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIndex) + ` OFFSET $` + strconv.Itoa(argIndex+1)
	args = append(args, limit, offset)

	err := r.db.SelectContext(ctx, &incidents, query, args...)
	if err != nil {
		return nil, 0, err
	}

	countArgs := args[:len(args)-2]
	r.db.GetContext(ctx, &total, countQuery, countArgs...)

	return incidents, total, nil
}

func (r *incidentRepo) Create(ctx context.Context, params model.CreateIncidentParams) (*model.Incident, error) {
	var incident model.Incident
	err := r.db.GetContext(ctx, &incident, `
		INSERT INTO incidents
			(case_number, reporter_id, police_station_id, title, description,
			 incident_type, vehicle_number, location_lat, location_lng,
			 location_address, notify_parent, evidence_urls, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'pending', $13)
		RETURNING *
	`, params.CaseNumber, params.ReporterID, params.PoliceStationID, params.Title,
		params.Description, params.IncidentType, params.VehicleNumber,
		params.LocationLat, params.LocationLng, params.LocationAddress,
		params.NotifyParent, pq.StringArray(params.EvidenceURLs), params.Priority)
	if err != nil {
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepo) Update(ctx context.Context, id string, params model.UpdateIncidentParams) (*model.Incident, error) {
	// resolved_at is stamped exactly when the status transitions to resolved
	// and never cleared afterwards.
	var resolvedAt *time.Time
	if params.Status != nil && *params.Status == model.IncidentStatusResolved {
		now := time.Now()
		resolvedAt = &now
	}

	var incident model.Incident
	err := r.db.GetContext(ctx, &incident, `
		UPDATE incidents SET
			status = COALESCE($2, status),
			priority = COALESCE($3, priority),
			assigned_officer_id = COALESCE($4, assigned_officer_id),
			resolved_at = COALESCE($5, resolved_at),
			updated_at = $6
		WHERE id = $1
		RETURNING *
	`, id, params.Status, params.Priority, params.AssignedOfficerID, resolvedAt, time.Now())
	return HandleNotFound(&incident, err)
}

func (r *incidentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM incidents`)
	return count, err
}

func (r *incidentRepo) CountByStatus(ctx context.Context, status model.IncidentStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM incidents WHERE status = $1
	`, status)
	return count, err
}
