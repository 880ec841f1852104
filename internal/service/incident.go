package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
	"github.com/libertysafety/liberty-server-go/internal/util"
)

const defaultCity = "Bangalore"

type CreateIncidentInput struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	IncidentType    *string  `json:"incidentType,omitempty"`
	VehicleNumber   *string  `json:"vehicleNumber,omitempty"`
	LocationLat     *float64 `json:"locationLat,omitempty"`
	LocationLng     *float64 `json:"locationLng,omitempty"`
	LocationAddress *string  `json:"locationAddress,omitempty"`
	NotifyParent    bool     `json:"notifyParent"`
	EvidenceURLs    []string `json:"evidenceUrls,omitempty"`
}

type IncidentService struct {
	incidentRepo     repository.IncidentRepository
	stationRepo      repository.PoliceStationRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

func NewIncidentService(
	incidentRepo repository.IncidentRepository,
	stationRepo repository.PoliceStationRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) *IncidentService {
	return &IncidentService{
		incidentRepo:     incidentRepo,
		stationRepo:      stationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// Create files a report on behalf of the reporter, routing it to a station
// in the reporter's city and notifying that station's officers. Only the
// station routing is best-effort; the report itself always gets a case
// number and a pending status.
func (s *IncidentService) Create(ctx context.Context, reporter *model.User, input CreateIncidentInput) (*model.Incident, error) {
	if input.Title == "" {
		return nil, apperrors.MissingRequired("title")
	}
	if len(input.Title) > 255 {
		return nil, apperrors.InvalidInput("title", "must be at most 255 characters")
	}
	if input.Description == "" {
		return nil, apperrors.MissingRequired("description")
	}

	city := defaultCity
	if reporter.City != nil && *reporter.City != "" {
		city = *reporter.City
	}
	station, err := s.stationRepo.FindActiveByCity(ctx, city)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	params := model.CreateIncidentParams{
		CaseNumber:      util.GenerateCaseNumber(s.now()),
		ReporterID:      reporter.ID,
		Title:           input.Title,
		Description:     input.Description,
		IncidentType:    input.IncidentType,
		VehicleNumber:   input.VehicleNumber,
		LocationLat:     input.LocationLat,
		LocationLng:     input.LocationLng,
		LocationAddress: input.LocationAddress,
		NotifyParent:    input.NotifyParent,
		EvidenceURLs:    input.EvidenceURLs,
		Priority:        model.PriorityMedium,
	}
	if station != nil {
		params.PoliceStationID = &station.ID
	}

	incident, err := s.incidentRepo.Create(ctx, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if station != nil {
		s.notifyStation(ctx, station.ID, incident)
	}

	log.Info().
		Str("incidentId", incident.ID).
		Str("caseNumber", incident.CaseNumber).
		Str("reporterId", reporter.ID).
		Msg("incident reported")

	return incident, nil
}

func (s *IncidentService) notifyStation(ctx context.Context, stationID string, incident *model.Incident) {
	officers, err := s.userRepo.FindOfficersByStationID(ctx, stationID)
	if err != nil {
		log.Warn().Err(err).Str("stationId", stationID).Msg("failed to look up station officers")
		return
	}
	actionURL := "/incidents/" + incident.ID
	for _, officer := range officers {
		_, err := s.notificationRepo.Create(ctx, model.CreateNotificationParams{
			UserID:    officer.ID,
			Title:     "New Incident Reported",
			Message:   "New incident reported: " + incident.Title,
			Type:      "incident",
			ActionURL: &actionURL,
		})
		if err != nil {
			log.Warn().Err(err).Str("officerId", officer.ID).Msg("failed to create incident notification")
		}
	}
}

// ListForUser returns the reports visible to the caller: reporters see
// their own, officers see reports assigned to them or routed to their
// station, and everyone else sees the full list.
func (s *IncidentService) ListForUser(ctx context.Context, user *model.User, limit, offset int) ([]model.Incident, error) {
	switch user.Role {
	case model.RoleWoman:
		incidents, err := s.incidentRepo.FindByReporterID(ctx, user.ID, limit, offset)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		return incidents, nil
	case model.RolePolice:
		incidents, err := s.incidentRepo.FindForOfficer(ctx, user.ID, user.PoliceStation, limit, offset)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		return incidents, nil
	default:
		incidents, _, err := s.incidentRepo.FindAll(ctx, limit, offset, "")
		if err != nil {
			return nil, apperrors.Database(err)
		}
		return incidents, nil
	}
}

// TrackByCaseNumber is the public lookup behind the tracking page. It needs
// no session; the case number is the capability. The view joins in the
// reporter, officer, and station names but no credentials or contact chains.
func (s *IncidentService) TrackByCaseNumber(ctx context.Context, caseNumber string) (*model.IncidentDetails, error) {
	if caseNumber == "" {
		return nil, apperrors.MissingRequired("case_number")
	}

	incident, err := s.incidentRepo.FindByCaseNumber(ctx, caseNumber)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if incident == nil {
		return nil, apperrors.NotFound("Case")
	}

	details := &model.IncidentDetails{Incident: *incident}

	if reporter, err := s.userRepo.FindByID(ctx, incident.ReporterID); err == nil && reporter != nil {
		details.ReporterName = &reporter.Name
		details.ReporterMobile = &reporter.Mobile
	}
	if incident.AssignedOfficerID != nil {
		if officer, err := s.userRepo.FindByID(ctx, *incident.AssignedOfficerID); err == nil && officer != nil {
			details.AssignedOfficerName = &officer.Name
			details.AssignedOfficerBadge = officer.BadgeID
		}
	}
	if incident.PoliceStationID != nil {
		if station, err := s.stationRepo.FindByID(ctx, *incident.PoliceStationID); err == nil && station != nil {
			details.PoliceStationName = &station.Name
			details.PoliceStationPhone = station.Phone
		}
	}

	return details, nil
}

// Update applies a status, priority, or assignment change. Moving a report
// into resolved stamps resolved_at; the stamp survives any later transition.
func (s *IncidentService) Update(ctx context.Context, id string, params model.UpdateIncidentParams) (*model.Incident, error) {
	if params.Status != nil && !model.ValidIncidentStatus(string(*params.Status)) {
		return nil, apperrors.InvalidInput("status", "unknown status")
	}
	if params.Priority != nil && (*params.Priority < model.PriorityLow || *params.Priority > model.PriorityCritical) {
		return nil, apperrors.InvalidInput("priority", "must be between 1 and 4")
	}

	existing, err := s.incidentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing == nil {
		return nil, apperrors.NotFound("Incident")
	}

	incident, err := s.incidentRepo.Update(ctx, id, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if params.Status != nil && *params.Status != existing.Status {
		s.notifyReporterStatus(ctx, incident)
	}

	return incident, nil
}

func (s *IncidentService) notifyReporterStatus(ctx context.Context, incident *model.Incident) {
	actionURL := "/incidents/" + incident.ID
	_, err := s.notificationRepo.Create(ctx, model.CreateNotificationParams{
		UserID:    incident.ReporterID,
		Title:     "Case Status Updated",
		Message:   "Your case " + incident.CaseNumber + " is now " + string(incident.Status),
		Type:      "incident",
		ActionURL: &actionURL,
	})
	if err != nil {
		log.Warn().Err(err).Str("incidentId", incident.ID).Msg("failed to create status notification")
	}
}
