package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
)

type AdminService struct {
	userRepo     repository.UserRepository
	incidentRepo repository.IncidentRepository
	roomRepo     repository.ChatRoomRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	incidentRepo repository.IncidentRepository,
	roomRepo repository.ChatRoomRepository,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		incidentRepo: incidentRepo,
		roomRepo:     roomRepo,
	}
}

type Stats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalWomen        int `json:"totalWomen"`
	TotalPolice       int `json:"totalPolice"`
	TotalParents      int `json:"totalParents"`
	TotalIncidents    int `json:"totalIncidents"`
	PendingIncidents  int `json:"pendingIncidents"`
	ResolvedIncidents int `json:"resolvedIncidents"`
	ActiveChats       int `json:"activeChats"`
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, apperrors.Database(err)
	}
	stats.TotalWomen, _ = s.userRepo.CountByRole(ctx, model.RoleWoman)
	stats.TotalPolice, _ = s.userRepo.CountByRole(ctx, model.RolePolice)
	stats.TotalParents, _ = s.userRepo.CountByRole(ctx, model.RoleParent)

	if stats.TotalIncidents, err = s.incidentRepo.Count(ctx); err != nil {
		return nil, apperrors.Database(err)
	}
	stats.PendingIncidents, _ = s.incidentRepo.CountByStatus(ctx, model.IncidentStatusPending)
	stats.ResolvedIncidents, _ = s.incidentRepo.CountByStatus(ctx, model.IncidentStatusResolved)

	stats.ActiveChats, _ = s.roomRepo.CountActive(ctx)

	return stats, nil
}

func (s *AdminService) GetUsers(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	users, err := s.userRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return users, total, nil
}

// UpdateUserStatus flips the active or verified flag on an account. A
// deactivated account loses access on its next request even if its token
// is still within its lifetime.
func (s *AdminService) UpdateUserStatus(ctx context.Context, id string, params model.UpdateUserStatusParams) (*model.User, error) {
	if params.IsActive == nil && params.IsVerified == nil {
		return nil, apperrors.ValidationError("nothing to update")
	}

	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing == nil {
		return nil, apperrors.NotFound("User")
	}

	user, err := s.userRepo.UpdateStatus(ctx, id, params)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("userId", id).
		Interface("isActive", params.IsActive).
		Interface("isVerified", params.IsVerified).
		Msg("user status updated")

	return user, nil
}

func (s *AdminService) GetIncidents(ctx context.Context, limit, offset int, status string) ([]model.Incident, int, error) {
	if status != "" && !model.ValidIncidentStatus(status) {
		return nil, 0, apperrors.InvalidInput("status", "unknown status")
	}
	incidents, total, err := s.incidentRepo.FindAll(ctx, limit, offset, status)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return incidents, total, nil
}
