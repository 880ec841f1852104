package service

import (
	"context"

	apperrors "github.com/libertysafety/liberty-server-go/internal/errors"
	"github.com/libertysafety/liberty-server-go/internal/model"
	"github.com/libertysafety/liberty-server-go/internal/repository"
)

type StationService struct {
	stationRepo repository.PoliceStationRepository
}

func NewStationService(stationRepo repository.PoliceStationRepository) *StationService {
	return &StationService{stationRepo: stationRepo}
}

// ListActive returns every active station, alphabetical by name. The list
// is public; the directory backs both registration and the chat entry page.
func (s *StationService) ListActive(ctx context.Context) ([]model.PoliceStation, error) {
	stations, err := s.stationRepo.FindActive(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return stations, nil
}
