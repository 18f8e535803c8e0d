package service

import (
	"context"
	"fmt"
	"strings"

	"polygon-service/internal/model"
)

// MarkerStore is the persistence surface the marker service needs.
// *repository.MarkerRepository satisfies it.
type MarkerStore interface {
	Insert(ctx context.Context, marker *model.Marker) error
	FindAll(ctx context.Context) ([]model.Marker, error)
}

type MarkerService struct {
	markers MarkerStore
}

func NewMarkerService(markers MarkerStore) *MarkerService {
	return &MarkerService{markers: markers}
}

type CreateMarkerInput struct {
	Coordinates []float64
	Description string
	Date        string
}

func (s *MarkerService) Create(ctx context.Context, input CreateMarkerInput) (*model.Marker, error) {
	if len(input.Coordinates) != 2 {
		return nil, fmt.Errorf("%w: coordinates must be a [lat, lng] pair", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	marker := &model.Marker{
		Coordinates: input.Coordinates,
		Description: input.Description,
		Date:        date,
	}
	if err := s.markers.Insert(ctx, marker); err != nil {
		return nil, err
	}
	return marker, nil
}

func (s *MarkerService) List(ctx context.Context) ([]model.Marker, error) {
	return s.markers.FindAll(ctx)
}
