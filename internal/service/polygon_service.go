package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"polygon-service/internal/model"
	"polygon-service/internal/repository"
	"polygon-service/internal/utils"
)

// PolygonStore is the persistence surface the polygon service needs.
// *repository.PolygonRepository satisfies it.
type PolygonStore interface {
	Insert(ctx context.Context, polygon *model.Polygon) error
	FindAll(ctx context.Context) ([]model.Polygon, error)
	FindByField(ctx context.Context, field, value string) ([]model.Polygon, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update repository.PolygonUpdate) (*model.Polygon, error)
	IncrementLikes(ctx context.Context, id primitive.ObjectID) (*model.Polygon, error)
	AppendReview(ctx context.Context, id primitive.ObjectID, review string) (*model.Polygon, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*model.Polygon, error)
}

type PolygonService struct {
	polygons PolygonStore
}

func NewPolygonService(polygons PolygonStore) *PolygonService {
	return &PolygonService{polygons: polygons}
}

type CreatePolygonInput struct {
	Coordinates [][][]float64
	Description string
	Color       *string
	Area        *float64
	Date        string
	Reviews     []string
	Likes       *int64
	Name        string
	Email       string
	Tag         *string
}

func (s *PolygonService) Create(ctx context.Context, input CreatePolygonInput) (*model.Polygon, error) {
	if err := validateCoordinates(input.Coordinates); err != nil {
		return nil, err
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

	polygon := &model.Polygon{
		Coordinates: input.Coordinates,
		Description: input.Description,
		Color:       model.DefaultPolygonColor,
		Area:        0,
		Date:        date,
		Reviews:     []string{},
		Likes:       0,
		Name:        input.Name,
		Email:       utils.NormalizeEmail(input.Email),
		Tag:         model.DefaultPolygonTag,
	}
	if input.Color != nil {
		polygon.Color = *input.Color
	}
	if input.Area != nil {
		polygon.Area = *input.Area
	}
	if input.Reviews != nil {
		polygon.Reviews = input.Reviews
	}
	if input.Likes != nil {
		if *input.Likes < 0 {
			return nil, fmt.Errorf("%w: likes must not be negative", ErrInvalidInput)
		}
		polygon.Likes = *input.Likes
	}
	if input.Tag != nil {
		polygon.Tag = *input.Tag
	}

	if err := s.polygons.Insert(ctx, polygon); err != nil {
		return nil, err
	}
	return polygon, nil
}

func (s *PolygonService) List(ctx context.Context) ([]model.Polygon, error) {
	return s.polygons.FindAll(ctx)
}

type UpdatePolygonInput struct {
	Coordinates [][][]float64
	Description *string
	Color       *string
	Area        *float64
	Date        *string
	Reviews     []string
	Likes       *int64
	Name        *string
	Email       *string
	Tag         *string
}

func (s *PolygonService) Update(ctx context.Context, id string, input UpdatePolygonInput) (*model.Polygon, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := repository.PolygonUpdate{
		Description: input.Description,
		Color:       input.Color,
		Area:        input.Area,
		Reviews:     input.Reviews,
		Name:        input.Name,
		Tag:         input.Tag,
	}
	if input.Coordinates != nil {
		if err := validateCoordinates(input.Coordinates); err != nil {
			return nil, err
		}
		update.Coordinates = input.Coordinates
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) == "" {
		return nil, fmt.Errorf("%w: description must not be empty", ErrInvalidInput)
	}
	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		update.Date = &date
	}
	if input.Likes != nil {
		if *input.Likes < 0 {
			return nil, fmt.Errorf("%w: likes must not be negative", ErrInvalidInput)
		}
		update.Likes = input.Likes
	}
	if input.Email != nil {
		normalized := utils.NormalizeEmail(*input.Email)
		update.Email = &normalized
	}

	polygon, err := s.polygons.UpdateByID(ctx, objectID, update)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return polygon, nil
}

// Like adds one to the like counter and returns the new count.
func (s *PolygonService) Like(ctx context.Context, id string) (int64, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}

	polygon, err := s.polygons.IncrementLikes(ctx, objectID)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	return polygon.Likes, nil
}

// AddReview appends a review and returns the full review list in
// stored order.
func (s *PolygonService) AddReview(ctx context.Context, id, review string) ([]string, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(review) == "" {
		return nil, fmt.Errorf("%w: review content is required", ErrInvalidInput)
	}

	polygon, err := s.polygons.AppendReview(ctx, objectID, review)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return polygon.Reviews, nil
}

func (s *PolygonService) Delete(ctx context.Context, id string) (*model.Polygon, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	polygon, err := s.polygons.DeleteByID(ctx, objectID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return polygon, nil
}

func (s *PolygonService) ListByEmail(ctx context.Context, email string) ([]model.Polygon, error) {
	polygons, err := s.polygons.FindByField(ctx, "email", utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if len(polygons) == 0 {
		return nil, fmt.Errorf("no polygons found for this email: %w", ErrNotFound)
	}
	return polygons, nil
}

func (s *PolygonService) ListByTag(ctx context.Context, tag string) ([]model.Polygon, error) {
	polygons, err := s.polygons.FindByField(ctx, "tag", tag)
	if err != nil {
		return nil, err
	}
	if len(polygons) == 0 {
		return nil, fmt.Errorf("no polygons found for this tag: %w", ErrNotFound)
	}
	return polygons, nil
}

func validateCoordinates(coordinates [][][]float64) error {
	if len(coordinates) == 0 {
		return fmt.Errorf("%w: coordinates are required", ErrInvalidInput)
	}
	for _, ring := range coordinates {
		if len(ring) == 0 {
			return fmt.Errorf("%w: coordinate ring must not be empty", ErrInvalidInput)
		}
		for _, point := range ring {
			if len(point) != 2 {
				return fmt.Errorf("%w: coordinate point must be an [x, y] pair", ErrInvalidInput)
			}
		}
	}
	return nil
}

// parseObjectID distinguishes a malformed id (client error) from an id
// that is well-formed but matches nothing (not found).
func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id", ErrInvalidInput)
	}
	return objectID, nil
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("polygon %w", ErrNotFound)
	default:
		return err
	}
}
