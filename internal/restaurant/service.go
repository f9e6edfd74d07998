package restaurant

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var timeWindowPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// recordStore abstracts the persistence layer.
type recordStore interface {
	Create(ctx context.Context, rec Restaurant) (Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (Restaurant, error)
	List(ctx context.Context) ([]Restaurant, error)
	Update(ctx context.Context, rec Restaurant) (Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages restaurant record lifecycle.
type Service struct {
	repo recordStore
}

// NewService constructs a restaurant service.
func NewService(repo recordStore) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new restaurant record.
func (s *Service) Create(ctx context.Context, rec Restaurant) (Restaurant, error) {
	if err := validateHours(rec.OpeningHours); err != nil {
		return Restaurant{}, err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Images == nil {
		rec.Images = []string{}
	}
	return s.repo.Create(ctx, rec)
}

// Get fetches one restaurant record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Restaurant, error) {
	return s.repo.Get(ctx, id)
}

// List returns all restaurant records.
func (s *Service) List(ctx context.Context) ([]Restaurant, error) {
	return s.repo.List(ctx)
}

// Update applies a partial patch to an existing record. Only fields set on
// the patch change; a present Images field replaces the stored key list
// wholesale, which is what makes a gallery commit's final write atomic at
// the storage layer.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (Restaurant, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Restaurant{}, err
	}

	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.Address != nil {
		rec.Address = *patch.Address
	}
	if patch.PhoneNumber != nil {
		rec.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Images != nil {
		rec.Images = *patch.Images
		if rec.Images == nil {
			rec.Images = []string{}
		}
	}
	if patch.OpeningHours != nil {
		if err := validateHours(*patch.OpeningHours); err != nil {
			return Restaurant{}, err
		}
		rec.OpeningHours = *patch.OpeningHours
	}

	return s.repo.Update(ctx, rec)
}

// Delete removes a restaurant record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateHours(days []OpeningDay) error {
	for _, day := range days {
		for _, w := range day.Windows {
			if !timeWindowPattern.MatchString(w.From) || !timeWindowPattern.MatchString(w.To) {
				return fmt.Errorf("%w: %s %s-%s", ErrInvalidHours, day.Day, w.From, w.To)
			}
		}
	}
	return nil
}
