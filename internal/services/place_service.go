package services

import (
	"context"
	"errors"
	"time"

	"eventhub/internal/domain/place"
	"eventhub/internal/repository"
	apperrors "eventhub/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaceService struct {
	db     *gorm.DB
	places repository.PlaceRepository
	users  repository.UserRepository
}

func NewPlaceService(db *gorm.DB, places repository.PlaceRepository, users repository.UserRepository) *PlaceService {
	return &PlaceService{db: db, places: places, users: users}
}

type CreatePlaceInput struct {
	Name    string
	Address string
}

// Create registers a place for the user and points the user's hasPlace
// reference at it. Each user can own at most one place.
func (s *PlaceService) Create(ctx context.Context, ownerID uuid.UUID, in CreatePlaceInput) (place.Place, error) {
	if in.Name == "" {
		return place.Place{}, apperrors.ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return place.Place{}, err
	}
	if u.HasPlace() {
		return place.Place{}, apperrors.ErrAlreadyExists
	}

	p := place.Place{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		places := repository.NewPlaceRepository(tx)
		users := repository.NewUserRepository(tx)

		if err := places.Create(ctx, &p); err != nil {
			return err
		}
		return users.SetPlace(ctx, ownerID, p.ID)
	})
	if err != nil {
		return place.Place{}, err
	}
	return p, nil
}

// Mine returns the caller's place with its event reference list.
func (s *PlaceService) Mine(ctx context.Context, ownerID uuid.UUID) (place.Place, error) {
	p, err := s.places.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return place.Place{}, apperrors.ErrNoPlace
		}
		return place.Place{}, err
	}
	return p, nil
}
