package repository

import (
	"context"
	"errors"

	"eventhub/internal/domain/place"
	apperrors "eventhub/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresPlaceRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &PostgresPlaceRepository{db: db}
}

func (r *PostgresPlaceRepository) Create(ctx context.Context, p *place.Place) error {
	res := r.db.WithContext(ctx).Create(p)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (place.Place, error) {
	var p place.Place
	err := r.db.WithContext(ctx).
		Preload("EventRefs").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return place.Place{}, apperrors.ErrNotFound
		}
		return place.Place{}, err
	}
	return p, nil
}

func (r *PostgresPlaceRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (place.Place, error) {
	var p place.Place
	err := r.db.WithContext(ctx).
		Preload("EventRefs").
		Where("owner_id = ?", ownerID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return place.Place{}, apperrors.ErrNotFound
		}
		return place.Place{}, err
	}
	return p, nil
}

func (r *PostgresPlaceRepository) AppendEventRef(ctx context.Context, placeID, eventID uuid.UUID) error {
	ref := place.EventRef{PlaceID: placeID, EventID: eventID}
	return r.db.WithContext(ctx).Create(&ref).Error
}
