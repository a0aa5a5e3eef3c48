package repository

import (
	"context"
	"errors"

	"eventhub/internal/domain/event"
	apperrors "eventhub/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &PostgresEventRepository{db: db}
}

func (r *PostgresEventRepository) Create(ctx context.Context, e *event.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// expanded mirrors the response shape of the listing endpoints: owner and
// place plus the rating/participant/like lists, each with its giving user.
func (r *PostgresEventRepository) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Owner").
		Preload("BelongsToPlace").
		Preload("BelongsToPlace.EventRefs").
		Preload("Ratings.RatingGivenBy").
		Preload("Participants.User").
		Preload("Likes.LikeGivenBy")
}

func (r *PostgresEventRepository) FindAllExpanded(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	if err := r.expanded(ctx).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresEventRepository) FindAllByLikes(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	if err := r.db.WithContext(ctx).
		Order("number_of_likes DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresEventRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]event.Event, error) {
	var events []event.Event
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresEventRepository) FindByIDExpanded(ctx context.Context, id uuid.UUID) (event.Event, error) {
	var e event.Event
	err := r.expanded(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event.Event{}, apperrors.ErrNotFound
		}
		return event.Event{}, err
	}
	return e, nil
}

func (r *PostgresEventRepository) FindByID(ctx context.Context, id uuid.UUID) (event.Event, error) {
	var e event.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event.Event{}, apperrors.ErrNotFound
		}
		return event.Event{}, err
	}
	return e, nil
}

func (r *PostgresEventRepository) FindByIDWithLikes(ctx context.Context, id uuid.UUID) (event.Event, error) {
	var e event.Event
	err := r.db.WithContext(ctx).
		Preload("Likes.LikeGivenBy").
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event.Event{}, apperrors.ErrNotFound
		}
		return event.Event{}, err
	}
	return e, nil
}

func (r *PostgresEventRepository) Update(ctx context.Context, e event.Event) error {
	res := r.db.WithContext(ctx).
		Model(&event.Event{}).
		Where("id = ?", e.ID).
		Select("Title", "Description", "Frequency", "DateStart", "DateEnd", "TimeStart", "TimeEnd", "Price").
		Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresEventRepository) UpdateImage(ctx context.Context, id uuid.UUID, url string) error {
	res := r.db.WithContext(ctx).
		Model(&event.Event{}).
		Where("id = ?", id).
		Update("image", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresEventRepository) AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&event.Event{}).
		Where("id = ?", id).
		UpdateColumn("number_of_likes", gorm.Expr("number_of_likes + ?", delta)).Error
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&event.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresEventRepository) CreateLike(ctx context.Context, l *event.Like) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *PostgresEventRepository) DeleteLike(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&event.Like{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresEventRepository) FindParticipant(ctx context.Context, userID, eventID uuid.UUID) (event.Participant, error) {
	var p event.Participant
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event.Participant{}, apperrors.ErrNotFound
		}
		return event.Participant{}, err
	}
	return p, nil
}

func (r *PostgresEventRepository) CreateParticipant(ctx context.Context, p *event.Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}
