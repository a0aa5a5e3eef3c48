package repository

import (
	"context"

	"eventhub/internal/domain/event"
	"eventhub/internal/domain/place"
	"eventhub/internal/domain/user"

	"github.com/google/uuid"
)

type EventRepository interface {
	Create(ctx context.Context, e *event.Event) error
	// FindAllExpanded returns every event with owner, place and the nested
	// rating/participant/like documents populated.
	FindAllExpanded(ctx context.Context) ([]event.Event, error)
	// FindAllByLikes returns every event ordered by the denormalized like
	// counter, most liked first, without population.
	FindAllByLikes(ctx context.Context) ([]event.Event, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]event.Event, error)
	FindByIDExpanded(ctx context.Context, id uuid.UUID) (event.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (event.Event, error)
	// FindByIDWithLikes populates only the likes list, which the like toggle
	// scans for the caller's existing like.
	FindByIDWithLikes(ctx context.Context, id uuid.UUID) (event.Event, error)
	Update(ctx context.Context, e event.Event) error
	UpdateImage(ctx context.Context, id uuid.UUID, url string) error
	// AdjustLikeCount applies number_of_likes = number_of_likes + delta as a
	// single statement.
	AdjustLikeCount(ctx context.Context, id uuid.UUID, delta int) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateLike(ctx context.Context, l *event.Like) error
	DeleteLike(ctx context.Context, id uuid.UUID) error

	FindParticipant(ctx context.Context, userID, eventID uuid.UUID) (event.Participant, error)
	CreateParticipant(ctx context.Context, p *event.Participant) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	SetPlace(ctx context.Context, userID, placeID uuid.UUID) error
}

type PlaceRepository interface {
	Create(ctx context.Context, p *place.Place) error
	GetByID(ctx context.Context, id uuid.UUID) (place.Place, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (place.Place, error)
	// AppendEventRef pushes an event id onto the place's reference list.
	AppendEventRef(ctx context.Context, placeID, eventID uuid.UUID) error
}
