package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"eventhub/internal/domain/event"
	eventcache "eventhub/internal/redis"
	"eventhub/internal/repository"
	apperrors "eventhub/pkg/errors"
	"eventhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventService implements the event operations: listing with reference
// expansion, creation under the owner's place, edit/delete/image upload with
// owner checks, the like toggle and one-way participant registration. Every
// multi-row write runs in one transaction.
type EventService struct {
	db      *gorm.DB
	events  repository.EventRepository
	users   repository.UserRepository
	places  repository.PlaceRepository
	uploads ImageStore
	cache   *eventcache.EventCache
}

func NewEventService(
	db *gorm.DB,
	events repository.EventRepository,
	users repository.UserRepository,
	places repository.PlaceRepository,
	uploads ImageStore,
	cache *eventcache.EventCache,
) *EventService {
	return &EventService{
		db:      db,
		events:  events,
		users:   users,
		places:  places,
		uploads: uploads,
		cache:   cache,
	}
}

type EventInput struct {
	Title       string
	Description string
	Frequency   string
	DateStart   string
	DateEnd     string
	TimeStart   string
	TimeEnd     string
	Price       float64
}

// List returns every event with owner, place and the nested
// rating/participant/like documents expanded.
func (s *EventService) List(ctx context.Context) ([]event.Event, error) {
	if cached, err := s.cache.GetList(ctx, eventcache.KeyAllEvents); err == nil && cached != nil {
		return cached, nil
	}

	events, err := s.events.FindAllExpanded(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheList(ctx, eventcache.KeyAllEvents, events)
	return events, nil
}

// ListByLikes returns every event ordered by the denormalized like counter,
// most liked first.
func (s *EventService) ListByLikes(ctx context.Context) ([]event.Event, error) {
	if cached, err := s.cache.GetList(ctx, eventcache.KeySortedEvents); err == nil && cached != nil {
		return cached, nil
	}

	events, err := s.events.FindAllByLikes(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheList(ctx, eventcache.KeySortedEvents, events)
	return events, nil
}

func (s *EventService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]event.Event, error) {
	return s.events.FindByOwner(ctx, ownerID)
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (event.Event, error) {
	return s.events.FindByIDExpanded(ctx, id)
}

// Create stores a new event under the caller's place and appends the new id
// to the place's event reference list. Callers without a place are rejected.
func (s *EventService) Create(ctx context.Context, ownerID uuid.UUID, in EventInput) (event.Event, error) {
	u, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return event.Event{}, err
	}
	if !u.HasPlace() {
		return event.Event{}, apperrors.ErrNoPlace
	}
	placeID := *u.HasPlaceID

	e := event.Event{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Title:            in.Title,
		Description:      in.Description,
		Frequency:        in.Frequency,
		DateStart:        in.DateStart,
		DateEnd:          in.DateEnd,
		TimeStart:        in.TimeStart,
		TimeEnd:          in.TimeEnd,
		Price:            in.Price,
		BelongsToPlaceID: placeID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := repository.NewEventRepository(tx)
		places := repository.NewPlaceRepository(tx)

		if err := events.Create(ctx, &e); err != nil {
			return err
		}
		return places.AppendEventRef(ctx, placeID, e.ID)
	})
	if err != nil {
		return event.Event{}, err
	}

	s.invalidate(ctx)
	return e, nil
}

// Update replaces every mutable field with the given input, matching the
// original full-replace contract. Owner only.
func (s *EventService) Update(ctx context.Context, userID, eventID uuid.UUID, in EventInput) (event.Event, error) {
	e, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}
	if e.OwnerID != userID {
		return event.Event{}, apperrors.ErrForbidden
	}

	e.Title = in.Title
	e.Description = in.Description
	e.Frequency = in.Frequency
	e.DateStart = in.DateStart
	e.DateEnd = in.DateEnd
	e.TimeStart = in.TimeStart
	e.TimeEnd = in.TimeEnd
	e.Price = in.Price

	if err := s.events.Update(ctx, e); err != nil {
		return event.Event{}, err
	}

	s.invalidate(ctx)
	return e, nil
}

// UploadImage stores the uploaded file and records its URL on the event.
// Owner only; nothing is uploaded when the caller is not the owner.
func (s *EventService) UploadImage(ctx context.Context, userID, eventID uuid.UUID, file *multipart.FileHeader) (event.Event, error) {
	if file == nil {
		return event.Event{}, apperrors.ErrNotUploaded
	}

	e, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}
	if e.OwnerID != userID {
		return event.Event{}, apperrors.ErrForbidden
	}
	if s.uploads == nil {
		return event.Event{}, errors.New("upload storage is not configured")
	}

	url, err := s.uploads.StoreEventImage(ctx, eventID, file)
	if err != nil {
		return event.Event{}, err
	}

	if err := s.events.UpdateImage(ctx, eventID, url); err != nil {
		return event.Event{}, err
	}

	e.Image = &url
	s.invalidate(ctx)
	return e, nil
}

// Delete removes the event itself. Likes, participants, ratings and the
// place's reference list keep their rows; those ids become dangling, matching
// the system's documented partial cascade.
func (s *EventService) Delete(ctx context.Context, userID, eventID uuid.UUID) (event.Event, error) {
	e, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}
	if e.OwnerID != userID {
		return event.Event{}, apperrors.ErrForbidden
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.NewEventRepository(tx).Delete(ctx, eventID)
	})
	if err != nil {
		return event.Event{}, err
	}

	s.invalidate(ctx)
	return e, nil
}

// ToggleLike creates a like for the (user, event) pair when none exists and
// removes the existing one otherwise. The denormalized counter moves with the
// like row inside the same transaction. The second return value reports
// whether a like was created.
func (s *EventService) ToggleLike(ctx context.Context, userID, eventID uuid.UUID) (event.Like, bool, error) {
	var like event.Like
	var created bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := repository.NewEventRepository(tx)

		e, err := events.FindByIDWithLikes(ctx, eventID)
		if err != nil {
			return err
		}

		if existing, ok := e.LikedBy(userID); ok {
			if err := events.DeleteLike(ctx, existing.ID); err != nil {
				return err
			}
			if err := events.AdjustLikeCount(ctx, eventID, -1); err != nil {
				return err
			}
			like = existing
			created = false
			return nil
		}

		like = event.Like{
			ID:             uuid.New(),
			LikeGivenByID:  userID,
			LikeForEventID: eventID,
			CreatedAt:      time.Now(),
		}
		if err := events.CreateLike(ctx, &like); err != nil {
			return err
		}
		if err := events.AdjustLikeCount(ctx, eventID, 1); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return event.Like{}, false, err
	}

	s.invalidate(ctx)
	return like, created, nil
}

// Register adds the caller as a participant. Registration is one-way: a
// second call for the same pair creates nothing and reports created=false.
func (s *EventService) Register(ctx context.Context, userID, eventID uuid.UUID) (event.Participant, bool, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return event.Participant{}, false, err
	}

	existing, err := s.events.FindParticipant(ctx, userID, eventID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return event.Participant{}, false, err
	}

	p := event.Participant{
		ID:        uuid.New(),
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.NewEventRepository(tx).CreateParticipant(ctx, &p)
	})
	if err != nil {
		return event.Participant{}, false, err
	}

	s.invalidate(ctx)
	return p, true, nil
}

func (s *EventService) cacheList(ctx context.Context, key string, events []event.Event) {
	if err := s.cache.SetList(ctx, key, events); err != nil {
		if l := logger.GetGlobalLogger(); l != nil {
			l.Warnf("event cache set %s: %s", key, err)
		}
	}
}

func (s *EventService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		if l := logger.GetGlobalLogger(); l != nil {
			l.Warnf("event cache invalidate: %s", err)
		}
	}
}
