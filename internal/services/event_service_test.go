package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"
	"time"

	"eventhub/internal/domain/event"
	"eventhub/internal/domain/place"
	"eventhub/internal/domain/user"
	"eventhub/internal/repository"
	"eventhub/pkg/database"
	apperrors "eventhub/pkg/errors"

	"github.com/google/uuid"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeImageStore struct {
	calls int
}

func (f *fakeImageStore) StoreEventImage(ctx context.Context, eventID uuid.UUID, file *multipart.FileHeader) (string, error) {
	f.calls++
	return fmt.Sprintf("https://cdn.example.com/events/%s.jpg", eventID), nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (*EventService, *gorm.DB, *fakeImageStore) {
	t.Helper()
	db := newTestDB(t)
	store := &fakeImageStore{}
	svc := NewEventService(
		db,
		repository.NewEventRepository(db),
		repository.NewUserRepository(db),
		repository.NewPlaceRepository(db),
		store,
		nil,
	)
	return svc, db, store
}

// seedOwner creates a user with a registered place.
func seedOwner(t *testing.T, db *gorm.DB, name string) (uuid.UUID, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	placeID := uuid.New()

	u := user.User{
		ID:          userID,
		Email:       name + "@example.com",
		Username:    name,
		DisplayName: name,
		HasPlaceID:  &placeID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	p := place.Place{
		ID:        placeID,
		OwnerID:   userID,
		Name:      name + "'s venue",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("failed to create place: %v", err)
	}
	return userID, placeID
}

// seedUser creates a user without a place.
func seedUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	u := user.User{
		ID:          uuid.New(),
		Email:       name + "@example.com",
		Username:    name,
		DisplayName: name,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u.ID
}

func mustCreateEvent(t *testing.T, svc *EventService, ownerID uuid.UUID, title string) event.Event {
	t.Helper()
	e, err := svc.Create(context.Background(), ownerID, EventInput{
		Title:     title,
		DateStart: "2024-01-01",
		DateEnd:   "2024-01-02",
		TimeStart: "18:00",
		TimeEnd:   "22:00",
		Price:     10,
	})
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return e
}

func TestCreateEventUnderOwnersPlace(t *testing.T) {
	svc, db, _ := newTestService(t)
	ownerID, placeID := seedOwner(t, db, "jam-owner")

	e, err := svc.Create(context.Background(), ownerID, EventInput{Title: "Jam", DateStart: "2024-01-01"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if e.OwnerID != ownerID {
		t.Errorf("event owner = %s, want %s", e.OwnerID, ownerID)
	}
	if e.BelongsToPlaceID != placeID {
		t.Errorf("event place = %s, want %s", e.BelongsToPlaceID, placeID)
	}

	p, err := repository.NewPlaceRepository(db).GetByID(context.Background(), placeID)
	if err != nil {
		t.Fatalf("failed to reload place: %v", err)
	}
	found := false
	for _, ref := range p.EventRefs {
		if ref.EventID == e.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("place event refs do not contain the new event id")
	}
}

func TestCreateEventRequiresPlace(t *testing.T) {
	svc, db, _ := newTestService(t)
	userID := seedUser(t, db, "placeless")

	_, err := svc.Create(context.Background(), userID, EventInput{Title: "Nope"})
	if !errors.Is(err, apperrors.ErrNoPlace) {
		t.Fatalf("Create without place: got %v, want ErrNoPlace", err)
	}

	var count int64
	db.Model(&event.Event{}).Count(&count)
	if count != 0 {
		t.Errorf("event count = %d, want 0", count)
	}
}

func TestLikeToggleTwiceRestoresState(t *testing.T) {
	svc, db, _ := newTestService(t)
	ownerID, _ := seedOwner(t, db, "owner")
	likerID := seedUser(t, db, "liker")
	e := mustCreateEvent(t, svc, ownerID, "Concert")

	like, created, err := svc.ToggleLike(context.Background(), likerID, e.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !created {
		t.Fatal("first toggle should create a like")
	}
	if like.LikeGivenByID != likerID || like.LikeForEventID != e.ID {
		t.Errorf("like refs = (%s, %s), want (%s, %s)", like.LikeGivenByID, like.LikeForEventID, likerID, e.ID)
	}

	reloaded, err := svc.events.FindByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("reload after like: %v", err)
	}
	if reloaded.NumberOfLikes != 1 {
		t.Errorf("numberOfLikes after like = %d, want 1", reloaded.NumberOfLikes)
	}

	removed, created, err := svc.ToggleLike(context.Background(), likerID, e.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if created {
		t.Fatal("second toggle should remove the like")
	}
	if removed.ID != like.ID {
		t.Errorf("removed like id = %s, want %s", removed.ID, like.ID)
	}

	reloaded, _ = svc.events.FindByID(context.Background(), e.ID)
	if reloaded.NumberOfLikes != 0 {
		t.Errorf("numberOfLikes after unlike = %d, want 0", reloaded.NumberOfLikes)
	}

	var likeCount int64
	db.Model(&event.Like{}).Count(&likeCount)
	if likeCount != 0 {
		t.Errorf("like rows = %d, want 0", likeCount)
	}
}

func TestRegisterIsOneWay(t *testing.T) {
	svc, db, _ := newTestService(t)
	ownerID, _ := seedOwner(t, db, "host")
	guestID := seedUser(t, db, "guest")
	e := mustCreateEvent(t, svc, ownerID, "Meetup")

	p, created, err := svc.Register(context.Background(), guestID, e.ID)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if !created {
		t.Fatal("first register should create a participant")
	}

	again, created, err := svc.Register(context.Background(), guestID, e.ID)
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if created {
		t.Fatal("second register must not create a duplicate")
	}
	if again.ID != p.ID {
		t.Errorf("second register returned %s, want existing %s", again.ID, p.ID)
	}

	var count int64
	db.Model(&event.Participant{}).Where("event_id = ?", e.ID).Count(&count)
	if count != 1 {
		t.Errorf("participant rows = %d, want 1", count)
	}
}

func TestDeleteLeavesReferencesBehind(t *testing.T) {
	svc, db, _ := newTestService(t)
	ownerID, placeID := seedOwner(t, db, "organizer")
	otherID := seedUser(t, db, "attendee")
	e := mustCreateEvent(t, svc, ownerID, "Festival")

	if _, _, err := svc.ToggleLike(context.Background(), otherID, e.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), otherID, e.ID); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Delete(context.Background(), ownerID, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.Get(context.Background(), e.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("get after delete: got %v, want ErrNotFound", err)
	}

	// Likes, participants and the place's reference list keep their rows
	// pointing at the deleted event.
	var likeCount, partCount int64
	db.Model(&event.Like{}).Where("like_for_event_id = ?", e.ID).Count(&likeCount)
	db.Model(&event.Participant{}).Where("event_id = ?", e.ID).Count(&partCount)
	if likeCount != 1 {
		t.Errorf("orphaned like rows = %d, want 1", likeCount)
	}
	if partCount != 1 {
		t.Errorf("orphaned participant rows = %d, want 1", partCount)
	}

	var refCount int64
	db.Model(&place.EventRef{}).Where("place_id = ? AND event_id = ?", placeID, e.ID).Count(&refCount)
	if refCount != 1 {
		t.Errorf("place event refs = %d, want 1", refCount)
	}
}

func TestNonOwnerMutationsAreRejected(t *testing.T) {
	svc, db, store := newTestService(t)
	ownerID, _ := seedOwner(t, db, "owner2")
	strangerID := seedUser(t, db, "stranger")
	e := mustCreateEvent(t, svc, ownerID, "Private Party")

	if _, err := svc.Update(context.Background(), strangerID, e.ID, EventInput{Title: "Hijacked"}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("non-owner edit: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Delete(context.Background(), strangerID, e.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("non-owner delete: got %v, want ErrForbidden", err)
	}

	file := &multipart.FileHeader{Filename: "photo.jpg"}
	if _, err := svc.UploadImage(context.Background(), strangerID, e.ID, file); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("non-owner upload: got %v, want ErrForbidden", err)
	}
	if store.calls != 0 {
		t.Errorf("storage calls by non-owner = %d, want 0", store.calls)
	}

	reloaded, err := svc.events.FindByID(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Title != "Private Party" {
		t.Errorf("title = %q, want unchanged %q", reloaded.Title, "Private Party")
	}
	if reloaded.Image != nil {
		t.Errorf("image = %v, want nil", *reloaded.Image)
	}
}

func TestEditReplacesAllFields(t *testing.T) {
	svc, db, _ := newTestService(t)
	ownerID, _ := seedOwner(t, db, "editor")
	e := mustCreateEvent(t, svc, ownerID, "Original")

	updated, err := svc.Update(context.Background(), ownerID, e.ID, EventInput{Title: "Renamed"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("title = %q, want %q", updated.Title, "Renamed")
	}

	// The edit is a full replace: fields missing from the input are blanked.
	reloaded, _ := svc.events.FindByID(context.Background(), e.ID)
	if reloaded.DateStart != "" || reloaded.Price != 0 {
		t.Errorf("dateStart = %q, price = %v, want zero values", reloaded.DateStart, reloaded.Price)
	}
}

func TestUploadImageStoresURL(t *testing.T) {
	svc, db, store := newTestService(t)
	ownerID, _ := seedOwner(t, db, "photographer")
	e := mustCreateEvent(t, svc, ownerID, "Gallery Night")

	file := &multipart.FileHeader{Filename: "cover.jpg"}
	updated, err := svc.UploadImage(context.Background(), ownerID, e.ID, file)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("storage calls = %d, want 1", store.calls)
	}
	if updated.Image == nil || *updated.Image == "" {
		t.Fatal("image URL not set on response")
	}

	reloaded, _ := svc.events.FindByID(context.Background(), e.ID)
	if reloaded.Image == nil || *reloaded.Image != *updated.Image {
		t.Errorf("persisted image = %v, want %q", reloaded.Image, *updated.Image)
	}
}

func TestGetExpandsReferences(t *testing.T) {
	svc, db, _ := newTestService(t)
	ownerID, _ := seedOwner(t, db, "expander")
	likerID := seedUser(t, db, "fan")
	e := mustCreateEvent(t, svc, ownerID, "Expanded")

	if _, _, err := svc.ToggleLike(context.Background(), likerID, e.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), likerID, e.ID); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Get(context.Background(), e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Owner == nil || got.Owner.ID != ownerID {
		t.Error("owner not populated")
	}
	if got.BelongsToPlace == nil {
		t.Error("place not populated")
	}
	if len(got.Likes) != 1 || got.Likes[0].LikeGivenBy == nil || got.Likes[0].LikeGivenBy.ID != likerID {
		t.Error("likes not populated with their giving user")
	}
	if len(got.Participants) != 1 || got.Participants[0].User == nil || got.Participants[0].User.ID != likerID {
		t.Error("participants not populated with their user")
	}
}
