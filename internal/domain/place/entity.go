package place

import (
	"time"

	"github.com/google/uuid"
)

// Place represents the places table.
type Place struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;index" json:"owner"`
	Name      string     `gorm:"size:255" json:"name"`
	Address   string     `gorm:"size:255" json:"address"`
	EventRefs []EventRef `gorm:"foreignKey:PlaceID" json:"placeHasEvents"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (Place) TableName() string {
	return "places"
}

// EventRef is one entry of a place's event reference list. A row is appended
// when an event is created at the place and is NOT removed when the event is
// deleted, so the list can hold ids of events that no longer exist.
type EventRef struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PlaceID   uuid.UUID `gorm:"type:uuid;index" json:"-"`
	EventID   uuid.UUID `gorm:"type:uuid;index" json:"eventId"`
	CreatedAt time.Time `json:"-"`
}

func (EventRef) TableName() string {
	return "place_event_refs"
}
