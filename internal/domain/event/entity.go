package event

import (
	"time"

	"eventhub/internal/domain/place"
	"eventhub/internal/domain/user"

	"github.com/google/uuid"
)

// Event represents the events table. Date and time bounds are stored as the
// client sent them; nothing in the system parses or orders them.
type Event struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID    `gorm:"type:uuid;index" json:"ownerId"`
	Owner            *user.User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title            string       `gorm:"size:255" json:"title"`
	Description      string       `json:"description"`
	Frequency        string       `gorm:"size:64" json:"frequency,omitempty"`
	DateStart        string       `gorm:"size:32" json:"dateStart"`
	DateEnd          string       `gorm:"size:32" json:"dateEnd"`
	TimeStart        string       `gorm:"size:32" json:"timeStart"`
	TimeEnd          string       `gorm:"size:32" json:"timeEnd"`
	Price            float64      `json:"price"`
	Image            *string      `json:"image"`
	BelongsToPlaceID uuid.UUID    `gorm:"type:uuid;index" json:"belongsToPlaceId"`
	BelongsToPlace   *place.Place `gorm:"foreignKey:BelongsToPlaceID" json:"belongsToPlace,omitempty"`

	// NumberOfLikes is denormalized from the likes rows and adjusted in the
	// same transaction that mutates them.
	NumberOfLikes int `json:"numberOfLikes"`

	Likes        []Like        `gorm:"foreignKey:LikeForEventID" json:"likes,omitempty"`
	Participants []Participant `gorm:"foreignKey:EventID" json:"participants,omitempty"`
	Ratings      []Rating      `gorm:"foreignKey:EventID" json:"ratings,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Event) TableName() string {
	return "events"
}

// LikedBy reports whether the populated likes contain one given by userID,
// and returns that like. Only the first match is considered.
func (e Event) LikedBy(userID uuid.UUID) (Like, bool) {
	for _, l := range e.Likes {
		if l.LikeGivenByID == userID {
			return l, true
		}
	}
	return Like{}, false
}

// Like represents the likes table: one row per (user, event) pair. The pair
// uniqueness is enforced only by the toggle's scan over an event's likes.
type Like struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	LikeGivenByID  uuid.UUID  `gorm:"type:uuid;index" json:"likeGivenById"`
	LikeGivenBy    *user.User `gorm:"foreignKey:LikeGivenByID" json:"likeGivenBy,omitempty"`
	LikeForEventID uuid.UUID  `gorm:"type:uuid;index" json:"likeForEvent"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

// Participant represents the participants table. Registration is one-way:
// rows are created but never removed by the participant.
type Participant struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index" json:"participantId"`
	User      *user.User `gorm:"foreignKey:UserID" json:"participant,omitempty"`
	EventID   uuid.UUID  `gorm:"type:uuid;index" json:"event"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (Participant) TableName() string {
	return "participants"
}

// Rating represents the ratings table. Ratings are only read and expanded by
// this service, never written.
type Rating struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RatingGivenByID uuid.UUID  `gorm:"type:uuid;index" json:"ratingGivenById"`
	RatingGivenBy   *user.User `gorm:"foreignKey:RatingGivenByID" json:"ratingGivenBy,omitempty"`
	EventID         uuid.UUID  `gorm:"type:uuid;index" json:"ratingForEvent"`
	Value           int        `json:"value"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func (Rating) TableName() string {
	return "ratings"
}
