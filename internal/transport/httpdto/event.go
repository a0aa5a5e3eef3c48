package httpdto

import "eventhub/internal/services"

// EventRequest is the body of both event create and edit. Edit replaces
// every field with what is sent here; there is no partial patch.
type EventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Frequency   string  `json:"frequency"`
	DateStart   string  `json:"dateStart"`
	DateEnd     string  `json:"dateEnd"`
	TimeStart   string  `json:"timeStart"`
	TimeEnd     string  `json:"timeEnd"`
	Price       float64 `json:"price"`
}

func (r EventRequest) ToInput() services.EventInput {
	return services.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Frequency:   r.Frequency,
		DateStart:   r.DateStart,
		DateEnd:     r.DateEnd,
		TimeStart:   r.TimeStart,
		TimeEnd:     r.TimeEnd,
		Price:       r.Price,
	}
}
