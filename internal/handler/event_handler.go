package handler

import (
	"errors"
	"net/http"

	"eventhub/internal/services"
	"eventhub/internal/transport/httpdto"
	apperrors "eventhub/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventHandler serves the event routes. The event endpoints return the raw
// documents (and `{}` where the contract says so); failures are pushed to the
// error middleware.
type EventHandler struct {
	service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// parseEventID validates the :eventId path parameter. A malformed id gets the
// fixed 400 body the clients depend on.
func parseEventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Specified id is not valid"})
		return uuid.Nil, false
	}
	return id, true
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return uuid.Nil, false
	}
	return userID, true
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) ListByLikes(c *gin.Context) {
	events, err := h.service.ListByLikes(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) ListOwn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	events, err := h.service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), eventID)
	if err != nil {
		// An unknown but well-formed id answers 200 with an empty object.
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req httpdto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	e, err := h.service.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) UploadPhoto(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("imageUrl")
	if err != nil {
		c.Error(apperrors.ErrNotUploaded)
		return
	}

	e, err := h.service.UploadImage(c.Request.Context(), userID, eventID, file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Edit(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req httpdto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	e, err := h.service.Update(c.Request.Context(), userID, eventID, req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Delete(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	e, err := h.service.Delete(c.Request.Context(), userID, eventID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// ToggleLike answers with the like that was created, or with the like that
// was removed when the caller had already liked the event.
func (h *EventHandler) ToggleLike(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	like, _, err := h.service.ToggleLike(c.Request.Context(), userID, eventID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, like)
}

// Register answers with the new participant, or with an empty object when the
// caller is already registered. There is no unregister.
func (h *EventHandler) Register(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	participant, created, err := h.service.Register(c.Request.Context(), userID, eventID)
	if err != nil {
		c.Error(err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, participant)
}
