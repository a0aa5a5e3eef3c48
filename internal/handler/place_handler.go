package handler

import (
	"net/http"

	"eventhub/internal/services"
	"eventhub/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type PlaceHandler struct {
	service *services.PlaceService
}

func NewPlaceHandler(service *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

func (h *PlaceHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req httpdto.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, services.CreatePlaceInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(p))
}

func (h *PlaceHandler) Mine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.service.Mine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(p))
}
