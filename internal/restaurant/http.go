package restaurant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterPublicRoutes mounts the read-only endpoints consumed by the
// public rendering surface.
func RegisterPublicRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/restaurants", handler.list)
	group.GET("/restaurants/:id", handler.get)
}

// RegisterAdminRoutes mounts the mutating endpoints behind authentication.
func RegisterAdminRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/restaurants", handler.create)
	group.PATCH("/restaurants/:id", handler.update)
	group.DELETE("/restaurants/:id", handler.remove)
}

type httpHandler struct {
	service *Service
}

type createRequest struct {
	Name         string       `json:"name" binding:"required"`
	Description  string       `json:"description"`
	Address      string       `json:"address"`
	PhoneNumber  string       `json:"phoneNumber"`
	Images       []string     `json:"images"`
	OpeningHours []OpeningDay `json:"openingHours"`
}

func (h *httpHandler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant payload"})
		return
	}

	rec, err := h.service.Create(c.Request.Context(), Restaurant{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		Images:       req.Images,
		OpeningHours: req.OpeningHours,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidHours) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "opening hours must use HH:MM times"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create restaurant"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *httpHandler) list(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list restaurants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": records})
}

func (h *httpHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurant"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *httpHandler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant payload"})
		return
	}

	rec, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		case errors.Is(err, ErrInvalidHours):
			c.JSON(http.StatusBadRequest, gin.H{"error": "opening hours must use HH:MM times"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update restaurant"})
		}
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *httpHandler) remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid restaurant id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete restaurant"})
		return
	}

	c.Status(http.StatusNoContent)
}
