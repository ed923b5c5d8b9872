package event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/user"
	"github.com/barriolink/community-events-backend/middleware"
)

type Handler struct {
	Service *Service
	Users   user.Service
}

func NewHandler(s *Service, users user.Service) *Handler {
	return &Handler{Service: s, Users: users}
}

// resolveCaller maps the verified identity to the local user row, writing the
// 401/404 response itself when that fails.
func (h *Handler) resolveCaller(c *gin.Context) (*user.User, bool) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity missing"})
		return nil, false
	}

	u, err := h.Users.ResolveByFirebaseUID(c.Request.Context(), ident.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return nil, false
	}
	return u, true
}

// ===========================
// 🎯 Create Event - POST /events
// @Summary      Create an event, the caller becomes its organizer
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body  CreateEventRequest  true  "event fields"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	u, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	e, err := h.Service.CreateEvent(c.Request.Context(), u.ID, &req, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "event": e})
}

// ===========================
// 📄 List Events - GET /events
// @Summary      All events, date ascending, with organizer and counts
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	if _, ok := h.resolveCaller(c); !ok {
		return
	}

	events, err := h.Service.ListEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// ===========================
// 📜 My Events - GET /events/my-events
// @Summary      Events the caller organizes and events they RSVP'd to
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /events/my-events [get]
func (h *Handler) GetMyEvents(c *gin.Context) {
	u, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	history, err := h.Service.MyEvents(c.Request.Context(), u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"organized": history.Organized,
		"attended":  history.Attended,
	})
}

// ===========================
// 🔍 Get Event - GET /events/:id
// @Summary      Full event detail with attendances and reviews
// @Tags         events
// @Produce      json
// @Param        id  path  int  true  "event ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [get]
func (h *Handler) GetEventByID(c *gin.Context) {
	if _, ok := h.resolveCaller(c); !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	detail, err := h.Service.GetEventByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": detail})
}

// ===========================
// 🛠 Update Event - PUT /events/:id
// @Summary      Edit an upcoming event (organizer only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "event ID"
// @Param        body  body  UpdateEventRequest  true  "fields to change"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [put]
func (h *Handler) UpdateEvent(c *gin.Context) {
	u, ok := h.resolveCaller(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	e, err := h.Service.UpdateEvent(c.Request.Context(), uint(id), u.ID, &req, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}
