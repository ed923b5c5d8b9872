package rsvp

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barriolink/community-events-backend/internal/apperrors"
	"github.com/barriolink/community-events-backend/internal/user"
	"github.com/barriolink/community-events-backend/middleware"
)

type Handler struct {
	Service Service
	Users   user.Service
}

func NewHandler(s Service, users user.Service) *Handler {
	return &Handler{Service: s, Users: users}
}

// ===========================
// ✅ Attend - POST /events/:id/attend
// @Summary      Confirm the caller's RSVP for an event (idempotent)
// @Tags         events
// @Produce      json
// @Param        id  path  int  true  "event ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /events/{id}/attend [post]
func (h *Handler) Attend(c *gin.Context) {
	h.transition(c, h.Service.SetAttending)
}

// ===========================
// ❌ Cancel - POST /events/:id/cancel
// @Summary      Cancel the caller's RSVP for an event
// @Tags         events
// @Produce      json
// @Param        id  path  int  true  "event ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /events/{id}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.Service.Cancel)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, userID, eventID uint, ip string) (*Attendance, error)) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity missing"})
		return
	}

	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	u, err := h.Users.ResolveByFirebaseUID(c.Request.Context(), ident.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	a, err := op(c.Request.Context(), u.ID, uint(eventID), middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attendance": a})
}
