package review

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
	Service Service
	Users   user.Service
}

func NewHandler(s Service, users user.Service) *Handler {
	return &Handler{Service: s, Users: users}
}

// ===========================
// ⭐ Submit Review - POST /reviews/:eventId
// @Summary      Submit or replace the caller's review for an event
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        eventId  path  int                  true  "event ID"
// @Param        body     body  SubmitReviewRequest  true  "rating and optional comment"
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reviews/{eventId} [post]
func (h *Handler) SubmitReview(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity missing"})
		return
	}

	eventID, err := strconv.Atoi(c.Param("eventId"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	u, err := h.Users.ResolveByFirebaseUID(c.Request.Context(), ident.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	rv, err := h.Service.Submit(c.Request.Context(), u.ID, uint(eventID), req.Rating, req.Comment, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit review"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "review": rv})
}

// ===========================
// 📊 Event Reviews - GET /reviews/:eventId
// @Summary      Reviews and rating stats for an event
// @Tags         reviews
// @Produce      json
// @Param        eventId  path  int  true  "event ID"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /reviews/{eventId} [get]
func (h *Handler) GetEventReviews(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("eventId"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	result, err := h.Service.ListForEvent(c.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": result.Reviews,
		"stats":   result.Stats,
	})
}
