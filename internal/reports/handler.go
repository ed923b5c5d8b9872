package reports

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

// ===========================
// 📊 Event Report - GET /events/:id/report?format=csv|excel|pdf
// @Summary      Download the attendance and review report for an event (organizer only)
// @Tags         reports
// @Produce      octet-stream
// @Param        id      path   int     true   "event ID"
// @Param        format  query  string  false  "csv, excel or pdf"  default(csv)
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /events/{id}/report [get]
func (h *Handler) GetEventReport(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity missing"})
		return
	}

	u, err := h.Users.ResolveByFirebaseUID(c.Request.Context(), ident.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	payload, filename, contentType, err := h.Service.BuildEventReport(c.Request.Context(), uint(id), u.ID, format)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, payload)
}
