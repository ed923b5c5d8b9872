package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barriolink/community-events-backend/middleware"
)

// ResolveUserID maps a verified external identity to a local user ID.
// Injected from the user module at wiring time to keep this package free of
// a dependency on it.
type ResolveUserID func(ctx context.Context, firebaseUID string) (uint, error)

type Handler struct {
	Service     Service
	ResolveUser ResolveUserID
}

func NewHandler(s Service, resolve ResolveUserID) *Handler {
	return &Handler{Service: s, ResolveUser: resolve}
}

// ===========================
// 📜 My Activity - GET /users/me/activity
// @Summary      Caller's recent audit entries
// @Tags         users
// @Produce      json
// @Param        limit  query  int  false  "max entries (default 50)"
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /users/me/activity [get]
func (h *Handler) GetMyActivity(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity missing"})
		return
	}

	userID, err := h.ResolveUser(c.Request.Context(), ident.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.Service.GetUserActivity(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "activity": entries})
}
