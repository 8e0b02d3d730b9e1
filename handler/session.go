package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flushfinder-api/middleware"
	"flushfinder-api/model"
)

// UserStore keeps profile documents in sync with the identity provider.
type UserStore interface {
	Ensure(ctx context.Context, u model.User) (model.User, error)
}

// SessionHandler handles post-sign-in bookkeeping.
type SessionHandler struct {
	Users UserStore
	Log   *zap.Logger
}

// StartSession upserts the caller's profile document from their token
// claims, creating it on first sign-in, and returns it.
func (h *SessionHandler) StartSession(c *gin.Context) {
	u := model.User{
		UID:         c.GetString(middleware.ContextUID),
		DisplayName: c.GetString(middleware.ContextName),
		Email:       c.GetString(middleware.ContextEmail),
		PhotoURL:    c.GetString(middleware.ContextPicture),
	}

	profile, err := h.Users.Ensure(c.Request.Context(), u)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}
