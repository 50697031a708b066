package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenspoon/backend/internal/service"
	"github.com/greenspoon/backend/internal/types"
	"github.com/greenspoon/backend/internal/validation"
)

// UserHandler serves profile reads, updates and account deletion.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("/me", auth, h.Me)
		users.GET("/:id", h.GetPublic)
		users.PUT("", auth, h.Update)
		users.DELETE("", auth, h.Delete)
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	user, err := h.users.GetMe(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) GetPublic(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.users.GetPublic(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	avatar := formFile(c, "avatar")

	// An avatar can be replaced on its own, with no JSON payload at all.
	upd := &types.UserUpdate{}
	if payload, err := jsonPart(c, "user"); err == nil {
		upd, err = validation.DecodeUserUpdate(payload)
		if err != nil {
			c.Error(err)
			return
		}
	} else if avatar == nil {
		c.Error(err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), userID, upd, avatar)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	user, err := h.users.Delete(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
