package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/greenspoon/backend/internal/apperr"
)

// currentUserID reads the authenticated user's id placed in the context by
// the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

// jsonPart extracts the JSON payload named field. Multipart requests carry
// the payload as a form field next to the file upload; plain JSON requests
// carry it as the body.
func jsonPart(c *gin.Context, field string) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		raw := c.PostForm(field)
		if raw == "" {
			return nil, apperr.Validation("Invalid request body")
		}
		return []byte(raw), nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		return nil, apperr.Validation("Invalid request body")
	}
	return body, nil
}

// formFile returns the uploaded file under name, or nil when the request
// carries none.
func formFile(c *gin.Context, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.Validation("Invalid id")
	}
	return id, nil
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"message": apperr.AuthNoPermission})
	c.Abort()
}
