package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// webResponse is the uniform envelope every endpoint answers with.
type webResponse struct {
	Status   bool   `json:"status"`
	Messages string `json:"messages"`
	Data     any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, messages string, data any) {
	c.JSON(http.StatusOK, webResponse{
		Status:   true,
		Messages: messages,
		Data:     data,
	})
}

func respondFail(c *gin.Context, status int, messages string) {
	c.JSON(status, webResponse{
		Status:   false,
		Messages: messages,
	})
}

// parseID parses a numeric path parameter. Non-numeric input is a client
// error, not a server error.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondFail(c, http.StatusBadRequest, "Bad request")
		return 0, false
	}
	return id, true
}

// respondLookupError maps a repository failure: the entity's not-found
// sentinel becomes 404, anything else is an opaque 500.
func respondLookupError(c *gin.Context, err, sentinel error, messages string) {
	if errors.Is(err, sentinel) {
		respondFail(c, http.StatusNotFound, messages)
		return
	}
	respondFail(c, http.StatusInternalServerError, "Internal server error")
}
